package simulator

import (
	"context"
	"log"
	"time"

	"github.com/kirbo/go-sensorsim/internal/models"
)

// Sender delivers one reading and returns the service's acknowledgment.
type Sender interface {
	Send(ctx context.Context, reading models.SensorReading) (models.ServerAck, error)
}

// Source produces the next reading.
type Source interface {
	Next() models.SensorReading
}

// Mirror republishes accepted readings somewhere else.
type Mirror interface {
	Name() string
	Publish(ctx context.Context, reading models.SensorReading, ack models.ServerAck) error
}

type Simulator struct {
	cfg     models.Config
	source  Source
	sender  Sender
	mirrors []Mirror
	logger  *log.Logger
}

type Option func(*Simulator)

func WithMirrors(mirrors ...Mirror) Option {
	return func(s *Simulator) {
		s.mirrors = append(s.mirrors, mirrors...)
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

func New(cfg models.Config, source Source, sender Sender, opts ...Option) *Simulator {
	s := &Simulator{
		cfg:    cfg,
		source: source,
		sender: sender,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run samples, sends and reports until ctx is done, sleeping the configured
// interval between iterations. An iteration in flight always completes and is
// reported. Run returns ctx.Err().
func (s *Simulator) Run(ctx context.Context) error {
	s.logger.Printf("Simulator active! Sending sensor data to %s every %v", s.cfg.Endpoint, s.cfg.Interval)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		res := s.Step(ctx)
		s.report(res)
		if res.Outcome == Accepted {
			s.mirror(context.WithoutCancel(ctx), res)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.Interval):
		}
	}
}

// Step generates one reading and sends it. It never fails; every failure is
// folded into the returned Result.
func (s *Simulator) Step(ctx context.Context) Result {
	reading := s.source.Next()
	ack, err := s.sender.Send(ctx, reading)
	return classify(reading, ack, err)
}

func (s *Simulator) report(res Result) {
	switch res.Outcome {
	case Accepted:
		s.logger.Printf("-> [OK] Temperature: %.2f°C | Server message: %s", res.Reading.Temperature, res.Ack.Message)
	case Rejected:
		s.logger.Printf("-> [FAILED] Server message: %s", res.Ack.Message)
	case TransportError:
		s.logger.Printf("X Connection error: %v", res.Err)
	}
}

func (s *Simulator) mirror(ctx context.Context, res Result) {
	for _, m := range s.mirrors {
		if err := m.Publish(ctx, res.Reading, res.Ack); err != nil {
			s.logger.Printf("mirror %s: %v", m.Name(), err)
		}
	}
}
