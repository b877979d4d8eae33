package mirror

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirbo/go-sensorsim/internal/models"
)

type Publisher interface {
	Name() string
	Publish(ctx context.Context, reading models.SensorReading, ack models.ServerAck) error
	Close() error
}

// FromConfig builds a publisher for every configured backend. Backends that
// cannot be set up are reported in the joined error; the rest are still returned.
func FromConfig(cfg models.Config) ([]Publisher, error) {
	var (
		pubs []Publisher
		errs []error
	)

	if cfg.Redis.Addr != "" {
		pubs = append(pubs, NewRedis(cfg.Redis))
	}

	if cfg.MQTT.Broker != "" {
		m, err := NewMQTT(cfg.MQTT)
		if err != nil {
			errs = append(errs, fmt.Errorf("mqtt: %w", err))
		} else {
			pubs = append(pubs, m)
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		pubs = append(pubs, NewKafka(cfg.Kafka))
	}

	return pubs, errors.Join(errs...)
}

// CloseAll closes every publisher and joins their errors.
func CloseAll(pubs []Publisher) error {
	var errs []error
	for _, p := range pubs {
		if err := p.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}
