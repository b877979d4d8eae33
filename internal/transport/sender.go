package transport

import (
	"context"
	"time"

	"github.com/kirbo/go-sensorsim/internal/models"
	"github.com/kirbo/go-sensorsim/internal/sensorpb"
)

// Sender delivers readings through SendSensorData.
type Sender struct {
	client  sensorpb.SensorServiceClient
	timeout time.Duration
}

// NewSender returns a Sender. A zero timeout leaves the deadline to ctx.
func NewSender(client sensorpb.SensorServiceClient, timeout time.Duration) *Sender {
	return &Sender{client: client, timeout: timeout}
}

func (s *Sender) Send(ctx context.Context, reading models.SensorReading) (models.ServerAck, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.SendSensorData(ctx, ToRequest(reading))
	if err != nil {
		return models.ServerAck{}, err
	}

	return models.ServerAck{
		Success:            resp.Success,
		Message:            resp.Message,
		ProcessedTimestamp: resp.ProcessedTimestamp,
	}, nil
}

func ToRequest(r models.SensorReading) *sensorpb.SensorRequest {
	return &sensorpb.SensorRequest{
		SensorId:       r.SensorID,
		SensorName:     r.SensorName,
		Temperature:    r.Temperature,
		Humidity:       r.Humidity,
		Pressure:       r.Pressure,
		LightIntensity: r.LightIntensity,
		Timestamp:      r.Timestamp,
		Location:       r.Location,
	}
}
