// Package mirror republishes acknowledged readings to downstream systems.
// Every mirror is optional and best effort: a failure is returned to the
// caller for logging and the reading is not retried.
package mirror

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kirbo/go-sensorsim/internal/channels"
	"github.com/kirbo/go-sensorsim/internal/models"
	"github.com/kirbo/go-sensorsim/internal/sensor"
)

func NewEnvelope(reading models.SensorReading, ack models.ServerAck) models.Envelope {
	return models.Envelope{
		ID:         uuid.NewString(),
		Reading:    reading,
		Ack:        ack,
		MirroredAt: sensor.MakeTimestamp(time.Now()),
	}
}

func encode(reading models.SensorReading, ack models.ServerAck) ([]byte, error) {
	data, err := json.Marshal(NewEnvelope(reading, ack))
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return data, nil
}

// Key is the redis key and channel a sensor's latest envelope lives under.
func Key(sensorID int32) string {
	return fmt.Sprintf("%s%d", channels.Reading, sensorID)
}
