package mirror

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/kirbo/go-sensorsim/internal/models"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka writes one message per envelope, keyed by sensor id.
type Kafka struct {
	w messageWriter
}

func NewKafka(cfg models.KafkaConfig) *Kafka {
	return &Kafka{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (k *Kafka) Name() string {
	return "kafka"
}

func (k *Kafka) Publish(ctx context.Context, reading models.SensorReading, ack models.ServerAck) error {
	value, err := encode(reading, ack)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(int(reading.SensorID))),
		Value: value,
		Time:  time.UnixMilli(reading.Timestamp),
	}
	if err := k.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

func (k *Kafka) Close() error {
	return k.w.Close()
}
