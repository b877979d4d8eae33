package mirror

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/kirbo/go-sensorsim/internal/models"
)

// MQTT publishes each envelope to <topic>/<sensor id> at QoS 0.
type MQTT struct {
	client  mqtt.Client
	topic   string
	timeout time.Duration
}

// NewMQTT connects to the broker and fails if it cannot within the publish timeout.
func NewMQTT(cfg models.MQTTConfig) (*MQTT, error) {
	opts := mqtt.NewClientOptions().AddBroker(cfg.Broker)
	opts.SetClientID(cfg.User.ClientID)
	if cfg.User.Username != "" {
		opts.SetUsername(cfg.User.Username)
		opts.SetPassword(cfg.User.Password)
	}
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(cfg.PublishTimeout) {
		return nil, fmt.Errorf("connect %s: timed out after %v", cfg.Broker, cfg.PublishTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Broker, err)
	}

	return newMQTT(client, cfg), nil
}

func newMQTT(client mqtt.Client, cfg models.MQTTConfig) *MQTT {
	return &MQTT{client: client, topic: cfg.Topic, timeout: cfg.PublishTimeout}
}

func (m *MQTT) Name() string {
	return "mqtt"
}

func (m *MQTT) Publish(ctx context.Context, reading models.SensorReading, ack models.ServerAck) error {
	payload, err := encode(reading, ack)
	if err != nil {
		return err
	}

	topic := fmt.Sprintf("%s/%d", m.topic, reading.SensorID)
	token := m.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(m.timeout) {
		return fmt.Errorf("publish %s: timed out after %v", topic, m.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	return nil
}

func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}
