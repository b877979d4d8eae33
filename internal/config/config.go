package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/imdario/mergo"

	"github.com/kirbo/go-sensorsim/internal/models"
)

// Defaults returns the values the simulator has always run with.
func Defaults() models.Config {
	return models.Config{
		Endpoint:       "localhost:50051",
		Interval:       2 * time.Second,
		SensorID:       1,
		SensorName:     "DHT22-Sensor",
		Location:       "Kamar 123",
		Temperature:    models.Range{Min: 20.0, Max: 35.0},
		Humidity:       models.Range{Min: 40.0, Max: 60.0},
		Pressure:       models.Range{Min: 1000.0, Max: 1015.0},
		LightIntensity: models.Range{Min: 100.0, Max: 500.0},
		Precision:      2,
		MQTT: models.MQTTConfig{
			Topic:          "sensors/readings",
			PublishTimeout: 5 * time.Second,
			User:           models.MQTTUser{ClientID: "go-sensorsim"},
		},
		Kafka: models.KafkaConfig{
			Topic: "sensor-readings",
		},
	}
}

// Load reads the process environment. Call it after godotenv has populated it.
func Load() (models.Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom builds a Config from lookup and fills every unset field from Defaults.
// A zero value cannot be expressed as an override; it falls back to the default.
func LoadFrom(lookup func(string) (string, bool)) (models.Config, error) {
	var (
		cfg models.Config
		p   = parser{lookup: lookup}
	)

	cfg.Endpoint = p.str("SIMULATOR_ENDPOINT")
	cfg.Interval = p.duration("SIMULATOR_INTERVAL")
	cfg.CallTimeout = p.duration("SIMULATOR_CALL_TIMEOUT")
	cfg.SensorID = int32(p.integer("SIMULATOR_SENSOR_ID"))
	cfg.SensorName = p.str("SIMULATOR_SENSOR_NAME")
	cfg.Location = p.str("SIMULATOR_LOCATION")
	cfg.Precision = p.integer("SIMULATOR_PRECISION")
	cfg.Temperature = p.rng("SIMULATOR_TEMPERATURE")
	cfg.Humidity = p.rng("SIMULATOR_HUMIDITY")
	cfg.Pressure = p.rng("SIMULATOR_PRESSURE")
	cfg.LightIntensity = p.rng("SIMULATOR_LIGHT_INTENSITY")

	if host := p.str("REDIS_MASTER_HOST"); host != "" {
		port := p.str("REDIS_MASTER_PORT")
		if port == "" {
			port = "6379"
		}
		cfg.Redis.Addr = fmt.Sprintf("%s:%s", host, port)
	}
	cfg.Redis.Password = p.str("REDIS_MASTER_PASSWORD")
	cfg.Redis.DB = p.integer("REDIS_MASTER_DB")

	cfg.MQTT.Broker = p.str("SIMULATOR_MQTT_BROKER")
	cfg.MQTT.Topic = p.str("SIMULATOR_MQTT_TOPIC")
	cfg.MQTT.PublishTimeout = p.duration("SIMULATOR_MQTT_TIMEOUT")
	cfg.MQTT.User.ClientID = p.str("SIMULATOR_MQTT_CLIENT_ID")
	cfg.MQTT.User.Username = p.str("SIMULATOR_MQTT_USERNAME")
	cfg.MQTT.User.Password = p.str("SIMULATOR_MQTT_PASSWORD")

	cfg.Kafka.Brokers = p.list("SIMULATOR_KAFKA_BROKERS")
	cfg.Kafka.Topic = p.str("SIMULATOR_KAFKA_TOPIC")

	if p.err != nil {
		return models.Config{}, p.err
	}

	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return models.Config{}, fmt.Errorf("merge defaults: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return models.Config{}, err
	}

	return cfg, nil
}

// Validate rejects configurations the loop cannot run with.
func Validate(cfg models.Config) error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("endpoint is empty")
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", cfg.Interval)
	}
	if cfg.CallTimeout < 0 {
		return fmt.Errorf("call timeout must not be negative, got %v", cfg.CallTimeout)
	}
	if cfg.Precision < 0 {
		return fmt.Errorf("precision must not be negative, got %d", cfg.Precision)
	}

	ranges := []struct {
		name string
		r    models.Range
	}{
		{"temperature", cfg.Temperature},
		{"humidity", cfg.Humidity},
		{"pressure", cfg.Pressure},
		{"light intensity", cfg.LightIntensity},
	}
	for _, x := range ranges {
		if x.r.Min > x.r.Max {
			return fmt.Errorf("%s range is inverted: [%v, %v]", x.name, x.r.Min, x.r.Max)
		}
	}

	return nil
}

// parser keeps the first error so LoadFrom can read every variable in one pass.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) str(key string) string {
	v, ok := p.lookup(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

func (p *parser) integer(key string) int {
	v := p.str(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, err)
	}
	return n
}

func (p *parser) float(key string) float64 {
	v := p.str(key)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, err)
	}
	return f
}

func (p *parser) duration(key string) time.Duration {
	v := p.str(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, err)
	}
	return d
}

func (p *parser) rng(prefix string) models.Range {
	return models.Range{
		Min: p.float(prefix + "_MIN"),
		Max: p.float(prefix + "_MAX"),
	}
}

func (p *parser) list(key string) []string {
	v := p.str(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (p *parser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("parse %s: %w", key, err)
	}
}
