package models

import "time"

// Range is a closed interval readings are drawn from.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Config drives one simulated device. Zero values mean "use the default".
type Config struct {
	Endpoint    string        `json:"endpoint"`
	Interval    time.Duration `json:"interval"`
	CallTimeout time.Duration `json:"callTimeout"`

	SensorID   int32  `json:"sensorId"`
	SensorName string `json:"sensorName"`
	Location   string `json:"location"`

	Temperature    Range `json:"temperature"`
	Humidity       Range `json:"humidity"`
	Pressure       Range `json:"pressure"`
	LightIntensity Range `json:"lightIntensity"`
	Precision      int   `json:"precision"`

	Redis RedisConfig `json:"redis"`
	MQTT  MQTTConfig  `json:"mqtt"`
	Kafka KafkaConfig `json:"kafka"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type KafkaConfig struct {
	Brokers []string `json:"brokers"`
	Topic   string   `json:"topic"`
}
