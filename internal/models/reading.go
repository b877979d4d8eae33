package models

// SensorReading is one synthetic sample. It lives for a single loop iteration.
type SensorReading struct {
	SensorID       int32   `json:"sensorId"`
	SensorName     string  `json:"sensorName"`
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	Pressure       float64 `json:"pressure"`
	LightIntensity float64 `json:"lightIntensity"`
	Timestamp      int64   `json:"timestamp"`
	Location       string  `json:"location"`
}

// ServerAck is the remote service's answer to a reading.
type ServerAck struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	ProcessedTimestamp int64  `json:"processedTimestamp,omitempty"`
}

// Envelope is what mirrors publish for every acknowledged reading.
type Envelope struct {
	ID         string        `json:"id"`
	Reading    SensorReading `json:"reading"`
	Ack        ServerAck     `json:"ack"`
	MirroredAt int64         `json:"mirroredAt"`
}

type BroadcastMessage struct {
	Timestamp      int64   `json:"time"`
	SensorID       int32   `json:"sensorId"`
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	Pressure       float64 `json:"pressure"`
	LightIntensity float64 `json:"lightIntensity"`
	Ping           int64   `json:"ping"`
	Valid          bool    `json:"valid"`
}
