// Package sensorpb binds the iot.SensorService contract described in
// api/sensor.proto. Messages encode to the standard protobuf wire format, so
// they interoperate with any server generated from that file.
package sensorpb

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

type SensorRequest struct {
	SensorId       int32
	SensorName     string
	Temperature    float64
	Humidity       float64
	Pressure       float64
	LightIntensity float64
	Timestamp      int64
	Location       string
}

type SensorResponse struct {
	Success            bool
	Message            string
	ProcessedTimestamp int64
}

// Message is implemented by every type the codec carries.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// Proto3 omits fields holding their zero value.
func (m *SensorRequest) Marshal() ([]byte, error) {
	var b []byte
	b = appendVarint(b, 1, uint64(int64(m.SensorId)))
	b = appendString(b, 2, m.SensorName)
	b = appendDouble(b, 3, m.Temperature)
	b = appendDouble(b, 4, m.Humidity)
	b = appendDouble(b, 5, m.Pressure)
	b = appendDouble(b, 6, m.LightIntensity)
	b = appendVarint(b, 7, uint64(m.Timestamp))
	b = appendString(b, 8, m.Location)
	return b, nil
}

func (m *SensorRequest) Unmarshal(b []byte) error {
	*m = SensorRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.SensorId = int32(v)
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.SensorName = v
			return n, nil
		case num == 3 && typ == protowire.Fixed64Type:
			return consumeDouble(b, &m.Temperature)
		case num == 4 && typ == protowire.Fixed64Type:
			return consumeDouble(b, &m.Humidity)
		case num == 5 && typ == protowire.Fixed64Type:
			return consumeDouble(b, &m.Pressure)
		case num == 6 && typ == protowire.Fixed64Type:
			return consumeDouble(b, &m.LightIntensity)
		case num == 7 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Timestamp = int64(v)
			return n, nil
		case num == 8 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Location = v
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

func (m *SensorResponse) Marshal() ([]byte, error) {
	var b []byte
	if m.Success {
		b = appendVarint(b, 1, 1)
	}
	b = appendString(b, 2, m.Message)
	b = appendVarint(b, 3, uint64(m.ProcessedTimestamp))
	return b, nil
}

func (m *SensorResponse) Unmarshal(b []byte) error {
	*m = SensorResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Success = protowire.DecodeBool(v)
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Message = v
			return n, nil
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.ProcessedTimestamp = int64(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	bits := math.Float64bits(v)
	if bits == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, bits)
}

func consumeDouble(b []byte, dst *float64) (int, error) {
	v, n := protowire.ConsumeFixed64(b)
	*dst = math.Float64frombits(v)
	return n, nil
}

// consumeFields walks b, handing each field's value bytes to fn. fn returns
// the number of bytes it consumed, negative on a malformed value.
func consumeFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("decode tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("decode field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}
