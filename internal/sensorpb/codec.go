package sensorpb

import "fmt"

// Codec is the gRPC codec for Message values. It registers under the name
// "proto" so the content-type on the wire stays application/grpc+proto.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("sensorpb: cannot marshal %T", v)
	}
	return m.Marshal()
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("sensorpb: cannot unmarshal into %T", v)
	}
	return m.Unmarshal(data)
}

func (Codec) Name() string {
	return "proto"
}
