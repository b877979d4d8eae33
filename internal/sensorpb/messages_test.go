package sensorpb

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestSensorResponseWireBytes(t *testing.T) {
	got, err := (&SensorResponse{Success: true, Message: "ok"}).Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := []byte{0x08, 0x01, 0x12, 0x02, 'o', 'k'}
	if !bytes.Equal(got, want) {
		t.Errorf("bytes = % x, want % x", got, want)
	}
}

func TestSensorRequestOmitsZeroFields(t *testing.T) {
	got, err := (&SensorRequest{SensorId: 1, Location: "A"}).Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := []byte{0x08, 0x01, 0x42, 0x01, 'A'}
	if !bytes.Equal(got, want) {
		t.Errorf("bytes = % x, want % x", got, want)
	}
}

func TestSensorRequestDecodesWhatItEncodes(t *testing.T) {
	in := &SensorRequest{
		SensorId:       -3,
		SensorName:     "DHT22-Sensor",
		Temperature:    27.41,
		Humidity:       50.5,
		Pressure:       1007.12,
		LightIntensity: 321.987654321,
		Timestamp:      1700000000123,
		Location:       "Kamar 123",
	}

	b, err := in.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out SensorRequest
	if err := out.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, &out); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSensorResponseSkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 9, protowire.BytesType)
	b = protowire.AppendString(b, "future")
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, "stored")
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)

	var resp SensorResponse
	if err := resp.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := SensorResponse{Message: "stored", ProcessedTimestamp: 42}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalRejectsTruncatedInput(t *testing.T) {
	b, _ := (&SensorRequest{SensorName: "DHT22-Sensor"}).Marshal()

	var req SensorRequest
	if err := req.Unmarshal(b[:len(b)-3]); err == nil {
		t.Error("expected an error for a truncated string")
	}
}

func TestCodecRejectsForeignTypes(t *testing.T) {
	var c Codec
	if _, err := c.Marshal("not a message"); err == nil {
		t.Error("Marshal accepted a string")
	}
	if err := c.Unmarshal(nil, new(int)); err == nil {
		t.Error("Unmarshal accepted *int")
	}
	if c.Name() != "proto" {
		t.Errorf("Name = %q", c.Name())
	}
}
