package relay

import (
	"testing"

	"github.com/kirbo/go-sensorsim/internal/models"
)

func TestValidatorCheck(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.SensorReading)
		issues    int
		anomalies int
	}{
		{"valid", func(*models.SensorReading) {}, 0, 0},
		{"bounds are inclusive", func(r *models.SensorReading) {
			r.Temperature = 100
			r.Humidity = 0
			r.Pressure = 300
		}, 0, 0},
		{"non-positive id", func(r *models.SensorReading) { r.SensorID = 0 }, 1, 0},
		{"hot", func(r *models.SensorReading) { r.Temperature = 100.01 }, 1, 1},
		{"humidity", func(r *models.SensorReading) { r.Humidity = 101 }, 1, 1},
		{"pressure", func(r *models.SensorReading) { r.Pressure = 1100.5 }, 1, 1},
		{"negative light", func(r *models.SensorReading) { r.LightIntensity = -0.1 }, 1, 1},
		{"missing name", func(r *models.SensorReading) { r.SensorName = "" }, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Validator{}
			r := good
			tt.mutate(&r)

			issues := v.Check(r)
			if len(issues) != tt.issues {
				t.Errorf("issues = %q, want %d", issues, tt.issues)
			}

			valid, anomalies := v.Counts()
			if anomalies != tt.anomalies {
				t.Errorf("anomalies = %d, want %d", anomalies, tt.anomalies)
			}
			if wantValid := tt.issues == 0; (valid == 1) != wantValid {
				t.Errorf("valid = %d", valid)
			}
		})
	}
}
