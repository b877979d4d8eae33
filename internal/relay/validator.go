package relay

import (
	"fmt"
	"sync"

	"github.com/kirbo/go-sensorsim/internal/models"
)

// Plausibility bounds for incoming readings.
var (
	TemperatureBounds = models.Range{Min: -50, Max: 100}
	HumidityBounds    = models.Range{Min: 0, Max: 100}
	PressureBounds    = models.Range{Min: 300, Max: 1100}
)

// Validator flags implausible readings. It never drops them.
type Validator struct {
	mu        sync.Mutex
	valid     int
	anomalies int
}

// Check returns one description per problem found, or nil for a valid reading.
// Out-of-bounds measurements also count as anomalies.
func (v *Validator) Check(r models.SensorReading) []string {
	issues, anomalies := inspect(r)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.anomalies += anomalies
	if len(issues) == 0 {
		v.valid++
	}

	return issues
}

func inspect(r models.SensorReading) (issues []string, anomalies int) {
	if r.SensorID <= 0 {
		issues = append(issues, fmt.Sprintf("invalid sensor_id=%d (must be > 0)", r.SensorID))
	}
	if !TemperatureBounds.Contains(r.Temperature) {
		issues = append(issues, fmt.Sprintf("abnormal temperature %v°C (normal range %v to %v)", r.Temperature, TemperatureBounds.Min, TemperatureBounds.Max))
		anomalies++
	}
	if !HumidityBounds.Contains(r.Humidity) {
		issues = append(issues, fmt.Sprintf("invalid humidity %v%% (range %v-%v)", r.Humidity, HumidityBounds.Min, HumidityBounds.Max))
		anomalies++
	}
	if !PressureBounds.Contains(r.Pressure) {
		issues = append(issues, fmt.Sprintf("abnormal pressure %v hPa (normal range %v-%v)", r.Pressure, PressureBounds.Min, PressureBounds.Max))
		anomalies++
	}
	if r.LightIntensity < 0 {
		issues = append(issues, fmt.Sprintf("invalid light %v lux (must be >= 0)", r.LightIntensity))
		anomalies++
	}
	if r.SensorName == "" {
		issues = append(issues, "missing sensor_name")
	}
	if r.Location == "" {
		issues = append(issues, "missing location")
	}

	return issues, anomalies
}

// Counts returns how many valid readings and anomalies have been seen.
func (v *Validator) Counts() (valid, anomalies int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.valid, v.anomalies
}
