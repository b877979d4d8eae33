package sensor

import (
	"math"
	"math/rand"
	"time"

	"github.com/kirbo/go-sensorsim/internal/models"
)

// Generator produces synthetic readings for one configured device.
type Generator struct {
	cfg models.Config
	rnd *rand.Rand
	now func() time.Time
}

// NewGenerator returns a Generator drawing from src. A nil src seeds from the clock.
func NewGenerator(cfg models.Config, src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{
		cfg: cfg,
		rnd: rand.New(src),
		now: time.Now,
	}
}

// Next returns a fully populated reading stamped with the current time.
// Light intensity keeps full precision; the other measurements are rounded.
func (g *Generator) Next() models.SensorReading {
	temperature := Round(g.uniform(g.cfg.Temperature), g.cfg.Precision)
	humidity := Round(g.uniform(g.cfg.Humidity), g.cfg.Precision)
	pressure := Round(g.uniform(g.cfg.Pressure), g.cfg.Precision)
	light := g.uniform(g.cfg.LightIntensity)

	return models.SensorReading{
		SensorID:       g.cfg.SensorID,
		SensorName:     g.cfg.SensorName,
		Temperature:    temperature,
		Humidity:       humidity,
		Pressure:       pressure,
		LightIntensity: light,
		Timestamp:      MakeTimestamp(g.now()),
		Location:       g.cfg.Location,
	}
}

func (g *Generator) uniform(r models.Range) float64 {
	return r.Min + g.rnd.Float64()*(r.Max-r.Min)
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// MakeTimestamp converts t to epoch milliseconds.
func MakeTimestamp(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
