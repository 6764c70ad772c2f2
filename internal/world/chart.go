// Sea chart generation using layered simplex noise.
// Hazard and swell fields bias the initial conditions of each route by the
// waters around its midpoint, so neighbouring routes start out alike.
package world

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/tradewinds/internal/entropy"
)

// Initial condition ranges for a freshly charted route.
const (
	initDangerLo = 0.1
	initDangerHi = 0.5
	initWindLo   = 0.3
	initWindHi   = 0.8
	initSeaLo    = 0.1
	initSeaHi    = 0.4

	chartFrequency = 0.01 // Map units are roughly hundreds wide
	chartOctaves   = 3
	chartWeight    = 0.5 // Share of the initial value taken from the chart
)

// Chart samples the hazard and swell noise fields.
type Chart struct {
	hazard opensimplex.Noise
	swell  opensimplex.Noise
}

// NewChart creates a chart with independent hazard and swell layers.
func NewChart(seed int64) *Chart {
	return &Chart{
		hazard: opensimplex.NewNormalized(seed),
		swell:  opensimplex.NewNormalized(seed + 1),
	}
}

// Hazard returns the hazard field at p, in [0, 1].
func (c *Chart) Hazard(p Point) float64 {
	return octaveNoise(c.hazard, p.X, p.Y, chartOctaves, chartFrequency, 0.5)
}

// Swell returns the swell field at p, in [0, 1].
func (c *Chart) Swell(p Point) float64 {
	return octaveNoise(c.swell, p.X, p.Y, chartOctaves, chartFrequency, 0.5)
}

// InitialConditions draws starting conditions for a route whose midpoint is
// mid. Danger and sea state blend the chart with a uniform draw; wind is
// drawn uniformly.
func (c *Chart) InitialConditions(mid Point, rng *entropy.Source) Conditions {
	danger := chartWeight*c.Hazard(mid) + (1-chartWeight)*rng.Float64()
	sea := chartWeight*c.Swell(mid) + (1-chartWeight)*rng.Float64()
	return Conditions{
		Danger:        clamp(initDangerLo+danger*(initDangerHi-initDangerLo), initDangerLo, initDangerHi),
		WindAdvantage: rng.Uniform(initWindLo, initWindHi),
		SeaState:      clamp(initSeaLo+sea*(initSeaHi-initSeaLo), initSeaLo, initSeaHi),
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// LayoutRing places cities around a jittered ring centred at (150, 150),
// stretched horizontally. Used when a scenario gives no coordinates.
func LayoutRing(m *Map, names []string, rng *entropy.Source) {
	n := len(names)
	if n == 0 {
		return
	}
	const (
		radius  = 100.0
		centreX = 150.0
		centreY = 150.0
	)
	for i, name := range names {
		angle := 2 * math.Pi * float64(i) / float64(n)
		r := radius * rng.Uniform(0.8, 1.2)
		m.AddCity(name, centreX+r*math.Cos(angle)*1.5, centreY+r*math.Sin(angle))
	}
}
