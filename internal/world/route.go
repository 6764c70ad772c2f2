package world

import (
	"fmt"
	"math"

	"github.com/talgya/tradewinds/internal/entropy"
)

// Condition bounds and per-update drift.
const (
	MinDanger = 0.1
	MaxDanger = 0.9
	MinWind   = 0.1
	MaxWind   = 0.9
	MinSea    = 0.05
	MaxSea    = 0.8

	dangerDrift = 0.10
	windDrift   = 0.20
	seaDrift    = 0.15
)

// Conditions are the directional sailing conditions of one route.
type Conditions struct {
	Danger        float64 `json:"danger"`         // Pirates, reefs
	WindAdvantage float64 `json:"wind_advantage"` // 0 headwind, 1 tailwind
	SeaState      float64 `json:"sea_state"`      // 0 calm, 1 storm
}

// WindFactor scales speed by the wind: 0.5 to 1.5.
func (c Conditions) WindFactor() float64 {
	return 0.5 + c.WindAdvantage
}

// SeaFactor scales speed by the sea state.
func (c Conditions) SeaFactor() float64 {
	return 1 - c.SeaState
}

// Drift moves each field by a bounded random step and clamps it.
func (c *Conditions) Drift(rng *entropy.Source) {
	c.Danger = clamp(c.Danger+rng.Uniform(-dangerDrift, dangerDrift), MinDanger, MaxDanger)
	c.WindAdvantage = clamp(c.WindAdvantage+rng.Uniform(-windDrift, windDrift), MinWind, MaxWind)
	c.SeaState = clamp(c.SeaState+rng.Uniform(-seaDrift, seaDrift), MinSea, MaxSea)
}

// Describe renders the conditions as sailors would speak of them.
func (c Conditions) Describe() string {
	var danger, wind, sea string
	switch {
	case c.Danger < 0.2:
		danger = "very safe"
	case c.Danger < 0.4:
		danger = "fairly safe"
	case c.Danger < 0.6:
		danger = "somewhat risky"
	case c.Danger < 0.8:
		danger = "dangerous"
	default:
		danger = "very dangerous"
	}
	switch {
	case c.WindAdvantage < 0.3:
		wind = "mostly headwinds"
	case c.WindAdvantage < 0.5:
		wind = "shifting winds"
	case c.WindAdvantage < 0.7:
		wind = "fair winds"
	default:
		wind = "following winds"
	}
	switch {
	case c.SeaState < 0.2:
		sea = "calm seas"
	case c.SeaState < 0.4:
		sea = "light swell"
	case c.SeaState < 0.6:
		sea = "rough seas"
	default:
		sea = "frequent storms"
	}
	return fmt.Sprintf("%s, %s, %s", danger, wind, sea)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
