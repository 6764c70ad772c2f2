package engine

import "github.com/talgya/tradewinds/internal/entropy"

// Currency tuning.
const (
	WealthThreshold = 0.5  // Ship gold over supply above which the supply grows
	ShockChance     = 0.05 // Chance a wide swing overrides the normal change
)

// CurrencyTick is the outcome of one money-supply update.
type CurrencyTick struct {
	Ratio  float64 `json:"wealth_ratio"`
	Change float64 `json:"change"`
	Shock  bool    `json:"shock"`
}

// NextCurrency draws the supply change for a wealth level. Above the
// threshold the supply grows 1–3%, otherwise it moves between -1% and +2%;
// a shock replaces either with a swing between -5% and +8%.
func NextCurrency(wealth, supply float64, rng *entropy.Source) CurrencyTick {
	ratio := 0.0
	if supply > 0 {
		ratio = wealth / supply
	}

	var change float64
	if ratio > WealthThreshold {
		change = rng.Uniform(0.01, 0.03)
	} else {
		change = rng.Uniform(-0.01, 0.02)
	}

	shock := rng.Chance(ShockChance)
	if shock {
		change = rng.Uniform(-0.05, 0.08)
	}
	return CurrencyTick{Ratio: ratio, Change: change, Shock: shock}
}

// AdjustCurrency runs a money-supply update against the ships' total gold
// and sets the global inflation rate that cities blend in daily.
func (s *Simulation) AdjustCurrency() CurrencyTick {
	wealth := 0.0
	for _, name := range s.shipNames {
		wealth += s.Ships[name].Gold
	}
	tick := NextCurrency(wealth, s.CurrencySupply, s.rng)
	s.CurrencySupply *= 1 + tick.Change
	s.InflationRate = tick.Change
	s.CurrencyHistory.Push(s.CurrencySupply)
	s.InflationHistory.Push(s.InflationRate)
	return tick
}
