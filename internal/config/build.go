package config

import (
	"fmt"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/engine"
	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/events"
	"github.com/talgya/tradewinds/internal/fleet"
	"github.com/talgya/tradewinds/internal/world"
)

// Build turns a scenario into a ready-to-run simulation. All randomness,
// including city placement and specialty draws, comes from the scenario
// seed.
func (c Config) Build() (*engine.Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("build simulation: %w", err)
	}
	pricePolicy, _ := events.ParsePricePolicy(c.PricePolicy)
	weatherPolicy, _ := events.ParseWeatherPolicy(c.WeatherPolicy)

	rng := entropy.New(c.Seed)
	m := c.buildMap(rng)

	cities := make([]*economy.City, 0, len(c.Cities))
	for _, cc := range c.Cities {
		cities = append(cities, economy.NewCity(economy.CitySpec{
			Name:        cc.Name,
			BasePrices:  goodsMap(cc.BasePrices),
			Production:  goodsMap(cc.Production),
			Consumption: goodsMap(cc.Consumption),
			Specialties: goodsList(cc.Specialties),
			HistoryCap:  c.HistoryCap,
			Policy:      pricePolicy,
		}, rng))
	}

	ships := make([]*fleet.Ship, 0, len(c.Ships))
	for _, sc := range c.Ships {
		pref, _ := fleet.ParsePreference(sc.Preference)
		sh := fleet.New(fleet.Spec{
			Name:         sc.Name,
			Capacity:     sc.Capacity,
			Speed:        sc.Speed,
			Preference:   pref,
			SailingSkill: fleet.MinSkill,
			TradingSkill: fleet.MinSkill,
			HomePort:     sc.HomePort,
		})
		if sc.Gold != nil {
			sh.Gold = *sc.Gold
		}
		ships = append(ships, sh)
	}

	opts := engine.Options{
		WeatherPolicy:  weatherPolicy,
		CurrencySupply: c.CurrencySupply,
	}
	if c.Events != nil {
		opts.Catalog = *c.Events
	}
	return engine.New(m, cities, ships, rng, opts), nil
}

// buildMap places cities at their configured coordinates, or around a ring
// when any city has none.
func (c Config) buildMap(rng *entropy.Source) *world.Map {
	m := world.NewMap()
	placed := true
	names := make([]string, 0, len(c.Cities))
	for _, cc := range c.Cities {
		names = append(names, cc.Name)
		if cc.Coords == nil {
			placed = false
		}
	}
	if placed {
		for _, cc := range c.Cities {
			m.AddCity(cc.Name, cc.Coords.X, cc.Coords.Y)
		}
	} else {
		world.LayoutRing(m, names, rng)
	}
	m.GenerateRoutes(rng)
	return m
}

func goodsMap(in map[string]float64) map[economy.Good]float64 {
	out := make(map[economy.Good]float64, len(in))
	for k, v := range in {
		out[economy.Good(k)] = v
	}
	return out
}

// goodsList keeps nil distinct from empty: nil asks for a random draw.
func goodsList(in []string) []economy.Good {
	if in == nil {
		return nil
	}
	out := make([]economy.Good, 0, len(in))
	for _, g := range in {
		out = append(out, economy.Good(g))
	}
	return out
}
