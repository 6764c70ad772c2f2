package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/events"
	"github.com/talgya/tradewinds/internal/fleet"
	"github.com/talgya/tradewinds/internal/world"
)

const tolerance = 1e-6

func testSimulation(t *testing.T, seed int64, policy economy.PricePolicy, opts Options) *Simulation {
	t.Helper()
	rng := entropy.New(seed)

	prices := func(spice, silk, grain float64) map[economy.Good]float64 {
		return map[economy.Good]float64{"Spice": spice, "Silk": silk, "Grain": grain}
	}
	specs := []economy.CitySpec{
		{
			Name:        "Lisbon",
			BasePrices:  prices(50, 100, 5),
			Production:  map[economy.Good]float64{"Grain": 200, "Spice": 10},
			Consumption: map[economy.Good]float64{"Silk": 15, "Grain": 180},
			Policy:      policy,
		},
		{
			Name:        "Venice",
			BasePrices:  prices(60, 80, 8),
			Production:  map[economy.Good]float64{"Silk": 20},
			Consumption: map[economy.Good]float64{"Spice": 12, "Grain": 150},
			Policy:      policy,
		},
		{
			Name:        "Aden",
			BasePrices:  prices(35, 130, 12),
			Production:  map[economy.Good]float64{"Spice": 25},
			Consumption: map[economy.Good]float64{"Silk": 10, "Grain": 190},
			Policy:      policy,
		},
	}

	m := world.NewMap()
	m.AddCity("Lisbon", 0, 100)
	m.AddCity("Venice", 120, 140)
	m.AddCity("Aden", 260, 20)
	m.GenerateRoutes(rng)

	var cities []*economy.City
	for _, spec := range specs {
		cities = append(cities, economy.NewCity(spec, rng))
	}
	ships := []*fleet.Ship{
		fleet.New(fleet.Spec{Name: "Sea Serpent", Capacity: 100, Speed: 3}),
		fleet.New(fleet.Spec{Name: "Sea Lion", Capacity: 150, Speed: 2, Preference: fleet.PreferPrice}),
		fleet.New(fleet.Spec{Name: "Treasure", Capacity: 250, Speed: 1}),
	}
	return New(m, cities, ships, rng, opts)
}

func TestRunPreservesInvariants(t *testing.T) {
	for _, policy := range []economy.PricePolicy{economy.PricePermanent, economy.PriceExpiring} {
		for _, wp := range []events.WeatherPolicy{events.WeatherOneShot, events.WeatherDaily} {
			t.Run(policy.String()+"/"+wp.String(), func(t *testing.T) {
				sim := testSimulation(t, 42, policy, Options{WeatherPolicy: wp})
				for day := 0; day < 200; day++ {
					sim.Step()
					checkInvariants(t, sim)
				}
				assert.Equal(t, 200, sim.Day())
				assert.Greater(t, sim.Stats.Arrivals, 0)
			})
		}
	}
}

func checkInvariants(t *testing.T, sim *Simulation) {
	t.Helper()
	for _, name := range sim.CityNames() {
		c := sim.Cities[name]
		for _, g := range c.Goods() {
			st := c.Stock[g]
			if st != nil {
				sum := 0.0
				for _, q := range economy.Qualities {
					require.GreaterOrEqual(t, st[q], 0.0, "%s %s %s", name, g, q)
					sum += st[q]
				}
				require.InDelta(t, sum, c.Inventory(g), tolerance)
			}
			base := c.BasePrices[g]
			require.GreaterOrEqual(t, c.CurrentPrices[g], base*economy.PriceFloorFactor-tolerance, "%s %s", name, g)
			require.LessOrEqual(t, c.CurrentPrices[g], base*economy.PriceCeilingFactor+tolerance, "%s %s", name, g)
		}
	}
	for _, name := range sim.ShipNames() {
		sh := sim.Ships[name]
		require.LessOrEqual(t, sh.CargoTotal(), sh.Capacity+tolerance, name)
		require.GreaterOrEqual(t, sh.Gold, 0.0, name)
		require.NotEqual(t, sh.InTransit, sh.Docked(), name)
		require.GreaterOrEqual(t, sh.SailingSkill, fleet.MinSkill)
		require.LessOrEqual(t, sh.SailingSkill, fleet.MaxSkill)
		require.GreaterOrEqual(t, sh.TradingSkill, fleet.MinSkill)
		require.LessOrEqual(t, sh.TradingSkill, fleet.MaxSkill)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	a := testSimulation(t, 7, economy.PricePermanent, Options{})
	b := testSimulation(t, 7, economy.PricePermanent, Options{})
	a.Run(150)
	b.Run(150)

	assert.Equal(t, a.EventLog(), b.EventLog())
	for _, name := range a.ShipNames() {
		assert.Equal(t, a.Ships[name].GoldHistory, b.Ships[name].GoldHistory, name)
	}
	for _, name := range a.CityNames() {
		assert.Equal(t, a.Cities[name].PriceHistory["Spice"].Values(), b.Cities[name].PriceHistory["Spice"].Values())
	}
	assert.Equal(t, a.CurrencyHistory.Values(), b.CurrencyHistory.Values())
}

func TestRunInitialisesShips(t *testing.T) {
	sim := testSimulation(t, 3, economy.PricePermanent, Options{})
	sim.Run(0)
	for _, name := range sim.ShipNames() {
		sh := sim.Ships[name]
		require.NotEmpty(t, sh.GoldHistory, name)
		assert.Equal(t, fleet.DefaultGold, sh.GoldHistory[0])
		// Every ship makes a decision at its first port and sets sail.
		assert.True(t, sh.InTransit, name)
	}
}

func TestEventLogLines(t *testing.T) {
	sim := testSimulation(t, 11, economy.PricePermanent, Options{})
	sim.Run(120)
	lines := sim.EventLog()
	require.NotEmpty(t, lines)
	require.Len(t, lines, len(sim.Events))
	for i, line := range lines {
		assert.True(t, strings.HasPrefix(line, "Day "), line)
		if i > 0 {
			assert.GreaterOrEqual(t, sim.Events[i].Day, sim.Events[i-1].Day)
		}
	}
	categories := map[string]bool{}
	for _, e := range sim.Events {
		categories[e.Category] = true
	}
	assert.True(t, categories[CategoryVoyage])
	assert.True(t, categories[CategoryCity])
}

func TestCurrencyHistoryGrowsMonthly(t *testing.T) {
	sim := testSimulation(t, 5, economy.PricePermanent, Options{CurrencySupply: 10000})
	sim.Run(95)
	// Initial value plus ticks on days 30, 60, 90.
	assert.Equal(t, 4, sim.CurrencyHistory.Len())
	assert.Equal(t, 4, sim.InflationHistory.Len())
	assert.Equal(t, 10000.0, sim.CurrencyHistory.Values()[0])
}

func TestSnapshotIsACopy(t *testing.T) {
	sim := testSimulation(t, 9, economy.PricePermanent, Options{})
	sim.Run(40)
	snap := sim.Snapshot()

	require.Len(t, snap.Cities, 3)
	require.Len(t, snap.Ships, 3)
	assert.Len(t, snap.Routes, 3)
	assert.Len(t, snap.Coords, 3)
	assert.Equal(t, 40, snap.Day)
	assert.Len(t, snap.Cities[0].PriceHistory["Spice"], 40)

	snap.Ships[0].GoldHistory[0] = -1
	snap.Cities[0].PriceHistory["Spice"][0] = -1
	assert.NotEqual(t, -1.0, sim.Ships[snap.Ships[0].Name].GoldHistory[0])
	assert.NotEqual(t, -1.0, sim.Cities["Lisbon"].PriceHistory["Spice"].Values()[0])
}

func TestEngineSchedule(t *testing.T) {
	e := NewEngine()
	var refresh, month, days []int
	e.OnRouteRefresh = func(day int) { refresh = append(refresh, day) }
	e.OnMonth = func(day int) { month = append(month, day) }
	e.OnDay = func(day int) { days = append(days, day) }
	e.Run(61)

	assert.Equal(t, []int{0, 10, 20, 30, 40, 50, 60}, refresh)
	assert.Equal(t, []int{30, 60}, month)
	assert.Len(t, days, 61)
	assert.Equal(t, 61, e.Day)
	assert.Equal(t, "Year 1, Day 1", SimTime(0))
	assert.Equal(t, "Year 2, Day 1", SimTime(365))
}
