package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/fleet"
)

func testCity(policy economy.PricePolicy) *economy.City {
	return economy.NewCity(economy.CitySpec{
		Name:        "Venice",
		BasePrices:  map[economy.Good]float64{"Silk": 100, "Tea": 40, "Grain": 10},
		Production:  map[economy.Good]float64{"Silk": 5, "Tea": 5, "Grain": 20},
		Consumption: map[economy.Good]float64{"Silk": 5, "Tea": 5, "Grain": 20},
		Specialties: []economy.Good{},
		Policy:      policy,
	}, entropy.New(1))
}

func TestPirateRaidScenario(t *testing.T) {
	s := fleet.New(fleet.Spec{Name: "Trader", Capacity: 200, Speed: 2, Gold: 200, HomePort: "Aden"})
	s.Load("Silk", economy.QualityCommon, 100, 0)

	cargo, gold := PirateEvent{EventName: "Pirate Raid", StealPercent: 0.2}.Apply(s)
	assert.InDelta(t, 20, cargo, 1e-9)
	assert.InDelta(t, 40, gold, 1e-9)
	assert.InDelta(t, 80, s.CargoOf("Silk"), 1e-9)
	assert.InDelta(t, 160, s.Gold, 1e-9)
}

func TestCityEventAffectedGoods(t *testing.T) {
	c := testCity(economy.PricePermanent)
	before := c.CurrentPrices["Tea"]
	silk := c.CurrentPrices["Silk"]

	touched := CityEvent{EventName: "Tea Craze", PriceModifier: 1.6, AffectedGoods: []economy.Good{"Tea", "Herbs"}}.Apply(c)
	assert.Equal(t, []economy.Good{"Tea"}, touched)
	assert.InDelta(t, before*1.6, c.CurrentPrices["Tea"], 1e-9)
	assert.Equal(t, silk, c.CurrentPrices["Silk"])
	assert.Zero(t, c.ActiveModifiers())
}

func TestCityEventAllGoods(t *testing.T) {
	c := testCity(economy.PriceExpiring)
	touched := CityEvent{EventName: "Blockade", PriceModifier: 1.3, Duration: 3}.Apply(c)
	assert.Len(t, touched, 3)
	assert.Equal(t, 3, c.ActiveModifiers())

	rng := entropy.New(2)
	for i := 0; i < 3; i++ {
		c.Update(rng)
	}
	assert.Zero(t, c.ActiveModifiers())
}

func TestWeatherPolicies(t *testing.T) {
	storm := WeatherEvent{EventName: "Storm", SpeedModifier: 0.5, Duration: 2}
	s := fleet.New(fleet.Spec{Name: "Trader", Capacity: 100, Speed: 2, HomePort: "Aden"})

	assert.Equal(t, 0.5, storm.Apply(s, WeatherOneShot))
	assert.Empty(t, s.Weather)

	assert.Equal(t, 1.0, storm.Apply(s, WeatherDaily))
	WeatherEvent{EventName: "Tailwind", SpeedModifier: 1.5, Duration: 1}.Apply(s, WeatherDaily)
	require.Len(t, s.Weather, 2)
	assert.InDelta(t, 0.75, SpeedFactor(s), 1e-9)

	assert.Equal(t, []string{"Tailwind"}, AgeWeather(s))
	assert.InDelta(t, 0.5, SpeedFactor(s), 1e-9)
	assert.Equal(t, []string{"Storm"}, AgeWeather(s))
	assert.Equal(t, 1.0, SpeedFactor(s))
}

func TestParsePolicies(t *testing.T) {
	wp, err := ParseWeatherPolicy("Daily")
	require.NoError(t, err)
	assert.Equal(t, WeatherDaily, wp)
	_, err = ParseWeatherPolicy("hourly")
	assert.Error(t, err)

	pp, err := ParsePricePolicy("expiring")
	require.NoError(t, err)
	assert.Equal(t, economy.PriceExpiring, pp)
	_, err = ParsePricePolicy("forever")
	assert.Error(t, err)
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Len(t, c.Weather, 7)
	assert.Len(t, c.Pirate, 5)
	assert.Len(t, c.City, 11)
	assert.Len(t, c.All(), 23)

	rng := entropy.New(3)
	for i := 0; i < 50; i++ {
		w, ok := c.DrawWeather(rng)
		require.True(t, ok)
		assert.Equal(t, KindWeather, w.Kind())
		p, ok := c.DrawPirate(rng)
		require.True(t, ok)
		assert.Greater(t, p.StealPercent, 0.0)
		e, ok := c.DrawCity(rng)
		require.True(t, ok)
		assert.NotEmpty(t, e.Name())
	}

	_, ok := Catalog{}.DrawCity(rng)
	assert.False(t, ok)
}

func TestCatalogWithDefaultsFillsEachKind(t *testing.T) {
	custom := Catalog{Pirate: []PirateEvent{{"Privateer", "A licensed raider", 0.3}}}
	c := custom.WithDefaults()
	require.Len(t, c.Pirate, 1)
	assert.Equal(t, "Privateer", c.Pirate[0].Name())
	assert.Len(t, c.Weather, 7)
	assert.Len(t, c.City, 11)

	assert.Equal(t, DefaultCatalog(), Catalog{}.WithDefaults())
}

func TestCatalogValidate(t *testing.T) {
	require.NoError(t, DefaultCatalog().Validate())
	require.NoError(t, Catalog{}.Validate())

	tests := []struct {
		name    string
		catalog Catalog
	}{
		{"zero speed", Catalog{Weather: []WeatherEvent{{"Becalmed", "", 0, 2}}}},
		{"negative speed", Catalog{Weather: []WeatherEvent{{"Backwards", "", -0.5, 2}}}},
		{"negative weather duration", Catalog{Weather: []WeatherEvent{{"Squall", "", 0.8, -1}}}},
		{"steal above one", Catalog{Pirate: []PirateEvent{{"Greedy", "", 1.2}}}},
		{"negative steal", Catalog{Pirate: []PirateEvent{{"Generous", "", -0.2}}}},
		{"zero price", Catalog{City: []CityEvent{{"Giveaway", "", 0, nil, 3}}}},
		{"unnamed", Catalog{City: []CityEvent{{"", "", 1.2, nil, 3}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.catalog.Validate())
		})
	}
}
