package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/events"
	"github.com/talgya/tradewinds/internal/fleet"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Cities, 7)
	assert.Len(t, cfg.Ships, 7)
	for _, c := range cfg.Cities {
		assert.Len(t, c.BasePrices, len(defaultGoods), c.Name)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	scenario := `
seed: 7
days: 90
weather_policy: daily
cities:
  - name: Tyre
    coords: {x: 0, y: 0}
    base_prices: {Dye: 80, Cedar: 30}
    production: {Dye: 5}
    consumption: {Cedar: 10}
  - name: Carthage
    coords: {x: 40, y: 30}
    base_prices: {Dye: 120, Cedar: 20}
    production: {Cedar: 15}
    specialties: [Cedar]
ships:
  - name: Bireme
    capacity: 80
    speed: 2
    home_port: Tyre
events:
  city:
    - name: Dye Fever
      description: Everyone wants purple
      price_modifier: 1.5
      affected_goods: [Dye]
      duration: 3
`
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 90, cfg.Days)
	assert.Equal(t, "daily", cfg.WeatherPolicy)
	assert.Equal(t, "permanent", cfg.PricePolicy)
	require.Len(t, cfg.Cities, 2)
	assert.Nil(t, cfg.Cities[0].Specialties)
	require.NotNil(t, cfg.Cities[1].Coords)
	assert.Equal(t, 40.0, cfg.Cities[1].Coords.X)
	require.NotNil(t, cfg.Events)
	require.Len(t, cfg.Events.City, 1)
	assert.Equal(t, []economy.Good{"Dye"}, cfg.Events.City[0].AffectedGoods)

	sim, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, events.WeatherDaily, sim.WeatherPolicy)
	assert.Equal(t, 50.0, sim.Map.Distance("Tyre", "Carthage"))
	assert.True(t, sim.Cities["Carthage"].Specialties["Cedar"])
	assert.Equal(t, "Tyre", sim.Ships["Bireme"].Location)
	assert.Len(t, sim.Catalog.City, 1)
	assert.Len(t, sim.Catalog.Weather, 7)
	assert.Len(t, sim.Catalog.Pirate, 5)
	assert.Equal(t, fleet.DefaultGold, sim.Ships["Bireme"].Gold)
}

func TestPartialCatalogKeepsOtherEventKinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather-only.yaml")
	scenario := `
events:
  weather:
    - name: Doldrums
      description: The wind dies away
      speed_modifier: 0.4
      duration: 2
`
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	sim, err := cfg.Build()
	require.NoError(t, err)
	require.Len(t, sim.Catalog.Weather, 1)
	assert.Equal(t, "Doldrums", sim.Catalog.Weather[0].EventName)

	sim.Run(365)
	assert.Greater(t, sim.Stats.CityEvents, 0)
	assert.Greater(t, sim.Stats.PirateRaids, 0)
	assert.Greater(t, sim.Stats.WeatherDraws, 0)
}

func TestShipGoldZeroIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broke.yaml")
	scenario := `
ships:
  - name: Pauper
    capacity: 50
    speed: 2
    gold: 0
  - name: Merchant
    capacity: 50
    speed: 2
`
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Ships[0].Gold)
	assert.Nil(t, cfg.Ships[1].Gold)

	sim, err := cfg.Build()
	require.NoError(t, err)
	assert.Zero(t, sim.Ships["Pauper"].Gold)
	assert.Equal(t, fleet.DefaultGold, sim.Ships["Merchant"].Gold)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("days: [not a number"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative days", func(c *Config) { c.Days = -1 }},
		{"one city", func(c *Config) { c.Cities = c.Cities[:1] }},
		{"duplicate city", func(c *Config) { c.Cities[1].Name = c.Cities[0].Name }},
		{"zero price", func(c *Config) { c.Cities[0].BasePrices["Spice"] = 0 }},
		{"too many specialties", func(c *Config) { c.Cities[0].Specialties = []string{"Spice", "Silk", "Tea", "Wine"} }},
		{"bad price policy", func(c *Config) { c.PricePolicy = "forever" }},
		{"bad weather policy", func(c *Config) { c.WeatherPolicy = "hourly" }},
		{"duplicate ship", func(c *Config) { c.Ships[1].Name = c.Ships[0].Name }},
		{"zero speed", func(c *Config) { c.Ships[0].Speed = 0 }},
		{"bad preference", func(c *Config) { c.Ships[0].Preference = "luxury" }},
		{"unknown home port", func(c *Config) { c.Ships[0].HomePort = "Atlantis" }},
		{"negative gold", func(c *Config) { gold := -5.0; c.Ships[0].Gold = &gold }},
		{"zero speed modifier", func(c *Config) {
			c.Events = &events.Catalog{Weather: []events.WeatherEvent{{EventName: "Becalmed", SpeedModifier: 0, Duration: 2}}}
		}},
		{"negative speed modifier", func(c *Config) {
			c.Events = &events.Catalog{Weather: []events.WeatherEvent{{EventName: "Backwards", SpeedModifier: -1, Duration: 2}}}
		}},
		{"zero price modifier", func(c *Config) {
			c.Events = &events.Catalog{City: []events.CityEvent{{EventName: "Giveaway", PriceModifier: 0, Duration: 2}}}
		}},
		{"steal above one", func(c *Config) {
			c.Events = &events.Catalog{Pirate: []events.PirateEvent{{EventName: "Greedy", StealPercent: 1.5}}}
		}},
		{"negative steal", func(c *Config) {
			c.Events = &events.Catalog{Pirate: []events.PirateEvent{{EventName: "Generous", StealPercent: -0.1}}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
			_, err := cfg.Build()
			assert.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvDays, "30")
	t.Setenv(EnvDB, "out/run.db")
	t.Setenv(EnvPricePolicy, "expiring")
	t.Setenv(EnvWeatherPolicy, "daily")
	t.Setenv(EnvCurrency, "not-a-number")

	cfg := FromEnv()
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 30, cfg.Days)
	assert.Equal(t, "out/run.db", cfg.DBPath)
	assert.Equal(t, "expiring", cfg.PricePolicy)
	assert.Equal(t, "daily", cfg.WeatherPolicy)
	assert.Equal(t, 20000.0, cfg.CurrencySupply)
	require.NoError(t, cfg.Validate())
}

func TestBuildDefault(t *testing.T) {
	sim, err := Default().Build()
	require.NoError(t, err)
	assert.Len(t, sim.CityNames(), 7)
	assert.Len(t, sim.ShipNames(), 7)
	assert.Len(t, sim.Map.Routes(), 21)
	assert.Len(t, sim.Catalog.City, 11)
	assert.True(t, sim.Cities["Aden"].Specialties["Pearl"])

	again, err := Default().Build()
	require.NoError(t, err)
	assert.Equal(t, sim.Map.Coords, again.Map.Coords)
}
