// Package config loads simulation scenarios: seed, run length, policies, and
// the cities and ships a run starts from.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/events"
	"github.com/talgya/tradewinds/internal/fleet"
	"github.com/talgya/tradewinds/internal/world"
)

// Config is a complete scenario.
type Config struct {
	Seed           int64           `yaml:"seed" json:"seed"`
	Days           int             `yaml:"days" json:"days"`
	DBPath         string          `yaml:"db_path" json:"db_path"` // Empty disables export
	LogLevel       string          `yaml:"log_level" json:"log_level"`
	PricePolicy    string          `yaml:"price_policy" json:"price_policy"`
	WeatherPolicy  string          `yaml:"weather_policy" json:"weather_policy"`
	CurrencySupply float64         `yaml:"currency_supply" json:"currency_supply"`
	HistoryCap     int             `yaml:"history_cap" json:"history_cap"`
	Cities         []CityConfig    `yaml:"cities" json:"cities"`
	Ships          []ShipConfig    `yaml:"ships" json:"ships"`
	Events         *events.Catalog `yaml:"events,omitempty" json:"events,omitempty"` // Nil uses the stock catalog
}

// CityConfig describes one port.
type CityConfig struct {
	Name        string             `yaml:"name" json:"name"`
	Coords      *world.Point       `yaml:"coords,omitempty" json:"coords,omitempty"`
	BasePrices  map[string]float64 `yaml:"base_prices" json:"base_prices"`
	Production  map[string]float64 `yaml:"production" json:"production"`
	Consumption map[string]float64 `yaml:"consumption" json:"consumption"`
	Specialties []string           `yaml:"specialties" json:"specialties"` // Omitted draws at random
}

// ShipConfig describes one ship.
type ShipConfig struct {
	Name       string   `yaml:"name" json:"name"`
	Capacity   float64  `yaml:"capacity" json:"capacity"`
	Speed      float64  `yaml:"speed" json:"speed"`
	Gold       *float64 `yaml:"gold,omitempty" json:"gold,omitempty"` // Nil starts with fleet.DefaultGold
	Preference string   `yaml:"preference" json:"preference"`
	HomePort   string   `yaml:"home_port" json:"home_port"` // Empty docks at a random city
}

// Load reads a YAML scenario on top of Default and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scenario: %w", err)
	}
	if err := yaml.Unmarshal(f, &cfg); err != nil {
		return cfg, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("scenario %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the scenario for values the simulation cannot run with.
func (c Config) Validate() error {
	if c.Days < 0 {
		return fmt.Errorf("days must not be negative, got %d", c.Days)
	}
	if len(c.Cities) < 2 {
		return fmt.Errorf("need at least two cities, got %d", len(c.Cities))
	}
	if _, err := events.ParsePricePolicy(c.PricePolicy); err != nil {
		return fmt.Errorf("price policy: %w", err)
	}
	if _, err := events.ParseWeatherPolicy(c.WeatherPolicy); err != nil {
		return fmt.Errorf("weather policy: %w", err)
	}

	if c.Events != nil {
		if err := c.Events.Validate(); err != nil {
			return fmt.Errorf("events: %w", err)
		}
	}

	cities := make(map[string]bool, len(c.Cities))
	for _, city := range c.Cities {
		if city.Name == "" {
			return fmt.Errorf("city without a name")
		}
		if cities[city.Name] {
			return fmt.Errorf("duplicate city %q", city.Name)
		}
		cities[city.Name] = true
		if len(city.BasePrices) == 0 {
			return fmt.Errorf("city %q has no base prices", city.Name)
		}
		for good, price := range city.BasePrices {
			if price <= 0 {
				return fmt.Errorf("city %q: base price of %s must be positive", city.Name, good)
			}
		}
		if len(city.Specialties) > economy.MaxSpecialties {
			return fmt.Errorf("city %q: at most %d specialties", city.Name, economy.MaxSpecialties)
		}
	}

	ships := make(map[string]bool, len(c.Ships))
	for _, ship := range c.Ships {
		if ship.Name == "" {
			return fmt.Errorf("ship without a name")
		}
		if ships[ship.Name] {
			return fmt.Errorf("duplicate ship %q", ship.Name)
		}
		ships[ship.Name] = true
		if ship.Capacity <= 0 || ship.Speed <= 0 {
			return fmt.Errorf("ship %q: capacity and speed must be positive", ship.Name)
		}
		if ship.Gold != nil && *ship.Gold < 0 {
			return fmt.Errorf("ship %q: gold must not be negative", ship.Name)
		}
		if _, err := fleet.ParsePreference(ship.Preference); err != nil {
			return fmt.Errorf("ship %q: %w", ship.Name, err)
		}
		if ship.HomePort != "" && !cities[ship.HomePort] {
			return fmt.Errorf("ship %q: unknown home port %q", ship.Name, ship.HomePort)
		}
	}
	return nil
}
