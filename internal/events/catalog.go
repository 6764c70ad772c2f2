package events

import (
	"fmt"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/entropy"
)

// Catalog holds the templates random events are drawn from.
type Catalog struct {
	Weather []WeatherEvent `yaml:"weather" json:"weather"`
	Pirate  []PirateEvent  `yaml:"pirate" json:"pirate"`
	City    []CityEvent    `yaml:"city" json:"city"`
}

// DefaultCatalog returns the stock event templates.
func DefaultCatalog() Catalog {
	return Catalog{
		Weather: []WeatherEvent{
			{"Storm", "A violent storm sweeps the sea lanes", 0.5, 3},
			{"Fog", "Thick fog blankets the water", 0.7, 2},
			{"Tailwind", "A steady wind fills the sails", 1.5, 2},
			{"Hurricane", "A hurricane churns the open sea", 0.3, 4},
			{"Calm Seas", "The sea lies flat and quiet", 1.2, 3},
			{"Rainy Season", "Endless rain slows the voyage", 0.6, 3},
			{"Aurora", "Strange lights in the sky spur the crew on", 1.3, 2},
		},
		Pirate: []PirateEvent{
			{"Pirate Raid", "Pirates board and plunder the hold", 0.2},
			{"Pirate Fleet", "A pirate fleet surrounds the ship", 0.4},
			{"Smugglers", "Smugglers skim part of the cargo", 0.1},
			{"Corsair Captain", "A notorious corsair strikes", 0.5},
			{"Sea Raiders", "Raiders from the islands attack", 0.6},
		},
		City: []CityEvent{
			{"Bumper Harvest", "An abundant harvest floods the granaries", 0.7, []economy.Good{"Grain"}, 5},
			{"Ore Discovery", "A new seam of ore is found", 0.8, []economy.Good{"Iron Ore"}, 5},
			{"Blockade", "A naval blockade chokes trade", 1.3, nil, 3},
			{"Festival", "A grand festival draws buyers of luxuries", 1.4, []economy.Good{"Silk", "Gems", "Spice", "Perfume", "Wine"}, 3},
			{"Plague", "Disease spreads through the port", 1.2, nil, 7},
			{"Royal Purchase", "The crown buys up treasures", 1.5, []economy.Good{"Porcelain", "Pearl", "Jade", "Amber"}, 2},
			{"Tea Craze", "Tea becomes the fashion of the season", 1.6, []economy.Good{"Tea"}, 5},
			{"Craft Boom", "Workshops hunger for raw materials", 1.3, []economy.Good{"Wool", "Silk", "Iron Ore"}, 4},
			{"New Trade Route", "A new route opens and prices ease", 0.85, nil, 10},
			{"Herb Shortage", "Healers cannot find enough herbs", 2.0, []economy.Good{"Herbs"}, 3},
			{"Spice War", "Merchant houses fight over spice", 1.8, []economy.Good{"Spice", "Incense Wood"}, 4},
		},
	}
}

// WithDefaults fills every kind left empty with the stock templates. Kinds
// that have templates are kept as given.
func (c Catalog) WithDefaults() Catalog {
	stock := DefaultCatalog()
	if len(c.Weather) == 0 {
		c.Weather = stock.Weather
	}
	if len(c.Pirate) == 0 {
		c.Pirate = stock.Pirate
	}
	if len(c.City) == 0 {
		c.City = stock.City
	}
	return c
}

// Validate rejects templates whose magnitudes the simulation cannot apply.
func (c Catalog) Validate() error {
	for _, e := range c.Weather {
		if e.EventName == "" {
			return fmt.Errorf("weather event without a name")
		}
		if e.SpeedModifier <= 0 {
			return fmt.Errorf("weather event %q: speed modifier must be positive, got %g", e.EventName, e.SpeedModifier)
		}
		if e.Duration < 0 {
			return fmt.Errorf("weather event %q: duration must not be negative", e.EventName)
		}
	}
	for _, e := range c.Pirate {
		if e.EventName == "" {
			return fmt.Errorf("pirate event without a name")
		}
		if e.StealPercent < 0 || e.StealPercent > 1 {
			return fmt.Errorf("pirate event %q: steal percent must be within [0, 1], got %g", e.EventName, e.StealPercent)
		}
	}
	for _, e := range c.City {
		if e.EventName == "" {
			return fmt.Errorf("city event without a name")
		}
		if e.PriceModifier <= 0 {
			return fmt.Errorf("city event %q: price modifier must be positive, got %g", e.EventName, e.PriceModifier)
		}
		if e.Duration < 0 {
			return fmt.Errorf("city event %q: duration must not be negative", e.EventName)
		}
	}
	return nil
}

// DrawWeather picks a weather template uniformly.
func (c Catalog) DrawWeather(rng *entropy.Source) (WeatherEvent, bool) {
	i := rng.Pick(len(c.Weather))
	if i < 0 {
		return WeatherEvent{}, false
	}
	return c.Weather[i], true
}

// DrawPirate picks a pirate template uniformly.
func (c Catalog) DrawPirate(rng *entropy.Source) (PirateEvent, bool) {
	i := rng.Pick(len(c.Pirate))
	if i < 0 {
		return PirateEvent{}, false
	}
	return c.Pirate[i], true
}

// DrawCity picks a city template uniformly.
func (c Catalog) DrawCity(rng *entropy.Source) (CityEvent, bool) {
	i := rng.Pick(len(c.City))
	if i < 0 {
		return CityEvent{}, false
	}
	return c.City[i], true
}

// All returns every template as an Event.
func (c Catalog) All() []Event {
	out := make([]Event, 0, len(c.Weather)+len(c.Pirate)+len(c.City))
	for _, e := range c.Weather {
		out = append(out, e)
	}
	for _, e := range c.Pirate {
		out = append(out, e)
	}
	for _, e := range c.City {
		out = append(out, e)
	}
	return out
}
