// Package events provides the random events that strike cities and ships:
// weather at sea, pirate raids, and market shocks in port.
package events

import (
	"fmt"
	"strings"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/fleet"
)

// Kind is the closed set of event categories.
type Kind uint8

const (
	KindWeather Kind = iota
	KindPirate
	KindCity
)

func (k Kind) String() string {
	switch k {
	case KindWeather:
		return "weather"
	case KindPirate:
		return "pirate"
	case KindCity:
		return "city"
	default:
		return "unknown"
	}
}

// Event is an immutable event template.
type Event interface {
	Kind() Kind
	Name() string
	Description() string
	sealed()
}

// WeatherPolicy controls how long a weather event acts on a ship.
type WeatherPolicy uint8

const (
	// WeatherOneShot scales the speed used for a single travel-time
	// calculation at departure.
	WeatherOneShot WeatherPolicy = iota
	// WeatherDaily attaches the event to the ship; each day at sea the
	// ship's progress is scaled by every active modifier until it expires.
	WeatherDaily
)

func (p WeatherPolicy) String() string {
	switch p {
	case WeatherOneShot:
		return "oneshot"
	case WeatherDaily:
		return "daily"
	default:
		return "unknown"
	}
}

// ParseWeatherPolicy maps a policy name to its value.
func ParseWeatherPolicy(s string) (WeatherPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oneshot", "one-shot", "":
		return WeatherOneShot, nil
	case "daily":
		return WeatherDaily, nil
	default:
		return WeatherOneShot, fmt.Errorf("unknown weather policy %q", s)
	}
}

// ParsePricePolicy maps a policy name to its value.
func ParsePricePolicy(s string) (economy.PricePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "permanent", "":
		return economy.PricePermanent, nil
	case "expiring", "revert":
		return economy.PriceExpiring, nil
	default:
		return economy.PricePermanent, fmt.Errorf("unknown price policy %q", s)
	}
}

// WeatherEvent changes a ship's sailing speed.
type WeatherEvent struct {
	EventName     string  `yaml:"name" json:"name"`
	Text          string  `yaml:"description" json:"description"`
	SpeedModifier float64 `yaml:"speed_modifier" json:"speed_modifier"`
	Duration      int     `yaml:"duration" json:"duration"`
}

func (e WeatherEvent) Kind() Kind          { return KindWeather }
func (e WeatherEvent) Name() string        { return e.EventName }
func (e WeatherEvent) Description() string { return e.Text }
func (WeatherEvent) sealed()               {}

// Apply attaches the event to the ship under WeatherDaily and returns the
// speed multiplier for the departure calculation. Under WeatherOneShot
// nothing is attached and the modifier is returned directly.
func (e WeatherEvent) Apply(s *fleet.Ship, policy WeatherPolicy) float64 {
	if policy == WeatherDaily {
		days := e.Duration
		if days < 1 {
			days = 1
		}
		s.Weather = append(s.Weather, fleet.Weather{
			Name:          e.EventName,
			SpeedModifier: e.SpeedModifier,
			RemainingDays: days,
		})
		return 1.0
	}
	return e.SpeedModifier
}

// PirateEvent steals a fraction of a ship's cargo and gold.
type PirateEvent struct {
	EventName    string  `yaml:"name" json:"name"`
	Text         string  `yaml:"description" json:"description"`
	StealPercent float64 `yaml:"steal_percent" json:"steal_percent"`
}

func (e PirateEvent) Kind() Kind          { return KindPirate }
func (e PirateEvent) Name() string        { return e.EventName }
func (e PirateEvent) Description() string { return e.Text }
func (PirateEvent) sealed()               {}

// Apply robs the ship and returns the cargo units and gold taken.
func (e PirateEvent) Apply(s *fleet.Ship) (float64, float64) {
	return s.Rob(e.StealPercent)
}

// CityEvent multiplies the prices of some or all goods in a city.
type CityEvent struct {
	EventName     string         `yaml:"name" json:"name"`
	Text          string         `yaml:"description" json:"description"`
	PriceModifier float64        `yaml:"price_modifier" json:"price_modifier"`
	AffectedGoods []economy.Good `yaml:"affected_goods" json:"affected_goods,omitempty"`
	Duration      int            `yaml:"duration" json:"duration"`
}

func (e CityEvent) Kind() Kind          { return KindCity }
func (e CityEvent) Name() string        { return e.EventName }
func (e CityEvent) Description() string { return e.Text }
func (CityEvent) sealed()               {}

// Apply multiplies the price of every affected good the city trades, or of
// every good when AffectedGoods is empty. Returns the goods touched.
func (e CityEvent) Apply(c *economy.City) []economy.Good {
	goods := e.AffectedGoods
	if len(goods) == 0 {
		goods = c.Goods()
	}
	var touched []economy.Good
	for _, g := range goods {
		if c.ApplyPriceModifier(g, e.PriceModifier, e.Duration) {
			touched = append(touched, g)
		}
	}
	return touched
}

// SpeedFactor returns the product of a ship's active weather modifiers.
func SpeedFactor(s *fleet.Ship) float64 {
	f := 1.0
	for _, w := range s.Weather {
		f *= w.SpeedModifier
	}
	return f
}

// AgeWeather counts down a ship's weather by one day and drops what expired.
// Returns the names of expired events.
func AgeWeather(s *fleet.Ship) []string {
	var expired []string
	kept := s.Weather[:0]
	for _, w := range s.Weather {
		w.RemainingDays--
		if w.RemainingDays > 0 {
			kept = append(kept, w)
		} else {
			expired = append(expired, w.Name)
		}
	}
	s.Weather = kept
	return expired
}
