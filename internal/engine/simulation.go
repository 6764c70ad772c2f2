// Simulation ties together cities, ships, the map, and random events, and
// runs them each day.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/events"
	"github.com/talgya/tradewinds/internal/fleet"
	"github.com/talgya/tradewinds/internal/world"
)

// Event probabilities.
const (
	CityEventChance    = 0.10 // Per city per day
	PirateChance       = 0.05 // Per ship at sea per day
	WeatherChance      = 0.50 // Per departure
	SkillGainChance    = 0.10 // Per arrival
	DefaultCurrency    = 20000.0
	currencyHistoryCap = economy.DefaultHistoryCap
)

// Event categories.
const (
	CategoryVoyage  = "voyage"
	CategorySkill   = "skill"
	CategoryWeather = "weather"
	CategoryPirate  = "pirate"
	CategoryCity    = "city"
)

// Options tunes a simulation.
type Options struct {
	WeatherPolicy  events.WeatherPolicy
	Catalog        events.Catalog
	CurrencySupply float64 // Initial money supply; DefaultCurrency if zero
}

// Simulation holds the complete world state and wires systems together.
// Every stochastic call draws from one seeded source.
type Simulation struct {
	Map    *world.Map
	Cities map[string]*economy.City
	Ships  map[string]*fleet.Ship
	Events []Event // Append-only

	CurrencySupply   float64
	CurrencyHistory  *economy.History
	InflationRate    float64 // Global rate set by the last currency tick
	InflationHistory *economy.History

	Catalog       events.Catalog
	WeatherPolicy events.WeatherPolicy

	// Stable iteration order.
	cityNames []string
	shipNames []string

	rng     *entropy.Source
	clock   *Engine
	started bool

	Stats SimStats
}

// Event is a notable occurrence in the world.
type Event struct {
	Day         int    `json:"day" db:"day"`
	Category    string `json:"category" db:"category"`
	Description string `json:"description" db:"description"`
}

func (e Event) String() string {
	return fmt.Sprintf("Day %d: %s", e.Day, e.Description)
}

// SimStats tracks aggregate statistics.
type SimStats struct {
	TotalGold    float64 `json:"total_gold"`
	ShipsAtSea   int     `json:"ships_at_sea"`
	Voyages      int     `json:"voyages"`
	Arrivals     int     `json:"arrivals"`
	PirateRaids  int     `json:"pirate_raids"`
	CityEvents   int     `json:"city_events"`
	WeatherDraws int     `json:"weather_events"`
}

// New creates a Simulation. Cities and ships keep the order given; a later
// entry with a duplicate name replaces the earlier one.
func New(m *world.Map, cities []*economy.City, ships []*fleet.Ship, rng *entropy.Source, opts Options) *Simulation {
	supply := opts.CurrencySupply
	if supply <= 0 {
		supply = DefaultCurrency
	}
	catalog := opts.Catalog.WithDefaults()

	s := &Simulation{
		Map:              m,
		Cities:           make(map[string]*economy.City, len(cities)),
		Ships:            make(map[string]*fleet.Ship, len(ships)),
		CurrencySupply:   supply,
		CurrencyHistory:  economy.NewHistory(currencyHistoryCap),
		InflationHistory: economy.NewHistory(currencyHistoryCap),
		Catalog:          catalog,
		WeatherPolicy:    opts.WeatherPolicy,
		rng:              rng,
		clock:            NewEngine(),
	}
	for _, c := range cities {
		if _, dup := s.Cities[c.Name]; !dup {
			s.cityNames = append(s.cityNames, c.Name)
		}
		s.Cities[c.Name] = c
	}
	for _, sh := range ships {
		if _, dup := s.Ships[sh.Name]; !dup {
			s.shipNames = append(s.shipNames, sh.Name)
		}
		s.Ships[sh.Name] = sh
	}
	s.CurrencyHistory.Push(supply)
	s.InflationHistory.Push(0)

	s.clock.OnRouteRefresh = s.refreshRoutes
	s.clock.OnMonth = s.tickMonth
	s.clock.OnDay = s.tickDay
	s.updateStats()
	return s
}

// Day returns the next day to be simulated.
func (s *Simulation) Day() int {
	return s.clock.Day
}

// CityNames returns city names in simulation order.
func (s *Simulation) CityNames() []string {
	return append([]string(nil), s.cityNames...)
}

// ShipNames returns ship names in simulation order.
func (s *Simulation) ShipNames() []string {
	return append([]string(nil), s.shipNames...)
}

// Run places and primes ships on the first call, then simulates days days.
func (s *Simulation) Run(days int) {
	if !s.started {
		s.initShips()
		s.started = true
	}
	slog.Info("simulation started", "day", s.Day(), "days", days,
		"cities", len(s.cityNames), "ships", len(s.shipNames))
	s.clock.Run(days)
	s.updateStats()
	slog.Info("simulation finished", "day", s.Day(),
		"total_gold", fmt.Sprintf("%.2f", s.Stats.TotalGold),
		"events", len(s.Events))
}

// Step simulates a single day.
func (s *Simulation) Step() {
	if !s.started {
		s.initShips()
		s.started = true
	}
	s.clock.Step()
}

// initShips docks unplaced ships at a random city, seeds their gold history,
// and lets each make its first trading decision.
func (s *Simulation) initShips() {
	for _, name := range s.shipNames {
		sh := s.Ships[name]
		sh.SetDay(s.Day())
		if _, ok := s.Cities[sh.Location]; !ok && !sh.InTransit {
			if i := s.rng.Pick(len(s.cityNames)); i >= 0 {
				sh.Location = s.cityNames[i]
			}
		}
		if len(sh.GoldHistory) == 0 {
			sh.RecordGold()
		}
	}
	for _, name := range s.shipNames {
		sh := s.Ships[name]
		if sh.Docked() {
			s.trade(sh)
		}
	}
}

func (s *Simulation) refreshRoutes(day int) {
	s.Map.UpdateConditions(s.rng)
	slog.Debug("routes refreshed", "day", day)
}

func (s *Simulation) tickMonth(day int) {
	tick := s.AdjustCurrency()
	s.updateStats()
	slog.Info("monthly report",
		"day", day,
		"time", SimTime(day),
		"currency_supply", fmt.Sprintf("%.2f", s.CurrencySupply),
		"wealth_ratio", fmt.Sprintf("%.3f", tick.Ratio),
		"inflation", fmt.Sprintf("%.4f", tick.Change),
		"shock", tick.Shock,
		"total_gold", fmt.Sprintf("%.2f", s.Stats.TotalGold),
		"ships_at_sea", s.Stats.ShipsAtSea,
		"events", len(s.Events),
	)
}

// tickDay runs the daily order: markets, ships, then random events.
func (s *Simulation) tickDay(day int) {
	for _, name := range s.cityNames {
		c := s.Cities[name]
		c.ApplyInflation(s.InflationRate)
		c.Update(s.rng)
	}

	for _, name := range s.shipNames {
		sh := s.Ships[name]
		sh.SetDay(day)
		switch {
		case sh.InTransit:
			s.sail(sh)
		case sh.Docked():
			s.trade(sh)
		}
	}

	s.triggerEvents()
}

func (s *Simulation) logEvent(category, format string, args ...any) {
	e := Event{Day: s.Day(), Category: category, Description: fmt.Sprintf(format, args...)}
	s.Events = append(s.Events, e)
	slog.Debug("event", "day", e.Day, "category", e.Category, "description", e.Description)
}

// EventLog returns every event as a human-readable line, oldest first.
func (s *Simulation) EventLog() []string {
	out := make([]string, len(s.Events))
	for i, e := range s.Events {
		out[i] = e.String()
	}
	return out
}

func (s *Simulation) updateStats() {
	total := 0.0
	atSea := 0
	for _, name := range s.shipNames {
		sh := s.Ships[name]
		total += sh.Gold
		if sh.InTransit {
			atSea++
		}
	}
	s.Stats.TotalGold = total
	s.Stats.ShipsAtSea = atSea
}
