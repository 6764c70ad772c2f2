package engine

import (
	"slices"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/fleet"
	"github.com/talgya/tradewinds/internal/world"
)

// CitySnapshot is a read-only copy of one city's market state.
type CitySnapshot struct {
	Name             string                                      `json:"name"`
	CurrentPrices    map[economy.Good]float64                    `json:"current_prices"`
	Inventory        map[economy.Good]float64                    `json:"inventory"`
	Qualities        map[economy.Good]map[economy.Quality]float64 `json:"qualities"`
	PriceHistory     map[economy.Good][]float64                  `json:"price_history"`
	InventoryHistory map[economy.Good][]float64                  `json:"inventory_history"`
	Specialties      []economy.Good                              `json:"specialties"`
	InflationRate    float64                                     `json:"inflation_rate"`
	PriceLevel       float64                                     `json:"price_level"`
}

// ShipSnapshot is a read-only copy of one ship's state.
type ShipSnapshot struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Gold         float64                  `json:"gold"`
	Location     string                   `json:"location,omitempty"`
	Destination  string                   `json:"destination,omitempty"`
	InTransit    bool                     `json:"in_transit"`
	SailingSkill float64                  `json:"sailing_skill"`
	TradingSkill float64                  `json:"trading_skill"`
	Preference   string                   `json:"preference"`
	Cargo        map[economy.Good]float64 `json:"cargo"`
	GoldHistory  []float64                `json:"gold_history"`
	TradeHistory []fleet.TradeRecord      `json:"trade_history"`
	RouteCosts   []fleet.RouteCost        `json:"route_costs"`
}

// Snapshot is everything reporting collaborators may read after a run.
type Snapshot struct {
	Day              int                    `json:"day"`
	Cities           []CitySnapshot         `json:"cities"`
	Ships            []ShipSnapshot         `json:"ships"`
	Routes           []world.RouteInfo      `json:"routes"`
	Coords           map[string]world.Point `json:"coords"`
	CurrencyHistory  []float64              `json:"currency_history"`
	InflationHistory []float64              `json:"inflation_history"`
	Events           []Event                `json:"events"`
	Stats            SimStats               `json:"stats"`
}

// Snapshot copies the current state. Mutating the result never affects the
// simulation.
func (s *Simulation) Snapshot() Snapshot {
	s.updateStats()
	snap := Snapshot{
		Day:              s.Day(),
		Routes:           s.Map.Routes(),
		Coords:           make(map[string]world.Point, len(s.Map.Coords)),
		CurrencyHistory:  s.CurrencyHistory.Values(),
		InflationHistory: s.InflationHistory.Values(),
		Events:           slices.Clone(s.Events),
		Stats:            s.Stats,
	}
	for name, p := range s.Map.Coords {
		snap.Coords[name] = p
	}
	for _, name := range s.cityNames {
		snap.Cities = append(snap.Cities, snapshotCity(s.Cities[name]))
	}
	for _, name := range s.shipNames {
		snap.Ships = append(snap.Ships, snapshotShip(s.Ships[name]))
	}
	return snap
}

func snapshotCity(c *economy.City) CitySnapshot {
	cs := CitySnapshot{
		Name:             c.Name,
		CurrentPrices:    make(map[economy.Good]float64, len(c.CurrentPrices)),
		Inventory:        make(map[economy.Good]float64),
		Qualities:        make(map[economy.Good]map[economy.Quality]float64),
		PriceHistory:     make(map[economy.Good][]float64),
		InventoryHistory: make(map[economy.Good][]float64),
		InflationRate:    c.InflationRate,
		PriceLevel:       c.PriceLevel,
	}
	for g, p := range c.CurrentPrices {
		cs.CurrentPrices[g] = p
	}
	for _, g := range c.Goods() {
		cs.Inventory[g] = c.Inventory(g)
		if q := c.AvailableQualities(g); len(q) > 0 {
			cs.Qualities[g] = q
		}
		cs.PriceHistory[g] = c.PriceHistory[g].Values()
		cs.InventoryHistory[g] = c.InventoryHistory[g].Values()
	}
	for g := range c.Specialties {
		cs.Specialties = append(cs.Specialties, g)
	}
	slices.Sort(cs.Specialties)
	return cs
}

func snapshotShip(sh *fleet.Ship) ShipSnapshot {
	ss := ShipSnapshot{
		ID:           sh.ID.String(),
		Name:         sh.Name,
		Gold:         sh.Gold,
		Location:     sh.Location,
		Destination:  sh.Destination,
		InTransit:    sh.InTransit,
		SailingSkill: sh.SailingSkill,
		TradingSkill: sh.TradingSkill,
		Preference:   sh.Preference.String(),
		Cargo:        make(map[economy.Good]float64, len(sh.Cargo)),
		GoldHistory:  slices.Clone(sh.GoldHistory),
		TradeHistory: slices.Clone(sh.TradeHistory),
		RouteCosts:   slices.Clone(sh.RouteCosts),
	}
	for g := range sh.Cargo {
		ss.Cargo[g] = sh.CargoOf(g)
	}
	return ss
}
