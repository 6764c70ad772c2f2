// Package fleet provides ships: cargo held by quality, gold, skills, and the
// docked/in-transit state machine.
package fleet

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/talgya/tradewinds/internal/economy"
)

// Skill bounds.
const (
	MinSkill = 1.0
	MaxSkill = 2.0

	DefaultGold       = 1000.0
	DefaultSkillGain  = 0.05
	capacityTolerance = 1e-9
)

// Preference biases which quality tiers a ship's captain favours.
type Preference uint8

const (
	PreferQuality Preference = iota // Favours fine and superb
	PreferPrice                     // Favours rough and common
)

func (p Preference) String() string {
	if p == PreferPrice {
		return "price"
	}
	return "quality"
}

// ParsePreference maps "quality" or "price" to a Preference.
func ParsePreference(s string) (Preference, error) {
	switch s {
	case "quality", "":
		return PreferQuality, nil
	case "price":
		return PreferPrice, nil
	default:
		return PreferQuality, fmt.Errorf("unknown preference %q", s)
	}
}

// RecordKind distinguishes trade history entries.
type RecordKind string

const (
	RecordBuy   RecordKind = "buy"
	RecordSell  RecordKind = "sell"
	RecordRoute RecordKind = "route"
)

// TradeRecord is one entry of a ship's trade history.
type TradeRecord struct {
	Kind     RecordKind      `json:"kind"`
	Day      int             `json:"day"`
	Good     economy.Good    `json:"good,omitempty"`
	Quality  economy.Quality `json:"quality"`
	Amount   float64         `json:"amount,omitempty"`
	Price    float64         `json:"price,omitempty"`
	Location string          `json:"location,omitempty"`
	From     string          `json:"from,omitempty"`
	To       string          `json:"to,omitempty"`
	Days     float64         `json:"estimated_days,omitempty"`
	Cost     float64         `json:"cost,omitempty"`
}

// MarshalJSON omits the quality of route records, which move no goods.
func (r TradeRecord) MarshalJSON() ([]byte, error) {
	type record TradeRecord
	out := struct {
		record
		Quality *economy.Quality `json:"quality,omitempty"`
	}{record: record(r)}
	if r.Kind != RecordRoute {
		out.Quality = &r.Quality
	}
	return json.Marshal(out)
}

// RouteCost records the cost paid for one voyage.
type RouteCost struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Cost float64 `json:"cost"`
	Days int     `json:"days"` // Days actually spent at sea
}

// Weather is a speed modifier riding along with a ship for a number of days.
type Weather struct {
	Name          string  `json:"name"`
	SpeedModifier float64 `json:"speed_modifier"`
	RemainingDays int     `json:"remaining_days"`
}

// Spec is the static description a Ship is built from.
type Spec struct {
	Name         string
	Capacity     float64
	Speed        float64
	Gold         float64 // Zero starts with DefaultGold
	Preference   Preference
	SailingSkill float64
	TradingSkill float64
	HomePort     string
}

// Ship is an autonomous trader.
type Ship struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Capacity   float64    `json:"capacity"`
	Speed      float64    `json:"speed"`
	Size       float64    `json:"size"`
	Crew       int        `json:"crew"`
	Preference Preference `json:"preference"`

	Cargo map[economy.Good]*economy.Stock `json:"-"`
	Gold  float64                         `json:"gold"`

	// Location is set while docked. Origin, Destination, and InTransit are
	// set while at sea. A ship is never both.
	Location      string  `json:"location,omitempty"`
	Origin        string  `json:"origin,omitempty"`
	Destination   string  `json:"destination,omitempty"`
	InTransit     bool    `json:"in_transit"`
	DaysInTransit int     `json:"days_in_transit"`
	TravelTime    float64 `json:"travel_time"`
	Progress      float64 `json:"progress"` // Sailing days covered toward TravelTime

	SailingSkill float64 `json:"sailing_skill"`
	TradingSkill float64 `json:"trading_skill"`

	Weather      []Weather     `json:"weather,omitempty"`
	TradeHistory []TradeRecord `json:"-"`
	GoldHistory  []float64     `json:"-"`
	RouteCosts   []RouteCost   `json:"-"`

	day int // Stamp for history entries
}

// New builds a ship from its spec.
func New(spec Spec) *Ship {
	gold := spec.Gold
	if gold == 0 {
		gold = DefaultGold
	}
	size := spec.Capacity / 100
	return &Ship{
		ID:           uuid.New(),
		Name:         spec.Name,
		Capacity:     spec.Capacity,
		Speed:        spec.Speed,
		Size:         size,
		Crew:         int(10 + size*20),
		Preference:   spec.Preference,
		Cargo:        make(map[economy.Good]*economy.Stock),
		Gold:         gold,
		Location:     spec.HomePort,
		SailingSkill: clampSkill(spec.SailingSkill),
		TradingSkill: clampSkill(spec.TradingSkill),
	}
}

// SetDay stamps subsequent history records with day.
func (s *Ship) SetDay(day int) {
	s.day = day
}

// Docked reports whether the ship is in port.
func (s *Ship) Docked() bool {
	return !s.InTransit && s.Location != ""
}

// CargoTotal returns the units aboard across all goods and tiers.
func (s *Ship) CargoTotal() float64 {
	total := 0.0
	for _, st := range s.Cargo {
		total += st.Total()
	}
	return total
}

// CargoOf returns the units of g aboard across all tiers.
func (s *Ship) CargoOf(g economy.Good) float64 {
	st, ok := s.Cargo[g]
	if !ok {
		return 0
	}
	return st.Total()
}

// FreeSpace returns the remaining hold capacity.
func (s *Ship) FreeSpace() float64 {
	free := s.Capacity - s.CargoTotal()
	if free < capacityTolerance {
		return 0
	}
	return free
}

// Load takes aboard up to amt units of g at tier q, paying price per unit.
// Loads beyond free space are clamped; with no space it is a no-op.
// Returns the amount loaded.
func (s *Ship) Load(g economy.Good, q economy.Quality, amt, price float64) float64 {
	actual := math.Min(amt, s.FreeSpace())
	if actual <= 0 || !q.Valid() {
		return 0
	}
	st, ok := s.Cargo[g]
	if !ok {
		st = &economy.Stock{}
		s.Cargo[g] = st
	}
	st.Add(q, actual)
	s.Gold -= actual * price
	s.TradeHistory = append(s.TradeHistory, TradeRecord{
		Kind:     RecordBuy,
		Day:      s.day,
		Good:     g,
		Quality:  q,
		Amount:   actual,
		Price:    price,
		Location: s.Location,
	})
	return actual
}

// Unload sells every tier of g at price per unit and returns the revenue.
func (s *Ship) Unload(g economy.Good, price float64) float64 {
	st, ok := s.Cargo[g]
	if !ok {
		return 0
	}
	revenue := 0.0
	for _, q := range economy.Qualities {
		amt := st[q]
		if amt <= 0 {
			continue
		}
		st[q] = 0
		revenue += amt * price
		s.TradeHistory = append(s.TradeHistory, TradeRecord{
			Kind:     RecordSell,
			Day:      s.day,
			Good:     g,
			Quality:  q,
			Amount:   amt,
			Price:    price,
			Location: s.Location,
		})
	}
	delete(s.Cargo, g)
	s.Gold += revenue
	return revenue
}

// Depart puts the ship to sea toward dest. The route cost is reduced by the
// trading skill; gold is floored at zero once it is paid.
func (s *Ship) Depart(dest string, travelTime, routeCost float64) {
	origin := s.Location
	cost := routeCost / s.TradingSkill

	s.Origin = origin
	s.Destination = dest
	s.Location = ""
	s.InTransit = true
	s.DaysInTransit = 0
	s.Progress = 0
	s.TravelTime = travelTime

	s.Gold -= cost
	if s.Gold < 0 {
		s.Gold = 0
	}

	s.RouteCosts = append(s.RouteCosts, RouteCost{From: origin, To: dest, Cost: cost})
	s.TradeHistory = append(s.TradeHistory, TradeRecord{
		Kind: RecordRoute,
		Day:  s.day,
		From: origin,
		To:   dest,
		Days: travelTime,
		Cost: cost,
	})
}

// Advance sails one day. speedFactor scales the distance covered that day.
// Returns true when the ship arrives; on arrival it docks at the destination
// and records its gold.
func (s *Ship) Advance(speedFactor float64) bool {
	if !s.InTransit {
		return false
	}
	if s.Destination == "" {
		s.InTransit = false
		return false
	}
	s.DaysInTransit++
	s.Progress += speedFactor
	if len(s.RouteCosts) > 0 {
		s.RouteCosts[len(s.RouteCosts)-1].Days++
	}
	if s.Progress < s.TravelTime {
		return false
	}
	s.Location = s.Destination
	s.Origin = ""
	s.Destination = ""
	s.InTransit = false
	s.DaysInTransit = 0
	s.TravelTime = 0
	s.Progress = 0
	s.Weather = nil
	s.GoldHistory = append(s.GoldHistory, s.Gold)
	return true
}

// RecordGold appends the current gold to the gold history.
func (s *Ship) RecordGold() {
	s.GoldHistory = append(s.GoldHistory, s.Gold)
}

// Rob removes fraction of every tier of every good and of gold. Returns the
// cargo units and gold taken.
func (s *Ship) Rob(fraction float64) (float64, float64) {
	fraction = math.Max(0, math.Min(1, fraction))
	cargo := 0.0
	for _, st := range s.Cargo {
		cargo += st.Scale(1 - fraction)
	}
	gold := s.Gold * fraction
	s.Gold -= gold
	return cargo, gold
}

// ImproveSailing raises the sailing skill, capped at MaxSkill.
func (s *Ship) ImproveSailing(amt float64) {
	s.SailingSkill = clampSkill(s.SailingSkill + amt)
}

// ImproveTrading raises the trading skill, capped at MaxSkill.
func (s *Ship) ImproveTrading(amt float64) {
	s.TradingSkill = clampSkill(s.TradingSkill + amt)
}

// TotalRouteCosts sums every voyage's cost.
func (s *Ship) TotalRouteCosts() float64 {
	total := 0.0
	for _, rc := range s.RouteCosts {
		total += rc.Cost
	}
	return total
}

// PrefersTier reports the score multiplier the captain applies to tier q.
func (s *Ship) PrefersTier(q economy.Quality) float64 {
	switch {
	case s.Preference == PreferQuality && q.High():
		return 1.2
	case s.Preference == PreferPrice && !q.High():
		return 1.1
	default:
		return 1.0
	}
}

func clampSkill(v float64) float64 {
	return math.Max(MinSkill, math.Min(MaxSkill, v))
}
