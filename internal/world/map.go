// Package world provides the trade map: city coordinates, distances, and the
// directional route conditions that govern travel time and cost.
package world

import (
	"fmt"
	"math"
	"sort"

	"github.com/talgya/tradewinds/internal/entropy"
)

// Point is a planar city position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RouteKey identifies a directed route.
type RouteKey struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Map holds every city position and every directed route between them.
type Map struct {
	Coords     map[string]Point         `json:"coords"`
	Distances  map[RouteKey]float64     `json:"-"`
	Conditions map[RouteKey]*Conditions `json:"-"`

	names []string // Insertion order
}

// NewMap creates an empty trade map.
func NewMap() *Map {
	return &Map{
		Coords:     make(map[string]Point),
		Distances:  make(map[RouteKey]float64),
		Conditions: make(map[RouteKey]*Conditions),
	}
}

// AddCity places a city on the map. Re-adding a name moves it.
func (m *Map) AddCity(name string, x, y float64) {
	if _, ok := m.Coords[name]; !ok {
		m.names = append(m.names, name)
	}
	m.Coords[name] = Point{X: x, Y: y}
}

// Cities returns city names in insertion order.
func (m *Map) Cities() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// GenerateRoutes computes distances for every pair and draws initial
// conditions for both directions. Wind differs by direction; danger and sea
// state start equal and drift apart as conditions update.
func (m *Map) GenerateRoutes(rng *entropy.Source) {
	chart := NewChart(rng.Int63())
	for i, a := range m.names {
		for _, b := range m.names[i+1:] {
			pa, pb := m.Coords[a], m.Coords[b]
			d := math.Hypot(pb.X-pa.X, pb.Y-pa.Y)
			m.Distances[RouteKey{a, b}] = d
			m.Distances[RouteKey{b, a}] = d

			mid := Point{X: (pa.X + pb.X) / 2, Y: (pa.Y + pb.Y) / 2}
			ab := chart.InitialConditions(mid, rng)
			ba := ab
			ba.WindAdvantage = rng.Uniform(0.2, 0.7)
			m.Conditions[RouteKey{a, b}] = &ab
			m.Conditions[RouteKey{b, a}] = &ba
		}
	}
}

// Distance returns the Euclidean distance between two cities, or +Inf when
// no route exists.
func (m *Map) Distance(a, b string) float64 {
	d, ok := m.Distances[RouteKey{a, b}]
	if !ok {
		return math.Inf(1)
	}
	return d
}

// Route returns the conditions of the directed route a→b.
func (m *Map) Route(a, b string) (Conditions, bool) {
	c, ok := m.Conditions[RouteKey{a, b}]
	if !ok {
		return Conditions{}, false
	}
	return *c, true
}

// TravelTime returns the days a ship of the given speed needs to sail a→b,
// rounded to the nearest half day and never less than one day.
func (m *Map) TravelTime(a, b string, speed float64) float64 {
	d := m.Distance(a, b)
	if math.IsInf(d, 1) || speed <= 0 {
		return math.Inf(1)
	}
	cond := m.conditionsOrDefault(a, b)
	effective := speed * cond.WindFactor() * cond.SeaFactor()
	days := math.Round(d/effective*2) / 2
	return math.Max(1, days)
}

// RouteCost returns the gold needed to sail a→b with a ship of the given size
// factor: hull wear, port fee, crew wages, supplies, and a danger surcharge.
func (m *Map) RouteCost(a, b string, size float64) float64 {
	d := m.Distance(a, b)
	if math.IsInf(d, 1) {
		return math.Inf(1)
	}
	cond := m.conditionsOrDefault(a, b)
	base := d * 2.0
	portFee := 10 + size*5
	crewWage := d * 0.5 * size
	supplies := d * 0.8 * size
	danger := base * cond.Danger
	return base + portFee + crewWage + supplies + danger
}

func (m *Map) conditionsOrDefault(a, b string) Conditions {
	if c, ok := m.Conditions[RouteKey{a, b}]; ok {
		return *c
	}
	return Conditions{Danger: 0, WindAdvantage: 0.5, SeaState: 0.2}
}

// UpdateConditions applies one bounded random walk step to every directed
// route. Routes are visited in sorted order so a seed fully determines the
// outcome.
func (m *Map) UpdateConditions(rng *entropy.Source) {
	for _, key := range m.routeKeys() {
		m.Conditions[key].Drift(rng)
	}
}

func (m *Map) routeKeys() []RouteKey {
	keys := make([]RouteKey, 0, len(m.Conditions))
	for k := range m.Conditions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].From != keys[j].From {
			return keys[i].From < keys[j].From
		}
		return keys[i].To < keys[j].To
	})
	return keys
}

// Describe returns a short text summary of the route a→b.
func (m *Map) Describe(a, b string) string {
	c, ok := m.Route(a, b)
	if !ok {
		return "uncharted route"
	}
	return c.Describe()
}

// RouteInfo is one row of the route table.
type RouteInfo struct {
	From        string     `json:"from"`
	To          string     `json:"to"`
	Distance    float64    `json:"distance"`
	Description string     `json:"description"`
	Conditions  Conditions `json:"conditions"`
}

// Routes lists one entry per unordered city pair, in city insertion order.
func (m *Map) Routes() []RouteInfo {
	var out []RouteInfo
	for i, a := range m.names {
		for _, b := range m.names[i+1:] {
			c, ok := m.Route(a, b)
			if !ok {
				continue
			}
			out = append(out, RouteInfo{
				From:        a,
				To:          b,
				Distance:    m.Distance(a, b),
				Description: c.Describe(),
				Conditions:  c,
			})
		}
	}
	return out
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(cities=%d, routes=%d)", len(m.names), len(m.Conditions))
}
