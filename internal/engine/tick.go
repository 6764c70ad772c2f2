// Package engine provides the day-based simulation loop.
package engine

import "fmt"

// Schedule defines when each periodic system runs relative to the day counter.
const (
	RouteRefreshDays = 10  // Route conditions drift
	CurrencyDays     = 30  // Money supply and inflation update
	DaysPerYear      = 365 // Used only for display
)

// Engine drives the simulation forward one day at a time. A run always
// executes a fixed number of days; there is no pacing or cancellation.
type Engine struct {
	Day int // Current day (monotonic, never resets)

	// Callbacks for each layer, populated during setup.
	OnRouteRefresh func(day int) // Every RouteRefreshDays, including day 0
	OnMonth        func(day int) // Every CurrencyDays, excluding day 0
	OnDay          func(day int) // Every day
}

// NewEngine creates an engine at day 0.
func NewEngine() *Engine {
	return &Engine{}
}

// Run advances the engine by days days.
func (e *Engine) Run(days int) {
	for i := 0; i < days; i++ {
		e.Step()
	}
}

// Step runs one day: periodic layers first, then the daily layer.
func (e *Engine) Step() {
	day := e.Day

	if day%RouteRefreshDays == 0 && e.OnRouteRefresh != nil {
		e.OnRouteRefresh(day)
	}

	if day > 0 && day%CurrencyDays == 0 && e.OnMonth != nil {
		e.OnMonth(day)
	}

	if e.OnDay != nil {
		e.OnDay(day)
	}

	e.Day++
}

// SimTime returns a human-readable date for a day number.
func SimTime(day int) string {
	year := day/DaysPerYear + 1
	return fmt.Sprintf("Year %d, Day %d", year, day%DaysPerYear+1)
}
