package engine

import (
	"log/slog"
	"math"

	"github.com/talgya/tradewinds/internal/events"
	"github.com/talgya/tradewinds/internal/fleet"
)

// depart sends a docked ship toward dest. Travel time uses the ship's speed
// scaled by sailing skill and any weather met at departure; the route cost is
// charged by the ship itself.
func (s *Simulation) depart(sh *fleet.Ship, dest string) {
	origin := sh.Location
	cost := s.Map.RouteCost(origin, dest, sh.Size)
	if math.IsInf(cost, 1) {
		slog.Warn("no route", "ship", sh.Name, "from", origin, "to", dest)
		return
	}

	weather := s.rollWeather(sh)
	travel := s.Map.TravelTime(origin, dest, sh.Speed*sh.SailingSkill*weather)
	if math.IsInf(travel, 1) {
		slog.Warn("route not sailable", "ship", sh.Name, "from", origin, "to", dest, "speed", sh.Speed)
		sh.Weather = nil
		return
	}

	sh.Depart(dest, travel, cost)
	s.Stats.Voyages++
	s.logEvent(CategoryVoyage, "%s departs %s for %s, expected %.1f days", sh.Name, origin, dest, travel)
}

// rollWeather draws departure weather. It returns the speed multiplier for
// the travel-time calculation, which is 1 when no weather strikes or when the
// daily policy carries the effect instead.
func (s *Simulation) rollWeather(sh *fleet.Ship) float64 {
	if !s.rng.Chance(WeatherChance) {
		return 1.0
	}
	ev, ok := s.Catalog.DrawWeather(s.rng)
	if !ok {
		return 1.0
	}
	s.Stats.WeatherDraws++
	s.logEvent(CategoryWeather, "%s meets %s at sea - %s", sh.Name, ev.Name(), ev.Description())
	return ev.Apply(sh, s.WeatherPolicy)
}

// sail advances a ship at sea by one day and handles arrival.
func (s *Simulation) sail(sh *fleet.Ship) {
	factor := 1.0
	if s.WeatherPolicy == events.WeatherDaily {
		factor = events.SpeedFactor(sh)
	}
	dest := sh.Destination

	if !sh.Advance(factor) {
		if s.WeatherPolicy == events.WeatherDaily {
			for _, name := range events.AgeWeather(sh) {
				slog.Debug("weather passed", "ship", sh.Name, "weather", name)
			}
		}
		return
	}

	s.Stats.Arrivals++
	s.logEvent(CategoryVoyage, "%s arrives at %s", sh.Name, dest)

	if !s.rng.Chance(SkillGainChance) {
		return
	}
	if s.rng.Chance(0.5) {
		sh.ImproveSailing(fleet.DefaultSkillGain)
		s.logEvent(CategorySkill, "%s's sailing skill improves to %.2f", sh.Name, sh.SailingSkill)
	} else {
		sh.ImproveTrading(fleet.DefaultSkillGain)
		s.logEvent(CategorySkill, "%s's trading skill improves to %.2f", sh.Name, sh.TradingSkill)
	}
}
