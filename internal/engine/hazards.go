package engine

// triggerEvents rolls city events for every port and pirate raids for every
// ship at sea.
func (s *Simulation) triggerEvents() {
	for _, name := range s.cityNames {
		if !s.rng.Chance(CityEventChance) {
			continue
		}
		ev, ok := s.Catalog.DrawCity(s.rng)
		if !ok {
			continue
		}
		touched := ev.Apply(s.Cities[name])
		s.Stats.CityEvents++
		s.logEvent(CategoryCity, "%s: %s - %s (%d goods affected)", name, ev.Name(), ev.Description(), len(touched))
	}

	for _, name := range s.shipNames {
		sh := s.Ships[name]
		if !sh.InTransit || !s.rng.Chance(PirateChance) {
			continue
		}
		ev, ok := s.Catalog.DrawPirate(s.rng)
		if !ok {
			continue
		}
		cargo, gold := ev.Apply(sh)
		s.Stats.PirateRaids++
		s.logEvent(CategoryPirate, "%s struck by %s - %s, lost %.1f cargo and %.0f gold",
			sh.Name, ev.Name(), ev.Description(), cargo, gold)
	}
}
