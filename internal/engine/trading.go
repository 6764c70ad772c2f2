package engine

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/fleet"
)

// BudgetShare is the fraction of a ship's gold spent on one purchase.
const BudgetShare = 0.5

// TradeCandidate is the best (good, tier, destination) found for a ship.
type TradeCandidate struct {
	Good        economy.Good
	Quality     economy.Quality
	Destination string
	BuyPrice    float64
	SellPrice   float64
	Score       float64
}

// trade runs the docked ship's decision: sell everything, buy the best
// opportunity with half the gold, and sail to where it sells highest. With
// nothing bought it sails to a random other city.
func (s *Simulation) trade(sh *fleet.Ship) {
	city, ok := s.Cities[sh.Location]
	if !ok {
		return
	}
	others := s.otherCities(city.Name)
	if len(others) == 0 {
		return
	}

	s.liquidate(sh, city)

	if best, ok := s.BestTrade(sh, city); ok {
		if s.buy(sh, city, best) > 0 {
			sh.RecordGold()
			s.depart(sh, best.Destination)
			return
		}
	}

	// Exploration fallback.
	dest := others[s.rng.Intn(len(others))]
	s.depart(sh, dest)
}

// liquidate sells all cargo the city trades at its plain current price and
// puts the goods into the city's stock. Goods the city does not trade stay
// aboard.
func (s *Simulation) liquidate(sh *fleet.Ship, city *economy.City) {
	sold := false
	for _, g := range cargoGoods(sh) {
		price, ok := city.CurrentPrices[g]
		if !ok {
			continue
		}
		st := sh.Cargo[g]
		for _, q := range economy.Qualities {
			if st[q] > 0 {
				city.Sell(g, q, st[q])
			}
		}
		if sh.Unload(g, price) > 0 {
			sold = true
		}
	}
	if sold {
		sh.RecordGold()
	}
}

// BestTrade scans every stocked good and tier in city against every other
// city's plain price and returns the highest-scoring candidate. The first
// candidate encountered wins ties.
func (s *Simulation) BestTrade(sh *fleet.Ship, city *economy.City) (TradeCandidate, bool) {
	var best TradeCandidate
	found := false
	others := s.otherCities(city.Name)

	for _, g := range city.Goods() {
		available := city.AvailableQualities(g)
		for _, q := range economy.Qualities {
			if available[q] <= 0 {
				continue
			}
			buyPrice := city.QualityPrice(g, q)
			if buyPrice <= 0 {
				continue
			}
			pref := sh.PrefersTier(q)
			for _, name := range others {
				sellPrice, ok := s.Cities[name].CurrentPrices[g]
				if !ok {
					continue
				}
				score := sellPrice / buyPrice * pref
				if score > best.Score {
					best = TradeCandidate{
						Good:        g,
						Quality:     q,
						Destination: name,
						BuyPrice:    buyPrice,
						SellPrice:   sellPrice,
						Score:       score,
					}
					found = true
				}
			}
		}
	}
	return best, found
}

// buy spends BudgetShare of the ship's gold on the candidate, limited by the
// hold and the city's stock. Returns the amount loaded.
func (s *Simulation) buy(sh *fleet.Ship, city *economy.City, c TradeCandidate) float64 {
	if sh.Gold <= 0 || c.BuyPrice <= 0 {
		return 0
	}
	want := math.Min(sh.Gold*BudgetShare/c.BuyPrice, sh.FreeSpace())
	taken, _ := city.Buy(c.Good, c.Quality, want)
	loaded := sh.Load(c.Good, c.Quality, taken, c.BuyPrice)
	if loaded > 0 {
		slog.Debug("ship bought cargo",
			"ship", sh.Name,
			"city", city.Name,
			"good", c.Good,
			"quality", c.Quality,
			"amount", fmt.Sprintf("%.2f", loaded),
			"price", fmt.Sprintf("%.2f", c.BuyPrice),
			"destination", c.Destination,
		)
	}
	return loaded
}

func (s *Simulation) otherCities(here string) []string {
	out := make([]string, 0, len(s.cityNames))
	for _, name := range s.cityNames {
		if name != here {
			out = append(out, name)
		}
	}
	return out
}

func cargoGoods(sh *fleet.Ship) []economy.Good {
	goods := make([]economy.Good, 0, len(sh.Cargo))
	for g := range sh.Cargo {
		goods = append(goods, g)
	}
	slices.Sort(goods)
	return goods
}
