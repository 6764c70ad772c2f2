package engine

import (
	"sort"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/fleet"
)

// GoodProfit totals one good's purchases and sales for a ship.
type GoodProfit struct {
	Good   economy.Good `json:"good"`
	Bought float64      `json:"bought"`
	Sold   float64      `json:"sold"`
	Profit float64      `json:"profit"`
	Margin float64      `json:"margin"` // Profit over purchases, 0 when nothing bought
}

// TradeAnalysis summarizes a ship's trade history.
type TradeAnalysis struct {
	Ship           string                      `json:"ship"`
	ByGood         []GoodProfit                `json:"by_good"` // Highest profit first
	QualityRevenue map[economy.Quality]float64 `json:"quality_revenue"`
	RouteCosts     float64                     `json:"route_costs"`
}

// AnalyzeTrades totals purchases and sales per good and sale revenue per
// tier. Sales of goods never bought are counted only in the tier revenue.
func AnalyzeTrades(sh *fleet.Ship) TradeAnalysis {
	byGood := make(map[economy.Good]*GoodProfit)
	out := TradeAnalysis{
		Ship:           sh.Name,
		QualityRevenue: make(map[economy.Quality]float64),
		RouteCosts:     sh.TotalRouteCosts(),
	}

	for _, r := range sh.TradeHistory {
		if r.Kind != fleet.RecordBuy {
			continue
		}
		gp, ok := byGood[r.Good]
		if !ok {
			gp = &GoodProfit{Good: r.Good}
			byGood[r.Good] = gp
		}
		gp.Bought += r.Amount * r.Price
	}
	for _, r := range sh.TradeHistory {
		if r.Kind != fleet.RecordSell {
			continue
		}
		value := r.Amount * r.Price
		out.QualityRevenue[r.Quality] += value
		if gp, ok := byGood[r.Good]; ok {
			gp.Sold += value
		}
	}

	for _, gp := range byGood {
		gp.Profit = gp.Sold - gp.Bought
		if gp.Bought > 0 {
			gp.Margin = gp.Profit / gp.Bought
		}
		out.ByGood = append(out.ByGood, *gp)
	}
	sort.Slice(out.ByGood, func(i, j int) bool {
		if out.ByGood[i].Profit != out.ByGood[j].Profit {
			return out.ByGood[i].Profit > out.ByGood[j].Profit
		}
		return out.ByGood[i].Good < out.ByGood[j].Good
	})
	return out
}
