// Package sweep runs one scenario under many seeds in parallel and compares
// the outcomes.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/talgya/tradewinds/internal/config"
	"github.com/talgya/tradewinds/internal/engine"
)

// Result is the outcome of one seeded run.
type Result struct {
	Seed        int64
	TotalGold   float64
	RichestShip string
	RichestGold float64
	PirateRaids int
	CityEvents  int
	Currency    float64
	Snapshot    engine.Snapshot
}

// Run simulates cfg under seeds cfg.Seed through cfg.Seed+runs-1 with at
// most workers simulations in flight. Results come back in seed order.
func Run(ctx context.Context, cfg config.Config, runs, workers int) ([]Result, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("sweep: runs must be positive, got %d", runs)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range runs {
		seed := cfg.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			run := cfg
			run.Seed = seed
			sim, err := run.Build()
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			sim.Run(run.Days)
			results[i] = summarize(seed, sim.Snapshot())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("sweep finished", "runs", runs, "workers", workers)
	return results, nil
}

func summarize(seed int64, snap engine.Snapshot) Result {
	r := Result{
		Seed:        seed,
		TotalGold:   snap.Stats.TotalGold,
		PirateRaids: snap.Stats.PirateRaids,
		CityEvents:  snap.Stats.CityEvents,
		Snapshot:    snap,
	}
	for _, s := range snap.Ships {
		if r.RichestShip == "" || s.Gold > r.RichestGold {
			r.RichestShip = s.Name
			r.RichestGold = s.Gold
		}
	}
	if n := len(snap.CurrencyHistory); n > 0 {
		r.Currency = snap.CurrencyHistory[n-1]
	}
	return r
}

// Summary aggregates a set of results.
type Summary struct {
	Runs       int
	MeanGold   float64
	MinGold    float64
	MaxGold    float64
	MedianGold float64
	Wins       map[string]int // How often each ship finished richest
}

// Summarize aggregates results. An empty slice yields a zero Summary.
func Summarize(results []Result) Summary {
	s := Summary{Runs: len(results), Wins: make(map[string]int)}
	if len(results) == 0 {
		return s
	}

	golds := make([]float64, 0, len(results))
	for _, r := range results {
		golds = append(golds, r.TotalGold)
		s.MeanGold += r.TotalGold
		s.Wins[r.RichestShip]++
	}
	s.MeanGold /= float64(len(results))

	sort.Float64s(golds)
	s.MinGold = golds[0]
	s.MaxGold = golds[len(golds)-1]
	mid := len(golds) / 2
	if len(golds)%2 == 1 {
		s.MedianGold = golds[mid]
	} else {
		s.MedianGold = (golds[mid-1] + golds[mid]) / 2
	}
	return s
}
