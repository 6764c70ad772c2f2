// Command tradesim runs the maritime trade simulation and reports on it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/tradewinds/internal/config"
	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/engine"
	"github.com/talgya/tradewinds/internal/persistence"
	"github.com/talgya/tradewinds/internal/sweep"
)

func main() {
	configPath := flag.String("config", "", "scenario YAML file (defaults to the built-in scenario)")
	runs := flag.Int("sweep", 0, "run the scenario under this many consecutive seeds and compare them")
	workers := flag.Int("workers", 0, "parallel simulations during a sweep (0 = one per CPU)")
	eventLines := flag.Int("events", 20, "event log lines to print")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("tradesim starting",
		"seed", cfg.Seed,
		"days", cfg.Days,
		"cities", len(cfg.Cities),
		"ships", len(cfg.Ships),
		"price_policy", cfg.PricePolicy,
		"weather_policy", cfg.WeatherPolicy,
	)

	if *runs > 0 {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := runSweep(ctx, cfg, *runs, *workers); err != nil {
			slog.Error("sweep failed", "error", err)
			os.Exit(1)
		}
		return
	}

	sim, err := cfg.Build()
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}
	sim.Run(cfg.Days)
	snap := sim.Snapshot()

	printEvents(snap.Events, *eventLines)
	printMarkets(snap)
	printFleet(sim, snap)

	if cfg.DBPath != "" {
		if err := export(cfg, snap); err != nil {
			slog.Error("export failed", "error", err)
			os.Exit(1)
		}
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.FromEnv(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func printEvents(events []engine.Event, n int) {
	if n <= 0 || len(events) == 0 {
		return
	}
	start := max(0, len(events)-n)
	fmt.Printf("\nLast %d of %d events:\n", len(events)-start, len(events))
	for _, e := range events[start:] {
		fmt.Println("  " + e.String())
	}
}

func printMarkets(snap engine.Snapshot) {
	fmt.Printf("\nMarkets after %s:\n", engine.SimTime(snap.Day))
	for _, c := range snap.Cities {
		fmt.Printf("  %s (price level %.3f, specialties: %s)\n",
			c.Name, c.PriceLevel, joinGoods(c.Specialties))

		var tiers [economy.NumQualities]float64
		var total float64
		for _, byQuality := range c.Qualities {
			for q, amt := range byQuality {
				tiers[q] += amt
				total += amt
			}
		}
		if total == 0 {
			fmt.Println("    no stock")
			continue
		}
		parts := make([]string, 0, economy.NumQualities)
		for _, q := range economy.Qualities {
			parts = append(parts, fmt.Sprintf("%s %.1f%%", q, tiers[q]/total*100))
		}
		fmt.Printf("    stock %s units: %s\n", humanize.Commaf(round2(total)), strings.Join(parts, ", "))
	}
}

func printFleet(sim *engine.Simulation, snap engine.Snapshot) {
	fmt.Println("\nFleet:")
	for _, s := range snap.Ships {
		where := s.Location
		if s.InTransit {
			where = "bound for " + s.Destination
		}
		fmt.Printf("  %-14s %12s gold  %-22s sailing %.2f trading %.2f (%s)\n",
			s.Name, humanize.Commaf(round2(s.Gold)), where,
			s.SailingSkill, s.TradingSkill, s.Preference)

		analysis := engine.AnalyzeTrades(sim.Ships[s.Name])
		for i, gp := range analysis.ByGood {
			if i == 3 {
				break
			}
			fmt.Printf("      %-14s profit %12s  margin %6.1f%%\n",
				gp.Good, humanize.Commaf(round2(gp.Profit)), gp.Margin*100)
		}
		if analysis.RouteCosts > 0 {
			fmt.Printf("      route costs %s\n", humanize.Commaf(round2(analysis.RouteCosts)))
		}
	}
	fmt.Printf("\nTotal gold %s across %d ships, %d pirate raids, %d city events, currency supply %s\n",
		humanize.Commaf(round2(snap.Stats.TotalGold)), len(snap.Ships),
		snap.Stats.PirateRaids, snap.Stats.CityEvents,
		humanize.Commaf(round2(sim.CurrencySupply)))
}

func runSweep(ctx context.Context, cfg config.Config, runs, workers int) error {
	results, err := sweep.Run(ctx, cfg, runs, workers)
	if err != nil {
		return err
	}

	fmt.Printf("\nSweep of %d seeds:\n", len(results))
	for _, r := range results {
		fmt.Printf("  seed %-6d total %12s  richest %-14s %12s  raids %d\n",
			r.Seed, humanize.Commaf(round2(r.TotalGold)), r.RichestShip,
			humanize.Commaf(round2(r.RichestGold)), r.PirateRaids)
	}
	sum := sweep.Summarize(results)
	fmt.Printf("  mean %s  median %s  min %s  max %s\n",
		humanize.Commaf(round2(sum.MeanGold)), humanize.Commaf(round2(sum.MedianGold)),
		humanize.Commaf(round2(sum.MinGold)), humanize.Commaf(round2(sum.MaxGold)))

	if cfg.DBPath == "" {
		return nil
	}
	for _, r := range results {
		run := cfg
		run.Seed = r.Seed
		if err := export(run, r.Snapshot); err != nil {
			return err
		}
	}
	return nil
}

func export(cfg config.Config, snap engine.Snapshot) error {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runID, err := db.SaveRun(persistence.RunInfo{
		Seed:          cfg.Seed,
		Days:          cfg.Days,
		PricePolicy:   cfg.PricePolicy,
		WeatherPolicy: cfg.WeatherPolicy,
	}, snap)
	if err != nil {
		return err
	}
	fmt.Printf("Run %s exported to %s\n", runID, cfg.DBPath)
	return nil
}

func joinGoods(goods []economy.Good) string {
	if len(goods) == 0 {
		return "none"
	}
	names := make([]string, len(goods))
	for i, g := range goods {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
