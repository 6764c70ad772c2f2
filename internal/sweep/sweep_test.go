package sweep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tradewinds/internal/config"
)

func shortScenario() config.Config {
	cfg := config.Default()
	cfg.Days = 20
	return cfg
}

func TestRunMatchesSequentialRuns(t *testing.T) {
	cfg := shortScenario()
	results, err := Run(context.Background(), cfg, 3, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, cfg.Seed+int64(i), r.Seed)

		single := cfg
		single.Seed = r.Seed
		sim, err := single.Build()
		require.NoError(t, err)
		sim.Run(single.Days)
		assert.InDelta(t, sim.Snapshot().Stats.TotalGold, r.TotalGold, 1e-9, "seed %d", r.Seed)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	_, err := Run(context.Background(), shortScenario(), 0, 1)
	assert.Error(t, err)

	bad := shortScenario()
	bad.Cities = bad.Cities[:1]
	_, err = Run(context.Background(), bad, 2, 1)
	assert.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, shortScenario(), 2, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Result{
		{TotalGold: 300, RichestShip: "Polaris"},
		{TotalGold: 100, RichestShip: "Treasure"},
		{TotalGold: 200, RichestShip: "Polaris"},
		{TotalGold: 400, RichestShip: "Polaris"},
	})
	assert.Equal(t, 4, s.Runs)
	assert.Equal(t, 250.0, s.MeanGold)
	assert.Equal(t, 100.0, s.MinGold)
	assert.Equal(t, 400.0, s.MaxGold)
	assert.Equal(t, 250.0, s.MedianGold)
	assert.Equal(t, 3, s.Wins["Polaris"])

	assert.Zero(t, Summarize(nil).Runs)
}
