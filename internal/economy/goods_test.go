package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualityMultipliers(t *testing.T) {
	cases := []struct {
		q    Quality
		name string
		mult float64
	}{
		{QualityRough, "rough", 0.7},
		{QualityCommon, "common", 1.0},
		{QualityFine, "fine", 1.5},
		{QualitySuperb, "superb", 2.5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.mult, tc.q.Multiplier())
		assert.Equal(t, tc.name, tc.q.String())
		parsed, err := ParseQuality(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.q, parsed)
	}
	_, err := ParseQuality("legendary")
	assert.Error(t, err)
	assert.Zero(t, Quality(7).Multiplier())
}

func TestQualityTextRoundTrip(t *testing.T) {
	var q Quality
	require.NoError(t, q.UnmarshalText([]byte("Fine")))
	assert.Equal(t, QualityFine, q)
	assert.Error(t, q.UnmarshalText([]byte("gold-plated")))
}

func TestStockTakeClamps(t *testing.T) {
	s := Stock{1, 2, 3, 4}
	assert.Equal(t, 2.0, s.Take(QualityCommon, 5))
	assert.Zero(t, s[QualityCommon])
	assert.Zero(t, s.Take(QualityFine, -1))
	assert.Equal(t, 8.0, s.Total())
}

func TestStockScale(t *testing.T) {
	s := Stock{10, 20, 30, 40}
	removed := s.Scale(0.8)
	assert.InDelta(t, 20, removed, 1e-9)
	assert.InDelta(t, 80, s.Total(), 1e-9)
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Push(float64(i))
	}
	assert.Equal(t, []float64{3, 4, 5}, h.Values())
	assert.Equal(t, 5.0, h.Last())
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 3, h.Cap())

	empty := NewHistory(0)
	assert.Equal(t, DefaultHistoryCap, empty.Cap())
	assert.Zero(t, empty.Last())
	assert.Empty(t, empty.Values())
}
