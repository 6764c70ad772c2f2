// Package economy provides goods, quality tiers, and per-city market dynamics.
package economy

import (
	"fmt"
	"strings"
)

// Good identifies a tradeable commodity by name.
type Good string

// Quality is the grade of a unit of a good.
type Quality uint8

const (
	QualityRough  Quality = iota // 0.7× price
	QualityCommon                // 1.0× price
	QualityFine                  // 1.5× price
	QualitySuperb                // 2.5× price
)

// NumQualities is the number of quality tiers.
const NumQualities = 4

// Qualities lists every tier from lowest to highest.
var Qualities = [NumQualities]Quality{QualityRough, QualityCommon, QualityFine, QualitySuperb}

// QualitiesDescending lists every tier from highest to lowest.
var QualitiesDescending = [NumQualities]Quality{QualitySuperb, QualityFine, QualityCommon, QualityRough}

var qualityMultipliers = [NumQualities]float64{0.7, 1.0, 1.5, 2.5}

var qualityNames = [NumQualities]string{"rough", "common", "fine", "superb"}

// Multiplier returns the fixed price multiplier for the tier.
func (q Quality) Multiplier() float64 {
	if !q.Valid() {
		return 0
	}
	return qualityMultipliers[q]
}

// Valid reports whether q is one of the four tiers.
func (q Quality) Valid() bool {
	return q < NumQualities
}

// High reports whether the tier is fine or superb.
func (q Quality) High() bool {
	return q == QualityFine || q == QualitySuperb
}

func (q Quality) String() string {
	if !q.Valid() {
		return fmt.Sprintf("quality(%d)", uint8(q))
	}
	return qualityNames[q]
}

// ParseQuality maps a tier name to its Quality.
func ParseQuality(s string) (Quality, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range qualityNames {
		if n == name {
			return Quality(i), nil
		}
	}
	return QualityCommon, fmt.Errorf("unknown quality %q", s)
}

// MarshalText encodes the tier by name.
func (q Quality) MarshalText() ([]byte, error) {
	if !q.Valid() {
		return nil, fmt.Errorf("invalid quality %d", uint8(q))
	}
	return []byte(q.String()), nil
}

// UnmarshalText decodes a tier name.
func (q *Quality) UnmarshalText(text []byte) error {
	parsed, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// Stock holds quantities of one good split by quality tier.
type Stock [NumQualities]float64

// Total returns the quantity across all tiers.
func (s *Stock) Total() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// Add puts amt units into tier q. Non-positive amounts are ignored.
func (s *Stock) Add(q Quality, amt float64) {
	if amt <= 0 || !q.Valid() {
		return
	}
	s[q] += amt
}

// Take removes up to amt units from tier q and returns what was removed.
func (s *Stock) Take(q Quality, amt float64) float64 {
	if amt <= 0 || !q.Valid() {
		return 0
	}
	taken := amt
	if taken > s[q] {
		taken = s[q]
	}
	if taken < 0 {
		taken = 0
	}
	s[q] -= taken
	return taken
}

// Drain removes amt units starting from the lowest tier and returns the
// amount actually removed. No tier goes below zero.
func (s *Stock) Drain(amt float64) float64 {
	if amt <= 0 {
		return 0
	}
	remaining := amt
	for _, q := range Qualities {
		remaining -= s.Take(q, remaining)
		if remaining <= 0 {
			break
		}
	}
	return amt - remaining
}

// Scale multiplies every tier by factor (clamped at zero) and returns the
// total amount removed when factor < 1.
func (s *Stock) Scale(factor float64) float64 {
	if factor < 0 {
		factor = 0
	}
	before := s.Total()
	for i := range s {
		s[i] *= factor
	}
	return before - s.Total()
}
