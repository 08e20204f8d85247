// Package health classifies equipment by maintenance urgency.
//
// The thresholds and daily consumption rates defined here are the only copy
// in the codebase. Alert lists, badges, summaries and sort orders all go
// through Classify and UsagePercentage.
package health

import (
	"math"

	"github.com/ukydev/fleet-care/internal/models"
)

// Tier is the maintenance-urgency classification of one equipment.
type Tier string

const (
	TierNoInterval Tier = "NO_INTERVAL"
	TierOK         Tier = "OK"
	TierAttention  Tier = "ATTENTION"
	TierCritical   Tier = "CRITICAL"
)

// Usage percentage cutoffs.
const (
	AttentionPercent = 90.0
	CriticalPercent  = 100.0
)

// Severity orders tiers from least to most urgent. NO_INTERVAL ranks below OK.
func (t Tier) Severity() int {
	switch t {
	case TierOK:
		return 1
	case TierAttention:
		return 2
	case TierCritical:
		return 3
	default:
		return 0
	}
}

// HasInterval reports whether a maintenance interval is configured.
func HasInterval(eq models.Equipment) bool {
	return eq.Interval > 0
}

// Usage is the counter movement since the last service, clamped at zero so
// a counter reset or bad sync never yields negative usage.
func Usage(eq models.Equipment) float64 {
	u := eq.Reading() - eq.LastServiceReading
	if u < 0 {
		return 0
	}
	return u
}

// percentPrecision is the resolution UsagePercentage is rounded to.
const percentPrecision = 1e6

// UsagePercentage is Usage as a percentage of the interval, or 0 when no
// interval is configured. The value is rounded to six decimals so float
// noise such as 89.99999999999999 reads as 90; Classify tiers on this same
// number.
func UsagePercentage(eq models.Equipment) float64 {
	if !HasInterval(eq) {
		return 0
	}
	return math.Round(Usage(eq)/eq.Interval*100*percentPrecision) / percentPrecision
}

// Classify maps an equipment to its tier.
func Classify(eq models.Equipment) Tier {
	if !HasInterval(eq) {
		return TierNoInterval
	}
	pct := UsagePercentage(eq)
	switch {
	case pct >= CriticalPercent:
		return TierCritical
	case pct >= AttentionPercent:
		return TierAttention
	default:
		return TierOK
	}
}
