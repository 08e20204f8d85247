package alerts

import (
	"cmp"
	"slices"
	"time"

	"github.com/ukydev/fleet-care/internal/health"
	"github.com/ukydev/fleet-care/internal/models"
)

// Report groups alerts into independent buckets. Critical and Attention are
// mutually exclusive; Stale and SyncUnknown are evaluated orthogonally, so
// one equipment may appear in both Critical and Stale.
type Report struct {
	Critical    []Alert   `json:"critical"`
	Attention   []Alert   `json:"attention"`
	Stale       []Alert   `json:"stale"`
	SyncUnknown []Alert   `json:"sync_unknown"`
	GeneratedAt time.Time `json:"generated_at"`
}

// HasAlerts reports whether any actionable bucket is non-empty.
func (r Report) HasAlerts() bool {
	return len(r.Critical) > 0 || len(r.Attention) > 0 || len(r.Stale) > 0
}

// Build classifies every equipment and returns the bucketed report.
// Critical and Attention are ordered most overdue first, ties by tag.
// Stale is ordered oldest sync first, ties by tag. SyncUnknown keeps input order.
func Build(equipment []models.Equipment, opts Options) Report {
	now := opts.now()
	opts.Now = now

	r := Report{
		Critical:    []Alert{},
		Attention:   []Alert{},
		Stale:       []Alert{},
		SyncUnknown: []Alert{},
		GeneratedAt: now,
	}
	for _, eq := range equipment {
		a := Evaluate(eq, opts)
		switch a.Tier {
		case health.TierCritical:
			r.Critical = append(r.Critical, a)
		case health.TierAttention:
			r.Attention = append(r.Attention, a)
		}
		switch a.Sync {
		case SyncStale:
			r.Stale = append(r.Stale, a)
		case SyncUnknown:
			r.SyncUnknown = append(r.SyncUnknown, a)
		}
	}

	slices.SortFunc(r.Critical, byUrgency)
	slices.SortFunc(r.Attention, byUrgency)
	slices.SortFunc(r.Stale, byStaleness)
	return r
}

func byUrgency(a, b Alert) int {
	if c := cmp.Compare(b.UsagePercentage, a.UsagePercentage); c != 0 {
		return c
	}
	return cmp.Compare(a.Tag, b.Tag)
}

func byStaleness(a, b Alert) int {
	if c := a.LastSyncAt.Compare(*b.LastSyncAt); c != 0 {
		return c
	}
	return cmp.Compare(a.Tag, b.Tag)
}
