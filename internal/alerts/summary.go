package alerts

import (
	"time"

	"github.com/ukydev/fleet-care/internal/health"
	"github.com/ukydev/fleet-care/internal/models"
)

// Summary holds the dashboard counters for a fleet.
type Summary struct {
	Total         int        `json:"total"`
	OK            int        `json:"ok"`
	Attention     int        `json:"attention"`
	Critical      int        `json:"critical"`
	NoInterval    int        `json:"no_interval"`
	Stale         int        `json:"stale"`
	SyncUnknown   int        `json:"sync_unknown"`
	TotalHours    float64    `json:"total_hours"`
	TotalDistance float64    `json:"total_distance"`
	LastSyncAt    *time.Time `json:"last_sync_at,omitempty"`
}

// Summarize counts equipment per tier and sync state and totals the
// current readings per unit type.
func Summarize(equipment []models.Equipment, opts Options) Summary {
	opts.Now = opts.now()

	var s Summary
	for _, eq := range equipment {
		a := Evaluate(eq, opts)
		s.Total++
		switch a.Tier {
		case health.TierOK:
			s.OK++
		case health.TierAttention:
			s.Attention++
		case health.TierCritical:
			s.Critical++
		default:
			s.NoInterval++
		}
		switch a.Sync {
		case SyncStale:
			s.Stale++
		case SyncUnknown:
			s.SyncUnknown++
		}

		if a.UnitType == models.UnitDistance {
			s.TotalDistance += eq.Reading()
		} else {
			s.TotalHours += eq.Reading()
		}
		if eq.LastSyncAt != nil && (s.LastSyncAt == nil || eq.LastSyncAt.After(*s.LastSyncAt)) {
			t := *eq.LastSyncAt
			s.LastSyncAt = &t
		}
	}
	return s
}
