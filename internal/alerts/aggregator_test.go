package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-care/internal/health"
	"github.com/ukydev/fleet-care/internal/models"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func hoursEquipment(tag string, interval, last, current float64, synced *time.Time) models.Equipment {
	return models.Equipment{
		Tag:                tag,
		UnitType:           models.UnitHours,
		Interval:           interval,
		LastServiceReading: last,
		CurrentReading:     ptr(current),
		LastSyncAt:         synced,
	}
}

func tags(alerts []Alert) []string {
	out := make([]string, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Tag)
	}
	return out
}

func TestBuild_Buckets(t *testing.T) {
	fresh := ptr(now.Add(-time.Hour))
	old := ptr(now.Add(-10 * 24 * time.Hour))

	fleet := []models.Equipment{
		hoursEquipment("OK-1", 250, 1250, 1450, fresh),
		hoursEquipment("CRIT-1", 250, 1250, 1500, old),
		hoursEquipment("ATT-1", 100, 0, 95, fresh),
		hoursEquipment("NOINT-1", 0, 0, 5000, nil),
		hoursEquipment("CRIT-2", 100, 0, 180, nil),
	}

	r := Build(fleet, Options{StaleAfter: DefaultStaleAfter, Now: now})

	assert.Equal(t, []string{"CRIT-2", "CRIT-1"}, tags(r.Critical))
	assert.Equal(t, []string{"ATT-1"}, tags(r.Attention))
	assert.Equal(t, []string{"CRIT-1"}, tags(r.Stale), "critical equipment can also be stale")
	assert.Equal(t, []string{"NOINT-1", "CRIT-2"}, tags(r.SyncUnknown), "missing timestamps are not stale")
	assert.Equal(t, now, r.GeneratedAt)
	assert.True(t, r.HasAlerts())
}

func TestBuild_SortOrder(t *testing.T) {
	fleet := []models.Equipment{
		hoursEquipment("B", 100, 0, 120, nil),
		hoursEquipment("C", 100, 0, 150, nil),
		hoursEquipment("A", 100, 0, 120, nil),
		hoursEquipment("Z", 200, 0, 190, nil),
		hoursEquipment("Y", 100, 0, 95, nil),
		hoursEquipment("X", 100, 0, 95, nil),
	}

	r := Build(fleet, Options{Now: now})

	assert.Equal(t, []string{"C", "A", "B"}, tags(r.Critical))
	assert.Equal(t, []string{"X", "Y", "Z"}, tags(r.Attention))
	for i := 1; i < len(r.Critical); i++ {
		assert.GreaterOrEqual(t, r.Critical[i-1].UsagePercentage, r.Critical[i].UsagePercentage)
	}
}

func TestBuild_AlertFields(t *testing.T) {
	eq := hoursEquipment("EXCAVADORA-001", 250, 1250, 1480, ptr(now.Add(-30*time.Hour)))

	r := Build([]models.Equipment{eq}, Options{Now: now, StaleAfter: DefaultStaleAfter})

	require.Len(t, r.Attention, 1)
	a := r.Attention[0]
	assert.Equal(t, health.TierAttention, a.Tier)
	assert.Equal(t, 230.0, a.Usage)
	assert.InDelta(t, 92.0, a.UsagePercentage, 1e-9)
	require.NotNil(t, a.EstimatedDaysRemaining)
	assert.Equal(t, 3, *a.EstimatedDaysRemaining, "ceil(20/8)")
	assert.Equal(t, SyncFresh, a.Sync)
	require.NotNil(t, a.DaysSinceSync)
	assert.Equal(t, 1, *a.DaysSinceSync)
}

func TestBuild_StaleWindow(t *testing.T) {
	fleet := []models.Equipment{
		hoursEquipment("EDGE", 100, 0, 10, ptr(now.Add(-DefaultStaleAfter))),
		hoursEquipment("OLD", 100, 0, 10, ptr(now.Add(-DefaultStaleAfter-time.Second))),
		hoursEquipment("OLDER", 100, 0, 10, ptr(now.Add(-30*24*time.Hour))),
	}

	r := Build(fleet, Options{StaleAfter: DefaultStaleAfter, Now: now})
	assert.Equal(t, []string{"OLDER", "OLD"}, tags(r.Stale))
	assert.Equal(t, 30, *r.Stale[0].DaysSinceSync)

	disabled := Build(fleet, Options{Now: now})
	assert.Empty(t, disabled.Stale, "zero window disables staleness")
}

func TestBuild_EmptyAndDefaults(t *testing.T) {
	r := Build(nil, DefaultOptions())
	assert.NotNil(t, r.Critical)
	assert.NotNil(t, r.Attention)
	assert.NotNil(t, r.Stale)
	assert.NotNil(t, r.SyncUnknown)
	assert.False(t, r.HasAlerts())
	assert.False(t, r.GeneratedAt.IsZero())
}

func TestBuild_CoercesMalformedRecords(t *testing.T) {
	fleet := []models.Equipment{
		{Tag: "NO-READINGS", Interval: 100},
		{Tag: "BACKWARDS", Interval: 100, LastServiceReading: 900, CurrentReading: ptr(10.0)},
	}

	r := Build(fleet, Options{Now: now})
	assert.Empty(t, r.Critical)
	assert.Empty(t, r.Attention)
	assert.Len(t, r.SyncUnknown, 2)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	fleet := []models.Equipment{
		hoursEquipment("B", 100, 0, 120, nil),
		hoursEquipment("A", 100, 0, 150, nil),
	}
	Build(fleet, Options{Now: now})
	assert.Equal(t, "B", fleet[0].Tag)
	assert.Equal(t, 120.0, *fleet[0].CurrentReading)
}

func TestEvaluate_NoInterval(t *testing.T) {
	a := Evaluate(models.Equipment{Tag: "N", CurrentReading: ptr(40.0)}, Options{Now: now})
	assert.Equal(t, health.TierNoInterval, a.Tier)
	assert.Nil(t, a.EstimatedDaysRemaining)
	assert.Equal(t, 0.0, a.UsagePercentage)
	assert.Equal(t, SyncUnknown, a.Sync)
	assert.Nil(t, a.DaysSinceSync)
}
