package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukydev/fleet-care/internal/models"
)

func TestDaysUntilDue_Scenarios(t *testing.T) {
	days, ok := DaysUntilDue(excavator(1450))
	assert.True(t, ok)
	assert.Equal(t, 7, days, "ceil(50/8)")

	days, ok = DaysUntilDue(excavator(1500))
	assert.True(t, ok)
	assert.Equal(t, 0, days)

	days, ok = DaysUntilDue(excavator(1700))
	assert.True(t, ok)
	assert.Equal(t, 0, days, "overdue equipment is due now")
}

func TestDaysUntilDue_NoInterval(t *testing.T) {
	for _, interval := range []float64{0, -1} {
		_, ok := DaysUntilDue(models.Equipment{Tag: "X", Interval: interval, CurrentReading: reading(10)})
		assert.False(t, ok)
	}
}

func TestDaysUntilDue_Distance(t *testing.T) {
	eq := models.Equipment{
		Tag:                "CAMINHAO-0007",
		UnitType:           models.UnitDistance,
		Interval:           10000,
		LastServiceReading: 50000,
		CurrentReading:     reading(59850),
	}
	days, ok := DaysUntilDue(eq)
	assert.True(t, ok)
	assert.Equal(t, 2, days, "ceil(150/100)")
}

func TestDaysUntilDue_TagSuffixUnit(t *testing.T) {
	eq := models.Equipment{Tag: "CAMINHAO-0008 (KM)", Interval: 1000, CurrentReading: reading(0)}
	days, _ := DaysUntilDue(eq)
	assert.Equal(t, 10, days)
}

func TestDaysUntilDue_ZeroExactlyWhenDue(t *testing.T) {
	for current := 1250.0; current <= 1600; current += 0.25 {
		eq := excavator(current)
		days, ok := DaysUntilDue(eq)
		assert.True(t, ok)
		assert.Equal(t, Usage(eq) >= eq.Interval, days == 0, "reading %v", current)
	}
}

func TestDailyRate(t *testing.T) {
	assert.Equal(t, 8.0, DailyRate(models.UnitHours))
	assert.Equal(t, 100.0, DailyRate(models.UnitDistance))
	assert.Equal(t, 8.0, DailyRate(""))
}
