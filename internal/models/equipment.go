package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnitType is the counter an equipment's maintenance interval is measured in.
type UnitType string

const (
	UnitHours    UnitType = "HOURS"
	UnitDistance UnitType = "DISTANCE"
)

// distanceTagMarker is the legacy tag suffix used to flag distance-tracked units.
const distanceTagMarker = "(KM)"

// ParseUnitType maps stored unit labels, including the legacy "KM" and
// "HORAS" values, onto a UnitType.
func ParseUnitType(s string) (UnitType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HOURS", "HORAS", "H":
		return UnitHours, true
	case "DISTANCE", "KM":
		return UnitDistance, true
	default:
		return "", false
	}
}

// Equipment is a fleet asset with a usage counter and a maintenance interval.
type Equipment struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tag                string             `bson:"tag" json:"tag"`
	UnitType           UnitType           `bson:"unit_type,omitempty" json:"unit_type,omitempty"`
	Interval           float64            `bson:"interval" json:"interval"` // 0 means no interval configured
	LastServiceReading float64            `bson:"last_service_reading" json:"last_service_reading"`
	CurrentReading     *float64           `bson:"current_reading,omitempty" json:"current_reading,omitempty"`
	LastSyncAt         *time.Time         `bson:"last_sync_at,omitempty" json:"last_sync_at,omitempty"`
}

// Reading returns the current counter value, falling back to the reading
// recorded at the last service when no sync has happened yet.
func (e Equipment) Reading() float64 {
	if e.CurrentReading == nil {
		return e.LastServiceReading
	}
	return *e.CurrentReading
}

// Unit resolves the equipment's unit type. The explicit field wins; the tag
// suffix is only consulted for records migrated from the old tag convention.
// No other code should inspect the tag to find the unit.
func (e Equipment) Unit() UnitType {
	if u, ok := ParseUnitType(string(e.UnitType)); ok {
		return u
	}
	if strings.HasSuffix(strings.ToUpper(strings.TrimSpace(e.Tag)), distanceTagMarker) {
		return UnitDistance
	}
	return UnitHours
}
