// Package alerts turns equipment collections into ranked maintenance alerts.
package alerts

import (
	"time"

	"github.com/ukydev/fleet-care/internal/health"
	"github.com/ukydev/fleet-care/internal/models"
)

// DefaultStaleAfter is the freshness window used by the daily report.
const DefaultStaleAfter = 7 * 24 * time.Hour

// Options controls the time-dependent parts of an evaluation.
type Options struct {
	// StaleAfter is the freshness window. Zero or negative disables staleness.
	StaleAfter time.Duration
	// Now is the reference time; the zero value means time.Now().
	Now time.Time
}

// DefaultOptions returns options with the default freshness window.
func DefaultOptions() Options {
	return Options{StaleAfter: DefaultStaleAfter}
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// SyncState describes how fresh an equipment's counter data is.
type SyncState string

const (
	SyncFresh   SyncState = "FRESH"
	SyncStale   SyncState = "STALE"
	SyncUnknown SyncState = "UNKNOWN"
)

// Alert is a derived, never persisted view of one equipment's health.
type Alert struct {
	Tag                    string          `json:"tag"`
	UnitType               models.UnitType `json:"unit_type"`
	Tier                   health.Tier     `json:"tier"`
	Interval               float64         `json:"interval"`
	Reading                float64         `json:"reading"`
	Usage                  float64         `json:"usage"`
	UsagePercentage        float64         `json:"usage_percentage"`
	EstimatedDaysRemaining *int            `json:"estimated_days_remaining"`
	Sync                   SyncState       `json:"sync"`
	LastSyncAt             *time.Time      `json:"last_sync_at,omitempty"`
	DaysSinceSync          *int            `json:"days_since_sync,omitempty"`
}

// Evaluate builds the alert view for one equipment.
func Evaluate(eq models.Equipment, opts Options) Alert {
	a := Alert{
		Tag:             eq.Tag,
		UnitType:        eq.Unit(),
		Tier:            health.Classify(eq),
		Interval:        eq.Interval,
		Reading:         eq.Reading(),
		Usage:           health.Usage(eq),
		UsagePercentage: health.UsagePercentage(eq),
		LastSyncAt:      eq.LastSyncAt,
	}
	if days, ok := health.DaysUntilDue(eq); ok {
		a.EstimatedDaysRemaining = &days
	}
	a.Sync, a.DaysSinceSync = syncState(eq.LastSyncAt, opts)
	return a
}

func syncState(lastSync *time.Time, opts Options) (SyncState, *int) {
	if lastSync == nil {
		return SyncUnknown, nil
	}
	age := opts.now().Sub(*lastSync)
	days := int(age / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	if opts.StaleAfter > 0 && age > opts.StaleAfter {
		return SyncStale, &days
	}
	return SyncFresh, &days
}
