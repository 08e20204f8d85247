// Package dashboard serves the alert, summary, equipment and search views
// over the store and handles counter syncs and interval changes.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-care/internal/alerts"
	"github.com/ukydev/fleet-care/internal/db"
	"github.com/ukydev/fleet-care/internal/search"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidInput wraps request validation failures.
var ErrInvalidInput = errors.New("invalid input")

// MaxClockSkew is how far ahead of the server clock a sync timestamp may be.
// Later timestamps are rejected since they would keep the equipment fresh
// indefinitely.
const MaxClockSkew = 5 * time.Minute

// ReadingInput is one counter sync for an equipment.
type ReadingInput struct {
	Reading float64    `json:"reading"`
	At      *time.Time `json:"at,omitempty"`
}

// Validate validates the reading against the server clock now.
func (in ReadingInput) Validate(now time.Time) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Reading, validation.Min(0.0)),
		validation.Field(&in.At, validation.Max(now.Add(MaxClockSkew)).Error("must not be in the future")),
	)
}

// IntervalInput sets an equipment's maintenance interval.
type IntervalInput struct {
	Interval float64 `json:"interval"`
}

// Validate validates the interval.
func (in IntervalInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Interval, validation.Min(0.0)),
	)
}

// Service implements the dashboard operations.
type Service struct {
	equipment   db.EquipmentCollection
	maintenance db.MaintenanceCollection
	suppliers   db.SupplierCollection
	staleAfter  time.Duration
	now         func() time.Time
}

// NewService creates a dashboard service. staleAfter is the freshness
// window; zero disables staleness.
func NewService(equipment db.EquipmentCollection, maintenance db.MaintenanceCollection, suppliers db.SupplierCollection, staleAfter time.Duration) *Service {
	return &Service{
		equipment:   equipment,
		maintenance: maintenance,
		suppliers:   suppliers,
		staleAfter:  staleAfter,
		now:         time.Now,
	}
}

func (s *Service) options() alerts.Options {
	return alerts.Options{StaleAfter: s.staleAfter, Now: s.now()}
}

// Alerts builds the bucketed alert report for the whole fleet.
func (s *Service) Alerts(ctx context.Context) (alerts.Report, error) {
	equipment, err := s.equipment.FindEquipment(ctx)
	if err != nil {
		return alerts.Report{}, fmt.Errorf("load equipment: %w", err)
	}
	return alerts.Build(equipment, s.options()), nil
}

// Summary returns the dashboard counters.
func (s *Service) Summary(ctx context.Context) (alerts.Summary, error) {
	equipment, err := s.equipment.FindEquipment(ctx)
	if err != nil {
		return alerts.Summary{}, fmt.Errorf("load equipment: %w", err)
	}
	return alerts.Summarize(equipment, s.options()), nil
}

// Equipment returns the evaluated view of every equipment in store order.
func (s *Service) Equipment(ctx context.Context) ([]alerts.Alert, error) {
	equipment, err := s.equipment.FindEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("load equipment: %w", err)
	}
	opts := s.options()
	out := make([]alerts.Alert, 0, len(equipment))
	for _, eq := range equipment {
		out = append(out, alerts.Evaluate(eq, opts))
	}
	return out, nil
}

// Search runs the cross-entity search. The three collections are loaded
// concurrently; a collection that fails to load is logged and contributes
// no results.
func (s *Service) Search(ctx context.Context, query string) []search.Result {
	if strings.TrimSpace(query) == "" {
		return []search.Result{}
	}

	var c search.Collections
	var g errgroup.Group
	g.Go(func() error {
		equipment, err := s.equipment.FindEquipment(ctx)
		if err != nil {
			logLoadFailure(search.KindEquipment, err)
			return nil
		}
		c.Equipment = equipment
		return nil
	})
	g.Go(func() error {
		maintenance, err := s.maintenance.FindMaintenance(ctx)
		if err != nil {
			logLoadFailure(search.KindMaintenance, err)
			return nil
		}
		c.Maintenance = maintenance
		return nil
	})
	g.Go(func() error {
		suppliers, err := s.suppliers.FindSuppliers(ctx)
		if err != nil {
			logLoadFailure(search.KindSupplier, err)
			return nil
		}
		c.Suppliers = suppliers
		return nil
	})
	_ = g.Wait()

	return search.Search(query, c)
}

func logLoadFailure(kind search.Kind, err error) {
	log.WithFields(log.Fields{"kind": kind}).WithError(err).Warn("Search collection unavailable")
}

// EquipmentByTag returns the evaluated view of one equipment.
func (s *Service) EquipmentByTag(ctx context.Context, tag string) (alerts.Alert, error) {
	if tag == "" {
		return alerts.Alert{}, fmt.Errorf("%w: tag is required", ErrInvalidInput)
	}
	eq, err := s.equipment.FindEquipmentByTag(ctx, tag)
	if err != nil {
		return alerts.Alert{}, fmt.Errorf("load equipment %s: %w", tag, err)
	}
	return alerts.Evaluate(*eq, s.options()), nil
}

// RecordReading stores a counter sync for the tagged equipment. A missing
// timestamp means now; one more than MaxClockSkew ahead is rejected.
func (s *Service) RecordReading(ctx context.Context, tag string, in ReadingInput) error {
	if tag == "" {
		return fmt.Errorf("%w: tag is required", ErrInvalidInput)
	}
	at := s.now()
	if err := in.Validate(at); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.At != nil {
		at = *in.At
	}
	if err := s.equipment.RecordReading(ctx, tag, in.Reading, at); err != nil {
		return fmt.Errorf("record reading for %s: %w", tag, err)
	}
	log.WithFields(log.Fields{
		"tag":     tag,
		"reading": in.Reading,
		"at":      at,
	}).Info("Recorded reading")
	return nil
}

// SetInterval sets the tagged equipment's maintenance interval.
func (s *Service) SetInterval(ctx context.Context, tag string, in IntervalInput) error {
	if tag == "" {
		return fmt.Errorf("%w: tag is required", ErrInvalidInput)
	}
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.equipment.UpdateInterval(ctx, tag, in.Interval); err != nil {
		return fmt.Errorf("update interval for %s: %w", tag, err)
	}
	log.WithFields(log.Fields{"tag": tag, "interval": in.Interval}).Info("Updated interval")
	return nil
}

// ClearInterval removes the tagged equipment's maintenance interval.
func (s *Service) ClearInterval(ctx context.Context, tag string) error {
	return s.SetInterval(ctx, tag, IntervalInput{})
}
