// Package search implements the free-text lookup across equipment,
// maintenance records and suppliers.
package search

import (
	"strings"

	"github.com/ukydev/fleet-care/internal/models"
)

// Kind identifies which collection a result came from.
type Kind string

const (
	KindEquipment   Kind = "EQUIPMENT"
	KindMaintenance Kind = "MAINTENANCE"
	KindSupplier    Kind = "SUPPLIER"
)

// Result is one search hit.
type Result struct {
	Kind     Kind   `json:"kind"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	SourceID string `json:"source_id"`
}

// Collections is the data searched. A nil slice means the collection could
// not be loaded and contributes no results.
type Collections struct {
	Equipment   []models.Equipment
	Maintenance []models.MaintenanceRecord
	Suppliers   []models.Supplier
}

// Search returns every record with at least one searchable field containing
// query, compared case-insensitively. Results are grouped equipment first,
// then maintenance, then suppliers, each group in input order. An empty or
// blank query returns an empty list.
func Search(query string, c Collections) []Result {
	results := []Result{}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return results
	}

	for _, eq := range c.Equipment {
		unit := string(eq.Unit())
		if matches(q, eq.Tag, unit) {
			results = append(results, Result{
				Kind:     KindEquipment,
				Title:    eq.Tag,
				Subtitle: unit,
				SourceID: eq.Tag,
			})
		}
	}
	for _, m := range c.Maintenance {
		kind := string(m.Kind)
		if matches(q, m.EquipmentTag, kind) {
			results = append(results, Result{
				Kind:     KindMaintenance,
				Title:    m.EquipmentTag,
				Subtitle: kind,
				SourceID: m.ID.Hex(),
			})
		}
	}
	for _, s := range c.Suppliers {
		if matches(q, s.Name, s.Specialty) {
			results = append(results, Result{
				Kind:     KindSupplier,
				Title:    s.Name,
				Subtitle: s.Specialty,
				SourceID: s.ID.Hex(),
			})
		}
	}
	return results
}

// matches expects q already lowercased.
func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
