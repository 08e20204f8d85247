package db

import (
	"context"
	"errors"
	"time"

	"github.com/ukydev/fleet-care/internal/models"
)

// ErrEquipmentNotFound is returned when no equipment has the requested tag.
var ErrEquipmentNotFound = errors.New("equipment not found")

// EquipmentCollection defines the interface for equipment data operations.
type EquipmentCollection interface {
	FindEquipment(ctx context.Context) ([]models.Equipment, error)
	FindEquipmentByTag(ctx context.Context, tag string) (*models.Equipment, error)
	RecordReading(ctx context.Context, tag string, reading float64, at time.Time) error
	UpdateInterval(ctx context.Context, tag string, interval float64) error
}

// MaintenanceCollection defines the interface for maintenance record queries.
type MaintenanceCollection interface {
	FindMaintenance(ctx context.Context) ([]models.MaintenanceRecord, error)
}

// SupplierCollection defines the interface for supplier queries.
type SupplierCollection interface {
	FindSuppliers(ctx context.Context) ([]models.Supplier, error)
}
