package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// MaintenanceKind classifies a maintenance job.
type MaintenanceKind string

const (
	KindPreventive MaintenanceKind = "PREVENTIVE"
	KindCorrective MaintenanceKind = "CORRECTIVE"
	KindPredictive MaintenanceKind = "PREDICTIVE"
	KindInspection MaintenanceKind = "INSPECTION"
)

// MaintenanceStatus is the lifecycle state of a maintenance job.
type MaintenanceStatus string

const (
	StatusScheduled  MaintenanceStatus = "SCHEDULED"
	StatusInProgress MaintenanceStatus = "IN_PROGRESS"
	StatusDone       MaintenanceStatus = "DONE"
	StatusCancelled  MaintenanceStatus = "CANCELLED"
)

// MaintenanceRecord represents a scheduled or completed maintenance job on one equipment.
type MaintenanceRecord struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EquipmentTag   string             `json:"equipment_tag" bson:"equipment_tag"`
	Kind           MaintenanceKind    `json:"kind" bson:"kind"`
	ScheduledDate  *time.Time         `json:"scheduled_date,omitempty" bson:"scheduled_date,omitempty"`
	CompletedDate  *time.Time         `json:"completed_date,omitempty" bson:"completed_date,omitempty"`
	Status         MaintenanceStatus  `json:"status" bson:"status"`
	SupplierID     string             `json:"supplier_id,omitempty" bson:"supplier_id,omitempty"`
	EstimatedCost  float64            `json:"estimated_cost" bson:"estimated_cost"`
	Cost           float64            `json:"cost" bson:"cost"`
	ServiceReading float64            `json:"service_reading" bson:"service_reading"` // hours or km at service time
	WorkOrder      string             `json:"work_order,omitempty" bson:"work_order,omitempty"`
	Responsible    string             `json:"responsible,omitempty" bson:"responsible,omitempty"`
	Notes          string             `json:"notes" bson:"notes"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}
