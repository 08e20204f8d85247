package models

// Role represents user roles in the system
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// Actions checked by the API permission middleware.
const (
	ActionViewAlerts      = "view_alerts"
	ActionViewEquipment   = "view_equipment"
	ActionSearch          = "search"
	ActionRecordReadings  = "record_readings"
	ActionManageIntervals = "manage_intervals"
)

// Claims represents JWT claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Exp      int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleOperator, RoleViewer:
		return true
	default:
		return false
	}
}

// HasPermission checks if the role may perform the given action
func (r Role) HasPermission(action string) bool {
	switch r {
	case RoleAdmin, RoleManager:
		return true
	case RoleOperator:
		return isReadAction(action) || action == ActionRecordReadings
	case RoleViewer:
		return isReadAction(action)
	default:
		return false
	}
}

func isReadAction(action string) bool {
	return action == ActionViewAlerts || action == ActionViewEquipment || action == ActionSearch
}
