package models

import "testing"

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{"admin role", RoleAdmin, true},
		{"manager role", RoleManager, true},
		{"operator role", RoleOperator, true},
		{"viewer role", RoleViewer, true},
		{"invalid role", "invalid", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidRole(tt.role)
			if result != tt.expected {
				t.Errorf("IsValidRole(%s) = %v, want %v", tt.role, result, tt.expected)
			}
		})
	}
}

func TestRole_HasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		action   string
		expected bool
	}{
		{"admin can manage intervals", RoleAdmin, ActionManageIntervals, true},
		{"admin can view equipment", RoleAdmin, ActionViewEquipment, true},

		{"manager can manage intervals", RoleManager, ActionManageIntervals, true},
		{"manager can record readings", RoleManager, ActionRecordReadings, true},

		{"operator can view alerts", RoleOperator, ActionViewAlerts, true},
		{"operator can search", RoleOperator, ActionSearch, true},
		{"operator can record readings", RoleOperator, ActionRecordReadings, true},
		{"operator cannot manage intervals", RoleOperator, ActionManageIntervals, false},

		{"viewer can view alerts", RoleViewer, ActionViewAlerts, true},
		{"viewer can view equipment", RoleViewer, ActionViewEquipment, true},
		{"viewer can search", RoleViewer, ActionSearch, true},
		{"viewer cannot record readings", RoleViewer, ActionRecordReadings, false},
		{"viewer cannot manage intervals", RoleViewer, ActionManageIntervals, false},

		{"unknown role has nothing", Role("guest"), ActionViewAlerts, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.role.HasPermission(tt.action)
			if result != tt.expected {
				t.Errorf("Role %s HasPermission(%s) = %v, want %v", tt.role, tt.action, result, tt.expected)
			}
		})
	}
}
