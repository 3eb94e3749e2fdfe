// Package models contains database model definitions.
package models

import "time"

// DashboardScope defines how much of the organization's data a role's dashboard aggregates.
type DashboardScope string

const (
	// DashboardScopePersonal limits the dashboard to the user's own business.
	DashboardScopePersonal DashboardScope = "personal"
	// DashboardScopeTeam aggregates the user's team.
	DashboardScopeTeam DashboardScope = "team"
	// DashboardScopeGlobal aggregates the whole tenant.
	DashboardScopeGlobal DashboardScope = "global"
)

// Rank orders scopes from narrowest to broadest. Unknown scopes rank lowest.
func (s DashboardScope) Rank() int {
	switch s {
	case DashboardScopeGlobal:
		return 2 //nolint:mnd
	case DashboardScopeTeam:
		return 1
	default:
		return 0
	}
}

// Role represents a named role owned by a tenant.
// System roles are seeded by the default-role initializer and can be neither edited nor deleted.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey" json:"id"`
	// TenantID is the owning brokerage firm.
	TenantID string `gorm:"size:64;not null;uniqueIndex:idx_tenant_role_name" json:"tenant_id"`
	// Name is unique within the tenant.
	Name string `gorm:"size:100;not null;uniqueIndex:idx_tenant_role_name" json:"name"`
	// Description is optional free text.
	Description string `gorm:"size:255" json:"description"`
	// IsSystemRole marks seeded roles.
	IsSystemRole bool `gorm:"not null" json:"is_system_role"`
	// IsActive disables a role without deleting it. Inactive roles grant nothing.
	IsActive bool `gorm:"not null" json:"is_active"`
	// DashboardScope is one of personal, team or global.
	DashboardScope DashboardScope `gorm:"type:varchar(20);not null" json:"dashboard_scope"`

	CanSeeOwnCommissions  bool `gorm:"not null" json:"can_see_own_commissions"`
	CanSeeTeamCommissions bool `gorm:"not null" json:"can_see_team_commissions"`
	CanSeeAllCommissions  bool `gorm:"not null" json:"can_see_all_commissions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
