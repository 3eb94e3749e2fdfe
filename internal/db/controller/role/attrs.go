package role

import (
	"strings"

	"github.com/brokerdesk/brokerdesk/internal/db/models"
)

// Attrs are the attributes accepted when creating a role.
// Nil visibility flags take the defaults own=true, team=false, all=false.
type Attrs struct {
	Name                  string                `json:"name"            validate:"required,max=100"`
	Description           string                `json:"description"     validate:"max=255"`
	DashboardScope        models.DashboardScope `json:"dashboard_scope" validate:"omitempty,oneof=personal team global"`
	CanSeeOwnCommissions  *bool                 `json:"can_see_own_commissions"`
	CanSeeTeamCommissions *bool                 `json:"can_see_team_commissions"`
	CanSeeAllCommissions  *bool                 `json:"can_see_all_commissions"`
}

// Changes is a partial update. Nil fields are left untouched.
type Changes struct {
	Name                  *string                `json:"name"            validate:"omitempty,max=100"`
	Description           *string                `json:"description"     validate:"omitempty,max=255"`
	IsActive              *bool                  `json:"is_active"`
	DashboardScope        *models.DashboardScope `json:"dashboard_scope" validate:"omitempty,oneof=personal team global"`
	CanSeeOwnCommissions  *bool                  `json:"can_see_own_commissions"`
	CanSeeTeamCommissions *bool                  `json:"can_see_team_commissions"`
	CanSeeAllCommissions  *bool                  `json:"can_see_all_commissions"`
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}

	return *v
}

func (a *Attrs) normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.Description = strings.TrimSpace(a.Description)

	if a.DashboardScope == "" {
		a.DashboardScope = models.DashboardScopePersonal
	}
}

func (a *Attrs) role(tenantID string) *models.Role {
	return &models.Role{
		TenantID:              tenantID,
		Name:                  a.Name,
		Description:           a.Description,
		IsSystemRole:          false,
		IsActive:              true,
		DashboardScope:        a.DashboardScope,
		CanSeeOwnCommissions:  boolOr(a.CanSeeOwnCommissions, true),
		CanSeeTeamCommissions: boolOr(a.CanSeeTeamCommissions, false),
		CanSeeAllCommissions:  boolOr(a.CanSeeAllCommissions, false),
	}
}

func (c *Changes) normalize() {
	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		c.Name = &name
	}

	if c.Description != nil {
		desc := strings.TrimSpace(*c.Description)
		c.Description = &desc
	}
}

// columns maps the set fields to their database columns.
func (c *Changes) columns() map[string]any {
	out := make(map[string]any)

	if c.Name != nil {
		out["name"] = *c.Name
	}

	if c.Description != nil {
		out["description"] = *c.Description
	}

	if c.IsActive != nil {
		out["is_active"] = *c.IsActive
	}

	if c.DashboardScope != nil {
		out["dashboard_scope"] = *c.DashboardScope
	}

	if c.CanSeeOwnCommissions != nil {
		out["can_see_own_commissions"] = *c.CanSeeOwnCommissions
	}

	if c.CanSeeTeamCommissions != nil {
		out["can_see_team_commissions"] = *c.CanSeeTeamCommissions
	}

	if c.CanSeeAllCommissions != nil {
		out["can_see_all_commissions"] = *c.CanSeeAllCommissions
	}

	return out
}
