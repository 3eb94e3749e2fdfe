package auth

import (
	"github.com/brokerdesk/brokerdesk/internal/catalog"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/permission"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
)

// Effective is what a user may do in a tenant: the union of their active roles.
type Effective struct {
	TenantID              string                `json:"tenant_id"`
	UserID                string                `json:"user_id"`
	Roles                 []models.Role         `json:"roles"`
	Permissions           []catalog.Pair        `json:"permissions"`
	DashboardScope        models.DashboardScope `json:"dashboard_scope"`
	CanSeeOwnCommissions  bool                  `json:"can_see_own_commissions"`
	CanSeeTeamCommissions bool                  `json:"can_see_team_commissions"`
	CanSeeAllCommissions  bool                  `json:"can_see_all_commissions"`

	matrix permission.Matrix
}

// newEffective folds active roles and their rows. Inactive roles are ignored.
func newEffective(tenantID, userID string, roles []models.Role, matrix permission.Matrix) *Effective {
	e := &Effective{
		TenantID:       tenantID,
		UserID:         userID,
		Roles:          []models.Role{},
		Permissions:    []catalog.Pair{},
		DashboardScope: models.DashboardScopePersonal,
		matrix:         matrix,
	}

	for _, r := range roles {
		if !r.IsActive {
			continue
		}

		e.Roles = append(e.Roles, r)
		e.CanSeeOwnCommissions = e.CanSeeOwnCommissions || r.CanSeeOwnCommissions
		e.CanSeeTeamCommissions = e.CanSeeTeamCommissions || r.CanSeeTeamCommissions
		e.CanSeeAllCommissions = e.CanSeeAllCommissions || r.CanSeeAllCommissions

		if r.DashboardScope.Rank() > e.DashboardScope.Rank() {
			e.DashboardScope = r.DashboardScope
		}
	}

	for _, p := range catalog.All() {
		if matrix.HasPermission(p.Module, p.Action) {
			e.Permissions = append(e.Permissions, p)
		}
	}

	return e
}

// Has reports whether any active role allows the pair.
func (e *Effective) Has(module catalog.Module, action catalog.Action) bool {
	return e.matrix.HasPermission(module, action)
}

// HasAny reports whether at least one pair is allowed. No pairs means false.
func (e *Effective) HasAny(pairs ...catalog.Pair) bool {
	for _, p := range pairs {
		if e.Has(p.Module, p.Action) {
			return true
		}
	}

	return false
}

// HasAll reports whether every pair is allowed. No pairs means true.
func (e *Effective) HasAll(pairs ...catalog.Pair) bool {
	for _, p := range pairs {
		if !e.Has(p.Module, p.Action) {
			return false
		}
	}

	return true
}
