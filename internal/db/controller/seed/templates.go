package seed

import (
	"github.com/brokerdesk/brokerdesk/internal/catalog"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
)

// Template is one default role: its attributes and the pairs it is granted.
type Template struct {
	Name                  string
	Description           string
	DashboardScope        models.DashboardScope
	CanSeeOwnCommissions  bool
	CanSeeTeamCommissions bool
	CanSeeAllCommissions  bool
	Pairs                 []catalog.Pair
}

// Role builds the system role of the template for a tenant.
func (t Template) Role(tenantID string) *models.Role {
	return &models.Role{
		TenantID:              tenantID,
		Name:                  t.Name,
		Description:           t.Description,
		IsSystemRole:          true,
		IsActive:              true,
		DashboardScope:        t.DashboardScope,
		CanSeeOwnCommissions:  t.CanSeeOwnCommissions,
		CanSeeTeamCommissions: t.CanSeeTeamCommissions,
		CanSeeAllCommissions:  t.CanSeeAllCommissions,
	}
}

// Default role names.
const (
	AdminCabinet = "Admin Cabinet"
	Manager      = "Manager"
	Agent        = "Agent"
	BackOffice   = "Back-office"
)

var businessModules = []catalog.Module{ //nolint:gochecknoglobals
	catalog.ModuleClients,
	catalog.ModuleContracts,
	catalog.ModulePartners,
	catalog.ModuleProducts,
	catalog.ModuleCollaborators,
	catalog.ModuleCommissions,
	catalog.ModuleDecomptes,
}

// grant collects the valid pairs among modules x actions, skipping combinations
// the catalog does not offer.
func grant(modules []catalog.Module, actions ...catalog.Action) []catalog.Pair {
	var out []catalog.Pair

	for _, m := range modules {
		for _, a := range actions {
			if catalog.IsValid(m, a) {
				out = append(out, catalog.Pair{Module: m, Action: a})
			}
		}
	}

	return out
}

func one(m catalog.Module, actions ...catalog.Action) []catalog.Pair {
	return grant([]catalog.Module{m}, actions...)
}

func join(groups ...[]catalog.Pair) []catalog.Pair {
	var out []catalog.Pair
	for _, g := range groups {
		out = append(out, g...)
	}

	return out
}

// Templates returns the four default roles in creation order.
func Templates() []Template {
	crm := []catalog.Module{catalog.ModuleClients, catalog.ModuleContracts}

	return []Template{
		{
			Name:                  AdminCabinet,
			Description:           "Full access to the cabinet",
			DashboardScope:        models.DashboardScopeGlobal,
			CanSeeOwnCommissions:  true,
			CanSeeTeamCommissions: true,
			CanSeeAllCommissions:  true,
			Pairs:                 catalog.All(),
		},
		{
			Name:                  Manager,
			Description:           "Team lead with broad access",
			DashboardScope:        models.DashboardScopeTeam,
			CanSeeOwnCommissions:  true,
			CanSeeTeamCommissions: true,
			Pairs: join(
				grant(businessModules, catalog.ActionView, catalog.ActionCreate, catalog.ActionUpdate, catalog.ActionExport),
				one(catalog.ModuleContracts, catalog.ActionCancel),
				one(catalog.ModuleDecomptes, catalog.ActionDeposit),
				one(catalog.ModulePayout, catalog.ActionView, catalog.ActionGenerate, catalog.ActionExport),
				one(catalog.ModuleDashboard, catalog.ActionView),
				one(catalog.ModuleSettings, catalog.ActionView),
			),
		},
		{
			Name:                 Agent,
			Description:          "Broker working their own portfolio",
			DashboardScope:       models.DashboardScopePersonal,
			CanSeeOwnCommissions: true,
			Pairs: join(
				grant(crm, catalog.ActionView, catalog.ActionCreate, catalog.ActionUpdate),
				grant([]catalog.Module{
					catalog.ModulePartners,
					catalog.ModuleProducts,
					catalog.ModuleCommissions,
					catalog.ModuleDashboard,
				}, catalog.ActionView),
			),
		},
		{
			Name:           BackOffice,
			Description:    "Operations and billing",
			DashboardScope: models.DashboardScopeGlobal,
			Pairs: join(
				grant(crm, catalog.ActionView, catalog.ActionCreate, catalog.ActionUpdate, catalog.ActionExport),
				one(catalog.ModuleContracts, catalog.ActionCancel),
				grant([]catalog.Module{catalog.ModulePartners, catalog.ModuleProducts}, catalog.ActionView),
				one(catalog.ModuleDecomptes,
					catalog.ActionView, catalog.ActionCreate, catalog.ActionUpdate,
					catalog.ActionDeposit, catalog.ActionValidate, catalog.ActionExport),
				one(catalog.ModulePayout, catalog.ActionView, catalog.ActionGenerate, catalog.ActionExport),
				one(catalog.ModuleDashboard, catalog.ActionView),
			),
		},
	}
}
