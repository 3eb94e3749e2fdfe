package auth

import "github.com/brokerdesk/brokerdesk/internal/catalog"

// Pairs guarding the administration API.
var (
	// PermSettingsView allows reading roles, matrices and assignments.
	PermSettingsView = catalog.Pair{Module: catalog.ModuleSettings, Action: catalog.ActionView} //nolint:gochecknoglobals
	// PermSettingsUpdate allows changing them.
	PermSettingsUpdate = catalog.Pair{Module: catalog.ModuleSettings, Action: catalog.ActionUpdate} //nolint:gochecknoglobals
)
