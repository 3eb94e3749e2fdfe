// Package catalog enumerates the modules and actions that role permissions are scoped to.
//
// The catalog is static configuration. It is the only authority on which
// (module, action) pairs may be displayed or stored for a role.
package catalog

// Module is a named functional area of the application.
type Module string

// Action is a named operation within a module.
type Action string

// Modules.
const (
	ModuleClients       Module = "clients"
	ModuleContracts     Module = "contracts"
	ModulePartners      Module = "partners"
	ModuleProducts      Module = "products"
	ModuleCollaborators Module = "collaborators"
	ModuleCommissions   Module = "commissions"
	ModuleDecomptes     Module = "decomptes"
	ModulePayout        Module = "payout"
	ModuleDashboard     Module = "dashboard"
	ModuleSettings      Module = "settings"
)

// Actions.
const (
	ActionView        Action = "view"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionExport      Action = "export"
	ActionDeposit     Action = "deposit"
	ActionCancel      Action = "cancel"
	ActionGenerate    Action = "generate"
	ActionValidate    Action = "validate"
	ActionModifyRules Action = "modify_rules"
)

// Pair is a single (module, action) cell of the permission matrix.
type Pair struct {
	Module Module `json:"module"`
	Action Action `json:"action"`
}

// String returns the pair in module.action form.
func (p Pair) String() string {
	return string(p.Module) + "." + string(p.Action)
}

var (
	moduleOrder = []Module{ //nolint:gochecknoglobals
		ModuleClients,
		ModuleContracts,
		ModulePartners,
		ModuleProducts,
		ModuleCollaborators,
		ModuleCommissions,
		ModuleDecomptes,
		ModulePayout,
		ModuleDashboard,
		ModuleSettings,
	}

	actionOrder = []Action{ //nolint:gochecknoglobals
		ActionView,
		ActionCreate,
		ActionUpdate,
		ActionDelete,
		ActionExport,
		ActionDeposit,
		ActionCancel,
		ActionGenerate,
		ActionValidate,
		ActionModifyRules,
	}

	crud = []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete} //nolint:gochecknoglobals

	moduleActions = map[Module][]Action{ //nolint:gochecknoglobals
		ModuleClients:       append(clone(crud), ActionExport),
		ModuleContracts:     append(clone(crud), ActionExport, ActionCancel),
		ModulePartners:      clone(crud),
		ModuleProducts:      clone(crud),
		ModuleCollaborators: clone(crud),
		ModuleCommissions:   append(clone(crud), ActionExport, ActionModifyRules),
		ModuleDecomptes:     append(clone(crud), ActionDeposit, ActionValidate, ActionExport),
		ModulePayout:        {ActionView, ActionGenerate, ActionValidate, ActionExport},
		ModuleDashboard:     {ActionView},
		ModuleSettings:      {ActionView, ActionUpdate},
	}
)

func clone(in []Action) []Action {
	return append([]Action(nil), in...)
}

// Modules returns every module in display order.
func Modules() []Module {
	return append([]Module(nil), moduleOrder...)
}

// Actions returns every action in display order.
func Actions() []Action {
	return append([]Action(nil), actionOrder...)
}

// ActionsFor returns the actions that are meaningful for module m.
// Unknown modules have no actions.
func ActionsFor(m Module) []Action {
	return clone(moduleActions[m])
}

// IsValid reports whether the action is declared for the module.
func IsValid(m Module, a Action) bool {
	for _, candidate := range moduleActions[m] {
		if candidate == a {
			return true
		}
	}

	return false
}

// All returns every valid pair, modules in display order and actions in declaration order.
func All() []Pair {
	var pairs []Pair

	for _, m := range moduleOrder {
		for _, a := range moduleActions[m] {
			pairs = append(pairs, Pair{Module: m, Action: a})
		}
	}

	return pairs
}

// ParseModule converts s to a Module if it names a known module.
func ParseModule(s string) (Module, bool) {
	m := Module(s)
	_, ok := moduleActions[m]

	return m, ok
}

// ParseAction converts s to an Action if it names a known action.
func ParseAction(s string) (Action, bool) {
	for _, a := range actionOrder {
		if string(a) == s {
			return a, true
		}
	}

	return "", false
}
