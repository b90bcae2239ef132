package model

// Role is a user's access level
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Valid reports whether the role is one of the three known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// Module identifies a permission-controlled area of the console
type Module string

const (
	ModuleTeams   Module = "teams"
	ModulePools   Module = "pools"
	ModuleMatches Module = "matches"
	ModuleUsers   Module = "users"
)

// Action identifies an operation within a module
type Action string

const (
	ActionView         Action = "view"
	ActionAdd          Action = "add"
	ActionEdit         Action = "edit"
	ActionDelete       Action = "delete"
	ActionFixMatch     Action = "fixMatch"
	ActionReorder      Action = "reorder"
	ActionComplete     Action = "complete"
	ActionToggleStatus Action = "toggleStatus"
	ActionViewLogs     Action = "viewLogs"
	ActionViewActivity Action = "viewActivity"
)

// PermissionSet maps module -> action -> granted.
// Lookups are total: missing modules or actions read as false.
type PermissionSet map[Module]map[Action]bool

// Allows reports whether the set grants the given module/action.
// It never panics on missing keys.
func (p PermissionSet) Allows(module Module, action Action) bool {
	if p == nil {
		return false
	}
	actions, ok := p[module]
	if !ok {
		return false
	}
	return actions[action]
}

// Clone returns a deep copy of the permission set
func (p PermissionSet) Clone() PermissionSet {
	if p == nil {
		return nil
	}
	out := make(PermissionSet, len(p))
	for module, actions := range p {
		clone := make(map[Action]bool, len(actions))
		for action, granted := range actions {
			clone[action] = granted
		}
		out[module] = clone
	}
	return out
}

// DefaultPermissions returns the full permission table for a role.
// Unknown roles get the viewer defaults.
func DefaultPermissions(role Role) PermissionSet {
	switch role {
	case RoleAdmin:
		return PermissionSet{
			ModuleTeams:   {ActionView: true, ActionAdd: true, ActionEdit: true, ActionDelete: true},
			ModulePools:   {ActionView: true, ActionAdd: true, ActionEdit: true, ActionDelete: true, ActionFixMatch: true},
			ModuleMatches: {ActionView: true, ActionReorder: true, ActionComplete: true, ActionEdit: true, ActionDelete: true},
			ModuleUsers:   {ActionView: true, ActionAdd: true, ActionEdit: true, ActionDelete: true, ActionToggleStatus: true, ActionViewLogs: true, ActionViewActivity: true},
		}
	case RoleEditor:
		return PermissionSet{
			ModuleTeams:   {ActionView: true, ActionAdd: true, ActionEdit: true, ActionDelete: false},
			ModulePools:   {ActionView: true, ActionAdd: true, ActionEdit: true, ActionDelete: false, ActionFixMatch: true},
			ModuleMatches: {ActionView: true, ActionReorder: true, ActionComplete: true, ActionEdit: true, ActionDelete: false},
			ModuleUsers:   {ActionView: false, ActionAdd: false, ActionEdit: false, ActionDelete: false, ActionToggleStatus: false, ActionViewLogs: false, ActionViewActivity: false},
		}
	default:
		return PermissionSet{
			ModuleTeams:   {ActionView: true, ActionAdd: false, ActionEdit: false, ActionDelete: false},
			ModulePools:   {ActionView: true, ActionAdd: false, ActionEdit: false, ActionDelete: false, ActionFixMatch: false},
			ModuleMatches: {ActionView: true, ActionReorder: false, ActionComplete: false, ActionEdit: false, ActionDelete: false},
			ModuleUsers:   {ActionView: false, ActionAdd: false, ActionEdit: false, ActionDelete: false, ActionToggleStatus: false, ActionViewLogs: false, ActionViewActivity: false},
		}
	}
}
