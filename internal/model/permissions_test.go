package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminDefaultsGrantEverything(t *testing.T) {
	perms := DefaultPermissions(RoleAdmin)

	for _, module := range []Module{ModuleTeams, ModulePools, ModuleMatches, ModuleUsers} {
		for action, granted := range perms[module] {
			assert.True(t, granted, "admin should have %s/%s", module, action)
		}
	}
	assert.True(t, perms.Allows(ModuleUsers, ActionToggleStatus))
	assert.True(t, perms.Allows(ModulePools, ActionFixMatch))
}

func TestEditorDefaults(t *testing.T) {
	perms := DefaultPermissions(RoleEditor)

	assert.True(t, perms.Allows(ModuleTeams, ActionAdd))
	assert.True(t, perms.Allows(ModuleTeams, ActionEdit))
	assert.False(t, perms.Allows(ModuleTeams, ActionDelete))

	assert.True(t, perms.Allows(ModulePools, ActionFixMatch))
	assert.False(t, perms.Allows(ModulePools, ActionDelete))

	assert.True(t, perms.Allows(ModuleMatches, ActionReorder))
	assert.True(t, perms.Allows(ModuleMatches, ActionComplete))
	assert.False(t, perms.Allows(ModuleMatches, ActionDelete))

	// Editors get no user administration at all
	for action := range perms[ModuleUsers] {
		assert.False(t, perms.Allows(ModuleUsers, action))
	}
}

func TestViewerDefaultsAreReadOnly(t *testing.T) {
	perms := DefaultPermissions(RoleViewer)

	assert.True(t, perms.Allows(ModuleTeams, ActionView))
	assert.True(t, perms.Allows(ModulePools, ActionView))
	assert.True(t, perms.Allows(ModuleMatches, ActionView))
	assert.False(t, perms.Allows(ModuleUsers, ActionView))

	assert.False(t, perms.Allows(ModuleTeams, ActionAdd))
	assert.False(t, perms.Allows(ModuleMatches, ActionComplete))
	assert.False(t, perms.Allows(ModuleUsers, ActionViewLogs))
}

func TestUnknownRoleGetsViewerDefaults(t *testing.T) {
	perms := DefaultPermissions(Role("superuser"))
	assert.Equal(t, DefaultPermissions(RoleViewer), perms)
}

func TestAllowsIsTotalOnMissingKeys(t *testing.T) {
	var nilSet PermissionSet
	assert.False(t, nilSet.Allows(ModuleTeams, ActionView))

	partial := PermissionSet{ModuleTeams: {ActionView: true}}
	assert.False(t, partial.Allows(ModuleTeams, ActionDelete))
	assert.False(t, partial.Allows(ModuleUsers, ActionView))
	assert.False(t, partial.Allows(Module("unknown"), Action("unknown")))
}

func TestCloneIsDeep(t *testing.T) {
	orig := DefaultPermissions(RoleViewer)
	clone := orig.Clone()

	clone[ModuleTeams][ActionDelete] = true
	assert.False(t, orig.Allows(ModuleTeams, ActionDelete))
	assert.True(t, clone.Allows(ModuleTeams, ActionDelete))
}

func TestSessionHasPermissionAdminOverride(t *testing.T) {
	// An admin session passes every check even with an empty grant table
	session := &Session{Role: RoleAdmin, Permissions: PermissionSet{}}
	assert.True(t, session.HasPermission(ModuleUsers, ActionDelete))
	assert.True(t, session.HasPermission(ModuleMatches, ActionReorder))
}

func TestSessionHasPermissionNonAdminUsesGrants(t *testing.T) {
	session := &Session{Role: RoleEditor, Permissions: DefaultPermissions(RoleEditor)}
	assert.True(t, session.HasPermission(ModuleTeams, ActionEdit))
	assert.False(t, session.HasPermission(ModuleUsers, ActionView))

	var nilSession *Session
	assert.False(t, nilSession.HasPermission(ModuleTeams, ActionView))
}
