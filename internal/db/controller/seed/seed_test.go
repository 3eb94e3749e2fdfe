package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerdesk/brokerdesk/internal/catalog"
	"github.com/brokerdesk/brokerdesk/internal/db/controller"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/permission"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/role"
	"github.com/brokerdesk/brokerdesk/internal/db/dbtest"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
)

const tenantID = "tenant-a"

func TestTemplates(t *testing.T) {
	templates := Templates()
	require.Len(t, templates, 4)

	names := make([]string, 0, len(templates))

	for _, tpl := range templates {
		names = append(names, tpl.Name)

		seen := make(map[catalog.Pair]bool)
		for _, p := range tpl.Pairs {
			assert.True(t, catalog.IsValid(p.Module, p.Action), "%s grants %s", tpl.Name, p)
			assert.False(t, seen[p], "%s grants %s twice", tpl.Name, p)
			seen[p] = true
		}
	}

	assert.Equal(t, []string{AdminCabinet, Manager, Agent, BackOffice}, names)
	assert.Len(t, templates[0].Pairs, len(catalog.All()))
}

func TestTemplateShapes(t *testing.T) {
	byName := make(map[string]permission.Matrix)
	for _, tpl := range Templates() {
		rows := make([]models.Permission, 0, len(tpl.Pairs))
		for _, p := range tpl.Pairs {
			rows = append(rows, models.Permission{Module: p.Module, Action: p.Action, Allowed: true})
		}

		byName[tpl.Name] = permission.NewMatrix(rows)
	}

	testCases := []struct {
		role     string
		module   catalog.Module
		action   catalog.Action
		expected bool
	}{
		{AdminCabinet, catalog.ModulePayout, catalog.ActionValidate, true},
		{AdminCabinet, catalog.ModuleCommissions, catalog.ActionModifyRules, true},
		{Manager, catalog.ModuleClients, catalog.ActionExport, true},
		{Manager, catalog.ModuleClients, catalog.ActionDelete, false},
		{Manager, catalog.ModulePayout, catalog.ActionValidate, false},
		{Manager, catalog.ModuleCommissions, catalog.ActionModifyRules, false},
		{Manager, catalog.ModuleSettings, catalog.ActionView, true},
		{Manager, catalog.ModuleSettings, catalog.ActionUpdate, false},
		{Agent, catalog.ModuleClients, catalog.ActionView, true},
		{Agent, catalog.ModuleClients, catalog.ActionExport, false},
		{Agent, catalog.ModulePayout, catalog.ActionValidate, false},
		{Agent, catalog.ModuleCommissions, catalog.ActionView, true},
		{Agent, catalog.ModuleSettings, catalog.ActionView, false},
		{BackOffice, catalog.ModuleDecomptes, catalog.ActionValidate, true},
		{BackOffice, catalog.ModuleCommissions, catalog.ActionView, false},
		{BackOffice, catalog.ModulePayout, catalog.ActionValidate, false},
	}

	for _, tc := range testCases {
		t.Run(tc.role+" "+string(tc.module)+"."+string(tc.action), func(t *testing.T) {
			assert.Equal(t, tc.expected, byName[tc.role].HasPermission(tc.module, tc.action))
		})
	}
}

func TestInitialize(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	res, err := Initialize(ctx, db, tenantID)
	require.NoError(t, err)
	assert.True(t, res.Complete())
	require.Len(t, res.Created, 4)

	roles, err := role.New(db).List(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, roles, 4)

	for _, r := range roles {
		assert.True(t, r.IsSystemRole, r.Name)
		assert.True(t, r.IsActive, r.Name)
	}

	admin := res.Created[0]
	assert.Equal(t, models.DashboardScopeGlobal, admin.DashboardScope)
	assert.True(t, admin.CanSeeAllCommissions)

	backOffice := res.Created[3]
	assert.False(t, backOffice.CanSeeOwnCommissions)
	assert.False(t, backOffice.CanSeeTeamCommissions)
	assert.False(t, backOffice.CanSeeAllCommissions)

	m, err := permission.New(db).List(ctx, tenantID, admin.ID)
	require.NoError(t, err)
	assert.Len(t, m.Allowed(), len(catalog.All()))
}

func TestInitializeIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	_, err := Initialize(ctx, db, tenantID)
	require.NoError(t, err)

	var before int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&before).Error)

	res, err := Initialize(ctx, db, tenantID)
	require.NoError(t, err)
	assert.True(t, res.AlreadyInitialized)
	assert.Empty(t, res.Created)
	assert.False(t, res.Complete())

	count, err := role.New(db).CountForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	var after int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestInitializeSkipsTenantWithCustomRole(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	_, err := role.New(db).Create(ctx, tenantID, role.Attrs{Name: "Custom"})
	require.NoError(t, err)

	res, err := Initialize(ctx, db, tenantID)
	require.NoError(t, err)
	assert.True(t, res.AlreadyInitialized)

	res, err = Initialize(ctx, db, "tenant-b")
	require.NoError(t, err)
	assert.Len(t, res.Created, 4)
}

func TestInitializeErrors(t *testing.T) {
	_, err := Initialize(context.Background(), nil, tenantID)
	require.ErrorIs(t, err, controller.ErrDBNil)

	_, err = Initialize(context.Background(), dbtest.New(t), "")
	require.ErrorIs(t, err, controller.ErrNoTenant)
}

func TestInitializeRollsBackFailingTemplate(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	// the Agent role row is written, then its permission batch aborts
	require.NoError(t, db.Exec("CREATE TRIGGER fail_agent BEFORE INSERT ON role_permissions_matrix "+
		"WHEN NEW.role_id IN (SELECT id FROM roles WHERE name = 'Agent') "+
		"BEGIN SELECT RAISE(ABORT, 'agent blocked'); END").Error)

	res, err := Initialize(ctx, db, tenantID)
	require.NoError(t, err)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, Agent, res.Failures[0].Template)
	assert.Len(t, res.Created, 3)

	var orphans int64
	require.NoError(t, db.Model(&models.Role{}).Where("tenant_id = ? AND name = ?", tenantID, Agent).Count(&orphans).Error)
	assert.Zero(t, orphans)
}
