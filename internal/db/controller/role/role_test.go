package role

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brokerdesk/brokerdesk/internal/catalog"
	"github.com/brokerdesk/brokerdesk/internal/db/controller"
	"github.com/brokerdesk/brokerdesk/internal/db/dbtest"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
)

const (
	tenantA = "tenant-a"
	tenantB = "tenant-b"
)

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

// seedSystemRole inserts a system role the way the seeder does.
func seedSystemRole(t *testing.T, db *gorm.DB, tenantID, name string) *models.Role {
	t.Helper()

	r := &models.Role{
		TenantID:             tenantID,
		Name:                 name,
		IsSystemRole:         true,
		IsActive:             true,
		DashboardScope:       models.DashboardScopeGlobal,
		CanSeeOwnCommissions: true,
	}
	require.NoError(t, db.Create(r).Error)

	return r
}

func TestCreateDefaults(t *testing.T) {
	store := New(dbtest.New(t))

	r, err := store.Create(context.Background(), tenantA, Attrs{Name: "  Junior  "})
	require.NoError(t, err)

	assert.NotZero(t, r.ID)
	assert.Equal(t, "Junior", r.Name)
	assert.Equal(t, tenantA, r.TenantID)
	assert.True(t, r.CanSeeOwnCommissions)
	assert.False(t, r.CanSeeTeamCommissions)
	assert.False(t, r.CanSeeAllCommissions)
	assert.Equal(t, models.DashboardScopePersonal, r.DashboardScope)
	assert.False(t, r.IsSystemRole)
	assert.True(t, r.IsActive)

	stored, err := store.Get(context.Background(), tenantA, r.ID)
	require.NoError(t, err)
	assert.True(t, stored.CanSeeOwnCommissions)
	assert.False(t, stored.CanSeeTeamCommissions)
	assert.Equal(t, models.DashboardScopePersonal, stored.DashboardScope)
}

func TestCreate(t *testing.T) {
	db := dbtest.New(t)
	store := New(db)

	_, err := store.Create(context.Background(), tenantA, Attrs{Name: "Taken"})
	require.NoError(t, err)

	testCases := []struct {
		name          string
		store         *Store
		tenantID      string
		attrs         Attrs
		expectedError error
	}{
		{
			name:          "nil database",
			store:         New(nil),
			tenantID:      tenantA,
			attrs:         Attrs{Name: "x"},
			expectedError: controller.ErrDBNil,
		},
		{
			name:          "no tenant",
			store:         store,
			attrs:         Attrs{Name: "x"},
			expectedError: controller.ErrNoTenant,
		},
		{
			name:          "empty name",
			store:         store,
			tenantID:      tenantA,
			attrs:         Attrs{Name: "   "},
			expectedError: ErrRoleNameEmpty,
		},
		{
			name:          "invalid scope",
			store:         store,
			tenantID:      tenantA,
			attrs:         Attrs{Name: "Scoped", DashboardScope: "company"},
			expectedError: ErrInvalidRole,
		},
		{
			name:          "duplicate name in tenant",
			store:         store,
			tenantID:      tenantA,
			attrs:         Attrs{Name: "Taken"},
			expectedError: ErrRoleNameTaken,
		},
		{
			name:     "same name in other tenant",
			store:    store,
			tenantID: tenantB,
			attrs:    Attrs{Name: "Taken"},
		},
		{
			name:     "explicit visibility",
			store:    store,
			tenantID: tenantA,
			attrs: Attrs{
				Name:                  "Team lead",
				DashboardScope:        models.DashboardScopeTeam,
				CanSeeOwnCommissions:  boolPtr(false),
				CanSeeTeamCommissions: boolPtr(true),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := tc.store.Create(context.Background(), tc.tenantID, tc.attrs)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, r)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.tenantID, r.TenantID)
			assert.Equal(t, tc.attrs.CanSeeOwnCommissions == nil || *tc.attrs.CanSeeOwnCommissions, r.CanSeeOwnCommissions)
		})
	}

	var count int64
	db.Model(&models.Role{}).Where("tenant_id = ? AND name = ?", tenantA, "Taken").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListOrderedByNameAndScoped(t *testing.T) {
	store := New(dbtest.New(t))
	ctx := context.Background()

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		_, err := store.Create(ctx, tenantA, Attrs{Name: name})
		require.NoError(t, err)
	}

	_, err := store.Create(ctx, tenantB, Attrs{Name: "Other"})
	require.NoError(t, err)

	roles, err := store.List(ctx, tenantA)
	require.NoError(t, err)
	require.Len(t, roles, 3)
	assert.Equal(t, "Alpha", roles[0].Name)
	assert.Equal(t, "Mid", roles[1].Name)
	assert.Equal(t, "Zeta", roles[2].Name)

	roles, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, roles)

	count, err := store.CountForTenant(ctx, tenantB)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetOtherTenant(t *testing.T) {
	store := New(dbtest.New(t))

	r, err := store.Create(context.Background(), tenantA, Attrs{Name: "Private"})
	require.NoError(t, err)

	_, err = store.Get(context.Background(), tenantB, r.ID)
	require.ErrorIs(t, err, ErrRoleNotFound)

	_, err = store.Get(context.Background(), "", r.ID)
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestUpdate(t *testing.T) {
	db := dbtest.New(t)
	store := New(db)
	ctx := context.Background()

	custom, err := store.Create(ctx, tenantA, Attrs{Name: "Custom"})
	require.NoError(t, err)

	_, err = store.Create(ctx, tenantA, Attrs{Name: "Existing"})
	require.NoError(t, err)

	system := seedSystemRole(t, db, tenantA, "Admin Cabinet")
	scope := models.DashboardScopeGlobal

	testCases := []struct {
		name          string
		tenantID      string
		roleID        uint
		changes       Changes
		expectedError error
		check         func(t *testing.T, r *models.Role)
	}{
		{
			name:          "system role rejected",
			tenantID:      tenantA,
			roleID:        system.ID,
			changes:       Changes{Name: strPtr("Renamed admin")},
			expectedError: ErrSystemRole,
		},
		{
			name:          "other tenant",
			tenantID:      tenantB,
			roleID:        custom.ID,
			changes:       Changes{Name: strPtr("Stolen")},
			expectedError: ErrRoleNotFound,
		},
		{
			name:          "no tenant",
			roleID:        custom.ID,
			changes:       Changes{Name: strPtr("x")},
			expectedError: controller.ErrNoTenant,
		},
		{
			name:          "empty name",
			tenantID:      tenantA,
			roleID:        custom.ID,
			changes:       Changes{Name: strPtr(" ")},
			expectedError: ErrRoleNameEmpty,
		},
		{
			name:          "name taken",
			tenantID:      tenantA,
			roleID:        custom.ID,
			changes:       Changes{Name: strPtr("Existing")},
			expectedError: ErrRoleNameTaken,
		},
		{
			name:     "partial update keeps untouched fields",
			tenantID: tenantA,
			roleID:   custom.ID,
			changes: Changes{
				Description:           strPtr("for seniors"),
				IsActive:              boolPtr(false),
				DashboardScope:        &scope,
				CanSeeOwnCommissions:  boolPtr(false),
				CanSeeAllCommissions:  boolPtr(true),
				CanSeeTeamCommissions: boolPtr(true),
			},
			check: func(t *testing.T, r *models.Role) {
				t.Helper()
				assert.Equal(t, "Custom", r.Name)
				assert.Equal(t, "for seniors", r.Description)
				assert.False(t, r.IsActive)
				assert.Equal(t, models.DashboardScopeGlobal, r.DashboardScope)
				assert.False(t, r.CanSeeOwnCommissions)
				assert.True(t, r.CanSeeTeamCommissions)
				assert.True(t, r.CanSeeAllCommissions)
				assert.False(t, r.IsSystemRole)
			},
		},
		{
			name:     "rename",
			tenantID: tenantA,
			roleID:   custom.ID,
			changes:  Changes{Name: strPtr("Senior")},
			check: func(t *testing.T, r *models.Role) {
				t.Helper()
				assert.Equal(t, "Senior", r.Name)
				assert.Equal(t, "for seniors", r.Description)
			},
		},
		{
			name:     "no changes",
			tenantID: tenantA,
			roleID:   custom.ID,
			check: func(t *testing.T, r *models.Role) {
				t.Helper()
				assert.Equal(t, "Senior", r.Name)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := store.Update(ctx, tc.tenantID, tc.roleID, tc.changes)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, r)

				return
			}

			require.NoError(t, err)
			tc.check(t, r)
		})
	}

	stored, err := store.Get(ctx, tenantA, system.ID)
	require.NoError(t, err)
	assert.Equal(t, "Admin Cabinet", stored.Name)
}

func TestDelete(t *testing.T) {
	db := dbtest.New(t)
	store := New(db)
	ctx := context.Background()

	custom, err := store.Create(ctx, tenantA, Attrs{Name: "Temp"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Permission{
		RoleID: custom.ID, Module: catalog.ModuleClients, Action: catalog.ActionView, Allowed: true,
	}).Error)
	require.NoError(t, db.Create(&models.UserRoleAssignment{
		TenantID: tenantA, UserID: "u1", RoleID: custom.ID,
	}).Error)

	system := seedSystemRole(t, db, tenantA, "Agent")

	t.Run("system role rejected", func(t *testing.T) {
		require.ErrorIs(t, store.Delete(ctx, tenantA, system.ID), ErrSystemRole)

		_, err := store.Get(ctx, tenantA, system.ID)
		require.NoError(t, err)
	})

	t.Run("other tenant", func(t *testing.T) {
		require.ErrorIs(t, store.Delete(ctx, tenantB, custom.ID), ErrRoleNotFound)
	})

	t.Run("no tenant", func(t *testing.T) {
		require.ErrorIs(t, store.Delete(ctx, "", custom.ID), controller.ErrNoTenant)
	})

	t.Run("cascade", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, tenantA, custom.ID))

		_, err := store.Get(ctx, tenantA, custom.ID)
		require.ErrorIs(t, err, ErrRoleNotFound)

		var count int64
		db.Model(&models.Permission{}).Where("role_id = ?", custom.ID).Count(&count)
		assert.Zero(t, count)

		db.Model(&models.UserRoleAssignment{}).Where("role_id = ?", custom.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("already deleted", func(t *testing.T) {
		require.ErrorIs(t, store.Delete(ctx, tenantA, custom.ID), ErrRoleNotFound)
	})
}

func TestDuplicate(t *testing.T) {
	db := dbtest.New(t)
	store := New(db)
	ctx := context.Background()

	src := seedSystemRole(t, db, tenantA, "Agent")
	src.DashboardScope = models.DashboardScopeTeam
	src.CanSeeTeamCommissions = true
	require.NoError(t, db.Save(src).Error)

	rows := []models.Permission{
		{RoleID: src.ID, Module: catalog.ModuleClients, Action: catalog.ActionView, Allowed: true},
		{RoleID: src.ID, Module: catalog.ModuleClients, Action: catalog.ActionDelete, Allowed: false},
		{RoleID: src.ID, Module: catalog.ModuleContracts, Action: catalog.ActionCreate, Allowed: true},
	}
	require.NoError(t, db.Create(&rows).Error)

	dup, err := store.Duplicate(ctx, tenantA, src.ID, "Agent Junior")
	require.NoError(t, err)

	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, "Agent Junior", dup.Name)
	assert.Equal(t, "Copy of Agent", dup.Description)
	assert.False(t, dup.IsSystemRole)
	assert.Equal(t, models.DashboardScopeTeam, dup.DashboardScope)
	assert.True(t, dup.CanSeeTeamCommissions)

	var copied []models.Permission
	require.NoError(t, db.Where("role_id = ?", dup.ID).Find(&copied).Error)

	want := make(map[catalog.Pair]bool)
	for _, p := range rows {
		want[p.Pair()] = p.Allowed
	}

	got := make(map[catalog.Pair]bool)
	for _, p := range copied {
		got[p.Pair()] = p.Allowed
	}

	assert.Equal(t, want, got)

	t.Run("name taken keeps nothing", func(t *testing.T) {
		_, err := store.Duplicate(ctx, tenantA, src.ID, "Agent")
		require.ErrorIs(t, err, ErrRoleNameTaken)

		count, err := store.CountForTenant(ctx, tenantA)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := store.Duplicate(ctx, tenantA, src.ID, "")
		require.ErrorIs(t, err, ErrRoleNameEmpty)
	})

	t.Run("source in other tenant", func(t *testing.T) {
		_, err := store.Duplicate(ctx, tenantB, src.ID, "Copy")
		require.ErrorIs(t, err, ErrRoleNotFound)
	})

	t.Run("role without permissions", func(t *testing.T) {
		empty, err := store.Create(ctx, tenantA, Attrs{Name: "Empty"})
		require.NoError(t, err)

		dup, err := store.Duplicate(ctx, tenantA, empty.ID, "Empty 2")
		require.NoError(t, err)
		assert.Equal(t, "Copy of Empty", dup.Description)
	})
}
