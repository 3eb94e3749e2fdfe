// Package permission stores the module/action matrix of each role.
package permission

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brokerdesk/brokerdesk/internal/catalog"
	"github.com/brokerdesk/brokerdesk/internal/db/controller"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/role"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
)

const roleQuery = "role_id = ?"

// Store reads and writes permission rows.
type Store struct {
	db *gorm.DB
}

// New creates a permission store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// List loads the matrix of a tenant's role.
func (s *Store) List(ctx context.Context, tenantID string, roleID uint) (Matrix, error) {
	if s.db == nil {
		return Matrix{}, controller.ErrDBNil
	}

	if tenantID == "" {
		return Matrix{}, nil
	}

	tx := s.db.WithContext(ctx)

	if _, err := role.Find(tx, tenantID, roleID); err != nil {
		return Matrix{}, err
	}

	return load(tx, roleID)
}

// ForRoles loads the rows of several roles at once. The caller is responsible for tenant checks.
func (s *Store) ForRoles(ctx context.Context, roleIDs []uint) (Matrix, error) {
	if s.db == nil {
		return Matrix{}, controller.ErrDBNil
	}

	if len(roleIDs) == 0 {
		return Matrix{}, nil
	}

	var rows []models.Permission
	if err := s.db.WithContext(ctx).Where("role_id IN ?", roleIDs).Order("id ASC").Find(&rows).Error; err != nil {
		return Matrix{}, err
	}

	return NewMatrix(rows), nil
}

// Set stores one cell of a custom role's matrix in a single upsert.
func (s *Store) Set(
	ctx context.Context,
	tenantID string,
	roleID uint,
	module catalog.Module,
	action catalog.Action,
	allowed bool,
) (*models.Permission, error) {
	if s.db == nil {
		return nil, controller.ErrDBNil
	}

	if tenantID == "" {
		return nil, controller.ErrNoTenant
	}

	if !catalog.IsValid(module, action) {
		return nil, fmt.Errorf("%w: %s.%s", ErrInvalidPermission, module, action)
	}

	var stored models.Permission

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := role.Find(tx, tenantID, roleID)
		if err != nil {
			return err
		}

		if r.IsSystemRole {
			return role.ErrSystemRole
		}

		row := models.Permission{RoleID: r.ID, Module: module, Action: action, Allowed: allowed}
		if err = upsert(tx, []models.Permission{row}); err != nil {
			return err
		}

		return tx.Where(roleQuery, r.ID).
			Where("module = ? AND action = ?", module, action).
			First(&stored).Error
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// Insert writes allowed rows for the given pairs using the caller's transaction.
func Insert(tx *gorm.DB, roleID uint, pairs []catalog.Pair) error {
	if len(pairs) == 0 {
		return nil
	}

	rows := make([]models.Permission, 0, len(pairs))

	for _, p := range pairs {
		if !catalog.IsValid(p.Module, p.Action) {
			return fmt.Errorf("%w: %s", ErrInvalidPermission, p)
		}

		rows = append(rows, models.Permission{RoleID: roleID, Module: p.Module, Action: p.Action, Allowed: true})
	}

	return upsert(tx, rows)
}

func upsert(tx *gorm.DB, rows []models.Permission) error {
	now := time.Now()
	for i := range rows {
		rows[i].UpdatedAt = now
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role_id"}, {Name: "module"}, {Name: "action"}},
		DoUpdates: clause.AssignmentColumns([]string{"allowed", "updated_at"}),
	}).Create(&rows).Error
}

func load(tx *gorm.DB, roleID uint) (Matrix, error) {
	var rows []models.Permission
	if err := tx.Where(roleQuery, roleID).Order("id ASC").Find(&rows).Error; err != nil {
		return Matrix{}, err
	}

	return NewMatrix(rows), nil
}
