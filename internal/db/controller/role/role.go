// Package role provides tenant-scoped CRUD operations for roles.
package role

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/brokerdesk/brokerdesk/internal/db/controller"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
)

const (
	idQueryPattern   = "id = ?"
	nameQueryPattern = "tenant_id = ? AND name = ? AND id <> ?"
	roleQueryPattern = "role_id = ?"

	// CopyDescriptionPrefix prefixes the description of a duplicated role.
	CopyDescriptionPrefix = "Copy of "
)

// Store manages the roles of every tenant. Each call names the tenant it acts on.
type Store struct {
	db       *gorm.DB
	validate *validator.Validate
}

// New creates a role store.
func New(db *gorm.DB) *Store {
	return &Store{db: db, validate: validator.New()}
}

// Find loads a role of the tenant using the given handle, which may be a transaction.
func Find(tx *gorm.DB, tenantID string, roleID uint) (*models.Role, error) {
	var r models.Role

	err := tx.Where(controller.TenantQuery, tenantID).Where(idQueryPattern, roleID).First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}

		return nil, err
	}

	return &r, nil
}

// List returns all roles of the tenant ordered by name.
func (s *Store) List(ctx context.Context, tenantID string) ([]models.Role, error) {
	if s.db == nil {
		return nil, controller.ErrDBNil
	}

	roles := []models.Role{}
	if tenantID == "" {
		return roles, nil
	}

	if err := s.db.WithContext(ctx).Where(controller.TenantQuery, tenantID).Order("name ASC").Find(&roles).Error; err != nil {
		return nil, err
	}

	return roles, nil
}

// CountForTenant returns how many roles the tenant owns.
func (s *Store) CountForTenant(ctx context.Context, tenantID string) (int64, error) {
	if s.db == nil {
		return 0, controller.ErrDBNil
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Role{}).Where(controller.TenantQuery, tenantID).Count(&count).Error

	return count, err
}

// Get returns a single role of the tenant.
func (s *Store) Get(ctx context.Context, tenantID string, roleID uint) (*models.Role, error) {
	if s.db == nil {
		return nil, controller.ErrDBNil
	}

	if tenantID == "" {
		return nil, ErrRoleNotFound
	}

	return Find(s.db.WithContext(ctx), tenantID, roleID)
}

// Create inserts a custom role. System roles are only created by the seeder.
func (s *Store) Create(ctx context.Context, tenantID string, attrs Attrs) (*models.Role, error) {
	if s.db == nil {
		return nil, controller.ErrDBNil
	}

	if tenantID == "" {
		return nil, controller.ErrNoTenant
	}

	attrs.normalize()
	if attrs.Name == "" {
		return nil, ErrRoleNameEmpty
	}

	if err := s.validate.Struct(attrs); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, err.Error())
	}

	r := attrs.role(tenantID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := nameAvailable(tx, tenantID, r.Name, 0); err != nil {
			return err
		}

		return translate(tx.Create(r).Error)
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Update applies changes to a custom role and returns the stored result.
func (s *Store) Update(ctx context.Context, tenantID string, roleID uint, changes Changes) (*models.Role, error) {
	if s.db == nil {
		return nil, controller.ErrDBNil
	}

	if tenantID == "" {
		return nil, controller.ErrNoTenant
	}

	changes.normalize()
	if changes.Name != nil && *changes.Name == "" {
		return nil, ErrRoleNameEmpty
	}

	if err := s.validate.Struct(changes); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, err.Error())
	}

	var updated *models.Role

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := Find(tx, tenantID, roleID)
		if err != nil {
			return err
		}

		if r.IsSystemRole {
			return ErrSystemRole
		}

		columns := changes.columns()
		if len(columns) == 0 {
			updated = r
			return nil
		}

		if changes.Name != nil && *changes.Name != r.Name {
			if err = nameAvailable(tx, tenantID, *changes.Name, r.ID); err != nil {
				return err
			}
		}

		if err = translate(tx.Model(r).Updates(columns).Error); err != nil {
			return err
		}

		updated, err = Find(tx, tenantID, roleID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a custom role together with its permission rows and assignments.
func (s *Store) Delete(ctx context.Context, tenantID string, roleID uint) error {
	if s.db == nil {
		return controller.ErrDBNil
	}

	if tenantID == "" {
		return controller.ErrNoTenant
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := Find(tx, tenantID, roleID)
		if err != nil {
			return err
		}

		if r.IsSystemRole {
			return ErrSystemRole
		}

		if err = tx.Where(roleQueryPattern, r.ID).Delete(&models.Permission{}).Error; err != nil {
			return fmt.Errorf("failed to delete role permissions: %w", err)
		}

		if err = tx.Where(roleQueryPattern, r.ID).Delete(&models.UserRoleAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to delete role assignments: %w", err)
		}

		return tx.Delete(r).Error
	})
}

// Duplicate copies a role and all its permission rows under a new name.
// The copy is never a system role. Either the whole copy is stored or nothing is.
func (s *Store) Duplicate(ctx context.Context, tenantID string, roleID uint, newName string) (*models.Role, error) {
	if s.db == nil {
		return nil, controller.ErrDBNil
	}

	if tenantID == "" {
		return nil, controller.ErrNoTenant
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrRoleNameEmpty
	}

	if err := s.validate.Var(newName, "max=100"); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, err.Error())
	}

	var dup *models.Role

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		src, err := Find(tx, tenantID, roleID)
		if err != nil {
			return err
		}

		if err = nameAvailable(tx, tenantID, newName, 0); err != nil {
			return err
		}

		dup = &models.Role{
			TenantID:              tenantID,
			Name:                  newName,
			Description:           CopyDescriptionPrefix + src.Name,
			IsSystemRole:          false,
			IsActive:              src.IsActive,
			DashboardScope:        src.DashboardScope,
			CanSeeOwnCommissions:  src.CanSeeOwnCommissions,
			CanSeeTeamCommissions: src.CanSeeTeamCommissions,
			CanSeeAllCommissions:  src.CanSeeAllCommissions,
		}

		if err = translate(tx.Create(dup).Error); err != nil {
			return err
		}

		return copyPermissions(tx, src.ID, dup.ID)
	})
	if err != nil {
		return nil, err
	}

	return dup, nil
}

func copyPermissions(tx *gorm.DB, fromRoleID, toRoleID uint) error {
	var rows []models.Permission
	if err := tx.Where(roleQueryPattern, fromRoleID).Order("id ASC").Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to read source permissions: %w", err)
	}

	if len(rows) == 0 {
		return nil
	}

	clones := make([]models.Permission, 0, len(rows))
	for _, p := range rows {
		clones = append(clones, models.Permission{
			RoleID:  toRoleID,
			Module:  p.Module,
			Action:  p.Action,
			Allowed: p.Allowed,
		})
	}

	if err := tx.Create(&clones).Error; err != nil {
		return fmt.Errorf("failed to copy permissions: %w", err)
	}

	return nil
}

// nameAvailable checks the (tenant, name) convention before the unique index has to.
func nameAvailable(tx *gorm.DB, tenantID, name string, exceptID uint) error {
	var count int64
	if err := tx.Model(&models.Role{}).Where(nameQueryPattern, tenantID, name, exceptID).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return ErrRoleNameTaken
	}

	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrRoleNameTaken
	}

	return err
}
