// Package assignment grants roles to users within a tenant.
package assignment

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brokerdesk/brokerdesk/internal/db/controller"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/role"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
)

const userRoleQuery = "user_id = ? AND role_id = ?"

// Store manages user-role assignments.
type Store struct {
	db *gorm.DB
}

// New creates an assignment store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// List returns every assignment of the tenant with its role, oldest first.
func (s *Store) List(ctx context.Context, tenantID string) ([]models.UserRoleAssignment, error) {
	if s.db == nil {
		return nil, controller.ErrDBNil
	}

	out := []models.UserRoleAssignment{}
	if tenantID == "" {
		return out, nil
	}

	err := s.db.WithContext(ctx).
		Preload("Role").
		Where(controller.TenantQuery, tenantID).
		Order("assigned_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Assign grants a tenant role to a user.
func (s *Store) Assign(
	ctx context.Context,
	tenantID, userID string,
	roleID uint,
	assignedBy *string,
) (*models.UserRoleAssignment, error) {
	if s.db == nil {
		return nil, controller.ErrDBNil
	}

	if tenantID == "" {
		return nil, controller.ErrNoTenant
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserIDEmpty
	}

	var a *models.UserRoleAssignment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := role.Find(tx, tenantID, roleID)
		if err != nil {
			return err
		}

		var count int64
		if err = tx.Model(&models.UserRoleAssignment{}).Where(userRoleQuery, userID, r.ID).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return ErrAlreadyAssigned
		}

		a = &models.UserRoleAssignment{
			TenantID:   tenantID,
			UserID:     userID,
			RoleID:     r.ID,
			AssignedBy: assignedBy,
			AssignedAt: time.Now().UTC(),
		}

		if err = tx.Omit(clause.Associations).Create(a).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyAssigned
			}

			return err
		}

		a.Role = *r

		return nil
	})
	if err != nil {
		return nil, err
	}

	return a, nil
}

// Remove deletes one assignment of the tenant.
func (s *Store) Remove(ctx context.Context, tenantID string, assignmentID uint) error {
	if s.db == nil {
		return controller.ErrDBNil
	}

	if tenantID == "" {
		return controller.ErrNoTenant
	}

	res := s.db.WithContext(ctx).
		Where(controller.TenantQuery, tenantID).
		Where("id = ?", assignmentID).
		Delete(&models.UserRoleAssignment{})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

// UserRoles picks the roles of one user out of an already loaded list.
func UserRoles(assignments []models.UserRoleAssignment, userID string) []models.Role {
	out := []models.Role{}

	for _, a := range assignments {
		if a.UserID == userID {
			out = append(out, a.Role)
		}
	}

	return out
}

// ForUser loads the roles a user holds in the tenant.
func (s *Store) ForUser(ctx context.Context, tenantID, userID string) ([]models.Role, error) {
	if s.db == nil {
		return nil, controller.ErrDBNil
	}

	roles := []models.Role{}
	if tenantID == "" || userID == "" {
		return roles, nil
	}

	err := s.db.WithContext(ctx).
		Joins("JOIN user_role_assignments ON user_role_assignments.role_id = roles.id").
		Where("user_role_assignments.tenant_id = ? AND user_role_assignments.user_id = ?", tenantID, userID).
		Where("roles.tenant_id = ?", tenantID).
		Order("roles.name ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}

	return roles, nil
}
