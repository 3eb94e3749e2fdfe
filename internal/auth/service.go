package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brokerdesk/brokerdesk/internal/catalog"
	"github.com/brokerdesk/brokerdesk/internal/db/controller"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/assignment"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/permission"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/role"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/seed"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
	"github.com/brokerdesk/brokerdesk/internal/notify"
)

// Operation names used in notifications and metrics.
const (
	OpRoleCreate       = "role.create"
	OpRoleUpdate       = "role.update"
	OpRoleDelete       = "role.delete"
	OpRoleDuplicate    = "role.duplicate"
	OpRoleInit         = "role.init"
	OpPermissionSet    = "permission.set"
	OpAssignmentCreate = "assignment.create"
	OpAssignmentDelete = "assignment.delete"
)

var successTexts = map[string]string{ //nolint:gochecknoglobals
	OpRoleCreate:       "Role created",
	OpRoleUpdate:       "Role updated",
	OpRoleDelete:       "Role deleted",
	OpRoleDuplicate:    "Role duplicated",
	OpRoleInit:         "Default roles created",
	OpPermissionSet:    "Permission updated",
	OpAssignmentCreate: "Role assigned",
	OpAssignmentDelete: "Role removed",
}

var failureTexts = map[string]string{ //nolint:gochecknoglobals
	OpRoleCreate:       "Failed to create role",
	OpRoleUpdate:       "Failed to update role",
	OpRoleDelete:       "Failed to delete role",
	OpRoleDuplicate:    "Failed to duplicate role",
	OpRoleInit:         "Failed to create default roles",
	OpPermissionSet:    "Failed to update permission",
	OpAssignmentCreate: "Failed to assign role",
	OpAssignmentDelete: "Failed to remove role",
}

// Service provides role administration and authorization checks for a tenant.
// Every mutation reports exactly one notification.
type Service struct {
	db          *gorm.DB
	roles       *role.Store
	permissions *permission.Store
	assignments *assignment.Store
	notifier    notify.Notifier
}

// NewService creates a new auth service. A nil notifier logs only.
func NewService(db *gorm.DB, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}

	operationsCounter()

	return &Service{
		db:          db,
		roles:       role.New(db),
		permissions: permission.New(db),
		assignments: assignment.New(db),
		notifier:    notifier,
	}
}

// failureText picks the user-facing text of a failed operation.
func failureText(op string, err error) string {
	switch KindOf(err) {
	case KindConflict, KindForbidden:
		return capitalize(rootCause(err))
	case KindValidation:
		return failureTexts[op] + ": " + err.Error()
	case KindNoTenant:
		return "No tenant selected"
	default:
		return failureTexts[op]
	}
}

// report emits the single notification of an operation and counts it.
func (s *Service) report(ctx context.Context, tenantID, op string, err error) {
	level, text, outcome := notify.LevelSuccess, successTexts[op], outcomeSuccess
	if err != nil {
		level, text, outcome = notify.LevelError, failureText(op, err), outcomeFailure

		log.Error().Err(err).Str("tenant", tenantID).Str("operation", op).Msg("operation failed")
	}

	operationsCounter().WithLabelValues(op, outcome).Inc()

	if nErr := s.notifier.Notify(ctx, notify.NewMessage(tenantID, op, level, text)); nErr != nil {
		log.Warn().Err(nErr).Str("operation", op).Msg("failed to deliver notification")
	}
}

// Reject reports a mutation that failed before reaching a store, such as a
// malformed request, and returns err.
func (s *Service) Reject(ctx context.Context, tenantID, op string, err error) error {
	s.report(ctx, tenantID, op, err)

	return err
}

// CountRoles returns how many roles the tenant owns. An empty tenant owns none.
func (s *Service) CountRoles(ctx context.Context, tenantID string) (int64, error) {
	if tenantID == "" {
		return 0, nil
	}

	return s.roles.CountForTenant(ctx, tenantID)
}

// ListRoles returns the tenant's roles ordered by name.
func (s *Service) ListRoles(ctx context.Context, tenantID string) ([]models.Role, error) {
	return s.roles.List(ctx, tenantID)
}

// GetRole returns one role of the tenant.
func (s *Service) GetRole(ctx context.Context, tenantID string, roleID uint) (*models.Role, error) {
	return s.roles.Get(ctx, tenantID, roleID)
}

// CreateRole creates a custom role.
func (s *Service) CreateRole(ctx context.Context, tenantID string, attrs role.Attrs) (*models.Role, error) {
	r, err := s.roles.Create(ctx, tenantID, attrs)
	s.report(ctx, tenantID, OpRoleCreate, err)

	return r, err
}

// UpdateRole changes a custom role.
func (s *Service) UpdateRole(ctx context.Context, tenantID string, roleID uint, changes role.Changes) (*models.Role, error) {
	r, err := s.roles.Update(ctx, tenantID, roleID, changes)
	s.report(ctx, tenantID, OpRoleUpdate, err)

	return r, err
}

// DeleteRole removes a custom role, its permissions and its assignments.
func (s *Service) DeleteRole(ctx context.Context, tenantID string, roleID uint) error {
	err := s.roles.Delete(ctx, tenantID, roleID)
	s.report(ctx, tenantID, OpRoleDelete, err)

	return err
}

// DuplicateRole copies a role and its matrix under a new name.
func (s *Service) DuplicateRole(ctx context.Context, tenantID string, roleID uint, newName string) (*models.Role, error) {
	r, err := s.roles.Duplicate(ctx, tenantID, roleID, newName)
	s.report(ctx, tenantID, OpRoleDuplicate, err)

	return r, err
}

// InitializeDefaultRoles seeds the four system roles when the tenant has none.
func (s *Service) InitializeDefaultRoles(ctx context.Context, tenantID string) (*seed.Result, error) {
	res, err := seed.Initialize(ctx, s.db, tenantID)

	switch {
	case err != nil:
		s.report(ctx, tenantID, OpRoleInit, err)
	case len(res.Failures) > 0:
		s.report(ctx, tenantID, OpRoleInit, fmt.Errorf("%d of %d templates failed: %w",
			len(res.Failures), len(seed.Templates()), res.Failures[0].Err))
	default:
		s.report(ctx, tenantID, OpRoleInit, nil)
	}

	return res, err
}

// RolePermissions returns the matrix of a tenant role.
func (s *Service) RolePermissions(ctx context.Context, tenantID string, roleID uint) (permission.Matrix, error) {
	return s.permissions.List(ctx, tenantID, roleID)
}

// SetPermission toggles one cell of a custom role's matrix.
func (s *Service) SetPermission(
	ctx context.Context,
	tenantID string,
	roleID uint,
	module catalog.Module,
	action catalog.Action,
	allowed bool,
) (*models.Permission, error) {
	p, err := s.permissions.Set(ctx, tenantID, roleID, module, action, allowed)
	s.report(ctx, tenantID, OpPermissionSet, err)

	return p, err
}

// ListAssignments returns every assignment of the tenant with its role.
func (s *Service) ListAssignments(ctx context.Context, tenantID string) ([]models.UserRoleAssignment, error) {
	return s.assignments.List(ctx, tenantID)
}

// AssignRole grants a role to a user.
func (s *Service) AssignRole(
	ctx context.Context,
	tenantID, userID string,
	roleID uint,
	assignedBy *string,
) (*models.UserRoleAssignment, error) {
	a, err := s.assignments.Assign(ctx, tenantID, userID, roleID, assignedBy)
	s.report(ctx, tenantID, OpAssignmentCreate, err)

	return a, err
}

// RemoveAssignment revokes one assignment.
func (s *Service) RemoveAssignment(ctx context.Context, tenantID string, assignmentID uint) error {
	err := s.assignments.Remove(ctx, tenantID, assignmentID)
	s.report(ctx, tenantID, OpAssignmentDelete, err)

	return err
}

// UserRoles returns the roles a user holds in the tenant, active or not.
func (s *Service) UserRoles(ctx context.Context, tenantID, userID string) ([]models.Role, error) {
	return s.assignments.ForUser(ctx, tenantID, userID)
}

// EffectivePermissions combines the user's active roles: a pair is allowed when any of them
// allows it, commission flags are OR-ed and the broadest dashboard scope wins.
func (s *Service) EffectivePermissions(ctx context.Context, tenantID, userID string) (*Effective, error) {
	if s.db == nil {
		return nil, controller.ErrDBNil
	}

	roles, err := s.assignments.ForUser(ctx, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user roles: %w", err)
	}

	ids := make([]uint, 0, len(roles))
	for _, r := range roles {
		if r.IsActive {
			ids = append(ids, r.ID)
		}
	}

	matrix, err := s.permissions.ForRoles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}

	return newEffective(tenantID, userID, roles, matrix), nil
}

// HasPermission checks a single pair for a user.
func (s *Service) HasPermission(
	ctx context.Context,
	tenantID, userID string,
	module catalog.Module,
	action catalog.Action,
) (bool, error) {
	e, err := s.EffectivePermissions(ctx, tenantID, userID)
	if err != nil {
		return false, err
	}

	return e.Has(module, action), nil
}

// HasAnyPermission checks if a user has at least one of the given pairs.
func (s *Service) HasAnyPermission(ctx context.Context, tenantID, userID string, pairs ...catalog.Pair) (bool, error) {
	if len(pairs) == 0 {
		return false, nil
	}

	e, err := s.EffectivePermissions(ctx, tenantID, userID)
	if err != nil {
		return false, err
	}

	return e.HasAny(pairs...), nil
}

// HasAllPermissions checks if a user has all of the given pairs.
func (s *Service) HasAllPermissions(ctx context.Context, tenantID, userID string, pairs ...catalog.Pair) (bool, error) {
	if len(pairs) == 0 {
		return true, nil
	}

	e, err := s.EffectivePermissions(ctx, tenantID, userID)
	if err != nil {
		return false, err
	}

	return e.HasAll(pairs...), nil
}
