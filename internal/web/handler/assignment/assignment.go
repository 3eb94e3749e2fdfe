// Package assignment serves user-role assignments and the caller's effective permissions.
package assignment

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brokerdesk/brokerdesk/internal/auth"
	"github.com/brokerdesk/brokerdesk/internal/config"
	"github.com/brokerdesk/brokerdesk/internal/web/handler"
	"github.com/brokerdesk/brokerdesk/internal/web/middleware/tenant"
)

const (
	// Path is the route group of the assignment endpoints.
	Path = "/assignments"
	// UserRolesPath lists the roles of one user.
	UserRolesPath = "/users/:userID/roles"
	// MePath returns the caller's effective permissions.
	MePath = "/me/permissions"
)

// AssignRequest grants a role to a user.
type AssignRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	RoleID uint   `json:"role_id" validate:"required"`
}

// Service is the assignment handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	authService *auth.Service
	validator   *validator.Validate
}

// Init registers the assignment routes.
func (s *Service) Init(router fiber.Router, cfg *config.Config, authService *auth.Service) error {
	if router == nil || cfg == nil || authService == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.authService = authService
	s.validator = validator.New()

	view := auth.RequirePermission(authService, auth.PermSettingsView)
	update := auth.RequirePermission(authService, auth.PermSettingsUpdate)

	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RouterRootPath, view, s.List)
		r.Post(handler.RouterRootPath, update, s.Create)
		r.Delete("/:id", update, s.Delete)
	}, "assignments")

	router.Get(UserRolesPath, view, s.UserRoles)
	router.Get(MePath, s.Me)

	return nil
}

// List returns every assignment of the tenant.
func (s *Service) List(c *fiber.Ctx) error {
	list, err := s.authService.ListAssignments(c.UserContext(), tenant.ID(c))
	if err != nil {
		return auth.SendError(c, err)
	}

	return c.JSON(list)
}

// Create grants a role. The caller is recorded as the granter.
func (s *Service) Create(c *fiber.Ctx) error {
	var req AssignRequest
	if err := handler.Bind(c, s.validator, &req); err != nil {
		return handler.Reject(c, s.authService, auth.OpAssignmentCreate, err)
	}

	by := tenant.UserID(c)

	a, err := s.authService.AssignRole(c.UserContext(), tenant.ID(c), req.UserID, req.RoleID, &by)
	if err != nil {
		return auth.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(a)
}

// Delete revokes an assignment.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, handler.IDParam)
	if err != nil {
		return handler.Reject(c, s.authService, auth.OpAssignmentDelete, err)
	}

	if err = s.authService.RemoveAssignment(c.UserContext(), tenant.ID(c), id); err != nil {
		return auth.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UserRoles returns the roles one user holds.
func (s *Service) UserRoles(c *fiber.Ctx) error {
	roles, err := s.authService.UserRoles(c.UserContext(), tenant.ID(c), c.Params("userID"))
	if err != nil {
		return auth.SendError(c, err)
	}

	return c.JSON(roles)
}

// Me returns the caller's effective permissions.
func (s *Service) Me(c *fiber.Ctx) error {
	e, err := auth.FromContext(c, s.authService)
	if err != nil {
		return auth.SendError(c, err)
	}

	return c.JSON(e)
}
