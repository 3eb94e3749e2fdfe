// Package role serves tenant role administration.
package role

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brokerdesk/brokerdesk/internal/auth"
	"github.com/brokerdesk/brokerdesk/internal/config"
	rolestore "github.com/brokerdesk/brokerdesk/internal/db/controller/role"
	"github.com/brokerdesk/brokerdesk/internal/web/handler"
	"github.com/brokerdesk/brokerdesk/internal/web/middleware/tenant"
)

const (
	// Path is the route group of the role endpoints.
	Path = "/roles"
)

// DuplicateRequest names the copy of a role.
type DuplicateRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Service is the role handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	authService *auth.Service
	validator   *validator.Validate
}

// Init registers the role routes.
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
		r.Post("/init", auth.RequirePermissionOrEmptyTenant(authService, auth.PermSettingsUpdate), s.Initialize)
		r.Get("/:id", view, s.Get)
		r.Patch("/:id", update, s.Update)
		r.Delete("/:id", update, s.Delete)
		r.Post("/:id/duplicate", update, s.Duplicate)
	}, "roles")

	return nil
}

// List returns the tenant's roles.
func (s *Service) List(c *fiber.Ctx) error {
	roles, err := s.authService.ListRoles(c.UserContext(), tenant.ID(c))
	if err != nil {
		return auth.SendError(c, err)
	}

	return c.JSON(roles)
}

// Get returns one role.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, handler.IDParam)
	if err != nil {
		return auth.SendError(c, err)
	}

	r, err := s.authService.GetRole(c.UserContext(), tenant.ID(c), id)
	if err != nil {
		return auth.SendError(c, err)
	}

	return c.JSON(r)
}

// Create adds a custom role.
func (s *Service) Create(c *fiber.Ctx) error {
	var attrs rolestore.Attrs
	if err := handler.Bind(c, s.validator, &attrs); err != nil {
		return handler.Reject(c, s.authService, auth.OpRoleCreate, err)
	}

	r, err := s.authService.CreateRole(c.UserContext(), tenant.ID(c), attrs)
	if err != nil {
		return auth.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(r)
}

// Update applies a partial update to a custom role.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, handler.IDParam)
	if err != nil {
		return handler.Reject(c, s.authService, auth.OpRoleUpdate, err)
	}

	var changes rolestore.Changes
	if err = handler.Bind(c, s.validator, &changes); err != nil {
		return handler.Reject(c, s.authService, auth.OpRoleUpdate, err)
	}

	r, err := s.authService.UpdateRole(c.UserContext(), tenant.ID(c), id, changes)
	if err != nil {
		return auth.SendError(c, err)
	}

	return c.JSON(r)
}

// Delete removes a custom role.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, handler.IDParam)
	if err != nil {
		return handler.Reject(c, s.authService, auth.OpRoleDelete, err)
	}

	if err = s.authService.DeleteRole(c.UserContext(), tenant.ID(c), id); err != nil {
		return auth.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Duplicate copies a role under a new name.
func (s *Service) Duplicate(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, handler.IDParam)
	if err != nil {
		return handler.Reject(c, s.authService, auth.OpRoleDuplicate, err)
	}

	var req DuplicateRequest
	if err = handler.Bind(c, s.validator, &req); err != nil {
		return handler.Reject(c, s.authService, auth.OpRoleDuplicate, err)
	}

	r, err := s.authService.DuplicateRole(c.UserContext(), tenant.ID(c), id, req.Name)
	if err != nil {
		return auth.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(r)
}

// Initialize seeds the default roles of the tenant.
func (s *Service) Initialize(c *fiber.Ctx) error {
	res, err := s.authService.InitializeDefaultRoles(c.UserContext(), tenant.ID(c))
	if err != nil {
		return auth.SendError(c, err)
	}

	status := fiber.StatusCreated
	if res.AlreadyInitialized {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(res)
}
