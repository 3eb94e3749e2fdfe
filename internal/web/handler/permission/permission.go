// Package permission serves the permission matrix of a role.
package permission

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brokerdesk/brokerdesk/internal/auth"
	"github.com/brokerdesk/brokerdesk/internal/catalog"
	"github.com/brokerdesk/brokerdesk/internal/config"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
	"github.com/brokerdesk/brokerdesk/internal/web/handler"
	"github.com/brokerdesk/brokerdesk/internal/web/middleware/tenant"
)

// Path is the route of the matrix endpoints.
const Path = "/roles/:id/permissions"

// Cell is one catalog pair with its state for the role.
type Cell struct {
	Module  catalog.Module `json:"module"`
	Action  catalog.Action `json:"action"`
	Allowed bool           `json:"allowed"`
}

// MatrixResponse is the full grid of a role: every catalog pair, allowed or not.
type MatrixResponse struct {
	RoleID uint   `json:"role_id"`
	Cells  []Cell `json:"cells"`
}

// SetRequest toggles one cell.
type SetRequest struct {
	Module  string `json:"module"  validate:"required"`
	Action  string `json:"action"  validate:"required"`
	Allowed *bool  `json:"allowed" validate:"required"`
}

// Service is the permission handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	authService *auth.Service
	validator   *validator.Validate
}

// Init registers the matrix routes.
func (s *Service) Init(router fiber.Router, cfg *config.Config, authService *auth.Service) error {
	if router == nil || cfg == nil || authService == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.authService = authService
	s.validator = validator.New()

	router.Get(Path, auth.RequirePermission(authService, auth.PermSettingsView), s.Get)
	router.Put(Path, auth.RequirePermission(authService, auth.PermSettingsUpdate), s.Put)

	return nil
}

// Get returns the role's grid in catalog order.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, handler.IDParam)
	if err != nil {
		return auth.SendError(c, err)
	}

	m, err := s.authService.RolePermissions(c.UserContext(), tenant.ID(c), id)
	if err != nil {
		return auth.SendError(c, err)
	}

	all := catalog.All()
	resp := MatrixResponse{RoleID: id, Cells: make([]Cell, 0, len(all))}

	for _, p := range all {
		resp.Cells = append(resp.Cells, Cell{
			Module:  p.Module,
			Action:  p.Action,
			Allowed: m.HasPermission(p.Module, p.Action),
		})
	}

	return c.JSON(resp)
}

// Put stores one cell.
func (s *Service) Put(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, handler.IDParam)
	if err != nil {
		return handler.Reject(c, s.authService, auth.OpPermissionSet, err)
	}

	var req SetRequest
	if err = handler.Bind(c, s.validator, &req); err != nil {
		return handler.Reject(c, s.authService, auth.OpPermissionSet, err)
	}

	var p *models.Permission

	p, err = s.authService.SetPermission(
		c.UserContext(),
		tenant.ID(c),
		id,
		catalog.Module(req.Module),
		catalog.Action(req.Action),
		*req.Allowed,
	)
	if err != nil {
		return auth.SendError(c, err)
	}

	return c.JSON(p)
}
