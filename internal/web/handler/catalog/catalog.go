// Package catalog serves the static permission catalog.
package catalog

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brokerdesk/brokerdesk/internal/auth"
	pcatalog "github.com/brokerdesk/brokerdesk/internal/catalog"
	"github.com/brokerdesk/brokerdesk/internal/config"
	"github.com/brokerdesk/brokerdesk/internal/web/handler"
)

// Path of the catalog endpoint.
const Path = "/catalog"

// ModuleEntry lists the actions one module offers.
type ModuleEntry struct {
	Module  pcatalog.Module   `json:"module"`
	Actions []pcatalog.Action `json:"actions"`
}

// Response is the catalog as served to clients.
type Response struct {
	Modules []ModuleEntry     `json:"modules"`
	Actions []pcatalog.Action `json:"actions"`
}

// Service is the catalog handler service.
type Service struct {
	handler.Service
}

// Init registers the catalog route.
func (s *Service) Init(router fiber.Router, cfg *config.Config, authService *auth.Service) error {
	if router == nil || cfg == nil || authService == nil {
		return handler.ErrNilDependency
	}

	router.Get(Path, auth.RequirePermission(authService, auth.PermSettingsView), s.Get)

	return nil
}

// Build assembles the catalog response.
func Build() Response {
	modules := pcatalog.Modules()
	resp := Response{Modules: make([]ModuleEntry, 0, len(modules)), Actions: pcatalog.Actions()}

	for _, m := range modules {
		resp.Modules = append(resp.Modules, ModuleEntry{Module: m, Actions: pcatalog.ActionsFor(m)})
	}

	return resp
}

// Get returns the catalog.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.JSON(Build())
}
