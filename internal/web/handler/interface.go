package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brokerdesk/brokerdesk/internal/auth"
	"github.com/brokerdesk/brokerdesk/internal/config"
)

// Service is the interface for an API handler service.
type Service interface {
	Init(router fiber.Router, cfg *config.Config, authService *auth.Service) error
}
