package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/brokerdesk/brokerdesk/internal/catalog"
	"github.com/brokerdesk/brokerdesk/internal/web/middleware/tenant"
)

// LocalsPermissions is the fiber locals key caching the caller's Effective permissions.
const LocalsPermissions = "permissions"

// FromContext returns the caller's effective permissions, loading them once per request.
// The tenant middleware must have run before.
func FromContext(c *fiber.Ctx, authService *Service) (*Effective, error) {
	if e, ok := c.Locals(LocalsPermissions).(*Effective); ok {
		return e, nil
	}

	e, err := authService.EffectivePermissions(c.UserContext(), tenant.ID(c), tenant.UserID(c))
	if err != nil {
		return nil, err
	}

	c.Locals(LocalsPermissions, e)

	return e, nil
}

// gate builds a handler that lets the request through when check passes.
func gate(authService *Service, check func(e *Effective) bool, pairs []catalog.Pair) fiber.Handler {
	return func(c *fiber.Ctx) error {
		e, err := FromContext(c, authService)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenant.ID(c)).Str("user_id", tenant.UserID(c)).
				Msg("Failed to check permission")

			return SendError(c, err)
		}

		if !check(e) {
			log.Warn().Str("tenant", tenant.ID(c)).Str("user_id", tenant.UserID(c)).
				Interface("permissions", pairs).Msg("User lacks required permission")

			return SendError(c, ErrPermissionDenied)
		}

		return c.Next()
	}
}

// RequirePermission creates Fiber middleware that requires a specific permission.
func RequirePermission(authService *Service, p catalog.Pair) fiber.Handler {
	return gate(authService, func(e *Effective) bool { return e.Has(p.Module, p.Action) }, []catalog.Pair{p})
}

// RequireAnyPermission creates Fiber middleware that requires at least one of the given permissions.
func RequireAnyPermission(authService *Service, pairs ...catalog.Pair) fiber.Handler {
	return gate(authService, func(e *Effective) bool { return e.HasAny(pairs...) }, pairs)
}

// RequireAllPermissions creates Fiber middleware that requires all the given permissions.
func RequireAllPermissions(authService *Service, pairs ...catalog.Pair) fiber.Handler {
	return gate(authService, func(e *Effective) bool { return e.HasAll(pairs...) }, pairs)
}

// RequirePermissionOrEmptyTenant lets any caller through while the tenant has no
// role at all, so the default roles can be created; otherwise it behaves like
// RequirePermission.
func RequirePermissionOrEmptyTenant(authService *Service, p catalog.Pair) fiber.Handler {
	required := RequirePermission(authService, p)

	return func(c *fiber.Ctx) error {
		tenantID := tenant.ID(c)

		count, err := authService.CountRoles(c.UserContext(), tenantID)
		if err != nil {
			return SendError(c, err)
		}

		if tenantID != "" && count == 0 {
			log.Info().Str("tenant", tenantID).Str("user_id", tenant.UserID(c)).
				Msg("Tenant has no roles, permission check skipped")

			return c.Next()
		}

		return required(c)
	}
}
