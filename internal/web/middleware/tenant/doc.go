// Package tenant resolves the calling tenant and user of a request.
//
// Requests carry a bearer token signed by the identity platform (HS256). The token's
// tenant_id claim selects the tenant and sub names the user. Both are stored in
// fiber.Locals and read back with ID and UserID.
//
// In dev mode a request without a token may name them with the X-Tenant-ID and
// X-User-ID headers instead.
//
// Usage:
//
//	api.Use(tenant.New(tenant.Config{Secret: cfg.Auth.JWTSecret}))
package tenant
