// Package auth provides role administration and authorization checks for tenants.
//
// Service is the facade over the role, permission, assignment and seed stores.
// Each mutating call emits exactly one notify.Message, success or error, and is
// counted in brokerdesk_rbac_operations_total.
//
// # Effective permissions
//
// A user may hold several roles. Only active roles count. A module/action pair is
// allowed if any active role allows it, the commission visibility flags are OR-ed and
// the broadest dashboard scope wins (global > team > personal). A user without active
// roles gets nothing and a personal dashboard.
//
// # Errors
//
// KindOf classifies errors returned by the stores; Status maps a kind to an HTTP status
// and SendError writes the JSON error body used by the API.
//
// # Middleware
//
// Fiber middleware functions are provided for route protection:
//   - RequirePermission: Protect routes requiring a specific permission
//   - RequireAnyPermission: Protect routes requiring any of several permissions
//   - RequireAllPermissions: Protect routes requiring all of several permissions
//
// Example usage:
//
//	authService := auth.NewService(db, notify.LogNotifier{})
//
//	api.Get("/roles",
//	    auth.RequirePermission(authService, auth.PermSettingsView),
//	    handler,
//	)
package auth
