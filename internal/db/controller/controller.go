// Package controller holds what the tenant-scoped stores below it share.
package controller

import "errors"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrNoTenant is returned by mutations that were called without a tenant id.
	ErrNoTenant = errors.New("no tenant in context")
)

// TenantQuery is the where clause scoping a query to one tenant.
const TenantQuery = "tenant_id = ?"
