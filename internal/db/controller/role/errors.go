package role

import "errors"

var (
	// ErrRoleNotFound is returned when a role does not exist in the tenant.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameEmpty is returned when a role would be stored without a name.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrRoleNameTaken is returned when the tenant already has a role with that name.
	ErrRoleNameTaken = errors.New("role name already exists in tenant")
	// ErrInvalidRole is returned when role attributes fail validation.
	ErrInvalidRole = errors.New("invalid role attributes")
	// ErrSystemRole is returned when a system role would be edited or deleted.
	ErrSystemRole = errors.New("system roles cannot be modified or deleted")
)
