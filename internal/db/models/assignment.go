package models

import "time"

// UserRoleAssignment grants a role to a user inside a tenant.
// A user may hold several roles; the pair (user, role) is unique.
type UserRoleAssignment struct {
	// ID is the unique identifier for the assignment.
	ID uint `gorm:"primaryKey" json:"id"`
	// TenantID scopes the assignment.
	TenantID string `gorm:"size:64;not null;index" json:"tenant_id"`
	// UserID is the identity platform's user id.
	UserID string `gorm:"size:64;not null;uniqueIndex:idx_user_role" json:"user_id"`
	// RoleID is the granted role.
	RoleID uint `gorm:"not null;uniqueIndex:idx_user_role" json:"role_id"`
	// AssignedBy is the user who granted the role, if known.
	AssignedBy *string `gorm:"size:64" json:"assigned_by,omitempty"`
	// AssignedAt is when the grant happened.
	AssignedAt time.Time `gorm:"not null" json:"assigned_at"`
	// Role is the granted role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"role"`
}

// TableName specifies the database table name for the UserRoleAssignment model.
func (UserRoleAssignment) TableName() string {
	return "user_role_assignments"
}

// All returns every model managed by the service, in migration order.
func All() []any {
	return []any{
		&Role{},
		&Permission{},
		&UserRoleAssignment{},
	}
}
