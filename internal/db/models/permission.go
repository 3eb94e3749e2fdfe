package models

import (
	"time"

	"github.com/brokerdesk/brokerdesk/internal/catalog"
)

// Permission is one cell of a role's permission matrix.
// A missing row means the action is not allowed.
type Permission struct {
	// ID is the unique identifier for the row.
	ID uint `gorm:"primaryKey" json:"id"`
	// RoleID is the owning role. Rows are removed together with their role.
	RoleID uint `gorm:"not null;uniqueIndex:idx_role_module_action" json:"role_id"`
	// Module is a catalog module (e.g. "payout").
	Module catalog.Module `gorm:"type:varchar(50);not null;uniqueIndex:idx_role_module_action" json:"module"`
	// Action is a catalog action valid for Module (e.g. "validate").
	Action catalog.Action `gorm:"type:varchar(50);not null;uniqueIndex:idx_role_module_action" json:"action"`
	// Allowed grants the action when true.
	Allowed bool `gorm:"not null" json:"allowed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "role_permissions_matrix"
}

// Pair returns the catalog cell of the row.
func (p Permission) Pair() catalog.Pair {
	return catalog.Pair{Module: p.Module, Action: p.Action}
}
