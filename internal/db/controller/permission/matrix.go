package permission

import (
	"github.com/brokerdesk/brokerdesk/internal/catalog"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
)

// Matrix is the loaded permission table of one role.
type Matrix struct {
	rows []models.Permission
}

// NewMatrix wraps rows that were loaded elsewhere.
func NewMatrix(rows []models.Permission) Matrix {
	return Matrix{rows: rows}
}

// HasPermission reports whether an allowed row exists for the pair.
// Missing rows and rows with Allowed=false both deny. Across several roles any allowed row wins.
func (m Matrix) HasPermission(module catalog.Module, action catalog.Action) bool {
	for _, p := range m.rows {
		if p.Allowed && p.Module == module && p.Action == action {
			return true
		}
	}

	return false
}

// Rows returns the stored rows, allowed or not.
func (m Matrix) Rows() []models.Permission {
	out := make([]models.Permission, len(m.rows))
	copy(out, m.rows)

	return out
}

// Allowed returns the granted pairs in storage order.
func (m Matrix) Allowed() []catalog.Pair {
	out := make([]catalog.Pair, 0, len(m.rows))

	for _, p := range m.rows {
		if p.Allowed {
			out = append(out, p.Pair())
		}
	}

	return out
}
