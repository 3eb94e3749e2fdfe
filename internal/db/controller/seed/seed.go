// Package seed creates the default system roles of a tenant.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brokerdesk/brokerdesk/internal/db/controller"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/permission"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/role"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
)

// Failure records a template that could not be created.
type Failure struct {
	Template string `json:"template"`
	Err      error  `json:"-"`
	Error    string `json:"error"`
}

// Result summarizes one initializer run.
type Result struct {
	AlreadyInitialized bool          `json:"already_initialized"`
	Created            []models.Role `json:"created"`
	Failures           []Failure     `json:"failures,omitempty"`
}

// Complete reports whether every template was created.
func (r *Result) Complete() bool {
	return !r.AlreadyInitialized && len(r.Failures) == 0
}

// Initialize creates the default roles when the tenant has no role yet.
// Each template is stored atomically; a failing template does not stop the others.
func Initialize(ctx context.Context, db *gorm.DB, tenantID string) (*Result, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	if tenantID == "" {
		return nil, controller.ErrNoTenant
	}

	count, err := role.New(db).CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count roles: %w", err)
	}

	if count > 0 {
		return &Result{AlreadyInitialized: true}, nil
	}

	res := &Result{}

	for _, t := range Templates() {
		r, err := create(ctx, db, tenantID, t)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenantID).Str("template", t.Name).Msg("failed to create default role")
			res.Failures = append(res.Failures, Failure{Template: t.Name, Err: err, Error: err.Error()})

			continue
		}

		res.Created = append(res.Created, *r)
	}

	log.Info().Str("tenant", tenantID).Int("created", len(res.Created)).Int("failed", len(res.Failures)).Msg("default roles initialized")

	return res, nil
}

func create(ctx context.Context, db *gorm.DB, tenantID string, t Template) (*models.Role, error) {
	r := t.Role(tenantID)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(r).Error; err != nil {
			return err
		}

		return permission.Insert(tx, r.ID, t.Pairs)
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}
