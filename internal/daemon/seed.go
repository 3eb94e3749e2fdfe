package daemon

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/brokerdesk/brokerdesk/internal/auth"
	"github.com/brokerdesk/brokerdesk/internal/config"
)

// seedTenants initializes the default roles of every tenant listed in the config.
// Tenants that already have roles are left untouched.
func seedTenants(cfg *config.Config, authService *auth.Service) {
	ctx := context.Background()

	for _, tenantID := range cfg.Seed.Tenants {
		res, err := authService.InitializeDefaultRoles(ctx, tenantID)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenantID).Msg("failed to seed default roles")

			continue
		}

		if res.AlreadyInitialized {
			log.Debug().Str("tenant", tenantID).Msg("tenant already has roles")

			continue
		}

		for _, f := range res.Failures {
			log.Error().Str("tenant", tenantID).Str("template", f.Template).Msg(f.Error)
		}

		log.Info().Str("tenant", tenantID).Int("created", len(res.Created)).Msg("seeded default roles")
	}
}
