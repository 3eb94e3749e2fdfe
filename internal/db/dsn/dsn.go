// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/brokerdesk/brokerdesk/internal/config"
)

// Create builds the Data Source Name for the configured engine.
func Create(cfg *config.Config) string {
	db := cfg.DB

	switch strings.ToLower(db.GormEngine) {
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			db.Host,
			db.Port,
			db.User,
			db.Password,
			db.Name,
		)

		if db.Extras != "" {
			out += " " + db.Extras
		}

		return out
	case config.EngineSQLite:
		if db.Extras != "" {
			return db.Path + "?" + db.Extras
		}

		return db.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		)
	}
}
