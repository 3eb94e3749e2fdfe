// Package db opens the relational store behind the role, permission and assignment stores.
package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/brokerdesk/brokerdesk/internal/config"
	"github.com/brokerdesk/brokerdesk/internal/db/dsn"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
)

// Dialector returns the gorm driver for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.DB.GormEngine) {
	case config.EngineMySQL, "":
		return mysql.Open(dsn.Create(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Create(cfg)), nil
	case config.EngineSQLite:
		return sqlite.Open(dsn.Create(cfg)), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedDBEngine, cfg.DB.GormEngine)
	}
}

// GormConfig returns the gorm settings shared by the daemon and the tests.
// TranslateError makes unique index violations surface as gorm.ErrDuplicatedKey.
func GormConfig(devMode bool) *gorm.Config {
	level := gormlogger.Silent
	if devMode {
		level = gormlogger.Warn
	}

	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	}
}

// Open connects to the configured database.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, GormConfig(cfg.DevMode))
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return conn, nil
}

// Migrate creates or updates the schema of every model.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
