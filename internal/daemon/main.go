// Package daemon wires storage, notifications and the web service together.
package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brokerdesk/brokerdesk/internal/auth"
	"github.com/brokerdesk/brokerdesk/internal/config"
	"github.com/brokerdesk/brokerdesk/internal/db"
	"github.com/brokerdesk/brokerdesk/internal/notify"
	"github.com/brokerdesk/brokerdesk/internal/web"
)

// ErrConfigNil is returned when the daemon is created without configuration.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg         *config.Config
	db          *gorm.DB
	redis       *redis.Client
	authService *auth.Service
	webService  *web.Service
}

// Start runs the web service until a shutdown signal is received.
func (d *Daemon) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	waitDone := make(chan struct{})

	go func() {
		errCh <- d.webService.Start()
	}()

	go func() {
		defer close(waitDone)
		d.webService.WaitShutdown(ctx)
	}()

	err := <-errCh

	// Listen failed or the app stopped; either way the signal wait is over.
	cancel()
	<-waitDone

	d.Close()

	return err
}

// AuthService exposes the role administration facade to CLI commands.
func (d *Daemon) AuthService() *auth.Service {
	return d.authService
}

// Close releases the database and redis connections.
func (d *Daemon) Close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}

	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Open connects and migrates the database and builds the role service,
// without starting the web server.
func Open(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(conn); err != nil {
		return nil, err
	}

	d := &Daemon{cfg: cfg, db: conn}

	notifiers := notify.Multi{notify.LogNotifier{}}

	if cfg.Notify.Redis.Enabled {
		d.redis = notify.NewRedisClient(cfg.Notify.Redis)

		if err = d.redis.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Notify.Redis.Addr).Msg("redis unreachable, publishing will fail until it is back")
		}

		notifiers = append(notifiers, notify.NewRedisNotifier(d.redis, cfg.Notify.Redis.ChannelPrefix))
	}

	d.authService = auth.NewService(conn, notifiers)

	return d, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	d, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	seedTenants(cfg, d.authService)

	if d.webService, err = web.New(cfg, d.authService); err != nil {
		d.Close()

		return nil, fmt.Errorf("failed to create web service: %w", err)
	}

	if cfg.DevMode {
		d.webService.SetFastShutdown(true)
	}

	return d, nil
}
