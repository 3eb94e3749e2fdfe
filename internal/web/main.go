// Package web serves the tenant role administration API.
package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/brokerdesk/brokerdesk/internal/auth"
	"github.com/brokerdesk/brokerdesk/internal/config"
	fiberlogger "github.com/brokerdesk/brokerdesk/internal/logger/adapter/fiber"
	"github.com/brokerdesk/brokerdesk/internal/web/handler"
	"github.com/brokerdesk/brokerdesk/internal/web/handler/assignment"
	"github.com/brokerdesk/brokerdesk/internal/web/handler/catalog"
	"github.com/brokerdesk/brokerdesk/internal/web/handler/permission"
	"github.com/brokerdesk/brokerdesk/internal/web/handler/role"
	"github.com/brokerdesk/brokerdesk/internal/web/middleware/tenant"
)

const (
	// APIPrefix is the route group of every administration endpoint.
	APIPrefix = "/api/v1"
	// CheckAlivePath answers load balancer probes.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes Prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	authService  *auth.Service
}

// Start listens on the configured port until the app is shut down.
func (s *Service) Start() error {
	addr := ":" + strconv.Itoa(s.cfg.Webserver.Port)

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM, drains and stops the app.
// It returns without stopping anything when ctx is done first.
func (s *Service) WaitShutdown(ctx context.Context) {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	defer signal.Stop(irqSig)

	select {
	case sig := <-irqSig:
		log.Info().Msgf("shutdown request (signal: %v)", sig)
	case <-ctx.Done():
		return
	}

	// Let load balancers see a failing checkalive before the listener goes away.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// SetFastShutdown skips the drain wait. Used by the CLI in dev mode.
func (s *Service) SetFastShutdown(fast bool) {
	s.fastShutDown = fast
}

// Alive reports whether checkalive currently succeeds.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates the fiber app and registers every route.
func New(cfg *config.Config, authService *auth.Service) (*Service, error) {
	if cfg == nil || authService == nil {
		return nil, handler.ErrNilDependency
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: cfg.Webserver.ReadBufferSize,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	service := &Service{
		cfg:         cfg,
		App:         app,
		authService: authService,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		LocalsFields:  []string{tenant.LocalsTenantID, tenant.LocalsUserID},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Webserver.URL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + fiberlogger.HeaderRequestID,
	}))

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group(APIPrefix, tenant.New(tenant.Config{
		Secret:  cfg.Auth.JWTSecret,
		Issuer:  cfg.Auth.Issuer,
		DevMode: cfg.DevMode,
	}))

	handlers := []handler.Service{
		new(catalog.Service),
		new(role.Service),
		new(permission.Service),
		new(assignment.Service),
	}

	for _, h := range handlers {
		if err := h.Init(api, cfg, authService); err != nil {
			return nil, err
		}
	}

	return service, nil
}
