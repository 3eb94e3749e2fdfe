// Package fiber provides a zerolog access log middleware for fiber.
package fiber

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/brokerdesk/brokerdesk/internal/logger"
)

const (
	// HeaderRequestID carries the request id. Incoming values are kept.
	HeaderRequestID = "X-Request-ID"
	// LocalsRequestID is the fiber locals key holding the request id.
	LocalsRequestID = "request_id"
)

// Config implements fiber middleware struct.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Config of the logger.
	Config logger.Log

	// CacheControlError max-age caching on chain errors.
	CacheControlError string

	// CheckAliveURI for disabling logging of check alive http calls.
	CheckAliveURI string

	// LocalsFields are fiber locals copied into the access log when set.
	LocalsFields []string
}

// ConfigDefault is the default config for fiber.
var ConfigDefault = Config{
	Next:              nil,
	CacheControlError: "max-age=0",
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.CacheControlError == "" {
		cfg.CacheControlError = ConfigDefault.CacheControlError
	}

	return cfg
}

// RequestID returns the id assigned to the current request.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsRequestID).(string)

	return id
}

// New creates a fiber access logging middleware using zerolog.
// Every response carries an X-Request-ID header.
func New(config ...Config) fiber.Handler {
	var (
		writers    []io.Writer
		cfg        = configDefault(config...)
		once       sync.Once
		errHandler fiber.ErrorHandler
	)

	if cfg.Config.File.Enabled {
		if w := newRollingAccessFile(cfg.Config.File); w != nil {
			writers = append(writers, w)
		}
	}

	// Console.Enabled still has to be set for the access log to reach the console.
	if cfg.Config.Console.Enabled && cfg.Config.EnableAccessLogToConsole {
		if cfg.Config.Console.UseConsoleWriter {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{"level"},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	accessLogger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(zerolog.NoLevel)

	return func(ctx *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(ctx) {
			return ctx.Next()
		}

		once.Do(func() {
			errHandler = ctx.App().ErrorHandler
		})

		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx.Locals(LocalsRequestID, requestID)
		ctx.Set(HeaderRequestID, requestID)

		start := time.Now()

		chainErr := ctx.Next()
		if chainErr != nil {
			if errH := errHandler(ctx, chainErr); errH != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck
				ctx.Response().Header.Set(fiber.HeaderCacheControl, cfg.CacheControlError)
			}
		}

		elapsed := time.Since(start).Seconds()
		ctx.Response().Header.Set("X-Performance", fmt.Sprintf("%f", elapsed))

		if cfg.Config.DisableCheckAlive && bytes.Equal(ctx.Request().RequestURI(), []byte(cfg.CheckAliveURI)) {
			return nil
		}

		// fasthttp normalizes the path; log what the client sent.
		p := ctx.Path()
		if len(ctx.Queries()) > 0 {
			p = p + "?" + string(ctx.Request().URI().QueryString())
		}

		event := accessLogger.Log().
			Str("request_id", requestID).
			Str("IP", ctx.IP()).
			Int("status", ctx.Response().StatusCode()).
			Float64("X-Performance", elapsed).
			Str("URI", p).
			Str("method", ctx.Method()).
			Bytes("host", ctx.Request().Host()).
			Str(fiber.HeaderUserAgent, ctx.Get(fiber.HeaderUserAgent))

		for _, key := range cfg.LocalsFields {
			if v, ok := ctx.Locals(key).(string); ok && v != "" {
				event.Str(key, v)
			}
		}

		if chainErr != nil {
			event.Err(chainErr)
		}

		event.Send()

		return nil
	}
}

func newRollingAccessFile(cfg logger.LogFile) io.Writer {
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil { //nolint:mnd
			log.Error().Err(err).Str("path", cfg.Path).Msg("can't create log directory")

			return nil
		}
	}

	return logger.Rolling(cfg.Path, cfg.Access)
}
