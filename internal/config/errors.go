package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrEmptyJWTSecret error if tokens can not be verified outside dev mode.
	ErrEmptyJWTSecret = errors.New("config auth.jwtSecret can not be empty unless devMode is set")

	// ErrUnsupportedDBEngine error if db.gormEngine is unknown.
	ErrUnsupportedDBEngine = errors.New("config db.gormEngine is not supported")

	// ErrEmptyRedisAddr error if redis notifications are enabled without an address.
	ErrEmptyRedisAddr = errors.New("config notify.redis.addr can not be empty when enabled")
)
