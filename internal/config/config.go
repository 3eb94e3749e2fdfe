// Package config handles input from etc/main.toml, .env and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvConfigJSON overrides any part of the file config with a JSON document.
	EnvConfigJSON = "BROKERDESK_CONFIG_JSON"

	defaultShutDownTime   = 5
	defaultChannelPrefix  = "brokerdesk:rbac"
	defaultReadBufferSize = 8192
	mask                  = "********"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path + "main.toml")
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	if env := os.Getenv(EnvConfigJSON); env != "" {
		if err := json.Unmarshal([]byte(env), &c); err != nil {
			return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
		}
	}

	return c, validate(&c)
}

// DumpConfigJSON renders the config as indented JSON with secrets masked.
func DumpConfigJSON(c *Config) (string, error) {
	masked := *c

	if masked.DB.Password != "" {
		masked.DB.Password = mask
	}

	if masked.Auth.JWTSecret != "" {
		masked.Auth.JWTSecret = mask
	}

	if masked.Notify.Redis.Password != "" {
		masked.Notify.Redis.Password = mask
	}

	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(masked); err != nil {
		return "", err //nolint:wrapcheck
	}

	return buffer.String(), nil
}

// validate the settings needed to start and fill in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Auth.JWTSecret == "" && !c.DevMode {
		return errors.Wrap(ErrEmptyJWTSecret, invalidErrMessage)
	}

	c.DB.GormEngine = strings.ToLower(c.DB.GormEngine)
	switch c.DB.GormEngine {
	case "", EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return errors.Wrap(ErrUnsupportedDBEngine, c.DB.GormEngine)
	}

	if c.Notify.Redis.Enabled && c.Notify.Redis.Addr == "" {
		return errors.Wrap(ErrEmptyRedisAddr, invalidErrMessage)
	}

	if c.Notify.Redis.ChannelPrefix == "" {
		c.Notify.Redis.ChannelPrefix = defaultChannelPrefix
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.ReadBufferSize == 0 {
		c.Webserver.ReadBufferSize = defaultReadBufferSize
	}

	return nil
}
