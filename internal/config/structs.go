package config

import (
	"github.com/brokerdesk/brokerdesk/internal/logger"
)

// Supported gorm engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// Config overall data structure.
type Config struct {
	DevMode   bool       `mapstructure:"devMode"` // enables header based tenant fallback and verbose gorm logs
	DB        DB         `mapstructure:"db"`
	Log       logger.Log `mapstructure:"log"`
	Title     string     `mapstructure:"title"`
	Webserver Webserver  `mapstructure:"webserver"`
	Auth      Auth       `mapstructure:"auth"`
	Notify    Notify     `mapstructure:"notify"`
	Seed      Seed       `mapstructure:"seed"`
}

// DB holds the database configuration settings.
type DB struct {
	GormEngine string `mapstructure:"gormEngine"` // mysql, postgres or sqlite
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	Extras     string `mapstructure:"extras"`
	Path       string `mapstructure:"path"` // sqlite file, ":memory:" works too
}

// Webserver implement webserver settings.
type Webserver struct {
	Port           int    `mapstructure:"port"`         // listening port
	URL            string `mapstructure:"url"`          // allowed CORS origin
	ShutDownTime   int    `mapstructure:"shutDownTime"` // seconds to drain before shutdown
	ReadBufferSize int    `mapstructure:"readBufferSize"`
	DisableRecover bool   `mapstructure:"disableRecover"`
}

// Auth configures verification of the identity platform's bearer tokens.
type Auth struct {
	JWTSecret string `mapstructure:"jwtSecret"`
	Issuer    string `mapstructure:"issuer"` // optional
}

// Redis publishes operation notifications.
type Redis struct {
	Enabled       bool   `mapstructure:"enabled"`
	Addr          string `mapstructure:"addr"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	ChannelPrefix string `mapstructure:"channelPrefix"`
}

// Notify configures where operation outcomes are reported.
type Notify struct {
	Redis Redis `mapstructure:"redis"`
}

// Seed lists tenants whose default roles are created at startup.
type Seed struct {
	Tenants []string `mapstructure:"tenants"`
}
