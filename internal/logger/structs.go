package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `mapstructure:"enabled"`
	UseConsoleWriter bool `mapstructure:"useConsoleWriter"`
}

// RollingFile configures one lumberjack target.
type RollingFile struct {
	Name       string `mapstructure:"name"`
	MaxSize    int    `mapstructure:"maxSize"` // megabytes
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAge     int    `mapstructure:"maxAge"` // days
}

// LogFile implements a file based logger split by level.
type LogFile struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`

	Access RollingFile `mapstructure:"access"`
	Error  RollingFile `mapstructure:"error"`
	Warn   RollingFile `mapstructure:"warn"`
	Info   RollingFile `mapstructure:"info"`
	Trace  RollingFile `mapstructure:"trace"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string `mapstructure:"logLevel"` // trace, debug, info, warn, error.

	// EnableAccessLogToConsole enables the fiber access log.
	// Does not overrule Console.Enabled.
	EnableAccessLogToConsole bool `mapstructure:"enableAccessLogToConsole"`
	ReportCaller             bool `mapstructure:"reportCaller"`
	DisableCheckAlive        bool `mapstructure:"disableCheckAlive"` // do not log /checkalive calls

	AppName     string `mapstructure:"appName"`
	ServiceName string `mapstructure:"serviceName"`

	Console Console `mapstructure:"console"`
	File    LogFile `mapstructure:"file"`
}
