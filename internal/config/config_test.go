package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err)

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.Equal(t, 8080, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.Equal(t, EngineSQLite, cfg.DB.GormEngine)
	assert.NotEmpty(t, cfg.DB.Path)
	assert.Equal(t, "info", cfg.Log.LogLevel)
	assert.Equal(t, "brokerdesk", cfg.Log.AppName)
	assert.True(t, cfg.Log.Console.Enabled)
	assert.Equal(t, "access.log", cfg.Log.File.Access.Name)
	assert.Equal(t, "brokerdesk:rbac", cfg.Notify.Redis.ChannelPrefix)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir() + string(filepath.Separator))
	require.Error(t, err)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":"Test Override","Webserver":{"Port":9090},"Seed":{"Tenants":["t1","t2"]}}`)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Webserver.URL)
	assert.Equal(t, []string{"t1", "t2"}, cfg.Seed.Tenants)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(projectConfigPath(t))
	require.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	valid := func() Config {
		return Config{
			Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
			Auth:      Auth{JWTSecret: "secret"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Webserver.Port = 0 }, wantErr: ErrWebServerPortCanNotBeZero},
		{name: "missing URL", mutate: func(c *Config) { c.Webserver.URL = "" }, wantErr: ErrEmptyURL},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: ErrEmptyJWTSecret},
		{name: "missing secret in dev mode", mutate: func(c *Config) { c.Auth.JWTSecret = ""; c.DevMode = true }},
		{name: "engine upper case", mutate: func(c *Config) { c.DB.GormEngine = "Postgres" }},
		{name: "unsupported engine", mutate: func(c *Config) { c.DB.GormEngine = "oracle" }, wantErr: ErrUnsupportedDBEngine},
		{name: "redis without address", mutate: func(c *Config) { c.Notify.Redis.Enabled = true }, wantErr: ErrEmptyRedisAddr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)

			err := validate(&c)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, defaultShutDownTime, c.Webserver.ShutDownTime)
			assert.Equal(t, defaultChannelPrefix, c.Notify.Redis.ChannelPrefix)
		})
	}
}

func TestDumpConfigJSONMasksSecrets(t *testing.T) {
	cfg := Config{
		Title:  "Test",
		DB:     DB{Password: "db-pass"},
		Auth:   Auth{JWTSecret: "jwt-secret"},
		Notify: Notify{Redis: Redis{Password: "redis-pass"}},
	}

	out, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "Test")
	assert.NotContains(t, out, "db-pass")
	assert.NotContains(t, out, "jwt-secret")
	assert.NotContains(t, out, "redis-pass")
	assert.Equal(t, "jwt-secret", cfg.Auth.JWTSecret)
}

func TestMain(m *testing.M) {
	os.Unsetenv(EnvConfigJSON) //nolint:errcheck

	os.Exit(m.Run())
}
