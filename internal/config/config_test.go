package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyBackendURL(t *testing.T) {
	// Config loads successfully even without BACKEND_URL set.
	os.Unsetenv("BACKEND_URL")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "", cfg.BackendURL)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("HTTP_LISTEN_ADDR")
	os.Unsetenv("STATIC_DIR")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.HTTPListenAddr)
	assert.Equal(t, "./dist", cfg.StaticDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_AllEnvVars(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.backupdesk.internal")
	t.Setenv("HTTP_LISTEN_ADDR", ":7071")
	t.Setenv("STATIC_DIR", "/srv/console")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVICE_NAME", "console-web")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://api.backupdesk.internal", cfg.BackendURL)
	assert.Equal(t, ":7071", cfg.HTTPListenAddr)
	assert.Equal(t, "/srv/console", cfg.StaticDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console-web", cfg.ServiceName)
}

func TestValidate_ConsoleWeb_MissingFields(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate("console-web")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKEND_URL")
	assert.Contains(t, err.Error(), "HTTP_LISTEN_ADDR")
	assert.Contains(t, err.Error(), "STATIC_DIR")
}

func TestValidate_ConsoleWeb_OK(t *testing.T) {
	cfg := &Config{
		BackendURL:     "http://localhost:8000",
		HTTPListenAddr: ":8090",
		StaticDir:      "./dist",
	}
	require.NoError(t, cfg.Validate("console-web"))
}

func TestValidate_UnknownService(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate("mystery")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown service")
}
