package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"development", "development", true},
		{"production", "production", false},
		{"test", "test", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{Environment: tt.environment}
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		expected string
	}{
		{"localhost", "localhost", 3000, "localhost:3000"},
		{"all interfaces", "0.0.0.0", 8080, "0.0.0.0:8080"},
		{"custom host", "192.168.1.1", 9000, "192.168.1.1:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ServerConfig{Host: tt.host, Port: tt.port}
			assert.Equal(t, tt.expected, cfg.Address())
		})
	}
}

func TestServerConfig_BrowseURL(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		expected string
	}{
		{"wildcard host maps to localhost", "0.0.0.0", 3000, "http://localhost:3000"},
		{"empty host maps to localhost", "", 3000, "http://localhost:3000"},
		{"explicit host kept", "127.0.0.1", 8080, "http://127.0.0.1:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ServerConfig{Host: tt.host, Port: tt.port}
			assert.Equal(t, tt.expected, cfg.BrowseURL())
		})
	}
}

func TestConfig_Validate_Development(t *testing.T) {
	cfg := Development()
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_InvalidPort(t *testing.T) {
	cfg := Development()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_EmptyRoot(t *testing.T) {
	cfg := Development()
	cfg.Static.Root = ""
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_InvalidCORSMethod(t *testing.T) {
	cfg := Development()
	cfg.CORS.AllowedMethods = []string{"GET", "TRACE"}
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_InvalidLogLevel(t *testing.T) {
	cfg := Development()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "FileBridge", cfg.App.Name)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ".", cfg.Static.Root)
	assert.Equal(t, "index.html", cfg.Static.IndexFile)
	assert.True(t, cfg.Static.DirectoryListing)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigin)
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"Content-Type"}, cfg.CORS.AllowedHeaders)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("FILEBRIDGE_SERVER_PORT", "4000")
	t.Setenv("FILEBRIDGE_STATIC_ROOT", "/srv/www")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "/srv/www", cfg.Static.Root)
}

func TestLoadFromEnv_ShortVars(t *testing.T) {
	t.Setenv("PORT", "5000")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestTest_QuietsLogging(t *testing.T) {
	cfg := Test()
	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}
