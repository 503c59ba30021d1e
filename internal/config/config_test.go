package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "dev", cfg.Server.Env)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Empty(t, cfg.AWS.S3Bucket)
	assert.Equal(t, "air", cfg.Process.DefaultFluid)
	assert.Equal(t, "ideal", cfg.Process.PropertyModel)
	assert.Equal(t, 2.0, cfg.Process.SweepRatio)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("DEFAULT_FLUID", "nitrogen")
	t.Setenv("PROPERTY_MODEL", "peng_robinson")
	t.Setenv("SWEEP_RATIO", "0.5")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 15*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "nitrogen", cfg.Process.DefaultFluid)
	assert.Equal(t, "peng_robinson", cfg.Process.PropertyModel)
	assert.Equal(t, 0.5, cfg.Process.SweepRatio)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("ENVIRONMENT", "staging")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.staging"),
		[]byte("S3_BUCKET=nonflow-exports\nPORT=7000\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "nonflow-exports", cfg.AWS.S3Bucket)
	assert.Equal(t, "7000", cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown fluid", "DEFAULT_FLUID", "unobtainium"},
		{"unknown model", "PROPERTY_MODEL", "van_der_waals"},
		{"unit ratio", "SWEEP_RATIO", "1"},
		{"negative ratio", "SWEEP_RATIO", "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
