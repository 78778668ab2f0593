package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at a temp directory and clears the variables it reads
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	oldConfig, oldDotEnv := ConfigPaths, DotEnvPaths
	ConfigPaths = []string{dir}
	DotEnvPaths = []string{filepath.Join(dir, ".env")}
	t.Cleanup(func() {
		ConfigPaths, DotEnvPaths = oldConfig, oldDotEnv
	})

	t.Setenv("IMG_ENV", "")
	t.Setenv("NODE_ENV", "")
	for _, o := range append(envOverrides, intOverrides...) {
		for _, name := range o.names {
			t.Setenv(name, "")
		}
	}
	t.Setenv("IMG_ALLOWED_ORIGINS", "")
	return dir
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, int64(5), cfg.Credits.SignupGrant)
	assert.Equal(t, 60*time.Second, cfg.ImageProvider.Timeout)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Contains(t, cfg.Server.AllowedOrigins, "http://localhost:5173")
}

func TestLoadConfig_FileValues(t *testing.T) {
	dir := isolate(t)
	t.Setenv("IMG_ENV", "test")
	yaml := []byte(`
server:
  port: 5001
database:
  host: db.internal
  database: imagify_test
credits:
  signupGrant: 10
rateLimit:
  enabled: false
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), yaml, 0o600))

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, 5001, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "imagify_test", cfg.Database.Database)
	assert.Equal(t, int64(10), cfg.Credits.SignupGrant)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("NODE_ENV", "Production")
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_SECRET", "legacy-secret")
	t.Setenv("CLIPDROP_API", "clip-key")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_1")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/imagify")
	t.Setenv("IMG_SIGNUP_CREDITS", "3")
	t.Setenv("IMG_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "legacy-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "clip-key", cfg.ImageProvider.APIKey)
	assert.Equal(t, "rzp_test_1", cfg.Payment.KeyID)
	assert.Equal(t, "postgres://u:p@db:5432/imagify", cfg.Database.URL)
	assert.Equal(t, int64(3), cfg.Credits.SignupGrant)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoadConfig_PrefixedNameWins(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_SECRET", "legacy")
	t.Setenv("IMG_JWT_SECRET", "prefixed")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.Auth.JWTSecret)
}
