package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/instagram-api-client/pkg/cache"
	"github.com/Sternrassler/instagram-api-client/pkg/client"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotEmpty(t, cfg.API.BaseURL)
	assert.Empty(t, cfg.API.Key)
	assert.Equal(t, client.DefaultTimeout, cfg.API.Timeout)
	assert.False(t, cfg.API.StopAtLastPage)
	assert.Equal(t, cache.DefaultTTL, cfg.Redis.CacheTTL)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)

	// The key has no default.
	assert.Error(t, cfg.Validate())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("INSTAGRAM_API_KEY", "secret")
	t.Setenv("INSTAGRAM_API_TIMEOUT", "5s")
	t.Setenv("INSTAGRAM_API_STOP_AT_LAST_PAGE", "true")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("REDIS_CACHE_TTL", "10m")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.API.Key)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.API.StopAtLastPage)
	assert.Equal(t, "redis://cache:6379/2", cfg.Redis.URL)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_YAMLThenEnvironment(t *testing.T) {
	path := writeFile(t, "config.yaml", `
api:
  base_url: https://yaml.example.com
  key: yaml-key
  timeout: 12s
redis:
  cache_ttl: 2h
logging:
  level: warn
  pretty: true
`)
	t.Setenv("INSTAGRAM_API_KEY", "env-key")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "https://yaml.example.com", cfg.API.BaseURL)
	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, 12*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2*time.Hour, cfg.Redis.CacheTTL)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Pretty)
	// Untouched fields keep their defaults.
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_EnvFile(t *testing.T) {
	// godotenv never overrides a variable that is already set.
	t.Setenv("INSTAGRAM_API_KEY", "")
	require.NoError(t, os.Unsetenv("INSTAGRAM_API_KEY"))

	path := writeFile(t, ".env", "INSTAGRAM_API_KEY=dotenv-key\n")

	cfg, err := Load("", path)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.API.Key)
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	t.Setenv("INSTAGRAM_API_KEY", "secret")

	_, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing_yaml", func(t *testing.T) {
		t.Setenv("INSTAGRAM_API_KEY", "secret")
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
		assert.Error(t, err)
	})

	t.Run("invalid_yaml", func(t *testing.T) {
		t.Setenv("INSTAGRAM_API_KEY", "secret")
		_, err := Load(writeFile(t, "bad.yaml", "api: [unclosed"), "")
		assert.Error(t, err)
	})

	t.Run("invalid_duration", func(t *testing.T) {
		t.Setenv("INSTAGRAM_API_KEY", "secret")
		t.Setenv("REDIS_CACHE_TTL", "forever")
		_, err := Load("", "")
		assert.Error(t, err)
	})

	t.Run("invalid_log_level", func(t *testing.T) {
		t.Setenv("INSTAGRAM_API_KEY", "secret")
		t.Setenv("LOG_LEVEL", "chatty")
		_, err := Load("", "")
		assert.ErrorContains(t, err, "invalid log level")
	})

	t.Run("missing_key", func(t *testing.T) {
		t.Setenv("INSTAGRAM_API_KEY", "")
		_, err := Load("", "")
		assert.ErrorContains(t, err, "INSTAGRAM_API_KEY is required")
	})
}

func TestConfig_Instagram(t *testing.T) {
	cfg := Default()
	cfg.API.Key = "k"
	cfg.API.Timeout = 3 * time.Second
	cfg.Redis.CacheTTL = time.Minute
	cfg.API.StopAtLastPage = true

	ig := cfg.Instagram()
	assert.Equal(t, cfg.API.BaseURL, ig.Upstream.BaseURL)
	assert.Equal(t, "k", ig.Upstream.APIKey)
	assert.Equal(t, 3*time.Second, ig.Upstream.Timeout)
	assert.Equal(t, time.Minute, ig.CacheTTL)
	assert.True(t, ig.StopAtLastPage)
}
