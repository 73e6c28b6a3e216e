package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := load(nil)
		require.NoError(t, err)

		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, ":8080", cfg.HTTPServerAddr)
		assert.Equal(t, 30*time.Second, cfg.HTTPHandlerTimeout)
		assert.Equal(t, DefaultCatalogURL, cfg.Catalog.URL)
		assert.Zero(t, cfg.Catalog.RequestTimeout)
		assert.Equal(t, 1, cfg.Catalog.MaxAttempts)
		assert.False(t, cfg.Broker.Enabled())
	})

	t.Run("File", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
http_server_addr: ":9090"
allowed_origins: ["https://app.example.com"]
catalog:
  url: "http://catalog.local/products.json"
  request_timeout: 3s
  max_attempts: 3
  retry_delay: 50ms
broker:
  seed_brokers: ["kafka-0:9092", "kafka-1:9092"]
  schema_registry_urls: ["http://sr:8081"]
  client_events_topic: "events"
`)
		cfg, err := load([]string{"--config", path})
		require.NoError(t, err)

		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, ":9090", cfg.HTTPServerAddr)
		assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
		assert.Equal(t, "http://catalog.local/products.json", cfg.Catalog.URL)
		assert.Equal(t, 3*time.Second, cfg.Catalog.RequestTimeout)
		assert.Equal(t, 3, cfg.Catalog.MaxAttempts)
		assert.Equal(t, 50*time.Millisecond, cfg.Catalog.RetryDelay)
		assert.True(t, cfg.Broker.Enabled())
		assert.Equal(t, "events", cfg.Broker.ClientEventsTopic)
	})

	t.Run("EnvOverridesFilePath", func(t *testing.T) {
		path := writeConfig(t, `http_server_addr: ":7070"`)
		t.Setenv(configFileEnvName, path)

		cfg, err := load([]string{"--config", "/does/not/exist.yaml"})
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.HTTPServerAddr)
	})

	t.Run("EnvOverridesKey", func(t *testing.T) {
		t.Setenv("PRODUCTLIST_CATALOG_URL", "http://env.local/p.json")

		cfg, err := load(nil)
		require.NoError(t, err)
		assert.Equal(t, "http://env.local/p.json", cfg.Catalog.URL)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := writeConfig(t, `unknown_key: 1`)
		_, err := load([]string{"--config", path})
		assert.Error(t, err)
	})

	t.Run("BrokersWithoutRegistry", func(t *testing.T) {
		path := writeConfig(t, `
broker:
  seed_brokers: ["kafka-0:9092"]
`)
		_, err := load([]string{"--config", path})
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := load([]string{"--config", "/does/not/exist.yaml"})
		assert.Error(t, err)
	})
}
