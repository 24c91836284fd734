package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "compass.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
menu:
  path: menus/demo.yaml
  responses: [voice.yaml]
store:
  driver: redis
  redis:
    addr: redis:6379
    ttl: 2h
    lock: true
engine:
  item_threshold: 7.5
  suggestion_limit: 5
http:
  restaurant_id: demo
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "menus/demo.yaml", cfg.Menu.Path)
	assert.Equal(t, []string{"voice.yaml"}, cfg.Menu.Responses)
	assert.Equal(t, StoreRedis, cfg.Store.Driver)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Store.Redis.TTL)
	assert.True(t, cfg.Store.Redis.Lock)
	assert.Equal(t, 7.5, cfg.Engine.ItemThreshold)
	assert.Equal(t, 5, cfg.Engine.SuggestionLimit)
	assert.Equal(t, "demo", cfg.HTTP.RestaurantID)

	// Untouched keys keep their defaults.
	assert.Equal(t, "compass:session:", cfg.Store.Redis.Prefix)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, Default().Engine.AmbiguityRatio, cfg.Engine.AmbiguityRatio)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
store:
  driver: file
engine:
  item_threshold: 7.5
`)
	t.Setenv("COMPASS_STORE", "memory")
	t.Setenv("COMPASS_ITEM_THRESHOLD", "8")
	t.Setenv("COMPASS_MAX_INPUT_SIZE", "512")
	t.Setenv("COMPASS_REDIS_TTL", "15m")
	t.Setenv("COMPASS_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 8.0, cfg.Engine.ItemThreshold)
	assert.Equal(t, 512, cfg.Engine.MaxInputSize)
	assert.Equal(t, 15*time.Minute, cfg.Store.Redis.TTL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown Driver", "store:\n  driver: postgres\n"},
		{"Unknown Key", "engine:\n  item_treshold: 5\n"},
		{"Bad Ratio", "engine:\n  ambiguity_ratio: 1.5\n"},
		{"Zero Suggestions", "engine:\n  suggestion_limit: 0\n"},
		{"Bad Duration", "store:\n  lock_ttl: soon\n"},
		{"Not YAML", "store: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestSet(t *testing.T) {
	m := map[string]any{"store": map[string]any{"driver": "file"}}
	set(m, []string{"store", "redis", "addr"}, "x:1")

	store := m["store"].(map[string]any)
	assert.Equal(t, "file", store["driver"])
	assert.Equal(t, "x:1", store["redis"].(map[string]any)["addr"])
}
