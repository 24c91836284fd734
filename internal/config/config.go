// Package config loads compass.yaml and applies COMPASS_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/arushahmd/compass-voice/pkg/engine"
	"github.com/arushahmd/compass-voice/pkg/handlers"
	"github.com/arushahmd/compass-voice/pkg/menu"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "compass.yaml"

// Store drivers.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Menu       MenuConfig       `mapstructure:"menu"`
	Store      StoreConfig      `mapstructure:"store"`
	Engine     EngineConfig     `mapstructure:"engine"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Encryption EncryptionConfig `mapstructure:"encryption"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MenuConfig locates the menu and optional response catalogs.
type MenuConfig struct {
	Path      string   `mapstructure:"path"`
	Responses []string `mapstructure:"responses"`
}

type StoreConfig struct {
	Driver    string        `mapstructure:"driver"`
	Path      string        `mapstructure:"path"`
	RedactPII bool          `mapstructure:"redact_pii"`
	LockTTL   time.Duration `mapstructure:"lock_ttl"`
	Redis     RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
	Lock     bool          `mapstructure:"lock"`
}

// EngineConfig tunes matching and input limits.
type EngineConfig struct {
	ItemThreshold      float64 `mapstructure:"item_threshold"`
	DominanceThreshold float64 `mapstructure:"dominance_threshold"`
	AmbiguityRatio     float64 `mapstructure:"ambiguity_ratio"`
	RemoveThreshold    float64 `mapstructure:"remove_threshold"`
	ConfirmBelow       float64 `mapstructure:"confirm_below"`
	SuggestionLimit    int     `mapstructure:"suggestion_limit"`
	MaxInputSize       int     `mapstructure:"max_input_size"`
}

type HTTPConfig struct {
	Addr         string `mapstructure:"addr"`
	RestaurantID string `mapstructure:"restaurant_id"`
}

// EncryptionConfig holds base64 AES-256 keys. An empty key disables encryption.
type EncryptionConfig struct {
	Key          string   `mapstructure:"key"`
	FallbackKeys []string `mapstructure:"fallback_keys"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log:  LogConfig{Level: "info", Format: "text"},
		Menu: MenuConfig{Path: "menu.yaml"},
		Store: StoreConfig{
			Driver:  StoreMemory,
			Path:    ".compass/sessions",
			LockTTL: 30 * time.Second,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "compass:session:",
				TTL:    time.Hour,
			},
		},
		Engine: EngineConfig{
			ItemThreshold:      menu.DefaultItemThreshold,
			DominanceThreshold: menu.DefaultDominanceThreshold,
			AmbiguityRatio:     menu.DefaultAmbiguityRatio,
			RemoveThreshold:    handlers.DefaultRemoveThreshold,
			ConfirmBelow:       handlers.DefaultConfirmBelow,
			SuggestionLimit:    handlers.DefaultSuggestionLimit,
			MaxInputSize:       engine.DefaultMaxInputSize,
		},
		HTTP: HTTPConfig{Addr: ":8080"},
	}
}

// envKeys maps environment variables to dotted config keys.
var envKeys = map[string]string{
	"COMPASS_LOG_LEVEL":           "log.level",
	"COMPASS_LOG_FORMAT":          "log.format",
	"COMPASS_MENU":                "menu.path",
	"COMPASS_STORE":               "store.driver",
	"COMPASS_STORE_PATH":          "store.path",
	"COMPASS_REDACT_PII":          "store.redact_pii",
	"COMPASS_REDIS_ADDR":          "store.redis.addr",
	"COMPASS_REDIS_PASSWORD":      "store.redis.password",
	"COMPASS_REDIS_DB":            "store.redis.db",
	"COMPASS_REDIS_PREFIX":        "store.redis.prefix",
	"COMPASS_REDIS_TTL":           "store.redis.ttl",
	"COMPASS_REDIS_LOCK":          "store.redis.lock",
	"COMPASS_ITEM_THRESHOLD":      "engine.item_threshold",
	"COMPASS_DOMINANCE_THRESHOLD": "engine.dominance_threshold",
	"COMPASS_SUGGESTION_LIMIT":    "engine.suggestion_limit",
	"COMPASS_MAX_INPUT_SIZE":      "engine.max_input_size",
	"COMPASS_HTTP_ADDR":           "http.addr",
	"COMPASS_RESTAURANT_ID":       "http.restaurant_id",
	"COMPASS_ENCRYPTION_KEY":      "encryption.key",
}

// Load reads path (or DefaultFile when empty), overlays the environment and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	raw := make(map[string]any)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if raw == nil {
			raw = make(map[string]any)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	for env, key := range envKeys {
		if v, ok := os.LookupEnv(env); ok {
			set(raw, strings.Split(key, "."), v)
		}
	}

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// set writes value at the dotted path, creating nested maps as needed.
func set(m map[string]any, path []string, value any) {
	for _, k := range path[:len(path)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[k] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("invalid store driver %q (want memory, file or redis)", c.Store.Driver)
	}
	if c.Engine.ItemThreshold <= 0 {
		return fmt.Errorf("engine.item_threshold must be positive, got %v", c.Engine.ItemThreshold)
	}
	if c.Engine.AmbiguityRatio <= 0 || c.Engine.AmbiguityRatio > 1 {
		return fmt.Errorf("engine.ambiguity_ratio must be in (0, 1], got %v", c.Engine.AmbiguityRatio)
	}
	if c.Engine.SuggestionLimit < 1 {
		return fmt.Errorf("engine.suggestion_limit must be at least 1, got %d", c.Engine.SuggestionLimit)
	}
	if c.Engine.MaxInputSize < 0 {
		return fmt.Errorf("engine.max_input_size must not be negative, got %d", c.Engine.MaxInputSize)
	}
	return nil
}
