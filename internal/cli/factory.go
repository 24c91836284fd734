package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/arushahmd/compass-voice"
	"github.com/arushahmd/compass-voice/internal/adapters/file"
	"github.com/arushahmd/compass-voice/internal/config"
	"github.com/arushahmd/compass-voice/internal/logging"
	"github.com/arushahmd/compass-voice/internal/responses"
	"github.com/arushahmd/compass-voice/pkg/adapters/memory"
	"github.com/arushahmd/compass-voice/pkg/adapters/redis"
	"github.com/arushahmd/compass-voice/pkg/engine"
	"github.com/arushahmd/compass-voice/pkg/handlers"
	"github.com/arushahmd/compass-voice/pkg/menu"
	"github.com/arushahmd/compass-voice/pkg/observability"
	"github.com/arushahmd/compass-voice/pkg/persistence"
	"github.com/arushahmd/compass-voice/pkg/persistence/middleware"
	"github.com/arushahmd/compass-voice/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Stack is an agent wired from configuration together with what it owns.
type Stack struct {
	Config   *config.Config
	Logger   *slog.Logger
	Agent    *compass.Agent
	Store    ports.SessionStore
	Registry *prometheus.Registry

	closers []func() error
}

// BuildOptions adjusts how a Stack is assembled.
type BuildOptions struct {
	// Logger overrides the logger built from cfg.Log.
	Logger *slog.Logger
	// Metrics registers Prometheus collectors on Stack.Registry.
	Metrics bool
	// AgentOptions are appended after the configured ones.
	AgentOptions []compass.Option
}

// Build creates the session store, the menu loader and the agent from cfg.
func Build(ctx context.Context, cfg *config.Config, opts BuildOptions) (*Stack, error) {
	s := &Stack{Config: cfg, Logger: opts.Logger}
	if s.Logger == nil {
		s.Logger = logging.New(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	}

	// 1. Persistence
	store, locker, closeStore, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	s.Store = store
	if closeStore != nil {
		s.closers = append(s.closers, closeStore)
	}

	// 2. Replies
	var catalogs [][]byte
	for _, path := range cfg.Menu.Responses {
		data, err := os.ReadFile(path)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to read response catalog: %w", err)
		}
		catalogs = append(catalogs, data)
	}
	renderer, err := responses.New(catalogs, responses.WithLogger(s.Logger))
	if err != nil {
		s.Close()
		return nil, err
	}

	// 3. Agent
	agentOpts := []compass.Option{
		compass.WithLogger(s.Logger),
		compass.WithStore(store),
		compass.WithRenderer(renderer),
		compass.WithMenuOptions(
			menu.WithItemThreshold(cfg.Engine.ItemThreshold),
			menu.WithDominanceThreshold(cfg.Engine.DominanceThreshold),
			menu.WithAmbiguityRatio(cfg.Engine.AmbiguityRatio),
		),
		compass.WithEngineOptions(
			engine.WithMaxInputSize(cfg.Engine.MaxInputSize),
			engine.WithHandlerOptions(
				handlers.WithSuggestionLimit(cfg.Engine.SuggestionLimit),
				handlers.WithRemoveThreshold(cfg.Engine.RemoveThreshold),
				handlers.WithConfirmBelow(cfg.Engine.ConfirmBelow),
			),
		),
	}
	if cfg.HTTP.RestaurantID != "" {
		agentOpts = append(agentOpts, compass.WithRestaurantID(cfg.HTTP.RestaurantID))
	}
	if locker != nil {
		agentOpts = append(agentOpts, compass.WithLocker(locker, cfg.Store.LockTTL))
	}
	if opts.Metrics {
		s.Registry = prometheus.NewRegistry()
		m, err := observability.NewMetrics(s.Registry)
		if err != nil {
			s.Close()
			return nil, err
		}
		agentOpts = append(agentOpts, compass.WithLifecycleHooks(m.Hooks()))
	}
	agentOpts = append(agentOpts, compass.WithLifecycleHooks(observability.LoggingHooks(s.Logger)))
	agentOpts = append(agentOpts, opts.AgentOptions...)

	s.Agent, err = compass.New(ctx, file.NewMenuLoader(cfg.Menu.Path), agentOpts...)
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the store connections.
func (s *Stack) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// OpenStore builds the configured session store with its codec and middleware.
// The locker is nil unless Redis locking is enabled.
func OpenStore(cfg *config.Config) (ports.SessionStore, ports.DistributedLocker, func() error, error) {
	codec, err := newCodec(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	var store ports.SessionStore
	var locker ports.DistributedLocker
	var closer func() error

	switch cfg.Store.Driver {
	case config.StoreMemory:
		store = memory.NewStore()
	case config.StoreFile:
		store = file.New(cfg.Store.Path, file.WithCodec(codec))
	case config.StoreRedis:
		rcfg := cfg.Store.Redis
		rs := redis.New(rcfg.Addr, rcfg.Password, rcfg.DB,
			redis.WithPrefix(rcfg.Prefix),
			redis.WithTTL(rcfg.TTL),
			redis.WithCodec(codec),
		)
		if rcfg.Lock {
			locker = redis.NewLocker(rs.Client(), rcfg.Prefix)
		}
		store, closer = rs, rs.Close
	default:
		return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.Store.RedactPII {
		store = middleware.Chain(store, middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns))
	}
	return store, locker, closer, nil
}

func newCodec(cfg *config.Config) (persistence.Codec, error) {
	var inner persistence.Codec = persistence.JSONCodec{Indent: cfg.Store.Driver == config.StoreFile}
	if cfg.Encryption.Key == "" {
		return inner, nil
	}

	active, err := persistence.ParseKey(cfg.Encryption.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse encryption key: %w", err)
	}
	ec := persistence.EncryptionConfig{ActiveKey: active}
	for _, k := range cfg.Encryption.FallbackKeys {
		key, err := persistence.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fallback key: %w", err)
		}
		ec.FallbackKeys = append(ec.FallbackKeys, key)
	}
	return persistence.NewEncryptedCodec(inner, ec)
}
