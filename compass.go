package compass

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arushahmd/compass-voice/internal/logging"
	"github.com/arushahmd/compass-voice/internal/responses"
	"github.com/arushahmd/compass-voice/pkg/adapters/memory"
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/engine"
	"github.com/arushahmd/compass-voice/pkg/menu"
	"github.com/arushahmd/compass-voice/pkg/ports"
	"github.com/arushahmd/compass-voice/pkg/session"
)

// Version is the release of this build. It is overridden at link time.
var Version = "0.1.0"

// Reply is the outcome of one turn as seen by a transport.
type Reply struct {
	SessionID   string                   `json:"session_id"`
	Text        string                   `json:"text"`
	ResponseKey string                   `json:"response_key"`
	Payload     domain.Payload           `json:"response_payload,omitempty"`
	State       domain.ConversationState `json:"conversation_state"`
	TurnCount   int                      `json:"turn_count"`
	Diff        *domain.SessionDiff      `json:"diff,omitempty"`
}

// Agent is the high-level entry point. It owns the menu, the engine, session
// persistence and reply rendering, and is safe for concurrent use.
type Agent struct {
	repo         *menu.Repository
	engine       *engine.Engine
	sessions     *session.Manager
	renderer     *responses.Renderer
	restaurantID string
	logger       *slog.Logger

	store       ports.SessionStore
	locker      ports.DistributedLocker
	lockTTL     time.Duration
	hooks       domain.LifecycleHooks
	engineOpts  []engine.Option
	menuOpts    []menu.Option
	onReply     []func(context.Context, Reply)
	turnTimeout time.Duration
}

// Option defines a functional option for configuring the Agent.
type Option func(*Agent)

// WithStore sets the session store (default: in-memory).
func WithStore(store ports.SessionStore) Option {
	return func(a *Agent) {
		a.store = store
	}
}

// WithLocker enables distributed session locking with the given lease.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(a *Agent) {
		a.locker = locker
		a.lockTTL = ttl
	}
}

// WithLogger sets a custom structured logger for the agent and the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls merge.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Agent) {
		a.hooks = a.hooks.Merge(hooks)
	}
}

// WithEngineOptions passes options through to the turn engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(a *Agent) {
		a.engineOpts = append(a.engineOpts, opts...)
	}
}

// WithMenuOptions tunes menu matching thresholds.
func WithMenuOptions(opts ...menu.Option) Option {
	return func(a *Agent) {
		a.menuOpts = append(a.menuOpts, opts...)
	}
}

// WithRenderer replaces the default reply renderer.
func WithRenderer(r *responses.Renderer) Option {
	return func(a *Agent) {
		a.renderer = r
	}
}

// WithRestaurantID overrides the restaurant recorded on new sessions.
// By default it is the menu's restaurant.
func WithRestaurantID(id string) Option {
	return func(a *Agent) {
		a.restaurantID = id
	}
}

// WithReplyObserver calls fn after every successful turn, outside the session lock.
func WithReplyObserver(fn func(context.Context, Reply)) Option {
	return func(a *Agent) {
		if fn != nil {
			a.onReply = append(a.onReply, fn)
		}
	}
}

// WithTurnTimeout bounds how long a turn may wait for the session lock and store.
func WithTurnTimeout(d time.Duration) Option {
	return func(a *Agent) {
		a.turnTimeout = d
	}
}

// New loads the menu and wires the engine, session manager and renderer.
func New(ctx context.Context, loader ports.MenuLoader, opts ...Option) (*Agent, error) {
	if loader == nil {
		return nil, fmt.Errorf("menu loader is required")
	}

	a := &Agent{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	// 1. Menu
	m, err := loader.LoadMenu(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	a.repo = menu.NewRepository(menu.NewStore(m), a.menuOpts...)
	if a.restaurantID == "" {
		a.restaurantID = m.RestaurantID
	}

	// 2. Engine
	engineOpts := append([]engine.Option{engine.WithLogger(a.logger), engine.WithHooks(a.hooks)}, a.engineOpts...)
	a.engine = engine.New(a.repo, engineOpts...)

	// 3. Sessions
	if a.store == nil {
		a.store = memory.NewStore()
	}
	sessOpts := []session.Option{session.WithLogger(a.logger)}
	if a.locker != nil {
		sessOpts = append(sessOpts, session.WithLocker(a.locker), session.WithLockTTL(a.lockTTL))
	}
	a.sessions = session.NewManager(a.store, sessOpts...)

	// 4. Replies
	if a.renderer == nil {
		a.renderer = responses.MustNew(responses.WithLogger(a.logger))
	}

	a.logger.Info("agent ready",
		"restaurant_id", a.restaurantID,
		"items", len(m.Items),
		"categories", len(m.Categories),
	)
	return a, nil
}

// Handle runs one turn of the conversation identified by sessionID.
// A session that does not exist yet is started in IDLE.
func (a *Agent) Handle(ctx context.Context, sessionID, text string) (Reply, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Reply{}, fmt.Errorf("session id is required: %w", domain.ErrInvalidInput)
	}
	if a.turnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.turnTimeout)
		defer cancel()
	}

	var out domain.TurnOutput
	var diff *domain.SessionDiff
	sess, err := a.sessions.Turn(ctx, sessionID, a.restaurantID, func(ctx context.Context, sess *domain.Session) error {
		before := sess.Clone()
		var err error
		out, err = a.engine.ProcessTurn(ctx, sess, text)
		if err != nil {
			return err
		}
		diff = domain.Diff(before, sess)
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) {
			a.logger.Error("turn failed", "session_id", sessionID, "err", err)
		}
		return Reply{}, fmt.Errorf("failed to handle turn: %w", err)
	}

	reply := Reply{
		SessionID:   sessionID,
		Text:        a.renderer.Render(out),
		ResponseKey: out.ResponseKey,
		Payload:     out.Payload,
		State:       sess.State,
		TurnCount:   sess.TurnCount,
		Diff:        diff,
	}
	for _, fn := range a.onReply {
		fn(ctx, reply)
	}
	return reply, nil
}

// Session returns a snapshot of a stored session.
func (a *Agent) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return a.sessions.Load(ctx, sessionID)
}

// Sessions lists stored session IDs.
func (a *Agent) Sessions(ctx context.Context) ([]string, error) {
	return a.sessions.List(ctx)
}

// Reset deletes a session so the next turn starts fresh.
func (a *Agent) Reset(ctx context.Context, sessionID string) error {
	return a.sessions.Delete(ctx, sessionID)
}

// Cart prices the cart of a stored session.
func (a *Agent) Cart(ctx context.Context, sessionID string) (menu.Summary, error) {
	sess, err := a.sessions.Load(ctx, sessionID)
	if err != nil {
		return menu.Summary{}, err
	}
	return a.engine.Handlers().Summary(sess.Cart), nil
}

// Menu exposes the loaded menu repository.
func (a *Agent) Menu() *menu.Repository {
	return a.repo
}

// RestaurantID is the restaurant recorded on new sessions.
func (a *Agent) RestaurantID() string {
	return a.restaurantID
}
