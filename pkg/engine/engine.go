// Package engine runs one conversational turn: it classifies the user's text,
// guards and routes the intent, dispatches the state handler and commits the
// result to the session.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arushahmd/compass-voice/internal/logging"
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/flow"
	"github.com/arushahmd/compass-voice/pkg/handlers"
	"github.com/arushahmd/compass-voice/pkg/menu"
	"github.com/arushahmd/compass-voice/pkg/nlu"
	"github.com/arushahmd/compass-voice/pkg/router"
)

// Response keys produced by the engine itself rather than a handler.
const (
	KeyActionCancelled       = "action_cancelled"
	KeyIntentNotAllowed      = "intent_not_allowed"
	KeyHandlerNotImplemented = "handler_not_implemented"
)

// Engine is the turn processor. It holds no per-session state and is safe
// for concurrent use across sessions.
type Engine struct {
	resolver     *nlu.Resolver
	refiner      *nlu.Refiner
	policy       *flow.Policy
	router       *router.Router
	handlers     *handlers.Set
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
	maxInputSize int
	handlerOpts  []handlers.Option
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the logger. It is also handed to the handler set.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHooks registers lifecycle hooks, merged after any already registered.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithMaxInputSize caps the byte length of a turn. Zero defers to COMPASS_MAX_INPUT_SIZE.
func WithMaxInputSize(n int) Option {
	return func(e *Engine) {
		e.maxInputSize = n
	}
}

// WithResolver replaces the default intent resolver.
func WithResolver(r *nlu.Resolver) Option {
	return func(e *Engine) {
		if r != nil {
			e.resolver = r
		}
	}
}

// WithHandlerOptions configures the handler set.
func WithHandlerOptions(opts ...handlers.Option) Option {
	return func(e *Engine) {
		e.handlerOpts = append(e.handlerOpts, opts...)
	}
}

// New creates an Engine over a menu repository.
func New(repo *menu.Repository, opts ...Option) *Engine {
	e := &Engine{
		resolver: nlu.NewResolver(),
		refiner:  nlu.NewRefiner(repo),
		policy:   flow.NewPolicy(),
		router:   router.New(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	hopts := append([]handlers.Option{handlers.WithLogger(e.logger)}, e.handlerOpts...)
	e.handlers = handlers.NewSet(repo, hopts...)
	return e
}

// Handlers exposes the handler set, mainly for cart summaries.
func (e *Engine) Handlers() *handlers.Set {
	return e.handlers
}

// turn carries what is known about the turn being processed.
type turn struct {
	start   time.Time
	state   domain.ConversationState
	intent  domain.Intent
	handler domain.HandlerName
}

// ProcessTurn runs one turn against sess and mutates it in place.
//
// The only errors are rejected input (wrapping domain.ErrInvalidInput) and a
// done context; in both cases the session is untouched. Every user-level
// problem is reported through the response key instead.
func (e *Engine) ProcessTurn(ctx context.Context, sess *domain.Session, text string) (domain.TurnOutput, error) {
	if sess == nil {
		return domain.TurnOutput{}, fmt.Errorf("failed to process turn: %w", domain.ErrSessionNotFound)
	}
	if err := ctx.Err(); err != nil {
		return domain.TurnOutput{}, err
	}

	clean, err := SanitizeInput(text, e.maxInputSize)
	if err != nil {
		return domain.TurnOutput{}, fmt.Errorf("failed to sanitize input: %w", err)
	}

	sess.Normalize()
	t := &turn{start: time.Now(), state: sess.State}
	e.emitTurnStart(ctx, sess)
	sess.Context.LastUserText = clean

	// 1. Resolve intent on cleaned text, scoped by state
	resolved := e.resolver.Resolve(nlu.CleanNoise(nlu.NormalizeText(clean)), t.state)

	// 2. Phase-aware query normalization
	query := nlu.NormalizeQuery(clean, resolved.Intent, t.state)

	// 3. Menu-dominance refinement
	refined := e.refiner.Refine(resolved.Intent, query, t.state)

	// 4. Flow control
	decision := e.policy.Evaluate(t.state, refined, &sess.Context)
	t.intent = refined
	if decision.Action == domain.FlowPass || decision.Action == domain.FlowRewrite {
		t.intent = decision.EffectiveIntent
	}
	if t.intent != resolved.Intent {
		query = nlu.NormalizeQuery(clean, t.intent, t.state)
	}
	e.emitIntent(ctx, sess, resolved.Intent, refined, t.intent, decision.Action, query)

	switch decision.Action {
	case domain.FlowCancel:
		return e.commit(ctx, sess, t, domain.HandlerResult{
			NextState:    domain.StateIdle,
			ResponseKey:  KeyActionCancelled,
			Payload:      decision.Payload,
			ResetContext: true,
		}), nil
	case domain.FlowBlock:
		return e.commit(ctx, sess, t, domain.HandlerResult{
			NextState:   t.state,
			ResponseKey: decision.ResponseKey,
			Payload:     decision.Payload,
		}), nil
	case domain.FlowPass, domain.FlowRewrite:
	}

	// 5. Route
	route := e.router.Route(t.state, t.intent)
	if !route.Allowed {
		e.logger.Debug("route denied", "session_id", sess.SessionID, "reason", route.Reason)
		e.emitRouteDenied(ctx, sess, t)
		return e.commit(ctx, sess, t, domain.HandlerResult{
			NextState:   t.state,
			ResponseKey: KeyIntentNotAllowed,
			Payload:     domain.Payload{"state": string(t.state), "intent": string(t.intent)},
		}), nil
	}
	t.handler = route.Handler

	// 6. Dispatch
	res, err := e.handlers.Dispatch(route.Handler, handlers.Request{
		Intent:  t.intent,
		Query:   query,
		Slot:    decision.SlotInteraction,
		Session: sess,
	})
	if err != nil {
		e.logger.Error("router named a missing handler", "handler", route.Handler, "err", err)
		return e.commit(ctx, sess, t, domain.HandlerResult{NextState: t.state, ResponseKey: KeyHandlerNotImplemented}), nil
	}

	// 7. Apply the command
	if res.Command != nil {
		e.apply(ctx, sess, res.Command)
	}

	return e.commit(ctx, sess, t, res), nil
}

// commit resets the context if asked and records the outcome on the session.
func (e *Engine) commit(ctx context.Context, sess *domain.Session, t *turn, res domain.HandlerResult) domain.TurnOutput {
	if res.ResetContext {
		sess.Context.Reset()
	}
	if res.NextState != "" {
		sess.State = res.NextState
	}
	sess.LastIntent = t.intent
	sess.LastResponseKey = res.ResponseKey
	sess.TurnCount++
	sess.UpdatedAt = time.Now().UTC()

	e.logger.Debug("turn processed",
		"session_id", sess.SessionID,
		"state", t.state,
		"next_state", sess.State,
		"intent", t.intent,
		"handler", t.handler,
		"response_key", res.ResponseKey,
	)
	e.emitTurnEnd(ctx, sess, t, res.ResponseKey)

	return domain.TurnOutput{ResponseKey: res.ResponseKey, Payload: res.Payload}
}

// apply executes a cart command. The switch is exhaustive over the sealed
// Command variants; anything else is a programming error.
func (e *Engine) apply(ctx context.Context, sess *domain.Session, cmd domain.Command) {
	applied := true
	switch c := cmd.(type) {
	case domain.AddItemToCart:
		sess.Cart.AddItem(domain.NewCartItem(c.ItemID, c.Quantity, c.VariantID, c.Sides, c.Modifiers))
	case domain.ClearCart:
		sess.Cart.Clear()
	case domain.RemoveItemFromCart:
		if !sess.Cart.RemoveItem(c.CartItemID) {
			applied = false
			e.logger.Warn("cart line already gone", "session_id", sess.SessionID, "cart_item_id", c.CartItemID)
		}
	default:
		panic(fmt.Sprintf("engine: unknown command %T", cmd))
	}
	e.emitCommand(ctx, sess, cmd.Name(), applied)
}
