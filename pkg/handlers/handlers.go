// Package handlers implements the state-specific logic of a turn.
//
// Handlers never touch the cart directly. They read the session, update the
// conversation context of the item under construction and describe cart
// mutations as domain.Command values for the engine to apply.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arushahmd/compass-voice/internal/logging"
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/menu"
)

// ErrHandlerNotImplemented is returned by Dispatch for a name it does not serve.
var ErrHandlerNotImplemented = errors.New("handler not implemented")

const (
	// DefaultSuggestionLimit is how many choices a slot prompt suggests.
	DefaultSuggestionLimit = 3
	// DefaultRemoveThreshold is the minimum score for a cart line to match a remove request.
	DefaultRemoveThreshold = 2.5
	// DefaultConfirmBelow asks the user to confirm item matches scoring under it.
	DefaultConfirmBelow = 7.0
)

// Request is everything a handler sees of one turn.
type Request struct {
	// Intent is the effective intent after refinement and flow control.
	Intent domain.Intent
	// Query is the phase-aware normalized text.
	Query string
	// Slot tags how the raw text relates to the open slot.
	Slot domain.SlotInteraction
	// Session is read-only except for Session.Context.
	Session *domain.Session
}

func (r Request) context() *domain.Context {
	return &r.Session.Context
}

// Set holds every handler and their shared collaborators.
type Set struct {
	repo            *menu.Repository
	summary         *menu.SummaryBuilder
	logger          *slog.Logger
	suggestionLimit int
	removeThreshold float64
	confirmBelow    float64
}

// Option configures the Set.
type Option func(*Set)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Set) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSuggestionLimit sets how many choices slot prompts suggest.
func WithSuggestionLimit(k int) Option {
	return func(s *Set) {
		if k > 0 {
			s.suggestionLimit = k
		}
	}
}

// WithRemoveThreshold sets the score a cart line needs to match a remove request.
func WithRemoveThreshold(t float64) Option {
	return func(s *Set) {
		s.removeThreshold = t
	}
}

// WithConfirmBelow sets the item score under which an add is confirmed first.
// Zero disables item confirmation.
func WithConfirmBelow(score float64) Option {
	return func(s *Set) {
		s.confirmBelow = score
	}
}

// NewSet creates the handler set over a menu repository.
func NewSet(repo *menu.Repository, opts ...Option) *Set {
	s := &Set{
		repo:            repo,
		summary:         menu.NewSummaryBuilder(repo),
		logger:          logging.NewNop(),
		suggestionLimit: DefaultSuggestionLimit,
		removeThreshold: DefaultRemoveThreshold,
		confirmBelow:    DefaultConfirmBelow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch runs the named handler.
//
// Every domain.HandlerName has a case. A name outside the enum returns
// ErrHandlerNotImplemented, which the engine reports without changing state.
func (s *Set) Dispatch(name domain.HandlerName, req Request) (domain.HandlerResult, error) {
	switch name {
	case domain.HandlerAddItem:
		return s.addItem(req), nil
	case domain.HandlerConfirmingItem:
		return s.confirmingItem(req), nil
	case domain.HandlerSide:
		return s.side(req), nil
	case domain.HandlerModifier:
		return s.modifier(req), nil
	case domain.HandlerSize:
		return s.size(req), nil
	case domain.HandlerQuantity:
		return s.quantity(req), nil
	case domain.HandlerCart:
		return s.cart(req), nil
	case domain.HandlerStartOrder:
		return s.startOrder(req), nil
	case domain.HandlerConfirmOrder:
		return s.confirmOrder(req), nil
	case domain.HandlerPayment:
		return s.payment(req), nil
	case domain.HandlerRemoveItem:
		return s.removeItem(req), nil
	case domain.HandlerRemovingItem:
		return s.removingItem(req), nil
	case domain.HandlerCancellationConfirmation:
		return s.cancellationConfirmation(req), nil
	case domain.HandlerAskMenuInfo:
		return s.askMenuInfo(req), nil
	case domain.HandlerAskPrice:
		return s.askPrice(req), nil
	case domain.HandlerCancel:
		return cancelled(), nil
	case domain.HandlerErrorRecovery:
		return s.errorRecovery(req), nil
	}
	return domain.HandlerResult{}, fmt.Errorf("failed to dispatch %q: %w", name, ErrHandlerNotImplemented)
}

// Summary prices the cart of a session.
func (s *Set) Summary(cart domain.Cart) menu.Summary {
	return s.summary.Build(cart)
}

func result(state domain.ConversationState, key string) domain.HandlerResult {
	return domain.HandlerResult{NextState: state, ResponseKey: key}
}

func cancelled() domain.HandlerResult {
	return domain.HandlerResult{
		NextState:    domain.StateIdle,
		ResponseKey:  "action_cancelled",
		ResetContext: true,
	}
}

func contextMissing(c *domain.Context) domain.HandlerResult {
	return domain.HandlerResult{
		NextState:   domain.StateErrorRecovery,
		ResponseKey: "item_context_missing",
		Payload:     domain.Payload{"item_id": c.CurrentItemID},
	}
}
