package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurnStart      EventType = "turn_start"
	EventIntentResolved EventType = "intent_resolved"
	EventRouteDenied    EventType = "route_denied"
	EventCommandApplied EventType = "command_applied"
	EventTurnEnd        EventType = "turn_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// TurnEvent brackets one call to the engine.
type TurnEvent struct {
	EventBase
	State       ConversationState `json:"state"`
	NextState   ConversationState `json:"next_state,omitempty"`
	Intent      Intent            `json:"intent,omitempty"`
	Handler     HandlerName       `json:"handler,omitempty"`
	ResponseKey string            `json:"response_key,omitempty"`
	Duration    time.Duration     `json:"duration,omitempty"`
}

// IntentEvent reports the classification stages of a turn.
type IntentEvent struct {
	EventBase
	State     ConversationState `json:"state"`
	Resolved  Intent            `json:"resolved"`
	Refined   Intent            `json:"refined"`
	Effective Intent            `json:"effective"`
	Flow      FlowAction        `json:"flow"`
	Query     string            `json:"query"`
}

// CommandEvent reports a cart mutation applied by the engine.
type CommandEvent struct {
	EventBase
	Command string `json:"command"`
	Applied bool   `json:"applied"`
}

// LifecycleHooks defines callbacks for engine observability. All are optional.
type LifecycleHooks struct {
	OnTurnStart      func(context.Context, *TurnEvent)
	OnIntentResolved func(context.Context, *IntentEvent)
	OnRouteDenied    func(context.Context, *TurnEvent)
	OnCommandApplied func(context.Context, *CommandEvent)
	OnTurnEnd        func(context.Context, *TurnEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTurnStart:      chain(h.OnTurnStart, other.OnTurnStart),
		OnIntentResolved: chain(h.OnIntentResolved, other.OnIntentResolved),
		OnRouteDenied:    chain(h.OnRouteDenied, other.OnRouteDenied),
		OnCommandApplied: chain(h.OnCommandApplied, other.OnCommandApplied),
		OnTurnEnd:        chain(h.OnTurnEnd, other.OnTurnEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
