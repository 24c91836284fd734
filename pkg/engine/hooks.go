package engine

import (
	"context"
	"time"

	"github.com/arushahmd/compass-voice/pkg/domain"
)

func base(t domain.EventType, sess *domain.Session) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, SessionID: sess.SessionID}
}

func (e *Engine) emitTurnStart(ctx context.Context, sess *domain.Session) {
	if e.hooks.OnTurnStart == nil {
		return
	}
	e.hooks.OnTurnStart(ctx, &domain.TurnEvent{
		EventBase: base(domain.EventTurnStart, sess),
		State:     sess.State,
	})
}

func (e *Engine) emitIntent(ctx context.Context, sess *domain.Session, resolved, refined, effective domain.Intent, action domain.FlowAction, query string) {
	if e.hooks.OnIntentResolved == nil {
		return
	}
	e.hooks.OnIntentResolved(ctx, &domain.IntentEvent{
		EventBase: base(domain.EventIntentResolved, sess),
		State:     sess.State,
		Resolved:  resolved,
		Refined:   refined,
		Effective: effective,
		Flow:      action,
		Query:     query,
	})
}

func (e *Engine) emitRouteDenied(ctx context.Context, sess *domain.Session, t *turn) {
	if e.hooks.OnRouteDenied == nil {
		return
	}
	e.hooks.OnRouteDenied(ctx, &domain.TurnEvent{
		EventBase: base(domain.EventRouteDenied, sess),
		State:     t.state,
		Intent:    t.intent,
	})
}

func (e *Engine) emitCommand(ctx context.Context, sess *domain.Session, name string, applied bool) {
	if e.hooks.OnCommandApplied == nil {
		return
	}
	e.hooks.OnCommandApplied(ctx, &domain.CommandEvent{
		EventBase: base(domain.EventCommandApplied, sess),
		Command:   name,
		Applied:   applied,
	})
}

func (e *Engine) emitTurnEnd(ctx context.Context, sess *domain.Session, t *turn, key string) {
	if e.hooks.OnTurnEnd == nil {
		return
	}
	e.hooks.OnTurnEnd(ctx, &domain.TurnEvent{
		EventBase:   base(domain.EventTurnEnd, sess),
		State:       t.state,
		NextState:   sess.State,
		Intent:      t.intent,
		Handler:     t.handler,
		ResponseKey: key,
		Duration:    time.Since(t.start),
	})
}
