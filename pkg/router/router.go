// Package router decides whether an intent may act in the current
// conversation state and which handler serves it.
package router

import (
	"fmt"

	"github.com/arushahmd/compass-voice/pkg/domain"
)

// slotIntents are accepted by every slot-filling state. Free-text choices
// arrive as UNKNOWN and are matched inside the handler.
var slotIntents = []domain.Intent{
	domain.IntentConfirm,
	domain.IntentDeny,
	domain.IntentCancel,
	domain.IntentUnknown,
}

type entry struct {
	intents []domain.Intent
	handler domain.HandlerName
}

// defaultTable is the per-state allow-list consulted after the global overrides.
var defaultTable = map[domain.ConversationState][]entry{
	domain.StateIdle: {
		{[]domain.Intent{domain.IntentAskMenuInfo, domain.IntentShowMenu}, domain.HandlerAskMenuInfo},
		{[]domain.Intent{domain.IntentAskPrice}, domain.HandlerAskPrice},
		{[]domain.Intent{domain.IntentRemoveItem}, domain.HandlerRemoveItem},
	},
	domain.StateWaitingForSide:     {{slotIntents, domain.HandlerSide}},
	domain.StateWaitingForModifier: {{slotIntents, domain.HandlerModifier}},
	domain.StateWaitingForSize:     {{slotIntents, domain.HandlerSize}},
	domain.StateWaitingForQuantity: {{slotIntents, domain.HandlerQuantity}},
	domain.StateConfirmingItem: {
		{[]domain.Intent{domain.IntentConfirm, domain.IntentDeny, domain.IntentCancel, domain.IntentUnknown}, domain.HandlerConfirmingItem},
	},
	domain.StateRemovingItem: {
		{[]domain.Intent{domain.IntentConfirm, domain.IntentDeny, domain.IntentCancel}, domain.HandlerRemovingItem},
	},
	domain.StateConfirmingOrder: {
		{[]domain.Intent{domain.IntentConfirm, domain.IntentDeny, domain.IntentCancel}, domain.HandlerConfirmOrder},
	},
	domain.StateCancellationConfirmation: {
		{[]domain.Intent{domain.IntentConfirm, domain.IntentDeny}, domain.HandlerCancellationConfirmation},
	},
	domain.StateErrorRecovery: {
		{[]domain.Intent{domain.IntentConfirm, domain.IntentCancel, domain.IntentUnknown}, domain.HandlerErrorRecovery},
	},
}

// Router is the table-driven state router. It is immutable after creation.
type Router struct {
	table map[domain.ConversationState]map[domain.Intent]domain.HandlerName
}

// New builds a Router from the default allow-list.
func New() *Router {
	r := &Router{table: make(map[domain.ConversationState]map[domain.Intent]domain.HandlerName, len(defaultTable))}
	for state, entries := range defaultTable {
		row := make(map[domain.Intent]domain.HandlerName)
		for _, e := range entries {
			for _, intent := range e.intents {
				row[intent] = e.handler
			}
		}
		r.table[state] = row
	}
	return r
}

// Allowed reports the intents the allow-list table accepts in state, ignoring
// global overrides.
func (r *Router) Allowed(state domain.ConversationState) []domain.Intent {
	var out []domain.Intent
	for _, intent := range domain.Intents {
		if _, ok := r.table[state][intent]; ok {
			out = append(out, intent)
		}
	}
	return out
}

// Route returns the verdict for (state, intent).
//
// Global overrides are evaluated before the table: cart overlays (denied while
// waiting for payment), CLEAR_CART (IDLE or CONFIRMING_ORDER only), ADD_ITEM
// from IDLE, END_ADDING and START_ORDER from IDLE, and the payment state which
// takes every intent. CANCEL from any non-IDLE state not covered by the table
// escapes to the cancel handler.
func (r *Router) Route(state domain.ConversationState, intent domain.Intent) domain.RouteResult {
	switch intent {
	case domain.IntentShowCart, domain.IntentShowTotal:
		if state == domain.StateWaitingForPayment {
			return deny(state, intent, "cart is locked while waiting for payment")
		}
		return allow(domain.HandlerCart)
	case domain.IntentClearCart:
		if state == domain.StateIdle || state == domain.StateConfirmingOrder {
			return allow(domain.HandlerCart)
		}
		return deny(state, intent, "cart can only be cleared when idle or confirming the order")
	}

	if state == domain.StateIdle {
		switch intent {
		case domain.IntentAddItem:
			return allow(domain.HandlerAddItem)
		case domain.IntentEndAdding, domain.IntentStartOrder:
			return allow(domain.HandlerStartOrder)
		}
	}

	if state == domain.StateWaitingForPayment {
		return allow(domain.HandlerPayment)
	}

	if handler, ok := r.table[state][intent]; ok {
		return allow(handler)
	}

	if intent == domain.IntentCancel && state != domain.StateIdle {
		return allow(domain.HandlerCancel)
	}

	return deny(state, intent, "not in allow-list")
}

func allow(h domain.HandlerName) domain.RouteResult {
	return domain.RouteResult{Allowed: true, Handler: h}
}

func deny(state domain.ConversationState, intent domain.Intent, why string) domain.RouteResult {
	return domain.RouteResult{Reason: fmt.Sprintf("%s not allowed in %s: %s", intent, state, why)}
}
