package router_test

import (
	"slices"
	"testing"

	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/router"
	"github.com/stretchr/testify/assert"
)

func TestRoute_Overrides(t *testing.T) {
	r := router.New()

	tests := []struct {
		name    string
		state   domain.ConversationState
		intent  domain.Intent
		allowed bool
		handler domain.HandlerName
	}{
		{"cart overlay mid flow", domain.StateWaitingForSide, domain.IntentShowCart, true, domain.HandlerCart},
		{"total while confirming", domain.StateConfirmingOrder, domain.IntentShowTotal, true, domain.HandlerCart},
		{"cart locked for payment", domain.StateWaitingForPayment, domain.IntentShowCart, false, ""},
		{"clear from idle", domain.StateIdle, domain.IntentClearCart, true, domain.HandlerCart},
		{"clear while confirming", domain.StateConfirmingOrder, domain.IntentClearCart, true, domain.HandlerCart},
		{"clear mid flow", domain.StateWaitingForQuantity, domain.IntentClearCart, false, ""},
		{"add from idle", domain.StateIdle, domain.IntentAddItem, true, domain.HandlerAddItem},
		{"add mid flow", domain.StateWaitingForSide, domain.IntentAddItem, false, ""},
		{"end adding", domain.StateIdle, domain.IntentEndAdding, true, domain.HandlerStartOrder},
		{"start order", domain.StateIdle, domain.IntentStartOrder, true, domain.HandlerStartOrder},
		{"payment takes unknown", domain.StateWaitingForPayment, domain.IntentUnknown, true, domain.HandlerPayment},
		{"payment takes done", domain.StateWaitingForPayment, domain.IntentPaymentDone, true, domain.HandlerPayment},
		{"free text choice", domain.StateWaitingForSide, domain.IntentUnknown, true, domain.HandlerSide},
		{"size deny", domain.StateWaitingForSize, domain.IntentDeny, true, domain.HandlerSize},
		{"quantity confirm", domain.StateWaitingForQuantity, domain.IntentConfirm, true, domain.HandlerQuantity},
		{"cancel via table", domain.StateRemovingItem, domain.IntentCancel, true, domain.HandlerRemovingItem},
		{"global cancel", domain.StateCancellationConfirmation, domain.IntentCancel, true, domain.HandlerCancel},
		{"no cancel when idle", domain.StateIdle, domain.IntentCancel, false, ""},
		{"menu info when idle", domain.StateIdle, domain.IntentAskMenuInfo, true, domain.HandlerAskMenuInfo},
		{"remove when idle", domain.StateIdle, domain.IntentRemoveItem, true, domain.HandlerRemoveItem},
		{"confirm when idle", domain.StateIdle, domain.IntentConfirm, false, ""},
		{"recover", domain.StateErrorRecovery, domain.IntentUnknown, true, domain.HandlerErrorRecovery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Route(tt.state, tt.intent)
			assert.Equal(t, tt.allowed, res.Allowed, res.Reason)
			assert.Equal(t, tt.handler, res.Handler)
			if !tt.allowed {
				assert.NotEmpty(t, res.Reason)
			}
		})
	}
}

// Scenario: the cart cannot be shown while waiting for payment.
func TestRoute_ShowCartDuringPayment(t *testing.T) {
	res := router.New().Route(domain.StateWaitingForPayment, domain.IntentShowCart)
	assert.False(t, res.Allowed)
}

// Every (state, intent) pair outside the allow-list and the global overrides
// is denied.
func TestRoute_DeniesOutsideAllowList(t *testing.T) {
	r := router.New()

	overridden := func(state domain.ConversationState, intent domain.Intent) bool {
		switch {
		case intent == domain.IntentShowCart || intent == domain.IntentShowTotal:
			return state != domain.StateWaitingForPayment
		case intent == domain.IntentClearCart:
			return state == domain.StateIdle || state == domain.StateConfirmingOrder
		case state == domain.StateIdle && (intent == domain.IntentAddItem || intent == domain.IntentEndAdding || intent == domain.IntentStartOrder):
			return true
		case state == domain.StateWaitingForPayment:
			return true
		case intent == domain.IntentCancel && state != domain.StateIdle:
			return true
		}
		return false
	}

	for _, state := range domain.States {
		allowed := r.Allowed(state)
		for _, intent := range domain.Intents {
			res := r.Route(state, intent)
			if slices.Contains(allowed, intent) || overridden(state, intent) {
				assert.True(t, res.Allowed, "%s/%s", state, intent)
				continue
			}
			assert.False(t, res.Allowed, "%s/%s", state, intent)
		}
	}
}

func TestRouter_Allowed(t *testing.T) {
	r := router.New()
	assert.ElementsMatch(t,
		[]domain.Intent{domain.IntentConfirm, domain.IntentDeny, domain.IntentCancel, domain.IntentUnknown},
		r.Allowed(domain.StateWaitingForModifier))
	assert.Empty(t, r.Allowed(domain.StateWaitingForPayment))
}
