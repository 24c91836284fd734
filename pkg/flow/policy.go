// Package flow implements the pre-routing guard that keeps slot filling on
// track: it can pass, rewrite, block or cancel an intent before the router
// sees it.
package flow

import (
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/nlu"
)

const (
	KeyConfirmCancel     = "flow_guard_confirm_cancel"
	KeyFinishCurrentStep = "flow_guard_finish_current_step"
)

// forbiddenMidFlow are global actions that would abandon an open slot.
var forbiddenMidFlow = domain.IntentSet{}

// clarification intents are answered by the slot handler itself mid-flow.
var clarification = domain.IntentSet{}

func init() {
	forbiddenMidFlow.Add(
		domain.IntentShowCart,
		domain.IntentShowTotal,
		domain.IntentAddItem,
		domain.IntentRemoveItem,
		domain.IntentStartOrder,
		domain.IntentClearCart,
		domain.IntentPaymentRequest,
	)
	clarification.Add(
		domain.IntentAskMenuInfo,
		domain.IntentShowMenu,
		domain.IntentAskPrice,
		domain.IntentUnknown,
	)
}

// Policy evaluates flow control. It is stateless.
type Policy struct{}

// NewPolicy creates a Policy.
func NewPolicy() *Policy {
	return &Policy{}
}

// Evaluate decides what happens to intent in state, in strict order:
//
//  1. CANCEL outside IDLE cancels the flow.
//  2. In a waiting state the raw user text is read as a choice signal;
//     ASK_OPTIONS passes as UNKNOWN and DENY as DENY, tagged with the slot
//     interaction so the slot handler can answer it.
//  3. CONFIRM and DENY always pass.
//  4. Clarification intents in a waiting state are rewritten to UNKNOWN.
//  5. Global mutations in a waiting state are blocked.
//  6. Everything else passes.
func (p *Policy) Evaluate(state domain.ConversationState, intent domain.Intent, c *domain.Context) domain.FlowDecision {
	if intent == domain.IntentCancel && state != domain.StateIdle {
		return domain.FlowDecision{
			Action:      domain.FlowCancel,
			ResponseKey: KeyConfirmCancel,
			Payload:     domain.Payload{"item_name": c.CurrentItemName},
		}
	}

	if state.IsWaiting() {
		switch nlu.ResolveChoiceSignal(c.LastUserText) {
		case nlu.SignalAskOptions:
			return domain.FlowDecision{Action: domain.FlowPass, EffectiveIntent: domain.IntentUnknown, SlotInteraction: domain.SlotAskOptions}
		case nlu.SignalDeny:
			return domain.FlowDecision{Action: domain.FlowPass, EffectiveIntent: domain.IntentDeny, SlotInteraction: domain.SlotSkip}
		}
	}

	if intent == domain.IntentConfirm || intent == domain.IntentDeny {
		return pass(intent)
	}

	if !state.IsWaiting() {
		return pass(intent)
	}

	if clarification.Has(intent) {
		return domain.FlowDecision{Action: domain.FlowRewrite, EffectiveIntent: domain.IntentUnknown}
	}

	if forbiddenMidFlow.Has(intent) {
		return domain.FlowDecision{
			Action:      domain.FlowBlock,
			ResponseKey: KeyFinishCurrentStep,
			Payload: domain.Payload{
				"state":        string(state),
				"current_step": state.Step(),
				"item_name":    c.CurrentItemName,
			},
		}
	}

	return pass(intent)
}

func pass(intent domain.Intent) domain.FlowDecision {
	return domain.FlowDecision{Action: domain.FlowPass, EffectiveIntent: intent}
}
