package flow_test

import (
	"testing"

	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/flow"
	"github.com/stretchr/testify/assert"
)

func midFlow(text string) *domain.Context {
	c := domain.NewContext()
	c.BeginItem("taco_chicken", "Chicken Taco")
	c.LastUserText = text
	return &c
}

func TestPolicy_CancelOutsideIdle(t *testing.T) {
	p := flow.NewPolicy()

	d := p.Evaluate(domain.StateWaitingForSide, domain.IntentCancel, midFlow("cancel"))
	assert.Equal(t, domain.FlowCancel, d.Action)
	assert.Equal(t, flow.KeyConfirmCancel, d.ResponseKey)
	assert.Equal(t, "Chicken Taco", d.Payload.String("item_name"))

	d = p.Evaluate(domain.StateIdle, domain.IntentCancel, midFlow("cancel"))
	assert.Equal(t, domain.FlowPass, d.Action)
}

func TestPolicy_SlotInteractions(t *testing.T) {
	p := flow.NewPolicy()

	d := p.Evaluate(domain.StateWaitingForSide, domain.IntentAskMenuInfo, midFlow("show me options"))
	assert.Equal(t, domain.FlowPass, d.Action)
	assert.Equal(t, domain.SlotAskOptions, d.SlotInteraction)
	assert.Equal(t, domain.IntentUnknown, d.EffectiveIntent)

	d = p.Evaluate(domain.StateWaitingForModifier, domain.IntentDeny, midFlow("no thanks"))
	assert.Equal(t, domain.FlowPass, d.Action)
	assert.Equal(t, domain.SlotSkip, d.SlotInteraction)
	assert.Equal(t, domain.IntentDeny, d.EffectiveIntent)

	// Choice signals only apply to waiting states.
	d = p.Evaluate(domain.StateConfirmingOrder, domain.IntentDeny, midFlow("no"))
	assert.Equal(t, domain.SlotNone, d.SlotInteraction)
}

func TestPolicy_ConfirmDenyPass(t *testing.T) {
	p := flow.NewPolicy()
	for _, intent := range []domain.Intent{domain.IntentConfirm, domain.IntentDeny} {
		d := p.Evaluate(domain.StateWaitingForQuantity, intent, midFlow("sure"))
		assert.Equal(t, domain.FlowPass, d.Action)
		assert.Equal(t, intent, d.EffectiveIntent)
	}
}

func TestPolicy_RewriteClarification(t *testing.T) {
	p := flow.NewPolicy()
	for _, intent := range []domain.Intent{domain.IntentAskMenuInfo, domain.IntentShowMenu, domain.IntentAskPrice, domain.IntentUnknown} {
		d := p.Evaluate(domain.StateWaitingForSize, intent, midFlow("large"))
		assert.Equal(t, domain.FlowRewrite, d.Action, intent)
		assert.Equal(t, domain.IntentUnknown, d.EffectiveIntent)
	}

	d := p.Evaluate(domain.StateIdle, domain.IntentAskMenuInfo, midFlow("burgers"))
	assert.Equal(t, domain.FlowPass, d.Action)
	assert.Equal(t, domain.IntentAskMenuInfo, d.EffectiveIntent)
}

func TestPolicy_BlockGlobalMutations(t *testing.T) {
	p := flow.NewPolicy()

	d := p.Evaluate(domain.StateWaitingForSide, domain.IntentShowCart, midFlow("show my cart"))
	assert.Equal(t, domain.FlowBlock, d.Action)
	assert.Equal(t, flow.KeyFinishCurrentStep, d.ResponseKey)
	assert.Equal(t, "side", d.Payload.String("current_step"))
	assert.Equal(t, "WAITING_FOR_SIDE", d.Payload.String("state"))
	assert.Equal(t, "Chicken Taco", d.Payload.String("item_name"))

	d = p.Evaluate(domain.StateConfirmingOrder, domain.IntentClearCart, midFlow("clear my cart"))
	assert.Equal(t, domain.FlowPass, d.Action, "only waiting states are guarded")
}
