package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/arushahmd/compass-voice/internal/testutils"
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/engine"
	"github.com/arushahmd/compass-voice/pkg/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...engine.Option) *engine.Engine {
	t.Helper()
	return engine.New(testutils.MenuRepository(t), opts...)
}

// say runs a turn and fails the test on error.
func say(t *testing.T, e *engine.Engine, sess *domain.Session, text string) domain.TurnOutput {
	t.Helper()
	out, err := e.ProcessTurn(context.Background(), sess, text)
	require.NoError(t, err, "turn %q", text)
	return out
}

func TestProcessTurn_AddItemScenarios(t *testing.T) {
	e := newEngine(t)
	sess := domain.NewSession("s1", "demo")

	// A: an item with a required side opens the side step.
	out := say(t, e, sess, "chicken taco")
	assert.Equal(t, "ask_for_side", out.ResponseKey)
	assert.Equal(t, domain.StateWaitingForSide, sess.State)

	// B: asking for options leaves state and index alone.
	out = say(t, e, sess, "what are my options")
	assert.Equal(t, "repeat_side_options", out.ResponseKey)
	assert.Equal(t, domain.StateWaitingForSide, sess.State)
	assert.Equal(t, 0, sess.Context.CurrentSideGroupIndex)

	// C: a matched side is committed and the flow reaches quantity.
	out = say(t, e, sess, "fries")
	assert.Equal(t, "ask_for_quantity", out.ResponseKey)
	assert.Equal(t, domain.StateWaitingForQuantity, sess.State)
	assert.Equal(t, []string{"fries"}, sess.Context.SelectedSideGroups["taco_side"])
	assert.Equal(t, 1, sess.Context.CurrentSideGroupIndex)

	// D: a quantity adds one cart line and resets the context.
	out = say(t, e, sess, "two")
	assert.Equal(t, "item_added_successfully", out.ResponseKey)
	assert.Equal(t, domain.StateIdle, sess.State)
	require.Equal(t, 1, sess.Cart.Len())
	line := sess.Cart.Items()[0]
	assert.Equal(t, "taco_chicken", line.ItemID)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, map[string][]string{"taco_side": {"fries"}}, line.Sides)
	assert.True(t, sess.Context.IsZero())
	assert.Equal(t, 4, sess.TurnCount)
}

func TestProcessTurn_VagueQuantityNeverAdds(t *testing.T) {
	e := newEngine(t)
	sess := domain.NewSession("s1", "demo")
	say(t, e, sess, "chocolate brownie")
	require.Equal(t, domain.StateWaitingForQuantity, sess.State)

	out := say(t, e, sess, "a few")
	assert.Equal(t, "clarify_exact_quantity", out.ResponseKey)
	assert.True(t, sess.Cart.IsEmpty())
	assert.Equal(t, domain.StateWaitingForQuantity, sess.State)
}

// Scenario: clearing the cart while confirming the order needs a second yes.
func TestProcessTurn_ClearCartWhileConfirming(t *testing.T) {
	e := newEngine(t)
	sess := domain.NewSession("s1", "demo")
	sess.State = domain.StateConfirmingOrder
	sess.Cart.AddItem(domain.NewCartItem("brownie", 1, "", nil, nil))

	out := say(t, e, sess, "clear my cart")
	assert.Equal(t, "confirm_clear_cart", out.ResponseKey)
	assert.Equal(t, domain.StateCancellationConfirmation, sess.State)
	assert.False(t, sess.Cart.IsEmpty())

	out = say(t, e, sess, "yes")
	assert.Equal(t, "cart_cleared", out.ResponseKey)
	assert.Equal(t, domain.StateIdle, sess.State)
	assert.True(t, sess.Cart.IsEmpty())
}

// Scenario: the cart is not shown while waiting for payment.
func TestProcessTurn_NoCartDuringPayment(t *testing.T) {
	e := newEngine(t)
	sess := domain.NewSession("s1", "demo")
	sess.State = domain.StateWaitingForPayment
	sess.Cart.AddItem(domain.NewCartItem("brownie", 1, "", nil, nil))

	out := say(t, e, sess, "show my cart")
	assert.NotEqual(t, "show_cart", out.ResponseKey)
	assert.Equal(t, "waiting_for_payment", out.ResponseKey)
	assert.Equal(t, domain.StateWaitingForPayment, sess.State)
}

func TestProcessTurn_CheckoutToPayment(t *testing.T) {
	e := newEngine(t)
	sess := domain.NewSession("s1", "demo")
	sess.Cart.AddItem(domain.NewCartItem("brownie", 2, "", nil, nil))

	out := say(t, e, sess, "i'm done")
	assert.Equal(t, "confirm_order_summary", out.ResponseKey)
	assert.Equal(t, "$9.98", out.Payload.String("total"))

	out = say(t, e, sess, "yes")
	assert.Equal(t, "payment_link_sent", out.ResponseKey)
	assert.Equal(t, domain.StateWaitingForPayment, sess.State)

	out = say(t, e, sess, "I've paid")
	assert.Equal(t, "order_completed", out.ResponseKey)
	assert.Equal(t, domain.StateIdle, sess.State)
	assert.True(t, sess.Cart.IsEmpty())
}

func TestProcessTurn_CancelResetsContext(t *testing.T) {
	waiting := []domain.ConversationState{
		domain.StateWaitingForSide,
		domain.StateWaitingForModifier,
		domain.StateWaitingForSize,
		domain.StateWaitingForQuantity,
		domain.StateConfirmingOrder,
		domain.StateRemovingItem,
	}
	e := newEngine(t)
	for _, state := range waiting {
		t.Run(string(state), func(t *testing.T) {
			sess := domain.NewSession("s1", "demo")
			sess.State = state
			sess.Context.BeginItem("taco_chicken", "Chicken Taco")
			sess.Context.CurrentSideGroupIndex = 1

			out := say(t, e, sess, "cancel")

			assert.Equal(t, engine.KeyActionCancelled, out.ResponseKey)
			assert.Equal(t, domain.StateIdle, sess.State)
			assert.True(t, sess.Context.IsZero())
			assert.Zero(t, sess.Context.CurrentSideGroupIndex)
		})
	}
}

func TestProcessTurn_BlocksGlobalActionsMidFlow(t *testing.T) {
	e := newEngine(t)
	sess := domain.NewSession("s1", "demo")
	say(t, e, sess, "chicken taco")

	out := say(t, e, sess, "show my cart")
	assert.Equal(t, flow.KeyFinishCurrentStep, out.ResponseKey)
	assert.Equal(t, "side", out.Payload.String("current_step"))
	assert.Equal(t, domain.StateWaitingForSide, sess.State)
	assert.Equal(t, "taco_chicken", sess.Context.CurrentItemID)
}

func TestProcessTurn_IntentNotAllowed(t *testing.T) {
	var denied int
	e := newEngine(t, engine.WithHooks(domain.LifecycleHooks{
		OnRouteDenied: func(context.Context, *domain.TurnEvent) { denied++ },
	}))
	sess := domain.NewSession("s1", "demo")

	out := say(t, e, sess, "yes")
	assert.Equal(t, engine.KeyIntentNotAllowed, out.ResponseKey)
	assert.Equal(t, "IDLE", out.Payload.String("state"))
	assert.Equal(t, "CONFIRM", out.Payload.String("intent"))
	assert.Equal(t, domain.StateIdle, sess.State)
	assert.Equal(t, 1, denied)
}

func TestProcessTurn_RemoveFlow(t *testing.T) {
	e := newEngine(t)
	sess := domain.NewSession("s1", "demo")
	sess.Cart.AddItem(domain.NewCartItem("burger_classic", 1, "", nil, nil))
	sess.Cart.AddItem(domain.NewCartItem("brownie", 1, "", nil, nil))

	out := say(t, e, sess, "remove the classic burger")
	require.Equal(t, "confirm_remove_item", out.ResponseKey)
	assert.Equal(t, domain.StateRemovingItem, sess.State)

	out = say(t, e, sess, "yes")
	assert.Equal(t, "item_removed_successfully", out.ResponseKey)
	require.Equal(t, 1, sess.Cart.Len())
	assert.Equal(t, "brownie", sess.Cart.Items()[0].ItemID)
}

func TestProcessTurn_MenuQuestions(t *testing.T) {
	e := newEngine(t)
	sess := domain.NewSession("s1", "demo")

	out := say(t, e, sess, "which burgers do you have")
	assert.Equal(t, "show_category", out.ResponseKey)
	assert.Equal(t, []string{"Classic Burger", "Veggie Burger"}, out.Payload.Strings("items"))

	out = say(t, e, sess, "how much is the classic burger")
	assert.Equal(t, "show_item_price", out.ResponseKey)
	assert.Equal(t, []string{"$10.99"}, out.Payload.Strings("prices"))

	out = say(t, e, sess, "burgers")
	assert.Equal(t, "show_category", out.ResponseKey, "a bare category is a question, not an order")
	assert.Equal(t, domain.StateIdle, sess.State)
	assert.True(t, sess.Cart.IsEmpty())
}

func TestProcessTurn_Hooks(t *testing.T) {
	var events []domain.EventType
	record := func(typ domain.EventType) { events = append(events, typ) }
	var applied []string

	e := newEngine(t, engine.WithHooks(domain.LifecycleHooks{
		OnTurnStart:      func(_ context.Context, ev *domain.TurnEvent) { record(ev.Type) },
		OnIntentResolved: func(_ context.Context, ev *domain.IntentEvent) { record(ev.Type) },
		OnCommandApplied: func(_ context.Context, ev *domain.CommandEvent) {
			record(ev.Type)
			applied = append(applied, ev.Command)
		},
		OnTurnEnd: func(_ context.Context, ev *domain.TurnEvent) {
			record(ev.Type)
			assert.Equal(t, domain.HandlerQuantity, ev.Handler)
			assert.Equal(t, "item_added_successfully", ev.ResponseKey)
		},
	}))

	sess := domain.NewSession("s1", "demo")
	sess.State = domain.StateWaitingForQuantity
	sess.Context.BeginItem("brownie", "Chocolate Brownie")

	say(t, e, sess, "3")

	assert.Equal(t, []domain.EventType{
		domain.EventTurnStart,
		domain.EventIntentResolved,
		domain.EventCommandApplied,
		domain.EventTurnEnd,
	}, events)
	assert.Equal(t, []string{"ADD_ITEM_TO_CART"}, applied)
}

func TestProcessTurn_RejectsInput(t *testing.T) {
	e := newEngine(t, engine.WithMaxInputSize(16))
	sess := domain.NewSession("s1", "demo")

	_, err := e.ProcessTurn(context.Background(), sess, strings.Repeat("a", 17))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.ProcessTurn(context.Background(), sess, "bad \xff")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Zero(t, sess.TurnCount, "rejected turns leave the session untouched")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.ProcessTurn(ctx, sess, "chicken taco")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessTurn_MissingItemRecovers(t *testing.T) {
	e := newEngine(t)
	sess := domain.NewSession("s1", "demo")
	sess.State = domain.StateWaitingForSide
	sess.Context.BeginItem("discontinued", "Old Special")

	out := say(t, e, sess, "fries")
	assert.Equal(t, "item_context_missing", out.ResponseKey)
	assert.Equal(t, domain.StateErrorRecovery, sess.State)

	out = say(t, e, sess, "okay")
	assert.Equal(t, "error_recovered", out.ResponseKey)
	assert.Equal(t, domain.StateIdle, sess.State)
	assert.True(t, sess.Context.IsZero())
}
