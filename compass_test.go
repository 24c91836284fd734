package compass_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arushahmd/compass-voice"
	"github.com/arushahmd/compass-voice/internal/testutils"
	"github.com/arushahmd/compass-voice/pkg/adapters/memory"
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/menu"
	"github.com/arushahmd/compass-voice/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgent(t *testing.T, opts ...compass.Option) *compass.Agent {
	t.Helper()
	a, err := compass.New(context.Background(), memory.NewMenuLoader([]byte(testutils.MenuYAML), ".yaml"), opts...)
	require.NoError(t, err)
	return a
}

func TestAgent_OrderConversation(t *testing.T) {
	a := newAgent(t)
	ctx := context.Background()

	steps := []struct {
		text  string
		key   string
		state domain.ConversationState
	}{
		{"chicken taco", "ask_for_side", domain.StateWaitingForSide},
		{"fries", "ask_for_quantity", domain.StateWaitingForQuantity},
		{"two", "item_added_successfully", domain.StateIdle},
		{"that's all", "confirm_order_summary", domain.StateConfirmingOrder},
		{"yes", "payment_link_sent", domain.StateWaitingForPayment},
		{"I've paid", "order_completed", domain.StateIdle},
	}

	for i, step := range steps {
		reply, err := a.Handle(ctx, "caller-1", step.text)
		require.NoError(t, err, step.text)
		assert.Equal(t, step.key, reply.ResponseKey, step.text)
		assert.Equal(t, step.state, reply.State, step.text)
		assert.Equal(t, i+1, reply.TurnCount)
		assert.NotEmpty(t, reply.Text)
	}

	sess, err := a.Session(ctx, "caller-1")
	require.NoError(t, err)
	assert.True(t, sess.Cart.IsEmpty())
	assert.Equal(t, "demo", sess.RestaurantID)
}

func TestAgent_ReplyCarriesDiff(t *testing.T) {
	a := newAgent(t)
	ctx := context.Background()

	reply, err := a.Handle(ctx, "caller-1", "chocolate brownie")
	require.NoError(t, err)
	require.NotNil(t, reply.Diff)
	require.NotNil(t, reply.Diff.State)
	assert.Equal(t, domain.StateWaitingForQuantity, *reply.Diff.State)
	assert.Equal(t, "brownie", reply.Diff.Context["current_item_id"])

	reply, err = a.Handle(ctx, "caller-1", "3")
	require.NoError(t, err)
	require.NotNil(t, reply.Diff)
	require.NotNil(t, reply.Diff.Cart)
	require.Len(t, reply.Diff.Cart.Added, 1)
	assert.Equal(t, 3, reply.Diff.Cart.Added[0].Quantity)
	assert.Equal(t, "Added 3 Chocolate Brownie to your cart. Anything else?", reply.Text)
}

func TestAgent_Cart(t *testing.T) {
	a := newAgent(t)
	ctx := context.Background()

	for _, text := range []string{"chocolate brownie", "2"} {
		_, err := a.Handle(ctx, "caller-1", text)
		require.NoError(t, err)
	}

	summary, err := a.Cart(ctx, "caller-1")
	require.NoError(t, err)
	assert.Equal(t, "$9.98", summary.Total)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Chocolate Brownie", summary.Items[0].Name)

	_, err = a.Cart(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAgent_RejectsInput(t *testing.T) {
	store := memory.NewStore()
	a := newAgent(t, compass.WithStore(store))
	ctx := context.Background()

	_, err := a.Handle(ctx, " ", "hello")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = a.Handle(ctx, "caller-1", "bad \xff")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "rejected turns persist nothing")
}

func TestAgent_ResetAndList(t *testing.T) {
	a := newAgent(t)
	ctx := context.Background()

	_, err := a.Handle(ctx, "a", "show me the menu")
	require.NoError(t, err)
	_, err = a.Handle(ctx, "b", "show me the menu")
	require.NoError(t, err)

	ids, err := a.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, a.Reset(ctx, "a"))
	_, err = a.Session(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAgent_Options(t *testing.T) {
	var mu sync.Mutex
	var turns int
	var observed []compass.Reply

	a := newAgent(t,
		compass.WithRestaurantID("downtown"),
		compass.WithMenuOptions(menu.WithItemThreshold(6.5)),
		compass.WithLifecycleHooks(domain.LifecycleHooks{
			OnTurnEnd: func(context.Context, *domain.TurnEvent) {
				mu.Lock()
				turns++
				mu.Unlock()
			},
		}),
		compass.WithReplyObserver(func(_ context.Context, r compass.Reply) {
			observed = append(observed, r)
		}),
		compass.WithTurnTimeout(time.Second),
	)
	assert.Equal(t, "downtown", a.RestaurantID())
	assert.NotNil(t, a.Menu())

	_, err := a.Handle(context.Background(), "caller-1", "burgers")
	require.NoError(t, err)

	assert.Equal(t, 1, turns)
	require.Len(t, observed, 1)
	assert.Equal(t, "show_category", observed[0].ResponseKey)

	sess, err := a.Session(context.Background(), "caller-1")
	require.NoError(t, err)
	assert.Equal(t, "downtown", sess.RestaurantID)
}

type failingLoader struct{}

func (failingLoader) LoadMenu(context.Context) (*menu.Menu, error) {
	return nil, errors.New("disk on fire")
}

var _ ports.MenuLoader = failingLoader{}

func TestNew_Errors(t *testing.T) {
	_, err := compass.New(context.Background(), nil)
	assert.Error(t, err)

	_, err = compass.New(context.Background(), failingLoader{})
	assert.ErrorContains(t, err, "disk on fire")
}

func TestAgent_ConcurrentSessions(t *testing.T) {
	a := newAgent(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Handle(ctx, "shared", "show my cart")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	sess, err := a.Session(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, 8, sess.TurnCount)
}
