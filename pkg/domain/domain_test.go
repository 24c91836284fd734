package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_Reset(t *testing.T) {
	c := NewContext()
	c.BeginItem("taco", "Chicken Taco")
	c.CurrentSideGroupIndex = 2
	c.CurrentModifierGroupIndex = 1
	c.SelectSides("g1", "fries")
	c.SelectModifiers("m1", "cheese")
	c.Quantity = 3
	c.LastUserText = "two please"

	c.Reset()

	assert.True(t, c.IsZero())
	assert.Equal(t, 0, c.CurrentSideGroupIndex)
	assert.Equal(t, 0, c.CurrentModifierGroupIndex)
	assert.Empty(t, c.SelectedSideGroups)
	assert.NotNil(t, c.SelectedSideGroups)
	assert.Equal(t, "two please", c.LastUserText, "raw text belongs to the turn, not the task")
}

func TestContext_CloneIsDeep(t *testing.T) {
	c := NewContext()
	c.SelectSides("g1", "fries")
	c.AwaitingConfirmationFor = &Confirmation{Type: ConfirmRemoveItem, ItemID: "x"}

	cp := c.Clone()
	cp.SelectSides("g1", "salad")
	cp.AwaitingConfirmationFor.ItemID = "y"

	assert.Equal(t, []string{"fries"}, c.SelectedSideGroups["g1"])
	assert.Equal(t, "x", c.AwaitingConfirmationFor.ItemID)
}

func TestCart_Operations(t *testing.T) {
	var cart Cart
	assert.True(t, cart.IsEmpty())

	sides := map[string][]string{"g1": {"fries"}}
	a := NewCartItem("taco", 2, "", sides, nil)
	b := NewCartItem("burger", 1, "large", nil, nil)
	require.NotEqual(t, a.CartItemID, b.CartItemID)

	sides["g1"][0] = "mutated"
	assert.Equal(t, "fries", a.Sides["g1"][0], "cart item must not alias caller maps")

	cart.AddItem(a)
	cart.AddItem(b)
	assert.Equal(t, 2, cart.Len())

	got, ok := cart.Get(b.CartItemID)
	require.True(t, ok)
	assert.Equal(t, "large", got.VariantID)

	assert.True(t, cart.RemoveItem(a.CartItemID))
	assert.False(t, cart.RemoveItem(a.CartItemID))
	assert.Equal(t, 1, cart.Len())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
}

func TestState_Step(t *testing.T) {
	assert.Equal(t, "side", StateWaitingForSide.Step())
	assert.Equal(t, "quantity", StateWaitingForQuantity.Step())
	assert.Equal(t, "", StateConfirmingOrder.Step())
	assert.True(t, StateWaitingForSize.IsWaiting())
	assert.False(t, StateIdle.IsWaiting())
}

func TestDiff(t *testing.T) {
	t.Run("Initial Load", func(t *testing.T) {
		s := NewSession("sess-1", "demo")
		d := Diff(nil, s)
		require.NotNil(t, d)
		require.NotNil(t, d.State)
		assert.Equal(t, StateIdle, *d.State)
	})

	t.Run("No Changes", func(t *testing.T) {
		s := NewSession("sess-1", "demo")
		assert.Nil(t, Diff(s.Clone(), s))
	})

	t.Run("State, Context and Cart", func(t *testing.T) {
		old := NewSession("sess-1", "demo")
		old.Cart.AddItem(NewCartItem("soda", 1, "", nil, nil))

		next := old.Clone()
		next.State = StateWaitingForSide
		next.Context.BeginItem("taco", "Chicken Taco")
		removed := next.Cart.Lines[0].CartItemID
		next.Cart.Clear()
		next.Cart.AddItem(NewCartItem("taco", 2, "", nil, nil))

		d := Diff(old, next)
		require.NotNil(t, d)
		assert.Equal(t, StateWaitingForSide, *d.State)
		assert.Equal(t, "taco", d.Context["current_item_id"])
		require.NotNil(t, d.Cart)
		assert.Len(t, d.Cart.Added, 1)
		assert.Equal(t, []string{removed}, d.Cart.Removed)
	})

	t.Run("Cleared Context Field", func(t *testing.T) {
		old := NewSession("sess-1", "demo")
		old.Context.BeginItem("taco", "Chicken Taco")
		next := old.Clone()
		next.Context.Reset()

		d := Diff(old, next)
		require.NotNil(t, d)
		assert.Contains(t, d.Context, "current_item_id")
		assert.Nil(t, d.Context["current_item_id"])
	})
}
