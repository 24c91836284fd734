package ports

import (
	"context"
	"testing"
	"time"

	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Build a session mid-order
		sess := domain.NewSession(sessionID, "demo")
		sess.State = domain.StateWaitingForSide
		sess.Context.BeginItem("taco_chicken", "Chicken Taco")
		sess.Context.SelectSides("taco_side", "fries")
		sess.Context.CurrentSideGroupIndex = 1
		sess.Context.SkippedModifierGroups = []string{"extras"}
		sess.Cart.AddItem(domain.NewCartItem("brownie", 2, "", nil, nil))
		sess.TurnCount = 3

		// 2. Save
		err := store.Save(ctx, sessionID, sess)
		require.NoError(t, err, "Save should not return error")

		// 3. Load
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.SessionID)
		assert.Equal(t, domain.StateWaitingForSide, loaded.State)
		assert.Equal(t, "taco_chicken", loaded.Context.CurrentItemID)
		assert.Equal(t, []string{"fries"}, loaded.Context.SelectedSideGroups["taco_side"])
		assert.Equal(t, 1, loaded.Context.CurrentSideGroupIndex)
		assert.Equal(t, []string{"extras"}, loaded.Context.SkippedModifierGroups)
		assert.Equal(t, 3, loaded.TurnCount)
		require.Equal(t, 1, loaded.Cart.Len())
		assert.Equal(t, sess.Cart.Items()[0].CartItemID, loaded.Cart.Items()[0].CartItemID)
		assert.NotNil(t, loaded.Context.SelectedModifierGroups, "selection maps survive a round trip")
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Cart.Clear()
		loaded.Context.SelectSides("taco_side", "salad")

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, again.Cart.Len(), "mutating a loaded session must not reach the store")
		assert.Equal(t, []string{"fries"}, again.Context.SelectedSideGroups["taco_side"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSession(sessionID, "demo"))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewSession(id1, "demo")))
		require.NoError(t, store.Save(ctx, id2, domain.NewSession(id2, "demo")))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
