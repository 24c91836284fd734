package tests

import (
	"context"
	"testing"

	"github.com/arushahmd/compass-voice/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MenuLoaderContractTest is a reusable test suite that verifies if an adapter
// complies with ports.MenuLoader. wantItems lists item IDs the menu must hold.
func MenuLoaderContractTest(t *testing.T, loader ports.MenuLoader, restaurantID string, wantItems ...string) {
	t.Helper()

	// 1. Load (Success)
	t.Run("LoadMenu_Success", func(t *testing.T) {
		m, err := loader.LoadMenu(context.Background())
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, restaurantID, m.RestaurantID)

		ids := make(map[string]bool, len(m.Items))
		for _, item := range m.Items {
			ids[item.ItemID] = true
		}
		for _, id := range wantItems {
			assert.True(t, ids[id], "item %s missing from menu", id)
		}
	})

	// 2. Load twice yields equal menus
	t.Run("LoadMenu_Repeatable", func(t *testing.T) {
		a, err := loader.LoadMenu(context.Background())
		require.NoError(t, err)
		b, err := loader.LoadMenu(context.Background())
		require.NoError(t, err)
		assert.Equal(t, len(a.Items), len(b.Items))
	})

	// 3. Canceled context
	t.Run("LoadMenu_Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := loader.LoadMenu(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
