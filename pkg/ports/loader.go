package ports

import (
	"context"

	"github.com/arushahmd/compass-voice/pkg/menu"
)

// MenuLoader defines how the engine obtains a restaurant menu.
// This keeps the menu source (file, memory) decoupled from the engine.
type MenuLoader interface {
	// LoadMenu returns a validated menu.
	LoadMenu(ctx context.Context) (*menu.Menu, error)
}
