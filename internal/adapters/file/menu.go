package file

import (
	"context"

	"github.com/arushahmd/compass-voice/pkg/menu"
)

// MenuLoader implements ports.MenuLoader over a YAML or JSON menu file.
// The file is read on every call, so edits are picked up on the next load.
type MenuLoader struct {
	Path string
}

// NewMenuLoader creates a loader for the file at path.
func NewMenuLoader(path string) *MenuLoader {
	return &MenuLoader{Path: path}
}

// LoadMenu reads and validates the menu file.
func (l *MenuLoader) LoadMenu(ctx context.Context) (*menu.Menu, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return menu.LoadFile(l.Path)
}
