package memory

import (
	"context"
	"fmt"

	"github.com/arushahmd/compass-voice/pkg/menu"
)

// MenuLoader implements ports.MenuLoader over raw menu bytes held in memory.
type MenuLoader struct {
	data []byte
	ext  string
}

// NewMenuLoader creates a loader for YAML or JSON bytes; ext selects the format
// the same way a file extension would (".json", ".yaml").
func NewMenuLoader(data []byte, ext string) *MenuLoader {
	return &MenuLoader{data: append([]byte(nil), data...), ext: ext}
}

// LoadMenu parses the held bytes. Each call returns a fresh menu.
func (l *MenuLoader) LoadMenu(ctx context.Context) (*menu.Menu, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(l.data) == 0 {
		return nil, fmt.Errorf("failed to load menu: no data")
	}
	return menu.Parse(l.data, l.ext)
}
