package menu

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// menuFile is the on-disk layout. The entity index is kept raw because a key
// may map to a single entry or a list of entries.
type menuFile struct {
	Menu        `yaml:",inline"`
	EntityIndex map[string]any `json:"entity_index" yaml:"entity_index"`
}

// LoadFile reads a menu from a YAML or JSON file (chosen by extension).
func LoadFile(path string) (*Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes menu bytes. ext selects JSON (".json") or YAML (anything else).
func Parse(data []byte, ext string) (*Menu, error) {
	var raw menuFile
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse menu json: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse menu yaml: %w", err)
	}

	m := raw.Menu
	index, err := DecodeEntityIndex(raw.EntityIndex)
	if err != nil {
		return nil, err
	}
	m.EntityIndex = index

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid menu: %w", err)
	}
	return &m, nil
}

// LoadEntityIndexFile reads a standalone entity index (YAML or JSON).
func LoadEntityIndexFile(path string) (map[string][]Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity index: %w", err)
	}
	var raw map[string]any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse entity index: %w", err)
	}
	return DecodeEntityIndex(raw)
}

// DecodeEntityIndex normalizes a raw entity index where each key holds either one
// entry or a list of entries. Keys are normalized to lowercase.
func DecodeEntityIndex(raw map[string]any) (map[string][]Entity, error) {
	index := make(map[string][]Entity, len(raw))
	for key, v := range raw {
		var entries []Entity
		switch val := v.(type) {
		case []any:
			if err := mapstructure.Decode(val, &entries); err != nil {
				return nil, fmt.Errorf("failed to decode entity index entry %q: %w", key, err)
			}
		case map[string]any:
			var e Entity
			if err := mapstructure.Decode(val, &e); err != nil {
				return nil, fmt.Errorf("failed to decode entity index entry %q: %w", key, err)
			}
			entries = []Entity{e}
		default:
			return nil, fmt.Errorf("invalid entity index entry %q: %T", key, v)
		}
		norm := normalizeKey(key)
		index[norm] = append(index[norm], entries...)
	}
	return index, nil
}
