package menu

import (
	"fmt"
	"strings"

	"github.com/arushahmd/compass-voice/pkg/domain"
)

func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Store is an immutable, indexed view over a Menu. Safe for concurrent reads.
type Store struct {
	menu       *Menu
	byID       map[string]*MenuItem
	byName     map[string]*MenuItem
	categories map[string]*Category
	entities   map[string][]Entity
}

// NewStore builds the runtime indexes for a menu.
func NewStore(m *Menu) *Store {
	s := &Store{
		menu:       m,
		byID:       make(map[string]*MenuItem, len(m.Items)),
		byName:     make(map[string]*MenuItem, len(m.Items)),
		categories: make(map[string]*Category, len(m.Categories)),
		entities:   make(map[string][]Entity, len(m.EntityIndex)),
	}
	for i := range m.Items {
		item := &m.Items[i]
		s.byID[item.ItemID] = item
		s.byName[normalizeKey(item.Name)] = item
		for _, alias := range item.Aliases {
			if key := normalizeKey(alias); key != "" {
				if _, taken := s.byName[key]; !taken {
					s.byName[key] = item
				}
			}
		}
	}
	for i := range m.Categories {
		s.categories[m.Categories[i].CategoryID] = &m.Categories[i]
	}
	for k, v := range m.EntityIndex {
		s.entities[normalizeKey(k)] = v
	}
	return s
}

// RestaurantID returns the owning restaurant.
func (s *Store) RestaurantID() string { return s.menu.RestaurantID }

// Items returns all items in menu order.
func (s *Store) Items() []MenuItem { return s.menu.Items }

// Categories returns all categories in menu order.
func (s *Store) Categories() []Category { return s.menu.Categories }

// Item looks up an item by id.
func (s *Store) Item(id string) (*MenuItem, error) {
	item, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return item, nil
}

// Category looks up a category by id.
func (s *Store) Category(id string) (*Category, bool) {
	c, ok := s.categories[id]
	return c, ok
}

// CategoryItems resolves the items of a category, skipping stale ids.
func (s *Store) CategoryItems(c *Category) []*MenuItem {
	items := make([]*MenuItem, 0, len(c.ItemIDs))
	for _, id := range c.ItemIDs {
		if item, ok := s.byID[id]; ok {
			items = append(items, item)
		}
	}
	return items
}

// FindItemExact matches a name or alias exactly (case and spacing insensitive).
func (s *Store) FindItemExact(name string) (*MenuItem, bool) {
	item, ok := s.byName[normalizeKey(name)]
	return item, ok
}

// FindEntity returns entity-index hits for key, optionally filtered by type.
func (s *Store) FindEntity(key string, types ...string) []Entity {
	entries := s.entities[normalizeKey(key)]
	if len(types) == 0 {
		return entries
	}
	var out []Entity
	for _, e := range entries {
		for _, t := range types {
			if e.Type == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// FindCategoryByName matches a category name, tolerating a plural/singular "s".
func (s *Store) FindCategoryByName(text string) (*Category, bool) {
	key := normalizeKey(text)
	if key == "" {
		return nil, false
	}
	for i := range s.menu.Categories {
		c := &s.menu.Categories[i]
		name := normalizeKey(c.Name)
		if key == name || key+"s" == name || key == name+"s" || key+"es" == name || key == name+"es" {
			return c, true
		}
	}
	return nil, false
}
