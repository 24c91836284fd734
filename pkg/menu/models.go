// Package menu holds the restaurant menu model and the deterministic query layer
// the engine uses to resolve free text into items and categories.
package menu

import "fmt"

// PricingMode selects how an item's base price is determined.
type PricingMode string

const (
	PricingFixed   PricingMode = "fixed"
	PricingVariant PricingMode = "variant"
	PricingUnit    PricingMode = "unit"
)

// Variant is one size (or other priced variant) of an item.
type Variant struct {
	VariantID  string `json:"variant_id" yaml:"variant_id"`
	Label      string `json:"label" yaml:"label"`
	PriceCents int    `json:"price_cents" yaml:"price_cents"`
}

// DisplayName implements matcher.Candidate.
func (v Variant) DisplayName() string { return v.Label }

// Pricing describes the base price of an item.
type Pricing struct {
	Mode       PricingMode `json:"mode" yaml:"mode"`
	PriceCents int         `json:"price_cents,omitempty" yaml:"price_cents,omitempty"`
	Variants   []Variant   `json:"variants,omitempty" yaml:"variants,omitempty"`
	Currency   string      `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// IsVariant reports whether the item requires a size selection.
func (p Pricing) IsVariant() bool {
	return p.Mode == PricingVariant && len(p.Variants) > 0
}

// Variant returns the variant with the given id.
func (p Pricing) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.VariantID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// BasePrice returns the price in cents for the selected variant, or the fixed price.
func (p Pricing) BasePrice(variantID string) int {
	if variantID != "" {
		if v, ok := p.Variant(variantID); ok {
			return v.PriceCents
		}
	}
	return p.PriceCents
}

// SideChoice is a selectable side, itself a priced item.
type SideChoice struct {
	ItemID  string  `json:"item_id" yaml:"item_id"`
	Name    string  `json:"name" yaml:"name"`
	Pricing Pricing `json:"pricing" yaml:"pricing"`
}

// DisplayName implements matcher.Candidate.
func (c SideChoice) DisplayName() string { return c.Name }

// ModifierChoice is a selectable modifier.
type ModifierChoice struct {
	ModifierID string `json:"modifier_id" yaml:"modifier_id"`
	Name       string `json:"name" yaml:"name"`
	PriceCents int    `json:"price_cents" yaml:"price_cents"`
}

// DisplayName implements matcher.Candidate.
func (c ModifierChoice) DisplayName() string { return c.Name }

// SideGroup is one group of side choices attached to an item.
type SideGroup struct {
	GroupID     string       `json:"group_id" yaml:"group_id"`
	Name        string       `json:"name" yaml:"name"`
	IsRequired  bool         `json:"is_required" yaml:"is_required"`
	MinSelector int          `json:"min_selector" yaml:"min_selector"`
	MaxSelector int          `json:"max_selector" yaml:"max_selector"`
	Choices     []SideChoice `json:"choices" yaml:"choices"`
}

// ModifierGroup is one group of modifier choices attached to an item.
type ModifierGroup struct {
	GroupID     string           `json:"group_id" yaml:"group_id"`
	Name        string           `json:"name" yaml:"name"`
	IsRequired  bool             `json:"is_required" yaml:"is_required"`
	MinSelector int              `json:"min_selector" yaml:"min_selector"`
	MaxSelector int              `json:"max_selector" yaml:"max_selector"`
	Choices     []ModifierChoice `json:"choices" yaml:"choices"`
}

// MenuItem is an orderable item.
type MenuItem struct {
	ItemID         string          `json:"item_id" yaml:"item_id"`
	Name           string          `json:"name" yaml:"name"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	Aliases        []string        `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Pricing        Pricing         `json:"pricing" yaml:"pricing"`
	SideGroups     []SideGroup     `json:"side_groups,omitempty" yaml:"side_groups,omitempty"`
	ModifierGroups []ModifierGroup `json:"modifier_groups,omitempty" yaml:"modifier_groups,omitempty"`
	Available      *bool           `json:"available,omitempty" yaml:"available,omitempty"`
	Categories     []string        `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// DisplayName implements matcher.Candidate.
func (m MenuItem) DisplayName() string { return m.Name }

// IsAvailable reports availability; items are available unless marked otherwise.
func (m MenuItem) IsAvailable() bool {
	return m.Available == nil || *m.Available
}

// Category groups items for menu browsing.
type Category struct {
	CategoryID string   `json:"category_id" yaml:"category_id"`
	Name       string   `json:"name" yaml:"name"`
	ItemIDs    []string `json:"item_ids" yaml:"item_ids"`
}

// DisplayName implements matcher.Candidate.
func (c Category) DisplayName() string { return c.Name }

// Entity types stored in the entity index.
const (
	EntityItem     = "item"
	EntityCategory = "category"
)

// Entity is one entity-index hit for a normalized phrase.
type Entity struct {
	Type         string `json:"type" yaml:"type" mapstructure:"type"`
	ItemID       string `json:"item_id,omitempty" yaml:"item_id,omitempty" mapstructure:"item_id"`
	CategoryID   string `json:"category_id,omitempty" yaml:"category_id,omitempty" mapstructure:"category_id"`
	ParentItemID string `json:"parent_item_id,omitempty" yaml:"parent_item_id,omitempty" mapstructure:"parent_item_id"`
}

// Menu is the complete menu of one restaurant.
type Menu struct {
	RestaurantID string              `json:"restaurant_id" yaml:"restaurant_id"`
	Items        []MenuItem          `json:"items" yaml:"items"`
	Categories   []Category          `json:"categories,omitempty" yaml:"categories,omitempty"`
	EntityIndex  map[string][]Entity `json:"-" yaml:"-"`
}

// Validate checks referential integrity of the menu.
func (m *Menu) Validate() error {
	if len(m.Items) == 0 {
		return fmt.Errorf("menu contains no items")
	}
	seen := make(map[string]struct{}, len(m.Items))
	for _, item := range m.Items {
		if item.ItemID == "" || item.Name == "" {
			return fmt.Errorf("menu item missing id or name: %+v", item.ItemID)
		}
		if _, dup := seen[item.ItemID]; dup {
			return fmt.Errorf("duplicate menu item id: %s", item.ItemID)
		}
		seen[item.ItemID] = struct{}{}
		if item.Pricing.Mode == PricingVariant && len(item.Pricing.Variants) == 0 {
			return fmt.Errorf("item %s uses variant pricing without variants", item.ItemID)
		}
	}
	for _, cat := range m.Categories {
		for _, id := range cat.ItemIDs {
			if _, ok := seen[id]; !ok {
				return fmt.Errorf("category %s references unknown item %s", cat.CategoryID, id)
			}
		}
	}
	return nil
}
