package domain

import "github.com/google/uuid"

// CartItem is one immutable line of the cart.
type CartItem struct {
	CartItemID string              `json:"cart_item_id"`
	ItemID     string              `json:"item_id"`
	Quantity   int                 `json:"quantity"`
	VariantID  string              `json:"variant_id,omitempty"`
	Sides      map[string][]string `json:"sides,omitempty"`
	Modifiers  map[string][]string `json:"modifiers,omitempty"`
}

// NewCartItem builds a cart line with a fresh identity.
// The selection maps are copied so later context changes cannot leak in.
func NewCartItem(itemID string, quantity int, variantID string, sides, modifiers map[string][]string) CartItem {
	return CartItem{
		CartItemID: uuid.NewString(),
		ItemID:     itemID,
		Quantity:   quantity,
		VariantID:  variantID,
		Sides:      copySelections(sides),
		Modifiers:  copySelections(modifiers),
	}
}

// Cart is the mutable aggregate of cart lines owned by a session.
type Cart struct {
	Lines []CartItem `json:"items"`
}

// AddItem appends a line.
func (c *Cart) AddItem(item CartItem) {
	c.Lines = append(c.Lines, item)
}

// RemoveItem removes the line with the given id and reports whether it existed.
func (c *Cart) RemoveItem(cartItemID string) bool {
	for i, line := range c.Lines {
		if line.CartItemID == cartItemID {
			c.Lines = append(c.Lines[:i:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Items returns a copy of the cart lines.
func (c Cart) Items() []CartItem {
	return append([]CartItem(nil), c.Lines...)
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Len returns the number of lines.
func (c Cart) Len() int {
	return len(c.Lines)
}

// Get returns the line with the given id.
func (c Cart) Get(cartItemID string) (CartItem, bool) {
	for _, line := range c.Lines {
		if line.CartItemID == cartItemID {
			return line, true
		}
	}
	return CartItem{}, false
}

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	out := Cart{}
	for _, line := range c.Lines {
		cp := line
		cp.Sides = copySelections(line.Sides)
		cp.Modifiers = copySelections(line.Modifiers)
		out.Lines = append(out.Lines, cp)
	}
	return out
}
