package domain

// Command describes a cart mutation requested by a handler.
// The set of variants is closed: AddItemToCart, ClearCart and RemoveItemFromCart.
type Command interface {
	// Name is a stable identifier used for logging and metrics.
	Name() string
	isCommand()
}

// AddItemToCart appends a freshly identified CartItem built from the accumulated slots.
type AddItemToCart struct {
	ItemID    string
	Quantity  int
	VariantID string
	Sides     map[string][]string
	Modifiers map[string][]string
}

// ClearCart empties the cart.
type ClearCart struct{}

// RemoveItemFromCart removes one cart line by id.
type RemoveItemFromCart struct {
	CartItemID string
}

func (AddItemToCart) Name() string      { return "ADD_ITEM_TO_CART" }
func (ClearCart) Name() string          { return "CLEAR_CART" }
func (RemoveItemFromCart) Name() string { return "REMOVE_ITEM_FROM_CART" }

func (AddItemToCart) isCommand()      {}
func (ClearCart) isCommand()          {}
func (RemoveItemFromCart) isCommand() {}
