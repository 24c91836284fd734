package domain

// Intent is the linguistic classification of a single user utterance.
type Intent string

const (
	IntentAddItem        Intent = "ADD_ITEM"
	IntentRemoveItem     Intent = "REMOVE_ITEM"
	IntentModifyItem     Intent = "MODIFY_ITEM"
	IntentConfirm        Intent = "CONFIRM"
	IntentDeny           Intent = "DENY"
	IntentCancel         Intent = "CANCEL"
	IntentShowCart       Intent = "SHOW_CART"
	IntentShowTotal      Intent = "SHOW_TOTAL"
	IntentClearCart      Intent = "CLEAR_CART"
	IntentShowMenu       Intent = "SHOW_MENU"
	IntentStartOrder     Intent = "START_ORDER"
	IntentEndAdding      Intent = "END_ADDING"
	IntentOrderStatus    Intent = "ORDER_STATUS"
	IntentPaymentRequest Intent = "PAYMENT_REQUEST"
	IntentPaymentDone    Intent = "PAYMENT_DONE"
	IntentAskMenuInfo    Intent = "ASK_MENU_INFO"
	IntentAskPrice       Intent = "ASK_PRICE"
	IntentMetaClarify    Intent = "META_CLARIFY"
	IntentUnknown        Intent = "UNKNOWN"
)

// Intents lists every intent in declaration order.
var Intents = []Intent{
	IntentAddItem, IntentRemoveItem, IntentModifyItem,
	IntentConfirm, IntentDeny, IntentCancel,
	IntentShowCart, IntentShowTotal, IntentClearCart, IntentShowMenu,
	IntentStartOrder, IntentEndAdding, IntentOrderStatus,
	IntentPaymentRequest, IntentPaymentDone,
	IntentAskMenuInfo, IntentAskPrice, IntentMetaClarify,
	IntentUnknown,
}

func (i Intent) String() string { return string(i) }

// IntentSet is an unordered collection of candidate intents.
type IntentSet map[Intent]struct{}

// Add inserts intents into the set.
func (s IntentSet) Add(intents ...Intent) {
	for _, i := range intents {
		s[i] = struct{}{}
	}
}

// Has reports whether the intent is present.
func (s IntentSet) Has(i Intent) bool {
	_, ok := s[i]
	return ok
}

// HasAny reports whether any of the intents is present.
func (s IntentSet) HasAny(intents ...Intent) bool {
	for _, i := range intents {
		if s.Has(i) {
			return true
		}
	}
	return false
}
