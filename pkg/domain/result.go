package domain

// Payload carries structured data for response rendering.
type Payload map[string]any

// String returns the value under key as a string, or "".
func (p Payload) String(key string) string {
	if p == nil {
		return ""
	}
	s, _ := p[key].(string)
	return s
}

// Strings returns the value under key as a string slice, or nil.
func (p Payload) Strings(key string) []string {
	if p == nil {
		return nil
	}
	s, _ := p[key].([]string)
	return s
}

// HandlerResult is the uniform, side-effect-free output of every handler.
type HandlerResult struct {
	NextState    ConversationState
	ResponseKey  string
	Command      Command
	Payload      Payload
	ResetContext bool
}

// HandlerName identifies a handler the router can dispatch to.
type HandlerName string

const (
	HandlerAddItem                  HandlerName = "add_item"
	HandlerSide                     HandlerName = "waiting_for_side"
	HandlerModifier                 HandlerName = "waiting_for_modifier"
	HandlerSize                     HandlerName = "waiting_for_size"
	HandlerQuantity                 HandlerName = "waiting_for_quantity"
	HandlerConfirmingItem           HandlerName = "confirming_item"
	HandlerCart                     HandlerName = "cart"
	HandlerStartOrder               HandlerName = "start_order"
	HandlerConfirmOrder             HandlerName = "confirm_order"
	HandlerPayment                  HandlerName = "payment"
	HandlerRemoveItem               HandlerName = "remove_item"
	HandlerRemovingItem             HandlerName = "removing_item"
	HandlerCancellationConfirmation HandlerName = "cancellation_confirmation"
	HandlerAskMenuInfo              HandlerName = "ask_menu_info"
	HandlerAskPrice                 HandlerName = "ask_price"
	HandlerCancel                   HandlerName = "cancel"
	HandlerErrorRecovery            HandlerName = "error_recovery"
)

// Handlers lists every handler name in dispatch order.
var Handlers = []HandlerName{
	HandlerAddItem, HandlerSide, HandlerModifier, HandlerSize, HandlerQuantity,
	HandlerConfirmingItem, HandlerCart, HandlerStartOrder, HandlerConfirmOrder,
	HandlerPayment, HandlerRemoveItem, HandlerRemovingItem,
	HandlerCancellationConfirmation, HandlerAskMenuInfo, HandlerAskPrice,
	HandlerCancel, HandlerErrorRecovery,
}

// RouteResult is the router's verdict for a (state, intent) pair.
type RouteResult struct {
	Allowed bool
	Handler HandlerName
	Reason  string
}

// FlowAction is the control decision taken before routing.
type FlowAction string

const (
	FlowPass    FlowAction = "PASS"
	FlowRewrite FlowAction = "REWRITE"
	FlowBlock   FlowAction = "BLOCK"
	FlowCancel  FlowAction = "CANCEL"
)

// SlotInteraction tags a PASS decision with how the raw text relates to the open slot.
type SlotInteraction string

const (
	SlotNone       SlotInteraction = ""
	SlotAskOptions SlotInteraction = "ASK_OPTIONS"
	SlotSkip       SlotInteraction = "SKIP"
)

// FlowDecision is a pure control decision with no side effects.
type FlowDecision struct {
	Action          FlowAction
	EffectiveIntent Intent
	SlotInteraction SlotInteraction
	ResponseKey     string
	Payload         Payload
}

// TurnOutput is what a turn hands back to the transport.
type TurnOutput struct {
	ResponseKey string  `json:"response_key"`
	Payload     Payload `json:"response_payload,omitempty"`
}
