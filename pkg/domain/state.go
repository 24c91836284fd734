package domain

import "strings"

// ConversationState is the single active phase of a session.
type ConversationState string

const (
	StateIdle                     ConversationState = "IDLE"
	StateWaitingForSide           ConversationState = "WAITING_FOR_SIDE"
	StateWaitingForModifier       ConversationState = "WAITING_FOR_MODIFIER"
	StateWaitingForSize           ConversationState = "WAITING_FOR_SIZE"
	StateWaitingForQuantity       ConversationState = "WAITING_FOR_QUANTITY"
	StateConfirmingItem           ConversationState = "CONFIRMING_ITEM"
	StateRemovingItem             ConversationState = "REMOVING_ITEM"
	StateConfirmingOrder          ConversationState = "CONFIRMING_ORDER"
	StateWaitingForPayment        ConversationState = "WAITING_FOR_PAYMENT"
	StateCancellationConfirmation ConversationState = "CANCELLATION_CONFIRMATION"
	StateErrorRecovery            ConversationState = "ERROR_RECOVERY"
)

// States lists every conversation state.
var States = []ConversationState{
	StateIdle,
	StateWaitingForSide, StateWaitingForModifier, StateWaitingForSize, StateWaitingForQuantity,
	StateConfirmingItem, StateRemovingItem,
	StateConfirmingOrder, StateWaitingForPayment,
	StateCancellationConfirmation, StateErrorRecovery,
}

func (s ConversationState) String() string { return string(s) }

// IsWaiting reports whether the state is one of the slot-filling states.
func (s ConversationState) IsWaiting() bool {
	switch s {
	case StateWaitingForSide, StateWaitingForModifier, StateWaitingForSize, StateWaitingForQuantity:
		return true
	}
	return false
}

// Step returns the slot name of a waiting state ("side", "modifier", ...).
// Non-waiting states return an empty string.
func (s ConversationState) Step() string {
	if !s.IsWaiting() {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(string(s)), "waiting_for_")
}
