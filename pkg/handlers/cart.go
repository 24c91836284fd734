package handlers

import "github.com/arushahmd/compass-voice/pkg/domain"

// cart serves the read-only overlays and the destructive clear.
// Overlays answer in place and keep the current state.
func (s *Set) cart(req Request) domain.HandlerResult {
	state := req.Session.State
	cart := req.Session.Cart

	switch req.Intent {
	case domain.IntentShowCart, domain.IntentShowTotal:
		if cart.IsEmpty() {
			return result(state, "cart_empty")
		}
		key := "show_cart"
		if req.Intent == domain.IntentShowTotal {
			key = "show_total"
		}
		return domain.HandlerResult{NextState: state, ResponseKey: key, Payload: s.Summary(cart).Payload()}

	case domain.IntentClearCart:
		if state == domain.StateConfirmingOrder {
			return result(domain.StateCancellationConfirmation, "confirm_clear_cart")
		}
		return domain.HandlerResult{
			NextState:    domain.StateIdle,
			ResponseKey:  "cart_cleared",
			Command:      domain.ClearCart{},
			ResetContext: true,
		}
	}

	return result(state, "intent_not_allowed")
}

// startOrder moves a non-empty cart into order confirmation.
func (s *Set) startOrder(req Request) domain.HandlerResult {
	if req.Intent != domain.IntentEndAdding && req.Intent != domain.IntentStartOrder {
		return result(domain.StateIdle, "unhandled_intent")
	}
	if req.Session.Cart.IsEmpty() {
		return result(domain.StateIdle, "cart_empty")
	}
	return domain.HandlerResult{
		NextState:   domain.StateConfirmingOrder,
		ResponseKey: "confirm_order_summary",
		Payload:     s.Summary(req.Session.Cart).Payload(),
	}
}

func (s *Set) confirmOrder(req Request) domain.HandlerResult {
	switch req.Intent {
	case domain.IntentDeny, domain.IntentCancel:
		return domain.HandlerResult{
			NextState:    domain.StateIdle,
			ResponseKey:  "order_cancelled",
			ResetContext: true,
		}
	case domain.IntentConfirm:
		return domain.HandlerResult{
			NextState:   domain.StateWaitingForPayment,
			ResponseKey: "payment_link_sent",
			Payload:     domain.Payload{"total": s.Summary(req.Session.Cart).Total},
		}
	}
	return domain.HandlerResult{
		NextState:   domain.StateConfirmingOrder,
		ResponseKey: "repeat_order_confirmation",
		Payload:     s.Summary(req.Session.Cart).Payload(),
	}
}

// payment owns WAITING_FOR_PAYMENT; the router sends it every intent.
func (s *Set) payment(req Request) domain.HandlerResult {
	switch req.Intent {
	case domain.IntentPaymentDone:
		return domain.HandlerResult{
			NextState:    domain.StateIdle,
			ResponseKey:  "order_completed",
			Command:      domain.ClearCart{},
			Payload:      domain.Payload{"total": s.Summary(req.Session.Cart).Total},
			ResetContext: true,
		}
	case domain.IntentPaymentRequest:
		return domain.HandlerResult{
			NextState:   domain.StateWaitingForPayment,
			ResponseKey: "payment_link_sent",
			Payload:     domain.Payload{"total": s.Summary(req.Session.Cart).Total},
		}
	case domain.IntentDeny, domain.IntentCancel:
		return domain.HandlerResult{
			NextState:    domain.StateIdle,
			ResponseKey:  "order_cancelled",
			ResetContext: true,
		}
	}
	return result(domain.StateWaitingForPayment, "waiting_for_payment")
}

// cancellationConfirmation confirms clearing the cart during order confirmation.
func (s *Set) cancellationConfirmation(req Request) domain.HandlerResult {
	if req.Session.State != domain.StateCancellationConfirmation {
		return result(domain.StateErrorRecovery, "confirmation_state_error")
	}

	switch req.Intent {
	case domain.IntentConfirm:
		return domain.HandlerResult{
			NextState:    domain.StateIdle,
			ResponseKey:  "cart_cleared",
			Command:      domain.ClearCart{},
			ResetContext: true,
		}
	case domain.IntentDeny, domain.IntentCancel:
		return domain.HandlerResult{
			NextState:   domain.StateConfirmingOrder,
			ResponseKey: "resume_order_confirmation",
			Payload:     s.Summary(req.Session.Cart).Payload(),
		}
	}
	return result(domain.StateCancellationConfirmation, "confirm_clear_cart")
}
