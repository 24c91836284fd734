package handlers

import (
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/matcher"
)

// removeItem matches the request against cart lines and asks for confirmation.
func (s *Set) removeItem(req Request) domain.HandlerResult {
	if req.Intent != domain.IntentRemoveItem {
		return result(domain.StateIdle, "unhandled_intent")
	}
	if req.Session.Cart.IsEmpty() {
		return result(domain.StateIdle, "cart_is_empty")
	}

	line, name, ok := s.matchCartLine(req.Query, req.Session.Cart)
	if !ok {
		return domain.HandlerResult{
			NextState:   domain.StateIdle,
			ResponseKey: "item_not_found_in_cart",
			Payload:     domain.Payload{"query": req.Query},
		}
	}

	c := req.context()
	c.Reset()
	c.PendingAction = "remove"
	c.CandidateItemID = line.CartItemID
	c.CurrentItemID = line.ItemID
	c.CurrentItemName = name
	c.AwaitingConfirmationFor = &domain.Confirmation{
		Type:       domain.ConfirmRemoveItem,
		CartItemID: line.CartItemID,
		ItemID:     line.ItemID,
		ItemName:   name,
	}

	return domain.HandlerResult{
		NextState:   domain.StateRemovingItem,
		ResponseKey: "confirm_remove_item",
		Payload: domain.Payload{
			"item_name": name,
			"quantity":  line.Quantity,
		},
	}
}

// matchCartLine returns the best scoring cart line at or above the remove threshold.
// Earlier lines win ties.
func (s *Set) matchCartLine(text string, cart domain.Cart) (domain.CartItem, string, bool) {
	var (
		best      domain.CartItem
		bestName  string
		bestScore float64
	)
	for _, line := range cart.Items() {
		item, err := s.repo.GetItem(line.ItemID)
		if err != nil {
			continue
		}
		if score := matcher.ScoreItem(text, item.Name); score > bestScore {
			best, bestName, bestScore = line, item.Name, score
		}
	}
	if bestName == "" || bestScore < s.removeThreshold {
		return domain.CartItem{}, "", false
	}
	return best, bestName, true
}

// removingItem applies the answer to "remove X?".
func (s *Set) removingItem(req Request) domain.HandlerResult {
	conf := req.context().AwaitingConfirmationFor
	if conf == nil || conf.Type != domain.ConfirmRemoveItem {
		return result(domain.StateErrorRecovery, "confirmation_state_error")
	}

	switch req.Intent {
	case domain.IntentCancel:
		return cancelled()
	case domain.IntentDeny:
		return domain.HandlerResult{
			NextState:    domain.StateIdle,
			ResponseKey:  "item_removal_cancelled",
			Payload:      domain.Payload{"item_name": conf.ItemName},
			ResetContext: true,
		}
	case domain.IntentConfirm:
		if conf.CartItemID == "" {
			return result(domain.StateErrorRecovery, "cart_item_id_missing")
		}
		return domain.HandlerResult{
			NextState:    domain.StateIdle,
			ResponseKey:  "item_removed_successfully",
			Command:      domain.RemoveItemFromCart{CartItemID: conf.CartItemID},
			Payload:      domain.Payload{"item_name": conf.ItemName},
			ResetContext: true,
		}
	}

	return domain.HandlerResult{
		NextState:   domain.StateRemovingItem,
		ResponseKey: "repeat_remove_confirmation",
		Payload:     domain.Payload{"item_name": conf.ItemName},
	}
}
