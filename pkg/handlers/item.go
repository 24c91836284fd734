package handlers

import (
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/menu"
	"github.com/arushahmd/compass-voice/pkg/nlu"
)

// ConfirmItem is the Confirmation type used when an item match needs a yes/no.
const ConfirmItem = "item"

// addItem resolves the requested item and opens its add-item episode.
func (s *Set) addItem(req Request) domain.HandlerResult {
	if req.Intent != domain.IntentAddItem {
		return result(domain.StateIdle, "unhandled_intent")
	}

	res, ok := s.repo.ResolveItem(req.Query)
	if !ok {
		// A category holding one item names that item, but only loosely.
		if q := s.repo.ResolveMenuQuery(req.Query); q.Type == menu.QueryCategorySingleItem {
			res, ok = menu.Resolution{Item: q.Items[0]}, true
		}
	}
	if !ok {
		return domain.HandlerResult{
			NextState:   domain.StateIdle,
			ResponseKey: "item_not_found",
			Payload:     domain.Payload{"query": req.Query},
		}
	}
	item := res.Item
	if !item.IsAvailable() {
		return domain.HandlerResult{
			NextState:   domain.StateIdle,
			ResponseKey: "item_unavailable",
			Payload:     domain.Payload{"item_name": item.Name},
		}
	}

	c := req.context()
	if s.confirmBelow > 0 && res.Score < s.confirmBelow {
		c.Reset()
		c.CandidateItemID = item.ItemID
		c.AwaitingConfirmationFor = &domain.Confirmation{Type: ConfirmItem, ItemID: item.ItemID, ItemName: item.Name}
		return domain.HandlerResult{
			NextState:   domain.StateConfirmingItem,
			ResponseKey: "confirm_item",
			Payload:     domain.Payload{"item_name": item.Name},
		}
	}

	s.logger.Debug("item resolved", "item_id", item.ItemID, "score", res.Score)
	c.BeginItem(item.ItemID, item.Name)
	return s.nextPhase(item, c)
}

// confirmingItem answers "did you mean X?".
func (s *Set) confirmingItem(req Request) domain.HandlerResult {
	c := req.context()
	conf := c.AwaitingConfirmationFor
	if conf == nil || conf.Type != ConfirmItem || c.CandidateItemID == "" {
		return result(domain.StateErrorRecovery, "confirmation_state_error")
	}

	switch req.Intent {
	case domain.IntentCancel:
		return cancelled()
	case domain.IntentDeny:
		return domain.HandlerResult{
			NextState:    domain.StateIdle,
			ResponseKey:  "item_confirmation_denied",
			Payload:      domain.Payload{"item_name": conf.ItemName},
			ResetContext: true,
		}
	case domain.IntentConfirm:
		item, err := s.repo.GetItem(c.CandidateItemID)
		if err != nil {
			return contextMissing(c)
		}
		c.BeginItem(item.ItemID, item.Name)
		return s.nextPhase(item, c)
	}

	return domain.HandlerResult{
		NextState:   domain.StateConfirmingItem,
		ResponseKey: "repeat_confirmation",
		Payload:     domain.Payload{"item_name": conf.ItemName},
	}
}

func (s *Set) side(req Request) domain.HandlerResult {
	item, res, ok := s.openItem(req)
	if !ok {
		return res
	}
	c := req.context()
	if c.CurrentSideGroupIndex >= len(item.SideGroups) {
		return s.nextPhase(item, c)
	}

	g := sideGroup(item.SideGroups[c.CurrentSideGroupIndex])
	ids, outcome, res := fill(s, "side", domain.StateWaitingForSide, item, g, req)
	switch outcome {
	case fillPrompt:
		return res
	case fillCommit:
		c.SelectSides(g.id, ids...)
	case fillSkip:
	}
	c.CurrentSideGroupIndex++
	return s.nextPhase(item, c)
}

func (s *Set) modifier(req Request) domain.HandlerResult {
	item, res, ok := s.openItem(req)
	if !ok {
		return res
	}
	c := req.context()
	if c.CurrentModifierGroupIndex >= len(item.ModifierGroups) {
		return s.nextPhase(item, c)
	}

	g := modifierGroup(item.ModifierGroups[c.CurrentModifierGroupIndex])
	ids, outcome, res := fill(s, "modifier", domain.StateWaitingForModifier, item, g, req)
	switch outcome {
	case fillPrompt:
		return res
	case fillCommit:
		c.SelectModifiers(g.id, ids...)
	case fillSkip:
		c.SkippedModifierGroups = append(c.SkippedModifierGroups, g.id)
	}
	c.CurrentModifierGroupIndex++
	return s.nextPhase(item, c)
}

// size collects the variant of a variant-priced item. It cannot be skipped.
func (s *Set) size(req Request) domain.HandlerResult {
	item, res, ok := s.openItem(req)
	if !ok {
		return res
	}
	c := req.context()
	if !item.Pricing.IsVariant() || c.SelectedVariantID != "" {
		return s.nextPhase(item, c)
	}

	ids, outcome, res := fill(s, "size", domain.StateWaitingForSize, item, sizeGroup(item), req)
	if outcome != fillCommit {
		return res
	}
	c.SelectedVariantID = ids[0]
	return s.nextPhase(item, c)
}

// quantity parses the amount and commits the item to the cart.
func (s *Set) quantity(req Request) domain.HandlerResult {
	item, res, ok := s.openItem(req)
	if !ok {
		return res
	}
	c := req.context()
	prompt := func(key string) domain.HandlerResult {
		return domain.HandlerResult{
			NextState:   domain.StateWaitingForQuantity,
			ResponseKey: key,
			Payload:     domain.Payload{"item_name": item.Name},
		}
	}

	if req.Slot != domain.SlotNone {
		return prompt("repeat_quantity_prompt")
	}

	q := nlu.DetectQuantity(req.Query)
	switch {
	case q.Kind == nlu.QuantityVague:
		return prompt("clarify_exact_quantity")
	case q.Kind == nlu.QuantityNone || q.Value <= 0:
		return prompt("repeat_quantity_prompt")
	}

	c.Quantity = q.Value
	return domain.HandlerResult{
		NextState:   domain.StateIdle,
		ResponseKey: "item_added_successfully",
		Command:     addCommand(item, c),
		Payload: domain.Payload{
			"item_id":   item.ItemID,
			"item_name": item.Name,
			"quantity":  q.Value,
		},
		ResetContext: true,
	}
}

func addCommand(item *menu.MenuItem, c *domain.Context) domain.AddItemToCart {
	snap := c.Clone()
	return domain.AddItemToCart{
		ItemID:    item.ItemID,
		Quantity:  snap.Quantity,
		VariantID: snap.SelectedVariantID,
		Sides:     snap.SelectedSideGroups,
		Modifiers: snap.SelectedModifierGroups,
	}
}
