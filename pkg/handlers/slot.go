package handlers

import (
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/matcher"
	"github.com/arushahmd/compass-voice/pkg/menu"
	"github.com/arushahmd/compass-voice/pkg/nlu"
)

// group is the uniform view of a side group, a modifier group or the size list.
type group[T matcher.Candidate] struct {
	id       string
	name     string
	required bool
	// max is the selection cap; zero or less means unlimited.
	max     int
	choices []T
	idOf    func(T) string
}

func sideGroup(g menu.SideGroup) group[menu.SideChoice] {
	return group[menu.SideChoice]{
		id:       g.GroupID,
		name:     g.Name,
		required: g.IsRequired,
		max:      g.MaxSelector,
		choices:  g.Choices,
		idOf:     func(c menu.SideChoice) string { return c.ItemID },
	}
}

func modifierGroup(g menu.ModifierGroup) group[menu.ModifierChoice] {
	return group[menu.ModifierChoice]{
		id:       g.GroupID,
		name:     g.Name,
		required: g.IsRequired,
		max:      g.MaxSelector,
		choices:  g.Choices,
		idOf:     func(c menu.ModifierChoice) string { return c.ModifierID },
	}
}

func sizeGroup(item *menu.MenuItem) group[menu.Variant] {
	return group[menu.Variant]{
		id:       "size",
		name:     "Size",
		required: true,
		max:      1,
		choices:  item.Pricing.Variants,
		idOf:     func(v menu.Variant) string { return v.VariantID },
	}
}

type fillOutcome int

const (
	// fillPrompt means the turn ends on the returned re-prompt.
	fillPrompt fillOutcome = iota
	fillCommit
	fillSkip
)

// fill runs one turn of the shared slot algorithm against g.
//
// Option requests re-prompt with suggestions. A skip is refused for required
// groups. Free text is split into chunks that must each match a choice; a
// single-select group takes at most one distinct match.
func fill[T matcher.Candidate](s *Set, slot string, state domain.ConversationState, item *menu.MenuItem, g group[T], req Request) ([]string, fillOutcome, domain.HandlerResult) {
	reprompt := func(key string, extra domain.Payload) domain.HandlerResult {
		payload := promptPayload(item, g, s.suggestionLimit)
		for k, v := range extra {
			payload[k] = v
		}
		return domain.HandlerResult{NextState: state, ResponseKey: key, Payload: payload}
	}
	options := func() domain.HandlerResult {
		return reprompt("repeat_"+slot+"_options", domain.Payload{"repeat_reason": "options"})
	}

	if req.Slot == domain.SlotAskOptions {
		return nil, fillPrompt, options()
	}
	if req.Slot == domain.SlotSkip || req.Intent == domain.IntentDeny {
		if g.required {
			return nil, fillPrompt, reprompt("required_"+slot+"_cannot_skip", nil)
		}
		return nil, fillSkip, domain.HandlerResult{}
	}

	chunks := nlu.SplitCandidates(req.Query)
	if len(chunks) == 0 {
		return nil, fillPrompt, options()
	}

	var ids, invalid []string
	seen := make(map[string]struct{}, len(chunks))
	for _, chunk := range chunks {
		choice, ok := matcher.MatchChoice(chunk, g.choices)
		if !ok {
			invalid = append(invalid, chunk)
			continue
		}
		id := g.idOf(choice)
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	if len(invalid) > 0 {
		// A bare "yes" names nothing; treat it as a request to hear the options again.
		if req.Intent == domain.IntentConfirm && len(ids) == 0 {
			return nil, fillPrompt, options()
		}
		return nil, fillPrompt, reprompt("repeat_"+slot+"_options", domain.Payload{
			"repeat_reason": "invalid",
			"invalid_terms": invalid,
		})
	}
	if g.max > 0 && len(ids) > g.max {
		return nil, fillPrompt, reprompt("too_many_"+slot+"_choices", domain.Payload{"max_choices": g.max})
	}
	return ids, fillCommit, domain.HandlerResult{}
}

// promptPayload describes the open group with the first k choice names.
func promptPayload[T matcher.Candidate](item *menu.MenuItem, g group[T], k int) domain.Payload {
	return domain.Payload{
		"item_name":   item.Name,
		"group_name":  g.name,
		"required":    g.required,
		"max_choices": g.max,
		"top_choices": topChoices(g.choices, k),
	}
}

// topChoices returns the first k display names in menu order.
func topChoices[T matcher.Candidate](choices []T, k int) []string {
	n := min(k, len(choices))
	out := make([]string, 0, n)
	for _, c := range choices[:n] {
		out = append(out, c.DisplayName())
	}
	return out
}

func ask[T matcher.Candidate](s *Set, state domain.ConversationState, key string, item *menu.MenuItem, g group[T]) domain.HandlerResult {
	return domain.HandlerResult{
		NextState:   state,
		ResponseKey: key,
		Payload:     promptPayload(item, g, s.suggestionLimit),
	}
}

// nextPhase resolves where the add-item flow goes from the current context:
// pending side groups, pending modifier groups, an unselected size, quantity.
func (s *Set) nextPhase(item *menu.MenuItem, c *domain.Context) domain.HandlerResult {
	if c.CurrentSideGroupIndex < len(item.SideGroups) {
		return ask(s, domain.StateWaitingForSide, "ask_for_side", item, sideGroup(item.SideGroups[c.CurrentSideGroupIndex]))
	}
	if c.CurrentModifierGroupIndex < len(item.ModifierGroups) {
		return ask(s, domain.StateWaitingForModifier, "ask_for_modifier", item, modifierGroup(item.ModifierGroups[c.CurrentModifierGroupIndex]))
	}
	if item.Pricing.IsVariant() && c.SelectedVariantID == "" {
		return ask(s, domain.StateWaitingForSize, "ask_for_size", item, sizeGroup(item))
	}
	return domain.HandlerResult{
		NextState:   domain.StateWaitingForQuantity,
		ResponseKey: "ask_for_quantity",
		Payload:     domain.Payload{"item_name": item.Name},
	}
}

// openItem runs the first two steps shared by every slot handler: a cancel
// signal ends the flow and the item under construction must still exist.
func (s *Set) openItem(req Request) (*menu.MenuItem, domain.HandlerResult, bool) {
	c := req.context()
	if req.Intent == domain.IntentCancel || nlu.ResolveChoiceSignal(c.LastUserText) == nlu.SignalCancel {
		return nil, cancelled(), false
	}
	item, err := s.repo.GetItem(c.CurrentItemID)
	if err != nil {
		s.logger.Warn("item under construction is gone", "item_id", c.CurrentItemID, "err", err)
		return nil, contextMissing(c), false
	}
	return item, domain.HandlerResult{}, true
}
