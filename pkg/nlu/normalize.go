package nlu

import (
	"regexp"
	"strings"

	"github.com/arushahmd/compass-voice/pkg/domain"
)

var itemStopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "some": {}, "please": {}, "me": {}, "my": {},
}

// NormalizeQuery prepares raw turn text for the component that will consume
// it, chosen by (intent, state):
//
//   - cart overlays (SHOW_CART, SHOW_TOTAL, CLEAR_CART): raw, never reshaped
//   - ASK_MENU_INFO: the bare entity phrase ("do you have any X" -> "x")
//   - ASK_PRICE: the item phrase after the price wrapper
//   - REMOVE_ITEM: the item phrase after the remove verb
//   - IDLE: item cleanup
//   - WAITING_FOR_SIDE, MODIFIER, SIZE: choice cleanup, separators kept
//   - otherwise the noise-cleaned text
func NormalizeQuery(raw string, intent domain.Intent, state domain.ConversationState) string {
	switch intent {
	case domain.IntentShowCart, domain.IntentShowTotal, domain.IntentClearCart:
		return strings.TrimSpace(raw)
	case domain.IntentAskMenuInfo, domain.IntentShowMenu:
		return menuInfoQuery(raw)
	case domain.IntentAskPrice:
		return priceQuery(raw)
	case domain.IntentRemoveItem:
		return removeQuery(raw)
	}

	switch state {
	case domain.StateIdle:
		return ItemQuery(raw)
	case domain.StateWaitingForSide, domain.StateWaitingForModifier, domain.StateWaitingForSize:
		return choiceQuery(raw)
	}
	return CleanNoise(NormalizeText(raw))
}

// ItemQuery strips add-intent fillers, multi-item separators, stopwords and a
// leading quantity from an item request.
func ItemQuery(raw string) string {
	text := stripRepeated(addFillerPat, CleanNoise(NormalizeText(raw)))
	text = separatorPat.ReplaceAllString(text, " ")

	tokens := strings.Fields(text)
	out := tokens[:0]
	for i, tok := range tokens {
		if _, stop := itemStopwords[tok]; stop {
			continue
		}
		if i == 0 || len(out) == 0 {
			if _, num := numberWords[tok]; num || isDigits(tok) {
				continue
			}
		}
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

func priceQuery(raw string) string {
	text := NormalizeText(raw)
	if loc := priceFillerPat.FindStringIndex(text); loc != nil {
		text = text[loc[1]:]
	} else if i := strings.Index(text, " of "); i >= 0 {
		text = text[i+len(" of "):]
	}
	text = trailingCostPat.ReplaceAllString(text, "")
	return ItemQuery(text)
}

func removeQuery(raw string) string {
	text := CleanNoise(NormalizeText(raw))
	if loc := removeFillerPat.FindStringIndex(text); loc != nil {
		text = text[loc[1]:]
	} else if loc := removeVerbPat.FindStringIndex(text); loc != nil {
		text = text[loc[1]:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), " from my order")
	text = strings.TrimSuffix(text, " from my cart")
	return ItemQuery(text)
}

// menuInfoQuery captures the entity of a menu question, falling back to item
// cleanup when no wrapper is recognised.
func menuInfoQuery(raw string) string {
	text := NormalizeText(raw)

	for _, p := range []*regexp.Regexp{whichCategoryPat, whatDoYouHavePat, categoryEntityPat} {
		if m := p.FindStringSubmatch(text); m != nil {
			if entity := trimEntity(m[p.SubexpIndex("entity")]); entity != "" {
				return entity
			}
		}
	}
	if bareEntityPat.MatchString(text) {
		return text
	}
	return ItemQuery(text)
}

func trimEntity(entity string) string {
	tokens := strings.Fields(entity)
	for len(tokens) > 1 {
		switch tokens[0] {
		case "any", "the", "some", "me", "all", "your":
			tokens = tokens[1:]
			continue
		}
		break
	}
	return strings.Join(tokens, " ")
}

// choiceQuery cleans a side/modifier/size answer. Commas become "and" so the
// handler can still split the answer into chunks.
func choiceQuery(raw string) string {
	text := strings.ReplaceAll(raw, ",", " and ")
	text = CleanNoise(NormalizeText(text))
	text = stripRepeated(choiceFillerPat, text)
	text = strings.TrimPrefix(text, "and ")
	text = strings.TrimSuffix(text, " and")
	return collapse(text)
}

func stripRepeated(p *regexp.Regexp, text string) string {
	for {
		next := collapse(p.ReplaceAllString(text, ""))
		if next == text {
			return text
		}
		text = next
	}
}
