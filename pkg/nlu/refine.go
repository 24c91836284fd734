package nlu

import (
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/menu"
)

// MenuQuerier is the menu dominance lookup the refiner depends on.
type MenuQuerier interface {
	ResolveMenuQuery(text string) menu.QueryResult
}

// Refiner lets menu content settle ADD_ITEM versus ASK_MENU_INFO. It is the
// only place where the menu influences intent.
type Refiner struct {
	menu MenuQuerier
}

// NewRefiner creates a Refiner over q.
func NewRefiner(q MenuQuerier) *Refiner {
	return &Refiner{menu: q}
}

// Refine rewrites intent using menu dominance over normalized.
//
// It is a no-op outside IDLE and for intents other than ADD_ITEM,
// ASK_MENU_INFO and UNKNOWN.
func (r *Refiner) Refine(intent domain.Intent, normalized string, state domain.ConversationState) domain.Intent {
	if state != domain.StateIdle {
		return intent
	}
	switch intent {
	case domain.IntentAddItem, domain.IntentAskMenuInfo, domain.IntentUnknown:
	default:
		return intent
	}

	switch res := r.menu.ResolveMenuQuery(normalized); res.Type {
	case menu.QueryCategory, menu.QueryCategoryAmbiguous, menu.QueryItemAmbiguous:
		return domain.IntentAskMenuInfo
	case menu.QueryCategorySingleItem:
		return domain.IntentAddItem
	case menu.QueryItem:
		if intent == domain.IntentAskMenuInfo {
			return intent
		}
		return domain.IntentAddItem
	default:
		return intent
	}
}
