package handlers

import (
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/menu"
)

// askMenuInfo answers questions about the menu. It never changes the cart or the context.
func (s *Set) askMenuInfo(req Request) domain.HandlerResult {
	if req.Intent == domain.IntentShowMenu {
		return domain.HandlerResult{
			NextState:   domain.StateIdle,
			ResponseKey: "show_menu",
			Payload:     domain.Payload{"categories": categoryNames(s.repo.Store().Categories())},
		}
	}

	q := s.repo.ResolveMenuQuery(req.Query)
	switch q.Type {
	case menu.QueryCategory:
		return domain.HandlerResult{
			NextState:   domain.StateIdle,
			ResponseKey: "show_category",
			Payload: domain.Payload{
				"category_name": q.CategoryName,
				"items":         itemNames(q.Items),
			},
		}
	case menu.QueryItem:
		return itemInfo(q.Item)
	case menu.QueryCategorySingleItem:
		return itemInfo(q.Items[0])
	case menu.QueryItemAmbiguous:
		return domain.HandlerResult{
			NextState:   domain.StateIdle,
			ResponseKey: "menu_ambiguity",
			Payload:     domain.Payload{"options": itemNames(q.MatchedItems)},
		}
	case menu.QueryCategoryAmbiguous:
		names := make([]string, 0, len(q.MatchedCategories))
		for _, c := range q.MatchedCategories {
			names = append(names, c.Name)
		}
		return domain.HandlerResult{
			NextState:   domain.StateIdle,
			ResponseKey: "menu_ambiguity",
			Payload:     domain.Payload{"options": names},
		}
	case menu.QueryNotFound:
	}

	return domain.HandlerResult{
		NextState:   domain.StateIdle,
		ResponseKey: "menu_not_found",
		Payload:     domain.Payload{"query": req.Query},
	}
}

func itemInfo(item *menu.MenuItem) domain.HandlerResult {
	return domain.HandlerResult{
		NextState:   domain.StateIdle,
		ResponseKey: "show_item_info",
		Payload: domain.Payload{
			"item_name":   item.Name,
			"description": item.Description,
			"prices":      priceLines(item),
		},
	}
}

// askPrice answers "how much is X". Only single-item answers are priced.
func (s *Set) askPrice(req Request) domain.HandlerResult {
	q := s.repo.ResolveMenuQuery(req.Query)

	var item *menu.MenuItem
	switch q.Type {
	case menu.QueryItem:
		item = q.Item
	case menu.QueryCategorySingleItem:
		item = q.Items[0]
	default:
		return domain.HandlerResult{
			NextState:   domain.StateIdle,
			ResponseKey: "price_not_found",
			Payload:     domain.Payload{"query": req.Query},
		}
	}

	return domain.HandlerResult{
		NextState:   domain.StateIdle,
		ResponseKey: "show_item_price",
		Payload: domain.Payload{
			"item_name": item.Name,
			"prices":    priceLines(item),
		},
	}
}

// priceLines renders "$8.99" for fixed prices and "Small $10.00" per variant.
func priceLines(item *menu.MenuItem) []string {
	if !item.Pricing.IsVariant() {
		return []string{menu.FormatCents(item.Pricing.PriceCents)}
	}
	out := make([]string, 0, len(item.Pricing.Variants))
	for _, v := range item.Pricing.Variants {
		out = append(out, v.Label+" "+menu.FormatCents(v.PriceCents))
	}
	return out
}

func itemNames(items []*menu.MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func categoryNames(categories []menu.Category) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.Name)
	}
	return out
}
