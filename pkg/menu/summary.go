package menu

import (
	"fmt"

	"github.com/arushahmd/compass-voice/pkg/domain"
)

// SummaryLine is one priced cart line.
type SummaryLine struct {
	CartItemID string `json:"cart_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	LineTotal  string `json:"line_total"`
}

// Summary is a read-only, priced view of a cart.
type Summary struct {
	Items      []SummaryLine `json:"items"`
	Total      string        `json:"total"`
	TotalCents int           `json:"total_cents"`
}

// Payload converts the summary into a response payload.
func (s Summary) Payload() domain.Payload {
	return domain.Payload{"items": s.Items, "total": s.Total}
}

// FormatCents renders an amount in cents as "$12.34".
func FormatCents(cents int) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

// SummaryBuilder prices carts against a menu. It is pure and deterministic.
type SummaryBuilder struct {
	repo *Repository
}

// NewSummaryBuilder creates a builder backed by the repository.
func NewSummaryBuilder(repo *Repository) *SummaryBuilder {
	return &SummaryBuilder{repo: repo}
}

// Build prices every cart line: unit = base + sides + modifiers, line = unit * quantity.
// Lines referencing items no longer on the menu are skipped.
func (b *SummaryBuilder) Build(cart domain.Cart) Summary {
	summary := Summary{Items: []SummaryLine{}}
	for _, line := range cart.Items() {
		item, err := b.repo.GetItem(line.ItemID)
		if err != nil {
			continue
		}
		unit := UnitPrice(item, line)
		total := unit * line.Quantity
		summary.TotalCents += total
		summary.Items = append(summary.Items, SummaryLine{
			CartItemID: line.CartItemID,
			Name:       item.Name,
			Quantity:   line.Quantity,
			UnitPrice:  FormatCents(unit),
			LineTotal:  FormatCents(total),
		})
	}
	summary.Total = FormatCents(summary.TotalCents)
	return summary
}

// UnitPrice returns the price in cents of one unit of a cart line.
func UnitPrice(item *MenuItem, line domain.CartItem) int {
	cents := item.Pricing.BasePrice(line.VariantID)
	for _, g := range item.SideGroups {
		chosen := line.Sides[g.GroupID]
		for _, c := range g.Choices {
			if contains(chosen, c.ItemID) {
				cents += c.Pricing.PriceCents
			}
		}
	}
	for _, g := range item.ModifierGroups {
		chosen := line.Modifiers[g.GroupID]
		for _, c := range g.Choices {
			if contains(chosen, c.ModifierID) {
				cents += c.PriceCents
			}
		}
	}
	return cents
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
