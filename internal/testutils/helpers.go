// Package testutils provides shared fixtures for package tests.
package testutils

import (
	"testing"

	"github.com/arushahmd/compass-voice/pkg/menu"
	"github.com/stretchr/testify/require"
)

// MenuYAML is a small but complete menu covering every slot type:
// required sides, optional sides, multi-select modifiers, variant pricing,
// aliases, single-item categories and entity-index entries.
const MenuYAML = `
restaurant_id: demo
items:
  - item_id: taco_chicken
    name: Chicken Taco
    description: Grilled chicken, salsa verde, corn tortilla.
    pricing: {mode: fixed, price_cents: 899}
    categories: [tacos]
    side_groups:
      - group_id: taco_side
        name: Side
        is_required: true
        min_selector: 1
        max_selector: 1
        choices:
          - {item_id: fries, name: French Fries, pricing: {mode: fixed, price_cents: 0}}
          - {item_id: salad, name: Side Salad, pricing: {mode: fixed, price_cents: 150}}
          - {item_id: rings, name: Onion Rings, pricing: {mode: fixed, price_cents: 200}}
  - item_id: burger_classic
    name: Classic Burger
    pricing: {mode: fixed, price_cents: 1099}
    categories: [burgers]
    side_groups:
      - group_id: burger_side
        name: Side
        is_required: false
        min_selector: 0
        max_selector: 1
        choices:
          - {item_id: fries, name: French Fries, pricing: {mode: fixed, price_cents: 0}}
          - {item_id: salad, name: Side Salad, pricing: {mode: fixed, price_cents: 150}}
    modifier_groups:
      - group_id: burger_extras
        name: Extras
        is_required: false
        min_selector: 0
        max_selector: 3
        choices:
          - {modifier_id: cheese, name: Extra Cheese, price_cents: 100}
          - {modifier_id: bacon, name: Bacon, price_cents: 200}
          - {modifier_id: avocado, name: Avocado, price_cents: 150}
  - item_id: burger_veggie
    name: Veggie Burger
    pricing: {mode: fixed, price_cents: 999}
    categories: [burgers]
  - item_id: pizza_margherita
    name: Margherita Pizza
    pricing:
      mode: variant
      variants:
        - {variant_id: small, label: Small, price_cents: 1000}
        - {variant_id: medium, label: Medium, price_cents: 1300}
        - {variant_id: large, label: Large, price_cents: 1600}
    categories: [pizzas]
    modifier_groups:
      - group_id: pizza_toppings
        name: Toppings
        is_required: false
        min_selector: 0
        max_selector: 1
        choices:
          - {modifier_id: mushrooms, name: Mushrooms, price_cents: 100}
          - {modifier_id: olives, name: Olives, price_cents: 100}
  - item_id: soda
    name: Soft Drink
    aliases: [soda, coke]
    pricing:
      mode: variant
      variants:
        - {variant_id: small, label: Small, price_cents: 199}
        - {variant_id: large, label: Large, price_cents: 299}
    categories: [drinks]
  - item_id: brownie
    name: Chocolate Brownie
    pricing: {mode: fixed, price_cents: 499}
    categories: [desserts]
categories:
  - {category_id: tacos, name: Tacos, item_ids: [taco_chicken]}
  - {category_id: burgers, name: Burgers, item_ids: [burger_classic, burger_veggie]}
  - {category_id: pizzas, name: Pizzas, item_ids: [pizza_margherita]}
  - {category_id: drinks, name: Drinks, item_ids: [soda]}
  - {category_id: desserts, name: Desserts, item_ids: [brownie]}
entity_index:
  pop: {type: item, item_id: soda}
  sweets: {type: category, category_id: desserts}
  mains:
    - {type: category, category_id: burgers}
    - {type: category, category_id: pizzas}
`

// Menu parses MenuYAML into a menu, failing the test on error.
func Menu(t testing.TB) *menu.Menu {
	t.Helper()
	m, err := menu.Parse([]byte(MenuYAML), ".yaml")
	require.NoError(t, err, "Failed to parse fixture menu")
	return m
}

// MenuRepository returns a repository over the fixture menu.
func MenuRepository(t testing.TB, opts ...menu.Option) *menu.Repository {
	t.Helper()
	return menu.NewRepository(menu.NewStore(Menu(t)), opts...)
}
