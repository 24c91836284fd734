package menu

import (
	"sort"

	"github.com/arushahmd/compass-voice/pkg/matcher"
)

const (
	// DefaultItemThreshold is the minimum score for ResolveItem to accept a match.
	DefaultItemThreshold = 6.5
	// DefaultDominanceThreshold is the score at which one item dominates a menu query.
	DefaultDominanceThreshold = 6.0
	// DefaultAmbiguityRatio selects near-top items (score >= best*ratio) as ambiguous.
	DefaultAmbiguityRatio = 0.85
	// DefaultQueryLimit caps the items returned by a menu query.
	DefaultQueryLimit = 5
	// exactScore is the score granted to entity-index and alias hits.
	exactScore = 10.0
)

// QueryType classifies the dominance of a menu query.
type QueryType string

const (
	QueryItem               QueryType = "ITEM"
	QueryCategory           QueryType = "CATEGORY"
	QueryCategorySingleItem QueryType = "CATEGORY_SINGLE_ITEM"
	QueryItemAmbiguous      QueryType = "ITEM_AMBIGUOUS"
	QueryCategoryAmbiguous  QueryType = "CATEGORY_AMBIGUOUS"
	QueryNotFound           QueryType = "NOT_FOUND"
)

// QueryResult describes what matched in the menu, not what to say about it.
type QueryResult struct {
	Type              QueryType
	Item              *MenuItem
	CategoryID        string
	CategoryName      string
	Items             []*MenuItem
	MatchedItems      []*MenuItem
	MatchedCategories []*Category
}

// Resolution is an accepted item match with its score.
type Resolution struct {
	Item  *MenuItem
	Score float64
}

// Repository is the public, deterministic menu query API.
type Repository struct {
	store              *Store
	itemThreshold      float64
	dominanceThreshold float64
	ambiguityRatio     float64
	limit              int
}

// Option configures the Repository.
type Option func(*Repository)

// WithItemThreshold sets the acceptance threshold of ResolveItem.
func WithItemThreshold(t float64) Option {
	return func(r *Repository) {
		if t > 0 {
			r.itemThreshold = t
		}
	}
}

// WithDominanceThreshold sets the item-dominance threshold of ResolveMenuQuery.
func WithDominanceThreshold(t float64) Option {
	return func(r *Repository) {
		if t > 0 {
			r.dominanceThreshold = t
		}
	}
}

// WithAmbiguityRatio sets the near-top ratio used to detect ambiguity.
func WithAmbiguityRatio(ratio float64) Option {
	return func(r *Repository) {
		if ratio > 0 && ratio <= 1 {
			r.ambiguityRatio = ratio
		}
	}
}

// WithQueryLimit caps the number of items returned by menu queries.
func WithQueryLimit(n int) Option {
	return func(r *Repository) {
		if n > 0 {
			r.limit = n
		}
	}
}

// NewRepository creates a repository over the given store.
func NewRepository(store *Store, opts ...Option) *Repository {
	r := &Repository{
		store:              store,
		itemThreshold:      DefaultItemThreshold,
		dominanceThreshold: DefaultDominanceThreshold,
		ambiguityRatio:     DefaultAmbiguityRatio,
		limit:              DefaultQueryLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the underlying store.
func (r *Repository) Store() *Store { return r.store }

// ItemThreshold returns the configured acceptance threshold.
func (r *Repository) ItemThreshold() float64 { return r.itemThreshold }

// GetItem is a hard lookup; unknown ids return domain.ErrItemNotFound.
func (r *Repository) GetItem(id string) (*MenuItem, error) {
	return r.store.Item(id)
}

// ResolveItem resolves free text to a single item.
//
// Candidates come from the entity index, exact name/alias lookup and the whole
// menu; all are scored and the best is accepted if it reaches the threshold.
// Entity-index and alias hits count as exact matches.
func (r *Repository) ResolveItem(text string) (Resolution, bool) {
	if normalizeKey(text) == "" {
		return Resolution{}, false
	}

	boosted := make(map[string]struct{})
	var ordered []*MenuItem
	seen := make(map[string]struct{})
	add := func(item *MenuItem) {
		if _, ok := seen[item.ItemID]; !ok {
			seen[item.ItemID] = struct{}{}
			ordered = append(ordered, item)
		}
	}

	for _, e := range r.store.FindEntity(text, EntityItem) {
		if item, err := r.store.Item(e.ItemID); err == nil {
			boosted[item.ItemID] = struct{}{}
			add(item)
		}
	}
	if item, ok := r.store.FindItemExact(text); ok {
		boosted[item.ItemID] = struct{}{}
		add(item)
	}
	for i := range r.store.menu.Items {
		add(&r.store.menu.Items[i])
	}

	var best Resolution
	for _, item := range ordered {
		score := scoreNames(text, item)
		if _, ok := boosted[item.ItemID]; ok {
			score = exactScore
		}
		if score > best.Score {
			best = Resolution{Item: item, Score: score}
		}
	}

	if best.Item == nil || best.Score < r.itemThreshold {
		return Resolution{}, false
	}
	return best, true
}

// ResolveMenuQuery classifies a menu question as item, category or ambiguous.
func (r *Repository) ResolveMenuQuery(text string) QueryResult {
	norm := normalizeKey(text)
	if norm == "" {
		return QueryResult{Type: QueryNotFound}
	}

	var entityItems []*MenuItem
	var entityCategories []*Category
	for _, e := range r.store.FindEntity(norm) {
		switch e.Type {
		case EntityItem:
			if item, err := r.store.Item(e.ItemID); err == nil {
				entityItems = append(entityItems, item)
			}
		case EntityCategory:
			if c, ok := r.store.Category(e.CategoryID); ok {
				entityCategories = append(entityCategories, c)
			}
		}
	}

	category, found := r.store.FindCategoryByName(norm)
	if !found && len(entityCategories) == 1 {
		category, found = entityCategories[0], true
	}
	if !found && len(entityCategories) > 1 {
		return QueryResult{Type: QueryCategoryAmbiguous, MatchedCategories: entityCategories}
	}
	if found {
		items := r.store.CategoryItems(category)
		res := QueryResult{CategoryID: category.CategoryID, CategoryName: category.Name}
		if len(items) == 1 {
			res.Type = QueryCategorySingleItem
			res.Items = items
			return res
		}
		res.Type = QueryCategory
		res.Items = limitItems(items, r.limit)
		return res
	}

	if len(entityItems) == 1 {
		return QueryResult{Type: QueryItem, Item: entityItems[0]}
	}

	type scored struct {
		score float64
		item  *MenuItem
	}
	var hits []scored
	for i := range r.store.menu.Items {
		item := &r.store.menu.Items[i]
		if s := scoreNames(norm, item); s > 0 {
			hits = append(hits, scored{s, item})
		}
	}
	if len(hits) == 0 {
		return QueryResult{Type: QueryNotFound}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	best := hits[0]
	if best.score >= r.dominanceThreshold {
		return QueryResult{Type: QueryItem, Item: best.item}
	}

	var strong []*MenuItem
	for _, h := range hits {
		if h.score >= best.score*r.ambiguityRatio {
			strong = append(strong, h.item)
		}
	}
	if len(strong) > 1 {
		return QueryResult{Type: QueryItemAmbiguous, MatchedItems: limitItems(strong, r.limit)}
	}
	return QueryResult{Type: QueryNotFound}
}

// scoreNames scores text against an item's name and aliases, keeping the best.
func scoreNames(text string, item *MenuItem) float64 {
	best := matcher.ScoreItem(text, item.Name)
	for _, alias := range item.Aliases {
		best = max(best, matcher.ScoreItem(text, alias))
	}
	return best
}

func limitItems(items []*MenuItem, n int) []*MenuItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}
