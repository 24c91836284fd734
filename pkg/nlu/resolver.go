package nlu

import "github.com/arushahmd/compass-voice/pkg/domain"

// Priority is the fixed order used to collapse a candidate set to one intent.
var Priority = []domain.Intent{
	domain.IntentPaymentDone,
	domain.IntentCancel,
	domain.IntentConfirm,
	domain.IntentDeny,
	domain.IntentShowCart,
	domain.IntentShowTotal,
	domain.IntentClearCart,
	domain.IntentAskPrice,
	domain.IntentShowMenu,
	domain.IntentAskMenuInfo,
	domain.IntentOrderStatus,
	domain.IntentStartOrder,
	domain.IntentPaymentRequest,
	domain.IntentEndAdding,
	domain.IntentRemoveItem,
	domain.IntentAddItem,
	domain.IntentModifyItem,
	domain.IntentMetaClarify,
}

// IntentResult is the outcome of linguistic intent resolution.
type IntentResult struct {
	Intent domain.Intent
	// RawText is the text as given to Resolve.
	RawText string
	// Normalized is the lowercased, punctuation-free text the patterns saw.
	Normalized string
	// Candidates holds every intent any matcher contributed.
	Candidates domain.IntentSet
}

// Resolver classifies utterances with ordered pattern tables. It holds no
// per-turn state and is safe for concurrent use.
type Resolver struct {
	priority []domain.Intent
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithPriority overrides the intent priority order.
func WithPriority(order []domain.Intent) ResolverOption {
	return func(r *Resolver) {
		if len(order) > 0 {
			r.priority = order
		}
	}
}

// NewResolver creates a Resolver with the default priority order.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{priority: Priority}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the intent of text as spoken in state.
//
// While waiting for payment only the payment and yes/no families run. In IDLE
// the add-item family runs as well; its bare-noun fallback is disabled when a
// cart, status, remove, price or menu reading is already present.
func (r *Resolver) Resolve(text string, state domain.ConversationState) IntentResult {
	normalized := NormalizeText(text)
	res := IntentResult{
		Intent:     domain.IntentUnknown,
		RawText:    text,
		Normalized: normalized,
		Candidates: domain.IntentSet{},
	}
	if normalized == "" {
		return res
	}

	matches := res.Candidates
	if state == domain.StateWaitingForPayment {
		paymentPatterns.collect(normalized, matches)
		matchYesNo(normalized, matches)
		res.Intent = r.pick(matches)
		return res
	}

	matchYesNo(normalized, matches)
	orderPatterns.collect(normalized, matches)
	paymentPatterns.collect(normalized, matches)
	delete(matches, domain.IntentPaymentDone)
	cartPatterns.collect(normalized, matches)
	pricePatterns.collect(normalized, matches)
	menuInfoPatterns.collect(normalized, matches)
	removePatterns.collect(normalized, matches)

	if state == domain.StateIdle {
		if matches.HasAny(domain.IntentStartOrder, domain.IntentEndAdding) {
			delete(matches, domain.IntentConfirm)
			delete(matches, domain.IntentDeny)
		}
		if matchAddItem(normalized, !matches.HasAny(
			domain.IntentShowCart,
			domain.IntentShowTotal,
			domain.IntentOrderStatus,
			domain.IntentClearCart,
			domain.IntentRemoveItem,
			domain.IntentAskPrice,
			domain.IntentAskMenuInfo,
			domain.IntentShowMenu,
			domain.IntentStartOrder,
			domain.IntentEndAdding,
			domain.IntentPaymentRequest,
			domain.IntentCancel,
			domain.IntentConfirm,
			domain.IntentDeny,
		)) {
			matches.Add(domain.IntentAddItem)
		}
	}

	res.Intent = r.pick(matches)
	return res
}

func (r *Resolver) pick(matches domain.IntentSet) domain.Intent {
	for _, intent := range r.priority {
		if matches.Has(intent) {
			return intent
		}
	}
	return domain.IntentUnknown
}

// matchYesNo contributes at most one of CANCEL, DENY or CONFIRM; a negative
// reading suppresses the positive one.
func matchYesNo(text string, into domain.IntentSet) {
	for _, r := range denyPatterns {
		if r.Pattern.MatchString(text) {
			into.Add(r.Intent)
			return
		}
	}
	if confirmPatterns.any(text) {
		into.Add(domain.IntentConfirm)
	}
}

// matchAddItem reports whether text reads like an add-item request. allowBare
// enables the last-resort match of any plain run of words.
func matchAddItem(text string, allowBare bool) bool {
	if addPatterns.any(text) {
		return true
	}
	return allowBare && bareItemPat.MatchString(text)
}
