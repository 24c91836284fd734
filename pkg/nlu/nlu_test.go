package nlu_test

import (
	"testing"

	"github.com/arushahmd/compass-voice/internal/testutils"
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/menu"
	"github.com/arushahmd/compass-voice/pkg/nlu"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "whats my total", nlu.NormalizeText("  What's my   TOTAL? "))
	assert.Equal(t, "fries salad", nlu.NormalizeText("fries, salad!"))
	assert.Equal(t, "", nlu.NormalizeText("?!"))
}

func TestSplitCandidates(t *testing.T) {
	assert.Equal(t, []string{"fries", "salad", "onion rings"},
		nlu.SplitCandidates("fries and salad with onion rings"))
	assert.Equal(t, []string{"cheese", "bacon"}, nlu.SplitCandidates("cheese, plus bacon"))
	assert.Empty(t, nlu.SplitCandidates(" and "))
}

func TestCleanNoise(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"um okay so chicken taco please", "chicken taco"},
		{"yes please", "yes please"},
		{"thanks", "thanks"},
		{"id like two chicken tacos please", "two chicken tacos"},
		{"hey i would like a burger too", "a burger"},
		{"yeah fries", "fries"},
		{"no", "no"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, nlu.CleanNoise(tt.in))
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := nlu.NewResolver()

	tests := []struct {
		name  string
		text  string
		state domain.ConversationState
		want  domain.Intent
	}{
		{"bare item", "chicken taco", domain.StateIdle, domain.IntentAddItem},
		{"explicit add", "can i get a classic burger", domain.StateIdle, domain.IntentAddItem},
		{"total is not an item", "What's my total?", domain.StateIdle, domain.IntentShowTotal},
		{"show cart beats show", "show my cart", domain.StateIdle, domain.IntentShowCart},
		{"clear cart", "clear my cart", domain.StateConfirmingOrder, domain.IntentClearCart},
		{"no ends adding when idle", "no", domain.StateIdle, domain.IntentEndAdding},
		{"no denies mid flow", "no", domain.StateWaitingForSide, domain.IntentDeny},
		{"confirm order when idle", "confirm my order", domain.StateIdle, domain.IntentStartOrder},
		{"done when idle", "i'm done", domain.StateIdle, domain.IntentEndAdding},
		{"yes", "yes", domain.StateConfirmingOrder, domain.IntentConfirm},
		{"cancel", "cancel", domain.StateWaitingForSide, domain.IntentCancel},
		{"never mind", "never mind", domain.StateWaitingForQuantity, domain.IntentCancel},
		{"free text mid flow", "fries", domain.StateWaitingForSide, domain.IntentUnknown},
		{"menu info", "do you have any desserts", domain.StateIdle, domain.IntentAskMenuInfo},
		{"show menu", "what do you have", domain.StateIdle, domain.IntentShowMenu},
		{"price", "how much is the classic burger", domain.StateIdle, domain.IntentAskPrice},
		{"remove", "remove the fries", domain.StateIdle, domain.IntentRemoveItem},
		{"remove beats want", "i want to remove the fries", domain.StateIdle, domain.IntentRemoveItem},
		{"order status", "is my order confirmed", domain.StateIdle, domain.IntentOrderStatus},
		{"empty", "   ", domain.StateIdle, domain.IntentUnknown},
		{"paid", "I've paid", domain.StateWaitingForPayment, domain.IntentPaymentDone},
		{"payment scope ignores cart", "show my cart", domain.StateWaitingForPayment, domain.IntentUnknown},
		{"payment scope keeps no", "no", domain.StateWaitingForPayment, domain.IntentDeny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.text, tt.state)
			assert.Equal(t, tt.want, res.Intent)
			assert.Equal(t, tt.text, res.RawText)
		})
	}
}

func TestResolver_Candidates(t *testing.T) {
	res := nlu.NewResolver().Resolve("show my cart", domain.StateIdle)
	assert.True(t, res.Candidates.Has(domain.IntentShowCart))
	assert.False(t, res.Candidates.Has(domain.IntentAddItem), "bare add is disabled by cart readings")
}

func TestResolver_WithPriority(t *testing.T) {
	r := nlu.NewResolver(nlu.WithPriority([]domain.Intent{domain.IntentAskMenuInfo, domain.IntentShowCart}))
	assert.Equal(t, domain.IntentAskMenuInfo, r.Resolve("show my cart", domain.StateIdle).Intent)
}

func TestResolveChoiceSignal(t *testing.T) {
	tests := []struct {
		text string
		want nlu.ChoiceSignal
	}{
		{"what are my options", nlu.SignalAskOptions},
		{"What options do you have?", nlu.SignalAskOptions},
		{"options", nlu.SignalAskOptions},
		{"what else do you have", nlu.SignalAskOptions},
		{"no thanks", nlu.SignalDeny},
		{"I don't want any", nlu.SignalDeny},
		{"nevermind", nlu.SignalCancel},
		{"cancel that", nlu.SignalCancel},
		{"yes", nlu.SignalConfirm},
		{"fries", nlu.SignalNone},
		{"", nlu.SignalNone},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, nlu.ResolveChoiceSignal(tt.text))
		})
	}
}

func TestDetectQuantity(t *testing.T) {
	tests := []struct {
		text  string
		kind  nlu.QuantityKind
		value int
	}{
		{"two", nlu.QuantityExact, 2},
		{"2", nlu.QuantityExact, 2},
		{"make it three please", nlu.QuantityExact, 3},
		{"a couple", nlu.QuantityExact, 2},
		{"just a single one", nlu.QuantityExact, 1},
		{"an", nlu.QuantityExact, 1},
		{"zero", nlu.QuantityExact, 0},
		{"a few", nlu.QuantityVague, 0},
		{"some", nlu.QuantityVague, 0},
		{"a lot", nlu.QuantityVague, 0},
		{"banana", nlu.QuantityNone, 0},
		{"999999999999999999999", nlu.QuantityNone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			q := nlu.DetectQuantity(tt.text)
			assert.Equal(t, tt.kind, q.Kind, q.Kind.String())
			assert.Equal(t, tt.value, q.Value)
		})
	}
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		intent domain.Intent
		state  domain.ConversationState
		want   string
	}{
		{"cart overlay is raw", "Show my Cart!", domain.IntentShowCart, domain.StateIdle, "Show my Cart!"},
		{"entity capture", "Do you have any desserts?", domain.IntentAskMenuInfo, domain.StateIdle, "desserts"},
		{"which capture", "which burgers do you have", domain.IntentAskMenuInfo, domain.StateIdle, "burgers"},
		{"about capture", "tell me about the classic burger", domain.IntentAskMenuInfo, domain.StateIdle, "classic burger"},
		{"bare plural", "pizzas", domain.IntentAskMenuInfo, domain.StateIdle, "pizzas"},
		{"item cleanup", "I'd like two chicken tacos please", domain.IntentAddItem, domain.StateIdle, "chicken tacos"},
		{"item filler", "can i get a soda", domain.IntentAddItem, domain.StateIdle, "soda"},
		{"price", "How much does the classic burger cost?", domain.IntentAskPrice, domain.StateIdle, "classic burger"},
		{"remove", "remove the classic burger from my order", domain.IntentRemoveItem, domain.StateIdle, "classic burger"},
		{"choice keeps separators", "Fries, and salad please", domain.IntentUnknown, domain.StateWaitingForSide, "fries and and salad"},
		{"choice filler", "i'll take the onion rings", domain.IntentUnknown, domain.StateWaitingForSide, "the onion rings"},
		{"default", "two please", domain.IntentUnknown, domain.StateWaitingForQuantity, "two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nlu.NormalizeQuery(tt.raw, tt.intent, tt.state))
		})
	}
}

type stubQuerier struct {
	result menu.QueryResult
}

func (s stubQuerier) ResolveMenuQuery(string) menu.QueryResult { return s.result }

func TestRefiner_Rules(t *testing.T) {
	tests := []struct {
		name   string
		qt     menu.QueryType
		intent domain.Intent
		state  domain.ConversationState
		want   domain.Intent
	}{
		{"category forces info", menu.QueryCategory, domain.IntentAddItem, domain.StateIdle, domain.IntentAskMenuInfo},
		{"category ambiguity forces info", menu.QueryCategoryAmbiguous, domain.IntentUnknown, domain.StateIdle, domain.IntentAskMenuInfo},
		{"single item category adds", menu.QueryCategorySingleItem, domain.IntentAskMenuInfo, domain.StateIdle, domain.IntentAddItem},
		{"item ambiguity forces info", menu.QueryItemAmbiguous, domain.IntentAddItem, domain.StateIdle, domain.IntentAskMenuInfo},
		{"item adds", menu.QueryItem, domain.IntentUnknown, domain.StateIdle, domain.IntentAddItem},
		{"explicit ask wins", menu.QueryItem, domain.IntentAskMenuInfo, domain.StateIdle, domain.IntentAskMenuInfo},
		{"not found keeps intent", menu.QueryNotFound, domain.IntentUnknown, domain.StateIdle, domain.IntentUnknown},
		{"out of scope intent", menu.QueryCategory, domain.IntentShowCart, domain.StateIdle, domain.IntentShowCart},
		{"out of scope state", menu.QueryCategory, domain.IntentAddItem, domain.StateWaitingForSide, domain.IntentAddItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := nlu.NewRefiner(stubQuerier{menu.QueryResult{Type: tt.qt}})
			assert.Equal(t, tt.want, r.Refine(tt.intent, "anything", tt.state))
		})
	}
}

func TestRefiner_WithMenu(t *testing.T) {
	r := nlu.NewRefiner(testutils.MenuRepository(t))

	assert.Equal(t, domain.IntentAskMenuInfo, r.Refine(domain.IntentAddItem, "burgers", domain.StateIdle))
	assert.Equal(t, domain.IntentAddItem, r.Refine(domain.IntentAddItem, "chicken taco", domain.StateIdle))
	assert.Equal(t, domain.IntentAddItem, r.Refine(domain.IntentAddItem, "desserts", domain.StateIdle))
	assert.Equal(t, domain.IntentAskMenuInfo, r.Refine(domain.IntentAddItem, "mains", domain.StateIdle))
}
