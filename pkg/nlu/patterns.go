package nlu

import (
	"regexp"

	"github.com/arushahmd/compass-voice/pkg/domain"
)

// rule contributes Intent when Pattern matches the normalized utterance.
type rule struct {
	Pattern *regexp.Regexp
	Intent  domain.Intent
}

// table is an ordered list of rules evaluated into a candidate set.
type table []rule

// collect adds the intent of every matching rule to into.
func (t table) collect(text string, into domain.IntentSet) {
	for _, r := range t {
		if r.Pattern.MatchString(text) {
			into.Add(r.Intent)
		}
	}
}

// any reports whether at least one rule matches.
func (t table) any(text string) bool {
	for _, r := range t {
		if r.Pattern.MatchString(text) {
			return true
		}
	}
	return false
}

func re(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}

// Yes / no phrases. Texts reaching these are already lowercased and stripped of
// punctuation, so apostrophes are optional everywhere.
var (
	yesStrongPat = re(`^(?:y|yes|yeah|yep|yup|yah)\b`)
	yesActionPat = re(`^(?:go\s+ahead|proceed|do\s+it|continue|carry\s+on|move\s+forward|confirm|please\s+do|do\s+that)\b`)
	yesSoftPat   = re(`^(?:ok|okay|alright|all\s+right|sure|fine|perfect|great|awesome|sounds\s+good|looks\s+good|works(?:\s+for\s+me)?|that'?s\s+(?:fine|okay|good|correct)|no\s+problem)\b`)

	noStrongPat   = re(`^(?:n|no|nope|nah|na)\b`)
	noCancelPat   = re(`^(?:cancel|cancel\s+that|stop|stop\s+it|never\s?mind|forget\s+it|scratch\s+that|undo\s+that)\b`)
	noNegationPat = re(`^(?:don'?t|do\s+not|no\s+need|no\s+thanks?|i\s+don'?t\s+(?:want|need)|i'?d\s+rather\s+not|not\s+really|i\s+don'?t\s+think\s+so)`)
	noReversalPat = re(`^(?:actually\s+no|wait\s+no|sorry\s+no|i\s+mean\s+no|change\s+that|let\s+me\s+change\s+that|i\s+changed\s+my\s+mind)\b`)
	noDeferPat    = re(`^(?:later|maybe\s+later|not\s+now|not\s+right\s+now|another\s+time|hold\s+on|wait)\b`)
)

// denyPatterns are checked before confirmPatterns: a negative reading wins.
var (
	denyPatterns = table{
		{noCancelPat, domain.IntentCancel},
		{noStrongPat, domain.IntentDeny},
		{noNegationPat, domain.IntentDeny},
		{noReversalPat, domain.IntentDeny},
		{noDeferPat, domain.IntentDeny},
	}
	confirmPatterns = table{
		{yesStrongPat, domain.IntentConfirm},
		{yesActionPat, domain.IntentConfirm},
		{yesSoftPat, domain.IntentConfirm},
	}
)

var orderPatterns = table{
	{re(`^(?:is\s+my\s+order\s+(?:placed|confirmed)|has\s+my\s+order\s+been\s+(?:placed|confirmed)|did\s+my\s+order\s+go\s+through|did\s+it\s+go\s+through|is\s+it\s+confirmed|did\s+you\s+place\s+the\s+order|has\s+it\s+been\s+ordered)`), domain.IntentOrderStatus},
	{re(`^(?:place\s+(?:my\s+)?order|confirm\s+(?:my\s+)?order|checkout|check\s+out|proceed(?:\s+to\s+checkout)?|go\s+ahead\s+and\s+place(?:\s+it|\s+the\s+order)?|submit\s+order|finalize\s+order|complete\s+order)\b`), domain.IntentStartOrder},
	{re(`^(?:that'?s\s+all|that'?s\s+it|that\s+is\s+all|that\s+is\s+it|nothing\s+else|no\s+more(?:\s+items?)?|i'?m\s+done|finished|done\s+ordering|done\s+with\s+my\s+order)\b`), domain.IntentEndAdding},
	{re(`^(?:no|nope|nah|no\s+thanks?|no\s+thank\s+you|i'?m\s+good|i'?m\s+good\s+thanks|all\s+good|that'?s\s+enough|that\s+should\s+be\s+enough)\b`), domain.IntentEndAdding},
	{re(`^(?:right|correct|that'?s\s+correct\s+right|is\s+that\s+all|so\s+that'?s\s+it|just\s+one|only\s+that)\??$`), domain.IntentMetaClarify},
}

var paymentPatterns = table{
	{re(`\b(?:i(?:\s+|')?ve\s+paid|i\s+paid|i'?m\s+done|done|paid\s+already|already\s+paid|payment\s+(?:is\s+)?done|payment\s+completed|payment\s+successful|transaction\s+completed|finished\s+payment|completed\s+payment)\b`), domain.IntentPaymentDone},
	{re(`\b(?:pay\s+now|proceed\s+to\s+pay|send\s+(?:me\s+)?(?:the\s+)?payment\s+link|i\s+(?:want|need|would\s+like)\s+to\s+pay|let\s+me\s+pay|checkout)\b`), domain.IntentPaymentRequest},
}

var cartPatterns = table{
	{re(`^(?:clear\s+(?:my\s+)?(?:cart|order)|empty\s+(?:my\s+)?(?:cart|order)|delete\s+(?:my\s+)?(?:cart|order)|remove\s+(?:everything|all\s+items)|cancel\s+the\s+(?:whole\s+)?order|delete\s+the\s+(?:whole\s+)?order|start\s+over|begin\s+again|reset\s+(?:my\s+)?order)`), domain.IntentClearCart},
	{re(`^(?:what(?:'?s|\s+is)\s+(?:my\s+)?(?:total|bill|amount|price)|how\s+much\s+(?:is\s+it|do\s+i\s+owe|does\s+it\s+cost)|what\s+is\s+the\s+(?:total|bill|amount)|(?:current\s+|order\s+|my\s+order\s+)?total(?:\s+so\s+far|\s+right\s+now)?$|bill(?:\s+so\s+far)?$|price$|cost$)`), domain.IntentShowTotal},
	{re(`^(?:what(?:'?s|\s+is)\s+(?:in|on)\s+my\s+(?:cart|order)|what\s+did\s+i\s+order|what\s+do\s+i\s+have|what\s+have\s+i\s+ordered|what(?:'?s|\s+is)\s+my\s+order(?:\s+so\s+far)?|my\s+order(?:\s+so\s+far)?$|show\s+(?:me\s+)?my\s+(?:cart|order|items)|list\s+(?:my\s+)?(?:cart|order|items)|display\s+(?:my\s+)?(?:cart|order)|read\s+(?:back\s+)?my\s+order|go\s+over\s+my\s+order|tell\s+me\s+what(?:\s+is|'?s)?\s+in\s+my\s+(?:cart|order)|i\s+want\s+to\s+see\s+my\s+(?:cart|order)|let\s+me\s+see\s+my\s+(?:cart|order)|can\s+you\s+show\s+(?:me\s+)?my\s+(?:cart|order))`), domain.IntentShowCart},
	{re(`^(?:do\s+i\s+have\s+\w+|did\s+i\s+(?:already\s+)?(?:order|add)\s+\w+|am\s+i\s+getting\s+\w+|(?:is|are)\s+there\s+\w+\s+in\s+my\s+(?:cart|order)|how\s+many\s+\w+\s+(?:do\s+i\s+have|are\s+in\s+my\s+(?:cart|order))|how\s+many\s+did\s+i\s+order)`), domain.IntentShowCart},
}

var menuInfoPatterns = table{
	{re(`^(?:what\s+(?:kind|types|all)\s+of\s+\w+|what\s+\w+\s+do\s+you\s+have|what\s+are\s+the\s+\w+|which\s+\w+\s+(?:do\s+you\s+have|you\s+have|you\s+got)|show\s+(?:me\s+)?\w+|list\s+(?:all\s+)?\w+|tell\s+me\s+the\s+\w+|do\s+you\s+have\s+(?:any\s+)?\w+|have\s+you\s+got\s+(?:any\s+)?\w+|(?:do\s+)?you\s+(?:serve|sell|offer)\s+\w+|what\s+options\s+do\s+i\s+have\s+for\s+\w+)`), domain.IntentAskMenuInfo},
	{re(`^(?:tell\s+me\s+about\s+\w+|what\s+is\s+\w+|describe\s+\w+|what'?s\s+in\s+\w+|does\s+\w+\s+have|how\s+is\s+\w+|is\s+\w+\s+(?:good|spicy|available))`), domain.IntentAskMenuInfo},
	{re(`\b(?:i\s+want\s+to\s+(?:see|know|check|view)|i'?d\s+like\s+to\s+(?:see|know|check))\b`), domain.IntentAskMenuInfo},
	{whichCategoryPat, domain.IntentAskMenuInfo},
	{re(`^(?:you\s+(?:got|serve|sell|offer)(?:\s+any)?\s+\w+|got(?:\s+any)?\s+\w+|any\s+\w+)$`), domain.IntentAskMenuInfo},
	{re(`^(?:(?:show|read|tell)\s+(?:me\s+)?(?:the\s+|your\s+)?menu|what(?:'?s|\s+is)\s+on\s+the\s+menu|what\s+(?:all\s+)?do\s+you\s+have|what\s+can\s+i\s+(?:get|order)|(?:the\s+)?menu)$`), domain.IntentShowMenu},
}

var pricePatterns = table{
	{re(`\b(?:how\s+much\s+(?:is|are|does)|what'?s\s+the\s+price\s+of|price\s+of|cost\s+of)\b`), domain.IntentAskPrice},
}

var removePatterns = table{
	{re(`\b(?:remove|delete|take\s+out|take\s+off|drop|get\s+rid\s+of)\s+\w+`), domain.IntentRemoveItem},
	{re(`\b(?:i\s+(?:don'?t|do\s+not)\s+(?:want|need)\s+(?:the|my|that)|i\s+want\s+to\s+(?:remove|delete)|i'?d\s+like\s+to\s+(?:remove|delete)|(?:can|could)\s+i\s+(?:remove|delete))\b`), domain.IntentRemoveItem},
}

var addPatterns = table{
	{re(`\b(?:add|give\s+me|get\s+me|order|put\s+(?:in|on)|place\s+an?\s+order\s+for)\b`), domain.IntentAddItem},
	{re(`\b(?:i\s+(?:want|need|wanna)|i\s+would\s+like(?:\s+to\s+order)?|i'?d\s+like(?:\s+to\s+order)?|i'?ll\s+(?:take|have|get)|i'?ll\s+go\s+with|i\s+(?:choose|am\s+choosing)|i'?m\s+going\s+with|(?:let\s+me|can\s+i|could\s+i|may\s+i)\s+(?:get|have))\b`), domain.IntentAddItem},
	{re(`\b(?:make\s+it|let\s+it\s+be|that'?ll\s+be|just|only)\b`), domain.IntentAddItem},
	{re(`\b(?:one|two|three|four|five|\d+)\s+\w+`), domain.IntentAddItem},
}

// bareItemPat is the last-resort add-item match: any run of words.
var bareItemPat = re(`^\w+(?:\s+\w+)*(?:\s+please)?$`)

// Choice-signal phrases, consulted only while a slot is open.
var (
	basicOptionsPat = re(`^(?:(?:what|which|any|show|list|tell|give|read)\b.*\b(?:options?|choices?)|options?|choices?)$`)

	askOptionsPatterns = []*regexp.Regexp{
		re(`^(?:what\s+options\s+do\s+(?:you|i)\s+have|what\s+are\s+(?:my\s+|the\s+)?options|show\s+(?:me\s+)?(?:the\s+)?options|give\s+me\s+options|what\s+options\s+are\s+available|what\s+choices\s+do\s+i\s+have|show\s+available\s+options|what\s+can\s+i\s+choose\s+from)`),
		re(`^(?:what\s+options\s+do\s+you\s+have\s+for\s+\w+|what\s+\w+\s+options\s+do\s+you\s+have|what\s+are\s+the\s+options\s+for\s+\w+|show\s+(?:me\s+)?\w+\s+options|what\s+choices\s+are\s+there\s+for\s+\w+)`),
		re(`^(?:what\s+else\s+do\s+you\s+have|any\s+other\s+options|what\s+are\s+the\s+other\s+options|more\s+options|anything\s+else\s+available)$`),
		re(`^(?:what\s+do\s+you\s+have|what\s+all\s+do\s+you\s+have|what\s+are\s+the\s+choices|what\s+can\s+i\s+get)$`),
	}
)

// Entity capture for menu questions.
var (
	whichCategoryPat  = re(`^which\s+(?P<entity>[\w\s]+?)\s+(?:do\s+you\s+have|you\s+have|you\s+got|do\s+you\s+got|you\s+serve|you\s+sell|available)$`)
	categoryEntityPat = re(`(?:do\s+you\s+have(?:\s+any)?|have\s+you\s+got(?:\s+any)?|you\s+got(?:\s+any)?|got(?:\s+any)?|(?:do\s+)?you\s+(?:serve|sell|offer)|show(?:\s+me)?|list(?:\s+all)?|tell\s+me\s+(?:the|about)|what\s+(?:kind|types|all)\s+of|what\s+(?:is|are)(?:\s+the)?|describe|how\s+is|any)\s+(?P<entity>[\w\s]+)$`)
	whatDoYouHavePat  = re(`^what\s+(?P<entity>\w+)\s+do\s+you\s+have$`)
	bareEntityPat     = re(`^[a-z\s]+s$`)
)

// Query cleanup patterns.
var (
	addFillerPat    = re(`^(?:i\s+(?:want|need|wanna)|i\s+would\s+like(?:\s+to\s+order)?|i'?d\s+like(?:\s+to\s+order)?|i'?ll\s+(?:take|have|get)|i'?ll\s+go\s+with|let\s+me\s+(?:get|have)|(?:can|could|may)\s+i\s+(?:get|have)|give\s+me|get\s+me|order|add|put\s+in|place\s+an?\s+order\s+for)\s+`)
	removeFillerPat = re(`^(?:i\s+(?:don'?t|do\s+not)\s+(?:want|need)|i\s+want\s+to\s+(?:remove|delete|cancel)|i'?d\s+like\s+to\s+(?:remove|delete)|(?:can|could)\s+i\s+(?:remove|delete)|remove|delete|take\s+out|take\s+off|drop|cancel|get\s+rid\s+of)\s+`)
	removeVerbPat   = re(`\b(?:remove|delete|take\s+out|take\s+off|drop|get\s+rid\s+of)\s+`)
	priceFillerPat  = re(`^(?:how\s+much\s+(?:is|are|does|do)|what'?s\s+the\s+price\s+of|what\s+is\s+the\s+price\s+of|price\s+of|cost\s+of)\s+`)
	choiceFillerPat = re(`^(?:i'?ll\s+(?:take|have|go\s+with)|i\s+(?:want|choose|pick)|let'?s\s+(?:do|go\s+with)|give\s+me|make\s+it|go\s+with|lets\s+go\s+with)\s+`)
	separatorPat    = re(`\s*(?:,|\b(?:and|with|plus)\b)\s*`)
	trailingCostPat = re(`\s+(?:cost|costs|be)$`)
)
