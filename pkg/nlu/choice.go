package nlu

// ChoiceSignal is the slot-scoped reading of an utterance while a side,
// modifier, size or quantity question is open. It is not an intent.
type ChoiceSignal string

const (
	SignalNone       ChoiceSignal = "NONE"
	SignalAskOptions ChoiceSignal = "ASK_OPTIONS"
	SignalDeny       ChoiceSignal = "DENY"
	SignalConfirm    ChoiceSignal = "CONFIRM"
	SignalCancel     ChoiceSignal = "CANCEL"
)

// ResolveChoiceSignal interprets raw text inside a choice step.
//
// Priority: cancel phrases, option requests, deny or negation, confirm.
func ResolveChoiceSignal(text string) ChoiceSignal {
	text = NormalizeText(text)
	if text == "" {
		return SignalNone
	}

	if noCancelPat.MatchString(text) {
		return SignalCancel
	}
	if basicOptionsPat.MatchString(text) {
		return SignalAskOptions
	}
	for _, p := range askOptionsPatterns {
		if p.MatchString(text) {
			return SignalAskOptions
		}
	}
	if noStrongPat.MatchString(text) || noNegationPat.MatchString(text) {
		return SignalDeny
	}
	if yesStrongPat.MatchString(text) {
		return SignalConfirm
	}
	return SignalNone
}
