package nlu

import "strings"

var (
	fillerNoisePat     = re(`\b(?:um+|uh+|hmm+|hm+|er+|ah+)\b`)
	discourseNoisePat  = re(`\b(?:ok|okay|alright|so|well|yeah)\b`)
	politenessNoisePat = re(`\b(?:please|thanks|thank\s+you|appreciate\s+it|much\s+appreciated)\b`)
	greetingNoisePat   = re(`^(?:hi|hello|hey|howdy|yo|hiya|good\s+(?:morning|afternoon|evening))\b`)
	itemNoisePat       = re(`\b(?:too|also|for\s+me|for\s+us|to\s+me|to\s+us|right\s+now|right\s+away)\b`)
	prefixNoisePat     = re(`^(?:i\s+(?:would\s+)?like|i'?d\s+like|i'?ll\s+go\s+with|let'?s\s+do|with|please)\s+`)
	affirmationPat     = re(`^(?:yes|yeah|yep|ok|okay|sure|alright)\s+(?P<rest>.+)$`)
)

// CleanNoise removes speech-to-text noise from normalized text without
// changing what the user asked for: fillers, discourse markers, politeness,
// greetings and item fluff. A leading affirmation is stripped only when more
// content follows it.
//
// If cleaning would leave nothing, the input is returned unchanged so that
// bare replies like "okay" or "thanks" still reach intent resolution.
func CleanNoise(text string) string {
	if text == "" {
		return ""
	}

	cleaned := prefixNoisePat.ReplaceAllString(text, "")
	cleaned = fillerNoisePat.ReplaceAllString(cleaned, " ")
	cleaned = greetingNoisePat.ReplaceAllString(cleaned, " ")
	cleaned = stripAffirmation(collapse(cleaned))
	cleaned = discourseNoisePat.ReplaceAllString(cleaned, " ")
	cleaned = politenessNoisePat.ReplaceAllString(cleaned, " ")
	cleaned = itemNoisePat.ReplaceAllString(cleaned, " ")
	cleaned = prefixNoisePat.ReplaceAllString(collapse(cleaned), "")
	cleaned = collapse(cleaned)

	if cleaned == "" {
		return text
	}
	return cleaned
}

// stripAffirmation removes leading "yes"/"okay" style words while something
// follows them: "okay chicken taco" becomes "chicken taco", "yes" stays.
func stripAffirmation(text string) string {
	for {
		m := affirmationPat.FindStringSubmatch(text)
		if m == nil {
			return text
		}
		rest := strings.TrimSpace(m[affirmationPat.SubexpIndex("rest")])
		if rest == "" {
			return text
		}
		text = rest
	}
}
