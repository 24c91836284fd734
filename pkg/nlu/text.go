package nlu

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespacePat = regexp.MustCompile(`\s+`)
	apostrophes   = strings.NewReplacer("’", "", "‘", "", "'", "", "`", "")
)

// NormalizeText lowercases text, removes punctuation and collapses whitespace.
//
// Apostrophes are dropped rather than replaced, so "what's" becomes "whats".
func NormalizeText(text string) string {
	text = apostrophes.Replace(strings.ToLower(strings.TrimSpace(text)))
	text = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return r
	}, text)
	return collapse(text)
}

// SplitCandidates splits a choice utterance into chunks on commas and the
// joiners "and", "with" and "plus". Empty chunks are dropped.
func SplitCandidates(text string) []string {
	var out []string
	for _, part := range separatorPat.Split(strings.ToLower(text), -1) {
		if part = collapse(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func collapse(text string) string {
	return strings.TrimSpace(whitespacePat.ReplaceAllString(text, " "))
}
