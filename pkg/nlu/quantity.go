package nlu

import (
	"strconv"
	"strings"
)

// QuantityKind classifies a quantity reading.
type QuantityKind int

const (
	// QuantityNone means no usable quantity was found.
	QuantityNone QuantityKind = iota
	// QuantityExact carries a concrete Value (which may still be zero).
	QuantityExact
	// QuantityVague is "a few", "some", "several": never defaulted.
	QuantityVague
)

func (k QuantityKind) String() string {
	switch k {
	case QuantityExact:
		return "exact"
	case QuantityVague:
		return "vague"
	default:
		return "none"
	}
}

// Quantity is the result of DetectQuantity.
type Quantity struct {
	Kind  QuantityKind
	Value int
}

var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var vagueQuantityPat = re(`\b(?:few|some|several|many|a\s+lot|lots)\b`)

// maxQuantity bounds digit parsing; larger values are treated as unparseable.
const maxQuantity = 1000

// DetectQuantity reads a quantity from an utterance.
//
// Vague words win over everything, so "a few" is vague rather than "a" = 1.
// Otherwise "couple" is 2, then the first digit run, then the first number
// word (zero to ten), then a, an or single as 1.
func DetectQuantity(text string) Quantity {
	text = NormalizeText(text)
	if text == "" {
		return Quantity{}
	}
	if vagueQuantityPat.MatchString(text) {
		return Quantity{Kind: QuantityVague}
	}

	tokens := strings.Fields(text)
	for _, tok := range tokens {
		if tok == "couple" {
			return Quantity{Kind: QuantityExact, Value: 2}
		}
	}
	for _, tok := range tokens {
		if isDigits(tok) {
			n, err := strconv.Atoi(tok)
			if err != nil || n > maxQuantity {
				return Quantity{}
			}
			return Quantity{Kind: QuantityExact, Value: n}
		}
	}
	for _, tok := range tokens {
		if n, ok := numberWords[tok]; ok {
			return Quantity{Kind: QuantityExact, Value: n}
		}
	}
	for _, tok := range tokens {
		switch tok {
		case "a", "an", "single", "another":
			return Quantity{Kind: QuantityExact, Value: 1}
		}
	}
	return Quantity{}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
