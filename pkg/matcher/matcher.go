// Package matcher implements deterministic fuzzy matching of free text against
// named candidates (menu items, side choices, modifiers, size variants).
package matcher

import "strings"

// Candidate is anything with a display name that free text can match.
type Candidate interface {
	DisplayName() string
}

// Normalize lowercases, trims and collapses inner whitespace.
func Normalize(text string) string {
	return strings.Join(Tokens(text), " ")
}

// Tokens splits normalized text into words.
func Tokens(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// MatchChoice returns the candidate best matching text.
//
// Tiers are evaluated in order and the first tier producing a match wins:
// exact normalized name, longest shared ordered n-gram (n >= 2), token
// coverage of the candidate name, raw token overlap.
func MatchChoice[T Candidate](text string, candidates []T) (T, bool) {
	var zero T
	input := Tokens(text)
	if len(input) == 0 || len(candidates) == 0 {
		return zero, false
	}
	norm := strings.Join(input, " ")

	names := make([][]string, len(candidates))
	for i, c := range candidates {
		names[i] = Tokens(c.DisplayName())
		if strings.Join(names[i], " ") == norm {
			return c, true
		}
	}

	bestN, bestIdx := 0, -1
	for i, name := range names {
		if n := longestSharedNGram(input, name, 2); n > bestN {
			bestN, bestIdx = n, i
		}
	}
	if bestIdx >= 0 {
		return candidates[bestIdx], true
	}

	bestCoverage := 0.0
	for i, name := range names {
		if len(name) == 0 {
			continue
		}
		if cov := float64(overlap(input, name)) / float64(len(name)); cov > bestCoverage {
			bestCoverage, bestIdx = cov, i
		}
	}
	if bestIdx >= 0 {
		return candidates[bestIdx], true
	}

	bestOverlap := 0
	for i, name := range names {
		if o := overlap(input, name); o > bestOverlap {
			bestOverlap, bestIdx = o, i
		}
	}
	if bestIdx >= 0 {
		return candidates[bestIdx], true
	}
	return zero, false
}

// ScoreItem scores how well text names an item.
//
// exact: 10; ordered n-gram: 6 + n/maxN; coverage: 4 * ratio; overlap: 1 * count.
// The highest applicable signal is returned, 0 when nothing is shared.
func ScoreItem(text, name string) float64 {
	input := Tokens(text)
	target := Tokens(name)
	if len(input) == 0 || len(target) == 0 {
		return 0
	}
	if strings.Join(input, " ") == strings.Join(target, " ") {
		return 10
	}

	score := 0.0
	maxN := min(len(input), len(target))
	if n := longestSharedNGram(input, target, 1); n > 0 {
		score = 6 + float64(n)/float64(maxN)
	}

	shared := overlap(input, target)
	if shared > 0 {
		score = max(score, 4*float64(shared)/float64(len(target)))
	}
	return max(score, float64(shared))
}

// longestSharedNGram returns the largest n >= floor such that a and b share an
// ordered run of n tokens, or 0.
func longestSharedNGram(a, b []string, floor int) int {
	for n := min(len(a), len(b)); n >= floor && n > 0; n-- {
		grams := make(map[string]struct{}, len(a))
		for i := 0; i+n <= len(a); i++ {
			grams[strings.Join(a[i:i+n], " ")] = struct{}{}
		}
		for i := 0; i+n <= len(b); i++ {
			if _, ok := grams[strings.Join(b[i:i+n], " ")]; ok {
				return n
			}
		}
	}
	return 0
}

func overlap(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	seen := make(map[string]struct{}, len(b))
	count := 0
	for _, t := range b {
		if _, ok := set[t]; !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		count++
	}
	return count
}
