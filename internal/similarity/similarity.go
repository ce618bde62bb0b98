// Package similarity scores token-level textual overlap between two short
// strings on a 0-100 scale. It is the deterministic backstop used for
// topic deduplication when no model-based judgment is available.
package similarity

import (
	"math"
	"strings"
)

const (
	// minTokenLen drops short tokens (articles, prepositions) before matching.
	minTokenLen = 3
	// maxEditDistance treats near-identical tokens (plurals, typos) as matches.
	maxEditDistance = 2
)

// Score computes the overlap between a and b as an integer in [0, 100].
// An exact case-insensitive match scores 100. Otherwise both strings are
// tokenized on whitespace, tokens shorter than three characters are
// discarded, and a token matches when it contains, is contained by, or is
// within edit distance two of some token on the other side. The score is
// the matched-token count over the larger token set, scaled to 100.
// If either token set is empty the score is 0.
func Score(a, b string) int {
	na := strings.ToLower(strings.TrimSpace(a))
	nb := strings.ToLower(strings.TrimSpace(b))

	if na == nb && na != "" {
		return 100
	}

	ta := tokenize(na)
	tb := tokenize(nb)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	// Matched counts are taken from both sides and the larger one wins,
	// keeping Score(a, b) == Score(b, a) even when containment matches
	// collapse several tokens onto one.
	matched := matchCount(ta, tb)
	if m := matchCount(tb, ta); m > matched {
		matched = m
	}

	larger := len(ta)
	if len(tb) > larger {
		larger = len(tb)
	}

	return int(math.Round(float64(matched) / float64(larger) * 100))
}

func tokenize(s string) []string {
	var tokens []string
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		if len(tok) < minTokenLen || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	return tokens
}

func matchCount(from, against []string) int {
	count := 0
	for _, t := range from {
		for _, u := range against {
			if tokensMatch(t, u) {
				count++
				break
			}
		}
	}
	return count
}

func tokensMatch(a, b string) bool {
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return levenshtein(a, b) <= maxEditDistance
}

// levenshtein computes the classic dynamic-programming edit distance
// between two tokens.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
