package textutil

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// tokenSplitPattern matches non-alphanumeric character sequences for tokenization.
var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Tokenize splits text into lowercase alphanumeric tokens. Short tokens are
// kept; single-letter words carry signal in titles ("V", "Q", "M").
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	raw := tokenSplitPattern.Split(lowered, -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		if token == "" {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// TokenSortRatio computes a token-order-insensitive similarity between two
// strings, in the range [0, 100]. Tokens of each string are sorted and
// rejoined before the edit-distance comparison, so reordered words score as
// equal. Two empty inputs score 0.
func TokenSortRatio(a, b string) int {
	sa := sortedTokenString(a)
	sb := sortedTokenString(b)
	if sa == "" && sb == "" {
		return 0
	}
	if sa == sb {
		return 100
	}

	distance := levenshtein.ComputeDistance(sa, sb)
	longest := utf8.RuneCountInString(sa)
	if l := utf8.RuneCountInString(sb); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	ratio := 100 * (longest - distance) / longest
	if ratio < 0 {
		return 0
	}
	return ratio
}

func sortedTokenString(text string) string {
	tokens := Tokenize(text)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
