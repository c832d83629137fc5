package titles

import (
	"regexp"
	"sort"
	"strings"
)

// editionPatterns match edition/version suffixes that libraries append to a
// base title. Combined phrases come before their single-word forms so
// "Extended Edition" strips fully instead of leaving a dangling "edition".
var editionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\s+xl\b`),
	regexp.MustCompile(`\s+extended\s+edition\b`),
	regexp.MustCompile(`\s+extended\b`),
	regexp.MustCompile(`\s+uncut\b`),
	regexp.MustCompile(`\s+director'?s?\s*cut\b`),
	regexp.MustCompile(`\s+ultimate\s+edition\b`),
	regexp.MustCompile(`\s+special\s+edition\b`),
	regexp.MustCompile(`\s+remastered\b`),
	regexp.MustCompile(`\s+redux\b`),
	regexp.MustCompile(`\s+\d+(?:st|nd|rd|th)\s+anniversary(?:\s+edition)?\b`),
}

var (
	leadingArticles    = []string{"the ", "a ", "an "}
	trailingYearSuffix = regexp.MustCompile(`\s*\(\d{4}\)\s*$`)
)

// VariantSet holds the normalized and partially-normalized forms of one title.
type VariantSet map[string]struct{}

// NewVariantSet builds a set from pre-computed variant strings, dropping empties.
func NewVariantSet(values ...string) VariantSet {
	set := make(VariantSet, len(values))
	for _, v := range values {
		set.add(v)
	}
	return set
}

func (s VariantSet) add(value string) {
	if value != "" {
		s[value] = struct{}{}
	}
}

// Contains reports whether the exact variant is present.
func (s VariantSet) Contains(value string) bool {
	_, ok := s[value]
	return ok
}

// Intersects reports whether the two sets share at least one variant.
// Exact membership only; no substring comparison.
func (s VariantSet) Intersects(other VariantSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for v := range small {
		if _, ok := large[v]; ok {
			return true
		}
	}
	return false
}

// Union adds every variant from other into s.
func (s VariantSet) Union(other VariantSet) {
	for v := range other {
		s[v] = struct{}{}
	}
}

// Len returns the number of variants in the set.
func (s VariantSet) Len() int { return len(s) }

// Values returns the variants in sorted order for deterministic iteration.
func (s VariantSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Variants generates the matchable textual forms of a title. The result always
// contains the raw lowercased title and the fully normalized form when the
// input is non-empty; an empty input yields an empty set.
func Variants(title string) VariantSet {
	set := make(VariantSet)
	lower := lowerTrimmed(title)
	if lower == "" {
		return set
	}

	set.add(Normalize(title))
	set.add(lower)

	for _, pattern := range editionPatterns {
		base := pattern.ReplaceAllString(lower, "")
		if base != lower {
			set.add(base)
			set.add(Normalize(base))
		}
	}

	for _, article := range leadingArticles {
		if strings.HasPrefix(lower, article) && len(lower) > len(article) {
			variant := lower[len(article):]
			set.add(variant)
			set.add(Normalize(variant))
		}
	}

	if noYear := trailingYearSuffix.ReplaceAllString(lower, ""); noYear != lower {
		set.add(noYear)
		set.add(Normalize(noYear))
	}

	return set
}

func lowerTrimmed(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
