package titles

import (
	"regexp"
	"strings"
)

// differentiatorPatterns match trailing suffixes that distinguish otherwise
// identical titles. Checked in order; first match wins. These are detached
// before punctuation stripping and re-appended afterwards so they survive
// normalization.
var differentiatorPatterns = []struct {
	word string
	re   *regexp.Regexp
}{
	{"jr", regexp.MustCompile(`\bjr\.?\s*$`)},
	{"sr", regexp.MustCompile(`\bsr\.?\s*$`)},
	{"ii", regexp.MustCompile(`\bii\.?\s*$`)},
	{"iii", regexp.MustCompile(`\biii\.?\s*$`)},
	{"iv", regexp.MustCompile(`\biv\.?\s*$`)},
	{"v", regexp.MustCompile(`\bv\.?\s*$`)},
}

var (
	ampersandPattern = regexp.MustCompile(`\s*&\s*`)
	plusPattern      = regexp.MustCompile(`\s*\+\s*`)
	nonAlnumPattern  = regexp.MustCompile(`[^a-z0-9 ]`)
	stopWordPattern  = regexp.MustCompile(`\b(?:and|the|an|a)\b`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a title into a comparable lowercase form.
// It is idempotent: Normalize(Normalize(t)) == Normalize(t).
func Normalize(title string) string {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return ""
	}

	t = ampersandPattern.ReplaceAllString(t, " and ")
	t = plusPattern.ReplaceAllString(t, " and ")

	// Detach the differentiator suffix before stripping punctuation, else
	// "Mythbusters Jr." collapses into "Mythbusters".
	suffix := ""
	for _, p := range differentiatorPatterns {
		if p.re.MatchString(t) {
			suffix = " " + p.word
			t = strings.TrimSpace(p.re.ReplaceAllString(t, ""))
			break
		}
	}

	t = nonAlnumPattern.ReplaceAllString(t, "")
	t = stopWordPattern.ReplaceAllString(t, "")
	t = spacePattern.ReplaceAllString(strings.TrimSpace(t), " ")

	return strings.TrimSpace(t + suffix)
}
