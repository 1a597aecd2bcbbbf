package matcher

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// ScoreFunc measures textual closeness of two strings in [0,1].
type ScoreFunc func(a, b string) float64

// Score is the Ratcliff/Obershelp ratio 2*M/T over the runes of both strings
// after lowercasing with lowerText, where M is the total size of the longest matching blocks
// and T the combined length. Two empty strings score 1.
//
// The result depends on argument order for some inputs, so callers always
// pass the query first and the catalog text second.
func Score(a, b string) float64 {
	m := difflib.NewMatcher(splitRunes(lowerText(a)), splitRunes(lowerText(b)))
	return m.Ratio()
}

const (
	capitalSigma = '\u03A3'
	finalSigma   = '\u03C2'
)

// lowerText is strings.ToLower plus the Final_Sigma rule of full Unicode case
// mapping: a capital sigma that ends a word lowers to ς instead of σ.
func lowerText(s string) string {
	if !strings.ContainsRune(s, capitalSigma) {
		return strings.ToLower(s)
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range runes {
		if r == capitalSigma && isFinalSigma(runes, i) {
			b.WriteRune(finalSigma)
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// isFinalSigma reports whether runes[i] is preceded by a cased letter and not
// followed by one, skipping case-ignorable runes in both directions.
func isFinalSigma(runes []rune, i int) bool {
	before := false
	for j := i - 1; j >= 0; j-- {
		if isCaseIgnorable(runes[j]) {
			continue
		}
		before = isCased(runes[j])
		break
	}
	if !before {
		return false
	}

	for j := i + 1; j < len(runes); j++ {
		if isCaseIgnorable(runes[j]) {
			continue
		}
		return !isCased(runes[j])
	}
	return true
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

func isCaseIgnorable(r rune) bool {
	switch r {
	case '\'', '.', ':', '\u00B7', '\u0387', '\u2018', '\u2019', '\u2024', '\u2027':
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf, unicode.Lm, unicode.Sk)
}

func splitRunes(s string) []string {
	return strings.Split(s, "")
}

func clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	}
	return score
}
