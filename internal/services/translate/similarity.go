package translate

import (
	"math"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity scores how alike a and b are on a 0-100 scale using the
// matching-blocks ratio over Unicode code points. Empty input scores 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	m := difflib.NewMatcher(runes(a), runes(b))
	return m.Ratio() * 100
}

// RoundScore rounds half to even, so 72.5 becomes 72.
func RoundScore(score float64) int {
	return int(math.RoundToEven(score))
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
