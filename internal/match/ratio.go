package match

import (
	"math"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// TokenSortRatio scores the similarity of two strings on a 0-100 scale
// after sorting their whitespace-delimited tokens, so word order does not
// matter: "PARQUE SAN FRANCISCO" vs "SAN FRANCISCO PARQUE" scores 100.
func TokenSortRatio(a, b string) int {
	sim := levenshtein.Similarity(tokenSort(a), tokenSort(b), levenshtein.NewParams())
	return int(math.Round(sim * 100))
}

func tokenSort(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
