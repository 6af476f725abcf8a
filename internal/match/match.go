// Package match resolves free-text values against reference catalogs.
//
// Resolution combines an exact lookup over normalized catalog keywords,
// configurable noise-token stripping, and a token-sort-ratio fuzzy
// fallback. Unresolved values surface as residual text for manual review,
// never as fabricated IDs.
package match

import (
	"regexp"
	"strings"
)

// minSignalLen guards noise removal: a removal is accepted only when more
// than this many characters survive. Without the guard, an input that IS
// the noise token ("AGUASCALIENTES" with noise "AGUASCALIENTES") erases to
// nothing and falsely fails to match.
const minSignalLen = 2

// DefaultThreshold is the fuzzy acceptance score used when a catalog does
// not configure its own.
const DefaultThreshold = 87

// degenerateValues are post-cleanup inputs that carry no signal.
var degenerateValues = map[string]bool{
	"NO": true, "NAN": true, "NINGUNO": true, "NA": true, "0": true,
}

var (
	punctStripRe = regexp.MustCompile(`[.,/]`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// Match is the outcome of one catalog resolution.
type Match struct {
	ID       int64
	Resolved bool
	Residual string // cleaned leftover kept for manual review when unresolved
}

// Catalog is a prepared lookup structure over one reference catalog.
// Build it once per run with NewCatalog + Add, then Resolve per value.
type Catalog struct {
	name        string
	threshold   int
	noiseTokens []string
	keywordToID map[string]int64
	candidates  []string // insertion-ordered keys for the fuzzy pass
}

// NewCatalog creates an empty catalog. threshold <= 0 selects
// DefaultThreshold. Noise tokens are normalized with the same folding as
// queries.
func NewCatalog(name string, threshold int, noiseTokens []string) *Catalog {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	normalized := make([]string, 0, len(noiseTokens))
	for _, tok := range noiseTokens {
		if t := Fold(strings.ToUpper(strings.TrimSpace(tok))); t != "" {
			normalized = append(normalized, t)
		}
	}
	return &Catalog{
		name:        name,
		threshold:   threshold,
		noiseTokens: normalized,
		keywordToID: make(map[string]int64),
	}
}

// Add registers an entry under its canonical name and keyword synonyms,
// all normalized identically to queries so exact lookups are
// accent-insensitive.
func (c *Catalog) Add(id int64, names ...string) {
	for _, n := range names {
		key := normalizeKey(n)
		if key == "" {
			continue
		}
		if _, exists := c.keywordToID[key]; !exists {
			c.candidates = append(c.candidates, key)
		}
		c.keywordToID[key] = id
	}
}

// Len returns the number of distinct lookup keys.
func (c *Catalog) Len() int { return len(c.candidates) }

// Resolve maps dirty free text to a catalog ID, or to a cleaned residual
// string when no match clears the threshold.
func (c *Catalog) Resolve(dirty string) Match {
	if strings.TrimSpace(dirty) == "" {
		return Match{}
	}

	cleanText := Fold(strings.ToUpper(strings.TrimSpace(dirty)))

	// Noise removal, accepted only when real signal survives.
	for _, noise := range c.noiseTokens {
		if !strings.Contains(cleanText, noise) {
			continue
		}
		stripped := strings.TrimSpace(strings.ReplaceAll(cleanText, noise, ""))
		stripped = spaceRe.ReplaceAllString(stripped, " ")
		if len(stripped) > minSignalLen {
			cleanText = stripped
		}
	}

	cleanText = punctStripRe.ReplaceAllString(cleanText, "")
	cleanText = strings.ReplaceAll(cleanText, "-", " ")
	cleanText = strings.TrimSpace(spaceRe.ReplaceAllString(cleanText, " "))

	if cleanText == "" || degenerateValues[cleanText] {
		return Match{}
	}

	if id, ok := c.keywordToID[cleanText]; ok {
		return Match{ID: id, Resolved: true}
	}

	if best, score := c.bestFuzzy(cleanText); score >= c.threshold {
		return Match{ID: c.keywordToID[best], Resolved: true}
	}

	return Match{Residual: cleanText}
}

// bestFuzzy returns the highest-scoring candidate key and its score.
func (c *Catalog) bestFuzzy(query string) (string, int) {
	best, bestScore := "", -1
	for _, cand := range c.candidates {
		if score := TokenSortRatio(query, cand); score > bestScore {
			best, bestScore = cand, score
		}
	}
	return best, bestScore
}

func normalizeKey(s string) string {
	key := Fold(strings.ToUpper(strings.TrimSpace(s)))
	key = punctStripRe.ReplaceAllString(key, "")
	key = strings.ReplaceAll(key, "-", " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(key, " "))
}
