package certs

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sedecyt/industria-cli/internal/model"
)

// genericISOAcronym is the family-level mention that yields to any
// specific ISO certification found in the same text.
const genericISOAcronym = "ISO9000"

type keywordPattern struct {
	keyword string
	acronym string
	re      *regexp.Regexp
}

// Extractor scans free text for known certification mentions.
type Extractor struct {
	patterns []keywordPattern // longest keyword first
}

// NewExtractor builds an extractor from the certification catalog. Every
// search keyword becomes a word-boundary-anchored pattern; keywords are
// ordered longest-first so "ISO 9001" is claimed before the bare "9001"
// can match.
func NewExtractor(catalog []model.Certification) *Extractor {
	var patterns []keywordPattern
	for _, cert := range catalog {
		for _, kw := range cert.SearchKeywords {
			kw = strings.ToUpper(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			patterns = append(patterns, keywordPattern{
				keyword: kw,
				acronym: cert.Acronym,
				re:      regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`),
			})
		}
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		if len(patterns[i].keyword) != len(patterns[j].keyword) {
			return len(patterns[i].keyword) > len(patterns[j].keyword)
		}
		return patterns[i].keyword < patterns[j].keyword
	})

	return &Extractor{patterns: patterns}
}

// Extract returns the sorted unique certification acronyms mentioned in
// the text. The input is expected to be pre-cleaned uppercase
// (clean.AnalysisText); Extract uppercases defensively anyway.
//
// Each matched span is erased from the working text so a shorter keyword
// cannot re-claim it, and the generic ISO9000 mention is suppressed when a
// specific ISO certification was already found.
func (e *Extractor) Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	working := strings.ToUpper(text)
	found := map[string]bool{}

	for _, p := range e.patterns {
		loc := p.re.FindStringIndex(working)
		if loc == nil {
			continue
		}

		found[p.acronym] = true

		// Erase only the first occurrence; later keywords may still match
		// elsewhere in the text.
		working = working[:loc[0]] + working[loc[1]:]
	}

	// Mutual exclusion: the family-level mention yields to any specific
	// ISO certification, no matter which keyword matched first.
	if found[genericISOAcronym] && hasSpecificISO(found) {
		delete(found, genericISOAcronym)
	}

	acronyms := make([]string, 0, len(found))
	for a := range found {
		acronyms = append(acronyms, a)
	}
	sort.Strings(acronyms)
	return acronyms
}

func hasSpecificISO(found map[string]bool) bool {
	for a := range found {
		if strings.HasPrefix(a, "ISO") && a != genericISOAcronym {
			return true
		}
	}
	return false
}
