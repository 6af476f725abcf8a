package clean

import (
	"regexp"
	"strings"
)

// Sentinel prefixes for tax IDs that failed validation. They keep bad
// values queryable instead of silently dropping the row.
const (
	TaxIDMissing       = "ID_FALTA"
	TaxIDForeignPrefix = "ID_EXT_"
	TaxIDFailedPrefix  = "ID_FALLO_"
)

var (
	// rfcPattern: 3-4 letters (incl. & and Ñ) + 6 date digits + 3-char homoclave.
	rfcPattern     = regexp.MustCompile(`^[A-Z&Ñ]{3,4}[0-9]{6}[A-Z0-9]{3}$`)
	digitsOnlyRe   = regexp.MustCompile(`^[0-9]+$`)
	taxIDKeepRe    = regexp.MustCompile(`[^A-Z0-9&Ñ]`)
	slugStripRe    = regexp.MustCompile(`[^\w\s]`)
	slugHyphenRe   = regexp.MustCompile(`\s+`)
	failedSnippetN = 15
)

// TaxID normalizes and validates a Mexican RFC, retaining foreign IDs.
//
// Valid RFCs are returned as-is after cleanup. Pure-digit values of a
// typical foreign tax ID length are tagged ID_EXT_. Everything else is
// tagged ID_FALLO_ with a snippet; FinalizeTaxID later appends a slugified
// trade name to force uniqueness.
func TaxID(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return TaxIDMissing
	}

	cleaned := strings.ToUpper(s)
	cleaned = taxIDKeepRe.ReplaceAllString(cleaned, "")

	if rfcPattern.MatchString(cleaned) {
		return cleaned
	}

	if digitsOnlyRe.MatchString(cleaned) && len(cleaned) >= 8 && len(cleaned) <= 15 {
		return TaxIDForeignPrefix + cleaned
	}

	snippet := cleaned
	if len(snippet) > failedSnippetN {
		snippet = snippet[:failedSnippetN]
	}
	return TaxIDFailedPrefix + snippet
}

// IsResolvedTaxID reports whether the value passed RFC validation (as
// opposed to carrying a sentinel prefix).
func IsResolvedTaxID(id string) bool {
	return rfcPattern.MatchString(id)
}

// SlugifyTradeName converts a trade name into a hyphenated slug used to
// disambiguate failed tax IDs.
func SlugifyTradeName(name string) string {
	s := slugStripRe.ReplaceAllString(name, "")
	s = strings.TrimSpace(s)
	return slugHyphenRe.ReplaceAllString(s, "-")
}

// FinalizeTaxID appends the slugified trade name to unresolved and missing
// tax IDs so the synthetic key is globally unique while staying traceable
// to the failure.
func FinalizeTaxID(cleanID, tradeName string) string {
	if !strings.HasPrefix(cleanID, TaxIDFailedPrefix) && cleanID != TaxIDMissing {
		return cleanID
	}
	slug := SlugifyTradeName(tradeName)
	if slug == "" {
		return cleanID
	}
	return cleanID + "_" + slug
}
