// Package clean provides the per-field normalizers for raw survey cells.
//
// Every normalizer is total: malformed input degrades to an empty value,
// nil, or a sentinel-prefixed string. Normalizers never return errors.
package clean

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	multiSpaceRe = regexp.MustCompile(`\s+`)
	punctSemiRe  = regexp.MustCompile(`[.,;]`)
	nonDigitRe   = regexp.MustCompile(`\D`)
	lineBreakRe  = regexp.MustCompile(`[\r\n]+`)
	quoteNoiseRe = regexp.MustCompile(`[",'’]`)
	nonAlnumRe   = regexp.MustCompile(`[^\w\s-]`)
)

// String trims surrounding whitespace.
func String(text string) string {
	return strings.TrimSpace(text)
}

// StringUpper trims and uppercases.
func StringUpper(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}

// StringAlnum keeps only word characters, spaces, and hyphens.
func StringAlnum(text string) string {
	return strings.TrimSpace(nonAlnumRe.ReplaceAllString(text, ""))
}

// EnumNull returns nil for blank input so enum columns land as NULL,
// otherwise the trimmed value.
func EnumNull(text string) any {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	return s
}

// Email lowercases and trims. No validation beyond that: the value is a
// downstream dedup key, not a deliverability guarantee.
func Email(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Integer strips all non-digit characters and parses the remainder.
// A resulting zero is treated as "unanswered" and returns nil: zero-employee
// entries are missing data, not literal zero.
func Integer(text string) *int {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	digits := nonDigitRe.ReplaceAllString(s, "")
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n == 0 {
		return nil
	}
	return &n
}

// timestampLayouts are tried in order; sheet exports mix ISO and the
// day-first formats Mexican forms produce.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2/1/2006 15:04:05",
	"02/01/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"02/01/2006",
}

// Timestamp parses a date/time permissively. Returns nil on failure.
func Timestamp(text string) *time.Time {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// affirmativeTokens are the answers counted as "yes".
var affirmativeTokens = map[string]bool{
	"si": true, "sí": true, "yes": true, "true": true, "contar": true,
}

// Boolean maps affirmative answers to true, anything else non-blank to
// false, and blank to nil.
func Boolean(text string) *bool {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return nil
	}
	v := affirmativeTokens[s]
	return &v
}

// CertificationList splits a delimited certification answer into an
// uppercased list. Blank input yields an empty list, not nil: array fields
// use empty-collection-for-missing semantics.
func CertificationList(text string) []string {
	s := strings.TrimSpace(text)
	if s == "" {
		return []string{}
	}
	s = strings.NewReplacer(";", "|", ",", "|", "\n", "|").Replace(s)

	out := []string{}
	for _, item := range strings.Split(s, "|") {
		item = strings.ToUpper(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// AnalysisText flattens free text for keyword scanning: line breaks and
// quote noise removed, whitespace collapsed, uppercased.
func AnalysisText(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	s = lineBreakRe.ReplaceAllString(s, " ")
	s = quoteNoiseRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.ToUpper(strings.TrimSpace(s))
}
