package clean

import (
	"regexp"
	"strings"
)

// legalSuffixRe matches the legal-entity suffixes Mexican companies append
// to their names (S.A. de C.V., S.C., S. de R.L., A.C., ...).
var legalSuffixRe = regexp.MustCompile(
	`(?i)\s+(S\.?\s*A\.?\s*(DE\s*C\.?\s*V\.?|CV)?|S\.?\s*C\.?|S\.?\s*(DE\s*)?R\.?\s*L\.?(\s*DE\s*C\.?\s*V\.?)?|ASOCIACION CIVIL|A\.?\s*C\.?)\s*$`)

var punctRe = regexp.MustCompile(`[.,]`)

// CompanyName uppercases a company name and strips legal-entity suffixes
// and stray punctuation so the same company keys identically across
// submissions.
func CompanyName(text string) string {
	s := strings.ToUpper(strings.TrimSpace(text))
	if s == "" {
		return ""
	}
	s = legalSuffixRe.ReplaceAllString(s, "")
	s = punctRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
