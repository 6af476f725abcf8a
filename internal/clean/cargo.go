package clean

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// cargoAcronyms are initialisms that stay fully uppercased in job titles.
var cargoAcronyms = map[string]bool{
	"ceo": true, "cfo": true, "cto": true, "coo": true, "cio": true,
	"vp": true, "hr": true, "it": true, "mkt": true, "pr": true,
	"r&d": true, "i+d": true, "ehs": true, "qc": true, "qa": true,
	"rh": true, "rrhh": true,
}

// cargoStopwords are Spanish prepositions/articles kept lowercase except
// as the first token.
var cargoStopwords = map[string]bool{
	"y": true, "de": true, "del": true, "la": true, "los": true,
	"las": true, "con": true, "para": true, "por": true, "un": true,
	"una": true, "el": true, "a": true, "en": true,
}

var (
	cargoNoiseRe = regexp.MustCompile(`[^\w\s\-\+\&\.\/]`)
	titleCaser   = cases.Title(language.Spanish)
)

// Cargo normalizes a job title with smart casing: Title Case by default,
// stopwords lowercased (except the leading token), known acronyms
// uppercased.
func Cargo(text string) string {
	s := strings.ToUpper(strings.TrimSpace(text))
	if s == "" {
		return ""
	}
	s = cargoNoiseRe.ReplaceAllString(s, " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	out := make([]string, 0, len(words))
	for i, word := range words {
		lower := strings.ToLower(word)
		switch {
		case i > 0 && cargoStopwords[lower]:
			out = append(out, lower)
		case cargoAcronyms[lower]:
			out = append(out, strings.ToUpper(lower))
		default:
			out = append(out, titleCaser.String(lower))
		}
	}
	return strings.Join(out, " ")
}
