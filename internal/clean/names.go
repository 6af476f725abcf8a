package clean

import (
	"strings"
	"unicode"
)

// ContactName cleans a person-name field: punctuation removed, unicode
// whitespace collapsed, Title Case applied.
func ContactName(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	s = punctSemiRe.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	return titleCaser.String(strings.ToLower(s))
}

// RescueNames applies row-level first/last-name correction for the common
// data-entry errors seen in the survey:
//
//  1. A stray trailing initial in the given name that echoes the surname
//     ("Horacio B" / "Valenzuela Bracamontes") is dropped.
//  2. A surname retyped into the given-name field is removed.
//  3. When the surname is empty, the given name is split: with 3+ tokens
//     the last two become the surname, with exactly 2 they split evenly.
func RescueNames(firstName, lastName string) (string, string) {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)

	if first == "" && last == "" {
		return first, last
	}

	firstWords := strings.Fields(first)

	// Rule 1: drop a trailing initial matching any surname token prefix.
	if last != "" && len(firstWords) >= 2 {
		initial := firstWords[len(firstWords)-1]
		if len([]rune(initial)) <= 2 && isAlpha(initial) {
			for _, w := range strings.Fields(last) {
				if strings.HasPrefix(strings.ToUpper(w), strings.ToUpper(initial)) {
					first = strings.Join(firstWords[:len(firstWords)-1], " ")
					firstWords = firstWords[:len(firstWords)-1]
					break
				}
			}
		}
	}

	// Rule 2: remove a duplicated surname from the given name.
	if last != "" && first != "" {
		lastParts := strings.Fields(last)

		if strings.Contains(first, last) {
			candidate := collapseSpaces(strings.ReplaceAll(first, last, ""))
			if candidate != "" {
				return candidate, last
			}
			// Removal would empty the given name; keep the original.
		} else if len(lastParts) > 0 && strings.Contains(first, lastParts[0]) {
			return collapseSpaces(strings.ReplaceAll(first, lastParts[0], "")), last
		}
	}

	// Rule 3: split a combined name when the surname field is empty.
	if last == "" {
		words := strings.Fields(first)
		switch {
		case len(words) >= 3:
			return strings.Join(words[:len(words)-2], " "), strings.Join(words[len(words)-2:], " ")
		case len(words) == 2:
			return words[0], words[1]
		}
	}

	return first, last
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
