package clean

import "strings"

const mxCountryCode = "52"

// Phone standardizes a phone number to E.164-like format, assuming +52 for
// bare 10-digit numbers. Decision table, in priority order:
//
//  1. Already starts with '+': keep digits, re-prefix '+' (covers foreign
//     numbers like +351...); reject if fewer than 8 digits remain.
//  2. Exactly 10 digits: domestic, prepend +52.
//  3. 11+ digits starting with 52: strip the legacy mobile '1' when present
//     (521XXXXXXXXXX), then re-prefix.
//  4. Anything else is unparseable and returns "".
func Phone(text string) string {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return ""
	}

	startsWithPlus := strings.HasPrefix(raw, "+")
	digits := keepDigits(raw)

	switch {
	case startsWithPlus:
		if len(digits) < 8 {
			return ""
		}
		return "+" + digits

	case len(digits) == 10:
		return "+" + mxCountryCode + digits

	case len(digits) >= 11 && strings.HasPrefix(digits, mxCountryCode):
		if len(digits) == 12 && strings.HasPrefix(digits, mxCountryCode+"1") {
			// 521XXXXXXXXXX: drop the mobile artifact digit.
			return "+" + mxCountryCode + digits[3:]
		}
		if len(digits) == 12 {
			return "+" + mxCountryCode + digits[2:]
		}
		return "+" + digits

	default:
		return ""
	}
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
