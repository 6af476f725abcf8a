package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"4491234567", "+524491234567"},      // bare 10 digits: assume Mexico
		{"449-922-2100", "+524499222100"},    // separators stripped
		{"+351 244 572 227", "+351244572227"}, // foreign code kept as-is
		{"+52 449 187 1188", "+524491871188"},
		{"5214491871188", "+524491871188"},   // 521 mobile artifact dropped
		{"524491871188", "+524491871188"},    // bare 52 prefix
		{"5244918711881", "+5244918711881"},  // 13 digits starting 52: keep all
		{"+52 449 122 73", "+5244912273"},    // short but explicit '+': kept
		{"12345", ""},                        // unparseable
		{"+1 23", ""},                        // '+' but fewer than 8 digits
		{"912345678", ""},                    // 9 digits, no prefix
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Phone(tt.input), "input: %q", tt.input)
	}
}
