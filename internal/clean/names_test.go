package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"juan perez", "Juan Perez"},
		{"Fernando .", "Fernando"},
		{"Jeanette  Medina", "Jeanette Medina"}, // non-breaking space collapsed
		{"MARÍA; LÓPEZ", "María López"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ContactName(tt.input), "input: %q", tt.input)
	}
}

func TestRescueNames_StrayInitial(t *testing.T) {
	first, last := RescueNames("Horacio B", "Valenzuela Bracamontes")
	assert.Equal(t, "Horacio", first)
	assert.Equal(t, "Valenzuela Bracamontes", last)

	// Initial matches the first surname token too.
	first, last = RescueNames("Ana V", "Valenzuela Bracamontes")
	assert.Equal(t, "Ana", first)
	assert.Equal(t, "Valenzuela Bracamontes", last)

	// A real two-letter name particle that matches no surname stays.
	first, _ = RescueNames("Maria Jo", "Perez")
	assert.Equal(t, "Maria Jo", first)
}

func TestRescueNames_DuplicatedSurname(t *testing.T) {
	// Full surname retyped into the given-name field.
	first, last := RescueNames("Horacio Valenzuela Bracamontes", "Valenzuela Bracamontes")
	assert.Equal(t, "Horacio", first)
	assert.Equal(t, "Valenzuela Bracamontes", last)

	// Only the first surname token duplicated.
	first, last = RescueNames("Joel Mata", "Mata Rodriguez")
	assert.Equal(t, "Joel", first)
	assert.Equal(t, "Mata Rodriguez", last)
}

func TestRescueNames_EmptySurnameSplit(t *testing.T) {
	first, last := RescueNames("Juan Perez", "")
	assert.Equal(t, "Juan", first)
	assert.Equal(t, "Perez", last)

	first, last = RescueNames("Juan Carlos Perez Gomez", "")
	assert.Equal(t, "Juan Carlos", first)
	assert.Equal(t, "Perez Gomez", last)

	// Single token: nothing to split.
	first, last = RescueNames("Juan", "")
	assert.Equal(t, "Juan", first)
	assert.Equal(t, "", last)
}

func TestRescueNames_Blank(t *testing.T) {
	first, last := RescueNames("", "")
	assert.Equal(t, "", first)
	assert.Equal(t, "", last)
}
