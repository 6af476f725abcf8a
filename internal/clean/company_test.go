package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Acme Tooling, S.A. de C.V.", "ACME TOOLING"},
		{"acme tooling sa de cv", "ACME TOOLING"},
		{"Talleres del Norte S. de R.L.", "TALLERES DEL NORTE"},
		{"Fundación Kybernus A.C.", "FUNDACIÓN KYBERNUS"},
		{"Metales  y   Derivados", "METALES Y DERIVADOS"}, // whitespace collapsed
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CompanyName(tt.input), "input: %q", tt.input)
	}
}

func TestCargo(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"GERENTE DE PRODUCCION", "Gerente de Produccion"},
		{"jefe de rh", "Jefe de RH"},
		{"CEO y fundador", "CEO y Fundador"},
		{"de compras", "De Compras"}, // leading stopword keeps Title Case
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Cargo(tt.input), "input: %q", tt.input)
	}
}
