package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCleaningMap(t *testing.T) {
	cm, err := ParseCleaningMap([]byte(`
columns:
  - source: "RFC"
    target: "clean_tax_id"
    normalizer: "tax_id"
    entity: "company"
  - source: "Correo electrónico"
    target: "clean_email"
    normalizer: "email"
    entity: "contact"
jsonb_columns:
  - "Comentarios"
`))
	require.NoError(t, err)
	require.Len(t, cm.Columns, 2)
	assert.Equal(t, []string{"Comentarios"}, cm.JSONColumns)

	// Normalizers resolve at parse time.
	assert.Equal(t, "ABC680524P76", cm.Columns[0].fn(" abc-680524-p76 "))
	assert.Equal(t, "ventas@acme.mx", cm.Columns[1].fn(" VENTAS@ACME.MX "))
}

func TestParseCleaningMap_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "no columns",
			yaml: `jsonb_columns: ["x"]`,
			want: "no columns",
		},
		{
			name: "missing target",
			yaml: `
columns:
  - source: "RFC"
    normalizer: "tax_id"
    entity: "company"`,
			want: "missing source or target",
		},
		{
			name: "unknown normalizer",
			yaml: `
columns:
  - source: "RFC"
    target: "clean_tax_id"
    normalizer: "rfc_magic"
    entity: "company"`,
			want: "unknown normalizer",
		},
		{
			name: "unknown entity",
			yaml: `
columns:
  - source: "RFC"
    target: "clean_tax_id"
    normalizer: "tax_id"
    entity: "empresa"`,
			want: "unknown entity",
		},
		{
			name: "duplicate target",
			yaml: `
columns:
  - source: "RFC"
    target: "clean_tax_id"
    normalizer: "tax_id"
    entity: "company"
  - source: "RFC 2"
    target: "clean_tax_id"
    normalizer: "tax_id"
    entity: "company"`,
			want: "duplicate target",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCleaningMap([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadCleaningMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
columns:
  - source: "Sector"
    target: "sector"
    normalizer: "string_upper"
    entity: "company"
`), 0o644))

	cm, err := LoadCleaningMap(path)
	require.NoError(t, err)
	assert.Len(t, cm.Columns, 1)

	_, err = LoadCleaningMap(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
