package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSurvey_Basic(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Formulario": {
			{"RFC", "Nombre Comercial", "Correo"},
			{"ABC680524P76", "ACME", "a@acme.mx"},
			{"", "", ""}, // fully empty rows are dropped
			{"XYZ010101AAA", "TALLER UNO", "t@uno.mx"},
		},
	})

	rows, err := ReadSurvey(path, "Formulario")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ABC680524P76", rows[0]["RFC"])
	assert.Equal(t, "a@acme.mx", rows[0]["Correo"])
	assert.Equal(t, "TALLER UNO", rows[1]["Nombre Comercial"])
}

func TestReadSurvey_ShortRowsAndWhitespace(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Formulario": {
			{"RFC", "Nombre Comercial", "Correo"},
			{"  ABC680524P76  ", "ACME"}, // short row: missing cells read as blank
		},
	})

	rows, err := ReadSurvey(path, "Formulario")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ABC680524P76", rows[0]["RFC"])
	assert.Equal(t, "", rows[0]["Correo"])
}

func TestReadSurvey_DuplicateHeaders(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Formulario": {
			{"RFC", "Otro", "Otro"},
			{"ABC680524P76", "primero", "segundo"},
		},
	})

	rows, err := ReadSurvey(path, "Formulario")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "primero", rows[0]["Otro"])
	assert.Equal(t, "segundo", rows[0]["Otro (2)"])
}

func TestReadSurvey_MissingSheet(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {{"a"}},
	})

	_, err := ReadSurvey(path, "Formulario")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
