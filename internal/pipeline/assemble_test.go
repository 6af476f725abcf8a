package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sedecyt/industria-cli/internal/model"
)

func cleanedRow(taxID, email, sector string, ts *time.Time, selected, extracted []int64) model.CleanedRow {
	row := model.CleanedRow{
		FieldTaxID:          taxID,
		FieldEmail:          email,
		FieldSector:         sector,
		FieldSelectedCerts:  selected,
		FieldOtherCerts:     extracted,
		FieldAdditionalData: map[string]any{},
	}
	if ts != nil {
		row[FieldResponseDate] = *ts
	}
	return row
}

func ts(day int) *time.Time {
	t := time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func TestAssemble_LatestSnapshotWins(t *testing.T) {
	tables := Assemble([]model.CleanedRow{
		cleanedRow("ABC680524P76", "a@acme.mx", "AUTOMOTRIZ", ts(1), []int64{100}, nil),
		cleanedRow("ABC680524P76", "a@acme.mx", "AEROESPACIAL", ts(9), nil, []int64{101}),
	})

	require.Len(t, tables.Companies, 1)
	require.Len(t, tables.Responses, 2)

	// Newer submission supplies the attributes; certs union both.
	assert.Equal(t, "AEROESPACIAL", tables.Companies[0].Sector)
	assert.Equal(t, []int64{100, 101}, tables.Companies[0].CertificationIDs)
}

func TestAssemble_NilTimestampLosesToAny(t *testing.T) {
	tables := Assemble([]model.CleanedRow{
		cleanedRow("ABC680524P76", "a@acme.mx", "SIN FECHA", nil, nil, nil),
		cleanedRow("ABC680524P76", "a@acme.mx", "CON FECHA", ts(1), nil, nil),
	})

	require.Len(t, tables.Companies, 1)
	assert.Equal(t, "CON FECHA", tables.Companies[0].Sector)
}

func TestAssemble_ContactsDedupeByEmail(t *testing.T) {
	tables := Assemble([]model.CleanedRow{
		cleanedRow("ABC680524P76", "shared@acme.mx", "A", ts(1), nil, nil),
		cleanedRow("XYZ010101AAA", "shared@acme.mx", "B", ts(2), nil, nil),
		cleanedRow("DEF010101AAA", "", "C", ts(3), nil, nil),
	})

	// Blank emails produce no contact row at all.
	require.Len(t, tables.Contacts, 1)
	assert.Equal(t, "shared@acme.mx", tables.Contacts[0].CleanEmail)
	assert.Len(t, tables.Companies, 3)
}

func TestMapForeignKeys(t *testing.T) {
	responses := []model.Response{
		{CleanTaxID: "ABC680524P76", CleanEmail: "a@acme.mx"},
		{CleanTaxID: "ABC680524P76", CleanEmail: "missing@acme.mx"},
		{CleanTaxID: "UNKNOWN", CleanEmail: "a@acme.mx"},
	}

	kept, orphans := MapForeignKeys(responses,
		map[string]int64{"ABC680524P76": 5},
		map[string]int64{"a@acme.mx": 9})

	assert.Equal(t, 1, orphans)
	require.Len(t, kept, 2)

	require.NotNil(t, kept[0].CompanyID)
	assert.Equal(t, int64(5), *kept[0].CompanyID)
	assert.Equal(t, int64(9), *kept[0].ContactID)

	// Unresolved contact keeps the row with a null FK.
	require.NotNil(t, kept[1].CompanyID)
	assert.Nil(t, kept[1].ContactID)
}
