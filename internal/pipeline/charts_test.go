package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sedecyt/industria-cli/internal/model"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func TestEnrichCompanies(t *testing.T) {
	cats := testCatalogs(t)

	rows := EnrichCompanies([]model.Company{
		{
			CleanTaxID:       "ABC680524P76",
			TradeName:        "ACME",
			Sector:           "AUTOMOTRIZ",
			EmployeeCount:    intPtr(120),
			MunicipalityID:   int64Ptr(2),
			IndustrialParkID: int64Ptr(10),
			CertificationIDs: []int64{100},
		},
		{
			CleanTaxID:       "XYZ010101AAA",
			MunicipalityText: "villa hidalgo",
		},
	}, cats)
	require.Len(t, rows, 2)

	assert.Equal(t, "JESUS MARIA", rows[0][FieldMunicipality])
	assert.Equal(t, "PARQUE INDUSTRIAL SAN FRANCISCO", rows[0][FieldIndustrialPark])
	assert.Equal(t, 120, rows[0][FieldEmployeeCount])

	// Unresolved geography falls back to the residual text and the
	// explicit no-park label.
	assert.Equal(t, "villa hidalgo", rows[1][FieldMunicipality])
	assert.Equal(t, NoParkLabel, rows[1][FieldIndustrialPark])
	assert.Nil(t, rows[1][FieldEmployeeCount])
}

func TestEnrichResponses(t *testing.T) {
	cats := testCatalogs(t)
	companies := []model.Company{
		{ID: 5, Sector: "AUTOMOTRIZ", MunicipalityID: int64Ptr(1)},
	}
	yes := true

	rows := EnrichResponses([]model.Response{
		{CompanyID: int64Ptr(5), HasExpansionPlans: &yes, SelectedCertIDs: []int64{100}},
		{CompanyID: int64Ptr(404)},
		{},
	}, companies, cats)
	require.Len(t, rows, 3)

	assert.Equal(t, "AUTOMOTRIZ", rows[0][FieldSector])
	assert.Equal(t, "AGUASCALIENTES", rows[0][FieldMunicipality])
	assert.Equal(t, true, rows[0][FieldExpansion])

	// Unknown or missing company leaves the joined fields absent.
	assert.Nil(t, rows[1][FieldSector])
	assert.Nil(t, rows[2][FieldSector])
}

func TestBuildChart(t *testing.T) {
	cats := testCatalogs(t)
	def := Dashboards()[0].Charts[0] // companies-by-municipality

	rows := []Record{
		{FieldMunicipality: "AGUASCALIENTES"},
		{FieldMunicipality: "AGUASCALIENTES"},
		{FieldMunicipality: "JESUS MARIA"},
	}

	chart := BuildChart(def, rows, cats, 1)
	require.NotNil(t, chart)

	assert.Equal(t, "companies-by-municipality", chart.Slug)
	assert.Equal(t, "bar", chart.Type)
	assert.Equal(t, 1, chart.Position)
	assert.True(t, chart.IsActive)

	require.Len(t, chart.Data.Datasets, 1)
	ds := chart.Data.Datasets[0]
	assert.Equal(t, "Nº de Empresas", ds.Label)
	assert.Equal(t, []float64{2, 1}, ds.Data)
	assert.Len(t, ds.BackgroundColor, len(chart.Data.Labels))
	assert.Equal(t, 1, ds.BorderWidth)
}

func TestBuildChart_EmptySeriesSkipped(t *testing.T) {
	cats := testCatalogs(t)
	def := Dashboards()[0].Charts[0]

	assert.Nil(t, BuildChart(def, nil, cats, 1))
}

func TestDashboards_Config(t *testing.T) {
	defs := Dashboards()
	require.NotEmpty(t, defs)

	seen := map[string]bool{}
	for _, d := range defs {
		assert.NotEmpty(t, d.Slug)
		for _, c := range d.Charts {
			assert.False(t, seen[c.Slug], "duplicate chart slug %q", c.Slug)
			seen[c.Slug] = true
			assert.NotNil(t, c.Aggregate, "chart %q has no aggregate", c.Slug)
			assert.Contains(t, []string{SourceCompanies, SourceResponses}, c.Source)
		}
	}
}
