package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sedecyt/industria-cli/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func int64Ptr(v int64) *int64 { return &v }

func TestSQLite_SeedAndListCatalogs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.SeedCatalog(ctx, "municipalities", []model.CatalogEntry{
		{Name: "AGUASCALIENTES"},
		{Name: "JESUS MARIA", Keywords: []string{"JESÚS MARÍA"}},
	})
	require.NoError(t, err)

	got, err := s.ListMunicipalities(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "AGUASCALIENTES", got[0].Name)
	assert.Equal(t, []string{"JESÚS MARÍA"}, got[1].Keywords)

	// Re-seeding the same name updates keywords instead of duplicating.
	err = s.SeedCatalog(ctx, "municipalities", []model.CatalogEntry{
		{Name: "AGUASCALIENTES", Keywords: []string{"AGS"}},
	})
	require.NoError(t, err)
	got, err = s.ListMunicipalities(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"AGS"}, got[0].Keywords)

	err = s.SeedCatalog(ctx, "companies", nil)
	require.Error(t, err)
}

func TestSQLite_SyncCertifications(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.SyncCertifications(ctx, []model.Certification{
		{Name: "ISO 9001:2015", Acronym: "ISO9001", Category: "Calidad", SearchKeywords: []string{"ISO 9001"}, IsActive: true},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Second sync with the same acronym updates in place.
	n, err = s.SyncCertifications(ctx, []model.Certification{
		{Name: "ISO 9001:2015", Acronym: "ISO9001", Category: "Gestión de Calidad", SearchKeywords: []string{"ISO 9001", "9001"}, IsActive: true},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	certs, err := s.ListCertifications(ctx)
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, "Gestión de Calidad", certs[0].Category)
	assert.Equal(t, []string{"ISO 9001", "9001"}, certs[0].SearchKeywords)
	assert.True(t, certs[0].IsActive)
}

func TestSQLite_CompanyRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SeedCatalog(ctx, "municipalities", []model.CatalogEntry{{Name: "AGUASCALIENTES"}}))

	empCount := 120
	companies := []model.Company{
		{
			CleanTaxID:       "ABC680524P76",
			TradeName:        "ACME",
			LegalName:        "ACME SA DE CV",
			EmployeeCount:    &empCount,
			MunicipalityID:   int64Ptr(1),
			CertificationIDs: []int64{1, 2},
		},
		{
			CleanTaxID:       "ID_FALTA_TALLER-UNO",
			TradeName:        "TALLER UNO",
			MunicipalityText: "COLONIA CENTRO",
		},
	}
	n, err := s.UpsertCompanies(ctx, companies)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Upserting the same tax ID again must not create a second row.
	companies[0].TradeName = "ACME NORTE"
	_, err = s.UpsertCompanies(ctx, companies[:1])
	require.NoError(t, err)

	got, err := s.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ACME NORTE", got[0].TradeName)
	assert.Equal(t, []int64{1, 2}, got[0].CertificationIDs)
	require.NotNil(t, got[0].EmployeeCount)
	assert.Equal(t, 120, *got[0].EmployeeCount)
	assert.Nil(t, got[1].MunicipalityID)
	assert.Equal(t, "COLONIA CENTRO", got[1].MunicipalityText)

	ids, err := s.CompanyIDsByTaxID(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "ABC680524P76")
}

func TestSQLite_ContactsAndResponses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertCompanies(ctx, []model.Company{{CleanTaxID: "ABC680524P76", TradeName: "ACME"}})
	require.NoError(t, err)
	_, err = s.UpsertContacts(ctx, []model.Contact{
		{CleanEmail: "a@acme.mx", FirstName: "Ana", LastName: "Diaz", Phone: "+524491234567"},
	})
	require.NoError(t, err)

	companyIDs, err := s.CompanyIDsByTaxID(ctx)
	require.NoError(t, err)
	contactIDs, err := s.ContactIDsByEmail(ctx)
	require.NoError(t, err)

	when := time.Date(2024, 5, 2, 10, 30, 0, 0, time.UTC)
	expansion := true
	responses := []model.Response{
		{
			CompanyID:         int64Ptr(companyIDs["ABC680524P76"]),
			ContactID:         int64Ptr(contactIDs["a@acme.mx"]),
			CleanTaxID:        "ABC680524P76",
			CleanEmail:        "a@acme.mx",
			ResponseDate:      &when,
			HasExpansionPlans: &expansion,
			SelectedCertIDs:   []int64{1},
			ExtractedCertIDs:  []int64{2},
			AdditionalData:    map[string]any{"comentarios": "ninguno"},
		},
	}
	n, err := s.ReplaceResponses(ctx, responses)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Replace is a full reload: a second call with one row leaves one row.
	n, err = s.ReplaceResponses(ctx, responses)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := s.ListResponses(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, companyIDs["ABC680524P76"], *got[0].CompanyID)
	assert.Equal(t, []int64{1}, got[0].SelectedCertIDs)
	assert.Equal(t, []int64{2}, got[0].ExtractedCertIDs)
	assert.Equal(t, "ninguno", got[0].AdditionalData["comentarios"])
	require.NotNil(t, got[0].HasExpansionPlans)
	assert.True(t, *got[0].HasExpansionPlans)
}

func TestSQLite_RunLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	run.Status = model.RunStatusComplete
	run.Companies = 10
	run.Responses = 12
	run.Orphans = 1
	require.NoError(t, s.FinishRun(ctx, run))
	require.NotNil(t, run.FinishedAt)

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, model.RunStatusComplete, runs[0].Status)
	assert.Equal(t, 10, runs[0].Companies)
	assert.Equal(t, 1, runs[0].Orphans)

	err = s.FinishRun(ctx, &model.ETLRun{ID: "missing", Status: model.RunStatusFailed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_Dashboards(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	dashID, err := s.UpsertDashboard(ctx, model.Dashboard{Slug: "industria", Title: "Industria", Position: 1})
	require.NoError(t, err)
	require.NotZero(t, dashID)

	// Upsert by slug keeps the same row.
	again, err := s.UpsertDashboard(ctx, model.Dashboard{Slug: "industria", Title: "Industria 2024", Position: 1})
	require.NoError(t, err)
	assert.Equal(t, dashID, again)

	err = s.UpsertChart(ctx, model.Chart{
		DashboardID: dashID,
		Slug:        "empresas-por-municipio",
		Title:       "Empresas por municipio",
		Type:        "bar",
		Data: model.ChartData{
			Labels:   []string{"AGUASCALIENTES", "JESUS MARIA"},
			Datasets: []model.Dataset{{Label: "Empresas", Data: []float64{12, 5}}},
		},
		Position: 1,
		IsActive: true,
	})
	require.NoError(t, err)
	err = s.UpsertChart(ctx, model.Chart{
		DashboardID: dashID,
		Slug:        "inactivo",
		Title:       "Oculto",
		Type:        "pie",
		IsActive:    false,
	})
	require.NoError(t, err)

	list, err := s.ListDashboards(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Industria 2024", list[0].Title)

	d, err := s.GetDashboard(ctx, "industria")
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Len(t, d.Charts, 1) // inactive chart is filtered out
	assert.Equal(t, "empresas-por-municipio", d.Charts[0].Slug)
	assert.Equal(t, []string{"AGUASCALIENTES", "JESUS MARIA"}, d.Charts[0].Data.Labels)
	assert.Equal(t, []float64{12, 5}, d.Charts[0].Data.Datasets[0].Data)

	missing, err := s.GetDashboard(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
