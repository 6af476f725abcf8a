package store

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sedecyt/industria-cli/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresFromPool(mock), mock
}

func TestPostgres_CreateAndFinishRun(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO etl_runs`).
		WithArgs(pgxmock.AnyArg(), "running", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := s.CreateRun(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	run.Status = model.RunStatusComplete
	run.Companies = 3
	mock.ExpectExec(`UPDATE etl_runs SET`).
		WithArgs("complete", 3, 0, 0, 0, pgxmock.AnyArg(), run.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.FinishRun(ctx, run))
	require.NotNil(t, run.FinishedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FinishRun_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE etl_runs SET`).
		WithArgs("failed", 0, 0, 0, 0, pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.FinishRun(context.Background(), &model.ETLRun{ID: "missing", Status: model.RunStatusFailed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListMunicipalities(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{"id", "name", "keywords"}).
		AddRow(int64(1), "AGUASCALIENTES", []byte(`[]`)).
		AddRow(int64(2), "JESUS MARIA", []byte(`["JESÚS MARÍA"]`))
	mock.ExpectQuery(`SELECT id, name, keywords FROM municipalities`).
		WithArgs(int64(0), catalogPageSize).
		WillReturnRows(rows)

	got, err := s.ListMunicipalities(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "JESUS MARIA", got[1].Name)
	assert.Equal(t, []string{"JESÚS MARÍA"}, got[1].Keywords)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SyncCertifications(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO certifications_catalog`).
		WithArgs("ISO 9001:2015", "ISO9001", "Calidad", "Internacional", pgxmock.AnyArg(), true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	n, err := s.SyncCertifications(context.Background(), []model.Certification{
		{Name: "ISO 9001:2015", Acronym: "ISO9001", Category: "Calidad", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 9001"}, IsActive: true},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CompanyIDsByTaxID(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{"clean_tax_id", "id"}).
		AddRow("ABC680524P76", int64(7)).
		AddRow("XYZ010101AAA", int64(9))
	mock.ExpectQuery(`SELECT clean_tax_id, id FROM companies`).WillReturnRows(rows)

	ids, err := s.CompanyIDsByTaxID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"ABC680524P76": 7, "XYZ010101AAA": 9}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpsertDashboard(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO dashboards`).
		WithArgs("industria", "Industria", "", 1).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)))

	id, err := s.UpsertDashboard(context.Background(), model.Dashboard{Slug: "industria", Title: "Industria", Position: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetDashboard_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, slug, title, description, position FROM dashboards`).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	d, err := s.GetDashboard(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ReplaceResponses_Empty(t *testing.T) {
	s, mock := newMockStore(t)

	// Clearing still runs; the COPY is skipped for zero rows.
	mock.ExpectExec(`DELETE FROM survey_responses`).
		WillReturnResult(pgxmock.NewResult("DELETE", 5))

	n, err := s.ReplaceResponses(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
