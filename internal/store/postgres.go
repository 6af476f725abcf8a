package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sedecyt/industria-cli/internal/db"
	"github.com/sedecyt/industria-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection; the
// dashboard read API hits these on every request.
var preparedStatements = map[string]string{
	"get_dashboard":   `SELECT id, slug, title, description, position FROM dashboards WHERE slug = $1`,
	"list_dashboards": `SELECT id, slug, title, description, position FROM dashboards ORDER BY position, slug`,
	"list_charts":     `SELECT id, dashboard_id, chart_slug, title, type, data, options, position, is_active FROM charts WHERE dashboard_id = $1 AND is_active ORDER BY position, chart_slug`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, closeFn: pool.Close}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS municipalities (
	id       BIGSERIAL PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE,
	keywords JSONB NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS industrial_parks (
	id       BIGSERIAL PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE,
	keywords JSONB NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS certifications_catalog (
	id              BIGSERIAL PRIMARY KEY,
	name            TEXT NOT NULL,
	acronym         TEXT NOT NULL UNIQUE,
	category        TEXT NOT NULL DEFAULT '',
	compliance_type TEXT NOT NULL DEFAULT '',
	search_keywords JSONB NOT NULL DEFAULT '[]',
	is_active       BOOLEAN NOT NULL DEFAULT true
);

CREATE TABLE IF NOT EXISTS companies (
	id                   BIGSERIAL PRIMARY KEY,
	clean_tax_id         TEXT NOT NULL UNIQUE,
	trade_name           TEXT NOT NULL DEFAULT '',
	legal_name           TEXT NOT NULL DEFAULT '',
	sector               TEXT NOT NULL DEFAULT '',
	address              TEXT NOT NULL DEFAULT '',
	employee_count       INTEGER,
	municipality_id      BIGINT REFERENCES municipalities(id),
	municipality_text    TEXT NOT NULL DEFAULT '',
	industrial_park_id   BIGINT REFERENCES industrial_parks(id),
	industrial_park_text TEXT NOT NULL DEFAULT '',
	procurement_tier     TEXT NOT NULL DEFAULT '',
	certification_ids    JSONB NOT NULL DEFAULT '[]',
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS contacts (
	id          BIGSERIAL PRIMARY KEY,
	clean_email TEXT NOT NULL UNIQUE,
	first_name  TEXT NOT NULL DEFAULT '',
	last_name   TEXT NOT NULL DEFAULT '',
	position    TEXT NOT NULL DEFAULT '',
	phone       TEXT NOT NULL DEFAULT '',
	mobile      TEXT NOT NULL DEFAULT '',
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS survey_responses (
	id                          BIGSERIAL PRIMARY KEY,
	company_id                  BIGINT NOT NULL REFERENCES companies(id),
	contact_id                  BIGINT REFERENCES contacts(id),
	clean_tax_id                TEXT NOT NULL,
	clean_email                 TEXT NOT NULL DEFAULT '',
	response_date               TIMESTAMPTZ,
	has_expansion_plans         BOOLEAN,
	has_engineering_area        BOOLEAN,
	selected_certification_ids  JSONB NOT NULL DEFAULT '[]',
	extracted_certification_ids JSONB NOT NULL DEFAULT '[]',
	additional_data             JSONB NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS etl_runs (
	id          TEXT PRIMARY KEY,
	status      TEXT NOT NULL DEFAULT 'running',
	companies   INTEGER NOT NULL DEFAULT 0,
	contacts    INTEGER NOT NULL DEFAULT 0,
	responses   INTEGER NOT NULL DEFAULT 0,
	orphans     INTEGER NOT NULL DEFAULT 0,
	started_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	finished_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS dashboards (
	id          BIGSERIAL PRIMARY KEY,
	slug        TEXT NOT NULL UNIQUE,
	title       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	position    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS charts (
	id           BIGSERIAL PRIMARY KEY,
	dashboard_id BIGINT NOT NULL REFERENCES dashboards(id),
	chart_slug   TEXT NOT NULL UNIQUE,
	title        TEXT NOT NULL DEFAULT '',
	type         TEXT NOT NULL DEFAULT 'bar',
	data         JSONB NOT NULL DEFAULT '{}',
	options      JSONB,
	position     INTEGER NOT NULL DEFAULT 0,
	is_active    BOOLEAN NOT NULL DEFAULT true
);

CREATE INDEX IF NOT EXISTS idx_companies_clean_tax_id ON companies(clean_tax_id);
CREATE INDEX IF NOT EXISTS idx_contacts_clean_email ON contacts(clean_email);
CREATE INDEX IF NOT EXISTS idx_responses_company_id ON survey_responses(company_id);
CREATE INDEX IF NOT EXISTS idx_responses_contact_id ON survey_responses(contact_id);
CREATE INDEX IF NOT EXISTS idx_etl_runs_started_at ON etl_runs(started_at DESC);
CREATE INDEX IF NOT EXISTS idx_charts_dashboard_id ON charts(dashboard_id);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// Reference catalogs

func (s *PostgresStore) ListMunicipalities(ctx context.Context) ([]model.CatalogEntry, error) {
	return s.listCatalog(ctx, "municipalities")
}

func (s *PostgresStore) ListIndustrialParks(ctx context.Context) ([]model.CatalogEntry, error) {
	return s.listCatalog(ctx, "industrial_parks")
}

// listCatalog walks a reference table in fixed-size pages ordered by id.
func (s *PostgresStore) listCatalog(ctx context.Context, table string) ([]model.CatalogEntry, error) {
	var entries []model.CatalogEntry
	lastID := int64(0)

	for {
		rows, err := s.pool.Query(ctx,
			`SELECT id, name, keywords FROM `+table+` WHERE id > $1 ORDER BY id LIMIT $2`,
			lastID, catalogPageSize,
		)
		if err != nil {
			return nil, eris.Wrapf(err, "postgres: list %s", table)
		}

		n := 0
		for rows.Next() {
			var e model.CatalogEntry
			var keywordsJSON []byte
			if err := rows.Scan(&e.ID, &e.Name, &keywordsJSON); err != nil {
				rows.Close()
				return nil, eris.Wrapf(err, "postgres: scan %s", table)
			}
			if len(keywordsJSON) > 0 {
				if err := json.Unmarshal(keywordsJSON, &e.Keywords); err != nil {
					rows.Close()
					return nil, eris.Wrapf(err, "postgres: unmarshal %s keywords", table)
				}
			}
			entries = append(entries, e)
			lastID = e.ID
			n++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, eris.Wrapf(err, "postgres: list %s iterate", table)
		}
		if n < catalogPageSize {
			return entries, nil
		}
	}
}

func (s *PostgresStore) ListCertifications(ctx context.Context) ([]model.Certification, error) {
	var certs []model.Certification
	lastID := int64(0)

	for {
		rows, err := s.pool.Query(ctx,
			`SELECT id, name, acronym, category, compliance_type, search_keywords, is_active
			 FROM certifications_catalog WHERE id > $1 ORDER BY id LIMIT $2`,
			lastID, catalogPageSize,
		)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: list certifications")
		}

		n := 0
		for rows.Next() {
			var c model.Certification
			var keywordsJSON []byte
			if err := rows.Scan(&c.ID, &c.Name, &c.Acronym, &c.Category, &c.ComplianceType, &keywordsJSON, &c.IsActive); err != nil {
				rows.Close()
				return nil, eris.Wrap(err, "postgres: scan certification")
			}
			if len(keywordsJSON) > 0 {
				if err := json.Unmarshal(keywordsJSON, &c.SearchKeywords); err != nil {
					rows.Close()
					return nil, eris.Wrap(err, "postgres: unmarshal certification keywords")
				}
			}
			certs = append(certs, c)
			lastID = c.ID
			n++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, eris.Wrap(err, "postgres: list certifications iterate")
		}
		if n < catalogPageSize {
			return certs, nil
		}
	}
}

func (s *PostgresStore) SyncCertifications(ctx context.Context, certs []model.Certification) (int64, error) {
	var n int64
	for _, c := range certs {
		keywordsJSON, err := json.Marshal(c.SearchKeywords)
		if err != nil {
			return n, eris.Wrap(err, "postgres: marshal certification keywords")
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO certifications_catalog (name, acronym, category, compliance_type, search_keywords, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (acronym) DO UPDATE SET
			   name = $1, category = $3, compliance_type = $4, search_keywords = $5, is_active = $6`,
			c.Name, c.Acronym, c.Category, c.ComplianceType, keywordsJSON, c.IsActive,
		)
		if err != nil {
			return n, eris.Wrapf(err, "postgres: sync certification %s", c.Acronym)
		}
		n++
	}
	return n, nil
}

// SeedCatalog inserts reference rows into municipalities or
// industrial_parks, updating keywords for names already present.
func (s *PostgresStore) SeedCatalog(ctx context.Context, table string, entries []model.CatalogEntry) error {
	if table != "municipalities" && table != "industrial_parks" {
		return eris.Errorf("postgres: seed: unknown catalog table %q", table)
	}

	for _, e := range entries {
		keywordsJSON, err := json.Marshal(e.Keywords)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal keywords")
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO `+table+` (name, keywords) VALUES ($1, $2)
			 ON CONFLICT (name) DO UPDATE SET keywords = $2`,
			e.Name, keywordsJSON,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: seed %s", table)
		}
	}
	return nil
}

// Entities

var companyColumns = []string{
	"clean_tax_id", "trade_name", "legal_name", "sector", "address",
	"employee_count", "municipality_id", "municipality_text",
	"industrial_park_id", "industrial_park_text", "procurement_tier",
	"certification_ids", "updated_at",
}

func (s *PostgresStore) UpsertCompanies(ctx context.Context, companies []model.Company) (int64, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(companies))
	for _, c := range companies {
		certIDs, err := json.Marshal(emptyIfNil(c.CertificationIDs))
		if err != nil {
			return 0, eris.Wrap(err, "postgres: marshal certification ids")
		}
		rows = append(rows, []any{
			c.CleanTaxID, c.TradeName, c.LegalName, c.Sector, c.Address,
			c.EmployeeCount, c.MunicipalityID, c.MunicipalityText,
			c.IndustrialParkID, c.IndustrialParkText, c.ProcurementTier,
			certIDs, now,
		})
	}

	return db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "companies",
		Columns:      companyColumns,
		ConflictKeys: []string{"clean_tax_id"},
	}, rows)
}

var contactColumns = []string{
	"clean_email", "first_name", "last_name", "position", "phone", "mobile", "updated_at",
}

func (s *PostgresStore) UpsertContacts(ctx context.Context, contacts []model.Contact) (int64, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []any{
			c.CleanEmail, c.FirstName, c.LastName, c.Position, c.Phone, c.Mobile, now,
		})
	}

	return db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "contacts",
		Columns:      contactColumns,
		ConflictKeys: []string{"clean_email"},
	}, rows)
}

func (s *PostgresStore) CompanyIDsByTaxID(ctx context.Context) (map[string]int64, error) {
	return s.idMap(ctx, `SELECT clean_tax_id, id FROM companies`)
}

func (s *PostgresStore) ContactIDsByEmail(ctx context.Context) (map[string]int64, error) {
	return s.idMap(ctx, `SELECT clean_email, id FROM contacts`)
}

func (s *PostgresStore) idMap(ctx context.Context, query string) (map[string]int64, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: id map")
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var key string
		var id int64
		if err := rows.Scan(&key, &id); err != nil {
			return nil, eris.Wrap(err, "postgres: scan id map")
		}
		out[key] = id
	}
	return out, eris.Wrap(rows.Err(), "postgres: id map iterate")
}

var responseColumns = []string{
	"company_id", "contact_id", "clean_tax_id", "clean_email", "response_date",
	"has_expansion_plans", "has_engineering_area",
	"selected_certification_ids", "extracted_certification_ids", "additional_data",
}

// ReplaceResponses reloads the responses table from scratch. Responses are
// a full snapshot of the source workbook on every run, so replace keeps
// the table in step with it.
func (s *PostgresStore) ReplaceResponses(ctx context.Context, responses []model.Response) (int64, error) {
	if _, err := s.pool.Exec(ctx, `DELETE FROM survey_responses`); err != nil {
		return 0, eris.Wrap(err, "postgres: clear responses")
	}

	rows := make([][]any, 0, len(responses))
	for _, r := range responses {
		selected, err := json.Marshal(emptyIfNil(r.SelectedCertIDs))
		if err != nil {
			return 0, eris.Wrap(err, "postgres: marshal selected cert ids")
		}
		extracted, err := json.Marshal(emptyIfNil(r.ExtractedCertIDs))
		if err != nil {
			return 0, eris.Wrap(err, "postgres: marshal extracted cert ids")
		}
		additional, err := json.Marshal(r.AdditionalData)
		if err != nil {
			return 0, eris.Wrap(err, "postgres: marshal additional data")
		}
		rows = append(rows, []any{
			r.CompanyID, r.ContactID, r.CleanTaxID, r.CleanEmail, r.ResponseDate,
			r.HasExpansionPlans, r.HasEngineeringArea,
			selected, extracted, additional,
		})
	}

	return db.CopyFrom(ctx, s.pool, "survey_responses", responseColumns, rows)
}

func (s *PostgresStore) ListCompanies(ctx context.Context) ([]model.Company, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, clean_tax_id, trade_name, legal_name, sector, address,
		        employee_count, municipality_id, municipality_text,
		        industrial_park_id, industrial_park_text, procurement_tier,
		        certification_ids
		 FROM companies ORDER BY id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list companies")
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		var certIDs []byte
		if err := rows.Scan(&c.ID, &c.CleanTaxID, &c.TradeName, &c.LegalName, &c.Sector, &c.Address,
			&c.EmployeeCount, &c.MunicipalityID, &c.MunicipalityText,
			&c.IndustrialParkID, &c.IndustrialParkText, &c.ProcurementTier,
			&certIDs); err != nil {
			return nil, eris.Wrap(err, "postgres: scan company")
		}
		if len(certIDs) > 0 {
			if err := json.Unmarshal(certIDs, &c.CertificationIDs); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal certification ids")
			}
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "postgres: list companies iterate")
}

func (s *PostgresStore) ListResponses(ctx context.Context) ([]model.Response, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, company_id, contact_id, clean_tax_id, clean_email, response_date,
		        has_expansion_plans, has_engineering_area,
		        selected_certification_ids, extracted_certification_ids, additional_data
		 FROM survey_responses ORDER BY id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list responses")
	}
	defer rows.Close()

	var responses []model.Response
	for rows.Next() {
		var r model.Response
		var selected, extracted, additional []byte
		if err := rows.Scan(&r.ID, &r.CompanyID, &r.ContactID, &r.CleanTaxID, &r.CleanEmail, &r.ResponseDate,
			&r.HasExpansionPlans, &r.HasEngineeringArea,
			&selected, &extracted, &additional); err != nil {
			return nil, eris.Wrap(err, "postgres: scan response")
		}
		if err := unmarshalResponseJSON(&r, selected, extracted, additional); err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, eris.Wrap(rows.Err(), "postgres: list responses iterate")
}

func unmarshalResponseJSON(r *model.Response, selected, extracted, additional []byte) error {
	if len(selected) > 0 {
		if err := json.Unmarshal(selected, &r.SelectedCertIDs); err != nil {
			return eris.Wrap(err, "postgres: unmarshal selected cert ids")
		}
	}
	if len(extracted) > 0 {
		if err := json.Unmarshal(extracted, &r.ExtractedCertIDs); err != nil {
			return eris.Wrap(err, "postgres: unmarshal extracted cert ids")
		}
	}
	if len(additional) > 0 {
		if err := json.Unmarshal(additional, &r.AdditionalData); err != nil {
			return eris.Wrap(err, "postgres: unmarshal additional data")
		}
	}
	return nil
}

// ETL run audit

func (s *PostgresStore) CreateRun(ctx context.Context) (*model.ETLRun, error) {
	run := &model.ETLRun{
		ID:        uuid.New().String(),
		Status:    model.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO etl_runs (id, status, started_at) VALUES ($1, $2, $3)`,
		run.ID, string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}
	return run, nil
}

func (s *PostgresStore) FinishRun(ctx context.Context, run *model.ETLRun) error {
	now := time.Now().UTC()
	run.FinishedAt = &now

	tag, err := s.pool.Exec(ctx,
		`UPDATE etl_runs SET status = $1, companies = $2, contacts = $3, responses = $4, orphans = $5, finished_at = $6
		 WHERE id = $7`,
		string(run.Status), run.Companies, run.Contacts, run.Responses, run.Orphans, now, run.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: finish run %s", run.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("run not found: %s", run.ID)
	}
	return nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]model.ETLRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, status, companies, contacts, responses, orphans, started_at, finished_at
		 FROM etl_runs ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.ETLRun
	for rows.Next() {
		var r model.ETLRun
		if err := rows.Scan(&r.ID, &r.Status, &r.Companies, &r.Contacts, &r.Responses, &r.Orphans, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list runs iterate")
}

// Dashboards

func (s *PostgresStore) UpsertDashboard(ctx context.Context, d model.Dashboard) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO dashboards (slug, title, description, position)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (slug) DO UPDATE SET title = $2, description = $3, position = $4
		 RETURNING id`,
		d.Slug, d.Title, d.Description, d.Position,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "postgres: upsert dashboard %s", d.Slug)
	}
	return id, nil
}

func (s *PostgresStore) UpsertChart(ctx context.Context, chart model.Chart) error {
	dataJSON, err := json.Marshal(chart.Data)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal chart data")
	}
	var optionsJSON []byte
	if chart.Options != nil {
		optionsJSON, err = json.Marshal(chart.Options)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal chart options")
		}
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO charts (dashboard_id, chart_slug, title, type, data, options, position, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (chart_slug) DO UPDATE SET
		   dashboard_id = $1, title = $3, type = $4, data = $5, options = $6, position = $7, is_active = $8`,
		chart.DashboardID, chart.Slug, chart.Title, chart.Type, dataJSON, optionsJSON, chart.Position, chart.IsActive,
	)
	return eris.Wrapf(err, "postgres: upsert chart %s", chart.Slug)
}

func (s *PostgresStore) ListDashboards(ctx context.Context) ([]model.Dashboard, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, slug, title, description, position FROM dashboards ORDER BY position, slug`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list dashboards")
	}
	defer rows.Close()

	var dashboards []model.Dashboard
	for rows.Next() {
		var d model.Dashboard
		if err := rows.Scan(&d.ID, &d.Slug, &d.Title, &d.Description, &d.Position); err != nil {
			return nil, eris.Wrap(err, "postgres: scan dashboard")
		}
		dashboards = append(dashboards, d)
	}
	return dashboards, eris.Wrap(rows.Err(), "postgres: list dashboards iterate")
}

func (s *PostgresStore) GetDashboard(ctx context.Context, slug string) (*model.Dashboard, error) {
	var d model.Dashboard
	err := s.pool.QueryRow(ctx,
		`SELECT id, slug, title, description, position FROM dashboards WHERE slug = $1`,
		slug,
	).Scan(&d.ID, &d.Slug, &d.Title, &d.Description, &d.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get dashboard %s", slug)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, dashboard_id, chart_slug, title, type, data, options, position, is_active
		 FROM charts WHERE dashboard_id = $1 AND is_active ORDER BY position, chart_slug`,
		d.ID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list charts for %s", slug)
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Chart
		var dataJSON, optionsJSON []byte
		if err := rows.Scan(&c.ID, &c.DashboardID, &c.Slug, &c.Title, &c.Type, &dataJSON, &optionsJSON, &c.Position, &c.IsActive); err != nil {
			return nil, eris.Wrap(err, "postgres: scan chart")
		}
		if len(dataJSON) > 0 {
			if err := json.Unmarshal(dataJSON, &c.Data); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal chart data")
			}
		}
		if len(optionsJSON) > 0 {
			if err := json.Unmarshal(optionsJSON, &c.Options); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal chart options")
			}
		}
		d.Charts = append(d.Charts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: list charts iterate")
	}
	return &d, nil
}

// emptyIfNil keeps JSON arrays as [] instead of null.
func emptyIfNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
