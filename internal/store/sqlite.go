package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sedecyt/industria-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. It exists for
// local and dev runs; JSON columns are stored as TEXT.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS municipalities (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL UNIQUE,
	keywords TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS industrial_parks (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL UNIQUE,
	keywords TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS certifications_catalog (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	name            TEXT NOT NULL,
	acronym         TEXT NOT NULL UNIQUE,
	category        TEXT NOT NULL DEFAULT '',
	compliance_type TEXT NOT NULL DEFAULT '',
	search_keywords TEXT NOT NULL DEFAULT '[]',
	is_active       INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS companies (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	clean_tax_id         TEXT NOT NULL UNIQUE,
	trade_name           TEXT NOT NULL DEFAULT '',
	legal_name           TEXT NOT NULL DEFAULT '',
	sector               TEXT NOT NULL DEFAULT '',
	address              TEXT NOT NULL DEFAULT '',
	employee_count       INTEGER,
	municipality_id      INTEGER REFERENCES municipalities(id),
	municipality_text    TEXT NOT NULL DEFAULT '',
	industrial_park_id   INTEGER REFERENCES industrial_parks(id),
	industrial_park_text TEXT NOT NULL DEFAULT '',
	procurement_tier     TEXT NOT NULL DEFAULT '',
	certification_ids    TEXT NOT NULL DEFAULT '[]',
	updated_at           DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS contacts (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	clean_email TEXT NOT NULL UNIQUE,
	first_name  TEXT NOT NULL DEFAULT '',
	last_name   TEXT NOT NULL DEFAULT '',
	position    TEXT NOT NULL DEFAULT '',
	phone       TEXT NOT NULL DEFAULT '',
	mobile      TEXT NOT NULL DEFAULT '',
	updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS survey_responses (
	id                          INTEGER PRIMARY KEY AUTOINCREMENT,
	company_id                  INTEGER NOT NULL REFERENCES companies(id),
	contact_id                  INTEGER REFERENCES contacts(id),
	clean_tax_id                TEXT NOT NULL,
	clean_email                 TEXT NOT NULL DEFAULT '',
	response_date               DATETIME,
	has_expansion_plans         INTEGER,
	has_engineering_area        INTEGER,
	selected_certification_ids  TEXT NOT NULL DEFAULT '[]',
	extracted_certification_ids TEXT NOT NULL DEFAULT '[]',
	additional_data             TEXT NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS etl_runs (
	id          TEXT PRIMARY KEY,
	status      TEXT NOT NULL DEFAULT 'running',
	companies   INTEGER NOT NULL DEFAULT 0,
	contacts    INTEGER NOT NULL DEFAULT 0,
	responses   INTEGER NOT NULL DEFAULT 0,
	orphans     INTEGER NOT NULL DEFAULT 0,
	started_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	finished_at DATETIME
);

CREATE TABLE IF NOT EXISTS dashboards (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	slug        TEXT NOT NULL UNIQUE,
	title       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	position    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS charts (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	dashboard_id INTEGER NOT NULL REFERENCES dashboards(id),
	chart_slug   TEXT NOT NULL UNIQUE,
	title        TEXT NOT NULL DEFAULT '',
	type         TEXT NOT NULL DEFAULT 'bar',
	data         TEXT NOT NULL DEFAULT '{}',
	options      TEXT,
	position     INTEGER NOT NULL DEFAULT 0,
	is_active    INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_responses_company_id ON survey_responses(company_id);
CREATE INDEX IF NOT EXISTS idx_responses_contact_id ON survey_responses(contact_id);
CREATE INDEX IF NOT EXISTS idx_etl_runs_started_at ON etl_runs(started_at DESC);
CREATE INDEX IF NOT EXISTS idx_charts_dashboard_id ON charts(dashboard_id);
`

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reference catalogs

func (s *SQLiteStore) ListMunicipalities(ctx context.Context) ([]model.CatalogEntry, error) {
	return s.listCatalog(ctx, "municipalities")
}

func (s *SQLiteStore) ListIndustrialParks(ctx context.Context) ([]model.CatalogEntry, error) {
	return s.listCatalog(ctx, "industrial_parks")
}

func (s *SQLiteStore) listCatalog(ctx context.Context, table string) ([]model.CatalogEntry, error) {
	var entries []model.CatalogEntry
	lastID := int64(0)

	for {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, name, keywords FROM `+table+` WHERE id > ? ORDER BY id LIMIT ?`,
			lastID, catalogPageSize,
		)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: list %s", table)
		}

		n := 0
		for rows.Next() {
			var e model.CatalogEntry
			var keywordsJSON string
			if err := rows.Scan(&e.ID, &e.Name, &keywordsJSON); err != nil {
				rows.Close()
				return nil, eris.Wrapf(err, "sqlite: scan %s", table)
			}
			if keywordsJSON != "" {
				if err := json.Unmarshal([]byte(keywordsJSON), &e.Keywords); err != nil {
					rows.Close()
					return nil, eris.Wrapf(err, "sqlite: unmarshal %s keywords", table)
				}
			}
			entries = append(entries, e)
			lastID = e.ID
			n++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, eris.Wrapf(err, "sqlite: list %s iterate", table)
		}
		if n < catalogPageSize {
			return entries, nil
		}
	}
}

func (s *SQLiteStore) ListCertifications(ctx context.Context) ([]model.Certification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, acronym, category, compliance_type, search_keywords, is_active
		 FROM certifications_catalog ORDER BY id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list certifications")
	}
	defer rows.Close()

	var certs []model.Certification
	for rows.Next() {
		var c model.Certification
		var keywordsJSON string
		if err := rows.Scan(&c.ID, &c.Name, &c.Acronym, &c.Category, &c.ComplianceType, &keywordsJSON, &c.IsActive); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan certification")
		}
		if keywordsJSON != "" {
			if err := json.Unmarshal([]byte(keywordsJSON), &c.SearchKeywords); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal certification keywords")
			}
		}
		certs = append(certs, c)
	}
	return certs, eris.Wrap(rows.Err(), "sqlite: list certifications iterate")
}

func (s *SQLiteStore) SyncCertifications(ctx context.Context, certs []model.Certification) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: sync certifications begin")
	}
	defer tx.Rollback()

	var n int64
	for _, c := range certs {
		keywordsJSON, err := json.Marshal(c.SearchKeywords)
		if err != nil {
			return 0, eris.Wrap(err, "sqlite: marshal certification keywords")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO certifications_catalog (name, acronym, category, compliance_type, search_keywords, is_active)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (acronym) DO UPDATE SET
			   name = excluded.name, category = excluded.category,
			   compliance_type = excluded.compliance_type,
			   search_keywords = excluded.search_keywords, is_active = excluded.is_active`,
			c.Name, c.Acronym, c.Category, c.ComplianceType, string(keywordsJSON), c.IsActive,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: sync certification %s", c.Acronym)
		}
		n++
	}
	return n, eris.Wrap(tx.Commit(), "sqlite: sync certifications commit")
}

// SeedCatalog inserts reference rows into municipalities or
// industrial_parks, updating keywords for names already present.
func (s *SQLiteStore) SeedCatalog(ctx context.Context, table string, entries []model.CatalogEntry) error {
	if table != "municipalities" && table != "industrial_parks" {
		return eris.Errorf("sqlite: seed: unknown catalog table %q", table)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: seed begin")
	}
	defer tx.Rollback()

	for _, e := range entries {
		keywordsJSON, err := json.Marshal(e.Keywords)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal keywords")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO `+table+` (name, keywords) VALUES (?, ?)
			 ON CONFLICT (name) DO UPDATE SET keywords = excluded.keywords`,
			e.Name, string(keywordsJSON),
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: seed %s", table)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: seed commit")
}

// Entities

func (s *SQLiteStore) UpsertCompanies(ctx context.Context, companies []model.Company) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: upsert companies begin")
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var n int64
	for _, c := range companies {
		certIDs, err := json.Marshal(emptyIfNil(c.CertificationIDs))
		if err != nil {
			return 0, eris.Wrap(err, "sqlite: marshal certification ids")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO companies (clean_tax_id, trade_name, legal_name, sector, address,
			   employee_count, municipality_id, municipality_text,
			   industrial_park_id, industrial_park_text, procurement_tier,
			   certification_ids, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (clean_tax_id) DO UPDATE SET
			   trade_name = excluded.trade_name, legal_name = excluded.legal_name,
			   sector = excluded.sector, address = excluded.address,
			   employee_count = excluded.employee_count,
			   municipality_id = excluded.municipality_id,
			   municipality_text = excluded.municipality_text,
			   industrial_park_id = excluded.industrial_park_id,
			   industrial_park_text = excluded.industrial_park_text,
			   procurement_tier = excluded.procurement_tier,
			   certification_ids = excluded.certification_ids,
			   updated_at = excluded.updated_at`,
			c.CleanTaxID, c.TradeName, c.LegalName, c.Sector, c.Address,
			c.EmployeeCount, c.MunicipalityID, c.MunicipalityText,
			c.IndustrialParkID, c.IndustrialParkText, c.ProcurementTier,
			string(certIDs), now,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert company %s", c.CleanTaxID)
		}
		n++
	}
	return n, eris.Wrap(tx.Commit(), "sqlite: upsert companies commit")
}

func (s *SQLiteStore) UpsertContacts(ctx context.Context, contacts []model.Contact) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: upsert contacts begin")
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var n int64
	for _, c := range contacts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO contacts (clean_email, first_name, last_name, position, phone, mobile, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (clean_email) DO UPDATE SET
			   first_name = excluded.first_name, last_name = excluded.last_name,
			   position = excluded.position, phone = excluded.phone,
			   mobile = excluded.mobile, updated_at = excluded.updated_at`,
			c.CleanEmail, c.FirstName, c.LastName, c.Position, c.Phone, c.Mobile, now,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert contact %s", c.CleanEmail)
		}
		n++
	}
	return n, eris.Wrap(tx.Commit(), "sqlite: upsert contacts commit")
}

func (s *SQLiteStore) CompanyIDsByTaxID(ctx context.Context) (map[string]int64, error) {
	return s.idMap(ctx, `SELECT clean_tax_id, id FROM companies`)
}

func (s *SQLiteStore) ContactIDsByEmail(ctx context.Context) (map[string]int64, error) {
	return s.idMap(ctx, `SELECT clean_email, id FROM contacts`)
}

func (s *SQLiteStore) idMap(ctx context.Context, query string) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: id map")
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var key string
		var id int64
		if err := rows.Scan(&key, &id); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan id map")
		}
		out[key] = id
	}
	return out, eris.Wrap(rows.Err(), "sqlite: id map iterate")
}

func (s *SQLiteStore) ReplaceResponses(ctx context.Context, responses []model.Response) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: replace responses begin")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM survey_responses`); err != nil {
		return 0, eris.Wrap(err, "sqlite: clear responses")
	}

	var n int64
	for _, r := range responses {
		selected, err := json.Marshal(emptyIfNil(r.SelectedCertIDs))
		if err != nil {
			return 0, eris.Wrap(err, "sqlite: marshal selected cert ids")
		}
		extracted, err := json.Marshal(emptyIfNil(r.ExtractedCertIDs))
		if err != nil {
			return 0, eris.Wrap(err, "sqlite: marshal extracted cert ids")
		}
		additional, err := json.Marshal(r.AdditionalData)
		if err != nil {
			return 0, eris.Wrap(err, "sqlite: marshal additional data")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO survey_responses (company_id, contact_id, clean_tax_id, clean_email,
			   response_date, has_expansion_plans, has_engineering_area,
			   selected_certification_ids, extracted_certification_ids, additional_data)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.CompanyID, r.ContactID, r.CleanTaxID, r.CleanEmail,
			r.ResponseDate, r.HasExpansionPlans, r.HasEngineeringArea,
			string(selected), string(extracted), string(additional),
		)
		if err != nil {
			return 0, eris.Wrap(err, "sqlite: insert response")
		}
		n++
	}
	return n, eris.Wrap(tx.Commit(), "sqlite: replace responses commit")
}

func (s *SQLiteStore) ListCompanies(ctx context.Context) ([]model.Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, clean_tax_id, trade_name, legal_name, sector, address,
		        employee_count, municipality_id, municipality_text,
		        industrial_park_id, industrial_park_text, procurement_tier,
		        certification_ids
		 FROM companies ORDER BY id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list companies")
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		var certIDs string
		if err := rows.Scan(&c.ID, &c.CleanTaxID, &c.TradeName, &c.LegalName, &c.Sector, &c.Address,
			&c.EmployeeCount, &c.MunicipalityID, &c.MunicipalityText,
			&c.IndustrialParkID, &c.IndustrialParkText, &c.ProcurementTier,
			&certIDs); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan company")
		}
		if certIDs != "" {
			if err := json.Unmarshal([]byte(certIDs), &c.CertificationIDs); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal certification ids")
			}
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "sqlite: list companies iterate")
}

func (s *SQLiteStore) ListResponses(ctx context.Context) ([]model.Response, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, company_id, contact_id, clean_tax_id, clean_email, response_date,
		        has_expansion_plans, has_engineering_area,
		        selected_certification_ids, extracted_certification_ids, additional_data
		 FROM survey_responses ORDER BY id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list responses")
	}
	defer rows.Close()

	var responses []model.Response
	for rows.Next() {
		var r model.Response
		var selected, extracted, additional string
		if err := rows.Scan(&r.ID, &r.CompanyID, &r.ContactID, &r.CleanTaxID, &r.CleanEmail, &r.ResponseDate,
			&r.HasExpansionPlans, &r.HasEngineeringArea,
			&selected, &extracted, &additional); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan response")
		}
		if err := unmarshalResponseJSON(&r, []byte(selected), []byte(extracted), []byte(additional)); err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, eris.Wrap(rows.Err(), "sqlite: list responses iterate")
}

// ETL run audit

func (s *SQLiteStore) CreateRun(ctx context.Context) (*model.ETLRun, error) {
	run := &model.ETLRun{
		ID:        uuid.New().String(),
		Status:    model.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO etl_runs (id, status, started_at) VALUES (?, ?, ?)`,
		run.ID, string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return run, nil
}

func (s *SQLiteStore) FinishRun(ctx context.Context, run *model.ETLRun) error {
	now := time.Now().UTC()
	run.FinishedAt = &now

	res, err := s.db.ExecContext(ctx,
		`UPDATE etl_runs SET status = ?, companies = ?, contacts = ?, responses = ?, orphans = ?, finished_at = ?
		 WHERE id = ?`,
		string(run.Status), run.Companies, run.Contacts, run.Responses, run.Orphans, now, run.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", run.ID)
	}
	return checkRowsAffected(res, "run", run.ID)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.ETLRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, status, companies, contacts, responses, orphans, started_at, finished_at
		 FROM etl_runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.ETLRun
	for rows.Next() {
		var r model.ETLRun
		if err := rows.Scan(&r.ID, &r.Status, &r.Companies, &r.Contacts, &r.Responses, &r.Orphans, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

// Dashboards

func (s *SQLiteStore) UpsertDashboard(ctx context.Context, d model.Dashboard) (int64, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dashboards (slug, title, description, position)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (slug) DO UPDATE SET
		   title = excluded.title, description = excluded.description, position = excluded.position`,
		d.Slug, d.Title, d.Description, d.Position,
	)
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: upsert dashboard %s", d.Slug)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `SELECT id FROM dashboards WHERE slug = ?`, d.Slug).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: dashboard id %s", d.Slug)
	}
	return id, nil
}

func (s *SQLiteStore) UpsertChart(ctx context.Context, chart model.Chart) error {
	dataJSON, err := json.Marshal(chart.Data)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal chart data")
	}
	var optionsJSON any
	if chart.Options != nil {
		b, err := json.Marshal(chart.Options)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal chart options")
		}
		optionsJSON = string(b)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO charts (dashboard_id, chart_slug, title, type, data, options, position, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (chart_slug) DO UPDATE SET
		   dashboard_id = excluded.dashboard_id, title = excluded.title,
		   type = excluded.type, data = excluded.data, options = excluded.options,
		   position = excluded.position, is_active = excluded.is_active`,
		chart.DashboardID, chart.Slug, chart.Title, chart.Type, string(dataJSON), optionsJSON, chart.Position, chart.IsActive,
	)
	return eris.Wrapf(err, "sqlite: upsert chart %s", chart.Slug)
}

func (s *SQLiteStore) ListDashboards(ctx context.Context) ([]model.Dashboard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, slug, title, description, position FROM dashboards ORDER BY position, slug`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list dashboards")
	}
	defer rows.Close()

	var dashboards []model.Dashboard
	for rows.Next() {
		var d model.Dashboard
		if err := rows.Scan(&d.ID, &d.Slug, &d.Title, &d.Description, &d.Position); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan dashboard")
		}
		dashboards = append(dashboards, d)
	}
	return dashboards, eris.Wrap(rows.Err(), "sqlite: list dashboards iterate")
}

func (s *SQLiteStore) GetDashboard(ctx context.Context, slug string) (*model.Dashboard, error) {
	var d model.Dashboard
	err := s.db.QueryRowContext(ctx,
		`SELECT id, slug, title, description, position FROM dashboards WHERE slug = ?`,
		slug,
	).Scan(&d.ID, &d.Slug, &d.Title, &d.Description, &d.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get dashboard %s", slug)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dashboard_id, chart_slug, title, type, data, options, position, is_active
		 FROM charts WHERE dashboard_id = ? AND is_active ORDER BY position, chart_slug`,
		d.ID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list charts for %s", slug)
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Chart
		var dataJSON string
		var optionsJSON sql.NullString
		if err := rows.Scan(&c.ID, &c.DashboardID, &c.Slug, &c.Title, &c.Type, &dataJSON, &optionsJSON, &c.Position, &c.IsActive); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan chart")
		}
		if dataJSON != "" {
			if err := json.Unmarshal([]byte(dataJSON), &c.Data); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal chart data")
			}
		}
		if optionsJSON.Valid && optionsJSON.String != "" {
			if err := json.Unmarshal([]byte(optionsJSON.String), &c.Options); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal chart options")
			}
		}
		d.Charts = append(d.Charts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: list charts iterate")
	}
	return &d, nil
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}
