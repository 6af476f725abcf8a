// Package store persists the cleaned survey entities and the
// pre-aggregated dashboard payloads.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sedecyt/industria-cli/internal/config"
	"github.com/sedecyt/industria-cli/internal/model"
)

// catalogPageSize caps every reference catalog read; large tables are
// walked page by page instead of in one unbounded query.
const catalogPageSize = 1000

// Store defines the persistence interface for the survey pipeline.
type Store interface {
	// Reference catalogs
	ListMunicipalities(ctx context.Context) ([]model.CatalogEntry, error)
	ListIndustrialParks(ctx context.Context) ([]model.CatalogEntry, error)
	ListCertifications(ctx context.Context) ([]model.Certification, error)
	SyncCertifications(ctx context.Context, certs []model.Certification) (int64, error)
	SeedCatalog(ctx context.Context, table string, entries []model.CatalogEntry) error

	// Entities
	UpsertCompanies(ctx context.Context, companies []model.Company) (int64, error)
	UpsertContacts(ctx context.Context, contacts []model.Contact) (int64, error)
	CompanyIDsByTaxID(ctx context.Context) (map[string]int64, error)
	ContactIDsByEmail(ctx context.Context) (map[string]int64, error)
	ReplaceResponses(ctx context.Context, responses []model.Response) (int64, error)
	ListCompanies(ctx context.Context) ([]model.Company, error)
	ListResponses(ctx context.Context) ([]model.Response, error)

	// ETL run audit
	CreateRun(ctx context.Context) (*model.ETLRun, error)
	FinishRun(ctx context.Context, run *model.ETLRun) error
	ListRuns(ctx context.Context, limit int) ([]model.ETLRun, error)

	// Dashboards
	UpsertDashboard(ctx context.Context, d model.Dashboard) (int64, error)
	UpsertChart(ctx context.Context, chart model.Chart) error
	ListDashboards(ctx context.Context) ([]model.Dashboard, error)
	GetDashboard(ctx context.Context, slug string) (*model.Dashboard, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}

// New opens the store configured by cfg.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL, &PoolConfig{
			MaxConns: cfg.MaxConns,
			MinConns: cfg.MinConns,
		})
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
