// Package catalog loads the reference catalogs for one pipeline run and
// builds the lookup structures the cleaning stages resolve against.
//
// The cache is an explicit struct constructed once per run and threaded
// through the pipeline; nothing here is process-global, so its lifetime
// matches the run and is trivially testable.
package catalog

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sedecyt/industria-cli/internal/certs"
	"github.com/sedecyt/industria-cli/internal/config"
	"github.com/sedecyt/industria-cli/internal/match"
	"github.com/sedecyt/industria-cli/internal/model"
)

// Source provides access to the stored reference catalogs. The store
// paginates the reads internally; Load sees full tables.
type Source interface {
	ListMunicipalities(ctx context.Context) ([]model.CatalogEntry, error)
	ListIndustrialParks(ctx context.Context) ([]model.CatalogEntry, error)
	ListCertifications(ctx context.Context) ([]model.Certification, error)
}

// Catalogs is the run-scoped reference cache.
type Catalogs struct {
	Municipalities *match.Catalog
	Parks          *match.Catalog
	Certifications []model.Certification
	Extractor      *certs.Extractor

	certIDByKey  map[string]int64 // normalized acronym/name/keyword -> id
	munNameByID  map[int64]string
	parkNameByID map[int64]string
	certNameByID map[int64]string
}

// Load fetches all three catalogs and prepares lookup structures.
// Catalogs change rarely; each run re-fetches fresh and holds the data in
// memory for the run's duration.
func Load(ctx context.Context, src Source, cfg config.MatchConfig) (*Catalogs, error) {
	log := zap.L().With(zap.String("component", "catalog"))

	municipalities, err := src.ListMunicipalities(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: list municipalities")
	}
	parks, err := src.ListIndustrialParks(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: list industrial parks")
	}
	certifications, err := src.ListCertifications(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: list certifications")
	}

	c := &Catalogs{
		Municipalities: match.NewCatalog("municipality", cfg.MunicipalityThreshold, cfg.MunicipalityNoise),
		Parks:          match.NewCatalog("industrial_park", cfg.ParkThreshold, cfg.ParkNoise),
		Certifications: certifications,
		Extractor:      certs.NewExtractor(certifications),
		certIDByKey:    make(map[string]int64),
		munNameByID:    make(map[int64]string, len(municipalities)),
		parkNameByID:   make(map[int64]string, len(parks)),
		certNameByID:   make(map[int64]string, len(certifications)),
	}

	for _, m := range municipalities {
		c.Municipalities.Add(m.ID, append([]string{m.Name}, m.Keywords...)...)
		c.munNameByID[m.ID] = m.Name
	}
	for _, p := range parks {
		c.Parks.Add(p.ID, append([]string{p.Name}, p.Keywords...)...)
		c.parkNameByID[p.ID] = p.Name
	}
	for _, cert := range certifications {
		c.certNameByID[cert.ID] = cert.Name
		keys := append([]string{cert.Acronym, cert.Name}, cert.SearchKeywords...)
		for _, k := range keys {
			if key := certKey(k); key != "" {
				c.certIDByKey[key] = cert.ID
			}
		}
	}

	log.Info("catalogs loaded",
		zap.Int("municipalities", len(municipalities)),
		zap.Int("industrial_parks", len(parks)),
		zap.Int("certifications", len(certifications)),
	)
	return c, nil
}

// CertIDByAcronym resolves a certification acronym, canonical name, or
// search keyword to its catalog ID.
func (c *Catalogs) CertIDByAcronym(acronym string) (int64, bool) {
	id, ok := c.certIDByKey[certKey(acronym)]
	return id, ok
}

// CertIDsForLabels maps checkbox-selected certification labels to catalog
// IDs, dropping labels with no catalog entry. Result is deduplicated and
// preserves first-seen order.
func (c *Catalogs) CertIDsForLabels(labels []string) []int64 {
	out := []int64{}
	seen := map[int64]bool{}
	for _, label := range labels {
		id, ok := c.CertIDByAcronym(label)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// MunicipalityName returns the canonical name for a municipality ID.
func (c *Catalogs) MunicipalityName(id int64) string { return c.munNameByID[id] }

// ParkName returns the canonical name for an industrial park ID.
func (c *Catalogs) ParkName(id int64) string { return c.parkNameByID[id] }

// CertificationName returns the canonical name for a certification ID.
func (c *Catalogs) CertificationName(id int64) string { return c.certNameByID[id] }

// CertificationNames returns the full ID→name map for chart labeling.
func (c *Catalogs) CertificationNames() map[int64]string { return c.certNameByID }

func certKey(s string) string {
	return match.Fold(strings.ToUpper(strings.TrimSpace(s)))
}
