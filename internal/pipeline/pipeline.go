package pipeline

import (
	"go.uber.org/zap"

	"github.com/sedecyt/industria-cli/internal/catalog"
	"github.com/sedecyt/industria-cli/internal/clean"
	"github.com/sedecyt/industria-cli/internal/model"
)

// Pipeline holds the run-scoped pieces of one cleaning pass: the parsed
// cleaning map and the catalog cache. Single-threaded by design; a run is
// one synchronous pass over the in-memory batch.
type Pipeline struct {
	rules *CleaningMap
	cats  *catalog.Catalogs
	log   *zap.Logger
}

// New builds a pipeline for one run.
func New(rules *CleaningMap, cats *catalog.Catalogs) *Pipeline {
	return &Pipeline{
		rules: rules,
		cats:  cats,
		log:   zap.L().With(zap.String("component", "pipeline")),
	}
}

// CleanRows maps every raw row through the cleaning map and the
// row-level steps: tax-ID finalization, name rescue, catalog resolution,
// and certification extraction. Pure per-row transform over the batch;
// the input is never mutated.
func (p *Pipeline) CleanRows(raws []model.RawRow) []model.CleanedRow {
	missing := map[string]bool{}

	rows := make([]model.CleanedRow, 0, len(raws))
	for _, raw := range raws {
		rows = append(rows, p.cleanRow(raw, missing))
	}

	for col := range missing {
		p.log.Warn("source column missing from survey", zap.String("column", col))
	}
	return rows
}

func (p *Pipeline) cleanRow(raw model.RawRow, missing map[string]bool) model.CleanedRow {
	row := make(model.CleanedRow, len(p.rules.Columns)+4)

	for _, rule := range p.rules.Columns {
		value, ok := raw[rule.Source]
		if !ok {
			missing[rule.Source] = true
			row[rule.Target] = nil
			continue
		}
		row[rule.Target] = rule.fn(value)
	}

	// JSON bag: configured unmapped columns, raw values, blanks dropped.
	bag := map[string]any{}
	for _, col := range p.rules.JSONColumns {
		if v := clean.String(raw[col]); v != "" {
			bag[col] = v
		}
	}
	row[FieldAdditionalData] = bag

	p.finalizeTaxID(row)
	p.rescueNames(row)
	p.resolveCatalogs(row)
	p.extractCertifications(row)

	return row
}

// finalizeTaxID appends the slugified trade name to unresolved tax IDs so
// distinct companies that both failed validation cannot collide.
func (p *Pipeline) finalizeTaxID(row model.CleanedRow) {
	taxID := stringField(row, FieldTaxID)
	if taxID == "" {
		taxID = clean.TaxIDMissing
	}
	row[FieldTaxID] = clean.FinalizeTaxID(taxID, stringField(row, FieldTradeName))
}

func (p *Pipeline) rescueNames(row model.CleanedRow) {
	first, last := clean.RescueNames(stringField(row, FieldFirstName), stringField(row, FieldLastName))
	row[FieldFirstName] = first
	row[FieldLastName] = last
}

// resolveCatalogs turns the free-text municipality and industrial-park
// fields into either a catalog ID or a residual for manual review.
func (p *Pipeline) resolveCatalogs(row model.CleanedRow) {
	m := p.cats.Municipalities.Resolve(stringField(row, FieldMunicipality))
	if m.Resolved {
		row[FieldMunicipalityID] = m.ID
		row[FieldMunicipalityText] = ""
	} else {
		row[FieldMunicipalityID] = nil
		row[FieldMunicipalityText] = m.Residual
	}

	pk := p.cats.Parks.Resolve(stringField(row, FieldIndustrialPark))
	if pk.Resolved {
		row[FieldParkID] = pk.ID
		row[FieldParkText] = ""
	} else {
		row[FieldParkID] = nil
		row[FieldParkText] = pk.Residual
	}
}

// extractCertifications maps the checkbox list to catalog IDs and scans
// the free-text field for further mentions.
func (p *Pipeline) extractCertifications(row model.CleanedRow) {
	var selected []string
	if v, ok := row[FieldSelectedCerts].([]string); ok {
		selected = v
	}
	row[FieldSelectedCerts] = p.cats.CertIDsForLabels(selected)

	text := stringField(row, FieldOtherCerts)
	acronyms := p.cats.Extractor.Extract(text)
	row[FieldOtherCerts] = p.cats.CertIDsForLabels(acronyms)
}

// stringField reads a string-typed field, treating nil and non-string as
// blank.
func stringField(row model.CleanedRow, field string) string {
	if v, ok := row[field].(string); ok {
		return v
	}
	return ""
}
