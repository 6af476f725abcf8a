// Package pipeline orchestrates the survey cleaning run: column
// normalization per the cleaning map, catalog resolution, certification
// extraction, entity assembly, and the chart aggregations.
package pipeline

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sedecyt/industria-cli/internal/clean"
)

// Canonical field names the assembler reads back out of a CleanedRow.
const (
	FieldTaxID          = "clean_tax_id"
	FieldEmail          = "clean_email"
	FieldTradeName      = "trade_name"
	FieldLegalName      = "legal_name"
	FieldSector         = "sector"
	FieldAddress        = "address"
	FieldEmployeeCount  = "employee_count"
	FieldMunicipality   = "municipality"
	FieldIndustrialPark = "industrial_park"
	FieldTier           = "procurement_tier"
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldPosition       = "position"
	FieldPhone          = "phone"
	FieldMobile         = "mobile"
	FieldResponseDate   = "response_date"
	FieldExpansion      = "has_expansion_plans"
	FieldEngineering    = "has_engineering_area"
	FieldSelectedCerts  = "selected_certifications"
	FieldOtherCerts     = "other_certifications"
	FieldAdditionalData = "additional_data"

	// Derived fields written by the catalog-resolution step.
	FieldMunicipalityID   = "municipality_id"
	FieldMunicipalityText = "municipality_text"
	FieldParkID           = "industrial_park_id"
	FieldParkText         = "industrial_park_text"
)

// Entity destinations for a cleaned column.
const (
	EntityCompany  = "company"
	EntityContact  = "contact"
	EntityResponse = "response"
)

// NormalizerFunc maps one raw cell to one cleaned, typed value. Total:
// malformed input degrades to nil / zero value, never an error.
type NormalizerFunc func(string) any

// normalizers is the static identifier→function registry. Resolved once
// at cleaning-map load time; an unknown identifier fails the load, not
// the row processing.
var normalizers = map[string]NormalizerFunc{
	"string":           func(s string) any { return clean.String(s) },
	"string_upper":     func(s string) any { return clean.StringUpper(s) },
	"string_alnum":     func(s string) any { return clean.StringAlnum(s) },
	"enum_null":        clean.EnumNull,
	"email":            func(s string) any { return clean.Email(s) },
	"phone":            func(s string) any { return clean.Phone(s) },
	"integer":          func(s string) any { return nilable(clean.Integer(s)) },
	"timestamp":        func(s string) any { return nilable(clean.Timestamp(s)) },
	"boolean":          func(s string) any { return nilable(clean.Boolean(s)) },
	"cert_list":        func(s string) any { return clean.CertificationList(s) },
	"analysis_text":    func(s string) any { return clean.AnalysisText(s) },
	"tax_id":           func(s string) any { return clean.TaxID(s) },
	"company_name":     func(s string) any { return clean.CompanyName(s) },
	"contact_name":     func(s string) any { return clean.ContactName(s) },
	"cargo":            func(s string) any { return clean.Cargo(s) },
}

// nilable collapses a typed nil pointer into an untyped nil so CleanedRow
// nil checks behave.
func nilable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// ColumnRule maps one source column to a canonical field.
type ColumnRule struct {
	Source     string `yaml:"source"`
	Target     string `yaml:"target"`
	Normalizer string `yaml:"normalizer"`
	Entity     string `yaml:"entity"`

	fn NormalizerFunc
}

// CleaningMap is the parsed cleaning configuration: per-column rules plus
// the source columns folded into the additional_data JSON bag.
type CleaningMap struct {
	Columns     []ColumnRule `yaml:"columns"`
	JSONColumns []string     `yaml:"jsonb_columns"`
}

// LoadCleaningMap reads and validates a cleaning map YAML document.
func LoadCleaningMap(path string) (*CleaningMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: read cleaning map %s", path)
	}
	return ParseCleaningMap(data)
}

// ParseCleaningMap parses the YAML document and resolves every normalizer
// identifier against the registry, failing fast on unknown ones.
func ParseCleaningMap(data []byte) (*CleaningMap, error) {
	var cm CleaningMap
	if err := yaml.Unmarshal(data, &cm); err != nil {
		return nil, eris.Wrap(err, "pipeline: parse cleaning map")
	}
	if len(cm.Columns) == 0 {
		return nil, eris.New("pipeline: cleaning map has no columns")
	}

	seen := map[string]bool{}
	for i := range cm.Columns {
		rule := &cm.Columns[i]
		if rule.Source == "" || rule.Target == "" {
			return nil, eris.Errorf("pipeline: cleaning map column %d missing source or target", i)
		}
		switch rule.Entity {
		case EntityCompany, EntityContact, EntityResponse:
		default:
			return nil, eris.Errorf("pipeline: column %q has unknown entity %q", rule.Source, rule.Entity)
		}
		fn, ok := normalizers[rule.Normalizer]
		if !ok {
			return nil, eris.Errorf("pipeline: column %q uses unknown normalizer %q", rule.Source, rule.Normalizer)
		}
		if seen[rule.Target] {
			return nil, eris.Errorf("pipeline: duplicate target field %q", rule.Target)
		}
		seen[rule.Target] = true
		rule.fn = fn
	}
	return &cm, nil
}
