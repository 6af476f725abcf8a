// Package model defines the entities produced by the survey cleaning pipeline.
package model

import "time"

// RawRow is one survey response as received from the source workbook,
// keyed by source column label. Blank cells are empty strings.
type RawRow map[string]string

// CleanedRow holds one row after normalization, keyed by canonical field
// name. Values are string, int, bool, time.Time, []string, or nil; every
// value has passed its dedicated normalizer.
type CleanedRow map[string]any

// RunStatus represents the state of an ETL run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// ETLRun is the audit record for one pipeline invocation.
type ETLRun struct {
	ID         string     `json:"id"`
	Status     RunStatus  `json:"status"`
	Companies  int        `json:"companies"`
	Contacts   int        `json:"contacts"`
	Responses  int        `json:"responses"`
	Orphans    int        `json:"orphans"` // responses dropped for missing company FK
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Company is the master entity, unique by CleanTaxID.
type Company struct {
	ID                 int64   `json:"id"`
	CleanTaxID         string  `json:"clean_tax_id"`
	TradeName          string  `json:"trade_name"`
	LegalName          string  `json:"legal_name"`
	Sector             string  `json:"sector"`
	Address            string  `json:"address"`
	EmployeeCount      *int    `json:"employee_count,omitempty"`
	MunicipalityID     *int64  `json:"municipality_id,omitempty"`
	MunicipalityText   string  `json:"municipality_text,omitempty"` // residual when unresolved
	IndustrialParkID   *int64  `json:"industrial_park_id,omitempty"`
	IndustrialParkText string  `json:"industrial_park_text,omitempty"`
	ProcurementTier    string  `json:"procurement_tier"`
	CertificationIDs   []int64 `json:"certification_ids"` // union of checkbox + text-extracted
}

// Contact is the person entity, unique by CleanEmail.
type Contact struct {
	ID         int64  `json:"id"`
	CleanEmail string `json:"clean_email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Position   string `json:"position"`
	Phone      string `json:"phone"`  // E.164
	Mobile     string `json:"mobile"` // E.164
}

// Response is the transactional record, one per survey submission.
// CompanyID/ContactID are nil when resolution failed; such rows are
// excluded from upload.
type Response struct {
	ID                 int64          `json:"id"`
	CompanyID          *int64         `json:"company_id,omitempty"`
	ContactID          *int64         `json:"contact_id,omitempty"`
	CleanTaxID         string         `json:"clean_tax_id"`
	CleanEmail         string         `json:"clean_email"`
	ResponseDate       *time.Time     `json:"response_date,omitempty"`
	HasExpansionPlans  *bool          `json:"has_expansion_plans,omitempty"`
	HasEngineeringArea *bool          `json:"has_engineering_area,omitempty"`
	SelectedCertIDs    []int64        `json:"selected_certification_ids"`
	ExtractedCertIDs   []int64        `json:"extracted_certification_ids"`
	AdditionalData     map[string]any `json:"additional_data,omitempty"` // uncategorized question/answer bag
}

// CatalogEntry is a reference row for municipalities and industrial parks.
type CatalogEntry struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords,omitempty"`
}

// Certification is a certification catalog row.
type Certification struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Acronym        string   `json:"acronym"`
	Category       string   `json:"category"`
	ComplianceType string   `json:"compliance_type"`
	SearchKeywords []string `json:"search_keywords"`
	IsActive       bool     `json:"is_active"`
}
