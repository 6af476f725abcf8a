package pipeline

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sedecyt/industria-cli/internal/model"
)

// Tables holds the three entity row-sets produced from one cleaned batch.
type Tables struct {
	Companies []model.Company
	Contacts  []model.Contact
	Responses []model.Response
}

// Assemble partitions the cleaned batch into companies, contacts, and
// responses. Rows are ordered by response timestamp descending first, so
// the first occurrence per natural key is the latest snapshot; company
// certification IDs are the union of checkbox and extracted sources
// across all of the company's responses.
func Assemble(rows []model.CleanedRow) *Tables {
	ordered := make([]model.CleanedRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return laterTimestamp(timeField(ordered[i], FieldResponseDate), timeField(ordered[j], FieldResponseDate))
	})

	t := &Tables{}
	certUnion := map[string]*idSet{}

	seenCompany := map[string]int{}
	seenContact := map[string]bool{}

	for _, row := range ordered {
		taxID := stringField(row, FieldTaxID)

		union, ok := certUnion[taxID]
		if !ok {
			union = newIDSet()
			certUnion[taxID] = union
		}
		union.add(int64Slice(row, FieldSelectedCerts)...)
		union.add(int64Slice(row, FieldOtherCerts)...)

		if _, ok := seenCompany[taxID]; !ok {
			seenCompany[taxID] = len(t.Companies)
			t.Companies = append(t.Companies, companyFromRow(row))
		}

		if email := stringField(row, FieldEmail); email != "" && !seenContact[email] {
			seenContact[email] = true
			t.Contacts = append(t.Contacts, contactFromRow(row))
		}

		t.Responses = append(t.Responses, responseFromRow(row))
	}

	for i := range t.Companies {
		t.Companies[i].CertificationIDs = certUnion[t.Companies[i].CleanTaxID].sorted()
	}

	return t
}

// MapForeignKeys resolves response FKs through the post-upsert ID maps.
// Responses whose company cannot be resolved are dropped with a logged
// count; a missing contact leaves a null FK but keeps the row.
func MapForeignKeys(responses []model.Response, companyIDs, contactIDs map[string]int64) ([]model.Response, int) {
	kept := make([]model.Response, 0, len(responses))
	orphans := 0

	for _, r := range responses {
		companyID, ok := companyIDs[r.CleanTaxID]
		if !ok {
			orphans++
			continue
		}
		r.CompanyID = &companyID

		if contactID, ok := contactIDs[r.CleanEmail]; ok {
			r.ContactID = &contactID
		}
		kept = append(kept, r)
	}

	if orphans > 0 {
		zap.L().Warn("responses dropped for unresolved company",
			zap.Int("orphans", orphans))
	}
	return kept, orphans
}

func companyFromRow(row model.CleanedRow) model.Company {
	return model.Company{
		CleanTaxID:         stringField(row, FieldTaxID),
		TradeName:          stringField(row, FieldTradeName),
		LegalName:          stringField(row, FieldLegalName),
		Sector:             stringField(row, FieldSector),
		Address:            stringField(row, FieldAddress),
		EmployeeCount:      intField(row, FieldEmployeeCount),
		MunicipalityID:     int64Field(row, FieldMunicipalityID),
		MunicipalityText:   stringField(row, FieldMunicipalityText),
		IndustrialParkID:   int64Field(row, FieldParkID),
		IndustrialParkText: stringField(row, FieldParkText),
		ProcurementTier:    stringField(row, FieldTier),
	}
}

func contactFromRow(row model.CleanedRow) model.Contact {
	return model.Contact{
		CleanEmail: stringField(row, FieldEmail),
		FirstName:  stringField(row, FieldFirstName),
		LastName:   stringField(row, FieldLastName),
		Position:   stringField(row, FieldPosition),
		Phone:      stringField(row, FieldPhone),
		Mobile:     stringField(row, FieldMobile),
	}
}

func responseFromRow(row model.CleanedRow) model.Response {
	bag, _ := row[FieldAdditionalData].(map[string]any)
	return model.Response{
		CleanTaxID:         stringField(row, FieldTaxID),
		CleanEmail:         stringField(row, FieldEmail),
		ResponseDate:       timeField(row, FieldResponseDate),
		HasExpansionPlans:  boolField(row, FieldExpansion),
		HasEngineeringArea: boolField(row, FieldEngineering),
		SelectedCertIDs:    int64Slice(row, FieldSelectedCerts),
		ExtractedCertIDs:   int64Slice(row, FieldOtherCerts),
		AdditionalData:     bag,
	}
}

// laterTimestamp orders non-nil timestamps descending, nils last.
func laterTimestamp(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}

// typed CleanedRow accessors

func timeField(row model.CleanedRow, field string) *time.Time {
	if v, ok := row[field].(time.Time); ok {
		return &v
	}
	return nil
}

func intField(row model.CleanedRow, field string) *int {
	if v, ok := row[field].(int); ok {
		return &v
	}
	return nil
}

func boolField(row model.CleanedRow, field string) *bool {
	if v, ok := row[field].(bool); ok {
		return &v
	}
	return nil
}

func int64Field(row model.CleanedRow, field string) *int64 {
	if v, ok := row[field].(int64); ok {
		return &v
	}
	return nil
}

func int64Slice(row model.CleanedRow, field string) []int64 {
	if v, ok := row[field].([]int64); ok {
		return v
	}
	return []int64{}
}

// idSet is a small ordered-output set for certification IDs.
type idSet struct {
	seen map[int64]bool
}

func newIDSet() *idSet { return &idSet{seen: map[int64]bool{}} }

func (s *idSet) add(ids ...int64) {
	for _, id := range ids {
		s.seen[id] = true
	}
}

func (s *idSet) sorted() []int64 {
	out := make([]int64, 0, len(s.seen))
	for id := range s.seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
