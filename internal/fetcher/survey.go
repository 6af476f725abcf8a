package fetcher

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sedecyt/industria-cli/internal/model"
)

// ReadSurvey loads the survey workbook and returns one RawRow per
// submission, keyed by the header labels of the given sheet. The first
// row is the header; fully empty rows are skipped. Duplicate header
// labels get a numeric suffix so no answer column is silently lost.
func ReadSurvey(path, sheetName string) ([]model.RawRow, error) {
	rows, err := ReadXLSX(path, XLSXOptions{SheetName: sheetName})
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: read survey %s", path)
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("fetcher: survey sheet %q is empty", sheetName)
	}

	header := dedupeHeader(rows[0])

	out := make([]model.RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		if isEmptyRow(cells) {
			continue
		}
		raw := make(model.RawRow, len(header))
		for i, label := range header {
			if label == "" {
				continue
			}
			value := ""
			if i < len(cells) {
				value = strings.TrimSpace(cells[i])
			}
			raw[label] = value
		}
		out = append(out, raw)
	}

	zap.L().Info("survey loaded",
		zap.String("path", path),
		zap.String("sheet", sheetName),
		zap.Int("rows", len(out)),
	)
	return out, nil
}

// dedupeHeader trims labels and disambiguates repeats: the second "Otro"
// column becomes "Otro (2)".
func dedupeHeader(cells []string) []string {
	seen := map[string]int{}
	header := make([]string, len(cells))
	for i, c := range cells {
		label := strings.TrimSpace(c)
		if label == "" {
			continue
		}
		seen[label]++
		if n := seen[label]; n > 1 {
			label = fmt.Sprintf("%s (%d)", label, n)
		}
		header[i] = label
	}
	return header
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
