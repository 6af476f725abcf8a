package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/sedecyt/industria-cli/internal/model"
)

// Record is one enriched row fed to the aggregation functions.
type Record = map[string]any

// CategoricalOpts tunes a categorical count.
type CategoricalOpts struct {
	TopN      int               // 0 = no truncation
	NullLabel string            // label for nil/blank values; "" = skip them
	Relabel   map[string]string // value relabeling, e.g. "true" -> "Sí"
}

// Categorical counts the distinct values of a field. Counts sort
// descending, ties break on label, so chart output is deterministic.
func Categorical(rows []Record, field string, opts CategoricalOpts) model.Series {
	counts := map[string]float64{}
	for _, row := range rows {
		label := toLabel(row[field])
		if label == "" {
			if opts.NullLabel == "" {
				continue
			}
			label = opts.NullLabel
		}
		if mapped, ok := opts.Relabel[label]; ok {
			label = mapped
		}
		counts[label]++
	}

	s := sortedSeries(counts)
	if opts.TopN > 0 && len(s.Labels) > opts.TopN {
		s.Labels = s.Labels[:opts.TopN]
		s.Values = s.Values[:opts.TopN]
	}
	return s
}

// QuantileBins splits a numeric field into len(labels) quantile buckets
// and counts rows per bucket. Rows without a numeric value are skipped.
func QuantileBins(rows []Record, field string, labels []string) model.Series {
	var values []float64
	for _, row := range rows {
		if v, ok := toFloat(row[field]); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 || len(labels) == 0 {
		return model.Series{Labels: []string{}, Values: []float64{}}
	}
	sort.Float64s(values)

	n := len(labels)
	s := model.Series{Labels: labels, Values: make([]float64, n)}
	for i := 0; i < n; i++ {
		lo := i * len(values) / n
		hi := (i + 1) * len(values) / n
		s.Values[i] = float64(hi - lo)
	}
	return s
}

// TopNOpts configures a ranking.
type TopNOpts struct {
	Mode       string // "count", "sum", or "raw"
	LabelField string
	ValueField string // sum and raw modes
	N          int

	// Optional equality pre-filter on another column.
	FilterField  string
	FilterEquals any
}

// TopN ranks groups of rows. Count mode counts rows per label, sum mode
// totals ValueField per label, raw mode sorts individual rows by value.
func TopN(rows []Record, opts TopNOpts) model.Series {
	filtered := rows
	if opts.FilterField != "" {
		filtered = nil
		want := toLabel(opts.FilterEquals)
		for _, row := range rows {
			if toLabel(row[opts.FilterField]) == want {
				filtered = append(filtered, row)
			}
		}
	}

	var s model.Series
	switch opts.Mode {
	case "raw":
		type pair struct {
			label string
			value float64
		}
		var pairs []pair
		for _, row := range filtered {
			label := toLabel(row[opts.LabelField])
			v, ok := toFloat(row[opts.ValueField])
			if label == "" || !ok {
				continue
			}
			pairs = append(pairs, pair{label, v})
		}
		sort.SliceStable(pairs, func(i, j int) bool {
			if pairs[i].value != pairs[j].value {
				return pairs[i].value > pairs[j].value
			}
			return pairs[i].label < pairs[j].label
		})
		s = model.Series{Labels: []string{}, Values: []float64{}}
		for _, p := range pairs {
			s.Labels = append(s.Labels, p.label)
			s.Values = append(s.Values, p.value)
		}
	case "sum":
		sums := map[string]float64{}
		for _, row := range filtered {
			label := toLabel(row[opts.LabelField])
			if label == "" {
				continue
			}
			if v, ok := toFloat(row[opts.ValueField]); ok {
				sums[label] += v
			}
		}
		s = sortedSeries(sums)
	default: // count
		counts := map[string]float64{}
		for _, row := range filtered {
			if label := toLabel(row[opts.LabelField]); label != "" {
				counts[label]++
			}
		}
		s = sortedSeries(counts)
	}

	if opts.N > 0 && len(s.Labels) > opts.N {
		s.Labels = s.Labels[:opts.N]
		s.Values = s.Values[:opts.N]
	}
	return s
}

// ArrayFrequency explodes a []int64 field and counts occurrences,
// translating IDs to display names through the catalog map. IDs without
// a name keep their numeric form.
func ArrayFrequency(rows []Record, field string, names map[int64]string) model.Series {
	counts := map[string]float64{}
	for _, row := range rows {
		ids, ok := row[field].([]int64)
		if !ok {
			continue
		}
		for _, id := range ids {
			label := names[id]
			if label == "" {
				label = strconv.FormatInt(id, 10)
			}
			counts[label]++
		}
	}
	return sortedSeries(counts)
}

// ArrayPopulated classifies rows by whether a list field has elements.
func ArrayPopulated(rows []Record, field, populatedLabel, emptyLabel string) model.Series {
	populated, empty := 0.0, 0.0
	for _, row := range rows {
		if ids, ok := row[field].([]int64); ok && len(ids) > 0 {
			populated++
		} else {
			empty++
		}
	}
	return model.Series{
		Labels: []string{populatedLabel, emptyLabel},
		Values: []float64{populated, empty},
	}
}

// sortedSeries orders a count map by value descending, label ascending.
func sortedSeries(counts map[string]float64) model.Series {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	s := model.Series{Labels: labels, Values: make([]float64, len(labels))}
	for i, label := range labels {
		s.Values[i] = counts[label]
	}
	return s
}

// toLabel renders a field value as a chart label; nil and blank are "".
func toLabel(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", t)
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}
