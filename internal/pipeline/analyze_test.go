package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sedecyt/industria-cli/internal/model"
)

func TestCategorical(t *testing.T) {
	rows := []Record{
		{"sector": "AUTOMOTRIZ"},
		{"sector": "AUTOMOTRIZ"},
		{"sector": "METALMECANICO"},
		{"sector": nil},
		{"sector": ""},
	}

	t.Run("skips blanks by default", func(t *testing.T) {
		got := Categorical(rows, "sector", CategoricalOpts{})
		assert.Equal(t, []string{"AUTOMOTRIZ", "METALMECANICO"}, got.Labels)
		assert.Equal(t, []float64{2, 1}, got.Values)
	})

	t.Run("null label counts blanks", func(t *testing.T) {
		got := Categorical(rows, "sector", CategoricalOpts{NullLabel: "SIN DATO"})
		assert.Equal(t, []string{"AUTOMOTRIZ", "SIN DATO", "METALMECANICO"}, got.Labels)
		assert.Equal(t, []float64{2, 2, 1}, got.Values)
	})

	t.Run("top-n truncates after sorting", func(t *testing.T) {
		got := Categorical(rows, "sector", CategoricalOpts{TopN: 1})
		assert.Equal(t, []string{"AUTOMOTRIZ"}, got.Labels)
	})

	t.Run("relabels booleans", func(t *testing.T) {
		got := Categorical([]Record{{"x": true}, {"x": true}, {"x": false}}, "x",
			CategoricalOpts{Relabel: map[string]string{"true": "Sí", "false": "No"}})
		assert.Equal(t, []string{"Sí", "No"}, got.Labels)
		assert.Equal(t, []float64{2, 1}, got.Values)
	})

	t.Run("ties break on label", func(t *testing.T) {
		got := Categorical([]Record{{"x": "B"}, {"x": "A"}}, "x", CategoricalOpts{})
		assert.Equal(t, []string{"A", "B"}, got.Labels)
	})
}

func TestQuantileBins(t *testing.T) {
	rows := []Record{
		{"n": 5}, {"n": 12}, {"n": 30}, {"n": 48},
		{"n": 90}, {"n": 150}, {"n": 400}, {"n": 1200},
		{"n": nil}, {"n": "texto"},
	}

	got := QuantileBins(rows, "n", []string{"Q1", "Q2", "Q3", "Q4"})
	assert.Equal(t, []string{"Q1", "Q2", "Q3", "Q4"}, got.Labels)
	assert.Equal(t, []float64{2, 2, 2, 2}, got.Values)

	empty := QuantileBins(nil, "n", []string{"Q1"})
	assert.True(t, empty.Empty())
}

func TestTopN(t *testing.T) {
	rows := []Record{
		{"municipality": "AGUASCALIENTES", "employees": 100, "sector": "AUTOMOTRIZ"},
		{"municipality": "AGUASCALIENTES", "employees": 200, "sector": "TEXTIL"},
		{"municipality": "JESUS MARIA", "employees": 50, "sector": "AUTOMOTRIZ"},
	}

	t.Run("count", func(t *testing.T) {
		got := TopN(rows, TopNOpts{Mode: "count", LabelField: "municipality"})
		assert.Equal(t, []string{"AGUASCALIENTES", "JESUS MARIA"}, got.Labels)
		assert.Equal(t, []float64{2, 1}, got.Values)
	})

	t.Run("sum", func(t *testing.T) {
		got := TopN(rows, TopNOpts{Mode: "sum", LabelField: "municipality", ValueField: "employees"})
		assert.Equal(t, []float64{300, 50}, got.Values)
	})

	t.Run("raw with limit", func(t *testing.T) {
		got := TopN(rows, TopNOpts{Mode: "raw", LabelField: "municipality", ValueField: "employees", N: 2})
		assert.Equal(t, []string{"AGUASCALIENTES", "AGUASCALIENTES"}, got.Labels)
		assert.Equal(t, []float64{200, 100}, got.Values)
	})

	t.Run("equality pre-filter", func(t *testing.T) {
		got := TopN(rows, TopNOpts{Mode: "count", LabelField: "municipality",
			FilterField: "sector", FilterEquals: "AUTOMOTRIZ"})
		assert.Equal(t, []float64{1, 1}, got.Values)
	})
}

func TestArrayFrequency(t *testing.T) {
	rows := []Record{
		{"certs": []int64{100, 101}},
		{"certs": []int64{100}},
		{"certs": []int64{999}},
		{"certs": nil},
	}
	names := map[int64]string{100: "ISO 9001:2015", 101: "C-TPAT"}

	got := ArrayFrequency(rows, "certs", names)
	assert.Equal(t, []string{"ISO 9001:2015", "999", "C-TPAT"}, got.Labels)
	assert.Equal(t, []float64{2, 1, 1}, got.Values)
}

func TestArrayPopulated(t *testing.T) {
	rows := []Record{
		{"certs": []int64{100}},
		{"certs": []int64{}},
		{"certs": nil},
	}

	got := ArrayPopulated(rows, "certs", "Con", "Sin")
	assert.Equal(t, model.Series{Labels: []string{"Con", "Sin"}, Values: []float64{1, 2}}, got)
}
