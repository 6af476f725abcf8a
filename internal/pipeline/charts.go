package pipeline

import (
	"github.com/sedecyt/industria-cli/internal/catalog"
	"github.com/sedecyt/industria-cli/internal/model"
)

// Data source keys chart definitions select from.
const (
	SourceCompanies = "companies"
	SourceResponses = "responses"
)

// Labels used when an enrichment join finds no catalog match.
const (
	NoParkLabel         = "SIN PARQUE"
	NoMunicipalityLabel = "SIN MUNICIPIO"
)

// defaultPalette is the Chart.js color cycle the frontend expects when a
// chart does not override it. Repeated so long bar charts stay colored.
var defaultPalette = []string{
	"rgba(54, 162, 235, 0.6)",
	"rgba(255, 99, 132, 0.6)",
	"rgba(75, 192, 192, 0.6)",
	"rgba(255, 206, 86, 0.6)",
	"rgba(153, 102, 255, 0.6)",
	"rgba(255, 159, 64, 0.6)",
}

// ChartDef is one configured chart: where its rows come from and how to
// aggregate them into a series.
type ChartDef struct {
	Slug      string
	Title     string
	Type      string // bar, pie, doughnut
	DataLabel string
	Source    string // SourceCompanies or SourceResponses
	Options   map[string]any
	Aggregate func(rows []Record, cats *catalog.Catalogs) model.Series
}

// DashboardDef groups chart definitions under one dashboard slug.
type DashboardDef struct {
	Slug        string
	Title       string
	Description string
	Position    int
	Charts      []ChartDef
}

// Dashboard returns the storable dashboard row for this definition.
func (d DashboardDef) Dashboard() model.Dashboard {
	return model.Dashboard{
		Slug:        d.Slug,
		Title:       d.Title,
		Description: d.Description,
		Position:    d.Position,
	}
}

// Dashboards returns the dashboard configuration. Order within a
// dashboard determines chart position.
func Dashboards() []DashboardDef {
	return []DashboardDef{
		{
			Slug:        "companies-summary",
			Title:       "Análisis de Empresas",
			Description: "Distribución de empresas registradas por sector, municipio y otros indicadores clave.",
			Position:    1,
			Charts: []ChartDef{
				{
					Slug: "companies-by-municipality", Title: "Empresas por Municipio",
					Type: "bar", DataLabel: "Nº de Empresas", Source: SourceCompanies,
					Aggregate: func(rows []Record, _ *catalog.Catalogs) model.Series {
						return Categorical(rows, FieldMunicipality, CategoricalOpts{})
					},
				},
				{
					Slug: "companies-by-sector", Title: "Empresas por Sector",
					Type: "pie", DataLabel: "Nº de Empresas", Source: SourceCompanies,
					Aggregate: func(rows []Record, _ *catalog.Catalogs) model.Series {
						return Categorical(rows, FieldSector, CategoricalOpts{})
					},
				},
				{
					Slug: "companies-by-procurement-tier", Title: "Empresas por Nivel de Proveeduría (Tier)",
					Type: "bar", DataLabel: "Nº de Empresas", Source: SourceCompanies,
					Aggregate: func(rows []Record, _ *catalog.Catalogs) model.Series {
						return Categorical(rows, FieldTier, CategoricalOpts{})
					},
				},
				{
					Slug: "companies-by-expansion-plans", Title: "Planes de Expansión",
					Type: "pie", DataLabel: "Nº de Empresas", Source: SourceResponses,
					Aggregate: func(rows []Record, _ *catalog.Catalogs) model.Series {
						return Categorical(rows, FieldExpansion, CategoricalOpts{
							Relabel: map[string]string{"true": "Sí", "false": "No"},
						})
					},
				},
				{
					Slug: "companies-by-employee-count", Title: "Tamaño de Empresas por Nº de Empleados",
					Type: "bar", DataLabel: "Nº de Empresas", Source: SourceCompanies,
					Aggregate: func(rows []Record, _ *catalog.Catalogs) model.Series {
						return QuantileBins(rows, FieldEmployeeCount,
							[]string{"Pequeña (Q1)", "Mediana (Q2)", "Grande (Q3)", "Muy Grande (Q4)"})
					},
				},
				{
					Slug: "companies-by-industrial-park", Title: "Empresas por Parque Industrial",
					Type: "bar", DataLabel: "Nº de Empresas", Source: SourceCompanies,
					Options: map[string]any{"indexAxis": "y"},
					Aggregate: func(rows []Record, _ *catalog.Catalogs) model.Series {
						return Categorical(rows, FieldIndustrialPark, CategoricalOpts{TopN: 15})
					},
				},
				{
					Slug: "companies-by-certification", Title: "Certificaciones más Comunes",
					Type: "bar", DataLabel: "Nº de Empresas", Source: SourceCompanies,
					Options: map[string]any{"indexAxis": "y"},
					Aggregate: func(rows []Record, cats *catalog.Catalogs) model.Series {
						return ArrayFrequency(rows, FieldSelectedCerts, cats.CertificationNames())
					},
				},
				{
					Slug: "companies-with-certifications", Title: "Empresas con Certificaciones",
					Type: "doughnut", DataLabel: "Nº de Empresas", Source: SourceCompanies,
					Aggregate: func(rows []Record, _ *catalog.Catalogs) model.Series {
						return ArrayPopulated(rows, FieldSelectedCerts, "Con certificaciones", "Sin certificaciones")
					},
				},
				{
					Slug: "largest-companies", Title: "Empresas más Grandes por Empleados",
					Type: "bar", DataLabel: "Nº de Empleados", Source: SourceCompanies,
					Options: map[string]any{"indexAxis": "y"},
					Aggregate: func(rows []Record, _ *catalog.Catalogs) model.Series {
						return TopN(rows, TopNOpts{
							Mode: "raw", LabelField: FieldTradeName,
							ValueField: FieldEmployeeCount, N: 10,
						})
					},
				},
			},
		},
	}
}

// EnrichCompanies flattens company rows for aggregation, joining catalog
// IDs back to display names. Companies without a resolved park get the
// explicit no-park label so the distribution still counts them.
func EnrichCompanies(companies []model.Company, cats *catalog.Catalogs) []Record {
	rows := make([]Record, 0, len(companies))
	for _, c := range companies {
		row := Record{
			FieldTaxID:         c.CleanTaxID,
			FieldTradeName:     c.TradeName,
			FieldSector:        c.Sector,
			FieldTier:          c.ProcurementTier,
			FieldSelectedCerts: c.CertificationIDs,
		}
		if c.EmployeeCount != nil {
			row[FieldEmployeeCount] = *c.EmployeeCount
		}
		row[FieldMunicipality] = municipalityLabel(c, cats)
		if c.IndustrialParkID != nil {
			row[FieldIndustrialPark] = cats.ParkName(*c.IndustrialParkID)
		} else {
			row[FieldIndustrialPark] = NoParkLabel
		}
		rows = append(rows, row)
	}
	return rows
}

// EnrichResponses flattens response rows, pulling sector and municipality
// from the owning company so response charts can slice by them.
func EnrichResponses(responses []model.Response, companies []model.Company, cats *catalog.Catalogs) []Record {
	byID := make(map[int64]model.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	rows := make([]Record, 0, len(responses))
	for _, r := range responses {
		row := Record{
			FieldTaxID:         r.CleanTaxID,
			FieldSelectedCerts: r.SelectedCertIDs,
			FieldOtherCerts:    r.ExtractedCertIDs,
		}
		if r.ResponseDate != nil {
			row[FieldResponseDate] = *r.ResponseDate
		}
		if r.HasExpansionPlans != nil {
			row[FieldExpansion] = *r.HasExpansionPlans
		}
		if r.HasEngineeringArea != nil {
			row[FieldEngineering] = *r.HasEngineeringArea
		}
		if r.CompanyID != nil {
			if c, ok := byID[*r.CompanyID]; ok {
				row[FieldSector] = c.Sector
				row[FieldMunicipality] = municipalityLabel(c, cats)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func municipalityLabel(c model.Company, cats *catalog.Catalogs) string {
	if c.MunicipalityID != nil {
		return cats.MunicipalityName(*c.MunicipalityID)
	}
	if c.MunicipalityText != "" {
		return c.MunicipalityText
	}
	return NoMunicipalityLabel
}

// BuildChart runs one chart definition against its rows and formats the
// result as a stored chart. Returns nil when the series is empty so the
// caller can skip the upload instead of persisting a blank chart.
func BuildChart(def ChartDef, rows []Record, cats *catalog.Catalogs, position int) *model.Chart {
	series := def.Aggregate(rows, cats)
	if series.Empty() {
		return nil
	}
	return &model.Chart{
		Slug:  def.Slug,
		Title: def.Title,
		Type:  def.Type,
		Data: model.ChartData{
			Labels: series.Labels,
			Datasets: []model.Dataset{{
				Label:           def.DataLabel,
				Data:            series.Values,
				BackgroundColor: paletteFor(len(series.Labels)),
				BorderColor:     "rgba(255, 255, 255, 1)",
				BorderWidth:     1,
			}},
		},
		Options:  def.Options,
		Position: position,
		IsActive: true,
	}
}

// paletteFor cycles the default palette to cover n data points.
func paletteFor(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = defaultPalette[i%len(defaultPalette)]
	}
	return colors
}
