package model

// Series is the output contract of every aggregation function: parallel
// label/value slices ready for a charting layer.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Empty reports whether the series has no data points.
func (s Series) Empty() bool { return len(s.Labels) == 0 }

// Dataset is one Chart.js dataset within a chart.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
}

// ChartData is the Chart.js data payload stored per chart.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Chart is a pre-aggregated chart row served to the dashboard frontend.
type Chart struct {
	ID          int64          `json:"id,omitempty"`
	DashboardID int64          `json:"dashboard_id"`
	Slug        string         `json:"chart_id"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	Data        ChartData      `json:"data"`
	Options     map[string]any `json:"options,omitempty"`
	Position    int            `json:"position"`
	IsActive    bool           `json:"is_active"`
}

// Dashboard groups charts for the frontend.
type Dashboard struct {
	ID          int64   `json:"id"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Position    int     `json:"position"`
	Charts      []Chart `json:"charts,omitempty"`
}
