package dashboard

import (
	"gigdash/services/dashboard/internal/analytics"
	"gigdash/services/dashboard/internal/models"
)

const (
	ChartScatter = "scatter"
	ChartBar     = "bar"
	ChartPie     = "pie"
)

// View is everything a rendering surface needs to draw the dashboard for
// one filter selection.
type View struct {
	Title        string           `json:"title"`
	Subtitle     string           `json:"subtitle"`
	Metrics      []Metric         `json:"metrics"`
	Overview     models.Overview  `json:"overview"`
	Selection    string           `json:"selection"`
	Options      []string         `json:"options"`
	ViewingLabel string           `json:"viewingLabel,omitempty"`
	Scatter      *ChartConfig     `json:"scatter"`
	Bar          *ChartConfig     `json:"bar"`
	Pie          *ChartConfig     `json:"pie"`
	Insights     []Insight        `json:"insights"`
	Footer       string           `json:"footer"`
	Aggregates   analytics.Result `json:"aggregates"`
}

// Metric is one headline number.
type Metric struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// ChartConfig describes how to render a chart.
type ChartConfig struct {
	ChartType     string        `json:"chartType"`
	Title         string        `json:"title"`
	XAxis         string        `json:"xAxis,omitempty"`
	YAxis         string        `json:"yAxis,omitempty"`
	Orientation   string        `json:"orientation,omitempty"`
	CategoryOrder string        `json:"categoryOrder,omitempty"`
	LegendTitle   string        `json:"legendTitle,omitempty"`
	Series        []ChartSeries `json:"series"`
	Colors        []string      `json:"colors,omitempty"`
	ShowLegend    bool          `json:"showLegend"`
	ShowGrid      bool          `json:"showGrid"`
}

// ChartSeries is one named series of points.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is a labelled value. Scatter points also carry X, Y and Size;
// pie slices carry Percent.
type ChartPoint struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size,omitempty"`
	Percent float64 `json:"percent,omitempty"`
}

// Insight is a block of static interpretive text attached to a chart.
type Insight struct {
	Chart   string `json:"chart"`
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// IsEmpty reports whether the chart has no points to draw.
func (c *ChartConfig) IsEmpty() bool {
	if c == nil {
		return true
	}
	for _, s := range c.Series {
		if len(s.Data) > 0 {
			return false
		}
	}
	return true
}
