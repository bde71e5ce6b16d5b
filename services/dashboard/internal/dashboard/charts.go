package dashboard

import (
	"sort"

	"gigdash/services/dashboard/internal/models"
)

// Category colors for the scatter plot.
var categoryColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Sequential teal scale used by the bar and pie charts.
var tealScale = []string{
	"#d1eeea", "#a8dbd9", "#85c4c9", "#68abb8", "#4f90a6", "#3b738f", "#2a5674",
}

// BuildScatter plots one point per skill category: x is the mean friction
// index, y the mean price, and the marker size follows the mean price.
// Categories lacking either mean have no point.
func BuildScatter(categories models.CategoryMetrics) *ChartConfig {
	names := make([]string, 0, len(categories))
	for name, m := range categories {
		if m.Plottable() {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	config := &ChartConfig{
		ChartType:   ChartScatter,
		Title:       "Competition vs. Pay by Skill Category",
		XAxis:       "Freelancer Friction Index (Proxy for Competition)",
		YAxis:       "Average Project Price (USD)",
		LegendTitle: "Skill Category",
		Series:      make([]ChartSeries, 0, len(names)),
		ShowLegend:  true,
		ShowGrid:    true,
	}

	for i, name := range names {
		m := categories[name]
		color := categoryColors[i%len(categoryColors)]
		config.Series = append(config.Series, ChartSeries{
			Name:  name,
			Color: color,
			Data: []ChartPoint{{
				Label: name,
				Value: RoundTo2(m.MeanPrice),
				X:     RoundTo2(m.MeanFrictionIndex),
				Y:     RoundTo2(m.MeanPrice),
				Size:  RoundTo2(m.MeanPrice),
			}},
		})
		config.Colors = append(config.Colors, color)
	}
	return config
}

// BuildCountryBar draws the top countries as horizontal bars. Points keep
// the ranking order; CategoryOrder tells the renderer to put the largest
// bar on top.
func BuildCountryBar(countries models.CountryCounts) *ChartConfig {
	points := make([]ChartPoint, 0, len(countries))
	for _, c := range countries {
		points = append(points, ChartPoint{
			Label: c.Country,
			Value: float64(c.JobCount),
		})
	}

	return &ChartConfig{
		ChartType:     ChartBar,
		Title:         "Top Client Countries (Demand Dominance)",
		XAxis:         "Total Jobs Posted",
		YAxis:         "Client Country",
		Orientation:   "h",
		CategoryOrder: "total ascending",
		Series: []ChartSeries{{
			Name: "Total Jobs Posted",
			Data: points,
		}},
		Colors:     tealScale,
		ShowLegend: false,
		ShowGrid:   true,
	}
}

// BuildJobTypePie draws each job type's share of postings, largest first.
func BuildJobTypePie(jobTypes models.JobTypeCounts) *ChartConfig {
	type slice struct {
		name  string
		count int
	}
	slices := make([]slice, 0, len(jobTypes))
	for name, count := range jobTypes {
		slices = append(slices, slice{name, count})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].count != slices[j].count {
			return slices[i].count > slices[j].count
		}
		return slices[i].name < slices[j].name
	})

	total := jobTypes.Total()
	points := make([]ChartPoint, 0, len(slices))
	for _, s := range slices {
		points = append(points, ChartPoint{
			Label:   s.name,
			Value:   float64(s.count),
			Percent: RoundTo2(100 * float64(s.count) / float64(total)),
		})
	}

	colors := make([]string, len(points))
	for i := range points {
		colors[i] = tealScale[i%len(tealScale)]
	}

	return &ChartConfig{
		ChartType: ChartPie,
		Title:     "Project Type Preference (Trade Surplus)",
		Series: []ChartSeries{{
			Name: "Job Type",
			Data: points,
		}},
		Colors:     colors,
		ShowLegend: true,
		ShowGrid:   false,
	}
}
