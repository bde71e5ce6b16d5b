package models

// AllCountries is the sentinel selection that disables the country filter.
const AllCountries = "All Countries"

// FilterSelection is the single country chosen in the filter control.
type FilterSelection struct {
	Country string `json:"country"`
}

// NewFilterSelection maps an empty value to the sentinel.
func NewFilterSelection(country string) FilterSelection {
	if country == "" {
		country = AllCountries
	}
	return FilterSelection{Country: country}
}

func (s FilterSelection) IsAll() bool {
	return s.Country == "" || s.Country == AllCountries
}

// CategoryMetric holds the per-category means. Each mean covers only the
// postings that carry that value, counted in PriceSamples and
// FrictionSamples; a mean with no samples is reported as 0.
type CategoryMetric struct {
	SkillCategory     string  `json:"skill_category"`
	MeanPrice         float64 `json:"mean_price"`
	MeanFrictionIndex float64 `json:"mean_friction_index"`
	Jobs              int     `json:"jobs"`
	PriceSamples      int     `json:"price_samples"`
	FrictionSamples   int     `json:"friction_samples"`
}

// Plottable reports whether both means are backed by at least one value.
func (m CategoryMetric) Plottable() bool {
	return m.PriceSamples > 0 && m.FrictionSamples > 0
}

// CategoryMetrics is keyed by skill category.
type CategoryMetrics map[string]CategoryMetric

type CountryCount struct {
	Country  string `json:"country"`
	JobCount int    `json:"job_count"`
}

// CountryCounts is ordered by JobCount descending, then Country ascending.
type CountryCounts []CountryCount

// JobTypeCounts is keyed by job type.
type JobTypeCounts map[string]int

// Total sums every count.
func (c JobTypeCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Overview holds the headline metrics, always computed on the unfiltered table.
type Overview struct {
	TotalJobs       int     `json:"total_jobs"`
	AvgPrice        float64 `json:"avg_price"`
	UniqueCountries int     `json:"unique_countries"`
}
