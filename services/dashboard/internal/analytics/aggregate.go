package analytics

import (
	"sort"

	"gigdash/services/dashboard/internal/models"
)

// TopCountriesLimit caps the country ranking.
const TopCountriesLimit = 10

// CategoryMetrics averages price and friction index per skill category.
// Categories without rows are absent rather than zero-filled, postings with
// a blank category are not grouped, and missing values are left out of the
// mean they belong to.
func CategoryMetrics(ds *models.Dataset) models.CategoryMetrics {
	type sums struct {
		price, friction   float64
		prices, frictions int
		n                 int
	}

	acc := make(map[string]*sums)
	for _, p := range postingsOf(ds) {
		if p.SkillCategory == "" {
			continue
		}
		s, ok := acc[p.SkillCategory]
		if !ok {
			s = &sums{}
			acc[p.SkillCategory] = s
		}
		if !p.PriceMissing {
			s.price += p.Price
			s.prices++
		}
		if !p.FrictionMissing {
			s.friction += p.FrictionIndex
			s.frictions++
		}
		s.n++
	}

	out := make(models.CategoryMetrics, len(acc))
	for category, s := range acc {
		out[category] = models.CategoryMetric{
			SkillCategory:     category,
			MeanPrice:         mean(s.price, s.prices),
			MeanFrictionIndex: mean(s.friction, s.frictions),
			Jobs:              s.n,
			PriceSamples:      s.prices,
			FrictionSamples:   s.frictions,
		}
	}
	return out
}

// CountryCounts counts postings per client country and keeps the ten largest.
// Equal counts are ordered by country name ascending. Postings without a
// country are not counted.
func CountryCounts(ds *models.Dataset) models.CountryCounts {
	counts := countBy(ds, func(p models.JobPosting) string { return p.ClientCountry })

	out := make(models.CountryCounts, 0, len(counts))
	for country, n := range counts {
		out = append(out, models.CountryCount{Country: country, JobCount: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].JobCount != out[j].JobCount {
			return out[i].JobCount > out[j].JobCount
		}
		return out[i].Country < out[j].Country
	})

	if len(out) > TopCountriesLimit {
		out = out[:TopCountriesLimit]
	}
	return out
}

// JobTypeCounts counts postings per job type, ignoring blank job types.
func JobTypeCounts(ds *models.Dataset) models.JobTypeCounts {
	return models.JobTypeCounts(countBy(ds, func(p models.JobPosting) string { return p.JobType }))
}

// Overview computes the headline metrics. Callers pass the unfiltered table.
// Every posting counts towards TotalJobs; AvgPrice covers only postings
// with a price.
func Overview(ds *models.Dataset) models.Overview {
	postings := postingsOf(ds)
	if len(postings) == 0 {
		return models.Overview{}
	}

	var total float64
	var priced int
	countries := make(map[string]struct{})
	for _, p := range postings {
		if !p.PriceMissing {
			total += p.Price
			priced++
		}
		if p.ClientCountry != "" {
			countries[p.ClientCountry] = struct{}{}
		}
	}

	return models.Overview{
		TotalJobs:       len(postings),
		AvgPrice:        mean(total, priced),
		UniqueCountries: len(countries),
	}
}

// Result bundles the three aggregations of one filtered table.
type Result struct {
	Categories models.CategoryMetrics `json:"categories"`
	Countries  models.CountryCounts   `json:"countries"`
	JobTypes   models.JobTypeCounts   `json:"job_types"`
}

// Aggregate runs every aggregation over ds.
func Aggregate(ds *models.Dataset) Result {
	return Result{
		Categories: CategoryMetrics(ds),
		Countries:  CountryCounts(ds),
		JobTypes:   JobTypeCounts(ds),
	}
}

func countBy(ds *models.Dataset, key func(models.JobPosting) string) map[string]int {
	counts := make(map[string]int)
	for _, p := range postingsOf(ds) {
		if k := key(p); k != "" {
			counts[k]++
		}
	}
	return counts
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func postingsOf(ds *models.Dataset) []models.JobPosting {
	if ds == nil {
		return nil
	}
	return ds.Postings
}
