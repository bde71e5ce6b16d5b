package analytics

import (
	"sort"

	"gigdash/services/dashboard/internal/models"
)

// Filter returns the postings whose client country equals the selection,
// in their original order. The all-countries selection returns ds itself.
// A selection with no matches yields an empty dataset, never an error.
func Filter(ds *models.Dataset, selection models.FilterSelection) *models.Dataset {
	if selection.IsAll() {
		return ds
	}

	out := &models.Dataset{Source: sourceOf(ds)}
	if ds == nil {
		return out
	}

	out.Postings = make([]models.JobPosting, 0, len(ds.Postings))
	for _, p := range ds.Postings {
		if p.ClientCountry == selection.Country {
			out.Postings = append(out.Postings, p)
		}
	}
	return out
}

// CountryOptions lists the values of the country control: the sentinel
// followed by every distinct non-empty country, ascending.
func CountryOptions(ds *models.Dataset) []string {
	countries := DistinctCountries(ds)
	options := make([]string, 0, len(countries)+1)
	options = append(options, models.AllCountries)
	return append(options, countries...)
}

// DistinctCountries returns the distinct non-empty client countries, ascending.
func DistinctCountries(ds *models.Dataset) []string {
	if ds == nil {
		return nil
	}

	seen := make(map[string]bool)
	var countries []string
	for _, p := range ds.Postings {
		if p.ClientCountry != "" && !seen[p.ClientCountry] {
			seen[p.ClientCountry] = true
			countries = append(countries, p.ClientCountry)
		}
	}
	sort.Strings(countries)
	return countries
}

func sourceOf(ds *models.Dataset) string {
	if ds == nil {
		return ""
	}
	return ds.Source
}
