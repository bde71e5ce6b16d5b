package dashboard

import (
	"context"
	"encoding/json"
	"testing"

	"gigdash/services/dashboard/internal/errors"
	"gigdash/services/dashboard/internal/models"

	"go.uber.org/zap"
)

type staticProvider struct {
	ds  *models.Dataset
	err error
}

func (p staticProvider) Dataset(context.Context) (*models.Dataset, error) {
	return p.ds, p.err
}

func fixture() *models.Dataset {
	return &models.Dataset{
		Source: "fixture",
		Postings: []models.JobPosting{
			{Price: 100, ClientCountry: "US", SkillCategory: "Writing", FrictionIndex: 0.8, JobType: "Fixed"},
			{Price: 300, ClientCountry: "US", SkillCategory: "Dev", FrictionIndex: 0.2, JobType: "Hourly"},
			{Price: 200, ClientCountry: "IN", SkillCategory: "Dev", FrictionIndex: 0.3, JobType: "Fixed"},
		},
	}
}

func TestOnFilterChangedAllCountries(t *testing.T) {
	svc := NewService(staticProvider{ds: fixture()}, zap.NewNop())

	view, err := svc.OnFilterChanged(context.Background(), models.NewFilterSelection(""))
	if err != nil {
		t.Fatalf("OnFilterChanged returned error: %v", err)
	}

	if view.Selection != models.AllCountries {
		t.Errorf("Selection = %q, want %q", view.Selection, models.AllCountries)
	}
	if view.ViewingLabel != "" {
		t.Errorf("ViewingLabel = %q, want empty for all countries", view.ViewingLabel)
	}

	wantDisplays := []string{"3", "$200", "2"}
	for i, m := range view.Metrics {
		if m.Display != wantDisplays[i] {
			t.Errorf("metric %q display = %q, want %q", m.Label, m.Display, wantDisplays[i])
		}
	}

	wantOptions := []string{models.AllCountries, "IN", "US"}
	if len(view.Options) != len(wantOptions) {
		t.Fatalf("Options = %v, want %v", view.Options, wantOptions)
	}
	for i := range wantOptions {
		if view.Options[i] != wantOptions[i] {
			t.Errorf("Options[%d] = %q, want %q", i, view.Options[i], wantOptions[i])
		}
	}

	if len(view.Scatter.Series) != 2 {
		t.Fatalf("scatter series = %d, want 2", len(view.Scatter.Series))
	}
	dev := view.Scatter.Series[0].Data[0]
	if view.Scatter.Series[0].Name != "Dev" || dev.X != 0.25 || dev.Y != 250 || dev.Size != 250 {
		t.Errorf("Dev point = %+v", dev)
	}

	bar := view.Bar.Series[0].Data
	if len(bar) != 2 || bar[0].Label != "US" || bar[0].Value != 2 {
		t.Errorf("bar data = %+v", bar)
	}
	if view.Bar.Orientation != "h" {
		t.Errorf("bar orientation = %q, want h", view.Bar.Orientation)
	}

	pie := view.Pie.Series[0].Data
	if len(pie) != 2 || pie[0].Label != "Fixed" || pie[0].Value != 2 || pie[0].Percent != 66.67 {
		t.Errorf("pie data = %+v", pie)
	}

	if len(view.Insights) != 3 {
		t.Errorf("insights = %d, want 3", len(view.Insights))
	}
}

func TestOnFilterChangedSingleCountry(t *testing.T) {
	svc := NewService(staticProvider{ds: fixture()}, zap.NewNop())

	view, err := svc.OnFilterChanged(context.Background(), models.NewFilterSelection("US"))
	if err != nil {
		t.Fatalf("OnFilterChanged returned error: %v", err)
	}

	if view.ViewingLabel != "Viewing data for: US" {
		t.Errorf("ViewingLabel = %q", view.ViewingLabel)
	}
	if view.Overview.TotalJobs != 3 {
		t.Errorf("overview total = %d, want 3 regardless of filter", view.Overview.TotalJobs)
	}
	if got := view.Aggregates.Categories["Writing"]; got.MeanPrice != 100 || got.MeanFrictionIndex != 0.8 {
		t.Errorf("Writing = %+v", got)
	}
	if got := view.Aggregates.JobTypes; got["Fixed"] != 1 || got["Hourly"] != 1 {
		t.Errorf("JobTypes = %v", got)
	}
}

func TestOnFilterChangedUnmatchedCountry(t *testing.T) {
	svc := NewService(staticProvider{ds: fixture()}, zap.NewNop())

	view, err := svc.OnFilterChanged(context.Background(), models.NewFilterSelection("Atlantis"))
	if err != nil {
		t.Fatalf("OnFilterChanged returned error: %v", err)
	}

	for _, chart := range []*ChartConfig{view.Scatter, view.Bar, view.Pie} {
		if chart == nil {
			t.Fatal("charts must be present even when empty")
		}
		if !chart.IsEmpty() {
			t.Errorf("%s chart should be empty, got %+v", chart.ChartType, chart.Series)
		}
	}
	if view.Overview.TotalJobs != 3 || view.Overview.UniqueCountries != 2 {
		t.Errorf("overview = %+v, want unfiltered values", view.Overview)
	}
}

func TestOnFilterChangedDataUnavailable(t *testing.T) {
	svc := NewService(staticProvider{err: errors.DataUnavailable("couldn't find 'jobs.xlsx'", nil)}, zap.NewNop())

	view, err := svc.OnFilterChanged(context.Background(), models.NewFilterSelection(""))
	if view != nil {
		t.Error("no partial view may be produced on load failure")
	}
	if !errors.IsType(err, errors.ErrTypeDataUnavailable) {
		t.Errorf("error = %v, want DATA_UNAVAILABLE", err)
	}

	if _, err := svc.Options(context.Background()); err == nil {
		t.Error("Options should fail when the dataset is unavailable")
	}
}

func TestScatterKeepsZeroCoordinates(t *testing.T) {
	ds := &models.Dataset{Postings: []models.JobPosting{
		{Price: 150, ClientCountry: "US", SkillCategory: "Dev", FrictionIndex: 0, JobType: "Fixed"},
	}}
	svc := NewService(staticProvider{ds: ds}, zap.NewNop())

	view, err := svc.OnFilterChanged(context.Background(), models.NewFilterSelection(""))
	if err != nil {
		t.Fatalf("OnFilterChanged returned error: %v", err)
	}

	raw, err := json.Marshal(view.Scatter.Series[0].Data[0])
	if err != nil {
		t.Fatalf("marshal point: %v", err)
	}
	var point map[string]any
	if err := json.Unmarshal(raw, &point); err != nil {
		t.Fatalf("unmarshal point: %v", err)
	}
	if x, ok := point["x"]; !ok || x != 0.0 {
		t.Errorf("point JSON = %s, want x present and 0", raw)
	}
	if y, ok := point["y"]; !ok || y != 150.0 {
		t.Errorf("point JSON = %s, want y 150", raw)
	}
}

func TestScatterSkipsCategoryWithoutPrices(t *testing.T) {
	ds := &models.Dataset{Postings: []models.JobPosting{
		{Price: 150, ClientCountry: "US", SkillCategory: "Dev", FrictionIndex: 0.3, JobType: "Fixed"},
		{ClientCountry: "US", SkillCategory: "Ops", FrictionIndex: 0.5, JobType: "Fixed", PriceMissing: true},
	}}
	svc := NewService(staticProvider{ds: ds}, zap.NewNop())

	view, err := svc.OnFilterChanged(context.Background(), models.NewFilterSelection(""))
	if err != nil {
		t.Fatalf("OnFilterChanged returned error: %v", err)
	}
	if len(view.Scatter.Series) != 1 || view.Scatter.Series[0].Name != "Dev" {
		t.Errorf("scatter series = %+v, want only Dev", view.Scatter.Series)
	}
	if view.Overview.TotalJobs != 2 || view.Overview.AvgPrice != 150 {
		t.Errorf("overview = %+v, want 2 jobs averaging 150", view.Overview)
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatInt(0), "0"},
		{FormatInt(999), "999"},
		{FormatInt(1234567), "1,234,567"},
		{FormatDollars(1234.6), "$1,235"},
		{FormatDollars(200), "$200"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
