package dashboard

import (
	"context"
	"fmt"

	"gigdash/common/telemetry"
	"gigdash/services/dashboard/internal/analytics"
	"gigdash/services/dashboard/internal/models"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DatasetProvider hands out the memoized job posting table.
type DatasetProvider interface {
	Dataset(ctx context.Context) (*models.Dataset, error)
}

type Service struct {
	datasets DatasetProvider
	logger   *zap.Logger
	tracer   trace.Tracer
}

func NewService(datasets DatasetProvider, logger *zap.Logger) *Service {
	return &Service{
		datasets: datasets,
		logger:   logger,
		tracer:   telemetry.GetTracer("gigdash/dashboard/service"),
	}
}

// OnFilterChanged recomputes the whole dashboard for a selection: overview
// on the full table, then filter, aggregate and chart descriptors. A load
// failure is returned as is and no partial view is produced.
func (s *Service) OnFilterChanged(ctx context.Context, selection models.FilterSelection) (*View, error) {
	ctx, span := s.tracer.Start(ctx, "Service.OnFilterChanged")
	defer span.End()
	span.SetAttributes(telemetry.String("filter.country", selection.Country))

	ds, err := s.datasets.Dataset(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dataset unavailable")
		return nil, err
	}

	overview := analytics.Overview(ds)

	_, filterSpan := s.tracer.Start(ctx, "analytics.Filter")
	filtered := analytics.Filter(ds, selection)
	filterSpan.SetAttributes(telemetry.Int("rows.in", ds.Len()), telemetry.Int("rows.out", filtered.Len()))
	filterSpan.End()

	_, aggSpan := s.tracer.Start(ctx, "analytics.Aggregate")
	result := analytics.Aggregate(filtered)
	aggSpan.SetAttributes(
		telemetry.Int("categories", len(result.Categories)),
		telemetry.Int("countries", len(result.Countries)),
		telemetry.Int("job_types", len(result.JobTypes)),
	)
	aggSpan.End()

	view := &View{
		Title:      dashboardTitle,
		Subtitle:   dashboardSubtitle,
		Metrics:    Metrics(overview),
		Overview:   overview,
		Selection:  selection.Country,
		Options:    analytics.CountryOptions(ds),
		Scatter:    BuildScatter(result.Categories),
		Bar:        BuildCountryBar(result.Countries),
		Pie:        BuildJobTypePie(result.JobTypes),
		Insights:   Insights(),
		Footer:     dashboardFooter,
		Aggregates: result,
	}
	if !selection.IsAll() {
		view.ViewingLabel = fmt.Sprintf("Viewing data for: %s", selection.Country)
	}

	s.logger.Debug("recomputed dashboard",
		zap.String("country", selection.Country),
		zap.Int("rows", filtered.Len()))

	return view, nil
}

// Options returns the values of the country filter control.
func (s *Service) Options(ctx context.Context) ([]string, error) {
	ds, err := s.datasets.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.CountryOptions(ds), nil
}

// Overview returns the headline metrics of the full table.
func (s *Service) Overview(ctx context.Context) ([]Metric, error) {
	ds, err := s.datasets.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return Metrics(analytics.Overview(ds)), nil
}

// Metrics maps the overview onto the three headline displays.
func Metrics(o models.Overview) []Metric {
	return []Metric{
		{Label: labelTotalJobs, Value: float64(o.TotalJobs), Display: FormatInt(o.TotalJobs)},
		{Label: labelAvgPrice, Value: RoundTo2(o.AvgPrice), Display: FormatDollars(o.AvgPrice)},
		{Label: labelUniqueCountries, Value: float64(o.UniqueCountries), Display: fmt.Sprintf("%d", o.UniqueCountries)},
	}
}
