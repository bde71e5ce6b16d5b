package main

import (
	"context"
	"fmt"
	"os"

	"gigdash/services/dashboard/internal/dashboard"
	"gigdash/services/dashboard/internal/errors"
	"gigdash/services/dashboard/internal/events"
	"gigdash/services/dashboard/internal/models"
	"gigdash/services/dashboard/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	reportCountry string
	reportViaNATS bool
)

//nolint:gochecknoglobals // Cobra boilerplate
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard as text",
	Long: `Loads the job postings table and prints the overview metrics and the three
charts as tables, optionally filtered to one client country.

Examples:
  gigdash report
  gigdash report --country "United States" --data jobs.csv
  NATS_URL=nats://localhost:4222 gigdash report --nats --country Canada`,
	RunE: runReport,
}

//nolint:gochecknoglobals // Cobra boilerplate
var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the values accepted by --country",
	RunE:  runCountries,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(countriesCmd)
	reportCmd.Flags().StringVar(&reportCountry, "country", models.AllCountries, "client country to filter by")
	reportCmd.Flags().BoolVar(&reportViaNATS, "nats", false, "ask a running service over NATS instead of loading the table locally")
}

func newCLIService(ctx context.Context) (*dashboard.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	src, closeSource, err := newSource(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	snapshots := newSnapshotCache(ctx, cfg, logger)

	cleanup := func() {
		if err := snapshots.Close(); err != nil {
			logger.Warn("failed to close cache", zap.Error(err))
		}
		if err := closeSource(); err != nil {
			logger.Warn("failed to close source", zap.Error(err))
		}
		_ = logger.Sync()
	}

	return dashboard.NewService(newStore(src, snapshots, cfg, logger), logger), cleanup, nil
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if reportViaNATS {
		return runRemoteReport(ctx)
	}

	svc, cleanup, err := newCLIService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	view, err := svc.OnFilterChanged(ctx, models.NewFilterSelection(reportCountry))
	if err != nil {
		return userError(err)
	}
	return report.Write(os.Stdout, view)
}

func runRemoteReport(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.NATSURL == "" {
		return fmt.Errorf("--nats requires NATS_URL")
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	requester, err := events.NewRequester(logger, cfg.NATSURL, cfg.NATSSubject, cfg.NATSConnTimeout)
	if err != nil {
		return err
	}
	defer requester.Close()

	ctx, cancel := context.WithTimeout(ctx, cfg.NATSConnTimeout)
	defer cancel()

	view, err := requester.RequestView(ctx, reportCountry)
	if err != nil {
		return userError(err)
	}
	return report.Write(os.Stdout, view)
}

func runCountries(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, cleanup, err := newCLIService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	options, err := svc.Options(ctx)
	if err != nil {
		return userError(err)
	}
	for _, o := range options {
		fmt.Println(o)
	}
	return nil
}

// userError turns a missing table into the message shown to the user;
// nothing else is printed in that case.
func userError(err error) error {
	if errors.IsType(err, errors.ErrTypeDataUnavailable) {
		return fmt.Errorf("data unavailable: %s; check that the file exists and has the expected columns", errors.Message(err))
	}
	return err
}
