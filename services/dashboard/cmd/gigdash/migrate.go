package main

import (
	"context"

	"gigdash/common/database/schema"
	"gigdash/common/database/schema/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rollbackSteps int

//nolint:gochecknoglobals // Cobra boilerplate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the ClickHouse job_postings table used by --source clickhouse",
	RunE:  runMigrate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().IntVar(&rollbackSteps, "down", 0, "roll back this many applied migrations instead of migrating up")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := newClickHouse(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect to clickhouse", zap.Error(err))
		return err
	}
	defer db.Close()

	migrator := schema.NewMigrator(db.Conn(), logger)
	if rollbackSteps > 0 {
		n, err := migrator.Down(ctx, migrations.All, rollbackSteps)
		if err != nil {
			logger.Error("rollback failed", zap.Int("rolled_back", n), zap.Error(err))
			return err
		}
		logger.Info("rollback complete", zap.Int("rolled_back", n))
		return nil
	}

	applied, err := migrator.Up(ctx, migrations.All)
	if err != nil {
		logger.Error("migration failed", zap.Error(err))
		return err
	}

	logger.Info("migrations complete", zap.Int("applied", applied))
	return nil
}
