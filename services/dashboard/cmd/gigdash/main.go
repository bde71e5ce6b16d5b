package main

import (
	"context"
	"os"

	"gigdash/common/cache"
	"gigdash/common/cache/redis"
	"gigdash/common/database"
	"gigdash/common/telemetry"
	"gigdash/services/dashboard/internal/config"
	"gigdash/services/dashboard/internal/loader"
	"gigdash/services/dashboard/internal/store"

	"go.uber.org/zap"
)

const serviceName = "gigdash"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	if dataSheet != "" {
		cfg.DataSheet = dataSheet
	}
	if dataSource != "" {
		cfg.DataSource = dataSource
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogMode == "production" || cfg.LogMode == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newClickHouse(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*database.Database, error) {
	return database.New(ctx, database.Options{
		DSN:             cfg.ClickHouseDSN,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		Database:        cfg.ClickHouseDatabase,
	}, logger)
}

// newSource picks the table source. The returned close func releases any
// connection the source holds.
func newSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (loader.Source, func() error, error) {
	if cfg.DataSource != config.SourceClickHouse {
		return loader.NewFileSource(cfg.DataFile, cfg.DataSheet, logger), func() error { return nil }, nil
	}

	db, err := newClickHouse(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	src, err := loader.NewClickHouseSource(db.Conn(), cfg.ClickHouseTable, logger)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if ok, err := db.TableExists(ctx, cfg.ClickHouseTable); err != nil {
		logger.Warn("could not check clickhouse table", zap.String("table", cfg.ClickHouseTable), zap.Error(err))
	} else if !ok {
		logger.Warn("clickhouse table not found, run 'gigdash migrate' first", zap.String("table", cfg.ClickHouseTable))
	}
	return src, db.Close, nil
}

func newSnapshotCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.Noop{}
	}

	c := redis.New(cache.Options{
		RedisURL:      cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		DefaultTTL:    cfg.CacheTTL,
	})
	if err := c.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, dataset snapshots disabled",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err))
		_ = c.Close()
		return cache.Noop{}
	}
	return c
}

func newStore(src loader.Source, c cache.Cache, cfg *config.Config, logger *zap.Logger) *store.Store {
	return store.New(src, logger, store.WithSnapshotCache(c, cfg.CacheTTL))
}

func initTelemetry(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	return telemetry.InitTracer(ctx, serviceName, cfg.OTelCollectorURL)
}
