package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"gigdash/common/cache"
	"gigdash/common/telemetry"
	"gigdash/services/dashboard/internal/api"
	"gigdash/services/dashboard/internal/config"
	"gigdash/services/dashboard/internal/dashboard"
	"gigdash/services/dashboard/internal/events"
	"gigdash/services/dashboard/internal/loader"
	"gigdash/services/dashboard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var httpAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP (and NATS when configured)",
	Long: `Starts the dashboard service. Every request recomputes the dashboard for the
requested country from the in-memory table, which is loaded once.

Endpoints:
  GET /api/dashboard?country=<name>
  GET /api/countries
  GET /api/overview
  GET /healthcheck

With NATS_URL set, the service also answers filter change requests on
NATS_SUBJECT with the same dashboard payload.`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&httpAddr, "addr", "", "listen address (default $HTTP_ADDR or :8501)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if cfg.LogMode == "production" || cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Provide(
			newLogger,
			provideSource,
			provideSnapshotCache,
			newStore,
			provideService,
			provideDashboardHandler,
			provideRouter,
			provideServer,
		),
		fx.Invoke(
			registerTelemetry,
			registerWarmup,
			registerHTTP,
			registerNATS,
		),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start dashboard service: %w", err)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return app.Stop(stopCtx)
}

func provideSource(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (loader.Source, error) {
	src, closeSource, err := newSource(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closeSource()
		},
	})
	return src, nil
}

func provideSnapshotCache(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) cache.Cache {
	c := newSnapshotCache(context.Background(), cfg, logger)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return c.Close()
		},
	})
	return c
}

func provideService(st *store.Store, logger *zap.Logger) *dashboard.Service {
	return dashboard.NewService(st, logger)
}

func provideDashboardHandler(svc *dashboard.Service, logger *zap.Logger) *api.DashboardHandler {
	return api.NewDashboardHandler(svc, logger)
}

func provideRouter(cfg *config.Config, h *api.DashboardHandler) *gin.Engine {
	return api.NewRouter(api.RouterConfig{
		DashboardHandler: h,
		AllowOrigins:     cfg.CORSAllowOrigins,
	})
}

func provideServer(cfg *config.Config, engine *gin.Engine, logger *zap.Logger) *api.Server {
	return api.NewServer(cfg.HTTPAddr, engine, logger)
}

func registerTelemetry(lc fx.Lifecycle, cfg *config.Config) error {
	shutdown, err := initTelemetry(context.Background(), cfg)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{OnStop: shutdown})
	return nil
}

// registerWarmup loads the table at startup. A failure does not stop the
// service: every endpoint then reports the error instead of a dashboard.
func registerWarmup(lc fx.Lifecycle, st *store.Store, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := st.Dataset(ctx); err != nil {
				logger.Error("dataset unavailable, dashboard requests will fail", zap.Error(err))
			}
			return nil
		},
	})
}

func registerHTTP(lc fx.Lifecycle, srv *api.Server) {
	lc.Append(fx.Hook{
		OnStart: srv.Start,
		OnStop:  srv.Stop,
	})
}

func registerNATS(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger, svc *dashboard.Service) error {
	if cfg.NATSURL == "" {
		return nil
	}

	nc, err := nats.Connect(cfg.NATSURL,
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("dashboard-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}

	handler := events.NewHandler(logger, nc, telemetry.GetTracer("gigdash/dashboard/events"), svc, cfg.NATSSubject, cfg.NATSQueue)
	if err := handler.RegisterSubscriptions(lc); err != nil {
		nc.Close()
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			nc.Close()
			return nil
		},
	})
	return nil
}
