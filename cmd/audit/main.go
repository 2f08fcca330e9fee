package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/thedevarpan/dot-developer/internal/handler/http/respond"
	pgRepo "github.com/thedevarpan/dot-developer/internal/infra/adapter/persistence/postgres"
	"github.com/thedevarpan/dot-developer/internal/infra/auditor"
	"github.com/thedevarpan/dot-developer/internal/infra/db"
	"github.com/thedevarpan/dot-developer/internal/observability/logging"
	"github.com/thedevarpan/dot-developer/internal/service/session"
	"github.com/thedevarpan/dot-developer/internal/usecase/audit"
	"github.com/thedevarpan/dot-developer/pkg/config"
)

// waitForMigrations blocks until the API's schema migration has created the
// core tables, so the auditor can start before the API in compose setups.
func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM blogs LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	waitForMigrations(logger, database)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := auditor.NewMetrics()
	cfg, err := auditor.LoadConfigFromEnv(logger, metrics)
	if err != nil {
		logger.Error("failed to load auditor configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("auditor configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Int("repair_batch_limit", cfg.RepairBatchLimit),
		slog.Duration("job_timeout", cfg.JobTimeout),
		slog.Int("health_port", cfg.HealthPort))

	svc := &audit.Service{
		Users:   pgRepo.NewUserRepo(database),
		Repairs: pgRepo.NewRepairRepo(database),
		Logger:  logger,
	}
	sessions := &session.Manager{Store: pgRepo.NewSessionRepo(database)}

	startMetricsServer(ctx, logger)

	healthAddr := ":" + strconv.Itoa(cfg.HealthPort)
	healthServer := auditor.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	startCron(ctx, logger, svc, sessions, cfg, metrics, healthServer)
}

// startMetricsServer exposes the Prometheus registry on METRICS_PORT.
func startMetricsServer(ctx context.Context, logger *slog.Logger) {
	addr := ":" + strconv.Itoa(config.GetEnvInt("METRICS_PORT", 9090))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("metrics server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", slog.Any("error", err))
		}
	}()
}

// startCron schedules the audit pass and blocks until the context is done.
func startCron(
	ctx context.Context,
	logger *slog.Logger,
	svc *audit.Service,
	sessions *session.Manager,
	cfg *auditor.Config,
	metrics *auditor.Metrics,
	healthServer *auditor.HealthServer,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runAuditPass(logger, svc, sessions, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("auditor started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutting down auditor...")
	cronCtx := c.Stop()
	<-cronCtx.Done()
	logger.Info("auditor stopped")
}

// runAuditPass executes one audit pass: resolve repair records, sweep for
// drifted aggregates and purge expired sessions.
func runAuditPass(logger *slog.Logger, svc *audit.Service, sessions *session.Manager, cfg *auditor.Config, metrics *auditor.Metrics) {
	startTime := time.Now()
	logger.Info("audit pass started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
	defer cancel()

	resolved, err := svc.ResolvePending(ctx, cfg.RepairBatchLimit)
	if err != nil {
		logger.Error("repair resolution failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	corrected, err := svc.SweepDrift(ctx)
	if err != nil {
		logger.Error("drift sweep failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	purged, err := sessions.PurgeExpired(ctx)
	if err != nil {
		// セッション掃除の失敗はパス全体を失敗にしない
		logger.Warn("session purge failed", slog.String("error", respond.SanitizeError(err)))
	}

	metrics.RecordJobRun("success")
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	metrics.RecordRepairsResolved(resolved)
	metrics.RecordDriftCorrected(corrected)
	metrics.RecordLastSuccess()

	logger.Info("audit pass completed",
		slog.Int("repairs_resolved", resolved),
		slog.Int("drift_corrected", corrected),
		slog.Int64("sessions_purged", purged),
		slog.Duration("duration", time.Since(startTime)),
	)
}
