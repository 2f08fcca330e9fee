package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/common/pairedwrite"
	pgRepo "github.com/thedevarpan/dot-developer/internal/infra/adapter/persistence/postgres"
	"github.com/thedevarpan/dot-developer/internal/infra/db"
	"github.com/thedevarpan/dot-developer/internal/infra/imagehost"
	"github.com/thedevarpan/dot-developer/internal/observability/logging"
	"github.com/thedevarpan/dot-developer/internal/observability/tracing"
	"github.com/thedevarpan/dot-developer/pkg/config"
	"github.com/thedevarpan/dot-developer/pkg/ratelimit"

	accUC "github.com/thedevarpan/dot-developer/internal/usecase/account"
	blogUC "github.com/thedevarpan/dot-developer/internal/usecase/blog"
	engUC "github.com/thedevarpan/dot-developer/internal/usecase/engagement"

	hhttp "github.com/thedevarpan/dot-developer/internal/handler/http"
	haccount "github.com/thedevarpan/dot-developer/internal/handler/http/account"
	hauth "github.com/thedevarpan/dot-developer/internal/handler/http/auth"
	hblog "github.com/thedevarpan/dot-developer/internal/handler/http/blog"
	hengagement "github.com/thedevarpan/dot-developer/internal/handler/http/engagement"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
	"github.com/thedevarpan/dot-developer/internal/handler/http/requestid"
	"github.com/thedevarpan/dot-developer/internal/service/session"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	handler, err := setupServer(logger, database)
	if err != nil {
		logger.Error("server setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, handler)
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return config.GetEnvString("VERSION", "dev")
}

// newImageHost builds the image uploader from environment configuration.
// Without credentials the no-op host is used and banners are stored inline.
func newImageHost(logger *slog.Logger) accUC.ImageHost {
	cfg := imagehost.Config{
		CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}
	if cfg.CloudName == "" && cfg.APIKey == "" && cfg.APISecret == "" {
		logger.Warn("image host credentials not set, storing images inline")
		return imagehost.NewNoOp()
	}

	host, err := imagehost.NewCloudinary(cfg, nil)
	if err != nil {
		logger.Error("image host configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("image host configured", slog.String("cloud", cfg.CloudName))
	return host
}

// setupServer wires repositories, services and handlers into the root handler.
func setupServer(logger *slog.Logger, database *sql.DB) (http.Handler, error) {
	blogs := pgRepo.NewBlogRepo(database)
	users := pgRepo.NewUserRepo(database)
	repairs := pgRepo.NewRepairRepo(database)

	paired := &pairedwrite.Runner{Repairs: repairs, Logger: logger}
	images := newImageHost(logger)

	blogSvc := &blogUC.Service{Blogs: blogs, Users: users, Images: images, Paired: paired}
	engSvc := &engUC.Service{Blogs: blogs, Users: users, Paired: paired}
	accSvc := &accUC.Service{Users: users, Blogs: blogs, Images: images}

	sessions := &session.Manager{
		Store:  pgRepo.NewSessionRepo(database),
		TTL:    config.GetEnvDuration("SESSION_TTL", 7*24*time.Hour),
		Secure: config.GetEnvBool("SESSION_SECURE", false),
	}

	rnd, err := render.New(logger)
	if err != nil {
		return nil, err
	}

	paginationCfg := pagination.LoadFromEnv()

	mux := http.NewServeMux()
	hblog.Register(mux, blogSvc, rnd, paginationCfg, logger)
	hengagement.Register(mux, engSvc, rnd, paginationCfg, logger)
	haccount.Register(mux, accSvc, sessions, rnd, paginationCfg, logger)

	rlMetrics := ratelimit.NewPrometheusMetrics()

	// 運用エンドポイント(認証不要)
	version := getVersion()
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandlerFor(rlMetrics.Registry()))

	return applyMiddleware(logger, mux, sessions, rlMetrics), nil
}

// applyMiddleware wraps the mux with the middleware chain.
// Order: Request ID → Rate Limit → Recovery → Logging → Tracing →
// Security Headers → Body Limit → Input Validation → Metrics → Session.
func applyMiddleware(logger *slog.Logger, handler http.Handler, sessions *session.Manager, rlMetrics ratelimit.RateLimitMetrics) http.Handler {
	rateLimiter := hhttp.NewRateLimiter(
		config.GetEnvInt("RATELIMIT_LIMIT", 300),
		config.GetEnvDuration("RATELIMIT_WINDOW", time.Minute),
	).WithMetrics(rlMetrics)

	// Apply in reverse order (innermost to outermost)
	chain := handler
	chain = hauth.Session(sessions, logger)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.LimitRequestBody(10 << 20)(chain) // 10MB: blog posts carry base64 banner images
	chain = hhttp.SecurityHeaders()(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := config.GetEnvString("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", getVersion()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
