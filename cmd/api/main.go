package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/subosito/gotenv"

	"github.com/asoclibre/members-api/internal/adapters/httpapi"
	memcategoryrepo "github.com/asoclibre/members-api/internal/adapters/memory/categoryrepo"
	memmemberrepo "github.com/asoclibre/members-api/internal/adapters/memory/memberrepo"
	memorgrepo "github.com/asoclibre/members-api/internal/adapters/memory/orgrepo"
	mempersonrepo "github.com/asoclibre/members-api/internal/adapters/memory/personrepo"
	memquotarepo "github.com/asoclibre/members-api/internal/adapters/memory/quotarepo"
	postgres "github.com/asoclibre/members-api/internal/adapters/postgres"
	pgcategoryrepo "github.com/asoclibre/members-api/internal/adapters/postgres/categoryrepo"
	pgmemberrepo "github.com/asoclibre/members-api/internal/adapters/postgres/memberrepo"
	pgorgrepo "github.com/asoclibre/members-api/internal/adapters/postgres/orgrepo"
	pgpersonrepo "github.com/asoclibre/members-api/internal/adapters/postgres/personrepo"
	pgquotarepo "github.com/asoclibre/members-api/internal/adapters/postgres/quotarepo"
	"github.com/asoclibre/members-api/internal/app/debts"
	"github.com/asoclibre/members-api/internal/app/onboarding"
	"github.com/asoclibre/members-api/internal/app/signup"
	platformclock "github.com/asoclibre/members-api/internal/platform/clock"
	"github.com/asoclibre/members-api/internal/platform/config"
	"github.com/asoclibre/members-api/internal/platform/logger"
	"github.com/asoclibre/members-api/internal/platform/metrics"
	categoryrepoport "github.com/asoclibre/members-api/internal/ports/out/categoryrepo"
	memberrepoport "github.com/asoclibre/members-api/internal/ports/out/memberrepo"
	orgrepoport "github.com/asoclibre/members-api/internal/ports/out/orgrepo"
	personrepoport "github.com/asoclibre/members-api/internal/ports/out/personrepo"
	quotarepoport "github.com/asoclibre/members-api/internal/ports/out/quotarepo"
	"github.com/asoclibre/members-api/migrations"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	goose.SetBaseFS(migrations.FS)
	return goose.Up(sqlDB, ".")
}

func main() {
	_ = gotenv.Load()

	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	clk := platformclock.NewSystemClock()

	var (
		memberRepo   memberrepoport.Repository
		quotaRepo    quotarepoport.Repository
		categoryRepo categoryrepoport.Repository
		personRepo   personrepoport.Repository
		orgRepo      orgrepoport.Repository
		cleanup      func()
	)

	switch cfg.Storage.Backend {
	case "postgres":
		if err := runMigrations(cfg.Postgres.DSN); err != nil {
			log.Error("migrations failed", "err", err)
			os.Exit(1)
		}
		log.Info("migrations applied")

		pool, err := postgres.NewPool(context.Background(), cfg.Postgres.DSN, postgres.PoolOptions{})
		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		cleanup = pool.Close
		log.Info("db connected")

		memberRepo = pgmemberrepo.NewRepo(pool)
		quotaRepo = pgquotarepo.NewRepo(pool)
		categoryRepo = pgcategoryrepo.NewRepo(pool)
		personRepo = pgpersonrepo.NewRepo(pool)
		orgRepo = pgorgrepo.NewRepo(pool)
	default:
		memberRepo = memmemberrepo.NewRepo()
		quotaRepo = memquotarepo.NewRepo()
		categoryRepo = memcategoryrepo.NewRepo()
		personRepo = mempersonrepo.NewRepo()
		orgRepo = memorgrepo.NewRepo()
	}

	if cleanup != nil {
		defer cleanup()
	}

	signupSvc := signup.NewService(personRepo, orgRepo, categoryRepo, clk)
	debtsSvc := debts.NewService(memberRepo, quotaRepo, clk)
	onboardingSvc := onboarding.NewService(memberRepo)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	api := httpapi.NewServer(signupSvc, debtsSvc, onboardingSvc, log, m)

	opts := httpapi.RouterOptions{
		AdminMiddleware: httpapi.NewAdminTokenMiddleware(cfg.HTTP.AdminToken),
	}
	if cfg.Metrics.Enabled {
		opts.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}
	handler := httpapi.NewRouter(api, opts)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("api listening", "addr", cfg.HTTP.Addr, "backend", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
