package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ulule/limiter/v3"

	"github.com/kushtati/kushtati-immo/internal/advisor"
	"github.com/kushtati/kushtati-immo/internal/config"
	"github.com/kushtati/kushtati-immo/internal/contact"
	"github.com/kushtati/kushtati-immo/internal/database"
	"github.com/kushtati/kushtati-immo/internal/document"
	kushtatiHttp "github.com/kushtati/kushtati-immo/internal/http"
	advisorHandler "github.com/kushtati/kushtati-immo/internal/http/advisor"
	contactHandler "github.com/kushtati/kushtati-immo/internal/http/contact"
	documentsHandler "github.com/kushtati/kushtati-immo/internal/http/documents"
	importHandler "github.com/kushtati/kushtati-immo/internal/http/importcsv"
	listingsHandler "github.com/kushtati/kushtati-immo/internal/http/listings"
	maintenanceHandler "github.com/kushtati/kushtati-immo/internal/http/maintenance"
	"github.com/kushtati/kushtati-immo/internal/http/middleware"
	paymentsHandler "github.com/kushtati/kushtati-immo/internal/http/payments"
	portfolioHandler "github.com/kushtati/kushtati-immo/internal/http/portfolio"
	"github.com/kushtati/kushtati-immo/internal/importer"
	"github.com/kushtati/kushtati-immo/internal/lease"
	"github.com/kushtati/kushtati-immo/internal/listing"
	"github.com/kushtati/kushtati-immo/internal/maintenance"
	"github.com/kushtati/kushtati-immo/internal/payment"
	"github.com/kushtati/kushtati-immo/internal/payment/flow"
	"github.com/kushtati/kushtati-immo/internal/payment/store"
	"github.com/kushtati/kushtati-immo/internal/portfolio"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	repo, closeRepo, err := ledgerRepository(cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	ledger := payment.NewService(repo, time.Now)

	if err := seedLedger(ctx, cfg, ledger); err != nil {
		return err
	}

	var (
		l         = lease.Default()
		renderer  = document.NewRenderer(l, time.Now)
		requests  = maintenance.NewService(maintenance.NewMemory(), time.Now)
		works     = maintenance.NewService(maintenance.NewMemory(), time.Now)
		catalogue = listing.NewService(listing.NewMemory())
		leads     = contact.NewService(contact.NewMemory(), time.Now)
	)

	if err := requests.Seed(ctx, maintenance.TenantRequests()); err != nil {
		return err
	}

	if err := works.Seed(ctx, maintenance.OwnerInterventions()); err != nil {
		return err
	}

	if err := catalogue.Seed(ctx, listing.DefaultListings()); err != nil {
		return err
	}

	gen, closeGen := advisorGenerator(ctx, cfg)
	defer closeGen()

	advisorLimiter, err := middleware.NewLimiter(cfg.Advisor.RateLimit)
	if err != nil {
		return err
	}

	newFlow := func() *flow.Flow {
		return flow.New(flow.Deps{
			Ledger:    ledger,
			Renderer:  renderer,
			Confirmer: flow.DelayConfirmer{Delay: cfg.Payment.ProcessingDelay},
			Lease:     l,
		})
	}

	router := kushtatiHttp.New(
		options(cfg, advisorLimiter),
		paymentsHandler.NewHandler(ledger, renderer, newFlow),
		documentsHandler.NewHandler(ledger, works, portfolio.DefaultProperties, renderer),
		maintenanceHandler.NewHandler(requests),
		portfolioHandler.NewHandler(portfolio.DefaultProperties),
		advisorHandler.NewHandler(advisor.NewService(gen)),
		importHandler.NewHandler(importer.NewService(), ledger),
		listingsHandler.NewHandler(catalogue),
		contactHandler.NewHandler(leads),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "ledger_store", cfg.Ledger.Store)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func options(cfg *config.Config, advisorLimiter *limiter.Limiter) kushtatiHttp.Options {
	if cfg.Auth.JWTSecret == "" {
		slog.Warn("AUTH_JWT_SECRET is empty, the API is served without authentication")
	}

	return kushtatiHttp.Options{
		JWTSecret:      cfg.Auth.JWTSecret,
		CORSOrigins:    cfg.CORS.Origins,
		AdvisorLimiter: advisorLimiter,
	}
}

func ledgerRepository(cfg *config.Config) (payment.Repository, func(), error) {
	if cfg.Ledger.Store == config.LedgerStoreMemory {
		return store.NewMemory(), func() {}, nil
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return store.New(db), func() { db.Close() }, nil
}

// seedLedger fills an empty ledger from LEDGER_SEED_FILE, or with the default
// records when no file is configured.
func seedLedger(ctx context.Context, cfg *config.Config, ledger *payment.Service) error {
	existing, err := ledger.List(ctx)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		return nil
	}

	records := payment.DefaultRecords()

	if cfg.Ledger.SeedFile != "" {
		records, err = importer.NewService().ImportFile(cfg.Ledger.SeedFile)
		if err != nil {
			return err
		}
	}

	slog.Info("seeding ledger", "records", len(records))

	return ledger.Seed(ctx, records)
}

func advisorGenerator(ctx context.Context, cfg *config.Config) (advisor.Generator, func()) {
	g, err := advisor.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		if !errors.Is(err, advisor.ErrNotConfigured) {
			slog.Error("failed to create advisor client", "error", err)
		}

		return advisor.Unconfigured{}, func() {}
	}

	return g, func() {
		if err := g.Close(); err != nil {
			slog.Warn("failed to close advisor client", "error", err)
		}
	}
}
