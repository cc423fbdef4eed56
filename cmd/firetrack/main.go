package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/ringgitlab/firetrack/internal/advisor"
	"github.com/ringgitlab/firetrack/internal/api"
	"github.com/ringgitlab/firetrack/internal/config"
	"github.com/ringgitlab/firetrack/internal/database"
	"github.com/ringgitlab/firetrack/internal/export"
	"github.com/ringgitlab/firetrack/internal/portfolio"
	"github.com/ringgitlab/firetrack/internal/quote"
	"github.com/ringgitlab/firetrack/internal/snapshot"
	"github.com/ringgitlab/firetrack/internal/store"
	"github.com/ringgitlab/firetrack/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	app := &cli.App{
		Name:           "firetrack",
		Usage:          "personal FIRE portfolio tracker",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and background workers",
				Action: runServe,
			},
			{
				Name:  "export",
				Usage: "write a one-shot xlsx report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "output file path",
						Value: "firetrack.xlsx",
					},
				},
				Action: runExport,
			},
			{
				Name:   "snapshot",
				Usage:  "generate today's net-worth snapshot",
				Action: runSnapshot,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// services bundles everything built on top of the database pool.
type services struct {
	store     *store.Service
	quotes    *quote.Service
	portfolio *portfolio.Service
	snapshots *snapshot.Service
	exports   *export.Service
}

func buildServices(ctx context.Context, cfg config.Config) (*pgxpool.Pool, *services, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	storeSvc := store.NewService(store.NewPgRepository(pool))

	quoteClient := quote.NewClient(cfg.QuoteAPIURL, cfg.QuoteRetryMax, cfg.QuoteRetryBaseDelay)
	quoteSvc := quote.NewService(quoteClient, quote.NewPgRepository(pool), storeSvc)

	portfolioSvc := portfolio.NewService(storeSvc, quoteSvc)
	snapshotSvc := snapshot.NewService(portfolioSvc, snapshot.NewPgRepository(pool))

	writers, err := reportWriters(ctx, cfg)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	exportSvc := export.NewService(portfolioSvc, writers...)

	return pool, &services{
		store:     storeSvc,
		quotes:    quoteSvc,
		portfolio: portfolioSvc,
		snapshots: snapshotSvc,
		exports:   exportSvc,
	}, nil
}

// reportWriters builds the configured spreadsheet destinations. The Google
// Sheets mirror is optional.
func reportWriters(ctx context.Context, cfg config.Config) ([]export.ReportWriter, error) {
	if cfg.SheetsSpreadsheetID == "" {
		return nil, nil
	}
	if cfg.GoogleCredentialsJSON == "" {
		return nil, fmt.Errorf("SHEETS_SPREADSHEET_ID is set but GOOGLE_CREDENTIALS_JSON is empty")
	}
	w, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.GoogleCredentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("creating sheets writer: %w", err)
	}
	return []export.ReportWriter{w}, nil
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	pool, svcs, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	var advice api.AdviceSource
	if cfg.AdvisorEnabled {
		adv, err := advisor.New(ctx)
		if err != nil {
			slog.Warn("advisor disabled", "error", err)
		} else {
			advice = adv
		}
	}

	quoteWorker := worker.NewQuoteWorker(svcs.quotes, cfg.QuoteWorkerInterval)
	go quoteWorker.Run(ctx)

	var hook worker.AfterSnapshotHook
	if cfg.SheetsSpreadsheetID != "" {
		hook = svcs.exports
	}
	snapshotWorker := worker.NewSnapshotWorker(svcs.snapshots, cfg.SnapshotWorkerInterval, hook)
	go snapshotWorker.Run(ctx)

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, mutating endpoints are unprotected")
	}

	handler := api.NewHandler(svcs.store, svcs.portfolio, svcs.snapshots, svcs.exports, advice, api.BridgeDefaults{
		Threshold:   cfg.EPFThreshold,
		AnnualLimit: cfg.EPFAnnualLimit,
	})
	srv := api.NewServer(cfg.HTTPPort, handler, cfg.AdminAPIKey)

	go func() {
		slog.Info("HTTP server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func runExport(c *cli.Context) error {
	cfg := config.Load()

	pool, svcs, err := buildServices(c.Context, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	report, err := svcs.exports.Report(c.Context)
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := export.NewXLSXWriter(out).Write(c.Context, report); err != nil {
		return err
	}
	slog.Info("report written", "path", out)
	return nil
}

func runSnapshot(c *cli.Context) error {
	cfg := config.Load()

	pool, svcs, err := buildServices(c.Context, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	view, err := svcs.snapshots.Generate(c.Context, time.Now().UTC())
	if err != nil {
		return err
	}
	slog.Info("snapshot generated", "netWorth", view.Totals.NetWorth)
	return nil
}
