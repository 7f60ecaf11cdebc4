// Command purge-drafts removes expired delegation drafts from the ledger.
// It is intended to be invoked by an external cron job, not as an in-process
// goroutine.
//
// Usage:
//
//	purge-drafts [--dry-run]
//
// With --dry-run the command only reports how many drafts would be deleted.
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/clinicore/delegation/internal/adapter/postgres"
	pgaudit "github.com/clinicore/delegation/internal/adapter/postgres/audit"
	pgbotclient "github.com/clinicore/delegation/internal/adapter/postgres/botclient"
	pgclinician "github.com/clinicore/delegation/internal/adapter/postgres/clinician"
	pgdraft "github.com/clinicore/delegation/internal/adapter/postgres/draft"
	"github.com/clinicore/delegation/internal/app"
	"github.com/clinicore/delegation/internal/config"
	"github.com/clinicore/delegation/internal/metrics"
	"github.com/clinicore/delegation/internal/service/draft"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would be deleted without deleting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := draft.NewService(
		logger,
		pgdraft.New(pool),
		pgclinician.New(pool),
		pgbotclient.New(pool),
		pgaudit.New(pool),
		metrics.NewCollector(prometheus.NewRegistry()),
		cfg.Draft,
		cfg.Promotion,
	)

	if *dryRun {
		count, err := svc.CountExpired(ctx)
		if err != nil {
			logger.Error("count expired drafts", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("Dry run: %d expired draft(s) would be deleted.\n", count)
		return
	}

	deleted, err := svc.PurgeExpired(ctx)
	if err != nil {
		logger.Error("purge expired drafts", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Purged %d expired draft(s).\n", deleted)
}
