// Command audit-report aggregates the delegation audit log over a date range.
//
// Usage:
//
//	audit-report --since=2026-08-01 --until=2026-09-01
//
// Timestamps accept YYYY-MM-DD or RFC 3339. When omitted, the report covers
// the last 24 hours.
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

	"github.com/clinicore/delegation/internal/adapter/postgres"
	pgaudit "github.com/clinicore/delegation/internal/adapter/postgres/audit"
	"github.com/clinicore/delegation/internal/app"
	"github.com/clinicore/delegation/internal/config"
	"github.com/clinicore/delegation/internal/service/audit"
)

func main() {
	sinceFlag := flag.String("since", "", "report range start")
	untilFlag := flag.String("until", "", "report range end")
	flag.Parse()

	until := time.Now().UTC()
	since := until.Add(-24 * time.Hour)
	if *untilFlag != "" {
		until = parseTime(*untilFlag)
	}
	if *sinceFlag != "" {
		since = parseTime(*sinceFlag)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := audit.NewService(logger, pgaudit.New(pool))

	report, err := svc.Report(ctx, since, until)
	if err != nil {
		logger.Error("generate report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Delegation audit report %s .. %s\n",
		report.Since.Format(time.RFC3339), report.Until.Format(time.RFC3339))
	fmt.Printf("Total events: %d\n", report.Total)

	fmt.Println("By outcome:")
	for outcome, n := range report.ByOutcome {
		fmt.Printf("  %-24s %d\n", outcome, n)
	}
	if len(report.ByReason) > 0 {
		fmt.Println("By denial reason:")
		for reason, n := range report.ByReason {
			fmt.Printf("  %-24s %d\n", reason, n)
		}
	}
	if len(report.ByDelegate) > 0 {
		fmt.Println("By delegate:")
		for id, n := range report.ByDelegate {
			fmt.Printf("  %s %d\n", id, n)
		}
	}
	if len(report.ByDelegator) > 0 {
		fmt.Println("By delegator:")
		for id, n := range report.ByDelegator {
			fmt.Printf("  %s %d\n", id, n)
		}
	}
}

func parseTime(raw string) time.Time {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid timestamp %q (want YYYY-MM-DD or RFC 3339)\n", raw)
		os.Exit(1)
	}
	return t
}
