// Command killswitch flips the process-wide delegation switch.
//
// Usage:
//
//	killswitch disable --admin-id=<uuid> --reason="incident 4711"
//	killswitch enable --admin-id=<uuid>
//	killswitch maintenance --admin-id=<uuid> --message="back at 06:00 UTC"
//	killswitch maintenance --admin-id=<uuid> --off
//
// Running servers observe the change within the configured cache TTL.
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

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/adapter/postgres"
	pgaudit "github.com/clinicore/delegation/internal/adapter/postgres/audit"
	pgkillswitch "github.com/clinicore/delegation/internal/adapter/postgres/killswitch"
	"github.com/clinicore/delegation/internal/app"
	"github.com/clinicore/delegation/internal/config"
	"github.com/clinicore/delegation/internal/service/killswitch"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := killswitch.NewService(logger, pgkillswitch.New(pool), pgaudit.New(pool), cfg.KillSwitch)

	switch os.Args[1] {
	case "disable":
		runDisable(ctx, svc, os.Args[2:])
	case "enable":
		runEnable(ctx, svc, os.Args[2:])
	case "maintenance":
		runMaintenance(ctx, svc, os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: killswitch <disable|enable|maintenance> [flags]")
	os.Exit(1)
}

func runDisable(ctx context.Context, svc *killswitch.Service, args []string) {
	fs := flag.NewFlagSet("disable", flag.ExitOnError)
	adminID := fs.String("admin-id", "", "acting administrator id")
	reason := fs.String("reason", "", "why delegation is being disabled")
	fs.Parse(args) //nolint:errcheck

	if *reason == "" {
		fmt.Fprintln(os.Stderr, "disable: --reason is required")
		os.Exit(1)
	}

	if err := svc.Disable(ctx, parseAdminID(*adminID), *reason); err != nil {
		log.Fatalf("disable delegation: %v", err)
	}
	fmt.Println("Delegation disabled. All token issuance is now rejected.")
}

func runEnable(ctx context.Context, svc *killswitch.Service, args []string) {
	fs := flag.NewFlagSet("enable", flag.ExitOnError)
	adminID := fs.String("admin-id", "", "acting administrator id")
	fs.Parse(args) //nolint:errcheck

	if err := svc.Enable(ctx, parseAdminID(*adminID)); err != nil {
		log.Fatalf("enable delegation: %v", err)
	}
	fmt.Println("Delegation enabled.")
}

func runMaintenance(ctx context.Context, svc *killswitch.Service, args []string) {
	fs := flag.NewFlagSet("maintenance", flag.ExitOnError)
	adminID := fs.String("admin-id", "", "acting administrator id")
	message := fs.String("message", "", "operator-facing maintenance message")
	off := fs.Bool("off", false, "exit maintenance mode")
	fs.Parse(args) //nolint:errcheck

	var msg *string
	if !*off {
		if *message == "" {
			fmt.Fprintln(os.Stderr, "maintenance: --message is required (or pass --off)")
			os.Exit(1)
		}
		msg = message
	}

	if err := svc.SetMaintenance(ctx, parseAdminID(*adminID), msg); err != nil {
		log.Fatalf("set maintenance: %v", err)
	}
	if msg != nil {
		fmt.Printf("Maintenance mode on: %s\n", *msg)
	} else {
		fmt.Println("Maintenance mode off.")
	}
}

func parseAdminID(raw string) uuid.UUID {
	if raw == "" {
		fmt.Fprintln(os.Stderr, "--admin-id is required")
		os.Exit(1)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --admin-id %q: %v\n", raw, err)
		os.Exit(1)
	}
	return id
}
