// Command bot-admin manages delegate bot clients.
//
// Usage:
//
//	bot-admin create --name="ward-bot" --scopes="patient:read,dailynote:draft" [--rate-limit=100]
//	bot-admin rotate-secret --id=<uuid>
//	bot-admin suspend --id=<uuid> --reason="leaked credentials"
//	bot-admin reactivate --id=<uuid>
//
// The client secret is printed exactly once, on create and rotate-secret.
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/adapter/postgres"
	pgaudit "github.com/clinicore/delegation/internal/adapter/postgres/audit"
	pgbotclient "github.com/clinicore/delegation/internal/adapter/postgres/botclient"
	"github.com/clinicore/delegation/internal/app"
	"github.com/clinicore/delegation/internal/config"
	"github.com/clinicore/delegation/internal/domain"
	"github.com/clinicore/delegation/internal/scopes"
	"github.com/clinicore/delegation/internal/service/botclient"
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

	svc := botclient.NewService(
		logger,
		pgbotclient.New(pool),
		scopes.Default(),
		pgaudit.New(pool),
		postgres.NewTxManager(pool),
		cfg.Delegation,
	)

	switch os.Args[1] {
	case "create":
		runCreate(ctx, svc, os.Args[2:])
	case "rotate-secret":
		runRotate(ctx, svc, os.Args[2:])
	case "suspend":
		runSuspend(ctx, svc, os.Args[2:])
	case "reactivate":
		runReactivate(ctx, svc, os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: bot-admin <create|rotate-secret|suspend|reactivate> [flags]")
	os.Exit(1)
}

func runCreate(ctx context.Context, svc *botclient.Service, args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "display name of the bot client")
	scopeList := fs.String("scopes", "", "comma-separated allowed scopes")
	rateLimit := fs.Int("rate-limit", 0, "tokens per hour (0 = configured default)")
	fs.Parse(args) //nolint:errcheck

	if *name == "" || *scopeList == "" {
		fmt.Fprintln(os.Stderr, "create: --name and --scopes are required")
		os.Exit(1)
	}

	var allowed []domain.ScopeName
	for _, s := range strings.Split(*scopeList, ",") {
		if s = strings.TrimSpace(s); s != "" {
			allowed = append(allowed, domain.ScopeName(s))
		}
	}

	result, err := svc.Create(ctx, botclient.CreateInput{
		DisplayName:      *name,
		AllowedScopes:    allowed,
		RateLimitPerHour: *rateLimit,
	})
	if err != nil {
		log.Fatalf("create client: %v", err)
	}

	fmt.Printf("Client created.\n")
	fmt.Printf("  id:          %s\n", result.Client.ID)
	fmt.Printf("  name:        %s\n", result.Client.DisplayName)
	fmt.Printf("  scopes:      %s\n", joinScopeNames(result.Client.AllowedScopes))
	fmt.Printf("  rate limit:  %d/hour\n", result.Client.RateLimitPerHour)
	fmt.Printf("  secret:      %s\n", result.Secret)
	fmt.Println("Store the secret now; it cannot be recovered.")
}

func runRotate(ctx context.Context, svc *botclient.Service, args []string) {
	fs := flag.NewFlagSet("rotate-secret", flag.ExitOnError)
	id := fs.String("id", "", "client id")
	fs.Parse(args) //nolint:errcheck

	clientID := parseID(*id)
	secret, err := svc.RotateSecret(ctx, clientID)
	if err != nil {
		log.Fatalf("rotate secret: %v", err)
	}

	fmt.Printf("Secret rotated for %s. The old secret is no longer valid.\n", clientID)
	fmt.Printf("  secret: %s\n", secret)
	fmt.Println("Store the secret now; it cannot be recovered.")
}

func runSuspend(ctx context.Context, svc *botclient.Service, args []string) {
	fs := flag.NewFlagSet("suspend", flag.ExitOnError)
	id := fs.String("id", "", "client id")
	reason := fs.String("reason", "", "suspension reason")
	fs.Parse(args) //nolint:errcheck

	clientID := parseID(*id)
	if *reason == "" {
		fmt.Fprintln(os.Stderr, "suspend: --reason is required")
		os.Exit(1)
	}

	if err := svc.Suspend(ctx, clientID, *reason); err != nil {
		log.Fatalf("suspend client: %v", err)
	}

	client, err := svc.Get(ctx, clientID)
	if err != nil {
		log.Fatalf("read client: %v", err)
	}
	fmt.Printf("Client %s (%s) suspended. Tokens issued to date: %d.\n",
		client.DisplayName, clientID, client.TokensIssued)
}

func runReactivate(ctx context.Context, svc *botclient.Service, args []string) {
	fs := flag.NewFlagSet("reactivate", flag.ExitOnError)
	id := fs.String("id", "", "client id")
	fs.Parse(args) //nolint:errcheck

	clientID := parseID(*id)
	if err := svc.Reactivate(ctx, clientID); err != nil {
		log.Fatalf("reactivate client: %v", err)
	}

	fmt.Printf("Client %s reactivated.\n", clientID)
}

func parseID(raw string) uuid.UUID {
	if raw == "" {
		fmt.Fprintln(os.Stderr, "--id is required")
		os.Exit(1)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --id %q: %v\n", raw, err)
		os.Exit(1)
	}
	return id
}

func joinScopeNames(scopes []domain.ScopeName) string {
	parts := make([]string, len(scopes))
	for i, s := range scopes {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
