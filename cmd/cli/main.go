// Command cli is the operator tool: schema migrations, reconciliation of
// stuck payments, escrow release and payment status checks.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/piolcm/piol/infra"
	"github.com/piolcm/piol/infra/initializer"
	"github.com/piolcm/piol/infra/migrations"
	"github.com/piolcm/piol/pkg/app"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/config"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]

Commands:
  migrate up                 apply all pending migrations
  migrate down [steps]       roll back steps migrations (default 1)
  migrate version            print the current schema version
  reconcile [-older-than d] [-limit n]
                             re-check payments stuck in processing
  release <transaction-id>   release held escrow to the landlord
  status <transaction-id>    refresh a payment from its provider

release and status log in as PIOL_EMAIL (prompted when unset).`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		}
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "migrate":
		return migrate(args[1:], out)
	case "reconcile":
		return reconcile(args[1:], out)
	case "release":
		return release(args[1:], out)
	case "status":
		return status(args[1:], out)
	case "help", "-h", "--help":
		fmt.Fprintln(out, usage)
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func migrate(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	steps := 1
	switch args[0] {
	case "up", "version":
	case "down":
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("%w: steps must be a positive integer", errUsage)
			}
			steps = n
		}
	default:
		return fmt.Errorf("%w: unknown migrate action %q", errUsage, args[0])
	}

	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close() //nolint:errcheck

	switch args[0] {
	case "up":
		if err = migrations.Up(sqlDB); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(out, "Migrations applied")
	case "down":
		if err = migrations.Down(sqlDB, steps); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(out, "Rolled back %d migration(s)\n", steps)
	case "version":
		version, dirty, err := migrations.Version(sqlDB)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Schema version %d", version)
		if dirty {
			color.New(color.FgYellow).Fprint(out, " (dirty)")
		}
		fmt.Fprintln(out)
	}
	return nil
}

func reconcile(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("reconcile", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	olderThan := fs.Duration("older-than", 15*time.Minute, "minimum time spent in processing")
	limit := fs.Int("limit", 100, "maximum transactions to check")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	a, closer, err := newApp()
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	report, err := a.PaymentService.ReconcileStale(context.Background(), *olderThan, *limit)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Checked %d transaction(s): ", report.Checked)
	color.New(color.FgGreen).Fprintf(out, "%d completed", report.Completed)
	fmt.Fprint(out, ", ")
	color.New(color.FgRed).Fprintf(out, "%d failed", report.Failed)
	fmt.Fprintf(out, ", %d still pending\n", report.Pending)
	for _, ref := range report.Unreferenced {
		color.New(color.FgYellow).Fprintln(out, "  "+ref+": no provider reference, check with the provider")
	}
	for _, e := range report.Errors {
		color.New(color.FgYellow).Fprintln(out, "  "+e)
	}
	return nil
}

func release(args []string, out io.Writer) error {
	id, err := transactionArg(args)
	if err != nil {
		return err
	}
	a, closer, err := newApp()
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	ctx := context.Background()
	ac, err := login(ctx, a)
	if err != nil {
		return err
	}
	res, err := a.PaymentService.ReleaseEscrowFunds(ctx, ac, id)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(out, "Released %d to the landlord (commission %d), reference %s\n",
		res.DisbursedAmount, res.Commission, res.ReferenceID)
	return nil
}

func status(args []string, out io.Writer) error {
	id, err := transactionArg(args)
	if err != nil {
		return err
	}
	a, closer, err := newApp()
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	ctx := context.Background()
	ac, err := login(ctx, a)
	if err != nil {
		return err
	}
	tx, err := a.PaymentService.CheckPaymentStatus(ctx, ac, id)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(tx)
}

func transactionArg(args []string) (uuid.UUID, error) {
	if len(args) != 1 {
		return uuid.Nil, fmt.Errorf("%w: a transaction id is required", errUsage)
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid transaction id %q", errUsage, args[0])
	}
	return id, nil
}

func newApp() (*app.App, io.Closer, error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return nil, nil, err
	}
	deps, closer, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, nil, err
	}
	return app.New(*deps, cfg), closer, nil
}

// login checks operator credentials on every command; the CLI keeps no session.
func login(ctx context.Context, a *app.App) (*authz.AuthContext, error) {
	email := os.Getenv("PIOL_EMAIL")
	if email == "" {
		fmt.Fprint(os.Stderr, "Email: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		email = strings.TrimSpace(line)
	}
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	u, err := a.AuthService.Login(ctx, email, string(password))
	if err != nil {
		return nil, err
	}
	return authz.New(u), nil
}
