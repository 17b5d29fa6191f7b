package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/dinero-app/dinero/infra"
	"github.com/dinero-app/dinero/infra/initializer"
	infra_repository "github.com/dinero-app/dinero/infra/repository"
	"github.com/dinero-app/dinero/pkg/app"
	"github.com/dinero-app/dinero/pkg/config"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	success = color.New(color.FgGreen, color.Bold)
	failure = color.New(color.FgRed, color.Bold)
	label   = color.New(color.FgCyan)
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  migrate                 apply database migrations")
	fmt.Println("  register <email> [name] register a user (password is prompted)")
	fmt.Println("  accounts <email>        list the user's bank accounts")
	fmt.Println("  sync <email>            refresh the user's linked balances")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	if err := run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		failure.Fprintln(os.Stderr, "Error:", err) //nolint: errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := initializer.NewLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cmd == "migrate" {
		if err := infra.RunMigrations(db, logger); err != nil {
			return err
		}
		success.Println("Migrations applied") //nolint: errcheck
		return nil
	}

	// The CLI prompts for passwords, so it always authenticates with the
	// basic strategy.
	cfg.Auth = &config.Auth{Strategy: "basic"}
	a, err := app.New(&app.Deps{
		Uow:        infra_repository.NewUoW(db),
		Aggregator: initializer.NewAggregator(cfg.Plaid, logger),
		Logger:     logger,
	}, cfg)
	if err != nil {
		return err
	}

	switch cmd {
	case "register":
		if len(args) < 1 {
			return errors.New("usage: register <email> [name]")
		}
		name := ""
		if len(args) > 1 {
			name = strings.Join(args[1:], " ")
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}
		u, err := a.UserService.Register(ctx, args[0], password, name, "")
		if err != nil {
			return err
		}
		success.Printf("User registered: ID=%s Email=%s\n", u.ID, u.Email) //nolint: errcheck
	case "accounts":
		u, err := login(ctx, a, args)
		if err != nil {
			return err
		}
		accounts, err := a.AccountService.ListAccounts(ctx, u.ID)
		if err != nil {
			return err
		}
		printAccounts(accounts)
	case "sync":
		u, err := login(ctx, a, args)
		if err != nil {
			return err
		}
		accounts, err := a.LinkService.SyncBalances(ctx, u.ID)
		if err != nil {
			return err
		}
		success.Printf("Synced %d linked account(s)\n", len(accounts)) //nolint: errcheck
		printAccounts(accounts)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func login(ctx context.Context, a *app.App, args []string) (*dto.UserRead, error) {
	if len(args) < 1 {
		return nil, errors.New("an email is required")
	}
	password, err := promptPassword()
	if err != nil {
		return nil, err
	}
	return a.AuthService.Login(ctx, args[0], password)
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

func printAccounts(accounts []*dto.AccountRead) {
	if len(accounts) == 0 {
		fmt.Println("No accounts")
		return
	}
	for _, acc := range accounts {
		kind := "manual"
		if !acc.IsManual {
			kind = "linked"
		}
		label.Printf("%s ", acc.ID) //nolint: errcheck
		fmt.Printf("%-24s %-12s %-6s %s\n", acc.InstitutionName, acc.AccountType, kind, acc.Balance.StringFixed(2))
	}
}
