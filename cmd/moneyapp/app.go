package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"moneyapp/internal/accounts"
	"moneyapp/internal/backend"
	"moneyapp/internal/cli"
	"moneyapp/internal/core"
	"moneyapp/internal/ledger"
	"moneyapp/internal/log"
	"moneyapp/internal/pages"
	"moneyapp/internal/services"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&usersCmd{}, "accounts")
	c.Register(&registerCmd{}, "accounts")
	c.Register(&loginCmd{}, "accounts")
	c.Register(&logoutCmd{}, "accounts")
	c.Register(&deleteCmd{}, "accounts")

	c.Register(&dashboardCmd{}, "pages")
	c.Register(&moneyCmd{}, "pages")
	c.Register(&transactCmd{typ: core.Add}, "pages")
	c.Register(&transactCmd{typ: core.Subtract}, "pages")
	c.Register(&pocketCmd{}, "pages")
	c.Register(&savingsCmd{}, "pages")
	c.Register(&saveCmd{}, "pages")
	c.Register(&goalCmd{}, "pages")
	c.Register(&spendingCmd{}, "pages")
	c.Register(&budgetCmd{}, "pages")
	c.Register(&spendCmd{}, "pages")
	c.Register(&resetSpendingCmd{}, "pages")
}

// Terminal seams, replaced in tests.
var (
	stdout io.Writer     = os.Stdout
	stderr io.Writer     = os.Stderr
	stdin  *bufio.Reader = bufio.NewReader(os.Stdin)
)

// app is everything a command needs, built from the environment.
type app struct {
	logger    *log.Logger
	store     *backend.BackendResult
	notifier  *services.ActivityService
	directory *accounts.Directory
	ledger    *ledger.Ledger
	pages     *pages.Pages
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := cli.SetupLogger(cfg.LogLevel)

	store, err := cli.OpenStore(ctx, logger, cfg)
	if err != nil {
		return nil, err
	}
	notifier := cli.NewActivityNotifier(logger, cfg)

	dirOpts := []accounts.Option{accounts.WithLogger(logger)}
	ledgerOpts := []ledger.Option{ledger.WithLogger(logger)}
	if notifier.Enabled() {
		dirOpts = append(dirOpts, accounts.WithNotifier(notifier))
		ledgerOpts = append(ledgerOpts, ledger.WithNotifier(notifier))
	}

	l := ledger.New(store.Store, ledgerOpts...)
	return &app{
		logger:    logger,
		store:     store,
		notifier:  notifier,
		directory: accounts.NewDirectory(store.Store, dirOpts...),
		ledger:    l,
		pages:     pages.New(l),
	}, nil
}

func (a *app) Close() error {
	return errors.Join(a.notifier.Close(), a.store.Close())
}

// session restores the login written by the last "login" command.
func (a *app) session(ctx context.Context) (accounts.Session, error) {
	return a.directory.CurrentSession(ctx)
}

// run opens the app, runs fn and maps any error to the short user message.
func run(ctx context.Context, fn func(*app) error) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := fn(a); err != nil {
		cli.Fail(a.logger, stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// withSession is run for commands that act on the logged-in user.
func withSession(ctx context.Context, fn func(*app, accounts.Session) error) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		s, err := a.session(ctx)
		if err != nil {
			return err
		}
		return fn(a, s)
	})
}

// pinOrPrompt returns pin, asking the terminal when it is empty.
func pinOrPrompt(pin string) (string, error) {
	if pin != "" {
		return pin, nil
	}
	return cli.ReadPIN(stderr)
}

func confirmer(yes bool) core.Confirmer {
	if yes {
		return cli.AssumeYes
	}
	return cli.Confirm(stdin, stderr)
}
