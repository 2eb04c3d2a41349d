package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type usersCmd struct{}

func (*usersCmd) Name() string     { return "users" }
func (*usersCmd) Synopsis() string { return "list registered users" }
func (*usersCmd) Usage() string {
	return `moneyapp users

  Lists every registered user, the way the login page shows them.
`
}
func (*usersCmd) SetFlags(*flag.FlagSet) {}

func (*usersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		users, err := a.directory.ListUsers(ctx)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Fprintln(stdout, "No users yet. Register one with: moneyapp register -name <name>")
			return nil
		}
		for _, u := range users {
			fmt.Fprintf(stdout, "%s %s\n", u.Icon, u.Name)
		}
		return nil
	})
}

type registerCmd struct {
	name string
	pin  string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "register a new user with a 6-digit PIN" }
func (*registerCmd) Usage() string {
	return `moneyapp register -name <name> [-pin <pin>]

  Creates an empty account. The PIN is asked without echo when -pin is omitted.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the new user")
	f.StringVar(&c.pin, "pin", "", "6-digit PIN")
}

func (c *registerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		pin, err := pinOrPrompt(c.pin)
		if err != nil {
			return err
		}
		rec, err := a.directory.Register(ctx, c.name, pin)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "User %s registered. Log in with: moneyapp login -name %q\n", rec.Name, rec.Name)
		return nil
	})
}

type loginCmd struct {
	name string
	pin  string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in as a registered user" }
func (*loginCmd) Usage() string {
	return `moneyapp login -name <name> [-pin <pin>]

  Checks the PIN and remembers the user for the following commands.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the user")
	f.StringVar(&c.pin, "pin", "", "6-digit PIN")
}

func (c *loginCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		pin, err := pinOrPrompt(c.pin)
		if err != nil {
			return err
		}
		s, err := a.directory.Authenticate(ctx, c.name, pin)
		if err != nil {
			return err
		}
		d, err := a.pages.Dashboard(ctx, s)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Welcome, %s!\n", s.Name)
		printDashboard(d)
		return nil
	})
}

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "forget the logged-in user" }
func (*logoutCmd) Usage() string {
	return `moneyapp logout
`
}
func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (*logoutCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if err := a.directory.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Logged out.")
		return nil
	})
}

type deleteCmd struct {
	name string
	yes  bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a user and all their data" }
func (*deleteCmd) Usage() string {
	return `moneyapp delete -name <name> [-yes]

  Removes the account after confirmation. Deleting the logged-in user logs out.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the user to delete")
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation")
}

func (c *deleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if err := a.directory.DeleteUser(ctx, c.name, confirmer(c.yes)); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "User %s deleted.\n", c.name)
		return nil
	})
}

