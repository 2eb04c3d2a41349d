package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"moneyapp/internal/accounts"
	"moneyapp/internal/core"
)

func printDashboard(d core.Dashboard) {
	fmt.Fprintf(stdout, "Balance: %s\n", d.Balance)
	fmt.Fprintf(stdout, "Savings: %s\n", d.Savings)
	fmt.Fprintf(stdout, "Spent:   %s\n", d.Spent)
}

func printMoney(rec *core.Record) {
	fmt.Fprintf(stdout, "Balance: %s\n", rec.Balance)
	if rec.Balances != nil {
		for _, p := range core.AllPockets() {
			fmt.Fprintf(stdout, "  %-12s %s\n", p.Label()+":", rec.Balances.Get(p))
		}
	}
	if len(rec.Transactions) == 0 {
		fmt.Fprintln(stdout, "No transactions yet.")
		return
	}
	fmt.Fprintln(stdout, "Transactions:")
	for _, t := range rec.Transactions {
		sign := "+"
		if t.Type == core.Subtract {
			sign = "-"
		}
		line := fmt.Sprintf("  %s %s%s", t.Date.Display(), sign, t.Amount)
		if t.Category != "" {
			line += " (" + t.Category + ")"
		}
		fmt.Fprintln(stdout, line)
	}
}

func printSavings(v core.SavingsProgress) {
	fmt.Fprintf(stdout, "Savings:   %s\n", v.Savings)
	fmt.Fprintf(stdout, "Goal:      %s\n", v.Goal)
	fmt.Fprintf(stdout, "Remaining: %s (%.0f%% saved)\n", v.Remaining, v.Percent)
}

func printSpending(v core.SpendingSummary) {
	fmt.Fprintf(stdout, "Budget: %s\n", v.Budget)
	fmt.Fprintf(stdout, "Spent:  %s (%.0f%% of budget)\n", v.Spent, v.PercentUsed)
	for _, c := range v.ByCategory {
		fmt.Fprintf(stdout, "  %-12s %s\n", c.Name+":", c.Amount)
	}
}

type dashboardCmd struct{}

func (*dashboardCmd) Name() string           { return "dashboard" }
func (*dashboardCmd) Synopsis() string       { return "show balance, savings and spending" }
func (*dashboardCmd) Usage() string          { return "moneyapp dashboard\n" }
func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (*dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(a *app, s accounts.Session) error {
		d, err := a.pages.Dashboard(ctx, s)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s\n", d.Name)
		printDashboard(d)
		return nil
	})
}

type moneyCmd struct{}

func (*moneyCmd) Name() string           { return "money" }
func (*moneyCmd) Synopsis() string       { return "show the balance and transaction history" }
func (*moneyCmd) Usage() string          { return "moneyapp money\n" }
func (*moneyCmd) SetFlags(*flag.FlagSet) {}

func (*moneyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(a *app, s accounts.Session) error {
		rec, err := a.pages.Money(ctx, s)
		if err != nil {
			return err
		}
		printMoney(rec)
		return nil
	})
}

// transactCmd backs both "add" and "subtract".
type transactCmd struct {
	typ    core.TxType
	amount string
}

func (c *transactCmd) Name() string { return string(c.typ) }
func (c *transactCmd) Synopsis() string {
	if c.typ == core.Subtract {
		return "take money from the balance"
	}
	return "put money into the balance"
}
func (c *transactCmd) Usage() string {
	return fmt.Sprintf("moneyapp %s -a <amount>\n", c.typ)
}

func (c *transactCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount, e.g. 5 or 2.50")
}

func (c *transactCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(a *app, s accounts.Session) error {
		rec, err := a.pages.Transact(ctx, s, c.typ, c.amount)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "New balance: %s\n", rec.Balance)
		return nil
	})
}

type pocketCmd struct {
	pocket string
	amount string
}

func (*pocketCmd) Name() string     { return "pocket" }
func (*pocketCmd) Synopsis() string { return "add money to cash, bank or post office" }
func (*pocketCmd) Usage() string {
	return `moneyapp pocket -p <cash|bank|postoffice> -a <amount>

  The balance becomes the total of the three pockets. No transaction is recorded.
`
}

func (c *pocketCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pocket, "p", string(core.Cash), "Pocket: cash, bank or postoffice")
	f.StringVar(&c.amount, "a", "", "Amount to add")
}

func (c *pocketCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(a *app, s accounts.Session) error {
		rec, err := a.pages.AddToPocket(ctx, s, core.Pocket(c.pocket), c.amount)
		if err != nil {
			return err
		}
		printMoney(rec)
		return nil
	})
}

type savingsCmd struct{}

func (*savingsCmd) Name() string           { return "savings" }
func (*savingsCmd) Synopsis() string       { return "show savings progress towards the goal" }
func (*savingsCmd) Usage() string          { return "moneyapp savings\n" }
func (*savingsCmd) SetFlags(*flag.FlagSet) {}

func (*savingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(a *app, s accounts.Session) error {
		v, err := a.pages.Savings(ctx, s)
		if err != nil {
			return err
		}
		printSavings(v)
		return nil
	})
}

type saveCmd struct{ amount string }

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "put money into savings" }
func (*saveCmd) Usage() string    { return "moneyapp save -a <amount>\n" }

func (c *saveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount to save")
}

func (c *saveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(a *app, s accounts.Session) error {
		v, err := a.pages.Save(ctx, s, c.amount)
		if err != nil {
			return err
		}
		printSavings(v)
		return nil
	})
}

type goalCmd struct{ amount string }

func (*goalCmd) Name() string     { return "goal" }
func (*goalCmd) Synopsis() string { return "set the savings goal" }
func (*goalCmd) Usage() string    { return "moneyapp goal -a <amount>\n" }

func (c *goalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Savings goal")
}

func (c *goalCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(a *app, s accounts.Session) error {
		v, err := a.pages.SetGoal(ctx, s, c.amount)
		if err != nil {
			return err
		}
		printSavings(v)
		return nil
	})
}

type spendingCmd struct{}

func (*spendingCmd) Name() string           { return "spending" }
func (*spendingCmd) Synopsis() string       { return "show spending against the budget" }
func (*spendingCmd) Usage() string          { return "moneyapp spending\n" }
func (*spendingCmd) SetFlags(*flag.FlagSet) {}

func (*spendingCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(a *app, s accounts.Session) error {
		v, err := a.pages.Spending(ctx, s)
		if err != nil {
			return err
		}
		printSpending(v)
		return nil
	})
}

type budgetCmd struct{ amount string }

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "set the monthly budget" }
func (*budgetCmd) Usage() string    { return "moneyapp budget -a <amount>\n" }

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Monthly budget")
}

func (c *budgetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(a *app, s accounts.Session) error {
		v, err := a.pages.SetBudget(ctx, s, c.amount)
		if err != nil {
			return err
		}
		printSpending(v)
		return nil
	})
}

type spendCmd struct {
	amount   string
	category string
}

func (*spendCmd) Name() string     { return "spend" }
func (*spendCmd) Synopsis() string { return "record an expense against the budget" }
func (*spendCmd) Usage() string {
	return `moneyapp spend -a <amount> [-c <category>]

  Expenses count against the budget only; the balance is not changed.
`
}

func (c *spendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount spent")
	f.StringVar(&c.category, "c", "", "Category, e.g. Food or Toys")
}

func (c *spendCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(a *app, s accounts.Session) error {
		v, err := a.pages.Spend(ctx, s, c.amount, c.category)
		if err != nil {
			return err
		}
		printSpending(v)
		return nil
	})
}

type resetSpendingCmd struct{ yes bool }

func (*resetSpendingCmd) Name() string     { return "reset-spending" }
func (*resetSpendingCmd) Synopsis() string { return "clear all recorded spending" }
func (*resetSpendingCmd) Usage() string    { return "moneyapp reset-spending [-yes]\n" }

func (c *resetSpendingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation")
}

func (c *resetSpendingCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(a *app, s accounts.Session) error {
		v, removed, err := a.pages.ResetSpending(ctx, s, confirmer(c.yes))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Removed %d expenses.\n", removed)
		printSpending(v)
		return nil
	})
}
