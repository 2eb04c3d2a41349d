// Package pages holds the handlers behind each screen of the app. Every
// handler receives the session explicitly, loads the record, applies at most
// one mutation, persists and returns what the screen shows.
package pages

import (
	"context"

	"moneyapp/internal/accounts"
	"moneyapp/internal/core"
	"moneyapp/internal/ledger"
)

type Pages struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Pages {
	return &Pages{ledger: l}
}

// load fetches the session user's record.
func (p *Pages) load(ctx context.Context, s accounts.Session) (*core.Record, error) {
	if s.Name == "" {
		return nil, core.ErrNotLoggedIn
	}
	return p.ledger.Load(ctx, s.Name)
}

// update loads, runs fn and persists only if fn succeeds.
func (p *Pages) update(ctx context.Context, s accounts.Session, fn func(*core.Record) error) (*core.Record, error) {
	rec, err := p.load(ctx, s)
	if err != nil {
		return nil, err
	}
	if err := fn(rec); err != nil {
		return nil, err
	}
	if err := p.ledger.Persist(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (p *Pages) Dashboard(ctx context.Context, s accounts.Session) (core.Dashboard, error) {
	rec, err := p.load(ctx, s)
	if err != nil {
		return core.Dashboard{}, err
	}
	return core.DashboardOf(rec), nil
}

// Money returns the record behind the money page: balance and history.
func (p *Pages) Money(ctx context.Context, s accounts.Session) (*core.Record, error) {
	return p.load(ctx, s)
}

// Transact adds to or subtracts from the balance.
func (p *Pages) Transact(ctx context.Context, s accounts.Session, typ core.TxType, amount string) (*core.Record, error) {
	m, err := core.ParseMoney(amount)
	if err != nil {
		return nil, err
	}
	return p.update(ctx, s, func(rec *core.Record) error {
		return p.ledger.ApplyTransaction(rec, typ, m)
	})
}

// AddToPocket deposits into cash, bank or post office.
func (p *Pages) AddToPocket(ctx context.Context, s accounts.Session, pocket core.Pocket, amount string) (*core.Record, error) {
	m, err := core.ParseMoney(amount)
	if err != nil {
		return nil, err
	}
	return p.update(ctx, s, func(rec *core.Record) error {
		return p.ledger.AddToPocket(rec, pocket, m)
	})
}

func (p *Pages) Savings(ctx context.Context, s accounts.Session) (core.SavingsProgress, error) {
	rec, err := p.load(ctx, s)
	if err != nil {
		return core.SavingsProgress{}, err
	}
	return core.SavingsProgressOf(rec), nil
}

func (p *Pages) Save(ctx context.Context, s accounts.Session, amount string) (core.SavingsProgress, error) {
	m, err := core.ParseMoney(amount)
	if err != nil {
		return core.SavingsProgress{}, err
	}
	rec, err := p.update(ctx, s, func(rec *core.Record) error {
		return p.ledger.AddToSavings(rec, m)
	})
	if err != nil {
		return core.SavingsProgress{}, err
	}
	return core.SavingsProgressOf(rec), nil
}

func (p *Pages) SetGoal(ctx context.Context, s accounts.Session, goal string) (core.SavingsProgress, error) {
	m, err := core.ParseMoney(goal)
	if err != nil {
		return core.SavingsProgress{}, err
	}
	rec, err := p.update(ctx, s, func(rec *core.Record) error {
		p.ledger.SetSavingsGoal(rec, m)
		return nil
	})
	if err != nil {
		return core.SavingsProgress{}, err
	}
	return core.SavingsProgressOf(rec), nil
}

func (p *Pages) Spending(ctx context.Context, s accounts.Session) (core.SpendingSummary, error) {
	rec, err := p.load(ctx, s)
	if err != nil {
		return core.SpendingSummary{}, err
	}
	return core.SpendingSummaryOf(rec), nil
}

func (p *Pages) SetBudget(ctx context.Context, s accounts.Session, amount string) (core.SpendingSummary, error) {
	m, err := core.ParseMoney(amount)
	if err != nil {
		return core.SpendingSummary{}, err
	}
	rec, err := p.update(ctx, s, func(rec *core.Record) error {
		return p.ledger.SetBudget(rec, m)
	})
	if err != nil {
		return core.SpendingSummary{}, err
	}
	return core.SpendingSummaryOf(rec), nil
}

// Spend records a categorized expense against the budget.
func (p *Pages) Spend(ctx context.Context, s accounts.Session, amount, category string) (core.SpendingSummary, error) {
	m, err := core.ParseMoney(amount)
	if err != nil {
		return core.SpendingSummary{}, err
	}
	rec, err := p.update(ctx, s, func(rec *core.Record) error {
		return p.ledger.RecordExpense(rec, m, category)
	})
	if err != nil {
		return core.SpendingSummary{}, err
	}
	return core.SpendingSummaryOf(rec), nil
}

// ResetSpending clears recorded spending once c confirms and returns the new
// summary with the number of transactions removed.
func (p *Pages) ResetSpending(ctx context.Context, s accounts.Session, c core.Confirmer) (core.SpendingSummary, int, error) {
	var removed int
	rec, err := p.update(ctx, s, func(rec *core.Record) error {
		n, err := p.ledger.ResetSpending(rec, c)
		removed = n
		return err
	})
	if err != nil {
		return core.SpendingSummary{}, 0, err
	}
	return core.SpendingSummaryOf(rec), removed, nil
}
