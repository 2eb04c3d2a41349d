// Package ledger loads a user's financial record, applies single mutations to
// an in-memory copy and persists the whole record back.
//
// Persist is a full replace: a caller holding a stale copy silently discards
// whatever another copy persisted in between (last writer wins, whole record).
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"moneyapp/internal/core"
	"moneyapp/internal/log"
	"moneyapp/internal/storage"
)

type Ledger struct {
	store    storage.Store
	notifier core.Notifier
	logger   *log.Logger
	now      func() time.Time
	newID    func() string
}

type Option func(*Ledger)

// WithNotifier publishes an activity after every Persist.
func WithNotifier(n core.Notifier) Option {
	return func(l *Ledger) { l.notifier = n }
}

func WithLogger(lg *log.Logger) Option {
	return func(l *Ledger) { l.logger = lg.WithComponent(log.ComponentLedger) }
}

// WithClock replaces the time source used for transaction dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator replaces the transaction id source.
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		logger: log.Discard(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the record of name.
func (l *Ledger) Load(ctx context.Context, name string) (*core.Record, error) {
	raw, ok, err := l.store.Get(ctx, storage.UserKey(name))
	if err != nil {
		return nil, fmt.Errorf("load record %q: %w", name, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, name)
	}
	rec, err := core.DecodeRecord(raw)
	if err != nil {
		return nil, err
	}
	// the key is authoritative; older records may lack the name field
	rec.Name = name
	return rec, nil
}

// Persist overwrites the stored record with rec.
func (l *Ledger) Persist(ctx context.Context, rec *core.Record) error {
	raw, err := core.EncodeRecord(rec)
	if err != nil {
		return err
	}
	if err := l.store.Set(ctx, storage.UserKey(rec.Name), raw); err != nil {
		return fmt.Errorf("persist record %q: %w", rec.Name, err)
	}

	l.logger.DebugContext(ctx, "Record persisted",
		log.NewFields().
			WithOperation(log.OpPersist).
			WithUser(rec.Name).
			With(log.FieldBalance, rec.Balance.StringFixed()).
			With(log.FieldCount, len(rec.Transactions)).
			ToSlice()...)

	if l.notifier != nil {
		l.notifier.Notify(ctx, core.Activity{
			Kind:    core.ActivityPersisted,
			User:    rec.Name,
			Balance: rec.Balance,
			Savings: rec.Savings,
			At:      l.now(),
		})
	}
	return nil
}

// ApplyTransaction moves the balance by amount and records the transaction as
// the newest entry. A subtract larger than the balance is refused. On error
// rec is left untouched. Nothing is persisted.
func (l *Ledger) ApplyTransaction(rec *core.Record, typ core.TxType, amount core.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	switch typ {
	case core.Add:
		rec.Balance = rec.Balance.Add(amount)
	case core.Subtract:
		if amount.GreaterThan(rec.Balance) {
			return fmt.Errorf("%w: balance %s, requested %s", core.ErrInsufficientBalance, rec.Balance, amount)
		}
		rec.Balance = rec.Balance.Sub(amount)
	default:
		return fmt.Errorf("%w: unknown transaction type %q", core.ErrValidation, typ)
	}
	l.prepend(rec, typ, amount, "")

	l.logger.Info("Transaction applied",
		log.NewFields().
			WithOperation(log.OpTransaction).
			WithUser(rec.Name).
			WithTransaction(string(typ), amount.StringFixed(), "").
			ToSlice()...)
	return nil
}

// AddToSavings increases savings only; balance and history are unaffected.
func (l *Ledger) AddToSavings(rec *core.Record, amount core.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	rec.Savings = rec.Savings.Add(amount)
	l.logger.Info("Savings added",
		log.NewFields().WithOperation(log.OpSavings).WithUser(rec.Name).With(log.FieldAmount, amount.StringFixed()).ToSlice()...)
	return nil
}

// SetSavingsGoal replaces the goal. Negative goals are stored as given.
func (l *Ledger) SetSavingsGoal(rec *core.Record, goal core.Money) {
	rec.SavingsGoal = goal
	l.logger.Info("Savings goal set",
		log.NewFields().WithOperation(log.OpGoal).WithUser(rec.Name).With(log.FieldAmount, goal.StringFixed()).ToSlice()...)
}

// SetBudget replaces the monthly budget.
func (l *Ledger) SetBudget(rec *core.Record, amount core.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	rec.Budget = amount
	l.logger.Info("Budget set",
		log.NewFields().WithOperation(log.OpBudget).WithUser(rec.Name).With(log.FieldAmount, amount.StringFixed()).ToSlice()...)
	return nil
}

// RecordExpense adds a categorized subtract transaction without touching the
// balance: budget tracking is kept apart from the money ledger.
func (l *Ledger) RecordExpense(rec *core.Record, amount core.Money, category string) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	l.prepend(rec, core.Subtract, amount, category)
	l.logger.Info("Expense recorded",
		log.NewFields().
			WithOperation(log.OpExpense).
			WithUser(rec.Name).
			WithTransaction(string(core.Subtract), amount.StringFixed(), category).
			ToSlice()...)
	return nil
}

// ResetSpending drops every subtract transaction once c confirms and returns
// how many were removed. Add transactions are kept in order.
func (l *Ledger) ResetSpending(rec *core.Record, c core.Confirmer) (int, error) {
	if c == nil || !c.Confirm("Are you sure you want to reset money spent everywhere?") {
		return 0, core.ErrNotConfirmed
	}
	kept := make([]core.Transaction, 0, len(rec.Transactions))
	for _, t := range rec.Transactions {
		if t.Type != core.Subtract {
			kept = append(kept, t)
		}
	}
	removed := len(rec.Transactions) - len(kept)
	rec.Transactions = kept
	l.logger.Info("Spending reset",
		log.NewFields().WithOperation(log.OpReset).WithUser(rec.Name).With(log.FieldCount, removed).ToSlice()...)
	return removed, nil
}

// AddToPocket deposits into one pocket of the balance page. The balance is
// overwritten with the pockets' total and no transaction is recorded.
func (l *Ledger) AddToPocket(rec *core.Record, pocket core.Pocket, amount core.Money) error {
	if err := rec.Deposit(pocket, amount); err != nil {
		return err
	}
	l.logger.Info("Pocket deposit",
		log.NewFields().
			WithOperation(log.OpPocket).
			WithUser(rec.Name).
			With(log.FieldPocket, string(pocket)).
			With(log.FieldAmount, amount.StringFixed()).
			ToSlice()...)
	return nil
}

func (l *Ledger) prepend(rec *core.Record, typ core.TxType, amount core.Money, category string) {
	tx := core.Transaction{
		ID:       core.TxID(l.newID()),
		Type:     typ,
		Amount:   amount,
		Category: category,
		Date:     core.NewTimestamp(l.now()),
	}
	rec.Transactions = append([]core.Transaction{tx}, rec.Transactions...)
}
