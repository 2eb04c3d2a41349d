package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyapp/internal/core"
	"moneyapp/internal/storage"
	"moneyapp/internal/storage/memory"
)

var fixedNow = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

func money(t *testing.T, s string) core.Money {
	t.Helper()
	m, err := core.ParseMoney(s)
	require.NoError(t, err)
	return m
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("tx-%d", n)
	}
}

func newLedger(t *testing.T) (*Ledger, *memory.Store) {
	t.Helper()
	store := memory.New()
	l := New(store,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()))
	return l, store
}

func seed(t *testing.T, store storage.Store, rec *core.Record) {
	t.Helper()
	raw, err := core.EncodeRecord(rec)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), storage.UserKey(rec.Name), raw))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)

	_, err := l.Load(ctx, "Nobody")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, store.Set(ctx, storage.UserKey("Broken"), "not json"))
	_, err = l.Load(ctx, "Broken")
	assert.ErrorIs(t, err, core.ErrCorruptRecord)

	seed(t, store, &core.Record{Name: "Alex", Pin: "123456", Balance: core.Euros(4)})
	rec, err := l.Load(ctx, "Alex")
	require.NoError(t, err)
	assert.True(t, rec.Balance.Equal(core.Euros(4)))
	assert.NotNil(t, rec.Transactions)

	require.NoError(t, store.Set(ctx, storage.UserKey("Legacy"), `{"balance":2}`))
	rec, err = l.Load(ctx, "Legacy")
	require.NoError(t, err)
	assert.Equal(t, "Legacy", rec.Name)
	require.NoError(t, l.ApplyTransaction(rec, core.Add, core.Euros(1)))
	require.NoError(t, l.Persist(ctx, rec))
	_, ok, err := store.Get(ctx, storage.UserKey(""))
	require.NoError(t, err)
	assert.False(t, ok, "persist writes back under the loaded key")
}

func TestTransactionsScenario(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)
	seed(t, store, &core.Record{Name: "Alex", Pin: "123456"})

	rec, err := l.Load(ctx, "Alex")
	require.NoError(t, err)
	require.NoError(t, l.ApplyTransaction(rec, core.Add, money(t, "20")))
	require.NoError(t, l.ApplyTransaction(rec, core.Subtract, money(t, "5")))
	require.NoError(t, l.Persist(ctx, rec))

	got, err := l.Load(ctx, "Alex")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money(t, "15")), "balance %s", got.Balance)
	require.Len(t, got.Transactions, 2)
	assert.Equal(t, core.Subtract, got.Transactions[0].Type)
	assert.Equal(t, core.TxID("tx-2"), got.Transactions[0].ID)
	assert.True(t, got.Transactions[0].Amount.Equal(money(t, "5")))
	assert.Equal(t, core.Add, got.Transactions[1].Type)
	assert.True(t, got.Transactions[0].Date.Equal(fixedNow))
	assert.Equal(t, "123456", got.Pin, "persist keeps the credential")
}

func TestApplyTransactionRejects(t *testing.T) {
	l, _ := newLedger(t)

	tests := []struct {
		name    string
		typ     core.TxType
		amount  core.Money
		wantErr error
	}{
		{"zero amount", core.Add, core.Zero, core.ErrInvalidAmount},
		{"negative amount", core.Add, core.Euros(-3), core.ErrInvalidAmount},
		{"unknown type", core.TxType("transfer"), core.Euros(1), core.ErrValidation},
		{"overdraw", core.Subtract, core.Euros(11), core.ErrInsufficientBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &core.Record{Name: "Alex", Balance: core.Euros(10), Transactions: []core.Transaction{}}
			err := l.ApplyTransaction(rec, tt.typ, tt.amount)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, rec.Balance.Equal(core.Euros(10)))
			assert.Empty(t, rec.Transactions)
		})
	}
}

func TestSubtractWholeBalance(t *testing.T) {
	l, _ := newLedger(t)
	rec := &core.Record{Name: "Alex", Balance: money(t, "7.25")}
	require.NoError(t, l.ApplyTransaction(rec, core.Subtract, money(t, "7.25")))
	assert.True(t, rec.Balance.IsZero())
}

func TestBalanceMatchesTransactionSum(t *testing.T) {
	l, _ := newLedger(t)
	rec := &core.Record{Name: "Alex"}

	steps := []struct {
		typ    core.TxType
		amount string
	}{
		{core.Add, "10.10"},
		{core.Add, "0.20"},
		{core.Subtract, "3.30"},
		{core.Subtract, "100"},
		{core.Add, "0.01"},
		{core.Subtract, "7.01"},
	}
	for _, s := range steps {
		_ = l.ApplyTransaction(rec, s.typ, money(t, s.amount))
	}

	sum := core.Zero
	for _, tx := range rec.Transactions {
		if tx.Type == core.Add {
			sum = sum.Add(tx.Amount)
		} else {
			sum = sum.Sub(tx.Amount)
		}
	}
	assert.True(t, rec.Balance.Equal(sum), "balance %s, sum %s", rec.Balance, sum)
	assert.True(t, rec.Balance.IsZero())
	assert.Len(t, rec.Transactions, 5)
}

func TestSavingsScenario(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)
	seed(t, store, &core.Record{Name: "Alex", Balance: core.Euros(50)})

	rec, err := l.Load(ctx, "Alex")
	require.NoError(t, err)
	require.NoError(t, l.AddToSavings(rec, money(t, "10")))
	require.NoError(t, l.AddToSavings(rec, money(t, "10")))
	l.SetSavingsGoal(rec, money(t, "15"))
	require.NoError(t, l.Persist(ctx, rec))

	got, err := l.Load(ctx, "Alex")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(core.Euros(50)), "savings never touch the balance")
	assert.Empty(t, got.Transactions)

	p := core.SavingsProgressOf(got)
	assert.True(t, p.Savings.Equal(core.Euros(20)))
	assert.True(t, p.Saved.Equal(core.Euros(15)))
	assert.True(t, p.Remaining.IsZero())
	assert.InDelta(t, 100, p.Percent, 0.001)

	assert.ErrorIs(t, l.AddToSavings(rec, core.Zero), core.ErrInvalidAmount)
}

func TestSetSavingsGoalAllowsNegative(t *testing.T) {
	l, _ := newLedger(t)
	rec := &core.Record{Name: "Alex", Savings: core.Euros(5)}
	l.SetSavingsGoal(rec, core.Euros(-10))
	assert.True(t, rec.SavingsGoal.Equal(core.Euros(-10)))

	p := core.SavingsProgressOf(rec)
	assert.True(t, p.Goal.IsZero())
	assert.True(t, p.Saved.IsZero())
}

func TestBudgetScenario(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)
	seed(t, store, &core.Record{Name: "Alex", Balance: core.Euros(40)})

	rec, err := l.Load(ctx, "Alex")
	require.NoError(t, err)
	require.NoError(t, l.SetBudget(rec, money(t, "100")))
	require.NoError(t, l.RecordExpense(rec, money(t, "30"), "Food"))
	require.NoError(t, l.RecordExpense(rec, money(t, "80"), ""))
	require.NoError(t, l.Persist(ctx, rec))

	got, err := l.Load(ctx, "Alex")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(core.Euros(40)), "expenses never touch the balance")
	require.Len(t, got.Transactions, 2)
	assert.Equal(t, "", got.Transactions[0].Category)
	assert.Equal(t, "Food", got.Transactions[1].Category)

	s := core.SpendingSummaryOf(got)
	assert.True(t, s.Spent.Equal(core.Euros(110)))
	assert.InDelta(t, 100, s.PercentUsed, 0.001)

	assert.ErrorIs(t, l.SetBudget(rec, core.Zero), core.ErrInvalidAmount)
	assert.ErrorIs(t, l.RecordExpense(rec, core.Euros(-1), "Food"), core.ErrInvalidAmount)
	assert.Len(t, rec.Transactions, 2)
}

func TestResetSpending(t *testing.T) {
	l, _ := newLedger(t)
	rec := &core.Record{Name: "Alex"}
	require.NoError(t, l.ApplyTransaction(rec, core.Add, core.Euros(10)))
	require.NoError(t, l.RecordExpense(rec, core.Euros(3), "Toys"))
	require.NoError(t, l.ApplyTransaction(rec, core.Add, core.Euros(2)))
	require.NoError(t, l.ApplyTransaction(rec, core.Subtract, core.Euros(1)))

	_, err := l.ResetSpending(rec, core.ConfirmFunc(func(string) bool { return false }))
	assert.ErrorIs(t, err, core.ErrNotConfirmed)
	_, err = l.ResetSpending(rec, nil)
	assert.ErrorIs(t, err, core.ErrNotConfirmed)
	assert.Len(t, rec.Transactions, 4)

	yes := core.ConfirmFunc(func(string) bool { return true })
	removed, err := l.ResetSpending(rec, yes)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	require.Len(t, rec.Transactions, 2)
	assert.Equal(t, core.TxID("tx-3"), rec.Transactions[0].ID)
	assert.Equal(t, core.TxID("tx-1"), rec.Transactions[1].ID)
	assert.True(t, core.Spent(rec).IsZero())
	assert.True(t, rec.Balance.Equal(core.Euros(11)), "reset keeps the balance")

	removed, err = l.ResetSpending(rec, yes)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Len(t, rec.Transactions, 2)
}

func TestAddToPocket(t *testing.T) {
	l, _ := newLedger(t)
	rec := &core.Record{Name: "Alex", Balance: core.Euros(99)}

	require.NoError(t, l.AddToPocket(rec, core.Cash, money(t, "5")))
	require.NoError(t, l.AddToPocket(rec, core.Bank, money(t, "2.5")))
	assert.True(t, rec.Balance.Equal(money(t, "7.5")), "balance becomes the pocket total")
	assert.Empty(t, rec.Transactions)

	assert.ErrorIs(t, l.AddToPocket(rec, core.Pocket("piggy"), core.Euros(1)), core.ErrValidation)
	assert.ErrorIs(t, l.AddToPocket(rec, core.Cash, core.Zero), core.ErrInvalidAmount)
}

func TestPersistIsLastWriterWins(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)
	seed(t, store, &core.Record{Name: "Alex", Balance: core.Euros(10)})

	a, err := l.Load(ctx, "Alex")
	require.NoError(t, err)
	b, err := l.Load(ctx, "Alex")
	require.NoError(t, err)

	require.NoError(t, l.ApplyTransaction(a, core.Add, core.Euros(5)))
	require.NoError(t, l.Persist(ctx, a))
	require.NoError(t, l.AddToSavings(b, core.Euros(1)))
	require.NoError(t, l.Persist(ctx, b))

	got, err := l.Load(ctx, "Alex")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(core.Euros(10)), "the stale copy overwrote the deposit")
	assert.Empty(t, got.Transactions)
	assert.True(t, got.Savings.Equal(core.Euros(1)))
}

type recordingNotifier struct{ events []core.Activity }

func (r *recordingNotifier) Notify(_ context.Context, a core.Activity) { r.events = append(r.events, a) }

func TestPersistNotifies(t *testing.T) {
	ctx := context.Background()
	n := &recordingNotifier{}
	l := New(memory.New(), WithNotifier(n), WithClock(func() time.Time { return fixedNow }))

	rec := &core.Record{Name: "Alex", Balance: core.Euros(3), Savings: core.Euros(1)}
	require.NoError(t, l.Persist(ctx, rec))

	require.Len(t, n.events, 1)
	ev := n.events[0]
	assert.Equal(t, core.ActivityPersisted, ev.Kind)
	assert.Equal(t, "Alex", ev.User)
	assert.True(t, ev.Balance.Equal(core.Euros(3)))
	assert.Equal(t, fixedNow, ev.At)
}

func TestDefaultIDsAreUnique(t *testing.T) {
	l := New(memory.New())
	rec := &core.Record{Name: "Alex"}
	for i := 0; i < 50; i++ {
		require.NoError(t, l.ApplyTransaction(rec, core.Add, core.Euros(1)))
	}
	seen := map[core.TxID]bool{}
	for _, tx := range rec.Transactions {
		assert.False(t, seen[tx.ID], "duplicate id %s", tx.ID)
		seen[tx.ID] = true
	}
}
