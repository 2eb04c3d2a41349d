package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	Add      TxType = "add"
	Subtract TxType = "subtract"
)

const (
	Cash       Pocket = "cash"
	Bank       Pocket = "bank"
	PostOffice Pocket = "postoffice"
)

type (
	TxType string

	// TxID identifies a transaction. Older records used millisecond timestamps as
	// numeric ids; those decode to their decimal text.
	TxID string

	// Pocket is a place where money is kept on the balance page.
	Pocket string

	Transaction struct {
		ID       TxID      `json:"id"`
		Type     TxType    `json:"type"`
		Amount   Money     `json:"amount"`
		Category string    `json:"category,omitempty"`
		Date     Timestamp `json:"date"`
	}

	Pockets struct {
		Cash       Money `json:"cash"`
		Bank       Money `json:"bank"`
		PostOffice Money `json:"postoffice"`
	}

	// Record is everything stored for one user under its user key.
	Record struct {
		Name         string        `json:"name"`
		Pin          string        `json:"pin,omitempty"`
		Balance      Money         `json:"balance"`
		Balances     *Pockets      `json:"balances,omitempty"`
		Savings      Money         `json:"savings"`
		SavingsGoal  Money         `json:"savingsGoal"`
		Budget       Money         `json:"budget"`
		Transactions []Transaction `json:"transactions"`
	}
)

var pinPattern = regexp.MustCompile(`^\d{6}$`)

// ValidatePin reports ErrValidation unless pin is exactly six ASCII digits.
func ValidatePin(pin string) error {
	if !pinPattern.MatchString(pin) {
		return fmt.Errorf("%w: pin must have exactly 6 digits", ErrValidation)
	}
	return nil
}

// NormalizeName trims the name the way registration stores it.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	return name, nil
}

func (t TxType) Valid() bool {
	return t == Add || t == Subtract
}

// AllPockets returns every pocket in display order.
func AllPockets() []Pocket {
	return []Pocket{Cash, Bank, PostOffice}
}

func (p Pocket) Valid() bool {
	switch p {
	case Cash, Bank, PostOffice:
		return true
	}
	return false
}

// Label is the display name of the pocket.
func (p Pocket) Label() string {
	switch p {
	case Cash:
		return "Cash"
	case Bank:
		return "Bank"
	case PostOffice:
		return "Post Office"
	}
	return string(p)
}

// Get returns the amount held in pocket p.
func (p Pockets) Get(pocket Pocket) Money {
	switch pocket {
	case Cash:
		return p.Cash
	case Bank:
		return p.Bank
	case PostOffice:
		return p.PostOffice
	}
	return Zero
}

func (p *Pockets) add(pocket Pocket, m Money) {
	switch pocket {
	case Cash:
		p.Cash = p.Cash.Add(m)
	case Bank:
		p.Bank = p.Bank.Add(m)
	case PostOffice:
		p.PostOffice = p.PostOffice.Add(m)
	}
}

// Total is the sum of all pockets.
func (p Pockets) Total() Money {
	return p.Cash.Add(p.Bank).Add(p.PostOffice)
}

// Deposit adds m to pocket and overwrites Balance with the pockets' total.
// No transaction is recorded.
func (r *Record) Deposit(pocket Pocket, m Money) error {
	if !pocket.Valid() {
		return fmt.Errorf("%w: unknown pocket %q", ErrValidation, pocket)
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if r.Balances == nil {
		r.Balances = &Pockets{}
	}
	r.Balances.add(pocket, m)
	r.Balance = r.Balances.Total()
	return nil
}

// Normalize fills defaults for fields absent in older stored records.
func (r *Record) Normalize() {
	if r.Transactions == nil {
		r.Transactions = []Transaction{}
	}
}

func (id TxID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id *TxID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = TxID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("transaction id: %w", err)
	}
	*id = TxID(n.String())
	return nil
}

// Confirmer asks the person using the app to approve a destructive operation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Activity describes a change worth telling other parts of the family about.
type Activity struct {
	Kind    string
	User    string
	Balance Money
	Savings Money
	At      time.Time
}

// Notifier receives activities after they are persisted. Implementations must
// not fail the operation that produced the activity.
type Notifier interface {
	Notify(ctx context.Context, a Activity)
}

const (
	ActivityRegistered = "registered"
	ActivityDeleted    = "deleted"
	ActivityPersisted  = "persisted"
)
