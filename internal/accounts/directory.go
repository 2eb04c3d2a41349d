// Package accounts lists, registers, authenticates and deletes users, and keeps
// the session markers that let a new process resume the last login.
package accounts

import (
	"context"
	"fmt"
	"time"

	"moneyapp/internal/core"
	"moneyapp/internal/log"
	"moneyapp/internal/storage"
)

// Icons decorate the user list; they rotate by position and are never stored.
var Icons = []string{"🟢", "🔵", "🟡", "🟠", "🟣", "🟥", "🟦", "🟨"}

const loggedInValue = "true"

// UserEntry is one registered user as shown on the login page.
type UserEntry struct {
	Name string
	Icon string
}

// Session identifies the authenticated user. It is passed explicitly to every
// page handler.
type Session struct {
	Name string
}

type Directory struct {
	store    storage.Store
	notifier core.Notifier
	logger   *log.Logger
	now      func() time.Time
}

type Option func(*Directory)

// WithNotifier publishes registrations and deletions.
func WithNotifier(n core.Notifier) Option {
	return func(d *Directory) { d.notifier = n }
}

func WithLogger(l *log.Logger) Option {
	return func(d *Directory) { d.logger = l.WithComponent(log.ComponentAccounts) }
}

func NewDirectory(store storage.Store, opts ...Option) *Directory {
	d := &Directory{
		store:  store,
		logger: log.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ListUsers returns every registered user in store enumeration order.
func (d *Directory) ListUsers(ctx context.Context) ([]UserEntry, error) {
	keys, err := d.store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var users []UserEntry
	for _, k := range keys {
		name, ok := storage.UserFromKey(k)
		if !ok {
			continue
		}
		users = append(users, UserEntry{Name: name, Icon: Icons[len(users)%len(Icons)]})
	}
	return users, nil
}

// Register creates an empty record for name. The name is trimmed first.
func (d *Directory) Register(ctx context.Context, name, pin string) (*core.Record, error) {
	name, err := core.NormalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := core.ValidatePin(pin); err != nil {
		return nil, err
	}

	key := storage.UserKey(name)
	_, exists, err := d.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check user %q: %w", name, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", core.ErrDuplicateName, name)
	}

	rec := &core.Record{Name: name, Pin: pin, Transactions: []core.Transaction{}}
	raw, err := core.EncodeRecord(rec)
	if err != nil {
		return nil, err
	}
	if err := d.store.Set(ctx, key, raw); err != nil {
		return nil, fmt.Errorf("save user %q: %w", name, err)
	}

	d.logger.InfoContext(ctx, "User registered",
		log.NewFields().WithOperation(log.OpRegister).WithUser(name).ToSlice()...)
	d.notify(ctx, core.ActivityRegistered, rec)
	return rec, nil
}

// Authenticate checks pin against the stored one and, on success, records the
// session markers.
func (d *Directory) Authenticate(ctx context.Context, name, pin string) (Session, error) {
	if err := core.ValidatePin(pin); err != nil {
		return Session{}, err
	}

	raw, ok, err := d.store.Get(ctx, storage.UserKey(name))
	if err != nil {
		return Session{}, fmt.Errorf("load user %q: %w", name, err)
	}
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", core.ErrNotFound, name)
	}
	rec, err := core.DecodeRecord(raw)
	if err != nil {
		return Session{}, err
	}
	if rec.Pin == "" {
		return Session{}, fmt.Errorf("%w: %s", core.ErrMissingCredential, name)
	}
	if rec.Pin != pin {
		return Session{}, core.ErrInvalidPin
	}

	if err := d.store.Set(ctx, storage.SessionUserKey, name); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	if err := d.store.Set(ctx, storage.LoggedInKey, loggedInValue); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}

	d.logger.InfoContext(ctx, "User logged in",
		log.NewFields().WithOperation(log.OpLogin).WithUser(name).ToSlice()...)
	return Session{Name: name}, nil
}

// CurrentSession restores the session written by the last Authenticate.
func (d *Directory) CurrentSession(ctx context.Context) (Session, error) {
	name, ok, err := d.store.Get(ctx, storage.SessionUserKey)
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if !ok || name == "" {
		return Session{}, core.ErrNotLoggedIn
	}
	flag, _, err := d.store.Get(ctx, storage.LoggedInKey)
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if flag != loggedInValue {
		return Session{}, core.ErrNotLoggedIn
	}
	return Session{Name: name}, nil
}

// DeleteUser removes the record of name once c confirms. Deleting the session
// user also logs out. Missing users are not an error.
func (d *Directory) DeleteUser(ctx context.Context, name string, c core.Confirmer) error {
	if c == nil || !c.Confirm(fmt.Sprintf("Are you sure you want to delete %s?", name)) {
		return core.ErrNotConfirmed
	}

	if err := d.store.Remove(ctx, storage.UserKey(name)); err != nil {
		return fmt.Errorf("delete user %q: %w", name, err)
	}

	current, _, err := d.store.Get(ctx, storage.SessionUserKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if current == name {
		if err := d.Logout(ctx); err != nil {
			return err
		}
	}

	d.logger.InfoContext(ctx, "User deleted",
		log.NewFields().WithOperation(log.OpDelete).WithUser(name).ToSlice()...)
	d.notify(ctx, core.ActivityDeleted, &core.Record{Name: name})
	return nil
}

// Logout clears the session markers. Records are left alone.
func (d *Directory) Logout(ctx context.Context) error {
	if err := d.store.Remove(ctx, storage.SessionUserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if err := d.store.Remove(ctx, storage.LoggedInKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	d.logger.DebugContext(ctx, "Session cleared", log.FieldOperation, log.OpLogout)
	return nil
}

func (d *Directory) notify(ctx context.Context, kind string, rec *core.Record) {
	if d.notifier == nil {
		return
	}
	d.notifier.Notify(ctx, core.Activity{
		Kind:    kind,
		User:    rec.Name,
		Balance: rec.Balance,
		Savings: rec.Savings,
		At:      d.now(),
	})
}
