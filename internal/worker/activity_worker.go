package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"moneyapp/internal/amqp"
	"moneyapp/internal/core"
	"moneyapp/internal/log"
)

// Snapshot is the latest figures seen for one user.
type Snapshot struct {
	User    string
	Balance core.Money
	Savings core.Money
	Events  int
	LastAt  time.Time
}

// ActivityWorker consumes activity messages and keeps the latest snapshot of
// every user it has heard about.
type ActivityWorker struct {
	logger *log.Logger

	mu    sync.Mutex
	users map[string]*Snapshot
}

func NewActivityWorker(logger *log.Logger) *ActivityWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &ActivityWorker{
		logger: logger.WithComponent(log.ComponentWorker),
		users:  map[string]*Snapshot{},
	}
}

// HandleActivity processes a single activity message from AMQP
func (w *ActivityWorker) HandleActivity(ctx context.Context, msg *amqp.ActivityMessage) error {
	if msg.User == "" {
		return fmt.Errorf("%w: activity %q without user", amqp.ErrUnprocessable, msg.Kind)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch msg.Kind {
	case core.ActivityDeleted:
		delete(w.users, msg.User)
	case core.ActivityRegistered, core.ActivityPersisted:
		s, ok := w.users[msg.User]
		if !ok {
			s = &Snapshot{User: msg.User}
			w.users[msg.User] = s
		}
		if msg.Timestamp.Before(s.LastAt) {
			w.logger.DebugContext(ctx, "Skipping out of order activity",
				log.FieldUser, msg.User, log.FieldActivity, msg.Kind)
			return nil
		}
		s.Balance = msg.Balance
		s.Savings = msg.Savings
		s.LastAt = msg.Timestamp
		s.Events++
	default:
		w.logger.WarnContext(ctx, "Unknown activity kind", log.FieldActivity, msg.Kind, log.FieldUser, msg.User)
		return nil
	}

	w.logger.InfoContext(ctx, "Activity processed",
		log.NewFields().
			WithOperation(log.OpConsume).
			WithUser(msg.User).
			With(log.FieldActivity, msg.Kind).
			With(log.FieldBalance, msg.Balance.StringFixed()).
			ToSlice()...)
	return nil
}

// Snapshot returns a copy of the latest figures for user.
func (w *ActivityWorker) Snapshot(user string) (Snapshot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.users[user]
	if !ok {
		return Snapshot{}, false
	}
	return *s, true
}

// Users reports how many users are currently tracked.
func (w *ActivityWorker) Users() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.users)
}
