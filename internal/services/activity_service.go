package services

import (
	"context"
	"log/slog"

	"moneyapp/internal/amqp"
	"moneyapp/internal/core"
)

// ActivityPublisher is the part of the AMQP client the service needs.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, msg *amqp.ActivityMessage) error
	Close() error
}

// ActivityService forwards record activity to the message bus. Publishing is
// best effort: the record is already saved locally, so failures are logged and
// swallowed.
type ActivityService struct {
	publisher ActivityPublisher
}

func NewActivityService(publisher ActivityPublisher) *ActivityService {
	return &ActivityService{publisher: publisher}
}

// Notify implements core.Notifier.
func (s *ActivityService) Notify(ctx context.Context, a core.Activity) {
	if s == nil || s.publisher == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping activity message", "kind", a.Kind)
		return
	}

	if err := s.publisher.PublishActivity(ctx, amqp.NewActivityMessage(a)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish activity message",
			"kind", a.Kind,
			"user", a.User,
			"error", err)
	}
}

// Enabled reports whether a publisher is configured.
func (s *ActivityService) Enabled() bool {
	return s != nil && s.publisher != nil
}

func (s *ActivityService) Close() error {
	if s == nil || s.publisher == nil {
		return nil
	}
	return s.publisher.Close()
}
