package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
)

// Notifier emits in-app notifications on lifecycle transitions. Delivery is
// best-effort: build and sink failures are logged and swallowed so a lost
// notification never fails the command that triggered it.
type Notifier struct {
	sink   ports.NotificationSink
	logger *slog.Logger
	now    func() time.Time
}

// NewNotifier creates a Notifier over the given sink.
func NewNotifier(sink ports.NotificationSink, logger *slog.Logger) Notifier {
	return Notifier{
		sink:   sink,
		logger: logger.With("component", "notifier"),
		now:    time.Now,
	}
}

// Notify emits one notification to one account.
func (n Notifier) Notify(ctx context.Context, userID kernel.UUID, typ notification.Type,
	title, message string, related notification.RelatedEntity, priority notification.Priority) {
	msg, err := notification.New(userID, typ, title, message, related, priority, n.now())
	if err != nil {
		n.logger.Warn("dropping malformed notification", "type", typ, "error", err)
		return
	}
	if err := n.sink.Create(ctx, msg); err != nil {
		n.logger.Warn("notification sink failed", "type", typ, "user_id", userID.String(), "error", err)
	}
}

// Broadcast emits the same notification to every listed account.
func (n Notifier) Broadcast(ctx context.Context, recipients []*account.Account, typ notification.Type,
	title, message string, related notification.RelatedEntity, priority notification.Priority) {
	for _, r := range recipients {
		n.Notify(ctx, r.ID(), typ, title, message, related, priority)
	}
}
