package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

// IdentityProvider exposes the account directory maintained outside the
// fulfillment core. The core reads it for authorization context and for
// enumerating the warehouse-operator roster.
type IdentityProvider interface {
	// Get retrieves one account by its identifier.
	// Returns ObjectNotFound when no such account exists.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// GetActiveByRole retrieves every active account holding the given role,
	// in stable listing order.
	GetActiveByRole(ctx context.Context, role account.Role) ([]*account.Account, error)
}

// CustomerRecord is the directory entry used to resolve the sales
// representative responsible for a customer's quotes.
type CustomerRecord struct {
	ID              kernel.UUID
	Email           string
	AssignedRep     *kernel.UUID
	AssignedRepName string
}

// CustomerDirectory exposes the customer registry maintained outside the
// fulfillment core.
type CustomerDirectory interface {
	// Get retrieves one customer record by its identifier.
	// Returns ObjectNotFound when no such customer exists.
	Get(ctx context.Context, id kernel.UUID) (*CustomerRecord, error)

	// FindByEmail retrieves a customer record by contact email.
	// Returns ObjectNotFound when no customer uses the email.
	FindByEmail(ctx context.Context, email string) (*CustomerRecord, error)
}

// NotificationSink stores in-app notifications. Implementations must not be
// assumed reliable; emitters swallow and log sink failures.
type NotificationSink interface {
	Create(ctx context.Context, n notification.Notification) error
}
