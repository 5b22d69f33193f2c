// Package ports defines the repository and collaborator interfaces of the
// fulfillment core. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/quote"
)

// QuoteRepository defines the persistence contract for quote aggregates.
type QuoteRepository interface {
	// Add persists a new quote aggregate to storage.
	Add(ctx context.Context, aggregate *quote.Quote) error

	// Update persists changes to an existing quote aggregate.
	Update(ctx context.Context, aggregate *quote.Quote) error

	// Get retrieves a quote aggregate by its unique identifier.
	// Returns ObjectNotFound when no such quote exists.
	Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error)

	// ExistsByNumber reports whether a quote already holds the given
	// sequence number. Used by the number generator's collision probe.
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}
