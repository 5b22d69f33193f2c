package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/preparation"
)

// PreparationRepository defines the persistence contract for warehouse
// preparation trackers. Preparations are keyed one-to-one by order.
type PreparationRepository interface {
	// Add persists a new preparation tracker to storage.
	Add(ctx context.Context, aggregate *preparation.Preparation) error

	// Update persists changes to an existing preparation tracker.
	Update(ctx context.Context, aggregate *preparation.Preparation) error

	// GetByOrderID retrieves the tracker of the given order.
	// Returns ObjectNotFound when the order has no preparation.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*preparation.Preparation, error)

	// GetActiveByOperator retrieves the preparations currently occupying an
	// operator: statuses pendiente, asignado, and en_preparacion.
	GetActiveByOperator(ctx context.Context, operatorID kernel.UUID) ([]*preparation.Preparation, error)

	// GetUnassigned retrieves trackers stuck in pendiente without an
	// operator, for the assignment retry sweep.
	GetUnassigned(ctx context.Context) ([]*preparation.Preparation, error)
}
