package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetPreparationQueryIsNotConstructed = errors.New(
		"GetPreparationQuery must be created via NewGetPreparationQuery constructor",
	)
)

// GetPreparationQuery retrieves the preparation tracker of one order: who is
// picking it, how far along they are, and the dispatch details once it ships.
type GetPreparationQuery struct {
	guard guard.ConstructorGuard

	orderID kernel.UUID
}

// NewGetPreparationQuery creates a query for the given order's tracker.
func NewGetPreparationQuery(orderID kernel.UUID) (GetPreparationQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPreparationQuery{}, err
	}
	return GetPreparationQuery{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPreparationQueryIsNotConstructed if validation fails.
func (q GetPreparationQuery) Validate() error {
	return q.guard.Validate(ErrGetPreparationQueryIsNotConstructed)
}

// OrderID returns the order whose tracker is requested.
func (q GetPreparationQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetPreparationQueryItem is one tracker line in the read model.
type GetPreparationQueryItem struct {
	ProductID        string `json:"productId"`
	ProductName      string `json:"productName"`
	QuantityOrdered  int    `json:"quantityOrdered"`
	QuantityPrepared int    `json:"quantityPrepared"`
	IsPrepared       bool   `json:"isPrepared"`
	Notes            string `json:"notes,omitempty"`
}

// GetPreparationQueryResponse is the tracker read model.
type GetPreparationQueryResponse struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	OrderNumber      string
	Status           string
	OperatorID       *kernel.UUID
	OperatorName     string
	Items            []GetPreparationQueryItem
	TotalItems       int
	PreparedItems    int
	Progress         int
	EstimatedMinutes int
	Notes            string
	StartedAt        *time.Time
	CompletedAt      *time.Time
	Carrier          string
	TrackingNumber   string
	DispatchedAt     *time.Time
}
