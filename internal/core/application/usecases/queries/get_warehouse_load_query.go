// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetWarehouseLoadQueryIsNotConstructed = errors.New(
		"GetWarehouseLoadQuery must be created via NewGetWarehouseLoadQuery constructor",
	)
)

// GetWarehouseLoadQuery retrieves the current workload of every active
// warehouse operator, including idle ones. The supervisor dashboard uses it
// to see who the dispatcher would pick next and whether the roster is
// saturated.
//
// Example:
//
//	query := NewGetWarehouseLoadQuery()
//	handler := NewGetWarehouseLoadQueryHandler(db)
//
//	loads, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve warehouse load: %w", err)
//	}
//
//	for _, load := range loads {
//	    fmt.Printf("%s: %d orders, score %.1f\n",
//	        load.OperatorName, load.ActiveOrders, load.LoadScore)
//	}
type GetWarehouseLoadQuery struct {
	guard guard.ConstructorGuard
}

// NewGetWarehouseLoadQuery creates a query to retrieve the operator workload.
// This is a parameterless query that covers the whole active roster.
func NewGetWarehouseLoadQuery() GetWarehouseLoadQuery {
	return GetWarehouseLoadQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetWarehouseLoadQueryIsNotConstructed if validation fails.
func (q GetWarehouseLoadQuery) Validate() error {
	return q.guard.Validate(ErrGetWarehouseLoadQueryIsNotConstructed)
}

// GetWarehouseLoadQueryResponse is one operator's row in the workload read
// model. Counters cover preparations in pendiente, asignado, or
// en_preparacion; finished work does not occupy the operator.
type GetWarehouseLoadQueryResponse struct {
	OperatorID           kernel.UUID
	OperatorName         string
	ActiveOrders         int
	TotalItems           int
	EstimatedMinutes     int
	AverageItemsPerOrder float64
	LoadScore            float64
}
