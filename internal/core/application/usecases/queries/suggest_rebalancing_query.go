package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrSuggestRebalancingQueryIsNotConstructed = errors.New(
		"SuggestRebalancingQuery must be created via NewSuggestRebalancingQuery constructor",
	)
)

// SuggestRebalancingQuery inspects the workload spread across the warehouse
// roster and reports whether manual reassignment is worthwhile. The report is
// advisory: nothing is moved until a supervisor issues a reassignment.
type SuggestRebalancingQuery struct {
	guard guard.ConstructorGuard
}

// NewSuggestRebalancingQuery creates a query for the rebalancing report.
func NewSuggestRebalancingQuery() SuggestRebalancingQuery {
	return SuggestRebalancingQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrSuggestRebalancingQueryIsNotConstructed if validation fails.
func (q SuggestRebalancingQuery) Validate() error {
	return q.guard.Validate(ErrSuggestRebalancingQueryIsNotConstructed)
}

// SuggestRebalancingQueryResponse is the advisory rebalancing report plus the
// per-operator loads it was derived from.
type SuggestRebalancingQueryResponse struct {
	NeedsRebalancing bool
	MaxLoad          float64
	MinLoad          float64
	Difference       float64
	BusiestOperator  string
	IdlestOperator   string
	Suggestion       string

	Loads []GetWarehouseLoadQueryResponse
}
