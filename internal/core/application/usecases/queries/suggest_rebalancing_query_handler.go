package queries

import (
	"context"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/services"
)

// SuggestRebalancingQueryHandler builds the advisory rebalancing report. It
// reuses the workload read model and hands the numbers to the domain
// dispatcher, which owns the imbalance threshold.
type SuggestRebalancingQueryHandler struct {
	loads      GetWarehouseLoadQueryHandler
	dispatcher services.WorkloadDispatcher
}

// NewSuggestRebalancingQueryHandler creates a handler for rebalancing reports.
// Requires a GORM database connection for query execution.
func NewSuggestRebalancingQueryHandler(db *gorm.DB) SuggestRebalancingQueryHandler {
	return SuggestRebalancingQueryHandler{
		loads:      NewGetWarehouseLoadQueryHandler(db),
		dispatcher: services.NewWorkloadDispatcher(),
	}
}

// Handle executes the query and returns the rebalancing report. With fewer
// than two operators the report is empty: there is nobody to move work to.
func (h SuggestRebalancingQueryHandler) Handle(
	ctx context.Context,
	query SuggestRebalancingQuery,
) (SuggestRebalancingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SuggestRebalancingQueryResponse{}, err
	}

	rows, err := h.loads.Handle(ctx, NewGetWarehouseLoadQuery())
	if err != nil {
		return SuggestRebalancingQueryResponse{}, err
	}

	loads := make([]services.OperatorLoad, 0, len(rows))
	for _, row := range rows {
		loads = append(loads, services.OperatorLoad{
			OperatorID:           row.OperatorID,
			OperatorName:         row.OperatorName,
			ActiveOrders:         row.ActiveOrders,
			TotalItems:           row.TotalItems,
			EstimatedMinutes:     row.EstimatedMinutes,
			AverageItemsPerOrder: row.AverageItemsPerOrder,
			LoadScore:            row.LoadScore,
		})
	}

	report := h.dispatcher.SuggestRebalancing(loads)
	return SuggestRebalancingQueryResponse{
		NeedsRebalancing: report.NeedsRebalancing,
		MaxLoad:          report.MaxLoad,
		MinLoad:          report.MinLoad,
		Difference:       report.Difference,
		BusiestOperator:  report.BusiestOperator,
		IdlestOperator:   report.IdlestOperator,
		Suggestion:       report.Suggestion,
		Loads:            rows,
	}, nil
}
