package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/preparation"
	"fulfillment/internal/core/domain/services"
)

// GetWarehouseLoadQueryHandler aggregates operator workload straight from the
// database. Uses direct SQL for optimal read performance in the CQRS pattern;
// the score formula is shared with the domain dispatcher so the dashboard and
// the assignment decision never disagree.
type GetWarehouseLoadQueryHandler struct {
	db         *gorm.DB
	dispatcher services.WorkloadDispatcher
}

// NewGetWarehouseLoadQueryHandler creates a handler for workload queries.
// Requires a GORM database connection for query execution.
func NewGetWarehouseLoadQueryHandler(db *gorm.DB) GetWarehouseLoadQueryHandler {
	return GetWarehouseLoadQueryHandler{
		db:         db,
		dispatcher: services.NewWorkloadDispatcher(),
	}
}

// Handle executes the query to retrieve the workload of every active
// warehouse operator. Idle operators appear with zeroed counters so the
// caller sees the full roster. Results are sorted by operator name.
func (h GetWarehouseLoadQueryHandler) Handle(
	ctx context.Context,
	query GetWarehouseLoadQuery,
) ([]GetWarehouseLoadQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	loads := make([]GetWarehouseLoadQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.display_name,
			COUNT(p.id),
			COALESCE(SUM(p.total_items), 0),
			COALESCE(SUM(p.estimated_minutes), 0)
		FROM accounts a
		LEFT JOIN preparations p
			ON p.operator_id = a.id
			AND p.status IN (?, ?)
		WHERE a.role = ? AND a.active
		GROUP BY a.id, a.display_name
		ORDER BY a.display_name
	`, preparation.StatusAsignado, preparation.StatusEnPreparacion, account.RoleBodega).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var load GetWarehouseLoadQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&load.OperatorName,
			&load.ActiveOrders,
			&load.TotalItems,
			&load.EstimatedMinutes,
		)
		if err != nil {
			return nil, err
		}

		operatorID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		load.OperatorID = operatorID

		if load.ActiveOrders > 0 {
			load.AverageItemsPerOrder = float64(load.TotalItems) / float64(load.ActiveOrders)
		}
		load.LoadScore = h.dispatcher.Score(load.ActiveOrders, load.TotalItems)
		loads = append(loads, load)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return loads, nil
}
