package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// GetPreparationQueryHandler retrieves one order's preparation tracker from
// the database. Uses direct SQL for optimal read performance in the CQRS
// pattern; the item lines are stored as JSON and decoded into the read model.
type GetPreparationQueryHandler struct {
	db *gorm.DB
}

// NewGetPreparationQueryHandler creates a handler for tracker queries.
// Requires a GORM database connection for query execution.
func NewGetPreparationQueryHandler(db *gorm.DB) GetPreparationQueryHandler {
	return GetPreparationQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFound when the order has no
// tracker yet, which is the normal state before warehouse work starts.
func (h GetPreparationQueryHandler) Handle(
	ctx context.Context,
	query GetPreparationQuery,
) (GetPreparationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPreparationQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			order_number,
			status,
			operator_id,
			operator_name,
			items,
			total_items,
			prepared_items,
			progress,
			estimated_minutes,
			notes,
			started_at,
			completed_at,
			carrier,
			tracking_number,
			dispatched_at
		FROM preparations
		WHERE order_id = ?
	`, query.OrderID().String()).Row()

	var resp GetPreparationQueryResponse
	var id, orderID uuid.UUID
	var operatorID uuid.NullUUID
	var items []byte
	var startedAt, completedAt, dispatchedAt sql.NullTime

	err := row.Scan(
		&id,
		&orderID,
		&resp.OrderNumber,
		&resp.Status,
		&operatorID,
		&resp.OperatorName,
		&items,
		&resp.TotalItems,
		&resp.PreparedItems,
		&resp.Progress,
		&resp.EstimatedMinutes,
		&resp.Notes,
		&startedAt,
		&completedAt,
		&resp.Carrier,
		&resp.TrackingNumber,
		&dispatchedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetPreparationQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return GetPreparationQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetPreparationQueryResponse{}, err
	}
	if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetPreparationQueryResponse{}, err
	}
	if operatorID.Valid {
		opID, idErr := kernel.UUIDFromBytes(operatorID.UUID[:])
		if idErr != nil {
			return GetPreparationQueryResponse{}, idErr
		}
		resp.OperatorID = &opID
	}

	if len(items) > 0 {
		if err = json.Unmarshal(items, &resp.Items); err != nil {
			return GetPreparationQueryResponse{}, err
		}
	}

	resp.StartedAt = timePtr(startedAt)
	resp.CompletedAt = timePtr(completedAt)
	resp.DispatchedAt = timePtr(dispatchedAt)
	return resp, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
