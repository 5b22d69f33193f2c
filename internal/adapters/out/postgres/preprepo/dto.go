// Package preprepo provides data transfer objects and mapping functions for
// preparation tracker persistence. This package implements the repository
// pattern for the preparation domain aggregate, handling the conversion
// between domain entities and database representations.
package preprepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/preparation"
)

// PreparationDTO represents the database structure for persisting preparation
// trackers. One tracker per order, enforced with a unique index on order_id.
// Counters are stored denormalized so the workload query can aggregate them
// without decoding the JSON item lines.
type PreparationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	OrderNumber string    `gorm:"size:16"`

	Status       string     `gorm:"index;size:32"`
	OperatorID   *uuid.UUID `gorm:"type:uuid;index"`
	OperatorName string
	AssignedAt   *time.Time
	AssignedBy   string `gorm:"size:16"`

	Items            []ItemDTO `gorm:"serializer:json;type:jsonb"`
	TotalItems       int
	PreparedItems    int
	Progress         int
	EstimatedMinutes int

	Notes       string
	StartedAt   *time.Time
	CompletedAt *time.Time

	DispatchedBy     *uuid.UUID `gorm:"type:uuid"`
	DispatchedByName string
	DispatchedAt     *time.Time
	Carrier          string
	TrackingNumber   string
	DispatchNotes    string

	ReassignedFrom *uuid.UUID `gorm:"type:uuid"`
	ReassignedBy   *uuid.UUID `gorm:"type:uuid"`
	ReassignedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for preparation trackers.
// Overrides GORM's default naming convention to use "preparations".
func (PreparationDTO) TableName() string {
	return "preparations"
}

// ItemDTO is one tracker line inside the JSON items column.
type ItemDTO struct {
	ProductID        string `json:"productId"`
	ProductName      string `json:"productName"`
	QuantityOrdered  int    `json:"quantityOrdered"`
	QuantityPrepared int    `json:"quantityPrepared"`
	IsPrepared       bool   `json:"isPrepared"`
	Notes            string `json:"notes,omitempty"`
}

// fromDomain converts a preparation domain aggregate to its database representation.
func fromDomain(aggregate *preparation.Preparation) PreparationDTO {
	assignment := aggregate.Assignment()
	dispatch := aggregate.Dispatch()
	reassignment := aggregate.Reassignment()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, it := range aggregate.Items() {
		items = append(items, ItemDTO{
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityPrepared: it.QuantityPrepared,
			IsPrepared:       it.IsPrepared,
			Notes:            it.Notes,
		})
	}

	return PreparationDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		OrderNumber:      aggregate.OrderNumber(),
		Status:           aggregate.Status().String(),
		OperatorID:       uuidPtr(assignment.Operator),
		OperatorName:     assignment.OperatorName,
		AssignedAt:       assignment.AssignedAt,
		AssignedBy:       string(assignment.AssignedBy),
		Items:            items,
		TotalItems:       aggregate.TotalItems(),
		PreparedItems:    aggregate.PreparedItems(),
		Progress:         aggregate.Progress(),
		EstimatedMinutes: aggregate.EstimatedMinutes(),
		Notes:            aggregate.Notes(),
		StartedAt:        aggregate.StartedAt(),
		CompletedAt:      aggregate.CompletedAt(),
		DispatchedBy:     uuidPtr(dispatch.By),
		DispatchedByName: dispatch.ByName,
		DispatchedAt:     dispatch.At,
		Carrier:          dispatch.Carrier,
		TrackingNumber:   dispatch.TrackingNumber,
		DispatchNotes:    dispatch.Notes,
		ReassignedFrom:   uuidPtr(reassignment.From),
		ReassignedBy:     uuidPtr(reassignment.By),
		ReassignedAt:     reassignment.At,
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a preparation domain aggregate using
// RestorePreparation. Derived counters are recomputed by the constructor.
func toDomain(dto PreparationDTO) (*preparation.Preparation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	operatorID, err := kernelPtr(dto.OperatorID)
	if err != nil {
		return nil, err
	}
	dispatchedBy, err := kernelPtr(dto.DispatchedBy)
	if err != nil {
		return nil, err
	}
	reassignedFrom, err := kernelPtr(dto.ReassignedFrom)
	if err != nil {
		return nil, err
	}
	reassignedBy, err := kernelPtr(dto.ReassignedBy)
	if err != nil {
		return nil, err
	}

	items := make([]preparation.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, preparation.Item{
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityPrepared: it.QuantityPrepared,
			IsPrepared:       it.IsPrepared,
			Notes:            it.Notes,
		})
	}

	assignment := preparation.Assignment{
		Operator:     operatorID,
		OperatorName: dto.OperatorName,
		AssignedAt:   dto.AssignedAt,
		AssignedBy:   preparation.AssignmentType(dto.AssignedBy),
	}
	dispatch := preparation.Dispatch{
		By:             dispatchedBy,
		ByName:         dto.DispatchedByName,
		At:             dto.DispatchedAt,
		Carrier:        dto.Carrier,
		TrackingNumber: dto.TrackingNumber,
		Notes:          dto.DispatchNotes,
	}
	reassignment := preparation.Reassignment{
		From: reassignedFrom,
		By:   reassignedBy,
		At:   dto.ReassignedAt,
	}

	return preparation.RestorePreparation(id, orderID, dto.OrderNumber,
		preparation.Status(dto.Status), assignment, items, dto.EstimatedMinutes,
		dto.StartedAt, dto.CompletedAt, dispatch, reassignment,
		dto.Notes, dto.CreatedAt, dto.UpdatedAt), nil
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}
