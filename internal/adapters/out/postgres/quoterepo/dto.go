// Package quoterepo provides data transfer objects and mapping functions for quote persistence.
// This package implements the repository pattern for the quote domain aggregate, handling
// the conversion between domain entities and database representations.
package quoterepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/quote"
)

// QuoteDTO represents the database structure for persisting quote aggregates.
// Line items are stored as a JSON column; the quote number carries a unique
// index because it doubles as the customer-facing identifier.
type QuoteDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number string    `gorm:"uniqueIndex;size:16"`

	UserID           *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID       *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName     string
	CustomerEmail    string `gorm:"index"`
	CustomerPhone    string
	CustomerCompany  string
	CustomerTaxID    string
	AssignedRepID    *uuid.UUID `gorm:"type:uuid;index"`
	AssignedRepName  string
	Items            []ItemDTO `gorm:"serializer:json;type:jsonb"`
	Subtotal         float64
	Discount         float64
	Tax              float64
	Total            float64
	Status           string `gorm:"index;size:32"`
	CustomerMessage  string
	VendorNotes      string
	AdminNotes       string
	RejectionReason  string
	VendorReviewedBy *uuid.UUID `gorm:"type:uuid"`
	VendorReviewedAt *time.Time
	AdminReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	AdminReviewedAt  *time.Time
	OrderID          *uuid.UUID `gorm:"type:uuid"`
	OrderNumber      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the database table name for quote entities.
// Overrides GORM's default naming convention to use "quotes".
func (QuoteDTO) TableName() string {
	return "quotes"
}

// ItemDTO is one quoted line inside the JSON items column.
type ItemDTO struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	ProductCode string  `json:"productCode,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
	Notes       string  `json:"notes,omitempty"`
}

// fromDomain converts a quote domain aggregate to its database representation.
func fromDomain(aggregate *quote.Quote) QuoteDTO {
	customer := aggregate.Customer()
	stamps := aggregate.Stamps()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, it := range aggregate.Items() {
		items = append(items, ItemDTO{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
			Notes:       it.Notes,
		})
	}

	return QuoteDTO{
		ID:               aggregate.ID().Bytes(),
		Number:           aggregate.Number(),
		UserID:           uuidPtr(customer.UserID),
		CustomerID:       uuidPtr(customer.CustomerID),
		CustomerName:     customer.Name,
		CustomerEmail:    customer.Email,
		CustomerPhone:    customer.Phone,
		CustomerCompany:  customer.Organization,
		CustomerTaxID:    customer.TaxID,
		AssignedRepID:    uuidPtr(aggregate.AssignedRep()),
		AssignedRepName:  aggregate.AssignedRepName(),
		Items:            items,
		Subtotal:         aggregate.Subtotal(),
		Discount:         aggregate.Discount(),
		Tax:              aggregate.Tax(),
		Total:            aggregate.Total(),
		Status:           aggregate.Status().String(),
		CustomerMessage:  aggregate.CustomerMessage(),
		VendorNotes:      aggregate.VendorNotes(),
		AdminNotes:       aggregate.AdminNotes(),
		RejectionReason:  aggregate.RejectionReason(),
		VendorReviewedBy: uuidPtr(stamps.VendorReviewedBy),
		VendorReviewedAt: stamps.VendorReviewedAt,
		AdminReviewedBy:  uuidPtr(stamps.AdminReviewedBy),
		AdminReviewedAt:  stamps.AdminReviewedAt,
		OrderID:          uuidPtr(aggregate.OrderID()),
		OrderNumber:      aggregate.OrderNumber(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a quote domain aggregate using RestoreQuote.
func toDomain(dto QuoteDTO) (*quote.Quote, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernelPtr(dto.UserID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernelPtr(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	assignedRep, err := kernelPtr(dto.AssignedRepID)
	if err != nil {
		return nil, err
	}
	vendorBy, err := kernelPtr(dto.VendorReviewedBy)
	if err != nil {
		return nil, err
	}
	adminBy, err := kernelPtr(dto.AdminReviewedBy)
	if err != nil {
		return nil, err
	}
	orderID, err := kernelPtr(dto.OrderID)
	if err != nil {
		return nil, err
	}

	items := make([]quote.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, quote.Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
			Notes:       it.Notes,
		})
	}

	customer := quote.CustomerInfo{
		UserID:       userID,
		CustomerID:   customerID,
		Name:         dto.CustomerName,
		Email:        dto.CustomerEmail,
		Phone:        dto.CustomerPhone,
		Organization: dto.CustomerCompany,
		TaxID:        dto.CustomerTaxID,
	}
	stamps := quote.ReviewStamps{
		VendorReviewedBy: vendorBy,
		VendorReviewedAt: dto.VendorReviewedAt,
		AdminReviewedBy:  adminBy,
		AdminReviewedAt:  dto.AdminReviewedAt,
	}

	return quote.RestoreQuote(id, dto.Number, customer, assignedRep, dto.AssignedRepName,
		items, dto.Subtotal, dto.Discount, dto.Tax, dto.Total, quote.Status(dto.Status),
		dto.CustomerMessage, dto.VendorNotes, dto.AdminNotes, dto.RejectionReason,
		stamps, orderID, dto.OrderNumber, dto.CreatedAt, dto.UpdatedAt), nil
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
