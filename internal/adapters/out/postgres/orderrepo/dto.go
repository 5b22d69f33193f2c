// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items are stored as a JSON column; the shipping address is embedded
// with a prefix so the columns stay greppable.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number string    `gorm:"uniqueIndex;size:16"`

	UserID        *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName  string
	CustomerEmail string `gorm:"index"`
	CustomerPhone string
	Organization  string

	Items        []ItemDTO `gorm:"serializer:json;type:jsonb"`
	Subtotal     float64
	Discount     float64
	Tax          float64
	ShippingCost float64
	Total        float64

	Status        string `gorm:"index;size:32"`
	PaymentStatus string `gorm:"size:16"`
	PaymentMethod string `gorm:"size:16"`

	ShippingAddress AddressDTO `gorm:"embedded;embeddedPrefix:shipping_"`
	ShippingMethod  string
	TrackingNumber  string

	CustomerNotes string
	InternalNotes string

	QuoteID     *uuid.UUID `gorm:"type:uuid;index"`
	QuoteNumber string

	ConfirmedAt         *time.Time
	ShippedAt           *time.Time
	DeliveredAt         *time.Time
	DeliveryConfirmedAt *time.Time
	CancelledAt         *time.Time

	UpdatedBy    *uuid.UUID `gorm:"type:uuid"`
	UpdateOrigin string     `gorm:"size:32"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one ordered line inside the JSON items column.
type ItemDTO struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	ProductCode string  `json:"productCode,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
}

// AddressDTO represents the embedded shipping address within the order table.
type AddressDTO struct {
	Street      string
	City        string
	State       string
	ZipCode     string
	Country     string
	Phone       string
	ContactName string
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	totals := aggregate.Totals()
	address := aggregate.ShippingAddress()
	stamps := aggregate.Timestamps()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, it := range aggregate.Items() {
		items = append(items, ItemDTO{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		Number:        aggregate.Number(),
		UserID:        uuidPtr(aggregate.UserID()),
		CustomerName:  aggregate.CustomerName(),
		CustomerEmail: aggregate.CustomerEmail(),
		CustomerPhone: aggregate.CustomerPhone(),
		Organization:  aggregate.Organization(),
		Items:         items,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Tax:           totals.Tax,
		ShippingCost:  totals.ShippingCost,
		Total:         totals.Total,
		Status:        aggregate.Status().String(),
		PaymentStatus: string(aggregate.PaymentStatus()),
		PaymentMethod: string(aggregate.PaymentMethod()),
		ShippingAddress: AddressDTO{
			Street:      address.Street,
			City:        address.City,
			State:       address.State,
			ZipCode:     address.ZipCode,
			Country:     address.Country,
			Phone:       address.Phone,
			ContactName: address.ContactName,
		},
		ShippingMethod:      aggregate.ShippingMethod(),
		TrackingNumber:      aggregate.TrackingNumber(),
		CustomerNotes:       aggregate.CustomerNotes(),
		InternalNotes:       aggregate.InternalNotes(),
		QuoteID:             uuidPtr(aggregate.QuoteID()),
		QuoteNumber:         aggregate.QuoteNumber(),
		ConfirmedAt:         stamps.ConfirmedAt,
		ShippedAt:           stamps.ShippedAt,
		DeliveredAt:         stamps.DeliveredAt,
		DeliveryConfirmedAt: stamps.DeliveryConfirmedAt,
		CancelledAt:         stamps.CancelledAt,
		UpdatedBy:           uuidPtr(aggregate.UpdatedBy()),
		UpdateOrigin:        aggregate.UpdateOrigin(),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernelPtr(dto.UserID)
	if err != nil {
		return nil, err
	}
	quoteID, err := kernelPtr(dto.QuoteID)
	if err != nil {
		return nil, err
	}
	updatedBy, err := kernelPtr(dto.UpdatedBy)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, order.Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}

	totals := order.Totals{
		Subtotal:     dto.Subtotal,
		Discount:     dto.Discount,
		Tax:          dto.Tax,
		ShippingCost: dto.ShippingCost,
		Total:        dto.Total,
	}
	address := order.ShippingAddress{
		Street:      dto.ShippingAddress.Street,
		City:        dto.ShippingAddress.City,
		State:       dto.ShippingAddress.State,
		ZipCode:     dto.ShippingAddress.ZipCode,
		Country:     dto.ShippingAddress.Country,
		Phone:       dto.ShippingAddress.Phone,
		ContactName: dto.ShippingAddress.ContactName,
	}
	timestamps := order.Timestamps{
		ConfirmedAt:         dto.ConfirmedAt,
		ShippedAt:           dto.ShippedAt,
		DeliveredAt:         dto.DeliveredAt,
		DeliveryConfirmedAt: dto.DeliveryConfirmedAt,
		CancelledAt:         dto.CancelledAt,
	}

	return order.RestoreOrder(id, dto.Number, userID,
		dto.CustomerName, dto.CustomerEmail, dto.CustomerPhone, dto.Organization,
		items, totals, order.Status(dto.Status), order.PaymentStatus(dto.PaymentStatus),
		order.PaymentMethod(dto.PaymentMethod), address,
		dto.ShippingMethod, dto.TrackingNumber, dto.CustomerNotes, dto.InternalNotes,
		quoteID, dto.QuoteNumber, timestamps,
		updatedBy, dto.UpdateOrigin, dto.CreatedAt, dto.UpdatedAt), nil
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
