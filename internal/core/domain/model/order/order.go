package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Item is a purchased line of an order. Unlike quote lines, order lines are
// always priced.
type Item struct {
	ProductID   string
	ProductName string
	ProductCode string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
	Notes       string
}

// Validate checks the structural invariants of an order line.
func (i Item) Validate() error {
	return errors.Join(
		func() error {
			if i.ProductID == "" {
				return errs.NewValueIsRequiredError("productId")
			}
			return nil
		}(),
		func() error {
			if i.Quantity <= 0 {
				return errs.NewValueIsInvalidError("quantity")
			}
			return nil
		}(),
	)
}

// ShippingAddress is the destination captured at checkout.
type ShippingAddress struct {
	Street      string
	City        string
	State       string
	ZipCode     string
	Country     string
	Phone       string
	ContactName string
}

func (a ShippingAddress) validate() error {
	return errors.Join(
		func() error {
			if a.Street == "" {
				return errs.NewValueIsRequiredError("shippingAddress.street")
			}
			return nil
		}(),
		func() error {
			if a.City == "" {
				return errs.NewValueIsRequiredError("shippingAddress.city")
			}
			return nil
		}(),
	)
}

// Totals carries the monetary figures of an order.
type Totals struct {
	Subtotal     float64
	Discount     float64
	Tax          float64
	ShippingCost float64
	Total        float64
}

// Timestamps records the first occurrence of each lifecycle milestone.
// A milestone instant is written once and never overwritten by later
// transitions through the same status.
type Timestamps struct {
	ConfirmedAt         *time.Time
	ShippedAt           *time.Time
	DeliveredAt         *time.Time
	DeliveryConfirmedAt *time.Time
	CancelledAt         *time.Time
}

// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of the purchase lifecycle, from checkout (or
// quote conversion) through warehouse preparation, shipping, and delivery.
// Once the order reaches entregado or cancelado it is immutable.
type Order struct {
	id     kernel.UUID
	number string

	userID        *kernel.UUID
	customerName  string
	customerEmail string
	customerPhone string
	organization  string

	items  []Item
	totals Totals

	status        Status
	paymentStatus PaymentStatus
	paymentMethod PaymentMethod

	shippingAddress ShippingAddress
	shippingMethod  string
	trackingNumber  string

	customerNotes string
	internalNotes string

	quoteID     *kernel.UUID
	quoteNumber string

	timestamps Timestamps

	updatedBy    *kernel.UUID
	updateOrigin string

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order in the pendiente state with payment pendiente.
//
// Parameters:
//   - id: unique identifier of the order
//   - number: human-facing sequence number (ORD-YYMM-NNNN)
//   - userID: customer account, when the checkout was authenticated
//   - customerName/customerEmail: contact identity (required)
//   - items: purchased lines, at least one
//   - totals: monetary figures; Total must be positive
//   - address: shipping destination (street and city required)
//   - now: creation instant
func NewOrder(id kernel.UUID, number string, userID *kernel.UUID,
	customerName, customerEmail string, items []Item, totals Totals,
	address ShippingAddress, now time.Time) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomer(customerName, customerEmail),
		o.setItems(items),
		o.setTotals(totals),
		o.setShippingAddress(address),
	); err != nil {
		return nil, err
	}

	o.userID = userID
	o.status = StatusPendiente
	o.paymentStatus = PaymentPendiente
	o.createdAt = now
	o.updatedAt = now
	return o, nil
}

// RestoreOrder reconstructs an order from storage without replaying its
// lifecycle. It trusts the persisted snapshot and performs no transition checks.
func RestoreOrder(id kernel.UUID, number string, userID *kernel.UUID,
	customerName, customerEmail, customerPhone, organization string,
	items []Item, totals Totals, status Status, paymentStatus PaymentStatus,
	paymentMethod PaymentMethod, address ShippingAddress,
	shippingMethod, trackingNumber, customerNotes, internalNotes string,
	quoteID *kernel.UUID, quoteNumber string, timestamps Timestamps,
	updatedBy *kernel.UUID, updateOrigin string, createdAt, updatedAt time.Time) *Order {
	return &Order{
		id:              id,
		number:          number,
		userID:          userID,
		customerName:    customerName,
		customerEmail:   customerEmail,
		customerPhone:   customerPhone,
		organization:    organization,
		items:           items,
		totals:          totals,
		status:          status,
		paymentStatus:   paymentStatus,
		paymentMethod:   paymentMethod,
		shippingAddress: address,
		shippingMethod:  shippingMethod,
		trackingNumber:  trackingNumber,
		customerNotes:   customerNotes,
		internalNotes:   internalNotes,
		quoteID:         quoteID,
		quoteNumber:     quoteNumber,
		timestamps:      timestamps,
		updatedBy:       updatedBy,
		updateOrigin:    updateOrigin,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		guard:           guard.NewConstructorGuard(),
	}
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// BelongsTo reports whether the given actor is the customer who placed the
// order, matched by account id or, failing that, by email.
func (o *Order) BelongsTo(userID kernel.UUID, email string) bool {
	if o.userID != nil && o.userID.IsEqual(userID) {
		return true
	}
	return email != "" && o.customerEmail == email
}

// LinkQuote records the quote this order originated from.
func (o *Order) LinkQuote(quoteID kernel.UUID, quoteNumber string) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}
	o.quoteID = &quoteID
	o.quoteNumber = quoteNumber
	return nil
}

// ChangeStatus moves the order to the given status, stamping the audit trail
// and the first-occurrence milestone timestamp. Terminal orders reject any
// further change.
func (o *Order) ChangeStatus(next Status, actor kernel.UUID, origin string, now time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if err := o.mutable(); err != nil {
		return err
	}
	o.status = next
	o.stampMilestone(next, now)
	o.stamp(actor, origin, now)
	return nil
}

// Cancel moves the order to cancelado. Delivered and already-cancelled orders
// cannot be cancelled.
func (o *Order) Cancel(actor kernel.UUID, origin string, now time.Time) error {
	if err := o.mutable(); err != nil {
		return err
	}
	o.status = StatusCancelado
	o.stampMilestone(StatusCancelado, now)
	o.stamp(actor, origin, now)
	return nil
}

// MarkShipped moves the order to enviado with the carrier tracking number,
// used when the warehouse dispatches the preparation.
func (o *Order) MarkShipped(trackingNumber string, actor kernel.UUID, origin string, now time.Time) error {
	if err := o.mutable(); err != nil {
		return err
	}
	o.status = StatusEnviado
	if trackingNumber != "" {
		o.trackingNumber = trackingNumber
	}
	o.stampMilestone(StatusEnviado, now)
	o.stamp(actor, origin, now)
	return nil
}

// ConfirmDelivery records the customer's delivery confirmation. It is a no-op
// when the order is already entregado, and fails with InvalidState from any
// status other than enviado. Ownership is checked by the caller.
func (o *Order) ConfirmDelivery(actor kernel.UUID, origin string, now time.Time) error {
	if o.status == StatusEntregado {
		return nil
	}
	if o.status != StatusEnviado {
		return errs.NewInvalidStateError("order", string(o.status))
	}
	o.status = StatusEntregado
	o.stampMilestone(StatusEntregado, now)
	if o.timestamps.DeliveryConfirmedAt == nil {
		o.timestamps.DeliveryConfirmedAt = &now
	}
	o.stamp(actor, origin, now)
	return nil
}

// SetPayment updates the settlement state of the order.
func (o *Order) SetPayment(status PaymentStatus, method PaymentMethod, actor kernel.UUID, origin string, now time.Time) error {
	if err := errors.Join(status.Validate(), method.Validate()); err != nil {
		return err
	}
	if err := o.mutable(); err != nil {
		return err
	}
	o.paymentStatus = status
	if method != "" {
		o.paymentMethod = method
	}
	o.stamp(actor, origin, now)
	return nil
}

// SetTracking updates the carrier tracking number.
func (o *Order) SetTracking(trackingNumber string, actor kernel.UUID, origin string, now time.Time) error {
	if err := o.mutable(); err != nil {
		return err
	}
	o.trackingNumber = trackingNumber
	o.stamp(actor, origin, now)
	return nil
}

// SetInternalNotes replaces the staff-only notes.
func (o *Order) SetInternalNotes(notes string, actor kernel.UUID, origin string, now time.Time) error {
	if err := o.mutable(); err != nil {
		return err
	}
	o.internalNotes = notes
	o.stamp(actor, origin, now)
	return nil
}

// SetShipping updates the shipping method and address.
func (o *Order) SetShipping(method string, address ShippingAddress, actor kernel.UUID, origin string, now time.Time) error {
	if err := address.validate(); err != nil {
		return err
	}
	if err := o.mutable(); err != nil {
		return err
	}
	o.shippingMethod = method
	o.shippingAddress = address
	o.stamp(actor, origin, now)
	return nil
}

func (o *Order) mutable() error {
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("order", string(o.status))
	}
	return nil
}

func (o *Order) stampMilestone(s Status, now time.Time) {
	switch s {
	case StatusConfirmado:
		if o.timestamps.ConfirmedAt == nil {
			o.timestamps.ConfirmedAt = &now
		}
	case StatusEnviado:
		if o.timestamps.ShippedAt == nil {
			o.timestamps.ShippedAt = &now
		}
	case StatusEntregado:
		if o.timestamps.DeliveredAt == nil {
			o.timestamps.DeliveredAt = &now
		}
	case StatusCancelado:
		if o.timestamps.CancelledAt == nil {
			o.timestamps.CancelledAt = &now
		}
	}
}

func (o *Order) stamp(actor kernel.UUID, origin string, now time.Time) {
	o.updatedBy = &actor
	o.updateOrigin = origin
	o.updatedAt = now
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-facing sequence number.
func (o *Order) Number() string {
	return o.number
}

// UserID returns the customer account that placed the order, if authenticated.
func (o *Order) UserID() *kernel.UUID {
	return o.userID
}

// CustomerName returns the customer contact name.
func (o *Order) CustomerName() string { return o.customerName }

// CustomerEmail returns the customer contact email.
func (o *Order) CustomerEmail() string { return o.customerEmail }

// CustomerPhone returns the customer contact phone.
func (o *Order) CustomerPhone() string { return o.customerPhone }

// Organization returns the customer's organization.
func (o *Order) Organization() string { return o.organization }

// SetContactDetails fills the optional contact fields not required at construction.
func (o *Order) SetContactDetails(phone, organization string) {
	o.customerPhone = phone
	o.organization = organization
}

// Items returns the purchased lines.
func (o *Order) Items() []Item {
	return o.items
}

// ItemCount returns the number of distinct purchased lines.
func (o *Order) ItemCount() int {
	return len(o.items)
}

// Totals returns the monetary figures.
func (o *Order) Totals() Totals {
	return o.totals
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the settlement state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PaymentMethod returns the agreed settlement method.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// ShippingAddress returns the destination captured at checkout.
func (o *Order) ShippingAddress() ShippingAddress {
	return o.shippingAddress
}

// ShippingMethod returns the selected shipping method.
func (o *Order) ShippingMethod() string { return o.shippingMethod }

// TrackingNumber returns the carrier tracking number.
func (o *Order) TrackingNumber() string { return o.trackingNumber }

// CustomerNotes returns the free-form notes left by the customer.
func (o *Order) CustomerNotes() string { return o.customerNotes }

// SetCustomerNotes fills the customer notes at creation time.
func (o *Order) SetCustomerNotes(notes string) {
	o.customerNotes = notes
}

// InternalNotes returns the staff-only notes.
func (o *Order) InternalNotes() string { return o.internalNotes }

// QuoteID returns the identifier of the originating quote, if any.
func (o *Order) QuoteID() *kernel.UUID {
	return o.quoteID
}

// QuoteNumber returns the sequence number of the originating quote, if any.
func (o *Order) QuoteNumber() string { return o.quoteNumber }

// Timestamps returns the lifecycle milestone instants.
func (o *Order) Timestamps() Timestamps {
	return o.timestamps
}

// UpdatedBy returns the actor of the last mutation.
func (o *Order) UpdatedBy() *kernel.UUID { return o.updatedBy }

// UpdateOrigin returns the channel of the last mutation (web, warehouse, job).
func (o *Order) UpdateOrigin() string { return o.updateOrigin }

// CreatedAt returns the creation instant.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the instant of the last mutation.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomer(name, email string) error {
	return errors.Join(
		func() error {
			if name == "" {
				return errs.NewValueIsRequiredError("customerName")
			}
			o.customerName = name
			return nil
		}(),
		func() error {
			if email == "" {
				return errs.NewValueIsRequiredError("customerEmail")
			}
			o.customerEmail = email
			return nil
		}(),
	)
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewUnprocessableError("items")
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setTotals(totals Totals) error {
	if totals.Total <= 0 {
		return errs.NewValueIsInvalidError("total")
	}
	o.totals = totals
	return nil
}

func (o *Order) setShippingAddress(address ShippingAddress) error {
	if err := address.validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}
