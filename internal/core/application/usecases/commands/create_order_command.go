package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a direct checkout: an order placed without a
// preceding quote.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   Actor

	customerName  string
	customerEmail string
	customerPhone string
	organization  string

	items  []order.Item
	totals order.Totals

	paymentMethod   order.PaymentMethod
	shippingAddress order.ShippingAddress
	shippingMethod  string
	customerNotes   string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a direct-checkout order.
// Requires at least one priced item, a positive total, and a shipping address.
func NewCreateOrderCommand(orderID kernel.UUID, actor Actor,
	customerName, customerEmail, customerPhone, organization string,
	items []order.Item, totals order.Totals, paymentMethod order.PaymentMethod,
	address order.ShippingAddress, shippingMethod, notes string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		paymentMethod.Validate(),
		func() error {
			if len(items) == 0 {
				return errs.NewUnprocessableError("items")
			}
			return nil
		}(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.customerName = customerName
	cmd.customerEmail = customerEmail
	cmd.customerPhone = customerPhone
	cmd.organization = organization
	cmd.items = items
	cmd.totals = totals
	cmd.paymentMethod = paymentMethod
	cmd.shippingAddress = address
	cmd.shippingMethod = shippingMethod
	cmd.customerNotes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the account placing the order.
func (c CreateOrderCommand) Actor() Actor { return c.actor }

// CustomerName returns the customer contact name.
func (c CreateOrderCommand) CustomerName() string { return c.customerName }

// CustomerEmail returns the customer contact email.
func (c CreateOrderCommand) CustomerEmail() string { return c.customerEmail }

// CustomerPhone returns the customer contact phone.
func (c CreateOrderCommand) CustomerPhone() string { return c.customerPhone }

// Organization returns the customer's organization.
func (c CreateOrderCommand) Organization() string { return c.organization }

// Items returns the purchased lines.
func (c CreateOrderCommand) Items() []order.Item { return c.items }

// Totals returns the monetary figures.
func (c CreateOrderCommand) Totals() order.Totals { return c.totals }

// PaymentMethod returns the agreed settlement method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

// ShippingAddress returns the destination collected at checkout.
func (c CreateOrderCommand) ShippingAddress() order.ShippingAddress { return c.shippingAddress }

// ShippingMethod returns the selected shipping method.
func (c CreateOrderCommand) ShippingMethod() string { return c.shippingMethod }

// CustomerNotes returns the optional notes for the order.
func (c CreateOrderCommand) CustomerNotes() string { return c.customerNotes }
