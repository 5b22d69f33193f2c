package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrConvertQuoteCommandIsNotConstructed = errors.New(
	"ConvertQuoteCommand must be created via NewConvertQuoteCommand constructor",
)

// ConvertQuoteCommand represents the checkout of a fully approved quote:
// turning it into an order with the payment and shipping details collected
// from the customer.
type ConvertQuoteCommand struct { //nolint:recvcheck //using for validation
	quoteID kernel.UUID
	orderID kernel.UUID
	actor   Actor

	paymentMethod   order.PaymentMethod
	shippingAddress order.ShippingAddress
	shippingMethod  string
	customerNotes   string

	guard guard.ConstructorGuard
}

// NewConvertQuoteCommand creates a command to convert an approved quote.
//
// Parameters:
//   - quoteID: the quote to convert
//   - orderID: identifier pre-assigned to the resulting order
//   - actor: the converting account
//   - paymentMethod: agreed settlement method (may be empty)
//   - address: shipping destination collected at checkout
//   - shippingMethod: selected shipping method
//   - notes: optional customer notes for the order
func NewConvertQuoteCommand(quoteID, orderID kernel.UUID, actor Actor,
	paymentMethod order.PaymentMethod, address order.ShippingAddress,
	shippingMethod, notes string) (ConvertQuoteCommand, error) {
	cmd := ConvertQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		quoteID.Validate(),
		orderID.Validate(),
		actor.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return ConvertQuoteCommand{}, err
	}

	cmd.quoteID = quoteID
	cmd.orderID = orderID
	cmd.actor = actor
	cmd.paymentMethod = paymentMethod
	cmd.shippingAddress = address
	cmd.shippingMethod = shippingMethod
	cmd.customerNotes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConvertQuoteCommand) Validate() error {
	return c.guard.Validate(ErrConvertQuoteCommandIsNotConstructed)
}

// QuoteID returns the quote being converted.
func (c ConvertQuoteCommand) QuoteID() kernel.UUID { return c.quoteID }

// OrderID returns the identifier pre-assigned to the resulting order.
func (c ConvertQuoteCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the converting account.
func (c ConvertQuoteCommand) Actor() Actor { return c.actor }

// PaymentMethod returns the agreed settlement method.
func (c ConvertQuoteCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

// ShippingAddress returns the destination collected at checkout.
func (c ConvertQuoteCommand) ShippingAddress() order.ShippingAddress { return c.shippingAddress }

// ShippingMethod returns the selected shipping method.
func (c ConvertQuoteCommand) ShippingMethod() string { return c.shippingMethod }

// CustomerNotes returns the optional notes for the order.
func (c ConvertQuoteCommand) CustomerNotes() string { return c.customerNotes }
