package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand represents the carrier hand-off of a fully prepared
// order.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	actor          Actor
	carrier        string
	trackingNumber string
	notes          string

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand creates a command to dispatch a prepared order.
// The carrier name is required; the tracking number may arrive later and is
// optional.
func NewDispatchOrderCommand(orderID kernel.UUID, actor Actor, carrier, trackingNumber, notes string) (DispatchOrderCommand, error) {
	cmd := DispatchOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		func() error {
			if carrier == "" {
				return errs.NewValueIsRequiredError("carrier")
			}
			return nil
		}(),
	); err != nil {
		return DispatchOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.carrier = carrier
	cmd.trackingNumber = trackingNumber
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

// OrderID returns the dispatched order.
func (c DispatchOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the dispatching account.
func (c DispatchOrderCommand) Actor() Actor { return c.actor }

// Carrier returns the carrier taking the shipment.
func (c DispatchOrderCommand) Carrier() string { return c.carrier }

// TrackingNumber returns the carrier tracking reference.
func (c DispatchOrderCommand) TrackingNumber() string { return c.trackingNumber }

// Notes returns the optional dispatch notes.
func (c DispatchOrderCommand) Notes() string { return c.notes }
