package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// OrderPatch carries the optional fields of an order update. Nil means
// "leave unchanged". ConfirmDelivery is the customer's delivery confirmation
// and is processed exclusively when set.
type OrderPatch struct {
	Status          *order.Status
	PaymentStatus   *order.PaymentStatus
	PaymentMethod   *order.PaymentMethod
	TrackingNumber  *string
	InternalNotes   *string
	ConfirmDelivery bool
}

// isEmpty reports whether the patch changes nothing.
func (p OrderPatch) isEmpty() bool {
	return p.Status == nil && p.PaymentStatus == nil && p.PaymentMethod == nil &&
		p.TrackingNumber == nil && p.InternalNotes == nil && !p.ConfirmDelivery
}

// touchesOnlyStatus reports whether status is the single patched field.
func (p OrderPatch) touchesOnlyStatus() bool {
	return p.Status != nil && p.PaymentStatus == nil && p.PaymentMethod == nil &&
		p.TrackingNumber == nil && p.InternalNotes == nil && !p.ConfirmDelivery
}

// UpdateOrderCommand represents a partial update of an order.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   Actor
	origin  string
	patch   OrderPatch

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to patch an order. The patch must
// change at least one field; origin names the channel the update came from
// (web, warehouse, job).
func NewUpdateOrderCommand(orderID kernel.UUID, actor Actor, origin string, patch OrderPatch) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		func() error {
			if patch.isEmpty() {
				return errs.NewUnprocessableError("patch")
			}
			return nil
		}(),
		func() error {
			if patch.Status != nil {
				return patch.Status.Validate()
			}
			return nil
		}(),
		func() error {
			if patch.PaymentStatus != nil {
				return patch.PaymentStatus.Validate()
			}
			return nil
		}(),
		func() error {
			if patch.PaymentMethod != nil {
				return patch.PaymentMethod.Validate()
			}
			return nil
		}(),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.origin = origin
	cmd.patch = patch
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the order being patched.
func (c UpdateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the updating account.
func (c UpdateOrderCommand) Actor() Actor { return c.actor }

// Origin returns the channel the update came from.
func (c UpdateOrderCommand) Origin() string { return c.origin }

// Patch returns the fields to change.
func (c UpdateOrderCommand) Patch() OrderPatch { return c.patch }
