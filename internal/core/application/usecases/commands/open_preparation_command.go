package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrOpenPreparationCommandIsNotConstructed = errors.New(
	"OpenPreparationCommand must be created via NewOpenPreparationCommand constructor",
)

// OpenPreparationCommand represents a warehouse operator taking an order into
// preparation. When operatorID is nil the acting account becomes the assignee.
type OpenPreparationCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actor      Actor
	operatorID *kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

// NewOpenPreparationCommand creates a command to open an order's preparation.
func NewOpenPreparationCommand(orderID kernel.UUID, actor Actor, operatorID *kernel.UUID, notes string) (OpenPreparationCommand, error) {
	cmd := OpenPreparationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		func() error {
			if operatorID != nil {
				return operatorID.Validate()
			}
			return nil
		}(),
	); err != nil {
		return OpenPreparationCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.operatorID = operatorID
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenPreparationCommand) Validate() error {
	return c.guard.Validate(ErrOpenPreparationCommandIsNotConstructed)
}

// OrderID returns the order taken into preparation.
func (c OpenPreparationCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the acting account.
func (c OpenPreparationCommand) Actor() Actor { return c.actor }

// OperatorID returns the explicit assignee, or nil for self-assignment.
func (c OpenPreparationCommand) OperatorID() *kernel.UUID { return c.operatorID }

// Notes returns the optional preparation notes.
func (c OpenPreparationCommand) Notes() string { return c.notes }
