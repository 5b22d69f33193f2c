package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrReassignPreparationCommandIsNotConstructed = errors.New(
	"ReassignPreparationCommand must be created via NewReassignPreparationCommand constructor",
)

// ReassignPreparationCommand represents moving an order's preparation to a
// different operator, either to an explicit target or to whoever the
// workload dispatcher picks.
type ReassignPreparationCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	actor    Actor
	targetID *kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewReassignPreparationCommand creates a reassignment command. A nil target
// requests automatic re-dispatch away from the current assignee.
func NewReassignPreparationCommand(orderID kernel.UUID, actor Actor, targetID *kernel.UUID, reason string) (ReassignPreparationCommand, error) {
	cmd := ReassignPreparationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		func() error {
			if targetID != nil {
				return targetID.Validate()
			}
			return nil
		}(),
	); err != nil {
		return ReassignPreparationCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.targetID = targetID
	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignPreparationCommand) Validate() error {
	return c.guard.Validate(ErrReassignPreparationCommandIsNotConstructed)
}

// OrderID returns the order whose preparation moves.
func (c ReassignPreparationCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the account requesting the move.
func (c ReassignPreparationCommand) Actor() Actor { return c.actor }

// TargetID returns the explicit target operator, or nil for auto re-dispatch.
func (c ReassignPreparationCommand) TargetID() *kernel.UUID { return c.targetID }

// Reason returns the optional reassignment reason.
func (c ReassignPreparationCommand) Reason() string { return c.reason }
