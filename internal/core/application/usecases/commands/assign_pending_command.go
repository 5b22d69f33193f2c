package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrAssignPendingCommandIsNotConstructed = errors.New(
	"AssignPendingCommand must be created via NewAssignPendingCommand constructor",
)

// AssignPendingCommand represents a sweep over preparations stuck in
// pendiente, retrying operator assignment for each. Carries no payload.
type AssignPendingCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignPendingCommand creates a sweep command.
func NewAssignPendingCommand() AssignPendingCommand {
	return AssignPendingCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AssignPendingCommand) Validate() error {
	return c.guard.Validate(ErrAssignPendingCommandIsNotConstructed)
}
