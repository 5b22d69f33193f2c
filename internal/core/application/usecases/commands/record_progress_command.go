package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/preparation"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordProgressCommandIsNotConstructed = errors.New(
	"RecordProgressCommand must be created via NewRecordProgressCommand constructor",
)

// RecordProgressCommand represents a picking progress report: the complete
// replacement list of tracker lines with their current counts.
type RecordProgressCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   Actor
	items   []preparation.Item
	notes   string

	guard guard.ConstructorGuard
}

// NewRecordProgressCommand creates a command to report picking progress.
func NewRecordProgressCommand(orderID kernel.UUID, actor Actor, items []preparation.Item, notes string) (RecordProgressCommand, error) {
	cmd := RecordProgressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		func() error {
			if len(items) == 0 {
				return errs.NewUnprocessableError("items")
			}
			return nil
		}(),
	); err != nil {
		return RecordProgressCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.items = items
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordProgressCommand) Validate() error {
	return c.guard.Validate(ErrRecordProgressCommandIsNotConstructed)
}

// OrderID returns the order whose preparation is being reported.
func (c RecordProgressCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the reporting account.
func (c RecordProgressCommand) Actor() Actor { return c.actor }

// Items returns the replacement tracker lines.
func (c RecordProgressCommand) Items() []preparation.Item { return c.items }

// Notes returns the optional preparation notes.
func (c RecordProgressCommand) Notes() string { return c.notes }
