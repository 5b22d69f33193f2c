package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrVendorReviewQuoteCommandIsNotConstructed = errors.New(
		"VendorReviewQuoteCommand must be created via NewVendorReviewQuoteCommand constructor",
	)
	ErrAdminReviewQuoteCommandIsNotConstructed = errors.New(
		"AdminReviewQuoteCommand must be created via NewAdminReviewQuoteCommand constructor",
	)
)

// reviewQuoteCommand carries the shared payload of both review stages: the
// quote, the acting reviewer, the decision, and its supporting notes.
type reviewQuoteCommand struct {
	quoteID  kernel.UUID
	actor    Actor
	approved bool
	notes    string
	reason   string
}

func (c *reviewQuoteCommand) set(quoteID kernel.UUID, actor Actor, approved bool, notes, reason string) error {
	if err := errors.Join(
		quoteID.Validate(),
		actor.Validate(),
		func() error {
			if !approved && reason == "" {
				return errs.NewValueIsRequiredError("rejectionReason")
			}
			return nil
		}(),
	); err != nil {
		return err
	}

	c.quoteID = quoteID
	c.actor = actor
	c.approved = approved
	c.notes = notes
	c.reason = reason
	return nil
}

// QuoteID returns the unique identifier of the reviewed quote.
func (c reviewQuoteCommand) QuoteID() kernel.UUID { return c.quoteID }

// Actor returns the reviewing account.
func (c reviewQuoteCommand) Actor() Actor { return c.actor }

// Approved reports the review decision.
func (c reviewQuoteCommand) Approved() bool { return c.approved }

// Notes returns the reviewer's notes.
func (c reviewQuoteCommand) Notes() string { return c.notes }

// Reason returns the rejection reason; required when Approved is false.
func (c reviewQuoteCommand) Reason() string { return c.reason }

// VendorReviewQuoteCommand represents the first-stage review decision taken
// by the assigned sales representative (or an administrator on their behalf).
type VendorReviewQuoteCommand struct { //nolint:recvcheck //using for validation
	reviewQuoteCommand

	guard guard.ConstructorGuard
}

// NewVendorReviewQuoteCommand creates a first-stage review command.
// A rejection requires a reason.
func NewVendorReviewQuoteCommand(quoteID kernel.UUID, actor Actor, approved bool, notes, reason string) (VendorReviewQuoteCommand, error) {
	cmd := VendorReviewQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}
	if err := cmd.set(quoteID, actor, approved, notes, reason); err != nil {
		return VendorReviewQuoteCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VendorReviewQuoteCommand) Validate() error {
	return c.guard.Validate(ErrVendorReviewQuoteCommandIsNotConstructed)
}

// AdminReviewQuoteCommand represents the second-stage review decision taken
// by an administrator after first-stage approval.
type AdminReviewQuoteCommand struct { //nolint:recvcheck //using for validation
	reviewQuoteCommand

	guard guard.ConstructorGuard
}

// NewAdminReviewQuoteCommand creates a second-stage review command.
// A rejection requires a reason.
func NewAdminReviewQuoteCommand(quoteID kernel.UUID, actor Actor, approved bool, notes, reason string) (AdminReviewQuoteCommand, error) {
	cmd := AdminReviewQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}
	if err := cmd.set(quoteID, actor, approved, notes, reason); err != nil {
		return AdminReviewQuoteCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdminReviewQuoteCommand) Validate() error {
	return c.guard.Validate(ErrAdminReviewQuoteCommandIsNotConstructed)
}
