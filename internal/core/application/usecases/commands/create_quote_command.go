package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/quote"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateQuoteCommandIsNotConstructed = errors.New(
	"CreateQuoteCommand must be created via NewCreateQuoteCommand constructor",
)

// CreateQuoteCommand represents a customer's request for a priced quotation.
// Line prices are unknown at this point; the sales representative fills them
// in during review.
type CreateQuoteCommand struct { //nolint:recvcheck //using for validation
	quoteID  kernel.UUID
	customer quote.CustomerInfo
	items    []quote.Item
	message  string

	guard guard.ConstructorGuard
}

// NewCreateQuoteCommand creates a command to register a new quote request.
// Requires a valid quote ID, complete contact fields, and at least one item.
func NewCreateQuoteCommand(quoteID kernel.UUID, customer quote.CustomerInfo, items []quote.Item, message string) (CreateQuoteCommand, error) {
	cmd := CreateQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setQuoteID(quoteID),
		cmd.setItems(items),
	); err != nil {
		return CreateQuoteCommand{}, err
	}

	cmd.customer = customer
	cmd.message = message
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateQuoteCommand) Validate() error {
	return c.guard.Validate(ErrCreateQuoteCommandIsNotConstructed)
}

// QuoteID returns the unique identifier for the quote.
func (c CreateQuoteCommand) QuoteID() kernel.UUID {
	return c.quoteID
}

// Customer returns the requesting customer's contact identity.
func (c CreateQuoteCommand) Customer() quote.CustomerInfo {
	return c.customer
}

// Items returns the requested lines.
func (c CreateQuoteCommand) Items() []quote.Item {
	return c.items
}

// Message returns the optional free-form customer message.
func (c CreateQuoteCommand) Message() string {
	return c.message
}

func (c *CreateQuoteCommand) setQuoteID(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}
	c.quoteID = quoteID
	return nil
}

func (c *CreateQuoteCommand) setItems(items []quote.Item) error {
	if len(items) == 0 {
		return errs.NewUnprocessableError("items")
	}
	c.items = items
	return nil
}
