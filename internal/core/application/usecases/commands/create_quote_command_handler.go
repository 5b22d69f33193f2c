package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/quote"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CreateQuoteCommandHandler handles the business logic for quote creation:
// sequence-number generation, sales-representative resolution through the
// customer directory, persistence, and the new-quote notification.
type CreateQuoteCommandHandler struct {
	uowFactory QuoteUoWFactory
	customers  ports.CustomerDirectory
	sequence   services.NumberSequence
	notifier   Notifier
}

// NewCreateQuoteCommandHandler creates a handler for quote creation operations.
func NewCreateQuoteCommandHandler(uowFactory QuoteUoWFactory, customers ports.CustomerDirectory, sequence services.NumberSequence, notifier Notifier) CreateQuoteCommandHandler {
	return CreateQuoteCommandHandler{
		uowFactory: uowFactory,
		customers:  customers,
		sequence:   sequence,
		notifier:   notifier,
	}
}

// Handle processes the quote creation command. The sales representative is
// resolved by customer id first and contact email second; an unresolved
// representative leaves the quote unassigned rather than failing the request.
func (h CreateQuoteCommandHandler) Handle(ctx context.Context, cmd CreateQuoteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	rep, repName := h.resolveSalesRep(ctx, cmd.Customer())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	quoteRepo := uow.QuoteRepository()
	number, err := h.sequence.GenerateUnique(ctx, quoteRepo.ExistsByNumber)
	if err != nil {
		return err
	}

	aggregate, err := quote.NewQuote(cmd.QuoteID(), number, cmd.Customer(), cmd.Items(), cmd.Message(), time.Now())
	if err != nil {
		return err
	}
	if rep != nil {
		if err = aggregate.AssignSalesRep(*rep, repName, time.Now()); err != nil {
			return err
		}
	}

	if err = quoteRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if rep != nil {
		h.notifier.Notify(ctx, *rep, notification.TypeQuoteNew,
			"Nueva cotización",
			fmt.Sprintf("La cotización %s de %s espera tu revisión", number, cmd.Customer().Organization),
			notification.RelatedEntity{Kind: "quote", ID: aggregate.ID(), Number: number},
			notification.PriorityHigh)
	}
	return nil
}

func (h CreateQuoteCommandHandler) resolveSalesRep(ctx context.Context, customer quote.CustomerInfo) (rep *kernel.UUID, name string) {
	if customer.CustomerID != nil {
		record, err := h.customers.Get(ctx, *customer.CustomerID)
		if err == nil && record.AssignedRep != nil {
			return record.AssignedRep, record.AssignedRepName
		}
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, ""
		}
	}

	record, err := h.customers.FindByEmail(ctx, customer.Email)
	if err == nil && record.AssignedRep != nil {
		return record.AssignedRep, record.AssignedRepName
	}
	return nil, ""
}
