package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/quote"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// VendorReviewQuoteCommandHandler resolves the first review stage. Only the
// assigned sales representative may decide; administrators can step in for
// any quote.
type VendorReviewQuoteCommandHandler struct {
	uowFactory QuoteUoWFactory
	identity   ports.IdentityProvider
	notifier   Notifier
}

// NewVendorReviewQuoteCommandHandler creates a handler for first-stage review.
func NewVendorReviewQuoteCommandHandler(uowFactory QuoteUoWFactory, identity ports.IdentityProvider, notifier Notifier) VendorReviewQuoteCommandHandler {
	return VendorReviewQuoteCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
	}
}

// Handle processes the first-stage review decision. An approval moves the
// quote to aprobado_vendedor and alerts the administrators; a rejection moves
// it to rechazado_vendedor and alerts the customer.
func (h VendorReviewQuoteCommandHandler) Handle(ctx context.Context, cmd VendorReviewQuoteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := services.Authorize(cmd.Actor().Role, services.PermQuoteVendorReview); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	quoteRepo := uow.QuoteRepository()
	aggregate, err := quoteRepo.Get(ctx, cmd.QuoteID())
	if err != nil {
		return err
	}

	// Sales representatives may only decide quotes assigned to them;
	// elevated roles may decide any quote.
	if cmd.Actor().Role == account.RoleVendedor && !aggregate.IsAssignedTo(cmd.Actor().ID) {
		return errs.NewForbiddenError(cmd.Actor().Role.String(), "review a quote assigned to another representative")
	}

	now := time.Now()
	if cmd.Approved() {
		err = aggregate.VendorApprove(cmd.Actor().ID, cmd.Notes(), now)
	} else {
		err = aggregate.VendorReject(cmd.Actor().ID, cmd.Notes(), cmd.Reason(), now)
	}
	if err != nil {
		return err
	}

	if err = quoteRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyOutcome(ctx, aggregate, cmd.Approved())
	return nil
}

func (h VendorReviewQuoteCommandHandler) notifyOutcome(ctx context.Context, aggregate *quote.Quote, approved bool) {
	related := notification.RelatedEntity{Kind: "quote", ID: aggregate.ID(), Number: aggregate.Number()}

	if approved {
		admins, err := h.identity.GetActiveByRole(ctx, account.RoleAdmin)
		if err == nil {
			h.notifier.Broadcast(ctx, admins, notification.TypeQuoteVendorApproved,
				"Cotización lista para aprobación final",
				fmt.Sprintf("La cotización %s fue aprobada por ventas y espera revisión", aggregate.Number()),
				related, notification.PriorityHigh)
		}
		return
	}

	if customer := aggregate.Customer().UserID; customer != nil {
		h.notifier.Notify(ctx, *customer, notification.TypeQuoteVendorRejected,
			"Cotización rechazada",
			fmt.Sprintf("La cotización %s fue rechazada: %s", aggregate.Number(), aggregate.RejectionReason()),
			related, notification.PriorityNormal)
	}
}

// AdminReviewQuoteCommandHandler resolves the second review stage.
type AdminReviewQuoteCommandHandler struct {
	uowFactory QuoteUoWFactory
	notifier   Notifier
}

// NewAdminReviewQuoteCommandHandler creates a handler for second-stage review.
func NewAdminReviewQuoteCommandHandler(uowFactory QuoteUoWFactory, notifier Notifier) AdminReviewQuoteCommandHandler {
	return AdminReviewQuoteCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the second-stage review decision. An approval moves the
// quote to aprobado, making it eligible for conversion; either outcome is
// reported to the assigned representative and the customer.
func (h AdminReviewQuoteCommandHandler) Handle(ctx context.Context, cmd AdminReviewQuoteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := services.Authorize(cmd.Actor().Role, services.PermQuoteAdminReview); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	quoteRepo := uow.QuoteRepository()
	aggregate, err := quoteRepo.Get(ctx, cmd.QuoteID())
	if err != nil {
		return err
	}

	now := time.Now()
	if cmd.Approved() {
		err = aggregate.AdminApprove(cmd.Actor().ID, cmd.Notes(), now)
	} else {
		err = aggregate.AdminReject(cmd.Actor().ID, cmd.Notes(), cmd.Reason(), now)
	}
	if err != nil {
		return err
	}

	if err = quoteRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyOutcome(ctx, aggregate, cmd.Approved())
	return nil
}

func (h AdminReviewQuoteCommandHandler) notifyOutcome(ctx context.Context, aggregate *quote.Quote, approved bool) {
	related := notification.RelatedEntity{Kind: "quote", ID: aggregate.ID(), Number: aggregate.Number()}

	typ := notification.TypeQuoteAdminApproved
	title := "Cotización aprobada"
	message := fmt.Sprintf("La cotización %s fue aprobada y puede convertirse en pedido", aggregate.Number())
	if !approved {
		typ = notification.TypeQuoteAdminRejected
		title = "Cotización rechazada"
		message = fmt.Sprintf("La cotización %s fue rechazada: %s", aggregate.Number(), aggregate.RejectionReason())
	}

	if rep := aggregate.AssignedRep(); rep != nil {
		h.notifier.Notify(ctx, *rep, typ, title, message, related, notification.PriorityNormal)
	}
	if customer := aggregate.Customer().UserID; customer != nil {
		h.notifier.Notify(ctx, *customer, typ, title, message, related, notification.PriorityHigh)
	}
}
