package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order. Customers may cancel their own
// orders; staff roles may cancel any order. Delivered orders cannot be
// cancelled. When a preparation tracker is still active, its operator is
// alerted so the picking work stops.
type CancelOrderCommandHandler struct {
	uowFactory WarehouseUoWFactory
	notifier   Notifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory WarehouseUoWFactory, notifier Notifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := services.Authorize(cmd.Actor().Role, services.PermOrderCancel); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.Actor().Role.IsCustomer() && !aggregate.BelongsTo(cmd.Actor().ID, cmd.Actor().Email) {
		return errs.NewForbiddenError(cmd.Actor().Role.String(), "cancel another customer's order")
	}

	if err = aggregate.Cancel(cmd.Actor().ID, cmd.Origin(), time.Now()); err != nil {
		return err
	}
	if cmd.Reason() != "" {
		if err = aggregate.SetInternalNotes(fmt.Sprintf("cancelado: %s", cmd.Reason()), cmd.Actor().ID, cmd.Origin(), time.Now()); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	// Alert the operator holding an active preparation for this order.
	tracker, prepErr := uow.PreparationRepository().GetByOrderID(ctx, aggregate.ID())

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	related := notification.RelatedEntity{Kind: "order", ID: aggregate.ID(), Number: aggregate.Number()}
	if prepErr == nil && tracker.Status().IsActive() && tracker.Assignment().Operator != nil {
		h.notifier.Notify(ctx, *tracker.Assignment().Operator, notification.TypeOrderCancelled,
			"Pedido cancelado",
			fmt.Sprintf("El pedido %s fue cancelado, detén su preparación", aggregate.Number()),
			related, notification.PriorityUrgent)
	} else if prepErr != nil && !errors.Is(prepErr, errs.ErrObjectNotFound) {
		return prepErr
	}

	if customer := aggregate.UserID(); customer != nil {
		h.notifier.Notify(ctx, *customer, notification.TypeOrderCancelled,
			"Pedido cancelado",
			fmt.Sprintf("El pedido %s fue cancelado", aggregate.Number()),
			related, notification.PriorityNormal)
	}
	return nil
}
