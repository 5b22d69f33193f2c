package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// DispatchOrderCommandHandler hands a prepared order to the carrier: the
// tracker moves to despachado and the order to enviado with the tracking
// number, in one transaction. The customer is alerted afterwards.
type DispatchOrderCommandHandler struct {
	uowFactory WarehouseUoWFactory
	identity   ports.IdentityProvider
	notifier   Notifier
}

// NewDispatchOrderCommandHandler creates a handler for order dispatch.
func NewDispatchOrderCommandHandler(uowFactory WarehouseUoWFactory, identity ports.IdentityProvider, notifier Notifier) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
	}
}

// Handle processes the dispatch command. Only a preparado tracker can be
// dispatched; the aggregate enforces the transition.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := services.Authorize(cmd.Actor().Role, services.PermWarehouseDispatch); err != nil {
		return err
	}

	dispatcher, err := h.identity.Get(ctx, cmd.Actor().ID)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	prepRepo := uow.PreparationRepository()
	orderRepo := uow.OrderRepository()

	tracker, err := prepRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if cmd.Actor().Role == account.RoleBodega && !tracker.IsAssignedTo(cmd.Actor().ID) {
		return errs.NewForbiddenError(cmd.Actor().Role.String(), "dispatch another operator's preparation")
	}

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = tracker.MarkDispatched(dispatcher.ID(), dispatcher.DisplayName(),
		cmd.Carrier(), cmd.TrackingNumber(), cmd.Notes(), now); err != nil {
		return err
	}
	if err = aggregate.MarkShipped(cmd.TrackingNumber(), cmd.Actor().ID, originWarehouse, now); err != nil {
		return err
	}

	if err = prepRepo.Update(ctx, tracker); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if customer := aggregate.UserID(); customer != nil {
		h.notifier.Notify(ctx, *customer, notification.TypeOrderDispatched,
			"Pedido enviado",
			fmt.Sprintf("El pedido %s fue enviado con %s", aggregate.Number(), cmd.Carrier()),
			notification.RelatedEntity{Kind: "order", ID: aggregate.ID(), Number: aggregate.Number()},
			notification.PriorityHigh)
	}
	return nil
}
