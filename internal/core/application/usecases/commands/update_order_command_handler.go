package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// UpdateOrderCommandHandler applies partial order updates under the
// role-specific rules:
//
//   - warehouse operators may only move an order to procesando, nothing else
//   - delivery confirmation is reserved for the customer who placed the
//     order; staff roles cannot confirm on their behalf
//   - every other authenticated role patches freely, subject to the
//     aggregate's terminal-state protection
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderCommandHandler creates a handler for order update operations.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order update command.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := services.Authorize(cmd.Actor().Role, services.PermOrderUpdate); err != nil {
		return err
	}

	patch := cmd.Patch()
	if cmd.Actor().Role == account.RoleBodega {
		if !patch.touchesOnlyStatus() || *patch.Status != order.StatusProcesando {
			return errs.NewForbiddenError(cmd.Actor().Role.String(), "update anything but status=procesando")
		}
	}
	if patch.ConfirmDelivery && !cmd.Actor().Role.IsCustomer() {
		return errs.NewForbiddenError(cmd.Actor().Role.String(), "confirm delivery on behalf of the customer")
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

	if err = h.apply(aggregate, cmd); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (h UpdateOrderCommandHandler) apply(aggregate *order.Order, cmd UpdateOrderCommand) error {
	actor, origin, patch := cmd.Actor(), cmd.Origin(), cmd.Patch()
	now := time.Now()

	if patch.ConfirmDelivery {
		if !aggregate.BelongsTo(actor.ID, actor.Email) {
			return errs.NewForbiddenError(actor.Role.String(), "confirm delivery of another customer's order")
		}
		return aggregate.ConfirmDelivery(actor.ID, origin, now)
	}

	if patch.Status != nil {
		if err := aggregate.ChangeStatus(*patch.Status, actor.ID, origin, now); err != nil {
			return err
		}
	}
	if patch.PaymentStatus != nil || patch.PaymentMethod != nil {
		status := aggregate.PaymentStatus()
		if patch.PaymentStatus != nil {
			status = *patch.PaymentStatus
		}
		method := aggregate.PaymentMethod()
		if patch.PaymentMethod != nil {
			method = *patch.PaymentMethod
		}
		if err := aggregate.SetPayment(status, method, actor.ID, origin, now); err != nil {
			return err
		}
	}
	if patch.TrackingNumber != nil {
		if err := aggregate.SetTracking(*patch.TrackingNumber, actor.ID, origin, now); err != nil {
			return err
		}
	}
	if patch.InternalNotes != nil {
		if err := aggregate.SetInternalNotes(*patch.InternalNotes, actor.ID, origin, now); err != nil {
			return err
		}
	}
	return nil
}
