package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/preparation"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const originWarehouse = "warehouse"

// OpenPreparationCommandHandler opens the picking tracker for an order. The
// order must be confirmado or procesando; an order already being prepared by
// someone (a non-pendiente tracker) yields Conflict. A leftover pendiente
// tracker from a failed auto-assignment is claimed instead of duplicated.
type OpenPreparationCommandHandler struct {
	uowFactory WarehouseUoWFactory
	identity   ports.IdentityProvider
}

// NewOpenPreparationCommandHandler creates a handler for opening preparations.
func NewOpenPreparationCommandHandler(uowFactory WarehouseUoWFactory, identity ports.IdentityProvider) OpenPreparationCommandHandler {
	return OpenPreparationCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

// Handle processes the open-preparation command. The order advances to
// procesando in the same transaction as the tracker.
func (h OpenPreparationCommandHandler) Handle(ctx context.Context, cmd OpenPreparationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := services.Authorize(cmd.Actor().Role, services.PermWarehousePrepare); err != nil {
		return err
	}

	operatorID := cmd.Actor().ID
	if cmd.OperatorID() != nil {
		operatorID = *cmd.OperatorID()
	}
	operator, err := h.identity.Get(ctx, operatorID)
	if err != nil {
		return err
	}
	if operator.Role() != account.RoleBodega || !operator.IsActive() {
		return errs.NewValueIsInvalidError("operatorId")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	prepRepo := uow.PreparationRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !aggregate.Status().CanPrepare() {
		return errs.NewInvalidStateError("order", aggregate.Status().String())
	}

	now := time.Now()
	existing, err := prepRepo.GetByOrderID(ctx, aggregate.ID())
	switch {
	case err == nil && existing.Status() != preparation.StatusPendiente:
		return errs.NewConflictError("order already has an active preparation")
	case err == nil:
		// Claim the unassigned leftover from a failed auto-assignment.
		if err = existing.Assign(operator.ID(), operator.DisplayName(), cmd.Actor().ID, preparation.AssignmentManual, now); err != nil {
			return err
		}
		if err = prepRepo.Update(ctx, existing); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		tracker, buildErr := preparation.NewAssignedPreparation(kernel.NewUUID(), aggregate.ID(), aggregate.Number(),
			trackerItems(aggregate), operator.ID(), operator.DisplayName(), preparation.AssignmentManual, now)
		if buildErr != nil {
			return buildErr
		}
		tracker.SetNotes(cmd.Notes())
		if err = prepRepo.Add(ctx, tracker); err != nil {
			return err
		}
	default:
		return err
	}

	if aggregate.Status() != order.StatusProcesando {
		if err = aggregate.ChangeStatus(order.StatusProcesando, cmd.Actor().ID, originWarehouse, now); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
