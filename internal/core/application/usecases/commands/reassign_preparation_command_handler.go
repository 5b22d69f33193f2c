package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/preparation"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ReassignPreparationCommandHandler moves a preparation between operators.
// Prepared and dispatched trackers cannot move; picking already underway is
// reset to asignado for the new operator. Both the previous and the new
// assignee are alerted.
type ReassignPreparationCommandHandler struct {
	uowFactory WarehouseUoWFactory
	identity   ports.IdentityProvider
	notifier   Notifier
}

// NewReassignPreparationCommandHandler creates a handler for reassignment.
func NewReassignPreparationCommandHandler(uowFactory WarehouseUoWFactory, identity ports.IdentityProvider, notifier Notifier) ReassignPreparationCommandHandler {
	return ReassignPreparationCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
	}
}

// Handle processes the reassignment command. An explicit target must be an
// active warehouse operator; without a target the workload dispatcher picks
// the least-loaded operator excluding the current assignee.
func (h ReassignPreparationCommandHandler) Handle(ctx context.Context, cmd ReassignPreparationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := services.Authorize(cmd.Actor().Role, services.PermWarehouseReassign); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	prepRepo := uow.PreparationRepository()
	tracker, err := prepRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !tracker.Status().CanReassign() {
		return errs.NewInvalidStateError("preparation", tracker.Status().String())
	}

	previous := tracker.Assignment().Operator

	targetID, targetName, err := h.resolveTarget(ctx, cmd, prepRepo, previous)
	if err != nil {
		return err
	}

	if err = tracker.Assign(targetID, targetName, cmd.Actor().ID, preparation.AssignmentManual, time.Now()); err != nil {
		return err
	}
	if cmd.Reason() != "" {
		tracker.SetNotes(fmt.Sprintf("reasignado: %s", cmd.Reason()))
	}

	if err = prepRepo.Update(ctx, tracker); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyReassignment(ctx, tracker, previous, targetID)
	return nil
}

func (h ReassignPreparationCommandHandler) resolveTarget(ctx context.Context, cmd ReassignPreparationCommand,
	prepRepo ports.PreparationRepository, previous *kernel.UUID) (kernel.UUID, string, error) {
	if cmd.TargetID() != nil {
		target, err := h.identity.Get(ctx, *cmd.TargetID())
		if err != nil {
			return kernel.UUID{}, "", err
		}
		if target.Role() != account.RoleBodega || !target.IsActive() {
			return kernel.UUID{}, "", errs.NewValueIsInvalidError("operatorId")
		}
		return target.ID(), target.DisplayName(), nil
	}

	picker := newOperatorPicker(h.identity)
	winner, err := picker.pick(ctx, prepRepo, previous)
	if err != nil {
		return kernel.UUID{}, "", err
	}
	return winner.OperatorID, winner.OperatorName, nil
}

func (h ReassignPreparationCommandHandler) notifyReassignment(ctx context.Context, tracker *preparation.Preparation,
	previous *kernel.UUID, target kernel.UUID) {
	related := notification.RelatedEntity{Kind: "order", ID: tracker.OrderID(), Number: tracker.OrderNumber()}

	h.notifier.Notify(ctx, target, notification.TypeOrderReassigned,
		"Pedido reasignado",
		fmt.Sprintf("Se te asignó la preparación del pedido %s", tracker.OrderNumber()),
		related, notification.PriorityHigh)

	if previous != nil && !previous.IsEqual(target) {
		h.notifier.Notify(ctx, *previous, notification.TypeOrderReassigned,
			"Pedido reasignado",
			fmt.Sprintf("El pedido %s pasó a otro operador", tracker.OrderNumber()),
			related, notification.PriorityNormal)
	}
}
