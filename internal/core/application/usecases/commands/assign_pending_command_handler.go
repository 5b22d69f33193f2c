package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/preparation"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// AssignPendingCommandHandler retries operator assignment for preparations
// left unassigned by the conversion fallback. An empty roster is a
// business-expected outcome, not an error: the sweep leaves the trackers
// pendiente for the next run.
type AssignPendingCommandHandler struct {
	uowFactory WarehouseUoWFactory
	identity   ports.IdentityProvider
	notifier   Notifier
	logger     *slog.Logger
}

// NewAssignPendingCommandHandler creates a handler for the assignment sweep.
func NewAssignPendingCommandHandler(uowFactory WarehouseUoWFactory, identity ports.IdentityProvider,
	notifier Notifier, logger *slog.Logger) AssignPendingCommandHandler {
	return AssignPendingCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
		logger:     logger.With("component", "assign_pending"),
	}
}

// Handle processes the sweep. Returns the number of preparations assigned.
func (h AssignPendingCommandHandler) Handle(ctx context.Context, cmd AssignPendingCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	prepRepo := uow.PreparationRepository()
	pending, err := prepRepo.GetUnassigned(ctx)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		h.logger.Debug("no unassigned preparations")
		return 0, nil
	}

	picker := newOperatorPicker(h.identity)
	assigned := make([]*preparation.Preparation, 0, len(pending))
	for _, tracker := range pending {
		winner, pickErr := picker.pick(ctx, prepRepo, nil)
		if errors.Is(pickErr, errs.ErrUnavailable) {
			h.logger.Debug("no operators available, leaving sweep for next run")
			break
		}
		if pickErr != nil {
			return 0, pickErr
		}

		if err = tracker.Assign(winner.OperatorID, winner.OperatorName, kernel.UUID{}, preparation.AssignmentAuto, time.Now()); err != nil {
			return 0, err
		}
		if err = prepRepo.Update(ctx, tracker); err != nil {
			return 0, err
		}
		assigned = append(assigned, tracker)
	}

	if len(assigned) == 0 {
		return 0, nil
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, tracker := range assigned {
		operator := tracker.Assignment().Operator
		if operator == nil {
			continue
		}
		h.notifier.Notify(ctx, *operator, notification.TypeOrderAssigned,
			"Nuevo pedido asignado",
			fmt.Sprintf("Se te asignó la preparación del pedido %s", tracker.OrderNumber()),
			notification.RelatedEntity{Kind: "order", ID: tracker.OrderID(), Number: tracker.OrderNumber()},
			notification.PriorityHigh)
	}
	return len(assigned), nil
}
