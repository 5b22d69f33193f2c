package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// RecordProgressCommandHandler applies a picking progress report to the
// order's preparation tracker. Warehouse operators may only report on
// preparations assigned to them; administrators may report on any.
type RecordProgressCommandHandler struct {
	uowFactory WarehouseUoWFactory
}

// NewRecordProgressCommandHandler creates a handler for progress reports.
func NewRecordProgressCommandHandler(uowFactory WarehouseUoWFactory) RecordProgressCommandHandler {
	return RecordProgressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the progress report. Status transitions (en_preparacion on
// first report, preparado when every line is picked) happen inside the
// aggregate.
func (h RecordProgressCommandHandler) Handle(ctx context.Context, cmd RecordProgressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := services.Authorize(cmd.Actor().Role, services.PermWarehousePrepare); err != nil {
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

	if cmd.Actor().Role == account.RoleBodega && !tracker.IsAssignedTo(cmd.Actor().ID) {
		return errs.NewForbiddenError(cmd.Actor().Role.String(), "report progress on another operator's preparation")
	}

	if err = tracker.RecordProgress(cmd.Items(), cmd.Notes(), time.Now()); err != nil {
		return err
	}

	if err = prepRepo.Update(ctx, tracker); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
