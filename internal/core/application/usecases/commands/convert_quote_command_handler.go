package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/preparation"
	"fulfillment/internal/core/domain/model/quote"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const originConversion = "conversion"

// ConvertQuoteCommandHandler turns a fully approved quote into an order. The
// quote's convertida transition and the order creation commit in a single
// transaction; warehouse assignment runs afterwards and degrades to an
// unassigned preparation plus a roster broadcast when no operator can be
// chosen. Assignment problems never roll the conversion back.
type ConvertQuoteCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.IdentityProvider
	sequence   services.NumberSequence
	notifier   Notifier
	logger     *slog.Logger
}

// NewConvertQuoteCommandHandler creates a handler for quote conversion.
func NewConvertQuoteCommandHandler(uowFactory UoWFactory, identity ports.IdentityProvider,
	sequence services.NumberSequence, notifier Notifier, logger *slog.Logger) ConvertQuoteCommandHandler {
	return ConvertQuoteCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		sequence:   sequence,
		notifier:   notifier,
		logger:     logger.With("component", "convert_quote"),
	}
}

// Handle processes the conversion command.
func (h ConvertQuoteCommandHandler) Handle(ctx context.Context, cmd ConvertQuoteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := services.Authorize(cmd.Actor().Role, services.PermQuoteConvert); err != nil {
		return err
	}

	aggregate, newOrder, err := h.convert(ctx, cmd)
	if err != nil {
		return err
	}

	h.assignPreparation(ctx, newOrder)
	h.notifyConversion(ctx, aggregate, newOrder)
	return nil
}

func (h ConvertQuoteCommandHandler) convert(ctx context.Context, cmd ConvertQuoteCommand) (*quote.Quote, *order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	quoteRepo := uow.QuoteRepository()
	orderRepo := uow.OrderRepository()

	aggregate, err := quoteRepo.Get(ctx, cmd.QuoteID())
	if err != nil {
		return nil, nil, err
	}

	// Customers may only convert their own quotes.
	if cmd.Actor().Role.IsCustomer() && !h.ownsQuote(aggregate, cmd.Actor()) {
		return nil, nil, errs.NewForbiddenError(cmd.Actor().Role.String(), "convert another customer's quote")
	}

	number, err := h.sequence.GenerateUnique(ctx, orderRepo.ExistsByNumber)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	newOrder, err := h.buildOrder(cmd, aggregate, number, now)
	if err != nil {
		return nil, nil, err
	}

	if err = aggregate.ConvertToOrder(newOrder.ID(), number, now); err != nil {
		return nil, nil, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return nil, nil, err
	}
	if err = quoteRepo.Update(ctx, aggregate); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return aggregate, newOrder, nil
}

func (h ConvertQuoteCommandHandler) ownsQuote(aggregate *quote.Quote, actor Actor) bool {
	customer := aggregate.Customer()
	if customer.UserID != nil && customer.UserID.IsEqual(actor.ID) {
		return true
	}
	return actor.Email != "" && customer.Email == actor.Email
}

func (h ConvertQuoteCommandHandler) buildOrder(cmd ConvertQuoteCommand, aggregate *quote.Quote, number string, now time.Time) (*order.Order, error) {
	items := make([]order.Item, 0, len(aggregate.Items()))
	for _, it := range aggregate.Items() {
		items = append(items, order.Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
			Notes:       it.Notes,
		})
	}

	customer := aggregate.Customer()
	newOrder, err := order.NewOrder(cmd.OrderID(), number, customer.UserID,
		customer.Name, customer.Email, items,
		order.Totals{
			Subtotal: aggregate.Subtotal(),
			Discount: aggregate.Discount(),
			Tax:      aggregate.Tax(),
			Total:    aggregate.Total(),
		},
		cmd.ShippingAddress(), now)
	if err != nil {
		return nil, err
	}

	newOrder.SetContactDetails(customer.Phone, customer.Organization)
	newOrder.SetCustomerNotes(cmd.CustomerNotes())
	if err = newOrder.LinkQuote(aggregate.ID(), aggregate.Number()); err != nil {
		return nil, err
	}
	if cmd.PaymentMethod() != "" {
		if err = newOrder.SetPayment(order.PaymentPendiente, cmd.PaymentMethod(), cmd.Actor().ID, originConversion, now); err != nil {
			return nil, err
		}
	}
	if cmd.ShippingMethod() != "" {
		if err = newOrder.SetShipping(cmd.ShippingMethod(), cmd.ShippingAddress(), cmd.Actor().ID, originConversion, now); err != nil {
			return nil, err
		}
	}

	// A converted order is immediately confirmed; the warehouse can start on it.
	if err = newOrder.ChangeStatus(order.StatusConfirmado, cmd.Actor().ID, originConversion, now); err != nil {
		return nil, err
	}
	return newOrder, nil
}

// assignPreparation opens the warehouse tracker for the new order. Runs in
// its own transaction after the conversion commit.
func (h ConvertQuoteCommandHandler) assignPreparation(ctx context.Context, newOrder *order.Order) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.Error("cannot open assignment transaction", "order", newOrder.Number(), "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	prepRepo := uow.PreparationRepository()
	items := trackerItems(newOrder)
	now := time.Now()

	picker := newOperatorPicker(h.identity)
	winner, pickErr := picker.pick(ctx, prepRepo, nil)

	var tracker *preparation.Preparation
	var err error
	if pickErr != nil {
		tracker, err = preparation.NewPreparation(kernel.NewUUID(), newOrder.ID(), newOrder.Number(), items, now)
	} else {
		tracker, err = preparation.NewAssignedPreparation(kernel.NewUUID(), newOrder.ID(), newOrder.Number(),
			items, winner.OperatorID, winner.OperatorName, preparation.AssignmentAuto, now)
	}
	if err != nil {
		h.logger.Error("cannot build preparation tracker", "order", newOrder.Number(), "error", err)
		return
	}

	if err = prepRepo.Add(ctx, tracker); err != nil {
		h.logger.Error("cannot persist preparation tracker", "order", newOrder.Number(), "error", err)
		return
	}
	if err = uow.Commit(ctx); err != nil {
		h.logger.Error("cannot commit preparation tracker", "order", newOrder.Number(), "error", err)
		return
	}

	related := notification.RelatedEntity{Kind: "order", ID: newOrder.ID(), Number: newOrder.Number()}
	if pickErr != nil {
		h.logger.Warn("no operator available, broadcasting to roster", "order", newOrder.Number(), "error", pickErr)
		roster, rosterErr := h.identity.GetActiveByRole(ctx, account.RoleBodega)
		if rosterErr != nil {
			h.logger.Error("cannot load warehouse roster", "error", rosterErr)
			return
		}
		h.notifier.Broadcast(ctx, roster, notification.TypeOrderNew,
			"Pedido sin asignar",
			fmt.Sprintf("El pedido %s espera preparación", newOrder.Number()),
			related, notification.PriorityUrgent)
		return
	}

	h.notifier.Notify(ctx, winner.OperatorID, notification.TypeOrderAssigned,
		"Nuevo pedido asignado",
		fmt.Sprintf("Se te asignó la preparación del pedido %s", newOrder.Number()),
		related, notification.PriorityHigh)
}

func (h ConvertQuoteCommandHandler) notifyConversion(ctx context.Context, aggregate *quote.Quote, newOrder *order.Order) {
	related := notification.RelatedEntity{Kind: "order", ID: newOrder.ID(), Number: newOrder.Number()}
	message := fmt.Sprintf("La cotización %s se convirtió en el pedido %s", aggregate.Number(), newOrder.Number())

	if rep := aggregate.AssignedRep(); rep != nil {
		h.notifier.Notify(ctx, *rep, notification.TypeQuoteConverted,
			"Cotización convertida", message, related, notification.PriorityNormal)
	}
	if customer := aggregate.Customer().UserID; customer != nil {
		h.notifier.Notify(ctx, *customer, notification.TypeQuoteConverted,
			"Pedido creado", message, related, notification.PriorityNormal)
	}
}

// trackerItems mirrors the order lines into preparation tracker lines with
// zero progress.
func trackerItems(o *order.Order) []preparation.Item {
	items := make([]preparation.Item, 0, o.ItemCount())
	for _, it := range o.Items() {
		items = append(items, preparation.Item{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			QuantityOrdered: it.Quantity,
		})
	}
	return items
}
