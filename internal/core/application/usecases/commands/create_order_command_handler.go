package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

const originCheckout = "checkout"

// CreateOrderCommandHandler handles direct-checkout order creation: sequence
// number generation, persistence, and the new-order alert to administrators.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.IdentityProvider
	sequence   services.NumberSequence
	notifier   Notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, identity ports.IdentityProvider,
	sequence services.NumberSequence, notifier Notifier) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		sequence:   sequence,
		notifier:   notifier,
	}
}

// Handle processes the order creation command. The order starts in pendiente
// with payment pendiente; confirmation is a later, explicit step.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := services.Authorize(cmd.Actor().Role, services.PermOrderCreate); err != nil {
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
	number, err := h.sequence.GenerateUnique(ctx, orderRepo.ExistsByNumber)
	if err != nil {
		return err
	}

	now := time.Now()
	userID := cmd.Actor().ID
	aggregate, err := order.NewOrder(cmd.OrderID(), number, &userID,
		cmd.CustomerName(), cmd.CustomerEmail(), cmd.Items(), cmd.Totals(),
		cmd.ShippingAddress(), now)
	if err != nil {
		return err
	}
	aggregate.SetContactDetails(cmd.CustomerPhone(), cmd.Organization())
	aggregate.SetCustomerNotes(cmd.CustomerNotes())
	if cmd.PaymentMethod() != "" {
		if err = aggregate.SetPayment(order.PaymentPendiente, cmd.PaymentMethod(), userID, originCheckout, now); err != nil {
			return err
		}
	}
	if cmd.ShippingMethod() != "" {
		if err = aggregate.SetShipping(cmd.ShippingMethod(), cmd.ShippingAddress(), userID, originCheckout, now); err != nil {
			return err
		}
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	admins, adminErr := h.identity.GetActiveByRole(ctx, account.RoleAdmin)
	if adminErr == nil {
		h.notifier.Broadcast(ctx, admins, notification.TypeOrderNew,
			"Nuevo pedido",
			fmt.Sprintf("El pedido %s de %s espera confirmación", number, cmd.Organization()),
			notification.RelatedEntity{Kind: "order", ID: aggregate.ID(), Number: number},
			notification.PriorityHigh)
	}
	return nil
}
