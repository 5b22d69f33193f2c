package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

func checkoutItems() []order.Item {
	return []order.Item{
		{ProductID: "prod-1", ProductName: "Microscopio binocular", Quantity: 2, UnitPrice: 450, Subtotal: 900},
	}
}

func checkoutTotals() order.Totals {
	return order.Totals{Subtotal: 900, Tax: 171, Total: 1071}
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	actor := testActor(account.RoleCliente)

	cmd, err := commands.NewCreateOrderCommand(id, actor,
		"Laura Méndez", "laura@acmelabs.example", "+56 9 1234 5678", "Acme Labs",
		checkoutItems(), checkoutTotals(), order.MethodTransferencia,
		orderAddress(), "standard", "entregar en bodega 3")
	require.NoError(t, err)

	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, actor, cmd.Actor())
	assert.Equal(t, "Laura Méndez", cmd.CustomerName())
	assert.Len(t, cmd.Items(), 1)
	assert.Equal(t, 1071.0, cmd.Totals().Total)
	assert.Equal(t, order.MethodTransferencia, cmd.PaymentMethod())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, testActor(account.RoleCliente),
		"Laura Méndez", "laura@acmelabs.example", "", "",
		checkoutItems(), checkoutTotals(), order.MethodTransferencia,
		orderAddress(), "standard", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), testActor(account.RoleCliente),
		"Laura Méndez", "laura@acmelabs.example", "", "",
		nil, checkoutTotals(), order.MethodTransferencia,
		orderAddress(), "standard", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnprocessable)
}

func TestCreateOrderCommand_NotConstructedViaConstructor(t *testing.T) {
	var cmd commands.CreateOrderCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
