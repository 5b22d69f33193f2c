package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

func TestNewDispatchOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	actor := testActor(account.RoleBodega)

	cmd, err := commands.NewDispatchOrderCommand(orderID, actor, "DHL", "TRK-778", "sale por portón 2")
	require.NoError(t, err)

	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, actor, cmd.Actor())
	assert.Equal(t, "DHL", cmd.Carrier())
	assert.Equal(t, "TRK-778", cmd.TrackingNumber())
	assert.Equal(t, "sale por portón 2", cmd.Notes())
}

func TestNewDispatchOrderCommand_CarrierRequired(t *testing.T) {
	_, err := commands.NewDispatchOrderCommand(kernel.NewUUID(), testActor(account.RoleBodega), "", "TRK-778", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewDispatchOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewDispatchOrderCommand(kernel.UUID{}, testActor(account.RoleBodega), "DHL", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestDispatchOrderCommand_NotConstructedViaConstructor(t *testing.T) {
	var cmd commands.DispatchOrderCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrDispatchOrderCommandIsNotConstructed)
}
