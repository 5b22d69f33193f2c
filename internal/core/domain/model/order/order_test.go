package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

func testItems() []Item {
	return []Item{
		{ProductID: "prod-001", ProductName: "Centrifuge X10", Quantity: 2, UnitPrice: 1200, Subtotal: 2400},
		{ProductID: "prod-002", ProductName: "Pipette Set", Quantity: 5, UnitPrice: 80, Subtotal: 400},
	}
}

func testAddress() ShippingAddress {
	return ShippingAddress{
		Street: "Av. Reforma 123", City: "CDMX", State: "CDMX",
		ZipCode: "06600", Country: "MX", ContactName: "Laura Mendez",
	}
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	userID := kernel.NewUUID()
	o, err := NewOrder(kernel.NewUUID(), "ORD-2608-0100", &userID,
		"Laura Mendez", "laura@acmelabs.example", testItems(),
		Totals{Subtotal: 2800, Tax: 448, Total: 3248}, testAddress(), time.Now())
	require.NoError(t, err)
	return o
}

func Test_NewOrder(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, StatusPendiente, o.Status())
	assert.Equal(t, PaymentPendiente, o.PaymentStatus())
	assert.Equal(t, 2, o.ItemCount())
	assert.Nil(t, o.Timestamps().ConfirmedAt)
}

func Test_NewOrder_Validation(t *testing.T) {
	now := time.Now()

	_, err := NewOrder(kernel.NewUUID(), "ORD-2608-0100", nil, "Laura", "l@x.example",
		nil, Totals{Total: 10}, testAddress(), now)
	assert.ErrorIs(t, err, errs.ErrUnprocessable)

	_, err = NewOrder(kernel.NewUUID(), "ORD-2608-0100", nil, "Laura", "l@x.example",
		testItems(), Totals{Total: 0}, testAddress(), now)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = NewOrder(kernel.NewUUID(), "ORD-2608-0100", nil, "Laura", "l@x.example",
		testItems(), Totals{Total: 10}, ShippingAddress{City: "CDMX"}, now)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func Test_Order_ChangeStatus_StampsFirstOccurrence(t *testing.T) {
	// Given
	o := newTestOrder(t)
	actor := kernel.NewUUID()
	first := time.Now()

	// When
	require.NoError(t, o.ChangeStatus(StatusConfirmado, actor, "web", first))
	confirmedAt := o.Timestamps().ConfirmedAt
	require.NoError(t, o.ChangeStatus(StatusProcesando, actor, "web", first.Add(time.Hour)))
	require.NoError(t, o.ChangeStatus(StatusConfirmado, actor, "web", first.Add(2*time.Hour)))

	// Then: revisiting confirmado does not move the milestone
	require.NotNil(t, confirmedAt)
	assert.Equal(t, *confirmedAt, *o.Timestamps().ConfirmedAt)
	assert.Equal(t, "web", o.UpdateOrigin())
	require.NotNil(t, o.UpdatedBy())
	assert.True(t, o.UpdatedBy().IsEqual(actor))
}

func Test_Order_TerminalStatusesAreImmutable(t *testing.T) {
	actor := kernel.NewUUID()
	now := time.Now()

	t.Run("cancelled", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel(actor, "web", now))
		require.NotNil(t, o.Timestamps().CancelledAt)

		assert.ErrorIs(t, o.ChangeStatus(StatusConfirmado, actor, "web", now), errs.ErrInvalidState)
		assert.ErrorIs(t, o.Cancel(actor, "web", now), errs.ErrInvalidState)
		assert.ErrorIs(t, o.SetPayment(PaymentPagado, "", actor, "web", now), errs.ErrInvalidState)
		assert.ErrorIs(t, o.SetTracking("TRK-1", actor, "web", now), errs.ErrInvalidState)
	})

	t.Run("delivered", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.MarkShipped("TRK-1", actor, "warehouse", now))
		require.NoError(t, o.ConfirmDelivery(actor, "web", now))

		assert.ErrorIs(t, o.ChangeStatus(StatusProcesando, actor, "web", now), errs.ErrInvalidState)
		assert.ErrorIs(t, o.Cancel(actor, "web", now), errs.ErrInvalidState)
	})
}

func Test_Order_ConfirmDelivery(t *testing.T) {
	actor := kernel.NewUUID()
	now := time.Now()

	t.Run("from enviado", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.MarkShipped("TRK-1", actor, "warehouse", now))

		require.NoError(t, o.ConfirmDelivery(actor, "web", now))

		assert.Equal(t, StatusEntregado, o.Status())
		assert.NotNil(t, o.Timestamps().DeliveredAt)
		assert.NotNil(t, o.Timestamps().DeliveryConfirmedAt)
	})

	t.Run("idempotent when already delivered", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.MarkShipped("TRK-1", actor, "warehouse", now))
		require.NoError(t, o.ConfirmDelivery(actor, "web", now))
		deliveredAt := o.Timestamps().DeliveredAt

		require.NoError(t, o.ConfirmDelivery(actor, "web", now.Add(time.Hour)))

		assert.Equal(t, *deliveredAt, *o.Timestamps().DeliveredAt)
	})

	t.Run("rejected before shipping", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ConfirmDelivery(actor, "web", now)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func Test_Order_MarkShipped(t *testing.T) {
	o := newTestOrder(t)
	actor := kernel.NewUUID()

	require.NoError(t, o.MarkShipped("TRK-9000", actor, "warehouse", time.Now()))

	assert.Equal(t, StatusEnviado, o.Status())
	assert.Equal(t, "TRK-9000", o.TrackingNumber())
	assert.NotNil(t, o.Timestamps().ShippedAt)
}

func Test_Order_BelongsTo(t *testing.T) {
	o := newTestOrder(t)

	assert.True(t, o.BelongsTo(*o.UserID(), ""))
	assert.True(t, o.BelongsTo(kernel.NewUUID(), "laura@acmelabs.example"))
	assert.False(t, o.BelongsTo(kernel.NewUUID(), "other@x.example"))
}

func Test_Order_LinkQuote(t *testing.T) {
	o := newTestOrder(t)
	quoteID := kernel.NewUUID()

	require.NoError(t, o.LinkQuote(quoteID, "QUO-2608-0042"))

	require.NotNil(t, o.QuoteID())
	assert.True(t, o.QuoteID().IsEqual(quoteID))
	assert.Equal(t, "QUO-2608-0042", o.QuoteNumber())
}

func Test_Order_Validate_RejectsZeroValue(t *testing.T) {
	var o Order
	assert.ErrorIs(t, o.Validate(), ErrOrderIsNotConstructed)
}
