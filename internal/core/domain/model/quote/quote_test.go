package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

func testCustomer() CustomerInfo {
	return CustomerInfo{
		Name:         "Laura Mendez",
		Email:        "laura@acmelabs.example",
		Phone:        "+52 55 1234 5678",
		Organization: "Acme Labs",
	}
}

func testItems() []Item {
	return []Item{
		{ProductID: "prod-001", ProductName: "Centrifuge X10", Quantity: 2},
		{ProductID: "prod-002", ProductName: "Microscope M3", Quantity: 1},
	}
}

func newTestQuote(t *testing.T) *Quote {
	t.Helper()
	q, err := NewQuote(kernel.NewUUID(), "QUO-2608-0042", testCustomer(), testItems(), "need it soon", time.Now())
	require.NoError(t, err)
	return q
}

func Test_NewQuote(t *testing.T) {
	// Given
	now := time.Now()

	// When
	q, err := NewQuote(kernel.NewUUID(), "QUO-2608-0042", testCustomer(), testItems(), "hola", now)

	// Then
	require.NoError(t, err)
	assert.Equal(t, StatusPendiente, q.Status())
	assert.Equal(t, "QUO-2608-0042", q.Number())
	assert.Len(t, q.Items(), 2)
	assert.False(t, q.IsPriced())
	assert.Nil(t, q.OrderID())
}

func Test_NewQuote_RequiresItemsAndContact(t *testing.T) {
	now := time.Now()

	_, err := NewQuote(kernel.NewUUID(), "QUO-2608-0042", testCustomer(), nil, "", now)
	assert.ErrorIs(t, err, errs.ErrUnprocessable)

	incomplete := testCustomer()
	incomplete.Phone = ""
	_, err = NewQuote(kernel.NewUUID(), "QUO-2608-0042", incomplete, testItems(), "", now)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	bad := testItems()
	bad[0].Quantity = 0
	_, err = NewQuote(kernel.NewUUID(), "QUO-2608-0042", testCustomer(), bad, "", now)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_Quote_TwoStageApproval(t *testing.T) {
	// Given
	q := newTestQuote(t)
	vendor := kernel.NewUUID()
	admin := kernel.NewUUID()
	now := time.Now()

	// When
	require.NoError(t, q.SetPricing(100, 0, 16, 116, now))
	require.NoError(t, q.VendorApprove(vendor, "priced and checked", now))

	// Then
	assert.Equal(t, StatusAprobadoVendedor, q.Status())
	require.NotNil(t, q.Stamps().VendorReviewedBy)
	assert.True(t, q.Stamps().VendorReviewedBy.IsEqual(vendor))

	// When
	require.NoError(t, q.AdminApprove(admin, "", now))

	// Then
	assert.Equal(t, StatusAprobado, q.Status())
	require.NotNil(t, q.Stamps().AdminReviewedAt)
}

func Test_Quote_AdminReviewRequiresVendorApproval(t *testing.T) {
	q := newTestQuote(t)

	err := q.AdminApprove(kernel.NewUUID(), "", time.Now())

	assert.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, StatusPendiente, q.Status())
}

func Test_Quote_VendorReject_RecordsReason(t *testing.T) {
	q := newTestQuote(t)

	require.NoError(t, q.VendorReject(kernel.NewUUID(), "", "out of catalog", time.Now()))

	assert.Equal(t, StatusRechazadoVendedor, q.Status())
	assert.Equal(t, "out of catalog", q.RejectionReason())

	// first-stage rejection is terminal
	err := q.VendorApprove(kernel.NewUUID(), "", time.Now())
	assert.ErrorIs(t, err, errs.ErrInvalidState)
}

func Test_Quote_ConvertToOrder(t *testing.T) {
	// Given
	q := newTestQuote(t)
	now := time.Now()
	require.NoError(t, q.SetPricing(100, 0, 16, 116, now))
	require.NoError(t, q.VendorApprove(kernel.NewUUID(), "", now))
	require.NoError(t, q.AdminApprove(kernel.NewUUID(), "", now))
	orderID := kernel.NewUUID()

	// When
	err := q.ConvertToOrder(orderID, "ORD-2608-0100", now)

	// Then
	require.NoError(t, err)
	assert.Equal(t, StatusConvertida, q.Status())
	require.NotNil(t, q.OrderID())
	assert.True(t, q.OrderID().IsEqual(orderID))
	assert.Equal(t, "ORD-2608-0100", q.OrderNumber())
}

func Test_Quote_ConvertToOrder_OnlyOnce(t *testing.T) {
	q := newTestQuote(t)
	now := time.Now()
	require.NoError(t, q.SetPricing(100, 0, 16, 116, now))
	require.NoError(t, q.VendorApprove(kernel.NewUUID(), "", now))
	require.NoError(t, q.AdminApprove(kernel.NewUUID(), "", now))
	require.NoError(t, q.ConvertToOrder(kernel.NewUUID(), "ORD-2608-0100", now))

	err := q.ConvertToOrder(kernel.NewUUID(), "ORD-2608-0101", now)

	assert.ErrorIs(t, err, errs.ErrConflict)
}

func Test_Quote_ConvertToOrder_RequiresApprovalAndPricing(t *testing.T) {
	now := time.Now()

	t.Run("not approved", func(t *testing.T) {
		q := newTestQuote(t)
		require.NoError(t, q.SetPricing(100, 0, 16, 116, now))

		err := q.ConvertToOrder(kernel.NewUUID(), "ORD-2608-0100", now)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("not priced", func(t *testing.T) {
		q := newTestQuote(t)
		require.NoError(t, q.VendorApprove(kernel.NewUUID(), "", now))
		require.NoError(t, q.AdminApprove(kernel.NewUUID(), "", now))

		err := q.ConvertToOrder(kernel.NewUUID(), "ORD-2608-0100", now)

		assert.ErrorIs(t, err, errs.ErrUnprocessable)
	})
}

func Test_Quote_Expire(t *testing.T) {
	q := newTestQuote(t)

	require.NoError(t, q.Expire(time.Now()))
	assert.Equal(t, StatusVencida, q.Status())

	err := q.Expire(time.Now())
	assert.ErrorIs(t, err, errs.ErrInvalidState)
}

func Test_Quote_AssignSalesRep(t *testing.T) {
	q := newTestQuote(t)
	rep := kernel.NewUUID()

	require.NoError(t, q.AssignSalesRep(rep, "Pedro Ruiz", time.Now()))

	assert.True(t, q.IsAssignedTo(rep))
	assert.False(t, q.IsAssignedTo(kernel.NewUUID()))
	assert.Equal(t, "Pedro Ruiz", q.AssignedRepName())
}

func Test_Quote_Validate_RejectsZeroValue(t *testing.T) {
	var q Quote
	assert.ErrorIs(t, q.Validate(), ErrQuoteIsNotConstructed)

	assert.NoError(t, newTestQuote(t).Validate())
}
