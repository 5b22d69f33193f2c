package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/preparation"
	"fulfillment/internal/core/domain/model/quote"
)

func quoteItems() []quote.Item {
	return []quote.Item{
		{ProductID: "prod-001", ProductName: "Centrifuge X10", Quantity: 2, UnitPrice: 1200, Subtotal: 2400},
		{ProductID: "prod-002", ProductName: "Pipette Set", Quantity: 5, UnitPrice: 80, Subtotal: 400},
	}
}

func quoteCustomer(userID *kernel.UUID) quote.CustomerInfo {
	return quote.CustomerInfo{
		UserID:       userID,
		Name:         "Laura Mendez",
		Email:        "laura@acmelabs.example",
		Phone:        "+52 55 1234 5678",
		Organization: "Acme Labs",
	}
}

// approvedQuote builds a quote that passed both review stages.
func approvedQuote(t *testing.T, userID *kernel.UUID) *quote.Quote {
	t.Helper()
	now := time.Now()
	q, err := quote.NewQuote(kernel.NewUUID(), "QUO-2608-0042", quoteCustomer(userID), quoteItems(), "", now)
	require.NoError(t, err)
	require.NoError(t, q.SetPricing(2800, 0, 448, 3248, now))
	require.NoError(t, q.VendorApprove(kernel.NewUUID(), "", now))
	require.NoError(t, q.AdminApprove(kernel.NewUUID(), "", now))
	return q
}

func orderAddress() order.ShippingAddress {
	return order.ShippingAddress{Street: "Av. Reforma 123", City: "CDMX", Country: "MX"}
}

func pendingOrder(t *testing.T, userID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-2608-0100", &userID,
		"Laura Mendez", "laura@acmelabs.example",
		[]order.Item{{ProductID: "prod-001", ProductName: "Centrifuge X10", Quantity: 2, UnitPrice: 1200, Subtotal: 2400}},
		order.Totals{Subtotal: 2400, Tax: 384, Total: 2784}, orderAddress(), time.Now())
	require.NoError(t, err)
	return o
}

func preparedTracker(t *testing.T, orderID, operatorID kernel.UUID) *preparation.Preparation {
	t.Helper()
	p, err := preparation.NewAssignedPreparation(kernel.NewUUID(), orderID, "ORD-2608-0100",
		[]preparation.Item{{ProductID: "prod-001", ProductName: "Centrifuge X10", QuantityOrdered: 2}},
		operatorID, "Miguel Torres", preparation.AssignmentAuto, time.Now())
	require.NoError(t, err)
	items := p.Items()
	items[0].QuantityPrepared = 2
	items[0].IsPrepared = true
	require.NoError(t, p.RecordProgress(items, "", time.Now()))
	return p
}
