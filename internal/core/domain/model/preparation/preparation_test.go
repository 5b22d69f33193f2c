package preparation

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
		{ProductID: "prod-001", ProductName: "Centrifuge X10", QuantityOrdered: 2},
		{ProductID: "prod-002", ProductName: "Pipette Set", QuantityOrdered: 5},
		{ProductID: "prod-003", ProductName: "Beaker 500ml", QuantityOrdered: 10},
	}
}

func newAssigned(t *testing.T) *Preparation {
	t.Helper()
	p, err := NewAssignedPreparation(kernel.NewUUID(), kernel.NewUUID(), "ORD-2608-0100",
		testItems(), kernel.NewUUID(), "Miguel Torres", AssignmentAuto, time.Now())
	require.NoError(t, err)
	return p
}

func Test_NewPreparation_Unassigned(t *testing.T) {
	p, err := NewPreparation(kernel.NewUUID(), kernel.NewUUID(), "ORD-2608-0100", testItems(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, StatusPendiente, p.Status())
	assert.Nil(t, p.Assignment().Operator)
	assert.Equal(t, 3, p.TotalItems())
	assert.Equal(t, 0, p.PreparedItems())
	assert.Equal(t, 0, p.Progress())
	assert.Equal(t, 3*2+5, p.EstimatedMinutes())
}

func Test_NewAssignedPreparation(t *testing.T) {
	p := newAssigned(t)

	assert.Equal(t, StatusAsignado, p.Status())
	require.NotNil(t, p.Assignment().Operator)
	assert.Equal(t, "Miguel Torres", p.Assignment().OperatorName)
	assert.Equal(t, AssignmentAuto, p.Assignment().AssignedBy)
	assert.Nil(t, p.Reassignment().From)
}

func Test_Preparation_RecordProgress(t *testing.T) {
	// Given
	p := newAssigned(t)
	now := time.Now()
	items := testItems()
	items[0].QuantityPrepared = 2
	items[0].IsPrepared = true

	// When: first report moves the tracker to en_preparacion
	require.NoError(t, p.RecordProgress(items, "started picking", now))

	// Then
	assert.Equal(t, StatusEnPreparacion, p.Status())
	assert.Equal(t, 1, p.PreparedItems())
	assert.Equal(t, 33, p.Progress())
	require.NotNil(t, p.StartedAt())
	assert.Nil(t, p.CompletedAt())

	// When: every line picked
	for i := range items {
		items[i].QuantityPrepared = items[i].QuantityOrdered
		items[i].IsPrepared = true
	}
	require.NoError(t, p.RecordProgress(items, "", now.Add(time.Hour)))

	// Then
	assert.Equal(t, StatusPreparado, p.Status())
	assert.Equal(t, 100, p.Progress())
	require.NotNil(t, p.CompletedAt())
}

func Test_Preparation_RecordProgress_RejectsBadItems(t *testing.T) {
	p := newAssigned(t)

	assert.ErrorIs(t, p.RecordProgress(nil, "", time.Now()), errs.ErrUnprocessable)

	bad := testItems()
	bad[1].QuantityOrdered = 0
	assert.ErrorIs(t, p.RecordProgress(bad, "", time.Now()), errs.ErrUnprocessable)
}

func Test_Preparation_MarkDispatched(t *testing.T) {
	// Given
	p := newAssigned(t)
	items := testItems()
	for i := range items {
		items[i].QuantityPrepared = items[i].QuantityOrdered
		items[i].IsPrepared = true
	}
	require.NoError(t, p.RecordProgress(items, "", time.Now()))
	dispatcher := kernel.NewUUID()

	// When
	err := p.MarkDispatched(dispatcher, "Miguel Torres", "DHL", "TRK-9000", "fragile", time.Now())

	// Then
	require.NoError(t, err)
	assert.Equal(t, StatusDespachado, p.Status())
	assert.Equal(t, "DHL", p.Dispatch().Carrier)
	assert.Equal(t, "TRK-9000", p.Dispatch().TrackingNumber)
	require.NotNil(t, p.Dispatch().At)

	// despachado is terminal
	assert.ErrorIs(t, p.RecordProgress(items, "", time.Now()), errs.ErrInvalidState)
	assert.ErrorIs(t, p.Assign(kernel.NewUUID(), "x", kernel.NewUUID(), AssignmentManual, time.Now()), errs.ErrInvalidState)
}

func Test_Preparation_MarkDispatched_RequiresPreparado(t *testing.T) {
	p := newAssigned(t)

	err := p.MarkDispatched(kernel.NewUUID(), "Miguel", "DHL", "TRK-1", "", time.Now())

	assert.ErrorIs(t, err, errs.ErrInvalidState)
}

func Test_Preparation_Reassign(t *testing.T) {
	// Given: picking already underway
	p := newAssigned(t)
	original := *p.Assignment().Operator
	items := testItems()
	items[0].IsPrepared = true
	require.NoError(t, p.RecordProgress(items, "", time.Now()))
	require.Equal(t, StatusEnPreparacion, p.Status())

	admin := kernel.NewUUID()
	target := kernel.NewUUID()

	// When
	require.NoError(t, p.Assign(target, "Sofia Vargas", admin, AssignmentManual, time.Now()))

	// Then: tracker resets to asignado and the trail records the change
	assert.Equal(t, StatusAsignado, p.Status())
	assert.True(t, p.IsAssignedTo(target))
	require.NotNil(t, p.Reassignment().From)
	assert.True(t, p.Reassignment().From.IsEqual(original))
	require.NotNil(t, p.Reassignment().By)
	assert.True(t, p.Reassignment().By.IsEqual(admin))
	require.NotNil(t, p.Reassignment().At)
}

func Test_Preparation_Progress_Rounding(t *testing.T) {
	p, err := NewPreparation(kernel.NewUUID(), kernel.NewUUID(), "ORD-2608-0100",
		[]Item{
			{ProductID: "a", QuantityOrdered: 1},
			{ProductID: "b", QuantityOrdered: 1},
			{ProductID: "c", QuantityOrdered: 1},
			{ProductID: "d", QuantityOrdered: 1},
			{ProductID: "e", QuantityOrdered: 1},
			{ProductID: "f", QuantityOrdered: 1},
		}, time.Now())
	require.NoError(t, err)
	require.NoError(t, p.Assign(kernel.NewUUID(), "op", kernel.UUID{}, AssignmentAuto, time.Now()))

	items := p.Items()
	items[0].IsPrepared = true
	require.NoError(t, p.RecordProgress(items, "", time.Now()))

	// 1/6 rounds to 17
	assert.Equal(t, 17, p.Progress())
}

func Test_Preparation_Validate_RejectsZeroValue(t *testing.T) {
	var p Preparation
	assert.ErrorIs(t, p.Validate(), ErrPreparationIsNotConstructed)
}
