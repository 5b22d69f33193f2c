package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/preparation"
	"fulfillment/internal/core/domain/model/quote"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

func orderSequence() services.NumberSequence {
	return services.NewNumberSequenceWithSource("ORD",
		func() time.Time { return time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC) },
		func() int { return 100 })
}

func convertCommand(t *testing.T, actor commands.Actor, quoteID kernel.UUID) commands.ConvertQuoteCommand {
	t.Helper()
	cmd, err := commands.NewConvertQuoteCommand(quoteID, kernel.NewUUID(), actor,
		order.MethodTransferencia, orderAddress(), "estandar", "")
	require.NoError(t, err)
	return cmd
}

func TestConvertQuoteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	actor, err := commands.NewActor(customerID, "laura@acmelabs.example", account.RoleCliente)
	require.NoError(t, err)

	q := approvedQuote(t, &customerID)
	cmd := convertCommand(t, actor, q.ID())

	operator, err := account.NewAccount(kernel.NewUUID(), "miguel@lab.example", "Miguel", account.RoleBodega, true)
	require.NoError(t, err)

	quoteRepo := new(MockQuoteRepository)
	quoteRepo.On("Get", mock.Anything, q.ID()).Return(q, nil).Once()
	quoteRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *quote.Quote) bool {
		return updated.Status() == quote.StatusConvertida && updated.OrderID() != nil
	})).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("ExistsByNumber", mock.Anything, "ORD-2608-0100").Return(false, nil).Once()
	orderRepo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Number() == "ORD-2608-0100" &&
			o.Status() == order.StatusConfirmado &&
			o.QuoteID() != nil && o.QuoteID().IsEqual(q.ID())
	})).Return(nil).Once()

	prepRepo := new(MockPreparationRepository)
	prepRepo.On("GetActiveByOperator", mock.Anything, operator.ID()).Return([]*preparation.Preparation{}, nil).Once()
	prepRepo.On("Add", mock.Anything, mock.MatchedBy(func(p *preparation.Preparation) bool {
		return p.Status() == preparation.StatusAsignado && p.IsAssignedTo(operator.ID())
	})).Return(nil).Once()

	identity := new(MockIdentityProvider)
	identity.On("GetActiveByRole", mock.Anything, account.RoleBodega).
		Return([]*account.Account{operator}, nil).Once()

	conversionUoW := new(MockUoW)
	conversionUoW.On("Begin", ctx).Return(nil).Once()
	conversionUoW.On("QuoteRepository").Return(quoteRepo).Once()
	conversionUoW.On("OrderRepository").Return(orderRepo).Once()
	conversionUoW.On("Commit", ctx).Return(nil).Once()
	conversionUoW.On("Rollback", ctx).Return(nil).Once()

	assignmentUoW := new(MockUoW)
	assignmentUoW.On("Begin", ctx).Return(nil).Once()
	assignmentUoW.On("PreparationRepository").Return(prepRepo).Once()
	assignmentUoW.On("Commit", ctx).Return(nil).Once()
	assignmentUoW.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(conversionUoW).Once()
	factory.On("Create").Return(assignmentUoW).Once()

	notifier, sink := silentNotifier()
	h := commands.NewConvertQuoteCommandHandler(factory, identity, orderSequence(), notifier, silentLogger())

	require.NoError(t, h.Handle(ctx, cmd))
	quoteRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	prepRepo.AssertExpectations(t)
	sink.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConvertQuoteCommandHandler_Handle_AssignmentFailureKeepsConversion(t *testing.T) {
	// No operators: the conversion stays committed, the tracker is created
	// unassigned, and the roster broadcast has no recipients.
	ctx := t.Context()
	customerID := kernel.NewUUID()
	actor, err := commands.NewActor(customerID, "laura@acmelabs.example", account.RoleCliente)
	require.NoError(t, err)

	q := approvedQuote(t, &customerID)
	cmd := convertCommand(t, actor, q.ID())

	quoteRepo := new(MockQuoteRepository)
	quoteRepo.On("Get", mock.Anything, q.ID()).Return(q, nil).Once()
	quoteRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("ExistsByNumber", mock.Anything, mock.Anything).Return(false, nil).Once()
	orderRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	prepRepo := new(MockPreparationRepository)
	prepRepo.On("Add", mock.Anything, mock.MatchedBy(func(p *preparation.Preparation) bool {
		return p.Status() == preparation.StatusPendiente && p.Assignment().Operator == nil
	})).Return(nil).Once()

	identity := new(MockIdentityProvider)
	identity.On("GetActiveByRole", mock.Anything, account.RoleBodega).
		Return([]*account.Account{}, nil).Twice()

	conversionUoW := new(MockUoW)
	conversionUoW.On("Begin", ctx).Return(nil).Once()
	conversionUoW.On("QuoteRepository").Return(quoteRepo).Once()
	conversionUoW.On("OrderRepository").Return(orderRepo).Once()
	conversionUoW.On("Commit", ctx).Return(nil).Once()
	conversionUoW.On("Rollback", ctx).Return(nil).Once()

	assignmentUoW := new(MockUoW)
	assignmentUoW.On("Begin", ctx).Return(nil).Once()
	assignmentUoW.On("PreparationRepository").Return(prepRepo).Once()
	assignmentUoW.On("Commit", ctx).Return(nil).Once()
	assignmentUoW.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(conversionUoW).Once()
	factory.On("Create").Return(assignmentUoW).Once()

	notifier, _ := silentNotifier()
	h := commands.NewConvertQuoteCommandHandler(factory, identity, orderSequence(), notifier, silentLogger())

	require.NoError(t, h.Handle(ctx, cmd))
	prepRepo.AssertExpectations(t)
}

func TestConvertQuoteCommandHandler_Handle_AlreadyConverted(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	actor, err := commands.NewActor(customerID, "laura@acmelabs.example", account.RoleCliente)
	require.NoError(t, err)

	q := approvedQuote(t, &customerID)
	require.NoError(t, q.ConvertToOrder(kernel.NewUUID(), "ORD-2608-0001", time.Now()))
	cmd := convertCommand(t, actor, q.ID())

	quoteRepo := new(MockQuoteRepository)
	quoteRepo.On("Get", mock.Anything, q.ID()).Return(q, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("ExistsByNumber", mock.Anything, mock.Anything).Return(false, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("QuoteRepository").Return(quoteRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier, _ := silentNotifier()
	h := commands.NewConvertQuoteCommandHandler(factory, new(MockIdentityProvider), orderSequence(), notifier, silentLogger())

	assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrConflict)
}

func TestConvertQuoteCommandHandler_Handle_ForbiddenForOtherCustomer(t *testing.T) {
	ctx := t.Context()
	stranger, err := commands.NewActor(kernel.NewUUID(), "other@x.example", account.RoleCliente)
	require.NoError(t, err)

	ownerID := kernel.NewUUID()
	q := approvedQuote(t, &ownerID)
	cmd := convertCommand(t, stranger, q.ID())

	quoteRepo := new(MockQuoteRepository)
	quoteRepo.On("Get", mock.Anything, q.ID()).Return(q, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("QuoteRepository").Return(quoteRepo).Once()
	uow.On("OrderRepository").Return(new(MockOrderRepository)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier, _ := silentNotifier()
	h := commands.NewConvertQuoteCommandHandler(factory, new(MockIdentityProvider), orderSequence(), notifier, silentLogger())

	assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrForbidden)
}

func TestConvertQuoteCommandHandler_Handle_WarehouseRoleForbidden(t *testing.T) {
	notifier, _ := silentNotifier()
	h := commands.NewConvertQuoteCommandHandler(new(MockUoWFactory), new(MockIdentityProvider), orderSequence(), notifier, silentLogger())

	cmd := convertCommand(t, testActor(account.RoleBodega), kernel.NewUUID())

	assert.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrForbidden)
}
