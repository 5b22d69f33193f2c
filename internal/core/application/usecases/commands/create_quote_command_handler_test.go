package commands_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/quote"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

func quoteSequence() services.NumberSequence {
	return services.NewNumberSequenceWithSource("QUO",
		func() time.Time { return time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC) },
		func() int { return 42 })
}

func TestCreateQuoteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	repID := kernel.NewUUID()
	cmd, err := commands.NewCreateQuoteCommand(kernel.NewUUID(), quoteCustomer(nil), quoteItems(), "hola")
	require.NoError(t, err)

	customers := new(MockCustomerDirectory)
	customers.On("FindByEmail", mock.Anything, "laura@acmelabs.example").
		Return(&ports.CustomerRecord{AssignedRep: &repID, AssignedRepName: "Pedro Ruiz"}, nil).Once()

	repo := new(MockQuoteRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("QuoteRepository").Return(repo).Once(),
		repo.On("ExistsByNumber", mock.Anything, "QUO-2608-0042").Return(false, nil).Once(),
		repo.On("Add", mock.Anything, mock.MatchedBy(func(q *quote.Quote) bool {
			return q.Number() == "QUO-2608-0042" && q.Status() == quote.StatusPendiente && q.IsAssignedTo(repID)
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier, sink := silentNotifier()
	h := commands.NewCreateQuoteCommandHandler(factory, customers, quoteSequence(), notifier)

	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	sink.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateQuoteCommandHandler_Handle_UnresolvedRepStillCreates(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateQuoteCommand(kernel.NewUUID(), quoteCustomer(nil), quoteItems(), "")
	require.NoError(t, err)

	customers := new(MockCustomerDirectory)
	customers.On("FindByEmail", mock.Anything, mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("email", "laura@acmelabs.example")).Once()

	repo := new(MockQuoteRepository)
	repo.On("ExistsByNumber", mock.Anything, mock.Anything).Return(false, nil).Once()
	repo.On("Add", mock.Anything, mock.MatchedBy(func(q *quote.Quote) bool {
		return q.AssignedRep() == nil
	})).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("QuoteRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier, sink := silentNotifier()
	h := commands.NewCreateQuoteCommandHandler(factory, customers, quoteSequence(), notifier)

	require.NoError(t, h.Handle(ctx, cmd))
	sink.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateQuoteCommandHandler_Handle_ValidationError(t *testing.T) {
	notifier, _ := silentNotifier()
	h := commands.NewCreateQuoteCommandHandler(new(MockQuoteUoWFactory), new(MockCustomerDirectory), quoteSequence(), notifier)

	err := h.Handle(t.Context(), commands.CreateQuoteCommand{})

	require.ErrorIs(t, err, commands.ErrCreateQuoteCommandIsNotConstructed)
}

func TestCreateQuoteCommandHandler_Handle_SequenceExhaustion(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateQuoteCommand(kernel.NewUUID(), quoteCustomer(nil), quoteItems(), "")
	require.NoError(t, err)

	customers := new(MockCustomerDirectory)
	customers.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, errors.New("down")).Once()

	repo := new(MockQuoteRepository)
	repo.On("ExistsByNumber", mock.Anything, mock.Anything).Return(true, nil).Times(10)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("QuoteRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier, _ := silentNotifier()
	h := commands.NewCreateQuoteCommandHandler(factory, customers, quoteSequence(), notifier)

	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrConflict)
}
