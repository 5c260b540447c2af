package commands_test

import (
	"testing"

	"pharmadispatch/internal/core/application/usecases/commands"
	"pharmadispatch/internal/core/domain/model/order"
	"pharmadispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("advances_the_order", func(t *testing.T) {
		ctx := t.Context()
		o := pendingOrder(t)

		orderRepo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		factory := new(MockOrderUoWFactory)
		publisher := new(MockEventPublisher)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		orderRepo.On("Update", ctx, o).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.StatusAccepted)
		require.NoError(t, err)

		handler := commands.NewUpdateOrderStatusCommandHandler(factory, publisher, testLogger())
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.StatusAccepted, o.Status())
		publisher.AssertExpectations(t)
	})

	t.Run("invalid_edge_keeps_the_order", func(t *testing.T) {
		ctx := t.Context()
		o := pendingOrder(t)

		orderRepo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		factory := new(MockOrderUoWFactory)
		publisher := new(MockEventPublisher)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.StatusDelivered)
		require.NoError(t, err)

		handler := commands.NewUpdateOrderStatusCommandHandler(factory, publisher, testLogger())
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusPending, o.Status())
		uow.AssertNotCalled(t, "Commit", ctx)
	})
}

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	t.Run("cancels_an_unassigned_order", func(t *testing.T) {
		ctx := t.Context()
		o := pendingOrder(t)

		orderRepo := new(MockOrderRepository)
		assignmentRepo := new(MockAssignmentRepository)
		uow := new(MockOrderCancelUoW)
		factory := new(MockOrderCancelUoWFactory)
		publisher := new(MockEventPublisher)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("AssignmentRepository").Return(assignmentRepo)
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		assignmentRepo.On("GetActiveByOrder", ctx, o.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", o.ID())).Once()
		orderRepo.On("Update", ctx, o).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		cmd, err := commands.NewCancelOrderCommand(o.ID(), "customer changed their mind")
		require.NoError(t, err)

		handler := commands.NewCancelOrderCommandHandler(factory, publisher, testLogger())
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("order_on_active_assignment_is_rejected", func(t *testing.T) {
		ctx := t.Context()
		o := batchedOrderIn(t, order.StatusReadyForPickup)
		assignment := assignmentOver(t, o)

		orderRepo := new(MockOrderRepository)
		assignmentRepo := new(MockAssignmentRepository)
		uow := new(MockOrderCancelUoW)
		factory := new(MockOrderCancelUoWFactory)
		publisher := new(MockEventPublisher)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("AssignmentRepository").Return(assignmentRepo)
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		assignmentRepo.On("GetActiveByOrder", ctx, o.ID()).Return(assignment, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewCancelOrderCommand(o.ID(), "customer changed their mind")
		require.NoError(t, err)

		handler := commands.NewCancelOrderCommandHandler(factory, publisher, testLogger())
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrOrderIsActivelyAssigned)
		assert.Equal(t, order.StatusReadyForPickup, o.Status())
		uow.AssertNotCalled(t, "Commit", ctx)
	})
}

func TestApplyDiscountCommandHandler_Handle(t *testing.T) {
	t.Run("recomputes_totals", func(t *testing.T) {
		ctx := t.Context()
		o := pendingOrder(t)
		totalBefore := o.TotalAmount()

		orderRepo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		factory := new(MockOrderUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		orderRepo.On("Update", ctx, o).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewApplyDiscountCommand(o.ID(), 50)
		require.NoError(t, err)

		handler := commands.NewApplyDiscountCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.InDelta(t, totalBefore-50, o.TotalAmount(), 1e-9)
	})

	t.Run("discount_above_subtotal_is_rejected", func(t *testing.T) {
		ctx := t.Context()
		o := pendingOrder(t)

		orderRepo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		factory := new(MockOrderUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewApplyDiscountCommand(o.ID(), o.Subtotal()+1)
		require.NoError(t, err)

		handler := commands.NewApplyDiscountCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrDiscountExceedsSubtotal)
		uow.AssertNotCalled(t, "Commit", ctx)
	})
}
