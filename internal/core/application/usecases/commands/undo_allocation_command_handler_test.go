package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestUndoAllocationCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()

	newReservation := func(t *testing.T, unitID kernel.UUID, committedAt time.Time) *allocation.Allocation {
		t.Helper()
		reservation, err := allocation.NewAllocation(
			kernel.NewUUID(), kernel.NewUUID(), unitID,
			mustQty(t, "10"), allocation.FIFO, committedAt,
		)
		require.NoError(t, err)
		return reservation
	}

	t.Run("inside the window releases with reason undo", func(t *testing.T) {
		unit := availableUnit(t, orgID, "10")
		require.NoError(t, unit.Reserve())
		reservation := newReservation(t, unit.ID(), time.Now().Add(-4*time.Minute))

		allocationRepo := new(MockAllocationRepository)
		unitRepo := new(MockInventoryUnitRepository)
		shipmentRepo := new(MockShipmentRepository)
		uow := new(MockUoW)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("AllocationRepository").Return(allocationRepo)
		uow.On("InventoryUnitRepository").Return(unitRepo)
		uow.On("ShipmentRepository").Return(shipmentRepo)
		allocationRepo.On("Get", ctx, orgID, reservation.ID()).Return(reservation, nil).Once()
		shipmentRepo.On("PackedQuantityForLineUnit", ctx, reservation.SalesOrderLineID(), unit.ID()).
			Return(kernel.ZeroQuantity(), nil).Once()
		allocationRepo.On("Update", ctx, reservation).Return(nil).Once()
		unitRepo.On("GetForUpdate", ctx, orgID, unit.ID()).Return(unit, nil).Once()
		allocationRepo.On("ActiveByUnit", ctx, unit.ID()).Return([]*allocation.Allocation{}, nil).Once()
		unitRepo.On("Update", ctx, unit).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockReleaseUoWFactory)
		factory.On("Create").Return(uow).Once()

		h, err := commands.NewUndoAllocationCommandHandler(factory, 5*time.Minute)
		require.NoError(t, err)

		cmd, err := commands.NewUndoAllocationCommand(orgID, reservation.ID())
		require.NoError(t, err)

		require.NoError(t, h.Handle(ctx, cmd))
		require.False(t, reservation.IsActive())
		require.Equal(t, allocation.ReasonUndo, reservation.ReleaseReason())
		require.Equal(t, inventory.Available, unit.Status())
		uow.AssertExpectations(t)
	})

	t.Run("outside the window is refused", func(t *testing.T) {
		unit := availableUnit(t, orgID, "10")
		reservation := newReservation(t, unit.ID(), time.Now().Add(-6*time.Minute))

		allocationRepo := new(MockAllocationRepository)
		shipmentRepo := new(MockShipmentRepository)
		uow := new(MockUoW)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("AllocationRepository").Return(allocationRepo)
		uow.On("ShipmentRepository").Return(shipmentRepo)
		allocationRepo.On("Get", ctx, orgID, reservation.ID()).Return(reservation, nil).Once()
		shipmentRepo.On("PackedQuantityForLineUnit", ctx, reservation.SalesOrderLineID(), unit.ID()).
			Return(kernel.ZeroQuantity(), nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockReleaseUoWFactory)
		factory.On("Create").Return(uow).Once()

		h, err := commands.NewUndoAllocationCommandHandler(factory, 5*time.Minute)
		require.NoError(t, err)

		cmd, err := commands.NewUndoAllocationCommand(orgID, reservation.ID())
		require.NoError(t, err)

		require.ErrorIs(t, h.Handle(ctx, cmd), commands.ErrUndoWindowExpired)
		require.True(t, reservation.IsActive())
	})

	t.Run("consumed reservation is never undoable", func(t *testing.T) {
		unit := availableUnit(t, orgID, "10")
		reservation := newReservation(t, unit.ID(), time.Now().Add(-time.Minute))

		allocationRepo := new(MockAllocationRepository)
		shipmentRepo := new(MockShipmentRepository)
		uow := new(MockUoW)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("AllocationRepository").Return(allocationRepo)
		uow.On("ShipmentRepository").Return(shipmentRepo)
		allocationRepo.On("Get", ctx, orgID, reservation.ID()).Return(reservation, nil).Once()
		shipmentRepo.On("PackedQuantityForLineUnit", ctx, reservation.SalesOrderLineID(), unit.ID()).
			Return(mustQty(t, "4"), nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockReleaseUoWFactory)
		factory.On("Create").Return(uow).Once()

		h, err := commands.NewUndoAllocationCommandHandler(factory, 5*time.Minute)
		require.NoError(t, err)

		cmd, err := commands.NewUndoAllocationCommand(orgID, reservation.ID())
		require.NoError(t, err)

		var consumedErr *allocation.AlreadyConsumedError
		require.ErrorAs(t, h.Handle(ctx, cmd), &consumedErr)
		require.True(t, reservation.IsActive())
	})

	t.Run("allocation of another tenant reads as not found", func(t *testing.T) {
		allocationID := kernel.NewUUID()

		allocationRepo := new(MockAllocationRepository)
		uow := new(MockUoW)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("AllocationRepository").Return(allocationRepo)
		allocationRepo.On("Get", ctx, orgID, allocationID).
			Return(nil, errs.NewObjectNotFoundError("allocation", allocationID.String())).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockReleaseUoWFactory)
		factory.On("Create").Return(uow).Once()

		h, err := commands.NewUndoAllocationCommandHandler(factory, 5*time.Minute)
		require.NoError(t, err)

		cmd, err := commands.NewUndoAllocationCommand(orgID, allocationID)
		require.NoError(t, err)

		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
		uow.AssertNotCalled(t, "ShipmentRepository")
	})

	t.Run("non-positive window is rejected at construction", func(t *testing.T) {
		_, err := commands.NewUndoAllocationCommandHandler(new(MockReleaseUoWFactory), 0)
		require.Error(t, err)
	})
}
