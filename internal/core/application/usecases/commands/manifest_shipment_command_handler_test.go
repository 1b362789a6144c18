package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

// packedShipmentBoxes builds a packed two-box shipment and returns it with
// the box IDs in numbering order.
func packedShipmentBoxes(t *testing.T, orgID kernel.UUID) (*shipment.Shipment, []kernel.UUID) {
	t.Helper()

	lineID := kernel.NewUUID()
	unitID := kernel.NewUUID()

	aggregate, err := shipment.NewShipment(kernel.NewUUID(), orgID, "SH-2026-00009", kernel.NewUUID())
	require.NoError(t, err)

	var boxIDs []kernel.UUID
	for range 2 {
		box, err := aggregate.AddBox(kernel.NewUUID())
		require.NoError(t, err)
		boxIDs = append(boxIDs, box.ID())

		weight := mustQty(t, "3")
		require.NoError(t, aggregate.UpdateBox(
			box.ID(), shipment.BoxPatch{Weight: &weight}, shipment.DefaultBoxLimits(),
		))
		_, err = aggregate.AddContent(box.ID(), kernel.NewUUID(), lineID, unitID, mustQty(t, "2"))
		require.NoError(t, err)
	}

	require.NoError(t, aggregate.CompletePacking(time.Now(), kernel.NewUUID(), []shipment.Demand{
		{SalesOrderLineID: lineID, InventoryUnitID: unitID, Quantity: mustQty(t, "4")},
	}))

	return aggregate, boxIDs
}

func TestManifestShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	aggregate, boxIDs := packedShipmentBoxes(t, orgID)

	sscc1, err := shipment.NewSSCC("001234567890123452")
	require.NoError(t, err)
	sscc2, err := shipment.NewSSCC("000000000000000017")
	require.NoError(t, err)
	require.NoError(t, aggregate.SetBoxSSCC(boxIDs[0], sscc1))
	require.NoError(t, aggregate.SetBoxSSCC(boxIDs[1], sscc2))

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	shipmentRepo.On("Get", ctx, orgID, aggregate.ID()).Return(aggregate, nil).Once()
	shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewManifestShipmentCommandHandler(factory)

	cmd, err := commands.NewManifestShipmentCommand(orgID, aggregate.ID(), "warehouse")
	require.NoError(t, err)

	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, "SH-2026-00009", result.ShipmentNumber)
	require.Equal(t, shipment.Manifested, result.Status)
	require.Equal(t, 2, result.BoxCount)
	require.Len(t, result.Boxes, 2)
	require.Equal(t, 1, result.Boxes[0].BoxNumber)
	require.Equal(t, "001234567890123452", result.Boxes[0].SSCC)
	require.True(t, result.Boxes[0].Validated)
	require.Equal(t, shipment.Manifested, aggregate.Status())
	uow.AssertExpectations(t)
}

func TestManifestShipmentCommandHandler_Handle_MissingSSCCListsAllOffenders(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	aggregate, _ := packedShipmentBoxes(t, orgID)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	shipmentRepo.On("Get", ctx, orgID, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewManifestShipmentCommandHandler(factory)

	cmd, err := commands.NewManifestShipmentCommand(orgID, aggregate.ID(), "manager")
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)

	var ssccErr *shipment.SSCCValidationError
	require.ErrorAs(t, err, &ssccErr)
	require.Len(t, ssccErr.Missing, 2)
	require.Equal(t, shipment.Packed, aggregate.Status())
}

func TestManifestShipmentCommandHandler_Handle_RefusesUnknownRole(t *testing.T) {
	orgID := kernel.NewUUID()

	factory := new(MockShipmentUoWFactory)
	h := commands.NewManifestShipmentCommandHandler(factory)

	cmd, err := commands.NewManifestShipmentCommand(orgID, kernel.NewUUID(), "viewer")
	require.NoError(t, err)

	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, commands.ErrManifestNotPermitted)
	factory.AssertNotCalled(t, "Create")
}
