package shipment_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), "SHP-000001", kernel.NewUUID())
	require.NoError(t, err)
	return s
}

func qty(t *testing.T, s string) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantityFromString(s)
	require.NoError(t, err)
	return q
}

func qtyPtr(t *testing.T, s string) *kernel.Quantity {
	t.Helper()
	q := qty(t, s)
	return &q
}

func mustSSCC(t *testing.T, code string) shipment.SSCC {
	t.Helper()
	sscc, err := shipment.NewSSCC(code)
	require.NoError(t, err)
	return sscc
}

func TestNewShipment(t *testing.T) {
	t.Run("starts pending with no boxes", func(t *testing.T) {
		s := newTestShipment(t)

		assert.Equal(t, shipment.Pending, s.Status())
		assert.Equal(t, 0, s.TotalBoxes())
		assert.Equal(t, 0, s.BoxSeq())
		assert.Nil(t, s.PackedAt())
	})

	t.Run("requires a number", func(t *testing.T) {
		_, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), "", kernel.NewUUID())
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var zero shipment.Shipment
		require.Error(t, zero.Validate())
	})
}

func TestShipment_AddBox(t *testing.T) {
	t.Run("first box starts packing", func(t *testing.T) {
		s := newTestShipment(t)

		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)

		assert.Equal(t, shipment.Packing, s.Status())
		assert.Equal(t, 1, box.Number())
	})

	t.Run("numbers are sequential", func(t *testing.T) {
		s := newTestShipment(t)

		for want := 1; want <= 3; want++ {
			box, err := s.AddBox(kernel.NewUUID())
			require.NoError(t, err)
			assert.Equal(t, want, box.Number())
		}
	})

	t.Run("deleted numbers are never reissued", func(t *testing.T) {
		s := newTestShipment(t)

		var second *shipment.Box
		for i := 0; i < 3; i++ {
			box, err := s.AddBox(kernel.NewUUID())
			require.NoError(t, err)
			if i == 1 {
				second = box
			}
		}

		require.NoError(t, s.RemoveBox(second.ID()))
		assert.Equal(t, 2, s.TotalBoxes())

		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)
		assert.Equal(t, 4, box.Number())
	})

	t.Run("rejected once packed", func(t *testing.T) {
		s := packedShipment(t)

		_, err := s.AddBox(kernel.NewUUID())
		require.Error(t, err)

		var transitionErr *shipment.TransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})
}

func TestShipment_RemoveBox(t *testing.T) {
	t.Run("unknown box", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)

		err = s.RemoveBox(kernel.NewUUID())
		assert.ErrorIs(t, err, shipment.ErrBoxNotFound)
	})

	t.Run("rejected once packed", func(t *testing.T) {
		s := packedShipment(t)

		err := s.RemoveBox(s.Boxes()[0].ID())
		var modifyErr *shipment.ModifyAfterPackedError
		require.ErrorAs(t, err, &modifyErr)
		assert.Equal(t, shipment.Packed, modifyErr.Status)
	})
}

func TestShipment_UpdateBox(t *testing.T) {
	limits := shipment.DefaultBoxLimits()

	t.Run("records weight and dimensions", func(t *testing.T) {
		s := newTestShipment(t)
		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)

		err = s.UpdateBox(box.ID(), shipment.BoxPatch{
			Weight: qtyPtr(t, "12.5"),
			Length: qtyPtr(t, "60"),
			Width:  qtyPtr(t, "40"),
			Height: qtyPtr(t, "30"),
		}, limits)
		require.NoError(t, err)

		assert.True(t, box.HasWeight())
		assert.Equal(t, "12.5", box.Weight().String())
		assert.Equal(t, "60", box.Length().String())
	})

	t.Run("nil fields are untouched", func(t *testing.T) {
		s := newTestShipment(t)
		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)

		require.NoError(t, s.UpdateBox(box.ID(), shipment.BoxPatch{Weight: qtyPtr(t, "5")}, limits))
		require.NoError(t, s.UpdateBox(box.ID(), shipment.BoxPatch{Length: qtyPtr(t, "50")}, limits))

		assert.Equal(t, "5", box.Weight().String())
		assert.Equal(t, "50", box.Length().String())
		assert.Nil(t, box.Width())
	})

	t.Run("weight limits", func(t *testing.T) {
		s := newTestShipment(t)
		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)

		require.Error(t, s.UpdateBox(box.ID(), shipment.BoxPatch{Weight: qtyPtr(t, "0")}, limits))
		require.Error(t, s.UpdateBox(box.ID(), shipment.BoxPatch{Weight: qtyPtr(t, "25.01")}, limits))
		require.NoError(t, s.UpdateBox(box.ID(), shipment.BoxPatch{Weight: qtyPtr(t, "25")}, limits))
	})

	t.Run("dimension limits are inclusive", func(t *testing.T) {
		s := newTestShipment(t)
		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)

		require.Error(t, s.UpdateBox(box.ID(), shipment.BoxPatch{Length: qtyPtr(t, "9.9")}, limits))
		require.Error(t, s.UpdateBox(box.ID(), shipment.BoxPatch{Length: qtyPtr(t, "200.1")}, limits))
		require.NoError(t, s.UpdateBox(box.ID(), shipment.BoxPatch{Length: qtyPtr(t, "10")}, limits))
		require.NoError(t, s.UpdateBox(box.ID(), shipment.BoxPatch{Length: qtyPtr(t, "200")}, limits))
	})

	t.Run("invalid patch leaves box unchanged", func(t *testing.T) {
		s := newTestShipment(t)
		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)

		err = s.UpdateBox(box.ID(), shipment.BoxPatch{
			Weight: qtyPtr(t, "5"),
			Length: qtyPtr(t, "500"),
		}, limits)
		require.Error(t, err)
		assert.Nil(t, box.Weight())
	})

	t.Run("frozen once packed", func(t *testing.T) {
		s := packedShipment(t)

		err := s.UpdateBox(s.Boxes()[0].ID(), shipment.BoxPatch{Weight: qtyPtr(t, "1")}, limits)
		var modifyErr *shipment.ModifyAfterPackedError
		require.ErrorAs(t, err, &modifyErr)
	})
}

func TestShipment_Contents(t *testing.T) {
	t.Run("packed quantity sums across boxes", func(t *testing.T) {
		s := newTestShipment(t)
		boxA, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)
		boxB, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)

		lineID := kernel.NewUUID()
		unitID := kernel.NewUUID()

		_, err = s.AddContent(boxA.ID(), kernel.NewUUID(), lineID, unitID, qty(t, "30"))
		require.NoError(t, err)
		_, err = s.AddContent(boxB.ID(), kernel.NewUUID(), lineID, unitID, qty(t, "20"))
		require.NoError(t, err)

		assert.Equal(t, "50", s.PackedQuantity(lineID, unitID).String())
		assert.Equal(t, "30", boxA.PackedQuantity(lineID, unitID).String())
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		s := newTestShipment(t)
		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)

		_, err = s.AddContent(box.ID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.ZeroQuantity())
		require.Error(t, err)
	})

	t.Run("remove content", func(t *testing.T) {
		s := newTestShipment(t)
		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)

		lineID := kernel.NewUUID()
		unitID := kernel.NewUUID()
		content, err := s.AddContent(box.ID(), kernel.NewUUID(), lineID, unitID, qty(t, "5"))
		require.NoError(t, err)

		require.NoError(t, s.RemoveContent(box.ID(), content.ID()))
		assert.True(t, s.PackedQuantity(lineID, unitID).IsZero())

		err = s.RemoveContent(box.ID(), content.ID())
		assert.ErrorIs(t, err, shipment.ErrContentNotFound)
	})

	t.Run("rejected once packed", func(t *testing.T) {
		s := packedShipment(t)

		_, err := s.AddContent(s.Boxes()[0].ID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), qty(t, "1"))
		var modifyErr *shipment.ModifyAfterPackedError
		require.ErrorAs(t, err, &modifyErr)
	})
}

func TestShipment_CompletePacking(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("happy path", func(t *testing.T) {
		s := newTestShipment(t)
		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)

		lineID := kernel.NewUUID()
		unitID := kernel.NewUUID()
		_, err = s.AddContent(box.ID(), kernel.NewUUID(), lineID, unitID, qty(t, "40"))
		require.NoError(t, err)
		require.NoError(t, s.UpdateBox(box.ID(), shipment.BoxPatch{Weight: qtyPtr(t, "8")}, shipment.DefaultBoxLimits()))

		packer := kernel.NewUUID()
		demands := []shipment.Demand{{SalesOrderLineID: lineID, InventoryUnitID: unitID, Quantity: qty(t, "40")}}
		require.NoError(t, s.CompletePacking(now, packer, demands))

		assert.Equal(t, shipment.Packed, s.Status())
		require.NotNil(t, s.PackedAt())
		assert.Equal(t, now, *s.PackedAt())
		require.NotNil(t, s.PackedBy())
		assert.True(t, s.PackedBy().IsEqual(packer))
	})

	t.Run("requires at least one box", func(t *testing.T) {
		s := newTestShipment(t)
		// Force into packing then remove the only box.
		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, s.RemoveBox(box.ID()))

		err = s.CompletePacking(now, kernel.NewUUID(), nil)
		assert.ErrorIs(t, err, shipment.ErrNoBoxes)
	})

	t.Run("rejected before packing starts", func(t *testing.T) {
		s := newTestShipment(t)

		err := s.CompletePacking(now, kernel.NewUUID(), nil)
		var transitionErr *shipment.TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, shipment.Pending, transitionErr.Current)
	})

	t.Run("reports every box missing a weight", func(t *testing.T) {
		s := newTestShipment(t)
		boxA, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)
		boxB, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)
		boxC, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, s.UpdateBox(boxB.ID(), shipment.BoxPatch{Weight: qtyPtr(t, "3")}, shipment.DefaultBoxLimits()))

		err = s.CompletePacking(now, kernel.NewUUID(), nil)
		var weightErr *shipment.MissingWeightError
		require.ErrorAs(t, err, &weightErr)
		require.Len(t, weightErr.Boxes, 2)
		assert.Equal(t, boxA.Number(), weightErr.Boxes[0].BoxNumber)
		assert.Equal(t, boxC.Number(), weightErr.Boxes[1].BoxNumber)
		assert.Equal(t, shipment.Packing, s.Status())
	})

	t.Run("reports every unpacked allocation with the missing quantity", func(t *testing.T) {
		s := newTestShipment(t)
		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, s.UpdateBox(box.ID(), shipment.BoxPatch{Weight: qtyPtr(t, "3")}, shipment.DefaultBoxLimits()))

		lineID := kernel.NewUUID()
		unitA := kernel.NewUUID()
		unitB := kernel.NewUUID()
		_, err = s.AddContent(box.ID(), kernel.NewUUID(), lineID, unitA, qty(t, "30"))
		require.NoError(t, err)

		demands := []shipment.Demand{
			{SalesOrderLineID: lineID, InventoryUnitID: unitA, Quantity: qty(t, "50")},
			{SalesOrderLineID: lineID, InventoryUnitID: unitB, Quantity: qty(t, "10")},
		}
		err = s.CompletePacking(now, kernel.NewUUID(), demands)

		var unpackedErr *shipment.UnpackedItemsError
		require.ErrorAs(t, err, &unpackedErr)
		require.Len(t, unpackedErr.Items, 2)
		assert.Equal(t, "20", unpackedErr.Items[0].Missing.String())
		assert.Equal(t, "10", unpackedErr.Items[1].Missing.String())
		assert.Equal(t, shipment.Packing, s.Status())
	})
}

func TestShipment_Manifest(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("happy path returns totals", func(t *testing.T) {
		s := packedShipmentWithBoxes(t, 2)
		require.NoError(t, s.SetBoxSSCC(s.Boxes()[0].ID(), mustSSCC(t, "001234567890123452")))
		require.NoError(t, s.SetBoxSSCC(s.Boxes()[1].ID(), mustSSCC(t, "000000000000000017")))

		result, err := s.Manifest(now)
		require.NoError(t, err)

		assert.Equal(t, shipment.Manifested, s.Status())
		assert.Equal(t, 2, result.TotalBoxes)
		assert.Equal(t, "6", result.TotalWeight.String())
		assert.Equal(t, now, result.ManifestedAt)
		require.NotNil(t, s.ManifestedAt())
	})

	t.Run("atomic: lists every box without an identifier", func(t *testing.T) {
		s := packedShipmentWithBoxes(t, 3)
		require.NoError(t, s.SetBoxSSCC(s.Boxes()[1].ID(), mustSSCC(t, "001234567890123452")))

		_, err := s.Manifest(now)
		var ssccErr *shipment.SSCCValidationError
		require.ErrorAs(t, err, &ssccErr)
		require.Len(t, ssccErr.Missing, 2)
		assert.Equal(t, 1, ssccErr.Missing[0].BoxNumber)
		assert.Equal(t, 3, ssccErr.Missing[1].BoxNumber)
		assert.Equal(t, shipment.Packed, s.Status())
	})

	t.Run("only legal from packed", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Manifest(now)
		var transitionErr *shipment.TransitionError
		require.ErrorAs(t, err, &transitionErr)
	})
}

func TestShipment_SetBoxSSCC(t *testing.T) {
	t.Run("allowed while packed", func(t *testing.T) {
		s := packedShipment(t)
		require.NoError(t, s.SetBoxSSCC(s.Boxes()[0].ID(), mustSSCC(t, "001234567890123452")))
		assert.True(t, s.Boxes()[0].HasSSCC())
	})

	t.Run("frozen once manifested", func(t *testing.T) {
		s := packedShipment(t)
		require.NoError(t, s.SetBoxSSCC(s.Boxes()[0].ID(), mustSSCC(t, "001234567890123452")))
		_, err := s.Manifest(time.Now())
		require.NoError(t, err)

		err = s.SetBoxSSCC(s.Boxes()[0].ID(), mustSSCC(t, "000000000000000017"))
		var modifyErr *shipment.ModifyAfterPackedError
		require.ErrorAs(t, err, &modifyErr)
	})
}

func TestShipment_DispatchLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	s := packedShipment(t)
	require.NoError(t, s.SetBoxSSCC(s.Boxes()[0].ID(), mustSSCC(t, "001234567890123452")))
	_, err := s.Manifest(now)
	require.NoError(t, err)

	require.NoError(t, s.MarkShipped(now.Add(time.Hour)))
	assert.Equal(t, shipment.Shipped, s.Status())
	require.NotNil(t, s.ShippedAt())

	require.NoError(t, s.MarkDelivered())
	assert.Equal(t, shipment.Delivered, s.Status())

	require.Error(t, s.MarkException())
}

func TestRestoreShipment(t *testing.T) {
	t.Run("round trip with a retired box number", func(t *testing.T) {
		boxID := kernel.NewUUID()
		contentID := kernel.NewUUID()
		lineID := kernel.NewUUID()
		unitID := kernel.NewUUID()

		content, err := shipment.RestoreContent(contentID, lineID, unitID, qty(t, "7"))
		require.NoError(t, err)

		sscc := mustSSCC(t, "001234567890123452")
		weight := qtyPtr(t, "4.2")
		box, err := shipment.RestoreBox(boxID, 3, &sscc, weight, nil, nil, nil, []*shipment.Content{content})
		require.NoError(t, err)

		packedAt := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
		packedBy := kernel.NewUUID()
		restored, err := shipment.RestoreShipment(
			kernel.NewUUID(), kernel.NewUUID(), "SHP-000042", kernel.NewUUID(),
			shipment.Packed, 5, &packedAt, &packedBy, nil, nil,
			[]*shipment.Box{box},
		)
		require.NoError(t, err)

		assert.Equal(t, shipment.Packed, restored.Status())
		assert.Equal(t, 5, restored.BoxSeq())
		assert.Equal(t, "7", restored.PackedQuantity(lineID, unitID).String())
	})

	t.Run("rejects boxSeq below an existing box number", func(t *testing.T) {
		box, err := shipment.RestoreBox(kernel.NewUUID(), 4, nil, nil, nil, nil, nil, nil)
		require.NoError(t, err)

		_, err = shipment.RestoreShipment(
			kernel.NewUUID(), kernel.NewUUID(), "SHP-000043", kernel.NewUUID(),
			shipment.Packing, 2, nil, nil, nil, nil,
			[]*shipment.Box{box},
		)
		require.Error(t, err)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		_, err := shipment.RestoreShipment(
			kernel.NewUUID(), kernel.NewUUID(), "SHP-000044", kernel.NewUUID(),
			shipment.Status(99), 0, nil, nil, nil, nil, nil,
		)
		require.Error(t, err)
	})
}

// packedShipment builds a shipment with one weighed box, packed with no
// demands to satisfy.
func packedShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	return packedShipmentWithBoxes(t, 1)
}

func packedShipmentWithBoxes(t *testing.T, n int) *shipment.Shipment {
	t.Helper()
	s := newTestShipment(t)
	for i := 0; i < n; i++ {
		box, err := s.AddBox(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, s.UpdateBox(box.ID(), shipment.BoxPatch{Weight: qtyPtr(t, "3")}, shipment.DefaultBoxLimits()))
	}
	require.NoError(t, s.CompletePacking(time.Now(), kernel.NewUUID(), nil))
	return s
}
