package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLine(t *testing.T) *order.Line {
	t.Helper()
	qty, err := kernel.NewQuantityFromString("100")
	require.NoError(t, err)
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), qty)
	require.NoError(t, err)
	return line
}

func TestNewSalesOrder(t *testing.T) {
	t.Run("creates order in draft with lines", func(t *testing.T) {
		line := validLine(t)
		o, err := order.NewSalesOrder(
			kernel.NewUUID(), kernel.NewUUID(), "SO-2026-00042", kernel.NewUUID(), []*order.Line{line})

		require.NoError(t, err)
		assert.Equal(t, order.Draft, o.Status())
		assert.Equal(t, "SO-2026-00042", o.Number())
		assert.Len(t, o.Lines(), 1)
	})

	t.Run("rejects empty number", func(t *testing.T) {
		_, err := order.NewSalesOrder(
			kernel.NewUUID(), kernel.NewUUID(), "", kernel.NewUUID(), []*order.Line{validLine(t)})
		require.Error(t, err)
	})

	t.Run("rejects order without lines", func(t *testing.T) {
		_, err := order.NewSalesOrder(
			kernel.NewUUID(), kernel.NewUUID(), "SO-2026-00042", kernel.NewUUID(), nil)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.SalesOrder
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestNewLine(t *testing.T) {
	t.Run("rejects zero ordered quantity", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), kernel.ZeroQuantity())
		require.Error(t, err)
	})
}

func TestSalesOrder_Line(t *testing.T) {
	line := validLine(t)
	o, err := order.NewSalesOrder(
		kernel.NewUUID(), kernel.NewUUID(), "SO-2026-00001", kernel.NewUUID(), []*order.Line{line})
	require.NoError(t, err)

	t.Run("finds own line", func(t *testing.T) {
		found, err := o.Line(line.ID())
		require.NoError(t, err)
		assert.True(t, found.ID().IsEqual(line.ID()))
	})

	t.Run("foreign line id yields ErrLineNotFound", func(t *testing.T) {
		_, err := o.Line(kernel.NewUUID())
		require.ErrorIs(t, err, order.ErrLineNotFound)
	})
}

func TestSalesOrder_Transitions(t *testing.T) {
	restore := func(t *testing.T, status order.Status) *order.SalesOrder {
		t.Helper()
		o, err := order.RestoreSalesOrder(
			kernel.NewUUID(), kernel.NewUUID(), "SO-2026-00007", kernel.NewUUID(),
			status, []*order.Line{validLine(t)})
		require.NoError(t, err)
		return o
	}

	t.Run("MarkAllocated advances from confirmed", func(t *testing.T) {
		o := restore(t, order.Confirmed)
		require.NoError(t, o.MarkAllocated())
		assert.Equal(t, order.Allocated, o.Status())
	})

	t.Run("MarkAllocated is a no-op past confirmed", func(t *testing.T) {
		o := restore(t, order.Picking)
		require.NoError(t, o.MarkAllocated())
		assert.Equal(t, order.Picking, o.Status())
	})

	t.Run("StartPacking from picked and picking", func(t *testing.T) {
		for _, from := range []order.Status{order.Picked, order.Picking} {
			o := restore(t, from)
			require.NoError(t, o.StartPacking())
			assert.Equal(t, order.Packing, o.Status())
		}
	})

	t.Run("StartPacking from confirmed fails with allowed set", func(t *testing.T) {
		o := restore(t, order.Confirmed)
		err := o.StartPacking()
		require.Error(t, err)

		var transitionErr *order.TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.Confirmed, transitionErr.Current)
	})

	t.Run("full packing to delivery sequence", func(t *testing.T) {
		o := restore(t, order.Packing)
		require.NoError(t, o.MarkPacked())
		require.NoError(t, o.MarkShipped())
		require.NoError(t, o.MarkDelivered())
		assert.Equal(t, order.Delivered, o.Status())
	})
}
