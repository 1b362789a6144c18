package inventory_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(t *testing.T, s string) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantityFromString(s)
	require.NoError(t, err)
	return q
}

func newTestUnit(t *testing.T, quantity string) *inventory.Unit {
	t.Helper()
	unit, err := inventory.NewUnit(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		qty(t, quantity), "kg", "LOT-0917", nil,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), kernel.NewUUID())
	require.NoError(t, err)
	return unit
}

func TestNewUnit(t *testing.T) {
	t.Run("starts available", func(t *testing.T) {
		unit := newTestUnit(t, "60")
		assert.Equal(t, inventory.Available, unit.Status())
		assert.True(t, unit.IsAllocatable())
	})

	t.Run("requires uom", func(t *testing.T) {
		_, err := inventory.NewUnit(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			qty(t, "60"), "", "", nil, time.Now(), kernel.NewUUID())
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var unit inventory.Unit
		require.ErrorIs(t, unit.Validate(), inventory.ErrUnitIsNotConstructed)
	})
}

func TestUnit_ReservationLifecycle(t *testing.T) {
	t.Run("reserve and release", func(t *testing.T) {
		unit := newTestUnit(t, "60")

		require.NoError(t, unit.Reserve())
		assert.Equal(t, inventory.Reserved, unit.Status())
		assert.False(t, unit.IsAllocatable())

		require.NoError(t, unit.ReleaseReservation())
		assert.Equal(t, inventory.Available, unit.Status())
	})

	t.Run("reserve is idempotent", func(t *testing.T) {
		unit := newTestUnit(t, "60")
		require.NoError(t, unit.Reserve())
		require.NoError(t, unit.Reserve())
		assert.Equal(t, inventory.Reserved, unit.Status())
	})

	t.Run("blocked unit cannot be reserved", func(t *testing.T) {
		unit := newTestUnit(t, "60")
		require.NoError(t, unit.Block())
		require.Error(t, unit.Reserve())
		assert.False(t, unit.IsAllocatable())
	})

	t.Run("quality hold can divert a reserved unit", func(t *testing.T) {
		unit := newTestUnit(t, "60")
		require.NoError(t, unit.Reserve())
		require.NoError(t, unit.Block())
		require.NoError(t, unit.Unblock())
		assert.Equal(t, inventory.Available, unit.Status())
	})
}

func TestUnit_ConsumeQuantity(t *testing.T) {
	t.Run("partial consumption keeps identity with remainder", func(t *testing.T) {
		unit := newTestUnit(t, "60")
		require.NoError(t, unit.Reserve())

		require.NoError(t, unit.ConsumeQuantity(qty(t, "40")))

		assert.Equal(t, "20", unit.Quantity().String())
		assert.Equal(t, inventory.Reserved, unit.Status())
	})

	t.Run("full consumption is terminal", func(t *testing.T) {
		unit := newTestUnit(t, "60")
		require.NoError(t, unit.Reserve())

		require.NoError(t, unit.ConsumeQuantity(qty(t, "60")))

		assert.True(t, unit.Quantity().IsZero())
		assert.Equal(t, inventory.Consumed, unit.Status())
		require.Error(t, unit.ReleaseReservation())
	})

	t.Run("never goes negative", func(t *testing.T) {
		unit := newTestUnit(t, "60")
		require.NoError(t, unit.Reserve())

		require.Error(t, unit.ConsumeQuantity(qty(t, "61")))
		assert.Equal(t, "60", unit.Quantity().String())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		unit := newTestUnit(t, "60")
		require.Error(t, unit.ConsumeQuantity(kernel.ZeroQuantity()))
	})
}
