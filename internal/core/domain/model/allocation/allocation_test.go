package allocation_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAllocation(t *testing.T) *allocation.Allocation {
	t.Helper()
	a, err := allocation.NewAllocation(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		qty(t, "40"), allocation.FIFO, day(1))
	require.NoError(t, err)
	return a
}

func TestNewAllocation(t *testing.T) {
	t.Run("creates active reservation", func(t *testing.T) {
		a := newTestAllocation(t)
		assert.True(t, a.IsActive())
		assert.Nil(t, a.ReleasedAt())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := allocation.NewAllocation(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.ZeroQuantity(), allocation.FIFO, day(1))
		require.Error(t, err)
	})

	t.Run("rejects unknown strategy", func(t *testing.T) {
		_, err := allocation.NewAllocation(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			qty(t, "40"), allocation.StrategyUnknown, day(1))
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var a allocation.Allocation
		require.ErrorIs(t, a.Validate(), allocation.ErrAllocationIsNotConstructed)
	})
}

func TestAllocation_Release(t *testing.T) {
	t.Run("release deactivates with reason", func(t *testing.T) {
		a := newTestAllocation(t)
		releasedAt := day(2)

		a.Release(releasedAt, allocation.ReasonManualRelease)

		assert.False(t, a.IsActive())
		assert.Equal(t, releasedAt, *a.ReleasedAt())
		assert.Equal(t, allocation.ReasonManualRelease, a.ReleaseReason())
	})

	t.Run("release is idempotent", func(t *testing.T) {
		a := newTestAllocation(t)
		first := day(2)
		second := day(3)

		a.Release(first, allocation.ReasonUndo)
		a.Release(second, allocation.ReasonManualRelease)

		// The original release wins; no double-credit of availability.
		assert.Equal(t, first, *a.ReleasedAt())
		assert.Equal(t, allocation.ReasonUndo, a.ReleaseReason())
	})
}

func TestAllocation_ChangeQuantity(t *testing.T) {
	t.Run("edits active allocation", func(t *testing.T) {
		a := newTestAllocation(t)
		require.NoError(t, a.ChangeQuantity(qty(t, "25")))
		assert.Equal(t, "25", a.Quantity().String())
	})

	t.Run("rejects zero", func(t *testing.T) {
		a := newTestAllocation(t)
		require.Error(t, a.ChangeQuantity(kernel.ZeroQuantity()))
	})

	t.Run("rejects edit of released allocation", func(t *testing.T) {
		a := newTestAllocation(t)
		a.Release(day(2), allocation.ReasonManualRelease)
		require.Error(t, a.ChangeQuantity(qty(t, "25")))
	})
}

func TestCanUndo(t *testing.T) {
	committedAt := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	window := allocation.DefaultUndoWindow

	t.Run("inside window", func(t *testing.T) {
		now := committedAt.Add(4*time.Minute + 59*time.Second)
		assert.True(t, allocation.CanUndo(now, committedAt, window, false))
	})

	t.Run("past window", func(t *testing.T) {
		now := committedAt.Add(5*time.Minute + 1*time.Second)
		assert.False(t, allocation.CanUndo(now, committedAt, window, false))
	})

	t.Run("boundary is exclusive", func(t *testing.T) {
		now := committedAt.Add(5 * time.Minute)
		assert.False(t, allocation.CanUndo(now, committedAt, window, false))
	})

	t.Run("consumed is never undoable", func(t *testing.T) {
		now := committedAt.Add(1 * time.Second)
		assert.False(t, allocation.CanUndo(now, committedAt, window, true))
	})
}

func TestStrategyFromString(t *testing.T) {
	for _, s := range []allocation.Strategy{allocation.FIFO, allocation.FEFO, allocation.Manual} {
		parsed, err := allocation.StrategyFromString(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := allocation.StrategyFromString("LIFO")
	require.Error(t, err)
}
