package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type lot struct {
		number string
		guard  guard.ConstructorGuard
	}

	errLotNotConstructed := errors.New("lot must be created via newLot")

	newLot := func(number string) (lot, error) {
		if number == "" {
			return lot{}, errors.New("lot number is required")
		}
		return lot{number: number, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		l, err := newLot("LOT-2024-001")
		require.NoError(t, err)
		require.NoError(t, l.guard.Validate(errLotNotConstructed))
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var l lot
		err := l.guard.Validate(errLotNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errLotNotConstructed, err)
	})
}

func TestConstructorGuardDefaultError(t *testing.T) {
	require.Error(t, guard.ErrDefaultConstructorGuard)
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}
