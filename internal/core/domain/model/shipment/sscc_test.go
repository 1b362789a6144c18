package shipment_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSSCC(t *testing.T) {
	t.Run("accepts codes with a correct check digit", func(t *testing.T) {
		for _, code := range []string{
			"001234567890123452",
			"000000000000000017",
			"012345678901234560",
		} {
			sscc, err := shipment.NewSSCC(code)
			require.NoError(t, err, code)
			assert.Equal(t, code, sscc.String())
			assert.NoError(t, sscc.Validate())
		}
	})

	t.Run("rejects a wrong check digit", func(t *testing.T) {
		_, err := shipment.NewSSCC("001234567890123453")
		require.Error(t, err)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := shipment.NewSSCC("12345")
		require.Error(t, err)

		_, err = shipment.NewSSCC("0012345678901234520")
		require.Error(t, err)
	})

	t.Run("rejects non-digits", func(t *testing.T) {
		_, err := shipment.NewSSCC("00123456789012345X")
		require.Error(t, err)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := shipment.NewSSCC("")
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var zero shipment.SSCC
		require.Error(t, zero.Validate())
	})
}

func TestSSCC_IsEqual(t *testing.T) {
	a, err := shipment.NewSSCC("001234567890123452")
	require.NoError(t, err)
	b, err := shipment.NewSSCC("001234567890123452")
	require.NoError(t, err)
	c, err := shipment.NewSSCC("000000000000000017")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
