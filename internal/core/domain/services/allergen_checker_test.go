package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestAllergenChecker_CheckSeparation(t *testing.T) {
	checker := services.NewAllergenChecker()

	t.Run("no overlap means no conflict", func(t *testing.T) {
		result := checker.CheckSeparation(
			[]services.Allergen{"gluten"},
			[]services.Allergen{"peanut"},
			[]services.Allergen{"peanut"},
		)

		assert.False(t, result.HasConflict)
		assert.False(t, result.IsBlocking)
		assert.Empty(t, result.ConflictingAllergens)
	})

	t.Run("overlap without customer restriction is advisory", func(t *testing.T) {
		result := checker.CheckSeparation(
			[]services.Allergen{"peanut", "soy"},
			[]services.Allergen{"peanut"},
			nil,
		)

		assert.True(t, result.HasConflict)
		assert.False(t, result.IsBlocking)
		assert.Equal(t, []services.Allergen{"peanut"}, result.ConflictingAllergens)
	})

	t.Run("overlap covered by a customer restriction blocks", func(t *testing.T) {
		result := checker.CheckSeparation(
			[]services.Allergen{"peanut", "soy"},
			[]services.Allergen{"soy", "milk"},
			[]services.Allergen{"soy"},
		)

		assert.True(t, result.HasConflict)
		assert.True(t, result.IsBlocking)
		assert.Equal(t, []services.Allergen{"soy"}, result.ConflictingAllergens)
	})

	t.Run("restriction on a non-overlapping allergen does not block", func(t *testing.T) {
		result := checker.CheckSeparation(
			[]services.Allergen{"gluten", "peanut"},
			[]services.Allergen{"peanut"},
			[]services.Allergen{"milk"},
		)

		assert.True(t, result.HasConflict)
		assert.False(t, result.IsBlocking)
	})

	t.Run("empty box never conflicts", func(t *testing.T) {
		result := checker.CheckSeparation(
			nil,
			[]services.Allergen{"peanut", "gluten"},
			[]services.Allergen{"peanut", "gluten"},
		)

		assert.False(t, result.HasConflict)
		assert.False(t, result.IsBlocking)
	})

	t.Run("conflicting allergens are deduplicated and sorted", func(t *testing.T) {
		result := checker.CheckSeparation(
			[]services.Allergen{"soy", "peanut", "gluten"},
			[]services.Allergen{"soy", "peanut", "soy", "peanut"},
			nil,
		)

		assert.Equal(t, []services.Allergen{"peanut", "soy"}, result.ConflictingAllergens)
	})
}
