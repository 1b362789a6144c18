package services

import "sort"

// Allergen is a normalized allergen tag, e.g. "peanut" or "gluten".
// Registry adapters are responsible for normalization; the checker compares
// tags verbatim.
type Allergen string

// SeparationResult is the outcome of an allergen separation check for one
// candidate product against one target box.
//
// HasConflict means the candidate shares at least one allergen with products
// already in the box. IsBlocking means the ordering customer has declared a
// restriction covering that shared allergen, so the caller must pick another
// box; without such a restriction the conflict is advisory only.
type SeparationResult struct {
	HasConflict          bool
	IsBlocking           bool
	ConflictingAllergens []Allergen
}

// AllergenChecker is a pure domain service deciding whether a candidate
// product may share a box with the contents already packed into it.
//
// The check never errors and has no side effects: it is consulted before
// placing content into a box, and the blocking decision is enforced by the
// caller, consistent with the warn-don't-block posture of the rest of the
// packing flow.
type AllergenChecker struct{}

// NewAllergenChecker creates a new AllergenChecker instance.
func NewAllergenChecker() AllergenChecker {
	return AllergenChecker{}
}

// CheckSeparation compares the candidate product's allergens against the
// allergens already present in the box and the customer's declared
// restrictions.
//
// A conflict is the intersection of box and candidate allergens. The
// conflict is blocking when the customer's restriction set covers any
// allergen in that intersection.
func (c AllergenChecker) CheckSeparation(
	boxAllergens, candidateAllergens, customerRestrictions []Allergen,
) SeparationResult {
	inBox := toSet(boxAllergens)
	restricted := toSet(customerRestrictions)

	var (
		conflicting []Allergen
		blocking    bool
		seen        = make(map[Allergen]struct{})
	)
	for _, allergen := range candidateAllergens {
		if _, dup := seen[allergen]; dup {
			continue
		}
		seen[allergen] = struct{}{}

		if _, shared := inBox[allergen]; !shared {
			continue
		}
		conflicting = append(conflicting, allergen)
		if _, hit := restricted[allergen]; hit {
			blocking = true
		}
	}
	sort.Slice(conflicting, func(i, j int) bool { return conflicting[i] < conflicting[j] })

	return SeparationResult{
		HasConflict:          len(conflicting) > 0,
		IsBlocking:           blocking,
		ConflictingAllergens: conflicting,
	}
}

func toSet(allergens []Allergen) map[Allergen]struct{} {
	set := make(map[Allergen]struct{}, len(allergens))
	for _, allergen := range allergens {
		set[allergen] = struct{}{}
	}
	return set
}
