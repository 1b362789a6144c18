package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/guard"
)

var ErrCheckSeparationQueryIsNotConstructed = errors.New(
	"CheckSeparationQuery must be created via NewCheckSeparationQuery constructor",
)

// CheckSeparationQuery asks whether a candidate product may be packed into a
// box alongside the products already in it. The answer is advisory: a
// conflict only blocks when the ordering customer declared a matching
// restriction, and even then the placement decision stays with the caller.
type CheckSeparationQuery struct { //nolint:recvcheck //using for validation
	orgID     kernel.UUID
	boxID     kernel.UUID
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCheckSeparationQuery creates a separation check for one candidate
// product against one box.
func NewCheckSeparationQuery(orgID, boxID, productID kernel.UUID) (CheckSeparationQuery, error) {
	q := CheckSeparationQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setOrgID(orgID),
		q.setBoxID(boxID),
		q.setProductID(productID),
	); err != nil {
		return CheckSeparationQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q CheckSeparationQuery) Validate() error {
	return q.guard.Validate(ErrCheckSeparationQueryIsNotConstructed)
}

// OrgID returns the caller's tenant.
func (q CheckSeparationQuery) OrgID() kernel.UUID {
	return q.orgID
}

// BoxID returns the target box.
func (q CheckSeparationQuery) BoxID() kernel.UUID {
	return q.boxID
}

// ProductID returns the candidate product.
func (q CheckSeparationQuery) ProductID() kernel.UUID {
	return q.productID
}

func (q *CheckSeparationQuery) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}

	q.orgID = orgID
	return nil
}

func (q *CheckSeparationQuery) setBoxID(boxID kernel.UUID) error {
	if err := boxID.Validate(); err != nil {
		return err
	}

	q.boxID = boxID
	return nil
}

func (q *CheckSeparationQuery) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	q.productID = productID
	return nil
}

// CheckSeparationQueryResponse is the outcome of a separation check.
type CheckSeparationQueryResponse struct {
	HasConflict          bool
	IsBlocking           bool
	ConflictingAllergens []services.Allergen
}
