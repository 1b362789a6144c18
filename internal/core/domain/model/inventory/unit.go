package inventory

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrUnitIsNotConstructed is returned when a Unit instance was not created
// through NewUnit or RestoreUnit.
var ErrUnitIsNotConstructed = errors.New("Unit must be created via NewUnit constructor")

// Unit is a license plate: a physically distinct, trackable quantity of one
// product at one location. The fulfillment pipeline reads units as allocation
// candidates and mutates their reservation state; the ledger schema itself is
// owned by the inventory subsystem.
//
// Invariants:
//   - quantity ≥ 0, enforced by kernel.Quantity
//   - a partially consumed unit keeps its identity with a reduced quantity
//   - status transitions follow the unit transition table
type Unit struct {
	id          kernel.UUID
	orgID       kernel.UUID
	productID   kernel.UUID
	quantity    kernel.Quantity
	uom         string
	lotNumber   string
	expiryDate  *time.Time
	receiptDate time.Time
	locationID  kernel.UUID
	status      UnitStatus

	isConstructed bool
}

// NewUnit creates an available unit as received into stock.
func NewUnit(
	id, orgID, productID kernel.UUID,
	quantity kernel.Quantity,
	uom, lotNumber string,
	expiryDate *time.Time,
	receiptDate time.Time,
	locationID kernel.UUID,
) (*Unit, error) {
	if err := errors.Join(id.Validate(), orgID.Validate(), productID.Validate(), locationID.Validate()); err != nil {
		return nil, err
	}
	if uom == "" {
		return nil, errs.NewValueIsRequiredError("uom")
	}
	if receiptDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("receiptDate")
	}

	return &Unit{
		id:            id,
		orgID:         orgID,
		productID:     productID,
		quantity:      quantity,
		uom:           uom,
		lotNumber:     lotNumber,
		expiryDate:    expiryDate,
		receiptDate:   receiptDate,
		locationID:    locationID,
		status:        Available,
		isConstructed: true,
	}, nil
}

// RestoreUnit reconstructs a unit from persistence with its stored status.
func RestoreUnit(
	id, orgID, productID kernel.UUID,
	quantity kernel.Quantity,
	uom, lotNumber string,
	expiryDate *time.Time,
	receiptDate time.Time,
	locationID kernel.UUID,
	status UnitStatus,
) (*Unit, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	unit, err := NewUnit(id, orgID, productID, quantity, uom, lotNumber, expiryDate, receiptDate, locationID)
	if err != nil {
		return nil, err
	}
	unit.status = status

	return unit, nil
}

// Validate ensures the unit was created through a constructor.
func (u *Unit) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUnitIsNotConstructed
	}
	return nil
}

// ID returns the unit's identifier.
func (u *Unit) ID() kernel.UUID { return u.id }

// OrgID returns the owning tenant.
func (u *Unit) OrgID() kernel.UUID { return u.orgID }

// ProductID returns the stocked product.
func (u *Unit) ProductID() kernel.UUID { return u.productID }

// Quantity returns the physical on-hand quantity.
func (u *Unit) Quantity() kernel.Quantity { return u.quantity }

// UOM returns the unit of measure.
func (u *Unit) UOM() string { return u.uom }

// LotNumber returns the lot/batch number, empty when untracked.
func (u *Unit) LotNumber() string { return u.lotNumber }

// ExpiryDate returns the expiry date, nil for non-perishables.
func (u *Unit) ExpiryDate() *time.Time { return u.expiryDate }

// ReceiptDate returns when the unit was received into stock.
func (u *Unit) ReceiptDate() time.Time { return u.receiptDate }

// LocationID returns the storage location.
func (u *Unit) LocationID() kernel.UUID { return u.locationID }

// Status returns the reservation-lifecycle state.
func (u *Unit) Status() UnitStatus { return u.status }

// IsAllocatable reports whether the unit may serve as an allocation candidate.
func (u *Unit) IsAllocatable() bool {
	return u.status == Available
}

// Reserve marks the unit as carrying at least one active allocation.
// Idempotent: reserving an already reserved unit is a no-op, since several
// allocations can draw from the same unit.
func (u *Unit) Reserve() error {
	if u.status == Reserved {
		return nil
	}
	return u.transitionTo(Reserved)
}

// ReleaseReservation returns a reserved unit to the available pool. Called
// when the last active allocation on the unit is released.
func (u *Unit) ReleaseReservation() error {
	return u.transitionTo(Available)
}

// Block places the unit under quality hold.
func (u *Unit) Block() error {
	return u.transitionTo(Blocked)
}

// Unblock releases a quality hold back to available.
func (u *Unit) Unblock() error {
	return u.transitionTo(Available)
}

// ConsumeQuantity records physical consumption of qty at shipping. The
// remainder keeps the unit's identity; a fully consumed unit transitions to
// the terminal Consumed status.
func (u *Unit) ConsumeQuantity(qty kernel.Quantity) error {
	if !qty.IsPositive() {
		return errs.NewValueIsInvalidError("consumed quantity must be greater than 0")
	}

	remainder, err := u.quantity.Sub(qty)
	if err != nil {
		return err
	}

	u.quantity = remainder
	if remainder.IsZero() {
		return u.transitionTo(Consumed)
	}
	return nil
}

func (u *Unit) transitionTo(next UnitStatus) error {
	newStatus, err := u.status.TransitionTo(next)
	if err != nil {
		return err
	}
	u.status = newStatus
	return nil
}
