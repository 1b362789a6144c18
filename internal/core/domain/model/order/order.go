package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when a SalesOrder instance was not
	// created through NewSalesOrder or RestoreSalesOrder.
	ErrOrderIsNotConstructed = errors.New("SalesOrder must be created via NewSalesOrder constructor")

	// ErrLineIsNotConstructed is returned when a Line instance was not created
	// through NewLine or RestoreLine.
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

	// ErrLineNotFound is returned when a referenced line does not belong to the order.
	ErrLineNotFound = errors.New("sales order line not found on order")
)

// Line is one requested product and quantity on a sales order.
// Allocated and packed quantities are never stored on the line; they are
// derived from the active allocations and box contents so that counters
// cannot drift from the reservation ledger.
type Line struct {
	id              kernel.UUID
	productID       kernel.UUID
	quantityOrdered kernel.Quantity

	isConstructed bool
}

// NewLine creates a validated order line. The ordered quantity must be
// strictly positive.
func NewLine(id, productID kernel.UUID, quantityOrdered kernel.Quantity) (*Line, error) {
	if err := errors.Join(id.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	if !quantityOrdered.IsPositive() {
		return nil, errs.NewValueIsInvalidError("quantityOrdered must be greater than 0")
	}

	return &Line{
		id:              id,
		productID:       productID,
		quantityOrdered: quantityOrdered,
		isConstructed:   true,
	}, nil
}

// Validate ensures the line was created through its constructor.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// ProductID returns the requested product.
func (l *Line) ProductID() kernel.UUID {
	return l.productID
}

// QuantityOrdered returns the requested quantity.
func (l *Line) QuantityOrdered() kernel.Quantity {
	return l.quantityOrdered
}

// SalesOrder is the aggregate root for a customer order. The fulfillment
// pipeline reads it and advances its status; order capture itself is owned
// elsewhere.
//
// Invariants:
//   - orgID is immutable and scopes every child entity
//   - status transitions follow the central transition table
//   - every line belongs to exactly one order
type SalesOrder struct {
	id         kernel.UUID
	orgID      kernel.UUID
	number     string
	customerID kernel.UUID
	status     Status
	lines      []*Line

	isConstructed bool
}

// NewSalesOrder creates a new order in Draft status with at least one line.
func NewSalesOrder(id, orgID kernel.UUID, number string, customerID kernel.UUID, lines []*Line) (*SalesOrder, error) {
	if err := errors.Join(id.Validate(), orgID.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("order lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
	}

	return &SalesOrder{
		id:            id,
		orgID:         orgID,
		number:        number,
		customerID:    customerID,
		status:        Draft,
		lines:         lines,
		isConstructed: true,
	}, nil
}

// RestoreSalesOrder reconstructs an order from persistence with its stored
// status. Used exclusively by repository adapters.
func RestoreSalesOrder(
	id, orgID kernel.UUID,
	number string,
	customerID kernel.UUID,
	status Status,
	lines []*Line,
) (*SalesOrder, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	restored, err := NewSalesOrder(id, orgID, number, customerID, lines)
	if err != nil {
		return nil, err
	}
	restored.status = status

	return restored, nil
}

// Validate ensures the order was created through a constructor.
func (o *SalesOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *SalesOrder) ID() kernel.UUID {
	return o.id
}

// OrgID returns the owning tenant.
func (o *SalesOrder) OrgID() kernel.UUID {
	return o.orgID
}

// Number returns the per-tenant sequential order number.
func (o *SalesOrder) Number() string {
	return o.number
}

// CustomerID returns the ordering customer.
func (o *SalesOrder) CustomerID() kernel.UUID {
	return o.customerID
}

// Status returns the current lifecycle state.
func (o *SalesOrder) Status() Status {
	return o.status
}

// Lines returns the order lines.
func (o *SalesOrder) Lines() []*Line {
	return o.lines
}

// Line returns the line with the given identifier, or ErrLineNotFound.
func (o *SalesOrder) Line(lineID kernel.UUID) (*Line, error) {
	for _, line := range o.lines {
		if line.id.IsEqual(lineID) {
			return line, nil
		}
	}
	return nil, ErrLineNotFound
}

// MarkAllocated advances the order to Allocated after a successful
// allocation commit. A no-op when the order has already advanced past
// Confirmed; allocation of further lines must not regress the status.
func (o *SalesOrder) MarkAllocated() error {
	if o.status != Confirmed {
		return nil
	}
	return o.transitionTo(Allocated)
}

// StartPacking advances the order to Packing when a shipment is created.
// Legal from Picking and Picked per the transition table.
func (o *SalesOrder) StartPacking() error {
	return o.transitionTo(Packing)
}

// MarkPacked advances the order to Packed when packing completes.
func (o *SalesOrder) MarkPacked() error {
	return o.transitionTo(Packed)
}

// MarkShipped advances the order to Shipped at carrier hand-off.
func (o *SalesOrder) MarkShipped() error {
	return o.transitionTo(Shipped)
}

// MarkDelivered closes the order lifecycle.
func (o *SalesOrder) MarkDelivered() error {
	return o.transitionTo(Delivered)
}

// Hold diverts the order out of the fulfillment flow.
func (o *SalesOrder) Hold() error {
	return o.transitionTo(OnHold)
}

// Cancel abandons the order. Releasing its reservations is the caller's
// responsibility.
func (o *SalesOrder) Cancel() error {
	return o.transitionTo(Cancelled)
}

func (o *SalesOrder) transitionTo(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}
