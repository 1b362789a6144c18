package allocationrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAllocationRepository implements AllocationRepository using GORM.
type GormAllocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAllocationRepository creates a new GORM allocation repository.
func NewGormAllocationRepository(db *gorm.DB, tracker aggregateTracker) *GormAllocationRepository {
	return &GormAllocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new allocation.
func (r *GormAllocationRepository) Add(ctx context.Context, aggregate *allocation.Allocation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an allocation by ID within the tenant. Ownership runs
// through the allocated line's sales order; an allocation of another tenant
// reads exactly like a missing one.
func (r *GormAllocationRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*allocation.Allocation, error) {
	if err := errors.Join(orgID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto AllocationDTO
	err := r.db.WithContext(ctx).
		Table("allocations").
		Select("allocations.*").
		Joins("JOIN sales_order_lines ON sales_order_lines.id = allocations.sales_order_line_id").
		Joins("JOIN sales_orders ON sales_orders.id = sales_order_lines.sales_order_id").
		Where("allocations.id = ? AND sales_orders.org_id = ?", id.Bytes(), orgID.Bytes()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("allocation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update persists quantity changes or a release to an existing allocation.
func (r *GormAllocationRepository) Update(ctx context.Context, aggregate *allocation.Allocation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AllocationDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"quantity":       dto.Quantity,
			"released_at":    dto.ReleasedAt,
			"release_reason": dto.ReleaseReason,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ActiveByLine retrieves the active allocations of one sales order line.
func (r *GormAllocationRepository) ActiveByLine(ctx context.Context, lineID kernel.UUID) ([]*allocation.Allocation, error) {
	if err := lineID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AllocationDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "sales_order_line_id = ? AND released_at IS NULL", lineID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// ActiveByUnit retrieves the active allocations against one inventory unit.
func (r *GormAllocationRepository) ActiveByUnit(ctx context.Context, unitID kernel.UUID) ([]*allocation.Allocation, error) {
	if err := unitID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AllocationDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "inventory_unit_id = ? AND released_at IS NULL", unitID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// ActiveForOrder retrieves the active allocations across all lines of one
// sales order.
func (r *GormAllocationRepository) ActiveForOrder(ctx context.Context, orderID kernel.UUID) ([]*allocation.Allocation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AllocationDTO
	err := r.db.WithContext(ctx).
		Table("allocations").
		Select("allocations.*").
		Joins("JOIN sales_order_lines ON sales_order_lines.id = allocations.sales_order_line_id").
		Where("sales_order_lines.sales_order_id = ? AND allocations.released_at IS NULL", orderID.Bytes()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// ActiveForCancelledOrders retrieves active allocations whose sales order
// has been cancelled, paired with the owning tenant. The reservation sweep
// job releases them.
func (r *GormAllocationRepository) ActiveForCancelledOrders(ctx context.Context) ([]ports.CancelledOrderAllocation, error) {
	type sweepRow struct {
		AllocationDTO `gorm:"embedded"`
		OrgID         uuid.UUID
	}

	var rows []sweepRow
	err := r.db.WithContext(ctx).
		Table("allocations").
		Select("allocations.*, sales_orders.org_id AS org_id").
		Joins("JOIN sales_order_lines ON sales_order_lines.id = allocations.sales_order_line_id").
		Joins("JOIN sales_orders ON sales_orders.id = sales_order_lines.sales_order_id").
		Where("sales_orders.status = ? AND allocations.released_at IS NULL", int(order.Cancelled)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	stale := make([]ports.CancelledOrderAllocation, 0, len(rows))
	for _, row := range rows {
		aggregate, domainErr := toDomain(row.AllocationDTO)
		if domainErr != nil {
			return nil, domainErr
		}
		orgID, orgErr := kernel.UUIDFromBytes(row.OrgID[:])
		if orgErr != nil {
			return nil, orgErr
		}
		stale = append(stale, ports.CancelledOrderAllocation{OrgID: orgID, Allocation: aggregate})
	}

	return stale, nil
}

func toDomainSlice(dtos []AllocationDTO) ([]*allocation.Allocation, error) {
	aggregates := make([]*allocation.Allocation, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}
	return aggregates, nil
}
