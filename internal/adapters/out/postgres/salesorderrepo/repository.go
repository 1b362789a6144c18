package salesorderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSalesOrderRepository implements SalesOrderRepository using GORM.
type GormSalesOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSalesOrderRepository creates a new GORM sales order repository.
func NewGormSalesOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves a sales order by ID within the tenant. A cross-tenant ID
// reads as not found.
func (r *GormSalesOrderRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*order.SalesOrder, error) {
	if err := errors.Join(orgID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto SalesOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&dto, "id = ? AND org_id = ?", id.Bytes(), orgID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sales order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByLineID retrieves the sales order owning the given line within the tenant.
func (r *GormSalesOrderRepository) GetByLineID(ctx context.Context, orgID, lineID kernel.UUID) (*order.SalesOrder, error) {
	if err := errors.Join(orgID.Validate(), lineID.Validate()); err != nil {
		return nil, err
	}

	var lineDto SalesOrderLineDTO
	err := r.db.WithContext(ctx).First(&lineDto, "id = ?", lineID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sales order line", lineID.String())
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(lineDto.SalesOrderID[:])
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, orgID, id)
}

// Update persists the status of an existing sales order. Lines are immutable
// within the pipeline and are never written back.
func (r *GormSalesOrderRepository) Update(ctx context.Context, aggregate *order.SalesOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&SalesOrderDTO{}).
		Where("id = ?", dto.ID).
		Update("status", dto.Status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
