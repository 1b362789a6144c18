package inventoryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryUnitRepository implements InventoryUnitRepository using GORM.
type GormInventoryUnitRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryUnitRepository creates a new GORM inventory unit repository.
func NewGormInventoryUnitRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryUnitRepository {
	return &GormInventoryUnitRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves an inventory unit by ID within the tenant.
func (r *GormInventoryUnitRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*inventory.Unit, error) {
	return r.get(ctx, orgID, id, false)
}

// GetForUpdate retrieves an inventory unit by ID within the tenant, holding
// a row lock until the surrounding transaction ends. Allocation commits use
// the lock so the availability re-check and the reservation write see the
// same quantity.
func (r *GormInventoryUnitRepository) GetForUpdate(ctx context.Context, orgID, id kernel.UUID) (*inventory.Unit, error) {
	return r.get(ctx, orgID, id, true)
}

func (r *GormInventoryUnitRepository) get(ctx context.Context, orgID, id kernel.UUID, lock bool) (*inventory.Unit, error) {
	if err := errors.Join(orgID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if lock {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto InventoryUnitDTO
	if err := tx.First(&dto, "id = ? AND org_id = ?", id.Bytes(), orgID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory unit", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AvailableCandidates retrieves every allocatable unit of a product with its
// derived remaining availability, ordered by receipt date for stable plans.
func (r *GormInventoryUnitRepository) AvailableCandidates(
	ctx context.Context,
	orgID, productID kernel.UUID,
) ([]allocation.Candidate, error) {
	if err := errors.Join(orgID.Validate(), productID.Validate()); err != nil {
		return nil, err
	}

	type candidateRow struct {
		InventoryUnitDTO `gorm:"embedded"`
		Remaining        decimal.Decimal
	}

	var rows []candidateRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.*,
			u.quantity - COALESCE(a.allocated, 0) AS remaining
		FROM inventory_units u
		LEFT JOIN (
			SELECT inventory_unit_id, SUM(quantity) AS allocated
			FROM allocations
			WHERE released_at IS NULL
			GROUP BY inventory_unit_id
		) a ON a.inventory_unit_id = u.id
		WHERE u.org_id = ? AND u.product_id = ? AND u.status = ?
		ORDER BY u.receipt_date, u.id
	`, orgID.Bytes(), productID.Bytes(), int(inventory.Available)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]allocation.Candidate, 0, len(rows))
	for _, row := range rows {
		unit, unitErr := toDomain(row.InventoryUnitDTO)
		if unitErr != nil {
			return nil, unitErr
		}
		remaining, remErr := kernel.NewQuantity(row.Remaining)
		if remErr != nil {
			return nil, remErr
		}
		candidates = append(candidates, allocation.Candidate{Unit: unit, Remaining: remaining})
	}

	return candidates, nil
}

// Update persists quantity and status changes to an existing unit.
func (r *GormInventoryUnitRepository) Update(ctx context.Context, unit *inventory.Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	dto := fromDomain(unit)
	result := r.db.WithContext(ctx).
		Model(&InventoryUnitDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"quantity": dto.Quantity,
			"status":   dto.Status,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(unit.ID(), unit)
	return nil
}
