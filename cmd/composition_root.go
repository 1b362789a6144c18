package cmd

import (
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/allergenrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/allocation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// CompositionRoot wires the persistence layer into the use-case handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	boxLimits     shipment.BoxLimits
	undoWindow    time.Duration
	warningWindow time.Duration
}

// NewCompositionRoot builds the root from the environment config and an open
// database handle.
func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		boxLimits:     boxLimitsFromConfig(config),
		undoWindow:    undoWindowFromConfig(config),
		warningWindow: time.Duration(config.ExpiryWarningDays) * 24 * time.Hour,
	}
}

func boxLimitsFromConfig(config Config) shipment.BoxLimits {
	limits := shipment.DefaultBoxLimits()
	if q, err := kernel.NewQuantityFromString(config.MaxBoxWeightKg); err == nil && q.IsPositive() {
		limits.MaxWeight = q
	}
	if q, err := kernel.NewQuantityFromString(config.MinBoxDimCm); err == nil && q.IsPositive() {
		limits.MinDimension = q
	}
	if q, err := kernel.NewQuantityFromString(config.MaxBoxDimCm); err == nil && q.IsPositive() {
		limits.MaxDimension = q
	}
	return limits
}

func undoWindowFromConfig(config Config) time.Duration {
	if config.AllocationUndoWindow > 0 {
		return config.AllocationUndoWindow
	}
	return allocation.DefaultUndoWindow
}

func (c *CompositionRoot) CreateCommitAllocationCommandHandler() commands.CommitAllocationCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCommitAllocationCommandHandler(f)
}

func (c *CompositionRoot) CreateOverrideAllocationCommandHandler() commands.OverrideAllocationCommandHandler {
	return commands.NewOverrideAllocationCommandHandler(c.releaseUoWFactory())
}

func (c *CompositionRoot) CreateUndoAllocationCommandHandler() (commands.UndoAllocationCommandHandler, error) {
	return commands.NewUndoAllocationCommandHandler(c.releaseUoWFactory(), c.undoWindow)
}

func (c *CompositionRoot) CreateReleaseAllocationsCommandHandler() commands.ReleaseAllocationsCommandHandler {
	return commands.NewReleaseAllocationsCommandHandler(c.releaseUoWFactory())
}

func (c *CompositionRoot) CreateSweepReservationsCommandHandler() commands.SweepReservationsCommandHandler {
	return commands.NewSweepReservationsCommandHandler(c.releaseUoWFactory())
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateAddBoxCommandHandler() commands.AddBoxCommandHandler {
	return commands.NewAddBoxCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateUpdateBoxCommandHandler() commands.UpdateBoxCommandHandler {
	return commands.NewUpdateBoxCommandHandler(c.shipmentUoWFactory(), c.boxLimits)
}

func (c *CompositionRoot) CreateSetBoxSSCCCommandHandler() commands.SetBoxSSCCCommandHandler {
	return commands.NewSetBoxSSCCCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateAddContentCommandHandler() commands.AddContentCommandHandler {
	return commands.NewAddContentCommandHandler(c.packingUoWFactory())
}

func (c *CompositionRoot) CreateCompletePackingCommandHandler() commands.CompletePackingCommandHandler {
	return commands.NewCompletePackingCommandHandler(c.packingUoWFactory())
}

func (c *CompositionRoot) CreateManifestShipmentCommandHandler() commands.ManifestShipmentCommandHandler {
	return commands.NewManifestShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateMarkShippedCommandHandler() commands.MarkShippedCommandHandler {
	return commands.NewMarkShippedCommandHandler(c.packingUoWFactory())
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreatePlanAllocationQueryHandler() queries.PlanAllocationQueryHandler {
	return queries.NewPlanAllocationQueryHandler(c.gormDB, c.warningWindow)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCheckSeparationQueryHandler() queries.CheckSeparationQueryHandler {
	registry := allergenrepo.NewGormAllergenRegistry(c.gormDB)
	return queries.NewCheckSeparationQueryHandler(c.gormDB, registry)
}

func (c *CompositionRoot) releaseUoWFactory() commands.ReleaseUoWFactory {
	return FuncReleaseUoWFactory(func() commands.ReleaseUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) packingUoWFactory() commands.PackingUoWFactory {
	return FuncPackingUoWFactory(func() commands.PackingUoW {
		return c.uowFactory.Create()
	})
}

type FuncAllocationUoWFactory func() commands.AllocationUoW

func (f FuncAllocationUoWFactory) Create() commands.AllocationUoW {
	return f()
}

type FuncReleaseUoWFactory func() commands.ReleaseUoW

func (f FuncReleaseUoWFactory) Create() commands.ReleaseUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncPackingUoWFactory func() commands.PackingUoW

func (f FuncPackingUoWFactory) Create() commands.PackingUoW {
	return f()
}
