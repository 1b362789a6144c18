package cmd

import "time"

// Config carries everything the service reads from the environment. Pipeline
// tunables fall back to the domain defaults when unset.
type Config struct {
	AppEnv   string
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	// MaxBoxWeightKg, MinBoxDimCm and MaxBoxDimCm bound box updates during
	// packing. Decimal strings, e.g. "25".
	MaxBoxWeightKg string
	MinBoxDimCm    string
	MaxBoxDimCm    string

	// ExpiryWarningDays controls the near-expiry annotation on FEFO plans.
	ExpiryWarningDays int

	// AllocationUndoWindow is how long after commit a reservation stays
	// undoable.
	AllocationUndoWindow time.Duration

	// SweepSchedule is the six-field cron expression of the reservation
	// sweep.
	SweepSchedule string
}
