// Package allocation implements inventory reservation: strategies (FIFO,
// FEFO, manual), the pure allocation planner, the reservation entity with
// soft release, and the time-gated undo rule. Planning never mutates
// inventory; only committing a plan creates reservations, and the commit
// re-checks derived availability under a row lock to survive concurrent
// allocation of the same unit.
package allocation
