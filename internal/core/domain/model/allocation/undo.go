package allocation

import "time"

// DefaultUndoWindow is how long after commit an allocation remains undoable.
const DefaultUndoWindow = 5 * time.Minute

// CanUndo reports whether an allocation committed at committedAt may still be
// undone at now. Undo is admitted strictly inside the window and only while
// no box content references the allocation (consumed=false).
//
// This is a pure function of its inputs, evaluated at the API boundary each
// time: no "undoable" flag is ever persisted where it could go stale.
func CanUndo(now, committedAt time.Time, window time.Duration, consumed bool) bool {
	if consumed {
		return false
	}
	return now.Sub(committedAt) < window
}
