package todo

import "time"

// DefaultUndoLimit is the number of undo steps kept when no limit is configured.
const DefaultUndoLimit = 100

// UndoHistory records repository snapshots so that changes can be rolled back.
//
// Callers record the state before a mutation. Undoing restores the most
// recent recorded state; undo itself is not recorded, so there is no redo.
type UndoHistory struct {
	repo    Snapshotter
	limit   int
	history []*Snapshot
}

// NewUndoHistory returns an empty history for repo. When limit is positive,
// recording beyond limit steps drops the oldest step; otherwise the history
// grows without bound.
func NewUndoHistory(repo Snapshotter, limit int) *UndoHistory {
	return &UndoHistory{repo: repo, limit: limit}
}

// HasUndoSteps reports whether there is anything to undo.
func (h *UndoHistory) HasUndoSteps() bool {
	return len(h.history) > 0
}

// Len returns the number of recorded steps.
func (h *UndoHistory) Len() int {
	return len(h.history)
}

// RecordUndoState pushes a snapshot of the repository's current items.
// Call it before changing the repository.
func (h *UndoHistory) RecordUndoState() {
	h.history = append(h.history, h.repo.CreateSnapshot())
	if h.limit > 0 && len(h.history) > h.limit {
		excess := len(h.history) - h.limit
		clear(h.history[:excess])
		h.history = h.history[excess:]
	}
}

// UndoLastChange restores the most recently recorded state and returns the
// time that state was captured. It returns ErrNothingToUndo when empty.
func (h *UndoHistory) UndoLastChange() (time.Time, error) {
	if len(h.history) == 0 {
		return time.Time{}, ErrNothingToUndo
	}

	last := len(h.history) - 1
	snapshot := h.history[last]
	h.history[last] = nil
	h.history = h.history[:last]

	h.repo.RestoreSnapshot(snapshot)
	return snapshot.CreatedAt(), nil
}
