package todo

import "time"

// Snapshot is an immutable copy of a repository's items at a point in time.
type Snapshot struct {
	createdAt time.Time
	items     []*Item
}

// NewSnapshot deep-copies items into a new snapshot stamped with the current time.
func NewSnapshot(items []*Item) *Snapshot {
	return &Snapshot{
		createdAt: nowFunc(),
		items:     cloneItems(items),
	}
}

// CreatedAt returns when the snapshot was taken.
func (s *Snapshot) CreatedAt() time.Time { return s.createdAt }

// Len returns the number of items in the snapshot.
func (s *Snapshot) Len() int { return len(s.items) }

// Items returns a fresh deep copy of the snapshot's items.
func (s *Snapshot) Items() []*Item {
	return cloneItems(s.items)
}

func cloneItems(items []*Item) []*Item {
	cloned := make([]*Item, 0, len(items))
	for _, item := range items {
		cloned = append(cloned, item.Clone())
	}
	return cloned
}
