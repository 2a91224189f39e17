package todo

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Snapshotter captures and restores the full state of a repository.
type Snapshotter interface {
	CreateSnapshot() *Snapshot
	RestoreSnapshot(snapshot *Snapshot)
}

// Repository mediates all reads and writes of the item collection.
type Repository interface {
	Snapshotter

	ItemCount() int
	GetAll() []*Item
	GetByID(id uuid.UUID) (*Item, bool)
	GetByIndex(index int) (*Item, bool)
	GetIndexForItem(item *Item) (int, error)
	Add(item *Item) error
	Update(item *Item) error
	Delete(id uuid.UUID)
	DeleteByIndex(index int) error
	SaveChanges()
}

// MemoryRepository keeps the items in memory, ordered by descending
// priority, and writes them to its Storage on SaveChanges.
//
// Items are loaded from storage on first access. The repository is not
// safe for concurrent use.
type MemoryRepository struct {
	storage Storage
	items   []*Item
	loaded  bool
	dirty   bool
}

var _ Repository = (*MemoryRepository)(nil)

// NewRepository returns a repository backed by storage. Nothing is read
// until the first call that needs the items.
func NewRepository(storage Storage) *MemoryRepository {
	return &MemoryRepository{storage: storage}
}

func (r *MemoryRepository) ensureLoaded() {
	if r.loaded {
		return
	}
	r.items = append([]*Item(nil), r.storage.Load()...)
	r.sortByPriority()
	r.loaded = true
}

// sortByPriority orders items by descending priority, keeping the current
// relative order of items with equal priority.
func (r *MemoryRepository) sortByPriority() {
	slices.SortStableFunc(r.items, func(a, b *Item) int {
		return int(b.priority) - int(a.priority)
	})
}

func (r *MemoryRepository) isValidIndex(index int) bool {
	return index >= 0 && index < len(r.items)
}

func (r *MemoryRepository) indexOfID(id uuid.UUID) int {
	return slices.IndexFunc(r.items, func(item *Item) bool {
		return item.id == id
	})
}

// Dirty reports whether there are changes that have not been saved.
func (r *MemoryRepository) Dirty() bool {
	return r.dirty
}

// ItemCount returns the number of items.
func (r *MemoryRepository) ItemCount() int {
	r.ensureLoaded()
	return len(r.items)
}

// GetAll returns the items in display order.
//
// The returned slice is a copy, but the items are the repository's own.
// Changes made through them are only marked for saving once passed to Update.
func (r *MemoryRepository) GetAll() []*Item {
	r.ensureLoaded()
	return slices.Clone(r.items)
}

// GetByID returns the item with the given ID.
func (r *MemoryRepository) GetByID(id uuid.UUID) (*Item, bool) {
	r.ensureLoaded()
	index := r.indexOfID(id)
	if index < 0 {
		return nil, false
	}
	return r.items[index], true
}

// GetByIndex returns the item at index in display order.
func (r *MemoryRepository) GetByIndex(index int) (*Item, bool) {
	r.ensureLoaded()
	if !r.isValidIndex(index) {
		return nil, false
	}
	return r.items[index], true
}

// GetIndexForItem returns the position of this exact item instance.
// An equal item that is not tracked by the repository is not found.
func (r *MemoryRepository) GetIndexForItem(item *Item) (int, error) {
	r.ensureLoaded()
	index := slices.Index(r.items, item)
	if index < 0 {
		return -1, ErrItemNotContained
	}
	return index, nil
}

// Add inserts item. It fails if the item is invalid or its ID is already used.
func (r *MemoryRepository) Add(item *Item) error {
	if err := ValidateItem(item); err != nil {
		return fmt.Errorf("add todo item: %w", err)
	}
	r.ensureLoaded()
	if r.indexOfID(item.id) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, item.id)
	}

	r.items = append(r.items, item)
	r.sortByPriority()
	r.dirty = true
	return nil
}

// Update applies item to the tracked item with the same ID.
//
// When item is the tracked instance itself, its changes are simply recorded.
// Otherwise title, completion, due date and priority are copied onto the
// tracked instance, which keeps its ID and creation time. An invalid item is
// rejected without marking the repository changed.
func (r *MemoryRepository) Update(item *Item) error {
	if err := ValidateItem(item); err != nil {
		return fmt.Errorf("update todo item: %w", err)
	}
	r.ensureLoaded()
	existing, ok := r.GetByID(item.id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, item.id)
	}
	if existing != item {
		existing.UpdateFrom(item)
	}

	r.sortByPriority()
	r.dirty = true
	return nil
}

// Delete removes the item with the given ID if present.
// The repository is marked changed even when no item matched.
func (r *MemoryRepository) Delete(id uuid.UUID) {
	r.ensureLoaded()
	if index := r.indexOfID(id); index >= 0 {
		r.items = slices.Delete(r.items, index, index+1)
	}
	r.dirty = true
}

// DeleteByIndex removes the item at index in display order.
func (r *MemoryRepository) DeleteByIndex(index int) error {
	r.ensureLoaded()
	if !r.isValidIndex(index) {
		return fmt.Errorf("%w: %d (have %d items)", ErrIndexOutOfRange, index, len(r.items))
	}
	r.items = slices.Delete(r.items, index, index+1)
	r.dirty = true
	return nil
}

// SaveChanges writes the items to storage if anything changed since the
// last save. Storage reports its own failures, so the changes are considered
// saved once the attempt has been made.
func (r *MemoryRepository) SaveChanges() {
	if !r.dirty {
		return
	}
	r.storage.Save(slices.Clone(r.items))
	r.dirty = false
}

// CreateSnapshot returns a deep copy of the current items.
func (r *MemoryRepository) CreateSnapshot() *Snapshot {
	r.ensureLoaded()
	return NewSnapshot(r.items)
}

// RestoreSnapshot replaces all items with copies of the snapshot's items.
func (r *MemoryRepository) RestoreSnapshot(snapshot *Snapshot) {
	r.items = snapshot.Items()
	r.loaded = true
	r.dirty = true
}
