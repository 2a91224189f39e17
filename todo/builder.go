package todo

import (
	"time"

	"github.com/google/uuid"
)

// Builder stages the fields of a new Item.
//
// Each With method returns the builder so calls can be chained, and the same
// builder can produce several items.
type Builder struct {
	id         uuid.UUID
	completed  bool
	title      string
	priority   Priority
	createdAt  time.Time
	modifiedAt time.Time
	dueDate    *time.Time
}

// NewBuilder returns a builder for a fresh item: new ID, not completed,
// Normal priority, no due date, created and modified now.
func NewBuilder() *Builder {
	now := nowFunc()
	return &Builder{
		id:         NewID(),
		priority:   PriorityNormal,
		createdAt:  now,
		modifiedAt: now,
	}
}

// BuilderFrom returns a builder seeded with every field of item.
func BuilderFrom(item *Item) *Builder {
	return &Builder{
		id:         item.id,
		completed:  item.completed,
		title:      item.title,
		priority:   item.priority,
		createdAt:  item.createdAt,
		modifiedAt: item.lastModified,
		dueDate:    copyTime(item.dueDate),
	}
}

// WithID sets the item ID.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithCompletion sets the completion flag.
func (b *Builder) WithCompletion(completed bool) *Builder {
	b.completed = completed
	return b
}

// WithTitle sets the title.
func (b *Builder) WithTitle(title string) *Builder {
	b.title = title
	return b
}

// WithPriority sets the priority.
func (b *Builder) WithPriority(priority Priority) *Builder {
	b.priority = priority
	return b
}

// WithCreationDate sets the creation time.
func (b *Builder) WithCreationDate(createdAt time.Time) *Builder {
	b.createdAt = createdAt
	return b
}

// WithModificationDate sets the last-modified time.
func (b *Builder) WithModificationDate(modifiedAt time.Time) *Builder {
	b.modifiedAt = modifiedAt
	return b
}

// WithDueDate sets the due date. Pass nil for no due date.
func (b *Builder) WithDueDate(dueDate *time.Time) *Builder {
	b.dueDate = copyTime(dueDate)
	return b
}

// Title returns the staged title.
func (b *Builder) Title() string { return b.title }

// Priority returns the staged priority.
func (b *Builder) Priority() Priority { return b.priority }

// Completed returns the staged completion flag.
func (b *Builder) Completed() bool { return b.completed }

// DueDate returns a copy of the staged due date.
func (b *Builder) DueDate() *time.Time { return copyTime(b.dueDate) }

// Build returns a new item with the staged values.
// It fails with ErrEmptyTitle or ErrTitleTooLong when the title is invalid.
func (b *Builder) Build() (*Item, error) {
	item := &Item{
		id:           b.id,
		completed:    b.completed,
		title:        b.title,
		priority:     b.priority,
		createdAt:    b.createdAt,
		lastModified: b.modifiedAt,
		dueDate:      copyTime(b.dueDate),
	}
	if err := ValidateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}
