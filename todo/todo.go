package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// nowFunc is the clock used to stamp modifications.
var nowFunc = time.Now

// Item represents a single todo.
//
// Items are created with a Builder or decoded from storage. The ID and
// creation time never change afterwards; every other field is changed through
// the Update methods, which also refresh LastModified.
type Item struct {
	id           uuid.UUID
	completed    bool
	title        string
	priority     Priority
	createdAt    time.Time
	lastModified time.Time
	dueDate      *time.Time
}

// ID returns the unique identifier of the item.
func (item *Item) ID() uuid.UUID { return item.id }

// Completed reports whether the item has been marked done.
func (item *Item) Completed() bool { return item.completed }

// Title returns the short summary of the item.
func (item *Item) Title() string { return item.title }

// Priority returns the importance of the item.
func (item *Item) Priority() Priority { return item.priority }

// CreatedAt returns when the item was created.
func (item *Item) CreatedAt() time.Time { return item.createdAt }

// LastModified returns when the item was last changed.
func (item *Item) LastModified() time.Time { return item.lastModified }

// DueDate returns a copy of the due date, or nil when none is set.
func (item *Item) DueDate() *time.Time { return copyTime(item.dueDate) }

// UpdateTitle replaces the title. The item is left untouched if the title is invalid.
func (item *Item) UpdateTitle(title string) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	item.title = title
	item.touch()
	return nil
}

// UpdatePriority replaces the priority. The item is left untouched if the
// priority is not one of the defined levels.
func (item *Item) UpdatePriority(priority Priority) error {
	if err := ValidatePriority(priority); err != nil {
		return err
	}
	item.priority = priority
	item.touch()
	return nil
}

// UpdateCompleted sets the completion flag.
func (item *Item) UpdateCompleted(completed bool) {
	item.completed = completed
	item.touch()
}

// UpdateDueDate sets the due date. Pass nil to clear it.
func (item *Item) UpdateDueDate(dueDate *time.Time) {
	item.dueDate = copyTime(dueDate)
	item.touch()
}

// UpdateFrom copies title, completion, due date and priority from other.
// The ID and creation time of item are kept.
func (item *Item) UpdateFrom(other *Item) {
	item.title = other.title
	item.completed = other.completed
	item.dueDate = copyTime(other.dueDate)
	item.priority = other.priority
	item.touch()
}

// Clone returns an independent copy of the item.
func (item *Item) Clone() *Item {
	clone := *item
	clone.dueDate = copyTime(item.dueDate)
	return &clone
}

func (item *Item) touch() {
	item.lastModified = nowFunc()
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := *t
	return &value
}

// itemRecord is the persisted form of an Item.
type itemRecord struct {
	ID           string     `json:"id"`
	IsCompleted  bool       `json:"isCompleted"`
	Title        string     `json:"title"`
	Priority     *Priority  `json:"priority"`
	CreatedAt    timestamp  `json:"createdAt"`
	LastModified timestamp  `json:"lastModified"`
	DueDate      *timestamp `json:"dueDate"`
}

// zonelessLayout matches times written without an offset, such as
// "2025-01-02T09:30:00.1234567". They are read as local time.
const zonelessLayout = "2006-01-02T15:04:05"

// timestamp encodes as RFC 3339 and also decodes zoneless times.
type timestamp struct {
	time.Time
}

func (ts *timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("parse time: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		ts.Time = t
		return nil
	}
	t, err := time.ParseInLocation(zonelessLayout, value, time.Local)
	if err != nil {
		return fmt.Errorf("parse time %q: %w", value, err)
	}
	ts.Time = t
	return nil
}

func newTimestamp(t *time.Time) *timestamp {
	if t == nil {
		return nil
	}
	return &timestamp{Time: *t}
}

// MarshalJSON encodes the item as a storage record.
func (item *Item) MarshalJSON() ([]byte, error) {
	priority := item.priority
	return json.Marshal(itemRecord{
		ID:           item.id.String(),
		IsCompleted:  item.completed,
		Title:        item.title,
		Priority:     &priority,
		CreatedAt:    timestamp{item.createdAt},
		LastModified: timestamp{item.lastModified},
		DueDate:      newTimestamp(item.dueDate),
	})
}

// itemFields is the decoding form of itemRecord. Priority and times are kept
// raw so that an unreadable value can fall back to its default.
type itemFields struct {
	ID           string          `json:"id"`
	IsCompleted  bool            `json:"isCompleted"`
	Title        string          `json:"title"`
	Priority     json.RawMessage `json:"priority"`
	CreatedAt    json.RawMessage `json:"createdAt"`
	LastModified json.RawMessage `json:"lastModified"`
	DueDate      json.RawMessage `json:"dueDate"`
}

// UnmarshalJSON decodes a storage record. Field names match case-insensitively.
// Missing or unreadable priorities and times are replaced by defaults; a
// missing or blank title is an error.
func (item *Item) UnmarshalJSON(data []byte) error {
	decoded, _, err := decodeItem(data)
	if err != nil {
		return err
	}
	*item = *decoded
	return nil
}

// decodeItem decodes a storage record. The returned warnings describe the
// fields that were replaced by defaults.
func decodeItem(data []byte) (*Item, []error, error) {
	var fields itemFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, nil, err
	}
	if err := ValidateTitle(fields.Title); err != nil {
		return nil, nil, err
	}

	var warnings []error

	id, err := uuid.Parse(fields.ID)
	if err != nil || id == uuid.Nil {
		id = uuid.New()
	}

	priority := PriorityNormal
	if !isNullJSON(fields.Priority) {
		var parsed Priority
		if err := json.Unmarshal(fields.Priority, &parsed); err != nil {
			warnings = append(warnings, fmt.Errorf("priority: %w, using %s", err, PriorityNormal))
		} else {
			priority = parsed
		}
	}

	createdAt, err := decodeTime(fields.CreatedAt)
	if err != nil {
		warnings = append(warnings, fmt.Errorf("createdAt: %w", err))
	}
	lastModified, err := decodeTime(fields.LastModified)
	if err != nil {
		warnings = append(warnings, fmt.Errorf("lastModified: %w", err))
	}
	switch {
	case createdAt.IsZero() && lastModified.IsZero():
		createdAt = nowFunc()
		lastModified = createdAt
	case createdAt.IsZero():
		createdAt = lastModified
	case lastModified.IsZero():
		lastModified = createdAt
	}

	var dueDate *time.Time
	if !isNullJSON(fields.DueDate) {
		due, err := decodeTime(fields.DueDate)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("dueDate: %w, clearing it", err))
		} else {
			dueDate = &due
		}
	}

	return &Item{
		id:           id,
		completed:    fields.IsCompleted,
		title:        fields.Title,
		priority:     priority,
		createdAt:    createdAt,
		lastModified: lastModified,
		dueDate:      dueDate,
	}, warnings, nil
}

// decodeTime returns the zero time for an absent or unreadable value.
func decodeTime(data json.RawMessage) (time.Time, error) {
	if isNullJSON(data) {
		return time.Time{}, nil
	}
	var ts timestamp
	if err := ts.UnmarshalJSON(data); err != nil {
		return time.Time{}, err
	}
	return ts.Time, nil
}

func isNullJSON(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

// String returns a short description for logs and error messages.
func (item *Item) String() string {
	return fmt.Sprintf("%s (%s)", item.title, item.id)
}
