// Package todo implements a personal todo list backed by a JSON file.
//
// Items live in an in-memory Repository that loads lazily from a Storage
// provider, keeps itself sorted by descending priority, and only writes back
// when something changed. An UndoHistory records snapshots of the repository
// so that mutations can be rolled back one step at a time.
//
// The public API mirrors the console commands:
//   - Add, Update, Delete, DeleteByIndex for item lifecycle
//   - GetAll, GetByID, GetByIndex, GetIndexForItem for querying
//   - CreateSnapshot, RestoreSnapshot and UndoHistory for undo
package todo

import (
	"encoding/json"
	"fmt"
	"strconv"

	internalstrings "github.com/amonks/solidtodo/internal/strings"
	"github.com/amonks/solidtodo/internal/validation"
)

// Priority represents the importance of an item. Higher values sort first.
type Priority int

const (
	// PriorityLow is for items that can wait.
	PriorityLow Priority = iota

	// PriorityNormal is the default priority.
	PriorityNormal

	// PriorityHigh is for items that should be done soon.
	PriorityHigh

	// PriorityUrgent is for items that should be done now.
	PriorityUrgent
)

// ValidPriorities returns all valid priorities in ascending order.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

// String returns the display name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityNormal:
		return "Normal"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return "Priority(" + strconv.Itoa(int(p)) + ")"
	}
}

// PriorityNames returns the display names of all priorities in ascending order.
func PriorityNames() []string {
	priorities := ValidPriorities()
	names := make([]string, 0, len(priorities))
	for _, p := range priorities {
		names = append(names, p.String())
	}
	return names
}

// ParsePriority parses a priority name (case-insensitive) or its numeric value.
func ParsePriority(value string) (Priority, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	for _, p := range ValidPriorities() {
		if normalized == internalstrings.NormalizeLower(p.String()) {
			return p, nil
		}
	}
	if n, err := strconv.Atoi(normalized); err == nil && Priority(n).IsValid() {
		return Priority(n), nil
	}
	return PriorityNormal, validation.FormatInvalidValueError(ErrInvalidPriority, value, PriorityNames())
}

// MarshalJSON encodes the priority by name.
func (p Priority) MarshalJSON() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, int(p))
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts either a priority name or its numeric value.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParsePriority(name)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPriority, string(data))
	}
	if !Priority(n).IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, n)
	}
	*p = Priority(n)
	return nil
}

// MaxTitleLength is the maximum allowed length for an item title, in runes.
const MaxTitleLength = 500
