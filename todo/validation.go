package todo

import (
	"errors"
	"fmt"
	"unicode/utf8"

	internalstrings "github.com/amonks/solidtodo/internal/strings"
)

var (
	// ErrEmptyTitle is returned when an item title is empty or only whitespace.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when an item title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrInvalidPriority is returned when a priority is not one of the known levels.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrItemNotFound is returned when no item has the requested ID.
	ErrItemNotFound = errors.New("todo item not found")

	// ErrItemNotContained is returned when an item instance is not tracked by the repository.
	ErrItemNotContained = errors.New("item not contained in repository")

	// ErrDuplicateID is returned when adding an item whose ID already exists.
	ErrDuplicateID = errors.New("cannot add todo item with duplicate ID")

	// ErrIndexOutOfRange is returned when an index does not address an item.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNothingToUndo is returned when the undo history is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if internalstrings.NormalizeWhitespace(title) == "" {
		return ErrEmptyTitle
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, n, MaxTitleLength)
	}
	return nil
}

// ValidatePriority checks if the priority is valid.
func ValidatePriority(priority Priority) error {
	if !priority.IsValid() {
		return fmt.Errorf("%w: got %d", ErrInvalidPriority, int(priority))
	}
	return nil
}

// ValidateItem checks if an item is valid.
func ValidateItem(item *Item) error {
	if err := ValidateTitle(item.title); err != nil {
		return err
	}
	return ValidatePriority(item.priority)
}
