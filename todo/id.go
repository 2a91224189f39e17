package todo

import (
	"fmt"

	internalstrings "github.com/amonks/solidtodo/internal/strings"
	"github.com/google/uuid"
)

// NewID returns a fresh random item identifier.
func NewID() uuid.UUID {
	return uuid.New()
}

// ParseID parses an item identifier as printed by the detail view.
func ParseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(internalstrings.NormalizeLowerTrimSpace(value))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse todo id %q: %w", value, err)
	}
	return id, nil
}
