// Package ids resolves and abbreviates item identifiers by prefix.
package ids

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPrefixNotFound indicates that no ID starts with the prefix.
	ErrPrefixNotFound = errors.New("no id matches prefix")

	// ErrAmbiguousPrefix indicates that several IDs start with the prefix.
	ErrAmbiguousPrefix = errors.New("id prefix is ambiguous")
)

// UniquePrefixLengths returns the shortest unique prefix length for each ID,
// keyed by the lowercased ID.
func UniquePrefixLengths(ids []string) map[string]int {
	uniqueIDs := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		uniqueIDs = append(uniqueIDs, idLower)
	}

	lengths := make(map[string]int, len(uniqueIDs))
	for _, id := range uniqueIDs {
		lengths[id] = uniquePrefixLength(id, uniqueIDs)
	}

	return lengths
}

func uniquePrefixLength(id string, ids []string) int {
	length := 0
	for _, other := range ids {
		if other == id {
			continue
		}
		length = max(length, commonPrefixLength(id, other)+1)
	}
	return min(max(length, 1), len(id))
}

func commonPrefixLength(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// Abbreviate shortens each ID to its unique prefix, but never below minLength.
func Abbreviate(ids []string, minLength int) map[string]string {
	lengths := UniquePrefixLengths(ids)
	short := make(map[string]string, len(lengths))
	for id, length := range lengths {
		short[id] = id[:min(max(length, minLength), len(id))]
	}
	return short
}

// MatchPrefix returns the one ID that starts with prefix, ignoring case.
func MatchPrefix(ids []string, prefix string) (string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", fmt.Errorf("%w: empty prefix", ErrPrefixNotFound)
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(strings.ToLower(id), prefix) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrPrefixNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d items", ErrAmbiguousPrefix, prefix, len(matches))
	}
}
