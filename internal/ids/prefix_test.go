package ids

import (
	"errors"
	"testing"
)

func TestUniquePrefixLengths(t *testing.T) {
	ids := []string{"2u3iutfd", "2a9k1111", "abc12345"}
	lengths := UniquePrefixLengths(ids)

	if got := lengths["2u3iutfd"]; got != 2 {
		t.Fatalf("expected 2u3iutfd prefix length 2, got %d", got)
	}
	if got := lengths["2a9k1111"]; got != 2 {
		t.Fatalf("expected 2a9k1111 prefix length 2, got %d", got)
	}
	if got := lengths["abc12345"]; got != 1 {
		t.Fatalf("expected abc12345 prefix length 1, got %d", got)
	}
}

func TestUniquePrefixLengthsIsCaseInsensitive(t *testing.T) {
	ids := []string{"Abc", "aBD"}
	lengths := UniquePrefixLengths(ids)

	if got := lengths["abc"]; got != 3 {
		t.Fatalf("expected abc prefix length 3, got %d", got)
	}
	if got := lengths["abd"]; got != 3 {
		t.Fatalf("expected abd prefix length 3, got %d", got)
	}
}

func TestUniquePrefixLengthsSkipsDuplicatesAndEmpty(t *testing.T) {
	ids := []string{"abc", "", "ABC"}
	lengths := UniquePrefixLengths(ids)

	if len(lengths) != 1 {
		t.Fatalf("expected 1 unique ID, got %d", len(lengths))
	}
	if got := lengths["abc"]; got != 1 {
		t.Fatalf("expected abc prefix length 1, got %d", got)
	}
}

func TestAbbreviateKeepsMinimumLength(t *testing.T) {
	short := Abbreviate([]string{"6f1c1c52", "6f2a0000", "0b0b8a4e"}, 4)

	if got := short["6f1c1c52"]; got != "6f1c" {
		t.Fatalf("expected 6f1c, got %q", got)
	}
	if got := short["0b0b8a4e"]; got != "0b0b" {
		t.Fatalf("expected 0b0b, got %q", got)
	}
}

func TestAbbreviateExtendsPastMinimum(t *testing.T) {
	short := Abbreviate([]string{"abcdef01", "abcdef02"}, 4)

	if got := short["abcdef01"]; got != "abcdef01" {
		t.Fatalf("expected full id, got %q", got)
	}
}

func TestMatchPrefix(t *testing.T) {
	ids := []string{"6f1c1c52", "6f2a0000", "0b0b8a4e"}

	got, err := MatchPrefix(ids, "6F1")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if got != "6f1c1c52" {
		t.Fatalf("expected 6f1c1c52, got %q", got)
	}

	if _, err := MatchPrefix(ids, "6f"); !errors.Is(err, ErrAmbiguousPrefix) {
		t.Fatalf("expected ErrAmbiguousPrefix, got %v", err)
	}
	if _, err := MatchPrefix(ids, "ff"); !errors.Is(err, ErrPrefixNotFound) {
		t.Fatalf("expected ErrPrefixNotFound, got %v", err)
	}
	if _, err := MatchPrefix(ids, " "); !errors.Is(err, ErrPrefixNotFound) {
		t.Fatalf("expected ErrPrefixNotFound for blank prefix, got %v", err)
	}
}
