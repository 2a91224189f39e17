package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amonks/solidtodo/internal/ids"
	"github.com/amonks/solidtodo/todo"
	"github.com/google/uuid"
)

func TestResolveDataPath(t *testing.T) {
	cases := []struct {
		name   string
		flag   string
		env    string
		config string
		want   string
	}{
		{name: "flag wins", flag: "/flag.json", env: "/env.json", config: "/config.json", want: "/flag.json"},
		{name: "env over config", env: "/env.json", config: "/config.json", want: "/env.json"},
		{name: "config fallback", config: "/config.json", want: "/config.json"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveDataPath(tc.flag, tc.env, tc.config); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPriorityValue(t *testing.T) {
	var priority todo.Priority
	value := newPriorityValue(&priority, todo.PriorityNormal)

	if value.String() != "Normal" {
		t.Fatalf("expected default Normal, got %q", value.String())
	}
	if err := value.Set("URGENT"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if priority != todo.PriorityUrgent {
		t.Fatalf("expected urgent, got %s", priority)
	}
	if err := value.Set("0"); err != nil {
		t.Fatalf("set numeric: %v", err)
	}
	if priority != todo.PriorityLow {
		t.Fatalf("expected low, got %s", priority)
	}

	err := value.Set("someday")
	if !errors.Is(err, todo.ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	if priority != todo.PriorityLow {
		t.Fatalf("failed set changed priority to %s", priority)
	}
	if value.Type() != "priority" {
		t.Fatalf("unexpected type %q", value.Type())
	}
}

type memoryStorage struct {
	items []*todo.Item
}

func (m *memoryStorage) Load() []*todo.Item { return m.items }
func (m *memoryStorage) Save(items []*todo.Item) { m.items = items }

func newTestRepository(t *testing.T, titles ...string) *todo.MemoryRepository {
	t.Helper()

	repo := todo.NewRepository(&memoryStorage{})
	for _, title := range titles {
		item, err := todo.NewBuilder().WithTitle(title).Build()
		if err != nil {
			t.Fatalf("build %q: %v", title, err)
		}
		if err := repo.Add(item); err != nil {
			t.Fatalf("add %q: %v", title, err)
		}
	}
	return repo
}

func TestFindItemByNumber(t *testing.T) {
	repo := newTestRepository(t, "Buy milk", "Write report")

	item, err := findItem(repo, "2")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if item.Title() != "Write report" {
		t.Fatalf("expected Write report, got %q", item.Title())
	}

	if _, err := findItem(repo, "3"); !errors.Is(err, todo.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := findItem(repo, "0"); !errors.Is(err, todo.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange for 0, got %v", err)
	}
}

func TestFindItemByID(t *testing.T) {
	repo := newTestRepository(t, "Buy milk")
	want, _ := repo.GetByIndex(0)

	item, err := findItem(repo, strings.ToUpper(want.ID().String()))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if item != want {
		t.Fatalf("expected the tracked item")
	}

	if _, err := findItem(repo, todo.NewID().String()); !errors.Is(err, todo.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := findItem(repo, "not-an-id"); !errors.Is(err, ids.ErrPrefixNotFound) {
		t.Fatalf("expected ErrPrefixNotFound, got %v", err)
	}
}

func TestFindItemByPrefix(t *testing.T) {
	repo := newTestRepository(t, "Buy milk")
	want, err := todo.NewBuilder().
		WithID(uuid.MustParse("6f1c1c52-0d1e-4bb5-9d43-6f0d1b0f7a11")).
		WithTitle("Pay rent").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := repo.Add(want); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := findItem(repo, "6f1c1c52-x"); err == nil {
		t.Fatalf("expected no match")
	}

	item, err := findItem(repo, "6F1C1C")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if item != want {
		t.Fatalf("expected the tracked item")
	}
}

func TestPrintItemDetail(t *testing.T) {
	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	due := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	item, err := todo.NewBuilder().
		WithTitle("Pay rent").
		WithPriority(todo.PriorityUrgent).
		WithCreationDate(created).
		WithModificationDate(created).
		WithDueDate(&due).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var out bytes.Buffer
	printItemDetail(&out, item, "02/01/2006", created.Add(2*time.Hour))

	for _, want := range []string{
		"Title:    Pay rent\n",
		"Status:   pending\n",
		"Priority: Urgent\n",
		"Created:  2025-01-01 09:00:00 (2h ago)\n",
		"Due:      01/02/2025\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}
