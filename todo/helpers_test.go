package todo

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var baseTime = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

// useClock replaces nowFunc with a clock that advances by one second per call.
func useClock(t *testing.T, start time.Time) {
	t.Helper()

	previous := nowFunc
	current := start
	nowFunc = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	t.Cleanup(func() {
		nowFunc = previous
	})
}

// memoryStorage implements Storage in memory and counts calls.
type memoryStorage struct {
	items []*Item
	loads int
	saves int
}

func (m *memoryStorage) Load() []*Item {
	m.loads++
	return cloneItems(m.items)
}

func (m *memoryStorage) Save(items []*Item) {
	m.saves++
	m.items = cloneItems(items)
}

var itemComparer = cmp.AllowUnexported(Item{})

func mustBuild(t *testing.T, b *Builder) *Item {
	t.Helper()

	item, err := b.Build()
	if err != nil {
		t.Fatalf("build item: %v", err)
	}
	return item
}

func newItem(t *testing.T, title string, priority Priority) *Item {
	t.Helper()
	return mustBuild(t, NewBuilder().WithTitle(title).WithPriority(priority))
}

func titles(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title())
	}
	return out
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
