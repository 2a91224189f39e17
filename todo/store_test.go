package todo

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestFileStorage(t *testing.T) (*FileStorage, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "data", DataFile)
	storage, err := NewFileStorage(path, FileStorageOptions{
		Logger: log.New(&logs, "", 0),
	})
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}
	return storage, &logs
}

func TestNewFileStorage_CreatesParentDir(t *testing.T) {
	storage, _ := newTestFileStorage(t)

	info, err := os.Stat(filepath.Dir(storage.Path()))
	if err != nil {
		t.Fatalf("stat data dir: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected data dir to be a directory")
	}
}

func TestNewFileStorage_EmptyPath(t *testing.T) {
	if _, err := NewFileStorage("", FileStorageOptions{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestFileStorage_LoadMissingFile(t *testing.T) {
	storage, logs := newTestFileStorage(t)

	items := storage.Load()
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no log output, got %q", logs.String())
	}
}

func TestFileStorage_SaveLoadRoundTrip(t *testing.T) {
	storage, logs := newTestFileStorage(t)
	items := []*Item{
		mustBuild(t, NewBuilder().
			WithTitle("Pay rent").
			WithPriority(PriorityUrgent).
			WithCreationDate(baseTime).
			WithModificationDate(baseTime).
			WithDueDate(datePtr(2025, 2, 1))),
		mustBuild(t, NewBuilder().
			WithTitle("Buy milk").
			WithCompletion(true).
			WithCreationDate(baseTime).
			WithModificationDate(baseTime)),
	}

	storage.Save(items)
	loaded := storage.Load()

	if diff := cmp.Diff(items, loaded, itemComparer); diff != "" {
		t.Fatalf("round trip differs (-want +got):\n%s", diff)
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no log output, got %q", logs.String())
	}

	data, err := os.ReadFile(storage.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.HasPrefix(string(data), "[\n  {") {
		t.Fatalf("expected indented JSON array, got %q", data)
	}
	if !strings.Contains(string(data), `"dueDate": null`) {
		t.Fatalf("expected unset due date to be null, got %s", data)
	}
}

func TestFileStorage_SaveReplacesContents(t *testing.T) {
	storage, _ := newTestFileStorage(t)

	storage.Save([]*Item{newItem(t, "a", PriorityNormal), newItem(t, "b", PriorityNormal)})
	storage.Save([]*Item{newItem(t, "c", PriorityNormal)})

	if got := titles(storage.Load()); !cmp.Equal(got, []string{"c"}) {
		t.Fatalf("expected only c, got %v", got)
	}
	if _, err := os.Stat(storage.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be removed, got %v", err)
	}
}

func TestFileStorage_LoadCorruptFile(t *testing.T) {
	storage, logs := newTestFileStorage(t)
	if err := os.WriteFile(storage.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	items := storage.Load()
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
	if !strings.Contains(logs.String(), "error loading todo items") {
		t.Fatalf("expected load error to be logged, got %q", logs.String())
	}

	if _, err := storage.Read(); err == nil {
		t.Fatalf("expected Read to report the parse error")
	}
}

func TestFileStorage_LoadEmptyFile(t *testing.T) {
	storage, logs := newTestFileStorage(t)
	if err := os.WriteFile(storage.Path(), []byte("\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if items := storage.Load(); len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no log output, got %q", logs.String())
	}
}

func TestFileStorage_SkipsBadRecords(t *testing.T) {
	storage, logs := newTestFileStorage(t)
	data := `[
  {"id": "0b0b8a4e-52c1-4c59-9e3c-2d4c1b6a9f10", "title": "Keep me", "priority": "High"},
  {"id": "5f2b0f36-5d3c-4d0f-8a41-6f0d1d2a7c11", "title": ""},
  {"id": "0b0b8a4e-52c1-4c59-9e3c-2d4c1b6a9f10", "title": "Duplicate"},
  {"title": "Bad priority", "priority": "someday"},
  {"TITLE": "Shouting", "PRIORITY": "low"}
]`
	if err := os.WriteFile(storage.Path(), []byte(data), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	items := storage.Load()
	if got := titles(items); !cmp.Equal(got, []string{"Keep me", "Bad priority", "Shouting"}) {
		t.Fatalf("expected records with titles to load, got %v", got)
	}
	if items[1].Priority() != PriorityNormal {
		t.Fatalf("expected unknown priority to fall back to Normal, got %v", items[1].Priority())
	}
	if items[2].Priority() != PriorityLow {
		t.Fatalf("expected case-insensitive fields, got priority %v", items[2].Priority())
	}
	if got := strings.Count(logs.String(), "skipping todo record"); got != 2 {
		t.Fatalf("expected 2 skipped records, got %d: %q", got, logs.String())
	}
	if !strings.Contains(logs.String(), "todo record 3: priority:") {
		t.Fatalf("expected priority fallback to be logged, got %q", logs.String())
	}
}

func TestFileStorage_DefaultedRecordsSurviveSave(t *testing.T) {
	storage, _ := newTestFileStorage(t)
	data := `[{"title": "Old", "priority": "Critical", "createdAt": "last week"}]`
	if err := os.WriteFile(storage.Path(), []byte(data), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	repo := NewRepository(storage)
	if err := repo.Add(newItem(t, "New", PriorityHigh)); err != nil {
		t.Fatalf("add: %v", err)
	}
	repo.SaveChanges()

	reloaded := storage.Load()
	if got := titles(reloaded); !cmp.Equal(got, []string{"New", "Old"}) {
		t.Fatalf("expected both records after save, got %v", got)
	}
	if reloaded[1].Priority() != PriorityNormal {
		t.Fatalf("expected Normal priority, got %v", reloaded[1].Priority())
	}
}

func TestFileStorage_SaveFailureIsLogged(t *testing.T) {
	storage, logs := newTestFileStorage(t)
	// A directory in place of the file makes the rename fail.
	if err := os.MkdirAll(filepath.Join(storage.Path(), "blocker"), 0o755); err != nil {
		t.Fatalf("create blocker: %v", err)
	}

	storage.Save([]*Item{newItem(t, "a", PriorityNormal)})

	if !strings.Contains(logs.String(), "error saving todo items") {
		t.Fatalf("expected save error to be logged, got %q", logs.String())
	}
}

func TestRepository_WithFileStorage(t *testing.T) {
	storage, _ := newTestFileStorage(t)
	repo := NewRepository(storage)
	if err := repo.Add(newItem(t, "Buy milk", PriorityNormal)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.Add(newItem(t, "Pay rent", PriorityUrgent)); err != nil {
		t.Fatalf("add: %v", err)
	}
	repo.SaveChanges()

	reopened := NewRepository(storage)
	if got := titles(reopened.GetAll()); !cmp.Equal(got, []string{"Pay rent", "Buy milk"}) {
		t.Fatalf("expected persisted order, got %v", got)
	}
}
