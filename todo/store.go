package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DataFile is the default name of the JSON file holding the items.
const DataFile = "todos.json"

// Storage loads and saves the full item collection.
//
// Load never fails: missing or unreadable data is reported as an empty
// collection. Save replaces everything previously stored; failures are
// reported by the implementation rather than returned to the caller.
type Storage interface {
	Load() []*Item
	Save(items []*Item)
}

// FileStorageOptions configures a FileStorage.
type FileStorageOptions struct {
	// Logger receives load and save failures. If nil, errors go to stderr.
	Logger *log.Logger
}

// FileStorage stores items as an indented JSON array in a single file.
type FileStorage struct {
	path   string
	logger *log.Logger
}

// NewFileStorage returns a storage for the file at path, creating its
// parent directory if needed.
func NewFileStorage(path string, opts FileStorageOptions) (*FileStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "solidtodo: ", 0)
	}

	return &FileStorage{path: path, logger: logger}, nil
}

// Path returns the file the storage reads and writes.
func (s *FileStorage) Path() string {
	return s.path
}

// Load reads all items, returning an empty collection on any failure.
func (s *FileStorage) Load() []*Item {
	items, err := s.Read()
	if err != nil {
		s.logger.Printf("error loading todo items: %v", err)
		return []*Item{}
	}
	return items
}

// Save writes all items, logging any failure.
func (s *FileStorage) Save(items []*Item) {
	if err := s.Write(items); err != nil {
		s.logger.Printf("error saving todo items: %v", err)
	}
}

// Read reads all items from the file. A missing file yields no items.
// Individual records that cannot be decoded, and records repeating an
// earlier ID, are skipped and logged. Fields replaced by defaults are logged.
func (s *FileStorage) Read() ([]*Item, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return s.decode(data)
}

func (s *FileStorage) decode(data []byte) ([]*Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []*Item{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	items := make([]*Item, 0, len(records))
	seen := make(map[uuid.UUID]bool, len(records))
	for i, record := range records {
		item, warnings, err := decodeItem(record)
		if err != nil {
			s.logger.Printf("skipping todo record %d: %v", i, err)
			continue
		}
		for _, warning := range warnings {
			s.logger.Printf("todo record %d: %v", i, warning)
		}
		if seen[item.id] {
			s.logger.Printf("skipping todo record %d: %v: %s", i, ErrDuplicateID, item.id)
			continue
		}
		seen[item.id] = true
		items = append(items, item)
	}

	return items, nil
}

// Write replaces the file contents with items.
func (s *FileStorage) Write(items []*Item) error {
	if items == nil {
		items = []*Item{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	data = append(data, '\n')

	// Write to temp file first
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
