// Package editor edits todo items as TOML documents in the user's $EDITOR.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/amonks/solidtodo/todo"
)

// ItemData is the data used to render the TOML template.
type ItemData struct {
	// IsUpdate is true when editing an existing item.
	IsUpdate bool
	// Title is the item title.
	Title string
	// Priority is the priority name.
	Priority string
	// Completed is the completion flag (only for updates).
	Completed bool
	// Due is the due date in DateLayout, or empty.
	Due string
	// DateLayout is the Go time layout for Due.
	DateLayout string
}

// DefaultCreateData returns ItemData with default values for a new item.
func DefaultCreateData(dateLayout string) ItemData {
	return ItemData{
		Priority:   todo.PriorityNormal.String(),
		DateLayout: dateLayout,
	}
}

// DataFromItem returns ItemData for editing an existing item.
func DataFromItem(item *todo.Item, dateLayout string) ItemData {
	data := ItemData{
		IsUpdate:   true,
		Title:      item.Title(),
		Priority:   item.Priority().String(),
		Completed:  item.Completed(),
		DateLayout: dateLayout,
	}
	if due := item.DueDate(); due != nil {
		data.Due = due.Format(dateLayout)
	}
	return data
}

var itemTemplate = template.Must(template.New("item").Funcs(template.FuncMap{
	"priorities": func() string {
		return strings.Join(todo.PriorityNames(), ", ")
	},
}).Parse(`title = {{ printf "%q" .Title }}
priority = {{ printf "%q" .Priority }} # {{ priorities }}
{{- if .IsUpdate }}
completed = {{ .Completed }}
{{- end }}
due = {{ printf "%q" .Due }} # {{ .DateLayout }}, empty for none
`))

// RenderItemTOML renders the item data as a TOML string for editing.
func RenderItemTOML(data ItemData) (string, error) {
	var buf bytes.Buffer
	if err := itemTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedItem is the validated result of an edit.
type ParsedItem struct {
	Title    string
	Priority todo.Priority
	// Completed is nil when the file does not mention completion.
	Completed *bool
	Due       *time.Time
}

type itemFile struct {
	Title     string `toml:"title"`
	Priority  string `toml:"priority"`
	Completed *bool  `toml:"completed"`
	Due       string `toml:"due"`
}

// ParseItemTOML parses and validates the TOML content from the editor.
func ParseItemTOML(content, dateLayout string) (*ParsedItem, error) {
	var file itemFile
	meta, err := toml.Decode(content, &file)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse TOML: unknown key %q", undecoded[0].String())
	}

	if err := todo.ValidateTitle(file.Title); err != nil {
		return nil, err
	}
	parsed := &ParsedItem{
		Title:     strings.TrimSpace(file.Title),
		Priority:  todo.PriorityNormal,
		Completed: file.Completed,
	}

	if strings.TrimSpace(file.Priority) != "" {
		priority, err := todo.ParsePriority(file.Priority)
		if err != nil {
			return nil, err
		}
		parsed.Priority = priority
	}

	if due := strings.TrimSpace(file.Due); due != "" {
		t, err := time.ParseInLocation(dateLayout, due, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid due date %q: expected %s", due, dateLayout)
		}
		parsed.Due = &t
	}

	return parsed, nil
}

// Apply stages the parsed values on b.
func (p *ParsedItem) Apply(b *todo.Builder) *todo.Builder {
	b.WithTitle(p.Title).WithPriority(p.Priority).WithDueDate(p.Due)
	if p.Completed != nil {
		b.WithCompletion(*p.Completed)
	}
	return b
}

func createItemTempFile() (*os.File, error) {
	return os.CreateTemp("", "solidtodo-item-*.toml")
}

// EditItem opens the editor for an item and returns the parsed result.
// Pass nil to edit a new item.
func EditItem(existing *todo.Item, dateLayout string) (*ParsedItem, error) {
	data := DefaultCreateData(dateLayout)
	if existing != nil {
		data = DataFromItem(existing, dateLayout)
	}
	return EditItemWithData(data)
}

// EditItemWithData opens the editor with pre-populated data and returns the parsed result.
func EditItemWithData(data ItemData) (*ParsedItem, error) {
	content, err := RenderItemTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createItemTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := runEditor(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseItemTOML(string(edited), data.DateLayout)
}

// editorCommand returns the command line from $EDITOR split into fields, so
// values like "code --wait" work. vi is used when $EDITOR is unset.
func editorCommand() []string {
	fields := strings.Fields(os.Getenv("EDITOR"))
	if len(fields) == 0 {
		return []string{"vi"}
	}
	return fields
}

// runEditor opens path in the editor on the current terminal and waits for it.
func runEditor(path string) error {
	args := editorCommand()
	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return fmt.Errorf("editor %s exited with status %d; item not saved", args[0], exitErr.ExitCode())
	default:
		return fmt.Errorf("run editor %s: %w", args[0], err)
	}
}
