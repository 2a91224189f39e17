// Package markdown renders todo checklists as Markdown for the terminal.
package markdown

import (
	"fmt"
	"strings"
	"sync"

	internalstrings "github.com/amonks/solidtodo/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown text for terminal output, wrapped to width.
// The input is returned unformatted when no renderer is available.
func Render(width, indent int, input []byte) []byte {
	value := internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(string(input)))
	if strings.TrimSpace(value) == "" {
		return nil
	}
	indent = max(indent, 0)
	renderWidth := max(width-indent, 1)

	rendered := value
	if r := markdownRenderer(renderWidth); r != nil {
		formatted, err := r.Render(value)
		if err == nil {
			rendered = formatted
		}
	}
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return nil
	}
	return []byte(indentBlock(rendered, indent))
}

// SafeRender is Render, falling back to the plain input if the renderer panics.
func SafeRender(width, indent int, input []byte) (out []byte) {
	defer func() {
		if r := recover(); r != nil {
			plain := internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(string(input)))
			out = []byte(indentBlock(plain, max(indent, 0)))
		}
	}()
	return Render(width, indent, input)
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}

func indentBlock(value string, spaces int) string {
	if spaces <= 0 {
		return value
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// ChecklistItem is one line of a checklist.
type ChecklistItem struct {
	Done     bool
	Title    string
	Priority string
	Due      string
}

// Checklist writes items as a Markdown task list under a heading.
func Checklist(heading string, items []ChecklistItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", heading)
	if len(items) == 0 {
		b.WriteString("Nothing to do.\n")
		return b.String()
	}
	for _, item := range items {
		box := " "
		if item.Done {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s (%s", box, escape(internalstrings.NormalizeWhitespace(item.Title)), item.Priority)
		if item.Due != "" {
			fmt.Fprintf(&b, ", due %s", item.Due)
		}
		b.WriteString(")\n")
	}
	return b.String()
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
)

func escape(value string) string {
	return escaper.Replace(value)
}
