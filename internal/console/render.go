package console

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/solidtodo/internal/ui"
	"github.com/amonks/solidtodo/todo"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

const (
	titleColumnWidth = 30
	detailWrapWidth  = 60
	timestampLayout  = "2006-01-02 15:04:05"
)

type styles struct {
	heading lipgloss.Style
	failure lipgloss.Style
	done    lipgloss.Style
	urgent  lipgloss.Style
}

func newStyles(c *Console, color bool) styles {
	renderer := lipgloss.NewRenderer(c.out)
	if !color {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return styles{
		heading: renderer.NewStyle().Bold(true),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("1")),
		done:    renderer.NewStyle().Foreground(lipgloss.Color("244")),
		urgent:  renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (c *Console) heading(text string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.heading.Render(fmt.Sprintf("======== %s ========", text)))
}

func (c *Console) displayMessage(message string) {
	fmt.Fprintln(c.out, message)
}

func (c *Console) displayError(err error) {
	fmt.Fprintln(c.out, c.styles.failure.Render("ERROR: "+err.Error()))
}

func (c *Console) formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format(c.dateLayout)
}

func (c *Console) displayItems(items []*todo.Item) {
	if len(items) == 0 {
		fmt.Fprintln(c.out, "No todo items found.")
		return
	}

	c.heading("TODO ITEMS")
	table := ui.NewTableBuilder([]string{"DONE", "#", "TITLE", "PRIORITY", "DUE DATE"}, len(items))
	for i, item := range items {
		checkbox := "[_]"
		if item.Completed() {
			checkbox = "[X]"
		}
		priority := item.Priority().String()
		if item.Priority() == todo.PriorityUrgent {
			priority = c.styles.urgent.Render(priority)
		}
		title := ui.TruncateTableCell(item.Title(), titleColumnWidth)
		if item.Completed() {
			title = c.styles.done.Render(title)
		}
		table.AddRow(checkbox, strconv.Itoa(i+1), title, priority, c.formatDate(item.DueDate()))
	}
	fmt.Fprint(c.out, table.String())
}

func (c *Console) displayItem(item *todo.Item) error {
	index, err := c.repo.GetIndexForItem(item)
	if err != nil {
		return err
	}

	now := c.now()
	status := "Pending"
	if item.Completed() {
		status = "Completed"
	}

	c.heading("Todo Item Details")
	fmt.Fprintf(c.out, "Number:        %d\n", index+1)
	fmt.Fprintf(c.out, "ID:            %s\n", item.ID())
	fmt.Fprintf(c.out, "Title:         %s\n", indentWrapped(wordwrap.String(item.Title(), detailWrapWidth)))
	fmt.Fprintf(c.out, "Status:        %s\n", status)
	fmt.Fprintf(c.out, "Priority:      %s\n", item.Priority())
	fmt.Fprintf(c.out, "Created:       %s (%s)\n", item.CreatedAt().Format(timestampLayout), ui.FormatTimeAgo(item.CreatedAt(), now))
	fmt.Fprintf(c.out, "Last Modified: %s (%s)\n", item.LastModified().Format(timestampLayout), ui.FormatTimeAgo(item.LastModified(), now))
	if remaining, ok := todo.DueData(item, now); ok {
		due := c.formatDate(item.DueDate())
		if remaining < 0 {
			due += " (overdue)"
		}
		fmt.Fprintf(c.out, "Due Date:      %s\n", due)
	}
	return nil
}

// indentWrapped aligns continuation lines of a wrapped detail value.
func indentWrapped(value string) string {
	return strings.ReplaceAll(value, "\n", "\n               ")
}
