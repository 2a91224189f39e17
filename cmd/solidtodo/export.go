package main

import (
	"fmt"
	"os"

	"github.com/amonks/solidtodo/internal/markdown"
	"github.com/amonks/solidtodo/todo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the todo list as a Markdown checklist",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var (
	exportRender bool
	exportWidth  int
)

const defaultExportWidth = 80

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().BoolVar(&exportRender, "render", false, "Format the checklist for the terminal")
	exportCmd.Flags().IntVar(&exportWidth, "width", 0, "Wrap width for --render (default: terminal width)")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	checklist := markdown.Checklist("Todo", checklistItems(s.repo.GetAll(), s.cfg.Display.DateFormat))
	out := cmd.OutOrStdout()
	if !exportRender {
		_, err := fmt.Fprint(out, checklist)
		return err
	}

	width := exportWidth
	if width <= 0 {
		width = terminalWidth()
	}
	_, err = fmt.Fprintln(out, string(markdown.SafeRender(width, 0, []byte(checklist))))
	return err
}

func checklistItems(items []*todo.Item, dateLayout string) []markdown.ChecklistItem {
	out := make([]markdown.ChecklistItem, 0, len(items))
	for _, item := range items {
		entry := markdown.ChecklistItem{
			Done:     item.Completed(),
			Title:    item.Title(),
			Priority: item.Priority().String(),
		}
		if due := item.DueDate(); due != nil {
			entry.Due = due.Format(dateLayout)
		}
		out = append(out, entry)
	}
	return out
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return defaultExportWidth
}
