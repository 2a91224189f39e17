package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/solidtodo/internal/editor"
	"github.com/amonks/solidtodo/internal/ids"
	"github.com/amonks/solidtodo/internal/listflags"
	internalstrings "github.com/amonks/solidtodo/internal/strings"
	"github.com/amonks/solidtodo/internal/ui"
	"github.com/amonks/solidtodo/todo"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todo items by priority",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var listJSON bool

// shortIDLength is the fewest ID characters shown by list.
const shortIDLength = 8

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a todo item",
	Long:  "Add a todo item. Without a title, or with --edit, the item is written in $EDITOR.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAdd,
}

var (
	addPriority todo.Priority
	addDue      string
	addEdit     bool
)

var editCmd = &cobra.Command{
	Use:   "edit <number|id|prefix>",
	Short: "Edit a todo item in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var showCmd = &cobra.Command{
	Use:   "show <number|id|prefix>",
	Short: "Show details of a todo item",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

var doneCmd = &cobra.Command{
	Use:   "done <number|id|prefix>",
	Short: "Mark a todo item as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <number|id|prefix>",
	Short: "Delete a todo item",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(listCmd, addCmd, editCmd, showCmd, doneCmd, deleteCmd)

	listflags.AddJSONFlag(listCmd, &listJSON)
	listflags.AddJSONFlag(showCmd, &showJSON)

	addCmd.Flags().VarP(newPriorityValue(&addPriority, todo.PriorityNormal), "priority", "p", priorityUsage())
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date, in the configured date format")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Write the item in $EDITOR")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	items := s.repo.GetAll()
	out := cmd.OutOrStdout()
	if listJSON {
		return writeJSON(out, nonNilItems(items))
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "No todo items found.")
		return nil
	}

	shortIDs := ids.Abbreviate(itemIDs(items), shortIDLength)
	table := ui.NewTableBuilder([]string{"#", "ID", "DONE", "PRIORITY", "DUE", "TITLE"}, len(items))
	for i, item := range items {
		done := "[ ]"
		if item.Completed() {
			done = "[X]"
		}
		due := "-"
		if dueDate := item.DueDate(); dueDate != nil {
			due = dueDate.Format(s.cfg.Display.DateFormat)
		}
		table.AddRow(strconv.Itoa(i+1), shortIDs[item.ID().String()], done, item.Priority().String(), due, ui.TruncateTableCell(item.Title(), 50))
	}
	fmt.Fprint(out, table.String())
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	builder := todo.NewBuilder().WithPriority(addPriority)
	if len(args) > 0 {
		builder.WithTitle(args[0])
	}
	if addDue != "" {
		due, err := time.ParseInLocation(s.cfg.Display.DateFormat, strings.TrimSpace(addDue), time.Local)
		if err != nil {
			return fmt.Errorf("parse due date: %w", err)
		}
		builder.WithDueDate(&due)
	}

	if addEdit || len(args) == 0 {
		if !addEdit && !ui.IsInteractive(cmd.InOrStdin()) {
			return fmt.Errorf("title is required when input is not a terminal")
		}
		data := editor.DefaultCreateData(s.cfg.Display.DateFormat)
		data.Title = builder.Title()
		data.Priority = builder.Priority().String()
		if due := builder.DueDate(); due != nil {
			data.Due = due.Format(s.cfg.Display.DateFormat)
		}
		parsed, err := editor.EditItemWithData(data)
		if err != nil {
			return err
		}
		parsed.Apply(builder)
	}

	item, err := builder.Build()
	if err != nil {
		return err
	}
	if err := s.repo.Add(item); err != nil {
		return err
	}
	s.repo.SaveChanges()

	fmt.Fprintf(cmd.OutOrStdout(), "Added todo item %s: %s\n", item.ID(), item.Title())
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	item, err := findItem(s.repo, args[0])
	if err != nil {
		return err
	}

	parsed, err := editor.EditItem(item, s.cfg.Display.DateFormat)
	if err != nil {
		return err
	}
	replacement, err := parsed.Apply(todo.BuilderFrom(item)).Build()
	if err != nil {
		return err
	}
	if err := s.repo.Update(replacement); err != nil {
		return err
	}
	s.repo.SaveChanges()

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", item.ID(), item.Title())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	item, err := findItem(s.repo, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showJSON {
		return writeJSON(out, item)
	}
	printItemDetail(out, item, s.cfg.Display.DateFormat, time.Now())
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	item, err := findItem(s.repo, args[0])
	if err != nil {
		return err
	}
	item.UpdateCompleted(true)
	if err := s.repo.Update(item); err != nil {
		return err
	}
	s.repo.SaveChanges()

	fmt.Fprintf(cmd.OutOrStdout(), "Completed %s: %s\n", item.ID(), item.Title())
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	item, err := findItem(s.repo, args[0])
	if err != nil {
		return err
	}

	if !deleteYes {
		if !ui.IsInteractive(cmd.InOrStdin()) {
			return fmt.Errorf("refusing to delete %s without --yes when input is not a terminal", item.ID())
		}
		ok, err := confirmDelete(cmd.InOrStdin(), cmd.OutOrStdout(), item)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	s.repo.Delete(item.ID())
	s.repo.SaveChanges()

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", item.ID(), item.Title())
	return nil
}

func confirmDelete(in io.Reader, out io.Writer, item *todo.Item) (bool, error) {
	fmt.Fprintf(out, "Delete %q? [y/N]: ", item.Title())
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := internalstrings.NormalizeLowerTrimSpace(line)
	return answer == "y" || answer == "yes", nil
}

func itemIDs(items []*todo.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID().String())
	}
	return out
}

func matchIDPrefix(repo todo.Repository, prefix string) (uuid.UUID, error) {
	match, err := ids.MatchPrefix(itemIDs(repo.GetAll()), prefix)
	if err != nil {
		return uuid.Nil, err
	}
	return todo.ParseID(match)
}

// findItem resolves a 1-based list number, an item ID or a unique ID prefix.
func findItem(repo todo.Repository, ref string) (*todo.Item, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(ref)); err == nil {
		item, ok := repo.GetByIndex(n - 1)
		if !ok {
			return nil, fmt.Errorf("%w: %d (have %d items)", todo.ErrIndexOutOfRange, n, repo.ItemCount())
		}
		return item, nil
	}

	id, err := todo.ParseID(ref)
	if err != nil {
		id, err = matchIDPrefix(repo, ref)
		if err != nil {
			return nil, err
		}
	}
	item, ok := repo.GetByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", todo.ErrItemNotFound, id)
	}
	return item, nil
}

func printItemDetail(out io.Writer, item *todo.Item, dateLayout string, now time.Time) {
	status := "pending"
	if item.Completed() {
		status = "completed"
	}

	fmt.Fprintf(out, "ID:       %s\n", item.ID())
	fmt.Fprintf(out, "Title:    %s\n", item.Title())
	fmt.Fprintf(out, "Status:   %s\n", status)
	fmt.Fprintf(out, "Priority: %s\n", item.Priority())
	fmt.Fprintf(out, "Created:  %s (%s)\n", item.CreatedAt().Format("2006-01-02 15:04:05"), ui.FormatTimeAgo(item.CreatedAt(), now))
	fmt.Fprintf(out, "Updated:  %s (%s)\n", item.LastModified().Format("2006-01-02 15:04:05"), ui.FormatTimeAgo(item.LastModified(), now))
	if due := item.DueDate(); due != nil {
		fmt.Fprintf(out, "Due:      %s\n", due.Format(dateLayout))
	}
}

func nonNilItems(items []*todo.Item) []*todo.Item {
	if items == nil {
		return []*todo.Item{}
	}
	return items
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
