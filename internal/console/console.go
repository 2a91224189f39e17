// Package console runs the interactive todo menu on a line-oriented terminal.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/amonks/solidtodo/internal/config"
	internalstrings "github.com/amonks/solidtodo/internal/strings"
	"github.com/amonks/solidtodo/internal/ui"
	"github.com/amonks/solidtodo/todo"
)

var (
	// ErrNoItems indicates that a command needs an item but the list is empty.
	ErrNoItems = errors.New("there are currently no items")

	// ErrUnknownItem indicates that the selected number matches no item.
	ErrUnknownItem = errors.New("todo item not found")
)

// Options configures a Console.
type Options struct {
	// In supplies answers. Defaults to os.Stdin.
	In io.Reader

	// Out receives prompts and output. Defaults to os.Stdout.
	Out io.Writer

	// Now returns the current time for relative times. Defaults to time.Now.
	Now func() time.Time

	// DateLayout is the Go time layout used to read and show due dates.
	DateLayout string

	// Color enables ANSI styling.
	Color bool
}

// Console is the interactive menu over a repository and its undo history.
type Console struct {
	repo       todo.Repository
	history    *todo.UndoHistory
	prompt     *prompter
	out        io.Writer
	now        func() time.Time
	dateLayout string
	styles     styles
}

// New returns a console for repo. history records the state before every change.
func New(repo todo.Repository, history *todo.UndoHistory, opts Options) *Console {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DateLayout == "" {
		opts.DateLayout = config.DefaultDateLayout
	}

	c := &Console{
		repo:       repo,
		history:    history,
		prompt:     newPrompter(opts.In, opts.Out),
		out:        opts.Out,
		now:        opts.Now,
		dateLayout: opts.DateLayout,
	}
	c.styles = newStyles(c, opts.Color)
	return c
}

type command struct {
	key         string
	description string
	run         func(*Console) error
}

var commands = []command{
	{"v", "View all todo items", (*Console).viewAll},
	{"a", "Add a new todo item", (*Console).addItem},
	{"i", "Show todo item details", (*Console).showItem},
	{"u", "Update a todo item", (*Console).updateItem},
	{"d", "Delete a todo item", (*Console).deleteItem},
	{"c", "Mark a todo item as completed", (*Console).completeItem},
	{"z", "Undo the last change", (*Console).undo},
	{"x", "Exit", nil},
}

func commandKeys() []string {
	keys := make([]string, 0, len(commands))
	for _, cmd := range commands {
		keys = append(keys, cmd.key)
	}
	return keys
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out, c.styles.heading.Render("===== Pretty Solid Todo List ========"))
	for _, cmd := range commands {
		fmt.Fprintf(c.out, "  %s - %s\n", cmd.key, cmd.description)
	}
}

// Run shows the menu and executes commands until the user exits or the
// input ends. Command failures are shown and the loop continues.
func (c *Console) Run() error {
	c.printMenu()
	keys := commandKeys()
	for {
		fmt.Fprintln(c.out)
		choice, err := c.prompt.selectOption("Choose action", keys, "")
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if choice == "x" {
			break
		}

		if err := c.execute(choice); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			c.displayError(err)
		}
	}

	c.repo.SaveChanges()
	fmt.Fprintln(c.out, "Goodbye!")
	return nil
}

func (c *Console) execute(key string) error {
	for _, cmd := range commands {
		if cmd.key == key && cmd.run != nil {
			return cmd.run(c)
		}
	}
	return nil
}

func (c *Console) viewAll() error {
	c.displayItems(c.repo.GetAll())
	return nil
}

// selectItem picks the only item, or asks for a 1-based number.
func (c *Console) selectItem() (*todo.Item, error) {
	count := c.repo.ItemCount()
	if count == 0 {
		return nil, ErrNoItems
	}
	if count == 1 {
		item, _ := c.repo.GetByIndex(0)
		return item, nil
	}

	n, err := c.prompt.readInt(fmt.Sprintf("Todo item ID (1-%d): ", count))
	if err != nil {
		return nil, err
	}
	item, ok := c.repo.GetByIndex(n - 1)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownItem, n)
	}
	return item, nil
}

func (c *Console) readPriority(current todo.Priority) (todo.Priority, error) {
	answer, err := c.prompt.selectOption("Priority", todo.PriorityNames(), current.String())
	if err != nil {
		return current, err
	}
	return todo.ParsePriority(answer)
}

// readDueDate asks for a due date. An empty answer keeps current; "none"
// clears it. Unparseable dates are reported and asked again.
func (c *Console) readDueDate(current *time.Time) (*time.Time, error) {
	hint := "leave empty for none"
	if current != nil {
		hint = fmt.Sprintf("'none' to clear, empty keeps %s", current.Format(c.dateLayout))
	}
	question := fmt.Sprintf("Due date (%s, %s): ", c.dateLayout, hint)

	for {
		line, err := c.prompt.readLine(question)
		if err != nil {
			return nil, err
		}
		answer := strings.TrimSpace(line)
		switch internalstrings.NormalizeLower(answer) {
		case "":
			return current, nil
		case "none":
			return nil, nil
		}

		due, err := time.ParseInLocation(c.dateLayout, answer, time.Local)
		if err == nil {
			return &due, nil
		}
		c.displayError(fmt.Errorf("invalid due date %q, expected %s", answer, c.dateLayout))
	}
}

func (c *Console) addItem() error {
	c.heading("New Todo Item")

	title, err := c.prompt.readString("Title: ")
	if err != nil {
		return err
	}
	priority, err := c.readPriority(todo.PriorityNormal)
	if err != nil {
		return err
	}
	due, err := c.readDueDate(nil)
	if err != nil {
		return err
	}

	item, err := todo.NewBuilder().
		WithTitle(title).
		WithPriority(priority).
		WithDueDate(due).
		Build()
	if err != nil {
		return err
	}

	c.history.RecordUndoState()
	if err := c.repo.Add(item); err != nil {
		return err
	}
	c.repo.SaveChanges()
	c.displayMessage("Todo item added successfully.")
	return nil
}

func (c *Console) showItem() error {
	item, err := c.selectItem()
	if err != nil {
		return err
	}
	return c.displayItem(item)
}

func (c *Console) updateItem() error {
	item, err := c.selectItem()
	if err != nil {
		return err
	}
	c.heading("Update Todo Item")

	builder := todo.BuilderFrom(item)
	title, err := c.prompt.readLine(fmt.Sprintf("Title [%s]: ", item.Title()))
	if err != nil {
		return err
	}
	if strings.TrimSpace(title) != "" {
		builder.WithTitle(title)
	}
	priority, err := c.readPriority(item.Priority())
	if err != nil {
		return err
	}
	builder.WithPriority(priority)
	due, err := c.readDueDate(item.DueDate())
	if err != nil {
		return err
	}
	builder.WithDueDate(due)

	current := "n"
	if item.Completed() {
		current = "y"
	}
	completed, err := c.prompt.selectOption("Completed", []string{"y", "n"}, current)
	if err != nil {
		return err
	}
	builder.WithCompletion(completed == "y")

	replacement, err := builder.Build()
	if err != nil {
		return err
	}

	c.history.RecordUndoState()
	if err := c.repo.Update(replacement); err != nil {
		return err
	}
	c.repo.SaveChanges()
	c.displayMessage("Todo item updated successfully.")
	return nil
}

func (c *Console) deleteItem() error {
	item, err := c.selectItem()
	if err != nil {
		return err
	}
	if err := c.displayItem(item); err != nil {
		return err
	}

	ok, err := c.prompt.confirm("Are you sure you want to delete this item?")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	c.history.RecordUndoState()
	c.repo.Delete(item.ID())
	c.repo.SaveChanges()
	c.displayMessage("Todo item deleted successfully.")
	return nil
}

func (c *Console) completeItem() error {
	item, err := c.selectItem()
	if err != nil {
		return err
	}

	c.history.RecordUndoState()
	item.UpdateCompleted(true)
	if err := c.repo.Update(item); err != nil {
		return err
	}
	c.repo.SaveChanges()
	c.displayMessage("Todo item marked as completed.")
	return nil
}

func (c *Console) undo() error {
	capturedAt, err := c.history.UndoLastChange()
	if errors.Is(err, todo.ErrNothingToUndo) {
		c.displayMessage("Already at the oldest change.")
		return nil
	}
	if err != nil {
		return err
	}

	c.repo.SaveChanges()
	c.displayMessage(fmt.Sprintf("Restored to state from %s ago.", ui.FormatDurationLong(c.now().Sub(capturedAt))))
	return nil
}
