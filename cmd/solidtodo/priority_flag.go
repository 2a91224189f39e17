package main

import (
	"strings"

	"github.com/amonks/solidtodo/todo"
	"github.com/spf13/pflag"
)

// priorityValue is a pflag.Value that accepts priority names or numbers.
type priorityValue struct {
	target *todo.Priority
}

var _ pflag.Value = (*priorityValue)(nil)

func newPriorityValue(target *todo.Priority, value todo.Priority) *priorityValue {
	*target = value
	return &priorityValue{target: target}
}

func (v *priorityValue) String() string {
	if v == nil || v.target == nil {
		return ""
	}
	return v.target.String()
}

func (v *priorityValue) Set(value string) error {
	priority, err := todo.ParsePriority(value)
	if err != nil {
		return err
	}
	*v.target = priority
	return nil
}

func (v *priorityValue) Type() string {
	return "priority"
}

func priorityUsage() string {
	return "Priority (" + strings.ToLower(strings.Join(todo.PriorityNames(), ", ")) + ")"
}
