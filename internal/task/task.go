// Package task defines the task value shared by the store, the priority
// index, and the undo log.
package task

import "fmt"

// Task is a single to-do item.
// Lower Priority values are more urgent.
type Task struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Priority  int    `json:"priority" yaml:"priority"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Equal reports whether t and other refer to the same task.
// Tasks are identified by ID only.
func (t *Task) Equal(other *Task) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ID == other.ID
}

// Status returns "Done" or "Not done".
func (t *Task) Status() string {
	if t.Completed {
		return "Done"
	}
	return "Not done"
}

// String renders the task as "[ID: 1] Name (Priority: 2) - Not done".
func (t *Task) String() string {
	return fmt.Sprintf("[ID: %d] %s (Priority: %d) - %s", t.ID, t.Name, t.Priority, t.Status())
}
