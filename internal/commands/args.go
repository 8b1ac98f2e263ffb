package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/store"
)

// usageError reports a wrong argument count for cmd.
func usageError(cmd Command) error {
	return &store.ValidationError{Field: "arguments", Reason: "usage: " + cmd.Usage()}
}

// expectArgs checks that exactly n positional arguments were given.
func expectArgs(cmd Command, args []string, n int) error {
	if len(args) != n {
		return usageError(cmd)
	}
	return nil
}

// ParseID parses a task id argument.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &store.ValidationError{Field: "id", Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return id, nil
}

// ParsePriority parses a priority argument. Range checks are left to the store.
func ParsePriority(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &store.ValidationError{Field: "priority", Reason: "must not be empty"}
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, &store.ValidationError{Field: "priority", Reason: "must be a positive integer"}
	}
	return p, nil
}

// fail prints a store or argument error. Every such error is recoverable
// and reported as a user error.
func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}
