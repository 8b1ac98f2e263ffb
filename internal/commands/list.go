package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
	"smarttodo/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Pending tasks are listed by default.
type ListCmd struct {
	completed bool
	all       bool
	format    string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks by priority" }
func (c *ListCmd) Usage() string {
	return "list [--completed | --all] [--format text|json|yaml]"
}
func (c *ListCmd) NeedsAuth() bool { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.completed, "completed", false, "")
	fs.BoolVar(&c.completed, "done", false, "")
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
	fs.StringVar(&c.format, "format", "text", "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if err := expectArgs(c, args, 0); err != nil {
		return fail(errOut, err)
	}
	if c.completed && c.all {
		fmt.Fprintln(errOut, "error: cannot use both --completed and --all")
		return exitcode.UserError
	}

	format, err := output.ParseFormat(c.format)
	if err != nil {
		return fail(errOut, err)
	}

	filter := store.FilterPending
	switch {
	case c.completed:
		filter = store.FilterCompleted
	case c.all:
		filter = store.FilterAll
	}

	if err := output.WriteTasks(out, format, env.Store.List(filter), env.Config.Quiet); err != nil {
		return fail(errOut, err)
	}
	return exitcode.Success
}
