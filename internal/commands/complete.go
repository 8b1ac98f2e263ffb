package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/task"
)

func init() {
	Register(&CompleteCmd{})
}

// CompleteCmd implements the complete command.
// Without an id it completes the most urgent pending task.
type CompleteCmd struct{}

func (c *CompleteCmd) Name() string      { return "complete" }
func (c *CompleteCmd) Aliases() []string { return []string{"done"} }
func (c *CompleteCmd) Synopsis() string  { return "Mark a task completed" }
func (c *CompleteCmd) Usage() string     { return "complete [id]" }
func (c *CompleteCmd) NeedsAuth() bool   { return false }

func (c *CompleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CompleteCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	var done task.Task
	switch len(args) {
	case 0:
		t, err := env.Store.CompleteNext()
		if err != nil {
			return fail(errOut, err)
		}
		done = t
	case 1:
		id, err := ParseID(args[0])
		if err != nil {
			return fail(errOut, err)
		}
		if err := env.Store.Complete(id); err != nil {
			return fail(errOut, err)
		}
		done, _ = env.Store.Get(id)
	default:
		return fail(errOut, usageError(c))
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "completed %s\n", done.String())
	}
	return exitcode.Success
}
