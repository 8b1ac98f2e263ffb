package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"smarttodo/internal/exitcode"
)

func init() {
	Register(&DeleteCmd{})
}

// DeleteCmd implements the delete command.
type DeleteCmd struct{}

func (c *DeleteCmd) Name() string      { return "delete" }
func (c *DeleteCmd) Aliases() []string { return []string{"rm"} }
func (c *DeleteCmd) Synopsis() string  { return "Delete a task" }
func (c *DeleteCmd) Usage() string     { return "delete <id>" }
func (c *DeleteCmd) NeedsAuth() bool   { return false }

func (c *DeleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DeleteCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if err := expectArgs(c, args, 1); err != nil {
		return fail(errOut, err)
	}
	id, err := ParseID(args[0])
	if err != nil {
		return fail(errOut, err)
	}

	if err := env.Store.Delete(id); err != nil {
		return fail(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "deleted task %d\n", id)
	}
	return exitcode.Success
}
