package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"smarttodo/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"new"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "add <name>,<priority>" }
func (c *AddCmd) NeedsAuth() bool   { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if err := expectArgs(c, args, 2); err != nil {
		return fail(errOut, err)
	}

	priority, err := ParsePriority(args[1])
	if err != nil {
		return fail(errOut, err)
	}

	id, err := env.Store.Add(args[0], priority)
	if err != nil {
		return fail(errOut, err)
	}

	if !env.Config.Quiet {
		t, _ := env.Store.Get(id)
		fmt.Fprintf(out, "added %s\n", t.String())
	}
	return exitcode.Success
}
