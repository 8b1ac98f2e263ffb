package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
)

func init() {
	Register(&NextCmd{})
}

// NextCmd prints the most urgent pending task.
type NextCmd struct{}

func (c *NextCmd) Name() string      { return "next" }
func (c *NextCmd) Aliases() []string { return []string{"peek"} }
func (c *NextCmd) Synopsis() string  { return "Show the most urgent pending task" }
func (c *NextCmd) Usage() string     { return "next" }
func (c *NextCmd) NeedsAuth() bool   { return false }

func (c *NextCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *NextCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if err := expectArgs(c, args, 0); err != nil {
		return fail(errOut, err)
	}

	t, ok := env.Store.Next()
	if !ok {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no pending tasks")
		}
		return exitcode.Success
	}
	output.FormatTask(out, t)
	return exitcode.Success
}
