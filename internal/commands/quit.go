package commands

import (
	"context"
	"flag"
	"io"

	"smarttodo/internal/exitcode"
)

func init() {
	Register(&QuitCmd{})
}

// QuitCmd ends the shell session. Tasks are not kept after exit.
type QuitCmd struct{}

func (c *QuitCmd) Name() string      { return "quit" }
func (c *QuitCmd) Aliases() []string { return []string{"exit", "out"} }
func (c *QuitCmd) Synopsis() string  { return "Leave the shell" }
func (c *QuitCmd) Usage() string     { return "quit" }
func (c *QuitCmd) NeedsAuth() bool   { return false }
func (c *QuitCmd) Terminates() bool  { return true }

func (c *QuitCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *QuitCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return exitcode.Success
}
