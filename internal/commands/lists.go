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
	Register(&ListsCmd{})
}

// ListsCmd prints the Google Tasks lists that export can target.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Show Google Tasks lists" }
func (c *ListsCmd) Usage() string     { return "lists" }
func (c *ListsCmd) NeedsAuth() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	lists, err := env.Service.ListLists(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return backendCode(err)
	}

	for _, list := range lists {
		output.FormatListName(out, list, list.Title == env.Config.ExportList)
	}
	return exitcode.Success
}

