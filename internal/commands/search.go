package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
)

func init() {
	Register(&SearchCmd{})
}

// SearchCmd implements the search command.
type SearchCmd struct {
	format string
}

func (c *SearchCmd) Name() string      { return "search" }
func (c *SearchCmd) Aliases() []string { return []string{"find"} }
func (c *SearchCmd) Synopsis() string  { return "Find tasks by id or name" }
func (c *SearchCmd) Usage() string     { return "search [--format text|json|yaml] <id|text>" }
func (c *SearchCmd) NeedsAuth() bool   { return false }

func (c *SearchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "text", "")
}

func (c *SearchCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	// The query may itself contain commas.
	query := strings.TrimSpace(strings.Join(args, ","))
	if query == "" {
		return fail(errOut, usageError(c))
	}

	format, err := output.ParseFormat(c.format)
	if err != nil {
		return fail(errOut, err)
	}

	if err := output.WriteTasks(out, format, env.Store.Search(query), env.Config.Quiet); err != nil {
		return fail(errOut, err)
	}
	return exitcode.Success
}
