package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/service"
	"smarttodo/internal/store"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd copies pending tasks, most urgent first, into a Google Tasks list.
type ExportCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *ExportCmd) SetListName(name string) {
	c.listName = name
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return []string{"push"} }
func (c *ExportCmd) Synopsis() string  { return "Copy pending tasks to Google Tasks" }
func (c *ExportCmd) Usage() string     { return "export [--list <list-name>]" }
func (c *ExportCmd) NeedsAuth() bool   { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if err := expectArgs(c, args, 0); err != nil {
		return fail(errOut, err)
	}

	listName := c.listName
	if listName == "" {
		listName = env.Config.ExportList
	}

	list, code := resolveList(ctx, env.Service, listName, errOut)
	if code != exitcode.Success {
		return code
	}

	pending := env.Store.List(store.FilterPending)
	for i, t := range pending {
		err := env.Service.CreateTask(ctx, list.ID, service.Task{
			Title: t.Name,
			Notes: fmt.Sprintf("priority %d", t.Priority),
		})
		if err != nil {
			env.Log.WithFields(log.Fields{"list": list.Title, "task": t.ID}).WithError(err).Error("export failed")
			fmt.Fprintf(errOut, "error: backend error: exported %d of %d tasks: %v\n", i, len(pending), err)
			return backendCode(err)
		}
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "exported %d tasks to %s\n", len(pending), list.Title)
	}
	return exitcode.Success
}

// resolveList finds the named list, or the default list when name is empty.
func resolveList(ctx context.Context, svc service.Service, name string, errOut io.Writer) (service.TaskList, int) {
	if name == "" {
		list, err := svc.DefaultList(ctx)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return service.TaskList{}, backendCode(err)
		}
		return list, exitcode.Success
	}

	list, err := svc.ResolveList(ctx, name)
	switch {
	case err == nil:
		return list, exitcode.Success
	case errors.Is(err, service.ErrListNotFound):
		fmt.Fprintf(errOut, "error: list not found: %s\n", name)
		return service.TaskList{}, exitcode.UserError
	case errors.Is(err, service.ErrAmbiguousList):
		fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
		return service.TaskList{}, exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return service.TaskList{}, backendCode(err)
	}
}

func backendCode(err error) int {
	if errors.Is(err, service.ErrAuth) {
		return exitcode.AuthError
	}
	return exitcode.BackendError
}
