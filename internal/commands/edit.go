package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"smarttodo/internal/exitcode"
)

func init() {
	Register(&EditCmd{})
	Register(&ReprioritizeCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Rename and reprioritize a task" }
func (c *EditCmd) Usage() string     { return "edit <id>,<name>,<priority>" }
func (c *EditCmd) NeedsAuth() bool   { return false }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if err := expectArgs(c, args, 3); err != nil {
		return fail(errOut, err)
	}
	id, err := ParseID(args[0])
	if err != nil {
		return fail(errOut, err)
	}
	priority, err := ParsePriority(args[2])
	if err != nil {
		return fail(errOut, err)
	}

	if err := env.Store.Edit(id, args[1], priority); err != nil {
		return fail(errOut, err)
	}
	return updated(env, id, out)
}

// ReprioritizeCmd implements the reprioritize command.
type ReprioritizeCmd struct{}

func (c *ReprioritizeCmd) Name() string      { return "reprioritize" }
func (c *ReprioritizeCmd) Aliases() []string { return []string{"prio"} }
func (c *ReprioritizeCmd) Synopsis() string  { return "Change a task's priority" }
func (c *ReprioritizeCmd) Usage() string     { return "reprioritize <id>,<priority>" }
func (c *ReprioritizeCmd) NeedsAuth() bool   { return false }

func (c *ReprioritizeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ReprioritizeCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if err := expectArgs(c, args, 2); err != nil {
		return fail(errOut, err)
	}
	id, err := ParseID(args[0])
	if err != nil {
		return fail(errOut, err)
	}
	priority, err := ParsePriority(args[1])
	if err != nil {
		return fail(errOut, err)
	}

	if err := env.Store.Reprioritize(id, priority); err != nil {
		return fail(errOut, err)
	}
	return updated(env, id, out)
}

func updated(env *Env, id int, out io.Writer) int {
	if !env.Config.Quiet {
		t, _ := env.Store.Get(id)
		fmt.Fprintf(out, "updated %s\n", t.String())
	}
	return exitcode.Success
}
