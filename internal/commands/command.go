// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	log "github.com/sirupsen/logrus"

	"smarttodo/internal/config"
	"smarttodo/internal/service"
	"smarttodo/internal/store"
)

// Env is the state shared by every command of one session.
type Env struct {
	// Config is always set.
	Config *config.Config

	// Store owns the session's tasks.
	Store *store.Store

	// Service is nil unless the command's NeedsAuth returns true.
	Service service.Service

	// Log carries the session fields.
	Log *log.Entry
}

// Command defines the interface for shell commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command talks to Google Tasks.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains the comma-separated positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// Terminator is implemented by commands that end the shell session.
type Terminator interface {
	Terminates() bool
}
