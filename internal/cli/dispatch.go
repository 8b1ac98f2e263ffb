// Package cli turns command-line arguments and shell lines into command runs.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"smarttodo/internal/commands"
	"smarttodo/internal/config"
	"smarttodo/internal/exitcode"
	"smarttodo/internal/service"
	"smarttodo/internal/store"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles startup flags and hands control to a Session.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
// A nil factory selects the Google Tasks backend.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses startup flags and either runs the single command given on the
// command line or starts the interactive shell on in.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("smarttodo", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	if err := fs.Parse(args); err != nil {
		return flagError(errOut, err)
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	if quiet {
		cfg.Quiet = true
	}
	if debug {
		cfg.Debug = true
	}

	s := d.NewSession(cfg, errOut)

	if rest := fs.Args(); len(rest) > 0 {
		code, _ := s.Execute(ctx, strings.Join(rest, " "), out, errOut)
		return code
	}
	return s.Shell(ctx, in, out, errOut)
}

// NewSession creates the in-memory state for one run of the program.
// Log output goes to logOut.
func (d *Dispatcher) NewSession(cfg *config.Config, logOut io.Writer) *Session {
	logger := log.New()
	logger.SetOutput(logOut)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(log.WarnLevel)
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	entry := logger.WithField("session", uuid.New().String())

	st := store.New(
		store.WithCapacity(cfg.HeapCapacity),
		store.WithUndoDepth(cfg.UndoDepth),
		store.WithLogger(entry),
	)

	entry.WithFields(log.Fields{
		"config":        cfg.Dir,
		"heap_capacity": cfg.HeapCapacity,
		"undo_depth":    cfg.UndoDepth,
	}).Debug("session started")

	return &Session{
		registry: d.registry,
		factory:  d.factory,
		env: commands.Env{
			Config: cfg,
			Store:  st,
			Log:    entry,
		},
	}
}

// flagError reports a flag parse failure.
func flagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	// Check for missing flag value
	if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		if len(parts) > 1 {
			flagPart := strings.TrimSpace(parts[len(parts)-1])
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagPart)
			return exitcode.UserError
		}
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}
