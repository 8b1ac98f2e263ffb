package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"

	"smarttodo/internal/backend/googletasks"
	"smarttodo/internal/commands"
	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
	"smarttodo/internal/service"
)

// Session holds the task store and settings shared by every command line
// of one program run.
type Session struct {
	registry *commands.Registry
	factory  ServiceFactory
	env      commands.Env
}

// Execute runs one command line. The first word names the command, then
// come its flags, then the comma-separated arguments.
// Returns the exit code and whether the session should end.
func (s *Session) Execute(ctx context.Context, line string, out, errOut io.Writer) (int, bool) {
	ws, starts := words(line)
	if len(ws) == 0 {
		return exitcode.Success, false
	}

	cmdName := ws[0]
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError, false
	}

	cmd, ok := s.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError, false
	}

	fset := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	cmd.RegisterFlags(fset)

	n := 1 + leadingFlags(fset, ws[1:])
	if err := fset.Parse(ws[1:n]); err != nil {
		return flagError(errOut, err), false
	}

	// Arguments are cut from the raw line so inner spacing survives.
	var rest string
	if n < len(ws) {
		rest = line[starts[n]:]
	}

	env := s.env
	if cmd.NeedsAuth() {
		svc, code := s.service(ctx, errOut)
		if code != exitcode.Success {
			return code, false
		}
		env.Service = svc
	}

	code := cmd.Run(ctx, &env, SplitArgs(rest), out, errOut)
	s.env.Log.WithFields(log.Fields{"command": cmd.Name(), "code": code}).Debug("command finished")

	quit := false
	if t, ok := cmd.(commands.Terminator); ok {
		quit = t.Terminates()
	}
	return code, quit
}

// SplitArgs splits the argument text on commas and trims each argument.
// Blank text yields no arguments.
func SplitArgs(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	parts := strings.Split(text, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// words splits s on white space and reports the byte offset of each word.
func words(s string) ([]string, []int) {
	var ws []string
	var starts []int
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				ws = append(ws, s[start:i])
				starts = append(starts, start)
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		ws = append(ws, s[start:])
		starts = append(starts, start)
	}
	return ws, starts
}

// leadingFlags counts the words at the start of ws that set flags of fset,
// values and a closing "--" included. The first word that does not name a
// registered flag starts the arguments, so "-urgent" or "-1" stay text.
func leadingFlags(fset *flag.FlagSet, ws []string) int {
	i := 0
	for i < len(ws) {
		w := ws[i]
		if w == "--" {
			return i + 1
		}
		if len(w) < 2 || w[0] != '-' {
			return i
		}
		name, _, hasValue := strings.Cut(strings.TrimPrefix(w[1:], "-"), "=")
		f := fset.Lookup(name)
		if f == nil {
			return i
		}
		i++
		if !hasValue && !isBoolFlag(f) && i < len(ws) {
			i++
		}
	}
	return i
}

func isBoolFlag(f *flag.Flag) bool {
	bf, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && bf.IsBoolFlag()
}

// Shell reads command lines from in until EOF, a quit command, or ctx is done.
// Command failures are reported and the shell keeps going.
func (s *Session) Shell(ctx context.Context, in io.Reader, out, errOut io.Writer) int {
	cfg := s.env.Config
	styles := output.NewStyles(out)
	if cfg.Banner && !cfg.Quiet {
		styles.Banner(out, commands.Version)
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if cfg.Prompt != "" {
			styles.Prompt(out, cfg.Prompt)
		}

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			s.env.Log.Debug("interrupted")
			return exitcode.Success
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						fmt.Fprintf(errOut, "error: reading input: %v\n", err)
						return exitcode.UserError
					}
				default:
				}
				return exitcode.Success
			}
			if _, quit := s.Execute(ctx, line, out, errOut); quit {
				return exitcode.Success
			}
		}
	}
}

// service creates the backend for a command that needs one.
func (s *Session) service(ctx context.Context, errOut io.Writer) (service.Service, int) {
	cfg := s.env.Config

	if s.factory != nil {
		svc, err := s.factory(ctx, cfg)
		if err != nil {
			return nil, serviceError(errOut, err)
		}
		return svc, exitcode.Success
	}

	// No factory - check for required auth files and report user-friendly errors
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n", cfg.Dir)
		return nil, exitcode.AuthError
	}
	if !cfg.HasToken() {
		fmt.Fprintf(errOut, "error: not logged in (run: login)\n")
		return nil, exitcode.AuthError
	}

	svc, err := googletasks.New(ctx, cfg)
	if err != nil {
		return nil, serviceError(errOut, err)
	}
	return svc, exitcode.Success
}

func serviceError(errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrAuth) || errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(errOut, "error: auth error: %s\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %s\n", err)
	return exitcode.BackendError
}
