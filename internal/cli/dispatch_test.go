package cli_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttodo/internal/cli"
	"smarttodo/internal/commands"
	"smarttodo/internal/config"
	"smarttodo/internal/exitcode"
	"smarttodo/internal/service"
	"smarttodo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// plainConfigDir returns a config directory whose settings turn off the
// banner and prompt so shell output can be compared exactly.
func plainConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("prompt = \"\"\nbanner = false\n"), 0600)
	require.NoError(t, err)
	return dir
}

func run(t *testing.T, factory cli.ServiceFactory, args []string, input string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, strings.NewReader(input), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, []string{"--config", plainConfigDir(t), "unknowncmd"}, "")

	assert.Equal(t, exitcode.UserError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: unknown command: unknowncmd\n", stderr)
}

func TestDispatcher_UnknownStartupFlag(t *testing.T) {
	_, stderr, code := run(t, nil, []string{"--bogus"}, "")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown flag: -bogus\n", stderr)
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, []string{"--config", plainConfigDir(t), "version"}, "")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "smarttodo 0.1.0\n", stdout)
}

func TestDispatcher_OneShotCommaArguments(t *testing.T) {
	stdout, stderr, code := run(t, nil, []string{"--config", plainConfigDir(t), "add", "Write", "report,2"}, "")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "added [ID: 1] Write report (Priority: 2) - Not done\n", stdout)
}

func TestDispatcher_QuietFlag(t *testing.T) {
	stdout, _, code := run(t, nil, []string{"--config", plainConfigDir(t), "--quiet", "add", "A,1"}, "")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
}

func TestDispatcher_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("colour = \"red\"\n"), 0600))

	_, stderr, code := run(t, nil, []string{"--config", dir, "version"}, "")

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "unknown keys: colour")
}

func TestShell_Session(t *testing.T) {
	input := strings.Join([]string{
		"add Write report,2",
		"",
		"add Email boss,1",
		"list",
		"complete",
		"list --all",
		"quit",
		"add never,1",
	}, "\n")

	stdout, stderr, code := run(t, nil, []string{"--config", plainConfigDir(t)}, input)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	expected := "added [ID: 1] Write report (Priority: 2) - Not done\n" +
		"added [ID: 2] Email boss (Priority: 1) - Not done\n" +
		"[ID: 2] Email boss (Priority: 1) - Not done\n" +
		"[ID: 1] Write report (Priority: 2) - Not done\n" +
		"completed [ID: 2] Email boss (Priority: 1) - Done\n" +
		"[ID: 2] Email boss (Priority: 1) - Done\n" +
		"[ID: 1] Write report (Priority: 2) - Not done\n"
	assert.Equal(t, expected, stdout)
}

func TestShell_ErrorsDoNotEndSession(t *testing.T) {
	input := strings.Join([]string{
		"undo",
		"frobnicate",
		"add ,3",
		"delete 7",
		"list --format",
		"list --bogus",
		"add A,1",
		"delete 1",
		"undo",
		"next",
	}, "\n")

	stdout, stderr, code := run(t, nil, []string{"--config", plainConfigDir(t)}, input)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "error: nothing to undo\n"+
		"error: unknown command: frobnicate\n"+
		"error: invalid name: must not be empty\n"+
		"error: task not found: 7\n"+
		"error: flag needs an argument: -format\n"+
		"error: invalid arguments: usage: list [--completed | --all] [--format text|json|yaml]\n", stderr)
	assert.Equal(t, "added [ID: 1] A (Priority: 1) - Not done\n"+
		"deleted task 1\n"+
		"undid delete of task 1\n"+
		"[ID: 1] A (Priority: 1) - Not done\n", stdout)
}

func TestShell_FlagsResetBetweenLines(t *testing.T) {
	input := strings.Join([]string{
		"add A,1",
		"complete",
		"add B,2",
		"list --completed",
		"list",
	}, "\n")

	stdout, _, _ := run(t, nil, []string{"--config", plainConfigDir(t), "--quiet"}, input)

	assert.Equal(t, "[ID: 1] A (Priority: 1) - Done\n[ID: 2] B (Priority: 2) - Not done\n", stdout)
}

func TestShell_Banner(t *testing.T) {
	stdout, _, code := run(t, nil, []string{"--config", t.TempDir()}, "quit\n")

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, stdout, "Smart To-Do List 0.1.0")
	assert.Contains(t, stdout, ">")
}

func TestShell_ContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)
	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(ctx, []string{"--config", plainConfigDir(t)}, pr, &stdout, &stderr)

	assert.Equal(t, exitcode.Success, code)
}

func TestShell_ExportWithFactory(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("work", "Work")

	input := "add Write report,2\nadd Email boss,1\nexport --list work\n"
	stdout, stderr, code := run(t, testFactory(svc), []string{"--config", plainConfigDir(t), "--quiet"}, input)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Empty(t, stdout)
	assert.Equal(t, []service.Task{
		{Title: "Email boss", Notes: "priority 1"},
		{Title: "Write report", Notes: "priority 2"},
	}, svc.Tasks("work"))
}

func TestDispatcher_ExportWithoutCredentials(t *testing.T) {
	dir := plainConfigDir(t)

	_, stderr, code := run(t, nil, []string{"--config", dir, "export"}, "")
	assert.Equal(t, exitcode.AuthError, code)
	assert.Equal(t, "error: oauth_client.json not found in "+dir+"\n", stderr)

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.OAuthClientFile), []byte("{}"), 0600))
	_, stderr, code = run(t, nil, []string{"--config", dir, "lists"}, "")
	assert.Equal(t, exitcode.AuthError, code)
	assert.Equal(t, "error: not logged in (run: login)\n", stderr)
}

func TestDispatcher_FactoryAuthError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, service.ErrAuth
	}

	_, stderr, code := run(t, factory, []string{"--config", plainConfigDir(t), "lists"}, "")

	assert.Equal(t, exitcode.AuthError, code)
	assert.Equal(t, "error: auth error: "+service.ErrAuth.Error()+"\n", stderr)
}

func TestShell_ArgumentsKeepTheirText(t *testing.T) {
	input := strings.Join([]string{
		"add -urgent fix,1",
		"add Write   report,2",
		"search -urgent",
		"search --format json -- -urgent",
		"complete -1",
		"list",
	}, "\n")

	stdout, stderr, code := run(t, nil, []string{"--config", plainConfigDir(t)}, input)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "error: task not found: -1\n", stderr)
	assert.Equal(t, "added [ID: 1] -urgent fix (Priority: 1) - Not done\n"+
		"added [ID: 2] Write   report (Priority: 2) - Not done\n"+
		"[ID: 1] -urgent fix (Priority: 1) - Not done\n"+
		"[\n  {\n    \"id\": 1,\n    \"name\": \"-urgent fix\",\n    \"priority\": 1,\n    \"completed\": false\n  }\n]\n"+
		"[ID: 1] -urgent fix (Priority: 1) - Not done\n"+
		"[ID: 2] Write   report (Priority: 2) - Not done\n", stdout)
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "", nil},
		{"blank", "  ", nil},
		{"single", "7", []string{"7"}},
		{"inner spaces kept", " Write   report , 2", []string{"Write   report", "2"}},
		{"empty piece", ",2", []string{"", "2"}},
		{"three", "1,Renamed, 4", []string{"1", "Renamed", "4"}},
		{"leading dash", "-urgent fix,1", []string{"-urgent fix", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.SplitArgs(tt.text))
		})
	}
}

func TestSession_UsesConfiguredUndoDepth(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.UndoDepth = 1
	cfg.Quiet = true

	s := cli.NewDispatcher(commands.DefaultRegistry, nil).NewSession(cfg, io.Discard)
	var out, errOut bytes.Buffer
	for _, line := range []string{"add A,1", "add B,2", "undo", "undo", "list"} {
		s.Execute(context.Background(), line, &out, &errOut)
	}

	assert.Equal(t, "error: nothing to undo\n", errOut.String())
	assert.Equal(t, "[ID: 1] A (Priority: 1) - Not done\n", out.String())
}
