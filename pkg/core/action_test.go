package core

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"actioncore/pkg/command"
	"actioncore/pkg/env"
	"actioncore/pkg/filecmd"
)

type testAction struct {
	*Action
	stdout *bytes.Buffer
	env    *env.Map
	exits  []int
}

func newTestAction(t *testing.T, values map[string]string) *testAction {
	t.Helper()
	ta := &testAction{
		stdout: &bytes.Buffer{},
		env:    env.NewMap(values),
	}
	ta.Action = New(Options{
		Env:    ta.env,
		Stdout: ta.stdout,
		Exit:   func(code int) { ta.exits = append(ta.exits, code) },
	})
	return ta
}

// withChannels points every file channel at an empty scratch file.
func withChannels(t *testing.T, values map[string]string) map[string]string {
	t.Helper()
	if values == nil {
		values = make(map[string]string)
	}
	dir := t.TempDir()
	for _, c := range []filecmd.Channel{filecmd.Output, filecmd.Env, filecmd.Path, filecmd.State, filecmd.StepSummary} {
		path := filepath.Join(dir, string(c))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		values[c.Variable()] = path
	}
	return values
}

func (ta *testAction) commands(t *testing.T) []command.Command {
	t.Helper()
	commands, err := command.Commands(bytes.NewReader(ta.stdout.Bytes()))
	require.NoError(t, err)
	return commands
}

func (ta *testAction) records(t *testing.T, c filecmd.Channel) []filecmd.Record {
	t.Helper()
	path, _ := ta.env.LookupEnv(c.Variable())
	records, err := filecmd.ReadRecordsFile(path)
	require.NoError(t, err)
	return records
}

func TestNew_SelectsChannelsFromEnvironment(t *testing.T) {
	legacy := newTestAction(t, nil)
	for _, c := range []filecmd.Channel{filecmd.Output, filecmd.Env, filecmd.Path, filecmd.State} {
		require.Equal(t, "stdout", legacy.Channel(c).Transport(), c)
	}

	files := newTestAction(t, withChannels(t, nil))
	for _, c := range []filecmd.Channel{filecmd.Output, filecmd.Env, filecmd.Path, filecmd.State} {
		require.Equal(t, "file", files.Channel(c).Transport(), c)
	}

	mixed := newTestAction(t, map[string]string{"GITHUB_OUTPUT": filepath.Join(t.TempDir(), "out")})
	require.Equal(t, "file", mixed.Channel(filecmd.Output).Transport())
	require.Equal(t, "stdout", mixed.Channel(filecmd.Env).Transport())
}

func TestNew_SelectionIsFixedAtStartup(t *testing.T) {
	ta := newTestAction(t, nil)
	require.NoError(t, ta.env.Setenv("GITHUB_OUTPUT", filepath.Join(t.TempDir(), "late")))

	require.NoError(t, ta.SetOutput("k", "v"))
	require.Equal(t, []command.Command{
		{Name: "set-output", Properties: command.Properties{{Key: "name", Value: "k"}}, Message: "v"},
	}, ta.commands(t))
}

func TestIsRunnerAndDebug(t *testing.T) {
	ta := newTestAction(t, map[string]string{"GITHUB_ACTIONS": "true", "RUNNER_DEBUG": "1"})
	require.True(t, ta.IsRunner())
	require.True(t, ta.IsDebug())

	ta = newTestAction(t, map[string]string{"RUNNER_DEBUG": "true"})
	require.False(t, ta.IsRunner())
	require.False(t, ta.IsDebug())
}

type brokenStdout struct{}

func (brokenStdout) Write(p []byte) (int, error) {
	return 0, errors.New("stdout closed")
}

func TestIssue_StdoutFailureIsFatal(t *testing.T) {
	var exits []int
	a := New(Options{
		Env:    env.NewMap(nil),
		Stdout: brokenStdout{},
		Exit:   func(code int) { exits = append(exits, code) },
	})

	a.Info("hello")
	a.Debug("hello")
	require.Equal(t, []int{ExitFailure, ExitFailure}, exits)
}

func TestEndToEnd_GreetingOutput(t *testing.T) {
	values := withChannels(t, map[string]string{"INPUT_NAME": "world"})
	ta := newTestAction(t, values)

	name, err := ta.GetInput("name", InputOptions{})
	require.NoError(t, err)
	require.NoError(t, ta.SetOutput("greeting", "hello "+name))

	records := ta.records(t, filecmd.Output)
	require.Equal(t, []filecmd.Record{{Key: "greeting", Value: "hello world"}}, records)
	require.Empty(t, ta.stdout.String())
	require.Equal(t, ExitSuccess, ta.ExitCode())
}
