// Package core is the user-facing toolkit for writing actions: typed inputs,
// outputs, exported variables, path entries, saved state, annotations, log
// groups, secret masking, and the failure exit status.
//
// All process-wide mutable state (registered secrets, the group depth, the
// exit status) lives in an Action, so tests can build isolated instances:
//
//	a := core.New(core.Options{})
//	name, err := a.GetInput("name", core.InputOptions{Required: true})
//	if err != nil {
//		a.Fail(err)
//	}
//	_ = a.SetOutput("greeting", "hello "+name)
package core

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"actioncore/pkg/command"
	"actioncore/pkg/env"
	"actioncore/pkg/filecmd"
)

const (
	// ExitSuccess is the exit status of an action that did not fail.
	ExitSuccess = 0
	// ExitFailure is the exit status after SetFailed.
	ExitFailure = 1
)

// RunnerVariable is set to "true" by the runner for every step.
const RunnerVariable = "GITHUB_ACTIONS"

// Options configures an Action. The zero value talks to the real process:
// os.Stdout, the OS environment, slog.Default, and os.Exit.
type Options struct {
	Env    env.Env
	Stdout io.Writer
	Logger *slog.Logger
	// Sync is the durability of file channel writes. SyncFlush is upgraded
	// to SyncFsync when ACTIONS_CORE_FSYNC=1.
	Sync filecmd.SyncPolicy
	// Secrets is the masking registry, shared with a diagnostic logger that
	// redacts through it. A new registry is created when nil.
	Secrets *SecretRegistry
	// Exit terminates the process. Fail and fatal stdout errors call it.
	Exit func(code int)
}

// Action holds the state shared by every toolkit operation of one process.
type Action struct {
	env      env.Env
	issuer   *command.Issuer
	files    *filecmd.Writer
	channels map[filecmd.Channel]CommandChannel
	secrets  *SecretRegistry
	logger   *slog.Logger
	exit     func(int)

	mu         sync.Mutex
	groupDepth int
	exitCode   int
}

// New creates an Action and selects the transport of every command channel
// once, based on the environment.
func New(opts Options) *Action {
	if opts.Env == nil {
		opts.Env = env.OS{}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Secrets == nil {
		opts.Secrets = NewSecretRegistry()
	}
	if opts.Exit == nil {
		opts.Exit = os.Exit
	}
	policy := opts.Sync
	if policy == filecmd.SyncFlush {
		policy = filecmd.SyncPolicyFromEnv(opts.Env)
	}

	a := &Action{
		env:     opts.Env,
		issuer:  command.NewIssuer(opts.Stdout),
		files:   filecmd.NewWriter(opts.Env, policy),
		secrets: opts.Secrets,
		logger:  opts.Logger,
		exit:    opts.Exit,
	}
	a.channels = selectChannels(a.files, a.issue)

	a.logger.Debug("Action initialized",
		"runner", env.Get(a.env, RunnerVariable),
		"output", a.channels[filecmd.Output].Transport(),
		"env", a.channels[filecmd.Env].Transport(),
		"path", a.channels[filecmd.Path].Transport(),
		"state", a.channels[filecmd.State].Transport())
	return a
}

// Env returns the environment the Action reads from and writes to.
func (a *Action) Env() env.Env {
	return a.env
}

// Files returns the file channel writer, for channels without a legacy
// fallback such as the step summary.
func (a *Action) Files() *filecmd.Writer {
	return a.files
}

// Secrets returns the registry of masked values.
func (a *Action) Secrets() *SecretRegistry {
	return a.secrets
}

// Channel returns the transport selected for a channel.
func (a *Action) Channel(c filecmd.Channel) CommandChannel {
	return a.channels[c]
}

// IsRunner reports whether the process runs under the runner.
func (a *Action) IsRunner() bool {
	return env.Get(a.env, RunnerVariable) == "true"
}

// IsDebug reports whether step debug logging is enabled.
func (a *Action) IsDebug() bool {
	return env.Get(a.env, "RUNNER_DEBUG") == "1"
}

// Issue writes a raw workflow command.
func (a *Action) Issue(c command.Command) {
	_ = a.issue(c)
}

// issue writes c to stdout. Standard output is assumed to be always
// available, so a failed write terminates the process.
func (a *Action) issue(c command.Command) error {
	if err := a.issuer.Issue(c); err != nil {
		a.fatal(err)
		return err
	}
	return nil
}

func (a *Action) println(line string) {
	if err := a.issuer.Println(line); err != nil {
		a.fatal(err)
	}
}

func (a *Action) fatal(err error) {
	a.logger.Error("Failed to write to standard output", "error", err)
	a.exit(ExitFailure)
}
