package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"actioncore/internal/logging"
	"actioncore/pkg/command"
	"actioncore/pkg/core"
	"actioncore/pkg/env"
)

// Process handles, replaced in tests.
var (
	stdin    io.Reader = os.Stdin
	stdinTTY           = os.Stdin
	stdout   io.Writer = os.Stdout
	stderr   io.Writer = os.Stderr
	baseEnv            = env.FromOS
)

var (
	envFile string
	verbose bool

	action *core.Action
	closer io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "actions-core",
	Short: "Workflow command toolkit for shell steps",
	Long: `actions-core talks to the workflow runner from shell steps: it reads inputs,
sets outputs, exports variables, extends PATH, saves state, writes annotations
and job summaries, and masks secrets.

Outside a runner, --env-file loads a YAML map of variables (for example
GITHUB_OUTPUT and INPUT_* values) to simulate one.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// setup builds the Action shared by every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	e := baseEnv()
	if envFile != "" {
		overlay, err := env.LoadYAML(envFile)
		if err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
		for _, key := range overlay.Keys() {
			value, _ := overlay.LookupEnv(key)
			if err := e.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	secrets := core.NewSecretRegistry()
	logger, c := logging.New(logging.Config{
		Env:     e,
		Stderr:  stderr,
		Verbose: verbose,
		Masker:  secrets,
	})
	closer = c
	action = core.New(core.Options{
		Env:     e,
		Stdout:  stdout,
		Logger:  logger,
		Secrets: secrets,
		Exit:    exit,
	})
	return nil
}

// exit is called on fatal stdout errors.
var exit = os.Exit

// readValue returns arg, or all of stdin when arg is "-". A single trailing
// newline is dropped from stdin.
func readValue(arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	value := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(value, "\r"), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "YAML file of environment variables to simulate a runner")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics at debug level to stderr")
}

// run executes the CLI and returns the process exit status. Errors are
// reported as an error annotation.
func run(args []string) int {
	action, closer = nil, nil
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if closer != nil {
		_ = closer.Close()
	}
	if err != nil {
		message := err.Error()
		if action != nil {
			message = action.Secrets().Mask(message)
		}
		if writeErr := command.NewIssuer(stdout).Issue(command.New("error", message)); writeErr != nil {
			fmt.Fprintln(stderr, message)
		}
		return core.ExitFailure
	}
	if action != nil {
		return action.ExitCode()
	}
	return core.ExitSuccess
}

func main() {
	os.Exit(run(os.Args[1:]))
}
