package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var maskFromStdin bool

var addMaskCmd = &cobra.Command{
	Use:   "add-mask [VALUE]",
	Short: "Mask a secret value in the job log",
	Long: `Mask a secret value in the job log.

Without VALUE the secret is read from stdin: with a hidden prompt when stdin
is a terminal, or verbatim (one trailing newline dropped) with --from-stdin or
when stdin is a pipe. Prefer stdin so the secret stays out of the process list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var secret string
		switch {
		case len(args) == 1:
			v, err := readValue(args[0])
			if err != nil {
				return err
			}
			secret = v
		case !maskFromStdin && stdinTTY != nil && isatty.IsTerminal(stdinTTY.Fd()):
			fmt.Fprint(stderr, "Enter secret to mask: ")
			b, err := term.ReadPassword(int(stdinTTY.Fd()))
			fmt.Fprintln(stderr)
			if err != nil {
				return fmt.Errorf("failed to read secret: %w", err)
			}
			secret = string(b)
		default:
			b, err := io.ReadAll(stdin)
			if err != nil {
				return fmt.Errorf("failed to read secret from stdin: %w", err)
			}
			secret = strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r")
		}

		if secret == "" {
			return fmt.Errorf("refusing to mask an empty value")
		}
		action.SetSecret(secret)
		return nil
	},
}

func init() {
	addMaskCmd.Flags().BoolVar(&maskFromStdin, "from-stdin", false, "Read the secret from stdin without prompting (for scripts)")
	rootCmd.AddCommand(addMaskCmd)
}
