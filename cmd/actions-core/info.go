package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"actioncore/pkg/env"
	"actioncore/pkg/platform"
	"actioncore/pkg/runcontext"
)

var platformSetOutputs bool

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Print details of the runner host as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := platform.Detect(cmd.Context())
		if err != nil {
			return err
		}
		if platformSetOutputs {
			outputs := [][2]string{
				{"name", d.Name},
				{"platform", d.Platform},
				{"arch", d.Arch},
				{"version", d.Version},
			}
			for _, o := range outputs {
				if err := action.SetOutput(o[0], o[1]); err != nil {
					return err
				}
			}
		}
		return printJSON(d)
	},
}

var (
	contextPullRequest bool
	contextToken       string
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the workflow run context as JSON",
	Long: `Print the workflow run context as JSON.

With --pull-request, fetch the pull request the event refers to from the API
instead. The token defaults to the github-token input, then GITHUB_TOKEN.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := runcontext.FromEnv(action.Env())
		if err != nil {
			return err
		}
		if !contextPullRequest {
			return printJSON(c)
		}

		token := contextToken
		if token == "" {
			token, _ = action.GetInput("github-token", env.InputOptions{})
		}
		if token == "" {
			token = env.Get(action.Env(), "GITHUB_TOKEN")
		}
		action.SetSecret(token)

		client, err := c.Client(cmd.Context(), token)
		if err != nil {
			return err
		}
		pr, err := c.PullRequest(cmd.Context(), client)
		if err != nil {
			return err
		}
		return printJSON(pr)
	},
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}

func init() {
	platformCmd.Flags().BoolVar(&platformSetOutputs, "set-outputs", false, "Also set name, platform, arch and version outputs")

	contextCmd.Flags().BoolVar(&contextPullRequest, "pull-request", false, "Fetch the pull request of the event")
	contextCmd.Flags().StringVar(&contextToken, "token", "", "API token")

	rootCmd.AddCommand(platformCmd)
	rootCmd.AddCommand(contextCmd)
}
