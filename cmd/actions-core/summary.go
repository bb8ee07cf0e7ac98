package main

import (
	"github.com/spf13/cobra"

	"actioncore/pkg/summary"
)

var (
	summaryMarkdown  bool
	summarySanitize  bool
	summaryOverwrite bool
	summaryHeading   string
)

var summaryCmd = &cobra.Command{
	Use:   "summary TEXT",
	Short: "Append to the job summary (TEXT - reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readValue(args[0])
		if err != nil {
			return err
		}

		s := action.Summary()
		if summaryHeading != "" {
			s.AddHeading(summaryHeading, 2)
		}
		switch {
		case summaryMarkdown:
			s.AddMarkdown(text)
		case summarySanitize:
			s.AddRaw(summary.Sanitize(text), true)
		default:
			s.AddRaw(text, true)
		}
		return s.Write(summaryOverwrite)
	},
}

var summaryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the job summary of this step",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return action.Summary().Clear()
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryMarkdown, "markdown", false, "Render TEXT from markdown to sanitized HTML")
	summaryCmd.Flags().BoolVar(&summarySanitize, "sanitize", false, "Strip unsafe HTML from TEXT")
	summaryCmd.Flags().BoolVar(&summaryOverwrite, "overwrite", false, "Replace the summary instead of appending")
	summaryCmd.Flags().StringVar(&summaryHeading, "heading", "", "Add a heading before TEXT")
	summaryCmd.MarkFlagsMutuallyExclusive("markdown", "sanitize")

	summaryCmd.AddCommand(summaryClearCmd)
	rootCmd.AddCommand(summaryCmd)
}
