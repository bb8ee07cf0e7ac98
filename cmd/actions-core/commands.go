package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"actioncore/pkg/core"
)

var setOutputCmd = &cobra.Command{
	Use:   "set-output NAME VALUE",
	Short: "Set a step output (VALUE - reads stdin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := readValue(args[1])
		if err != nil {
			return err
		}
		return action.SetOutput(args[0], value)
	},
}

var exportVarCmd = &cobra.Command{
	Use:   "export-var NAME VALUE",
	Short: "Export an environment variable to later steps (VALUE - reads stdin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := readValue(args[1])
		if err != nil {
			return err
		}
		return action.ExportVariable(args[0], value)
	},
}

var addPathCmd = &cobra.Command{
	Use:   "add-path PATH",
	Short: "Prepend a directory to PATH for later steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return action.AddPath(args[0])
	},
}

var saveStateCmd = &cobra.Command{
	Use:   "save-state NAME VALUE",
	Short: "Save a value for the post step (VALUE - reads stdin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := readValue(args[1])
		if err != nil {
			return err
		}
		return action.SaveState(args[0], value)
	},
}

var getStateCmd = &cobra.Command{
	Use:   "get-state NAME",
	Short: "Print a value saved by the main step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(stdout, action.GetState(args[0]))
		return err
	},
}

var (
	inputRequired           bool
	inputPreserveWhitespace bool
	inputBool               bool
	inputMultiline          bool
)

var getInputCmd = &cobra.Command{
	Use:   "get-input NAME",
	Short: "Print the value of an action input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := core.InputOptions{
			Required:           inputRequired,
			PreserveWhitespace: inputPreserveWhitespace,
		}
		switch {
		case inputBool:
			b, err := action.GetBoolInput(args[0], opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, strconv.FormatBool(b))
			return err
		case inputMultiline:
			lines, err := action.GetMultilineInput(args[0], opts)
			if err != nil {
				return err
			}
			for _, line := range lines {
				if _, err := fmt.Fprintln(stdout, line); err != nil {
					return err
				}
			}
			return nil
		default:
			value, err := action.GetInput(args[0], opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, value)
			return err
		}
	},
}

// Annotation flags, shared by the log level commands.
var annotation core.AnnotationProperties

func newLogCmd(level core.Level) *cobra.Command {
	cmd := &cobra.Command{
		Use:   level.String() + " MESSAGE",
		Short: fmt.Sprintf("Write a %s message (MESSAGE - reads stdin)", level),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readValue(args[0])
			if err != nil {
				return err
			}
			props := annotation
			action.Log(level, message, &props)
			return nil
		},
	}
	if level >= core.LevelNotice {
		cmd.Flags().StringVar(&annotation.Title, "title", "", "Annotation title")
		cmd.Flags().StringVar(&annotation.File, "file", "", "File the annotation refers to")
		cmd.Flags().IntVar(&annotation.StartLine, "line", 0, "Start line")
		cmd.Flags().IntVar(&annotation.EndLine, "end-line", 0, "End line")
		cmd.Flags().IntVar(&annotation.StartColumn, "col", 0, "Start column")
		cmd.Flags().IntVar(&annotation.EndColumn, "end-column", 0, "End column")
	}
	return cmd
}

var echoCmd = &cobra.Command{
	Use:       "echo on|off",
	Short:     "Turn echoing of workflow commands on or off",
	ValidArgs: []string{"on", "off"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		action.SetCommandEcho(args[0] == "on")
		return nil
	},
}

func init() {
	getInputCmd.Flags().BoolVar(&inputRequired, "required", false, "Fail when the input is unset or blank")
	getInputCmd.Flags().BoolVar(&inputPreserveWhitespace, "preserve-whitespace", false, "Keep leading and trailing whitespace")
	getInputCmd.Flags().BoolVar(&inputBool, "bool", false, "Parse the input as a boolean")
	getInputCmd.Flags().BoolVar(&inputMultiline, "multiline", false, "Print one non-empty line per line of the input")
	getInputCmd.MarkFlagsMutuallyExclusive("bool", "multiline")

	rootCmd.AddCommand(setOutputCmd)
	rootCmd.AddCommand(exportVarCmd)
	rootCmd.AddCommand(addPathCmd)
	rootCmd.AddCommand(saveStateCmd)
	rootCmd.AddCommand(getStateCmd)
	rootCmd.AddCommand(getInputCmd)
	rootCmd.AddCommand(echoCmd)
	for _, level := range []core.Level{core.LevelDebug, core.LevelNotice, core.LevelWarning, core.LevelError} {
		rootCmd.AddCommand(newLogCmd(level))
	}
}
