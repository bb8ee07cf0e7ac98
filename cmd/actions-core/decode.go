package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"actioncore/pkg/command"
	"actioncore/pkg/filecmd"
)

var decodeRecords bool

// decodedProperty keeps properties as an ordered list, so repeated keys and
// their order survive.
type decodedProperty struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// decodedCommand is the JSON form of one workflow command.
type decodedCommand struct {
	Name       string            `json:"name"`
	Properties []decodedProperty `json:"properties,omitempty"`
	Message    string            `json:"message"`
}

var decodeCmd = &cobra.Command{
	Use:   "decode [FILE]",
	Short: "Decode workflow commands or file channel records to JSON lines",
	Long: `Decode captured step output (or, with --records, a file channel such as
GITHUB_OUTPUT) and print one JSON object per command or record. FILE defaults
to stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := stdin
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			in = f
		}

		enc := json.NewEncoder(stdout)
		if decodeRecords {
			return decodeRecordsTo(enc, in)
		}
		commands, err := command.Commands(in)
		if err != nil {
			return err
		}
		for _, c := range commands {
			out := decodedCommand{Name: c.Name, Message: c.Message}
			for _, p := range c.Properties {
				out.Properties = append(out.Properties, decodedProperty{Key: p.Key, Value: p.Value})
			}
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("failed to encode command: %w", err)
			}
		}
		return nil
	},
}

func decodeRecordsTo(enc *json.Encoder, in io.Reader) error {
	records, err := filecmd.ReadRecords(in)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := enc.Encode(map[string]string{"key": r.Key, "value": r.Value}); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}
	return nil
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeRecords, "records", false, "Decode key/value file channel records")
	rootCmd.AddCommand(decodeCmd)
}
