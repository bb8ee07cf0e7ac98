package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"actioncore/pkg/manifest"
)

var (
	manifestFile    string
	manifestPackage string
	manifestType    string
	manifestOut     string
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Work with the action metadata file (action.yml)",
}

var manifestCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the inputs of this step against action.yml",
	Long: `Check the inputs of this step against action.yml.

Every deprecated input that is set produces a warning annotation. Missing
required inputs fail the command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManifest()
		if err != nil {
			return err
		}
		warnings, err := m.Validate(action.Env())
		for _, w := range warnings {
			action.Warning(w, nil)
		}
		return err
	},
}

var manifestGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate typed Go accessors for the inputs of action.yml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := manifestPath()
		if err != nil {
			return err
		}
		m, err := manifest.Load(path)
		if err != nil {
			return err
		}
		src, err := manifest.Generate(m, manifest.GenerateOptions{
			Package: manifestPackage,
			Type:    manifestType,
			Source:  path,
		})
		if err != nil {
			return err
		}
		if manifestOut == "" || manifestOut == "-" {
			_, err = stdout.Write(src)
			return err
		}
		if err := os.WriteFile(manifestOut, src, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", manifestOut, err)
		}
		action.Debug("Generated " + manifestOut)
		return nil
	},
}

// manifestPath resolves --file, which may name a file or a directory.
func manifestPath() (string, error) {
	path := manifestFile
	if path == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return manifest.Find(path)
	}
	return path, nil
}

func loadManifest() (*manifest.Manifest, error) {
	path, err := manifestPath()
	if err != nil {
		return nil, err
	}
	return manifest.Load(path)
}

func init() {
	manifestCmd.PersistentFlags().StringVarP(&manifestFile, "file", "f", "", "action.yml file or its directory (default: current directory)")
	manifestGenCmd.Flags().StringVar(&manifestPackage, "package", "main", "Package name of the generated file")
	manifestGenCmd.Flags().StringVar(&manifestType, "type", "Action", "Name of the generated accessor type")
	manifestGenCmd.Flags().StringVarP(&manifestOut, "out", "o", "", "Output file (default: stdout)")

	manifestCmd.AddCommand(manifestCheckCmd)
	manifestCmd.AddCommand(manifestGenCmd)
	rootCmd.AddCommand(manifestCmd)
}
