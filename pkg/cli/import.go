package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claudiu-carv/ats-mock-simulator/pkg/importer"
)

type importFlags struct {
	format     string
	jsonOutput bool
	outputFile string
}

var importFlagVals importFlags

var importCmd = &cobra.Command{
	Use:   "import <spec-file>",
	Short: "Convert an OpenAPI spec into mock endpoint definitions",
	Long: `Convert an OpenAPI 3.x specification into mock endpoint definitions
with request validation schemas and response templates.

The result is printed as JSON and can be reviewed before serving, or
posted to a running simulator's admin API at POST /import/openapi.`,
	Example: `  # Convert a spec and inspect the result
  atsmock import ats-api.yaml

  # Write the converted endpoints to a file
  atsmock import ats-api.yaml -o endpoints.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0], &importFlagVals)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	f := &importFlagVals
	importCmd.Flags().StringVar(&f.format, "format", "auto", "Spec format: json, yaml, or auto")
	importCmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Print the full result as JSON")
	importCmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "Write the full result to a file")
}

func runImport(cmd *cobra.Command, specPath string, f *importFlags) error {
	content, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("reading spec file: %w", err)
	}

	format, err := parseImportFormat(f.format)
	if err != nil {
		return err
	}

	im := importer.New()
	result, err := im.ImportSpec(cmd.Context(), string(content), format)
	if err != nil {
		return fmt.Errorf("importing %s: %w", specPath, err)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, encoded, 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if f.jsonOutput || f.outputFile == "" {
		fmt.Fprintln(out, string(encoded))
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d endpoint(s) from %s\n", result.TotalEndpoints, specPath)
	for _, e := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  error: %s\n", e)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "  warning: %s\n", warning)
	}
	return nil
}

func parseImportFormat(s string) (importer.Format, error) {
	switch s {
	case "", "auto":
		return importer.FormatAuto, nil
	case "json":
		return importer.FormatJSON, nil
	case "yaml", "yml":
		return importer.FormatYAML, nil
	default:
		return importer.FormatAuto, fmt.Errorf("unsupported format %q: use json, yaml, or auto", s)
	}
}
