package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/claudiu-carv/ats-mock-simulator/pkg/template"
)

var renderDataFile string

var renderCmd = &cobra.Command{
	Use:   "render <template-file>",
	Short: "Render a response template with sample request data",
	Long: `Render a response template, resolving ${request.*} placeholders from
a JSON data file and generating values for ${mock.*} placeholders.`,
	Example: `  # Render with generated mock data only
  atsmock render response.json

  # Render with request data
  atsmock render response.json --data request.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, args[0])
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <template-file>",
	Short: "Check a response template for placeholder and JSON errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(validateCmd)

	renderCmd.Flags().StringVar(&renderDataFile, "data", "", "JSON file with request data for ${request.*} placeholders")
}

func runRender(cmd *cobra.Command, templatePath string) error {
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("reading template file: %w", err)
	}

	data := map[string]any{}
	if renderDataFile != "" {
		raw, err := os.ReadFile(renderDataFile)
		if err != nil {
			return fmt.Errorf("reading data file: %w", err)
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("parsing data file: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), template.New().Render(string(tmpl), data))
	return nil
}

func runValidate(cmd *cobra.Command, templatePath string) error {
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("reading template file: %w", err)
	}

	report := template.New().Validate(string(tmpl))
	out := cmd.OutOrStdout()

	titleCaser := cases.Title(language.English)
	printFields := func(label string, fields []string) {
		if len(fields) == 0 {
			return
		}
		fmt.Fprintf(out, "%s:\n", titleCaser.String(label))
		for _, f := range fields {
			fmt.Fprintf(out, "  %s\n", f)
		}
	}
	printFields("request fields", report.RequestFields)
	printFields("mock fields", report.MockFields)

	if !report.Valid {
		return fmt.Errorf("template is invalid:\n  %s", strings.Join(report.Errors, "\n  "))
	}
	fmt.Fprintf(out, "Template is valid (%d placeholder(s))\n", len(report.Placeholders))
	return nil
}
