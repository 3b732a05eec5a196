package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is injected during build.
var Version = "dev"

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "atsmock",
	Short: "atsmock simulates applicant tracking system APIs",
	Long: `atsmock is a mock API simulator for applicant tracking systems.

It serves configurable mock endpoints with dynamic response templates,
validates incoming requests against field rules, and imports endpoint
definitions from OpenAPI 3.x specifications.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the atsmock version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "atsmock", Version)
	},
}
