package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd serves MCP when invoked without a subcommand, which is how agent
// hosts launch the binary.
var rootCmd = &cobra.Command{
	Use:   "tensorpool-mcp",
	Short: "MCP server exposing TensorPool cluster and job tools",
	Long: `tensorpool-mcp bridges MCP clients (AI agents) to the TensorPool 'tp' CLI.

It exposes cluster management (create, list, info, destroy) and job
management (push, list, info, pull, cancel) as MCP tools. Each tool call
shells out to tp and relays its output; the server itself keeps no state.

Requires TENSORPOOL_API_KEY (or TP_API_KEY) in the environment.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Errors are pre-formatted structured errors; print as-is to stderr
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
