package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fitwatch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server exposing progress tools",
	Long: `Start a Model Context Protocol stdio server that an assistant can
query for the user's progress. The server exposes three tools:

  get_progress_summary  Overall score, component metrics and insights
  get_insights          Insights in rule order, optionally limited
  get_completion        Per-day and weekly plan completion

Example MCP client configuration:
  {"mcpServers":{"fitwatch":{"command":"fitwatch","args":["mcp"]}}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("mcp: %w", err)
	}
	return mcp.NewServer(cfg, appVersion, logger).ServeStdio(cmd.Context())
}
