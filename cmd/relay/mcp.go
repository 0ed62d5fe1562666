package main

import (
	"github.com/spf13/cobra"

	"github.com/spetersoncode/relay/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the ask and compare tools over MCP stdio",
	Long: `Run an MCP server on stdin/stdout exposing the ask, compare and
list_models tools. Logs go to stderr.

Example client configuration:

  {
    "mcpServers": {
      "relay": { "command": "relay", "args": ["mcp"] }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return mcp.ServeStdio(a.router, a.comparer,
			mcp.WithName("relay"),
			mcp.WithVersion(version),
			mcp.WithLogger(a.logger),
		)
	},
}
