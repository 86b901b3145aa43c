package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/breaktime/internal/adapters/mcp"
	"github.com/xvierd/breaktime/internal/logger"
	"github.com/xvierd/breaktime/internal/ports"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server communicates via stdio and forwards every tool call to the running
daemon.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withControl(cmd, func(ctx context.Context, control ports.ControlSurface) error {
			// stdout carries the protocol, so progress goes to the logger only.
			logger.Info(ctx, "Starting MCP server on stdio")

			server := mcp.NewServer(control, Version)
			if err := server.Start(ctx); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		})
	},
}
