package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// logged records each call to a tool handler.
func logged(log *slog.Logger, tool string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := next(ctx, req)
		isError := err != nil || (result != nil && result.IsError)
		log.Info("tool call", "tool", tool, "error", isError, "duration", time.Since(start))
		return result, err
	}
}
