package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spetersoncode/relay/compare"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
	logger  *slog.Logger
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithLogger sets the logger used for tool call records.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(c *serverConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewServer creates an MCP server exposing the ask, compare and list_models tools.
//
// Example:
//
//	r := router.New(c, s)
//	o := compare.New(c, s)
//	mcpServer := mcp.NewServer(r, o, mcp.WithName("relay"))
//	server.ServeStdio(mcpServer)
func NewServer(asker Asker, comparer compare.Comparer, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "relay",
		version: "1.0.0",
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.logger.With("component", "mcp")

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.AddTool(askTool(), logged(log, "ask", askHandler(asker)))
	s.AddTool(compareTool(), logged(log, "compare", compareHandler(comparer)))
	s.AddTool(listModelsTool(), listModelsHandler)

	return s
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(asker Asker, comparer compare.Comparer, opts ...ServerOption) error {
	s := NewServer(asker, comparer, opts...)
	return server.ServeStdio(s)
}
