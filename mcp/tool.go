// Package mcp exposes the relay over MCP (Model Context Protocol).
//
// MCP clients such as desktop assistants can call three tools:
//
//   - ask: send a prompt to one model alias, optionally inside a conversation
//   - compare: send a prompt to several models in parallel
//   - list_models: list the accepted model aliases per provider
//
// Serve over stdio (for subprocess-based MCP clients):
//
//	if err := mcp.ServeStdio(r, o); err != nil {
//	    log.Fatal(err)
//	}
package mcp

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	ai "github.com/spetersoncode/relay"
	"github.com/spetersoncode/relay/compare"
	"github.com/spetersoncode/relay/router"
)

// Asker answers a single prompt. *router.Router satisfies it.
type Asker interface {
	Ask(ctx context.Context, alias, prompt, conversationID string) (*ai.Response, error)
}

const defaultAlias = "openai"

func askTool() mcp.Tool {
	return mcp.NewTool("ask",
		mcp.WithDescription("Send a prompt to one model and return its answer. Conversation history is included when conversation_id is set."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("The prompt to send")),
		mcp.WithString("model", mcp.Description("Model alias such as openai, claude, gemini or gpt-4o (default openai)")),
		mcp.WithString("conversation_id", mcp.Description("Conversation to continue")),
	)
}

func compareTool() mcp.Tool {
	return mcp.NewTool("compare",
		mcp.WithDescription("Send the same prompt to several models in parallel and return every answer as JSON."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("The prompt to send")),
		mcp.WithArray("models", mcp.Required(),
			mcp.Description("Model ids, for example gpt-4.1 and claude-3-5-sonnet-latest"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("conversation_id", mcp.Description("Conversation to continue; a new one is created when empty")),
	)
}

func listModelsTool() mcp.Tool {
	return mcp.NewTool("list_models",
		mcp.WithDescription("List the model aliases accepted by ask, grouped by provider."),
	)
}

func askHandler(asker Asker) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		alias := req.GetString("model", defaultAlias)
		prompt := req.GetString("prompt", "")
		conversationID := req.GetString("conversation_id", "")

		resp, err := asker.Ask(ctx, alias, prompt, conversationID)
		if err != nil {
			p, _, _ := router.Resolve(alias)
			return mcp.NewToolResultError(ai.UserMessageOf(err, p)), nil
		}
		return mcp.NewToolResultText(resp.Content), nil
	}
}

func compareHandler(comparer compare.Comparer) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := comparer.Compare(ctx, compare.Request{
			Prompt:         req.GetString("prompt", ""),
			Models:         req.GetStringSlice("models", nil),
			ConversationID: req.GetString("conversation_id", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(ai.UserMessageOf(err, "")), nil
		}

		data, err := json.Marshal(res)
		if err != nil {
			return mcp.NewToolResultError("failed to encode comparison: " + err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

func listModelsHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, p := range ai.Providers {
		aliases := router.Aliases(p)
		sort.Strings(aliases)
		b.WriteString(p.DisplayName())
		b.WriteString(": ")
		b.WriteString(strings.Join(aliases, ", "))
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ResultText joins the text content of a tool result.
func ResultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	var parts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			parts = append(parts, content.Text)
		case *mcp.TextContent:
			parts = append(parts, content.Text)
		}
	}
	return strings.Join(parts, "\n")
}
