package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerFunc is a tool's body: validated arguments in, result text or an error out.
// Handlers never build protocol envelopes; Shape does that for every tool.
type HandlerFunc func(ctx context.Context, args Args) (string, error)

// ResultFunc is a handler after Shape: it always yields exactly one result.
type ResultFunc func(ctx context.Context, args Args) *mcp.CallToolResult

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent("Error: " + err.Error()),
		},
		IsError: true,
	}
}

// Shape wraps h so that success becomes a single text item and any error,
// including a panic, becomes an IsError result whose text is "Error: <cause>".
func Shape(h HandlerFunc) ResultFunc {
	return func(ctx context.Context, args Args) (result *mcp.CallToolResult) {
		defer func() {
			if r := recover(); r != nil {
				result = errorResult(fmt.Errorf("internal error: %v", r))
			}
		}()

		text, err := h(ctx, args)
		if err != nil {
			return errorResult(err)
		}
		return textResult(text)
	}
}
