package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if len(r.Content) != 1 {
		t.Fatalf("expected exactly one content item, got %d", len(r.Content))
	}
	tc, ok := r.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", r.Content[0])
	}
	return tc.Text
}

func TestShape_Success(t *testing.T) {
	call := Shape(func(ctx context.Context, args Args) (string, error) {
		return "ok " + args.String("x"), nil
	})

	result := call(context.Background(), Args{"x": "done"})
	if result.IsError {
		t.Fatal("expected success result")
	}
	if got := resultText(t, result); got != "ok done" {
		t.Errorf("expected %q, got %q", "ok done", got)
	}
}

func TestShape_Error(t *testing.T) {
	call := Shape(func(ctx context.Context, args Args) (string, error) {
		return "partial data", errors.New("upstream exploded")
	})

	result := call(context.Background(), nil)
	if !result.IsError {
		t.Fatal("expected error result")
	}
	got := resultText(t, result)
	if got != "Error: upstream exploded" {
		t.Errorf("expected %q, got %q", "Error: upstream exploded", got)
	}
	if strings.Contains(got, "partial data") {
		t.Error("error result must not carry partial success data")
	}
}

func TestShape_RecoversPanic(t *testing.T) {
	call := Shape(func(ctx context.Context, args Args) (string, error) {
		var m map[string]int
		m["boom"] = 1
		return "", nil
	})

	result := call(context.Background(), nil)
	if !result.IsError {
		t.Fatal("expected error result after panic")
	}
	if got := resultText(t, result); !strings.HasPrefix(got, "Error: internal error:") {
		t.Errorf("unexpected text %q", got)
	}
}
