// Package tools holds the MCP tool definitions, their handlers and the
// registry that validates, dispatches and shapes every tool call.
package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/bitcoin-mcp/internal/common"
)

var (
	// ErrDuplicateTool is returned when a tool name is registered twice.
	ErrDuplicateTool = errors.New("tool already registered")
	// ErrRegistrySealed is returned by Register once the registry is mounted.
	ErrRegistrySealed = errors.New("registry is sealed")
)

// UnknownToolError reports a call to a name that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// Definition describes a tool to the calling agent.
type Definition struct {
	Name        string
	Description string
	Schema      Schema
}

// Tool converts the definition to its MCP form for tools/list.
func (d Definition) Tool() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}
	for _, f := range d.Schema {
		opts = append(opts, propertyOption(f))
	}
	return mcp.NewTool(d.Name, opts...)
}

// propertyOption maps a Field to the matching mcp-go property option.
func propertyOption(f Field) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if f.Description != "" {
		opts = append(opts, mcp.Description(f.Description))
	}
	if f.Required {
		opts = append(opts, mcp.Required())
	}

	switch f.Type {
	case TypeNumber:
		if d, ok := f.Default.(float64); ok {
			opts = append(opts, mcp.DefaultNumber(d))
		}
		return mcp.WithNumber(f.Name, opts...)
	case TypeBoolean:
		if d, ok := f.Default.(bool); ok {
			opts = append(opts, mcp.DefaultBool(d))
		}
		return mcp.WithBoolean(f.Name, opts...)
	default:
		if d, ok := f.Default.(string); ok {
			opts = append(opts, mcp.DefaultString(d))
		}
		return mcp.WithString(f.Name, opts...)
	}
}

type entry struct {
	def  Definition
	call ResultFunc
}

// Registry maps tool names to definitions and shaped handlers.
// It is filled once at startup and read-only after Mount.
type Registry struct {
	logger *common.Logger
	tools  map[string]entry
	order  []string
	sealed bool
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *common.Logger) *Registry {
	return &Registry{
		logger: logger,
		tools:  make(map[string]entry),
	}
}

// Register adds a tool. The handler is wrapped with Shape here, so every
// tool shares the same success and error envelope.
func (r *Registry) Register(def Definition, h HandlerFunc) error {
	if r.sealed {
		return fmt.Errorf("register %q: %w", def.Name, ErrRegistrySealed)
	}
	if def.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if h == nil {
		return fmt.Errorf("tool %q has no handler", def.Name)
	}
	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("register %q: %w", def.Name, ErrDuplicateTool)
	}
	if err := def.Schema.check(); err != nil {
		return fmt.Errorf("tool %q has invalid schema: %w", def.Name, err)
	}

	r.tools[def.Name] = entry{def: def, call: Shape(h)}
	r.order = append(r.order, def.Name)
	return nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	e, ok := r.tools[name]
	return e.def, ok
}

// List returns all definitions in registration order.
func (r *Registry) List() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def)
	}
	return defs
}

// Call runs one tool call through lookup, validation, the handler and Shape.
// It always returns a result; unknown names and invalid arguments are
// reported as error results without reaching a handler.
func (r *Registry) Call(ctx context.Context, request mcp.CallToolRequest) *mcp.CallToolResult {
	name := request.Params.Name
	correlationID := common.CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	logger := r.logger.WithCorrelationId(correlationID)

	e, ok := r.tools[name]
	if !ok {
		logger.Warn().Str("tool", name).Msg("unknown tool called")
		return errorResult(&UnknownToolError{Name: name})
	}

	args, err := e.def.Schema.Validate(request.GetArguments())
	if err != nil {
		logger.Warn().Str("tool", name).Str("error", err.Error()).Msg("tool arguments rejected")
		return errorResult(err)
	}

	start := time.Now()
	result := e.call(withLogger(ctx, logger), args)
	logger.Info().
		Str("tool", name).
		Bool("is_error", result.IsError).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("tool call complete")

	return result
}

// Mount adds every registered tool to the MCP server and seals the registry.
func (r *Registry) Mount(s *server.MCPServer) {
	r.sealed = true
	for _, name := range r.order {
		s.AddTool(r.tools[name].def.Tool(), r.toolHandler())
	}
}

// toolHandler adapts Call to mcp-go's handler signature. Tool failures are
// results, never protocol errors.
func (r *Registry) toolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return r.Call(ctx, request), nil
	}
}
