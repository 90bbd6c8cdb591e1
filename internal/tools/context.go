package tools

import (
	"context"

	"github.com/bobmcallan/bitcoin-mcp/internal/common"
)

// loggerContextKey is the context key for the per-call logger.
type loggerContextKey struct{}

// withLogger returns a new context carrying the call's correlated logger.
func withLogger(ctx context.Context, l *common.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, l)
}

// loggerFrom extracts the per-call logger, or fallback if none is attached.
func loggerFrom(ctx context.Context, fallback *common.Logger) *common.Logger {
	if l, ok := ctx.Value(loggerContextKey{}).(*common.Logger); ok && l != nil {
		return l
	}
	return fallback
}
