package tools

import (
	"context"

	"github.com/bobmcallan/bitcoin-mcp/internal/common"
)

func echoDefinition() Definition {
	return Definition{
		Name:        "echo",
		Description: "Echoes back the provided text",
		Schema: Schema{
			{Name: "text", Type: TypeString, Required: true, Description: "Text to echo back"},
		},
	}
}

func handleEcho(logger *common.Logger) HandlerFunc {
	return func(ctx context.Context, args Args) (string, error) {
		text := args.String("text")
		loggerFrom(ctx, logger).Info().Str("text", text).Msg("Processing echo request")
		return text, nil
	}
}
