package tools

import (
	"context"
	"fmt"

	"github.com/bobmcallan/bitcoin-mcp/internal/common"
)

func blockHeightDefinition() Definition {
	return Definition{
		Name:        "get_block_height",
		Description: "Get the current Bitcoin block height.",
	}
}

func handleBlockHeight(src Source) HandlerFunc {
	return func(ctx context.Context, _ Args) (string, error) {
		height, err := src.BlockHeight(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to fetch block height: %w", err)
		}
		return "Current Bitcoin block height: " + common.FormatInt(height), nil
	}
}
