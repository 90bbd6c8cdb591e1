package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/bitcoin-mcp/internal/common"
)

func feesDefinition() Definition {
	return Definition{
		Name:        "get_mempool_fees",
		Description: "Get recommended Bitcoin transaction fees (sat/vB) for high, medium and low priority.",
	}
}

func handleMempoolFees(src Source) HandlerFunc {
	return func(ctx context.Context, _ Args) (string, error) {
		fees, err := src.RecommendedFees(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to fetch mempool fees: %w", err)
		}

		var sb strings.Builder
		sb.WriteString("Current Bitcoin mempool fees (sat/vB):\n")
		fmt.Fprintf(&sb, "High Priority (Next Block): %s sat/vB\n", common.FormatNumber(fees.FastestFee))
		fmt.Fprintf(&sb, "Medium Priority (~30 mins): %s sat/vB\n", common.FormatNumber(fees.HalfHourFee))
		fmt.Fprintf(&sb, "Low Priority (~1 hour): %s sat/vB", common.FormatNumber(fees.HourFee))
		return sb.String(), nil
	}
}
