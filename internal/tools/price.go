package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bobmcallan/bitcoin-mcp/internal/common"
)

const defaultCurrency = "usd"

func priceDefinition() Definition {
	return Definition{
		Name:        "get_bitcoin_price",
		Description: "Get the current bitcoin price in the given currency (e.g. usd, eur, gbp).",
		Schema: Schema{
			{Name: "currency", Type: TypeString, Default: defaultCurrency, Description: "Currency code to quote in (default: usd)"},
		},
	}
}

func handleBitcoinPrice(src Source) HandlerFunc {
	return func(ctx context.Context, args Args) (string, error) {
		currency := strings.ToLower(strings.TrimSpace(args.String("currency")))
		if currency == "" {
			return "", errors.New("currency must not be empty")
		}

		price, err := src.PriceQuote(ctx, currency)
		if err != nil {
			return "", fmt.Errorf("failed to fetch bitcoin price: %w", err)
		}

		return fmt.Sprintf("Current bitcoin price: %s %s", common.FormatNumber(price), strings.ToUpper(currency)), nil
	}
}
