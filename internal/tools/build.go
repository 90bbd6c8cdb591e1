package tools

import (
	"context"

	"github.com/bobmcallan/bitcoin-mcp/internal/common"
	"github.com/bobmcallan/bitcoin-mcp/internal/upstream"
)

// Source is the upstream data the bitcoin tools proxy to.
// *upstream.Client implements it.
type Source interface {
	PriceQuote(ctx context.Context, currency string) (float64, error)
	BlockHeight(ctx context.Context) (int64, error)
	RecommendedFees(ctx context.Context) (upstream.FeeRecommendation, error)
}

// Build returns a registry holding the echo, price, block height and
// mempool fee tools.
func Build(src Source, logger *common.Logger) (*Registry, error) {
	r := NewRegistry(logger)

	tools := []struct {
		def     Definition
		handler HandlerFunc
	}{
		{echoDefinition(), handleEcho(logger)},
		{priceDefinition(), handleBitcoinPrice(src)},
		{blockHeightDefinition(), handleBlockHeight(src)},
		{feesDefinition(), handleMempoolFees(src)},
	}
	for _, t := range tools {
		if err := r.Register(t.def, t.handler); err != nil {
			return nil, err
		}
	}
	return r, nil
}
