package injective

import (
	"context"
	"fmt"
	"strings"

	derivativeExchangePB "github.com/InjectiveLabs/sdk-go/exchange/derivative_exchange_rpc/pb"

	"github.com/souravmenon1999/injective-bridge/internal/types"
)

// marketLookup is the slice of the indexer client market resolution needs.
type marketLookup interface {
	GetDerivativeMarket(ctx context.Context, marketId string) (*derivativeExchangePB.MarketResponse, error)
	GetDerivativeMarkets(ctx context.Context, req *derivativeExchangePB.MarketsRequest) (*derivativeExchangePB.MarketsResponse, error)
}

func (c *Client) resolveMarket(ctx context.Context, market string) (*derivativeExchangePB.DerivativeMarketInfo, error) {
	return resolveMarket(ctx, c.exchangeClient, market, c.cfg.DefaultMarket)
}

// resolveMarket turns the request's market field into indexer market
// metadata. A 0x-prefixed value is used as a market id directly; anything
// else is matched against derivative tickers. An empty value falls back to
// the configured default pair.
func resolveMarket(ctx context.Context, markets marketLookup, market, defaultMarket string) (*derivativeExchangePB.DerivativeMarketInfo, error) {
	if market == "" {
		market = defaultMarket
	}

	if strings.HasPrefix(market, "0x") {
		res, err := markets.GetDerivativeMarket(ctx, market)
		if err != nil {
			return nil, types.BridgeError{
				Code:    types.ErrInvalidInput,
				Message: fmt.Sprintf("unknown market: %s", market),
				Wrapped: err,
			}
		}
		return res.GetMarket(), nil
	}

	res, err := markets.GetDerivativeMarkets(ctx, &derivativeExchangePB.MarketsRequest{})
	if err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Failed to list derivative markets",
			Wrapped: err,
		}
	}
	for _, m := range res.GetMarkets() {
		if strings.EqualFold(m.GetTicker(), market) {
			return m, nil
		}
	}
	return nil, types.BridgeError{
		Code:    types.ErrInvalidInput,
		Message: fmt.Sprintf("unknown market: %s", market),
	}
}
