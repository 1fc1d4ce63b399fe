package injective

import (
	"testing"

	"cosmossdk.io/math"
	exchangetypes "github.com/InjectiveLabs/sdk-go/chain/exchange/types"
	derivativeExchangePB "github.com/InjectiveLabs/sdk-go/exchange/derivative_exchange_rpc/pb"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souravmenon1999/injective-bridge/internal/types"
)

func testMarket() *derivativeExchangePB.DerivativeMarketInfo {
	return &derivativeExchangePB.DerivativeMarketInfo{
		MarketId:       "0xmarket",
		Ticker:         "BTC/USDT PERP",
		QuoteTokenMeta: &derivativeExchangePB.TokenMeta{Decimals: 6},
	}
}

func testClient() *Client {
	return &Client{
		senderAddress: "inj1sender",
		subaccountID:  "0xsub",
	}
}

func TestBuildDerivativeOrderScaling(t *testing.T) {
	c := testClient()
	req := types.OrderRequest{
		Side:     types.Buy,
		Type:     types.Limit,
		Size:     decimal.RequireFromString("0.01"),
		Price:    decimal.RequireFromString("25000.5"),
		ClientID: "my-cid",
	}

	order, err := c.buildDerivativeOrder(req, testMarket())
	require.NoError(t, err)

	assert.Equal(t, "0xmarket", order.MarketId)
	assert.Equal(t, "0xsub", order.OrderInfo.SubaccountId)
	assert.Equal(t, "inj1sender", order.OrderInfo.FeeRecipient)
	assert.Equal(t, "my-cid", order.OrderInfo.Cid)
	assert.Equal(t, exchangetypes.OrderType_BUY, order.OrderType)

	// Quote has 6 decimals: 25000.5 -> 25000500000 on chain.
	assert.True(t, order.OrderInfo.Price.Equal(math.LegacyMustNewDecFromStr("25000500000")),
		"got price %s", order.OrderInfo.Price)
	assert.True(t, order.OrderInfo.Quantity.Equal(math.LegacyMustNewDecFromStr("0.01")),
		"got quantity %s", order.OrderInfo.Quantity)
	// 1x margin is the full notional.
	assert.True(t, order.Margin.Equal(math.LegacyMustNewDecFromStr("250005000")),
		"got margin %s", order.Margin)
}

func TestBuildDerivativeOrderReduceOnly(t *testing.T) {
	c := testClient()
	req := types.OrderRequest{
		Side:       types.Sell,
		Type:       types.Limit,
		Size:       decimal.RequireFromString("1"),
		Price:      decimal.RequireFromString("100"),
		ReduceOnly: true,
	}

	order, err := c.buildDerivativeOrder(req, testMarket())
	require.NoError(t, err)

	assert.True(t, order.Margin.IsZero(), "reduce-only orders carry zero margin")
	assert.Equal(t, exchangetypes.OrderType_SELL, order.OrderType)
}

func TestBuildDerivativeOrderGeneratesCid(t *testing.T) {
	c := testClient()
	req := types.OrderRequest{
		Side:  types.Buy,
		Type:  types.Limit,
		Size:  decimal.RequireFromString("1"),
		Price: decimal.RequireFromString("1"),
	}

	order, err := c.buildDerivativeOrder(req, testMarket())
	require.NoError(t, err)

	_, err = uuid.Parse(order.OrderInfo.Cid)
	assert.NoError(t, err, "generated cid must be a uuid, got %q", order.OrderInfo.Cid)
}

func TestChainOrderType(t *testing.T) {
	cases := []struct {
		side     types.Side
		postOnly bool
		want     exchangetypes.OrderType
	}{
		{types.Buy, false, exchangetypes.OrderType_BUY},
		{types.Buy, true, exchangetypes.OrderType_BUY_PO},
		{types.Sell, false, exchangetypes.OrderType_SELL},
		{types.Sell, true, exchangetypes.OrderType_SELL_PO},
	}
	for _, tc := range cases {
		got, err := chainOrderType(tc.side, tc.postOnly)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}
