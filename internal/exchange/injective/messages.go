package injective

import (
	"fmt"

	"cosmossdk.io/math"
	exchangetypes "github.com/InjectiveLabs/sdk-go/chain/exchange/types"
	derivativeExchangePB "github.com/InjectiveLabs/sdk-go/exchange/derivative_exchange_rpc/pb"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/souravmenon1999/injective-bridge/internal/types"
)

// buildDerivativeOrder translates a validated order request into the chain
// order payload, scaling price and margin to the market's quote decimals.
func (c *Client) buildDerivativeOrder(req types.OrderRequest, market *derivativeExchangePB.DerivativeMarketInfo) (*exchangetypes.DerivativeOrder, error) {
	orderType, err := chainOrderType(req.Side, req.PostOnly)
	if err != nil {
		return nil, err
	}

	quoteDecimals := int32(6)
	if meta := market.GetQuoteTokenMeta(); meta != nil {
		quoteDecimals = meta.GetDecimals()
	}

	price, err := toLegacyDec(req.Price.Shift(quoteDecimals))
	if err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrInvalidInput,
			Message: "invalid order price",
			Wrapped: err,
		}
	}
	quantity, err := toLegacyDec(req.Size)
	if err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrInvalidInput,
			Message: "invalid order size",
			Wrapped: err,
		}
	}

	// Reduce-only orders carry zero margin; otherwise the full notional (1x).
	margin := math.LegacyZeroDec()
	if !req.ReduceOnly {
		margin = price.Mul(quantity)
	}

	cid := req.ClientID
	if cid == "" {
		cid = uuid.New().String()
	}

	return &exchangetypes.DerivativeOrder{
		MarketId: market.GetMarketId(),
		OrderInfo: exchangetypes.OrderInfo{
			SubaccountId: c.subaccountID,
			FeeRecipient: c.senderAddress,
			Price:        price,
			Quantity:     quantity,
			Cid:          cid,
		},
		OrderType: orderType,
		Margin:    margin,
	}, nil
}

// chainOrderType maps the side and post-only flag onto the chain's enum.
func chainOrderType(side types.Side, postOnly bool) (exchangetypes.OrderType, error) {
	switch {
	case side == types.Buy && postOnly:
		return exchangetypes.OrderType_BUY_PO, nil
	case side == types.Buy:
		return exchangetypes.OrderType_BUY, nil
	case side == types.Sell && postOnly:
		return exchangetypes.OrderType_SELL_PO, nil
	case side == types.Sell:
		return exchangetypes.OrderType_SELL, nil
	default:
		return exchangetypes.OrderType_UNSPECIFIED, types.BridgeError{
			Code:    types.ErrInvalidInput,
			Message: fmt.Sprintf("unsupported order side: %s", side),
		}
	}
}

func toLegacyDec(d decimal.Decimal) (math.LegacyDec, error) {
	return math.LegacyNewDecFromStr(d.String())
}
