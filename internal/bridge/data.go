package bridge

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/souravmenon1999/injective-bridge/internal/types"
)

// parseOrderRequest extracts the place_order fields from the open data
// mapping, defaulting what is absent rather than rejecting partial input.
// The market is left empty here; the client falls back to the configured
// default pair.
func parseOrderRequest(data map[string]any) (types.OrderRequest, error) {
	rawSide, err := stringField(data, "side", "BUY")
	if err != nil {
		return types.OrderRequest{}, err
	}
	side, err := types.ParseSide(rawSide)
	if err != nil {
		return types.OrderRequest{}, err
	}
	rawType, err := stringField(data, "type", "LIMIT")
	if err != nil {
		return types.OrderRequest{}, err
	}
	orderType, err := types.ParseOrderType(rawType)
	if err != nil {
		return types.OrderRequest{}, err
	}
	size, err := decimalField(data, "size")
	if err != nil {
		return types.OrderRequest{}, err
	}
	price, err := decimalField(data, "price")
	if err != nil {
		return types.OrderRequest{}, err
	}
	market, err := stringField(data, "market", "")
	if err != nil {
		return types.OrderRequest{}, err
	}
	tif, err := stringField(data, "timeInForce", "GTT")
	if err != nil {
		return types.OrderRequest{}, err
	}
	clientID, err := stringField(data, "clientId", "")
	if err != nil {
		return types.OrderRequest{}, err
	}

	return types.OrderRequest{
		Market:      market,
		Side:        side,
		Type:        orderType,
		Size:        size,
		Price:       price,
		TimeInForce: tif,
		ReduceOnly:  boolField(data, "reduceOnly"),
		PostOnly:    boolField(data, "postOnly"),
		ClientID:    clientID,
	}, nil
}

// parseCancelRequest extracts the cancel_order fields. A missing orderId is
// the one hard requirement and fails before any client call.
func parseCancelRequest(data map[string]any) (types.CancelRequest, error) {
	orderID, err := stringField(data, "orderId", "")
	if err != nil {
		return types.CancelRequest{}, err
	}
	if orderID == "" {
		return types.CancelRequest{}, types.BridgeError{
			Code:    types.ErrInvalidInput,
			Message: "orderId is required",
		}
	}
	market, err := stringField(data, "market", "")
	if err != nil {
		return types.CancelRequest{}, err
	}
	return types.CancelRequest{
		Market:  market,
		OrderID: orderID,
	}, nil
}

// stringField accepts a string or a JSON number; absent or empty falls back.
// Any other type is an input error, so a mistyped field surfaces as such
// instead of masquerading as a missing one.
func stringField(data map[string]any, key, fallback string) (string, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return fallback, nil
	}
	switch s := v.(type) {
	case string:
		if s == "" {
			return fallback, nil
		}
		return s, nil
	case float64:
		// Numeric client ids come through as JSON numbers.
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	default:
		return "", types.BridgeError{
			Code:    types.ErrInvalidInput,
			Message: fmt.Sprintf("invalid %s", key),
		}
	}
}

func boolField(data map[string]any, key string) bool {
	v, _ := data[key].(bool)
	return v
}

// decimalField accepts a JSON number or a numeric string; absent means zero.
func decimalField(data map[string]any, key string) (decimal.Decimal, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return decimal.Zero, nil
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		if n == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero, types.BridgeError{
				Code:    types.ErrInvalidInput,
				Message: fmt.Sprintf("invalid %s: %s", key, n),
				Wrapped: err,
			}
		}
		return d, nil
	default:
		return decimal.Zero, types.BridgeError{
			Code:    types.ErrInvalidInput,
			Message: fmt.Sprintf("invalid %s", key),
		}
	}
}
