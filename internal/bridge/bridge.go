package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/souravmenon1999/injective-bridge/internal/config"
	"github.com/souravmenon1999/injective-bridge/internal/exchange"
	"github.com/souravmenon1999/injective-bridge/internal/types"
)

// errMissingCredential is returned before any connection is attempted when
// neither the request nor the environment carries a mnemonic.
var errMissingCredential = types.BridgeError{
	Code:    types.ErrMissingCredential,
	Message: "mnemonic is required",
}

// Bridge executes one command per process invocation: parse the request,
// connect a client, dispatch to the matching handler. Every failure path
// ends in a Result with success=false; nothing escapes the Run boundary.
type Bridge struct {
	cfg     *config.Config
	connect exchange.Connector
	logger  zerolog.Logger
}

// New wires a bridge to a client connector. Tests substitute the connector
// with a fake.
func New(cfg *config.Config, connect exchange.Connector, logger zerolog.Logger) *Bridge {
	return &Bridge{cfg: cfg, connect: connect, logger: logger}
}

// Run maps one raw request to exactly one Result. The command and its
// payload are validated before any network work, so a malformed request
// never opens a connection.
func (b *Bridge) Run(ctx context.Context, raw []byte) types.Result {
	var req types.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return types.Failure(fmt.Sprintf("invalid request: %v", err))
	}

	if req.Network == "" {
		req.Network = string(types.NetworkTestnet)
	}
	network, err := types.ParseNetwork(req.Network)
	if err != nil {
		return types.Failure(err.Error())
	}

	credential := b.cfg.Credential(req.Mnemonic)
	if credential == "" {
		return types.Failure(errMissingCredential.Error())
	}

	b.logger.Info().
		Str("command", string(req.Command)).
		Str("network", string(network)).
		Msg("executing command")

	var op func(ctx context.Context, client exchange.ExchangeClient) types.Result
	switch req.Command {
	case types.CommandPlaceOrder:
		orderReq, err := parseOrderRequest(req.Data)
		if err != nil {
			return types.Failure(err.Error())
		}
		op = func(ctx context.Context, client exchange.ExchangeClient) types.Result {
			return b.placeOrder(ctx, client, orderReq)
		}
	case types.CommandCancelOrder:
		cancelReq, err := parseCancelRequest(req.Data)
		if err != nil {
			return types.Failure(err.Error())
		}
		op = func(ctx context.Context, client exchange.ExchangeClient) types.Result {
			return b.cancelOrder(ctx, client, cancelReq)
		}
	case types.CommandGetBalance:
		op = b.getBalance
	default:
		return types.Failure(types.BridgeError{
			Code:    types.ErrUnknown,
			Message: fmt.Sprintf("unknown command: %s", req.Command),
		}.Error())
	}

	client, err := b.connect(ctx, b.cfg, network, credential)
	if err != nil {
		return types.Failure(err.Error())
	}
	defer client.Close()

	return op(ctx, client)
}

func (b *Bridge) placeOrder(ctx context.Context, client exchange.ExchangeClient, req types.OrderRequest) types.Result {
	ack, err := client.PlaceOrder(ctx, req)
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Result{
		Success:  true,
		OrderID:  ack.OrderID,
		ClientID: ack.ClientID,
		TxHash:   ack.TxHash,
	}
}

func (b *Bridge) cancelOrder(ctx context.Context, client exchange.ExchangeClient, req types.CancelRequest) types.Result {
	ack, err := client.CancelOrder(ctx, req)
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Result{
		Success: true,
		OrderID: ack.OrderID,
		TxHash:  ack.TxHash,
	}
}

func (b *Bridge) getBalance(ctx context.Context, client exchange.ExchangeClient) types.Result {
	balances, err := client.GetBalances(ctx)
	if err != nil {
		return types.Failure(err.Error())
	}
	if balances == nil {
		balances = map[string]string{}
	}
	return types.Result{Success: true, Balance: balances}
}
