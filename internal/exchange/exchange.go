package exchange

import (
	"context"

	"github.com/souravmenon1999/injective-bridge/internal/config"
	"github.com/souravmenon1999/injective-bridge/internal/types"
)

// ExchangeClient is the capability boundary between the bridge and the
// chain SDK. Everything cryptographic (key derivation, transaction signing,
// node transport) lives behind it, so the bridge stays testable against a
// substitute implementation.
type ExchangeClient interface {
	// PlaceOrder signs and submits an order, returning the exchange's
	// acknowledgement.
	PlaceOrder(ctx context.Context, req types.OrderRequest) (*types.OrderAck, error)

	// CancelOrder cancels a resting order by order hash or client order id.
	CancelOrder(ctx context.Context, req types.CancelRequest) (*types.CancelAck, error)

	// GetBalances returns the default subaccount's balances keyed by asset.
	GetBalances(ctx context.Context) (map[string]string, error)

	// Close cleans up connections.
	Close() error
}

// Connector constructs a client bound to a network profile and credential.
// Construction doubles as the capability probe: a failure here is reported
// as a connect error, never a crash.
type Connector func(ctx context.Context, cfg *config.Config, network types.Network, credential string) (ExchangeClient, error)
