package injective

import (
	"context"
	"fmt"
	"strings"

	exchangetypes "github.com/InjectiveLabs/sdk-go/chain/exchange/types"
	chainclient "github.com/InjectiveLabs/sdk-go/client/chain"
	"github.com/InjectiveLabs/sdk-go/client/common"
	exchangeclient "github.com/InjectiveLabs/sdk-go/client/exchange"
	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/souravmenon1999/injective-bridge/internal/config"
	"github.com/souravmenon1999/injective-bridge/internal/exchange"
	"github.com/souravmenon1999/injective-bridge/internal/types"
)

// Client implements exchange.ExchangeClient against the Injective chain and
// indexer.
type Client struct {
	cfg            *config.Config
	logger         zerolog.Logger
	chainClient    chainclient.ChainClient
	exchangeClient exchangeclient.ExchangeClient
	tmClient       *rpchttp.HTTP
	senderAddress  string
	subaccountID   string
}

var _ exchange.ExchangeClient = (*Client)(nil)

// Connect resolves the network profile, derives the signing wallet from the
// credential and builds the chain and indexer clients.
func Connect(ctx context.Context, cfg *config.Config, networkName types.Network, credential string) (exchange.ExchangeClient, error) {
	network := common.LoadNetwork(string(networkName), cfg.Lb)

	tmClient, err := rpchttp.New(network.TmEndpoint, "/websocket")
	if err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Failed to create Tendermint client",
			Wrapped: err,
		}
	}

	w, err := newWallet(credential)
	if err != nil {
		return nil, err
	}

	clientCtx, err := chainclient.NewClientContext(network.ChainId, w.address.String(), w.keyring)
	if err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Failed to create client context",
			Wrapped: err,
		}
	}
	clientCtx = clientCtx.WithNodeURI(network.TmEndpoint).WithClient(tmClient)

	cc, err := chainclient.NewChainClient(clientCtx, network, common.OptionGasPrices(cfg.GasPrices))
	if err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Failed to create chain client",
			Wrapped: err,
		}
	}

	ec, err := exchangeclient.NewExchangeClient(network)
	if err != nil {
		cc.Close()
		return nil, types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Failed to create exchange client",
			Wrapped: err,
		}
	}

	c := &Client{
		cfg:            cfg,
		logger:         zlog.With().Str("exchange", "injective").Logger(),
		chainClient:    cc,
		exchangeClient: ec,
		tmClient:       tmClient,
		senderAddress:  w.address.String(),
		subaccountID:   cc.DefaultSubaccount(w.address).Hex(),
	}

	c.logger.Info().
		Str("network", string(networkName)).
		Str("address", c.senderAddress).
		Str("subaccount_id", c.subaccountID).
		Msg("injective client initialized")
	return c, nil
}

// PlaceOrder signs and broadcasts an order transaction. Market orders go out
// as immediate-execution messages, everything else rests on the book.
func (c *Client) PlaceOrder(ctx context.Context, req types.OrderRequest) (*types.OrderAck, error) {
	market, err := c.resolveMarket(ctx, req.Market)
	if err != nil {
		return nil, err
	}

	order, err := c.buildDerivativeOrder(req, market)
	if err != nil {
		return nil, err
	}

	var msg sdk.Msg
	if types.Classify(req.Type) == types.ClassShortLived {
		msg = &exchangetypes.MsgCreateDerivativeMarketOrder{Sender: c.senderAddress, Order: *order}
	} else {
		msg = &exchangetypes.MsgCreateDerivativeLimitOrder{Sender: c.senderAddress, Order: *order}
	}

	txHash, err := c.broadcast(msg)
	if err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrOrderSubmissionFailed,
			Message: "Failed to broadcast order transaction",
			Wrapped: err,
		}
	}

	c.logger.Info().
		Str("market_id", market.GetMarketId()).
		Str("cid", order.OrderInfo.Cid).
		Str("txhash", txHash).
		Msg("order broadcast completed")

	return &types.OrderAck{
		OrderID:  order.OrderInfo.Cid,
		ClientID: order.OrderInfo.Cid,
		TxHash:   txHash,
	}, nil
}

// CancelOrder broadcasts a cancellation for a resting order. The order
// reference may be a chain-assigned hash or a client order id.
func (c *Client) CancelOrder(ctx context.Context, req types.CancelRequest) (*types.CancelAck, error) {
	market, err := c.resolveMarket(ctx, req.Market)
	if err != nil {
		return nil, err
	}

	msg := &exchangetypes.MsgCancelDerivativeOrder{
		Sender:       c.senderAddress,
		MarketId:     market.GetMarketId(),
		SubaccountId: c.subaccountID,
	}
	if strings.HasPrefix(req.OrderID, "0x") {
		msg.OrderHash = req.OrderID
	} else {
		msg.Cid = req.OrderID
	}

	txHash, err := c.broadcast(msg)
	if err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrCancelFailed,
			Message: "Failed to broadcast cancel transaction",
			Wrapped: err,
		}
	}

	c.logger.Info().
		Str("market_id", market.GetMarketId()).
		Str("order_id", req.OrderID).
		Str("txhash", txHash).
		Msg("cancel broadcast completed")

	return &types.CancelAck{OrderID: req.OrderID, TxHash: txHash}, nil
}

// GetBalances returns the default subaccount's deposits keyed by denom.
func (c *Client) GetBalances(ctx context.Context) (map[string]string, error) {
	res, err := c.exchangeClient.GetAccountPortfolioBalances(ctx, c.senderAddress, true)
	if err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrBalanceQueryFailed,
			Message: "Failed to query account portfolio",
			Wrapped: err,
		}
	}

	balances := make(map[string]string)
	portfolio := res.GetPortfolio()
	if portfolio == nil {
		return balances, nil
	}
	for _, sub := range portfolio.GetSubaccounts() {
		if !strings.EqualFold(sub.GetSubaccountId(), c.subaccountID) {
			continue
		}
		deposit := sub.GetDeposit()
		if deposit == nil {
			continue
		}
		balances[sub.GetDenom()] = deposit.GetAvailableBalance()
	}
	return balances, nil
}

// broadcast submits a signed transaction and waits for the node's sync
// response.
func (c *Client) broadcast(msg sdk.Msg) (string, error) {
	txResp, err := c.chainClient.SyncBroadcastMsg(msg)
	if err != nil {
		return "", err
	}
	if txResp.TxResponse.Code != 0 {
		return "", fmt.Errorf("transaction rejected (code %d): %s", txResp.TxResponse.Code, txResp.TxResponse.RawLog)
	}
	return txResp.TxResponse.TxHash, nil
}

// Close cleans up the chain client connections.
func (c *Client) Close() error {
	c.chainClient.Close()
	return nil
}
