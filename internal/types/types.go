package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// --- Commands and networks ---

type Command string

const (
	CommandPlaceOrder  Command = "place_order"
	CommandCancelOrder Command = "cancel_order"
	CommandGetBalance  Command = "get_balance"
)

type Network string

const (
	NetworkTestnet Network = "testnet"
	NetworkMainnet Network = "mainnet"
)

// ParseNetwork validates the network literal from the request.
func ParseNetwork(s string) (Network, error) {
	switch s {
	case string(NetworkTestnet):
		return NetworkTestnet, nil
	case string(NetworkMainnet):
		return NetworkMainnet, nil
	default:
		return "", BridgeError{
			Code:    ErrConfigLoading,
			Message: fmt.Sprintf("invalid network: %s", s),
		}
	}
}

// --- Request / Result (the stdin/stdout contract) ---

// Request is the single JSON object read from stdin. Mnemonic may be passed
// inline for compatibility; the environment variable takes precedence.
type Request struct {
	Command  Command        `json:"command"`
	Network  string         `json:"network"`
	Mnemonic string         `json:"mnemonic,omitempty"`
	Data     map[string]any `json:"data"`
}

// Result is the single JSON object written to stdout. The process exit code
// is 0 iff Success is true.
type Result struct {
	Success  bool              `json:"success"`
	OrderID  string            `json:"orderId,omitempty"`
	ClientID string            `json:"clientId,omitempty"`
	TxHash   string            `json:"txHash,omitempty"`
	Balance  map[string]string `json:"balance,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// MarshalJSON keeps a non-nil empty balance map in the output. Plain
// omitempty would drop it, but an empty account must report "balance": {}.
func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	if r.Balance == nil {
		return json.Marshal(alias(r))
	}
	return json.Marshal(struct {
		alias
		Balance map[string]string `json:"balance"`
	}{alias(r), r.Balance})
}

// Failure builds a failed Result from an error message.
func Failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

// --- Order enums ---

type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return fmt.Sprintf("UnknownSide(%d)", s)
	}
}

// ParseSide accepts the side literal case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(s) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return Buy, BridgeError{
			Code:    ErrInvalidInput,
			Message: fmt.Sprintf("unsupported order side: %s", s),
		}
	}
}

type OrderType uint8

const (
	Limit OrderType = iota
	Market
)

func (t OrderType) String() string {
	switch t {
	case Limit:
		return "LIMIT"
	case Market:
		return "MARKET"
	default:
		return fmt.Sprintf("UnknownOrderType(%d)", t)
	}
}

// ParseOrderType accepts the order type literal case-insensitively.
func ParseOrderType(s string) (OrderType, error) {
	switch strings.ToUpper(s) {
	case "LIMIT":
		return Limit, nil
	case "MARKET":
		return Market, nil
	default:
		return Limit, BridgeError{
			Code:    ErrInvalidInput,
			Message: fmt.Sprintf("unsupported order type: %s", s),
		}
	}
}

// OrderClass splits orders by lifetime: market orders execute immediately,
// everything else rests on the book.
type OrderClass uint8

const (
	ClassShortLived OrderClass = iota
	ClassResting
)

// Classify maps an order type to its lifetime class.
func Classify(t OrderType) OrderClass {
	if t == Market {
		return ClassShortLived
	}
	return ClassResting
}

// --- Standardized operation payloads ---

// OrderRequest is a validated place_order payload.
type OrderRequest struct {
	Market      string
	Side        Side
	Type        OrderType
	Size        decimal.Decimal
	Price       decimal.Decimal
	TimeInForce string
	ReduceOnly  bool
	PostOnly    bool
	ClientID    string
}

// OrderAck is the exchange's acknowledgement of a placed order.
type OrderAck struct {
	OrderID  string
	ClientID string
	TxHash   string
}

// CancelRequest is a validated cancel_order payload.
type CancelRequest struct {
	Market  string
	OrderID string
}

// CancelAck is the exchange's acknowledgement of a cancellation.
type CancelAck struct {
	OrderID string
	TxHash  string
}

// --- Standardized errors ---

type ErrorCode int

const (
	ErrUnknown ErrorCode = iota
	ErrConfigLoading
	ErrMissingCredential
	ErrInvalidInput
	ErrConnectionFailed
	ErrOrderSubmissionFailed
	ErrCancelFailed
	ErrBalanceQueryFailed
)

// BridgeError standardizes application errors.
type BridgeError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

func (e BridgeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

func (e BridgeError) Unwrap() error {
	return e.Wrapped
}
