package api

import (
	"github.com/shopspring/decimal"
)

// AccountInfo represents the authenticated user's account summary
type AccountInfo struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Verified  bool   `json:"verified"`
	CreatedAt int64  `json:"createdAt"`
}

// Balance represents a single-currency balance
// Response format from /v1/users/balance:
//
//	{
//	  "currency": "BTC",
//	  "available": "0.41270000",
//	  "reserved": "0.01000000",
//	  "total": "0.42270000"
//	}
type Balance struct {
	Currency  string          `json:"currency"`
	Available decimal.Decimal `json:"available"`
	Reserved  decimal.Decimal `json:"reserved"`
	Total     decimal.Decimal `json:"total"`
}

// StaticAddress represents a reusable deposit address
type StaticAddress struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
	Address  string `json:"address"`
	Memo     string `json:"memo,omitempty"`
	Label    string `json:"label,omitempty"`
}

// TransactionType classifies ledger transactions
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
)

// Transaction represents a ledger transaction (deposit, withdrawal or
// internal transfer)
type Transaction struct {
	ID        string          `json:"id"`
	Type      TransactionType `json:"type"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
	Address   string          `json:"address,omitempty"`
	TxHash    string          `json:"txHash,omitempty"`
	Status    string          `json:"status"`
	CreatedAt int64           `json:"createdAt"`
}

// TransactionID is returned by operations that enqueue a transaction
type TransactionID struct {
	ID string `json:"id"`
}

// TransactionFilter narrows list queries. Absent fields are omitted from the
// serialized payload rather than sent as empty strings.
type TransactionFilter struct {
	Currency *string `json:"currency,omitempty"`
	Status   *string `json:"status,omitempty"`
	Since    *int64  `json:"since,omitempty"`
	Limit    *int    `json:"limit,omitempty"`
	Offset   *int    `json:"offset,omitempty"`
}

// WithdrawRequest represents a request to withdraw funds to an external
// blockchain address
type WithdrawRequest struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
	Address  string          `json:"address"`
	Memo     *string         `json:"memo,omitempty"`
}

// WithdrawFee represents the fee quote for a prospective withdrawal
type WithdrawFee struct {
	Currency string          `json:"currency"`
	Fee      decimal.Decimal `json:"fee"`
	Minimum  decimal.Decimal `json:"minimum"`
}

// TransferRequest represents an internal transfer to another Nova user
type TransferRequest struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
	ToUser   string          `json:"toUser"`
	Note     *string         `json:"note,omitempty"`
}

// FeeSchedule represents the account's current trading fee tier
type FeeSchedule struct {
	MakerFee decimal.Decimal `json:"makerFee"`
	TakerFee decimal.Decimal `json:"takerFee"`
	Volume30 decimal.Decimal `json:"volume30d"`
}

// OrderSide represents order side (buy or sell)
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// OrderType represents order type
type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
)

// LimitOrderRequest represents a request to place a limit order
type LimitOrderRequest struct {
	Pair   string          `json:"pair"`
	Side   OrderSide       `json:"side"`
	Amount decimal.Decimal `json:"amount"`
	Price  decimal.Decimal `json:"price"`
}

// MarketOrderRequest represents a request to place a market order
type MarketOrderRequest struct {
	Pair   string          `json:"pair"`
	Side   OrderSide       `json:"side"`
	Amount decimal.Decimal `json:"amount"`
}

// ExchangeOrder represents an exchange order
type ExchangeOrder struct {
	OrderID   string          `json:"orderId"`
	Pair      string          `json:"pair"`
	Side      OrderSide       `json:"side"`
	OrderType OrderType       `json:"orderType"`
	Amount    decimal.Decimal `json:"amount"`
	Filled    decimal.Decimal `json:"filled"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
	CreatedAt int64           `json:"createdAt"`
}

// CancelCount reports how many orders a bulk cancel removed
type CancelCount struct {
	Cancelled int `json:"cancelled"`
}

// PriceLevel is one side level of the order book
type PriceLevel struct {
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
}

// OrderBook represents the aggregated order book for a pair
type OrderBook struct {
	Pair string       `json:"pair"`
	Bids []PriceLevel `json:"bids"`
	Asks []PriceLevel `json:"asks"`
}

// Ticker represents 24h market statistics for a pair
type Ticker struct {
	Pair      string          `json:"pair"`
	LastPrice decimal.Decimal `json:"lastPrice"`
	High24h   decimal.Decimal `json:"high24h"`
	Low24h    decimal.Decimal `json:"low24h"`
	Volume24h decimal.Decimal `json:"volume24h"`
}

// Trade represents a public trade
type Trade struct {
	TradeID   string          `json:"tradeId"`
	Pair      string          `json:"pair"`
	Side      OrderSide       `json:"side"`
	Amount    decimal.Decimal `json:"amount"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt int64           `json:"createdAt"`
}

// Pair represents a tradable currency pair
type Pair struct {
	Name      string          `json:"name"`
	Base      string          `json:"base"`
	Quote     string          `json:"quote"`
	MinAmount decimal.Decimal `json:"minAmount"`
	Precision int             `json:"precision"`
}

// Currency represents a supported currency and its funding limits
type Currency struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	CanDeposit    bool            `json:"canDeposit"`
	CanWithdraw   bool            `json:"canWithdraw"`
	MinWithdrawal decimal.Decimal `json:"minWithdrawal"`
}
