package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/novahq/nova-go/internal/config"
	"github.com/novahq/nova-go/internal/monitor"
)

// Method paths. Each is part of the signed message, so they are fixed
// constants rather than built strings.
const (
	pathAccountInfo     = "/v1/users/info"
	pathBalance         = "/v1/users/balance"
	pathBalances        = "/v1/users/balances"
	pathFees            = "/v1/users/fees"
	pathAddresses       = "/v1/users/addresses"
	pathAddressNew      = "/v1/users/addresses/new"
	pathAddressValidate = "/v1/users/addresses/validate"

	pathWithdraw       = "/v1/withdraw"
	pathWithdrawFee    = "/v1/withdraw/fee"
	pathWithdrawals    = "/v1/withdrawals"
	pathWithdrawalGet  = "/v1/withdrawals/get"
	pathDeposits       = "/v1/deposits"
	pathDepositGet     = "/v1/deposits/get"
	pathTransfer       = "/v1/transfer"
	pathTransfers      = "/v1/transfers"
	pathTransactionGet = "/v1/transactions/get"
	pathTransactions   = "/v1/transactions"

	pathExchangeLimit        = "/v1/exchange/limit"
	pathExchangeMarket       = "/v1/exchange/market"
	pathExchangeOrder        = "/v1/exchange/order"
	pathExchangeOrdersOpen   = "/v1/exchange/orders/open"
	pathExchangeOrderHistory = "/v1/exchange/orders/history"
	pathExchangeCancel       = "/v1/exchange/cancel"
	pathExchangeCancelAll    = "/v1/exchange/cancel-all"
	pathExchangeOrderBook    = "/v1/exchange/orderbook"
	pathExchangeTicker       = "/v1/exchange/ticker"
	pathExchangeTickers      = "/v1/exchange/tickers"
	pathExchangeTrades       = "/v1/exchange/trades"
	pathExchangePairs        = "/v1/exchange/pairs"
	pathCurrencies           = "/v1/currencies"
)

// Client is a signed REST client for the Nova API. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	apiKey     string
	apiSecret  []byte
	baseURL    string
	httpClient *http.Client
	logger     *monitor.Logger
}

// New creates a Nova API client from configuration. The credentials are
// validated here, so a Client that exists is always usable; there is no
// "not initialized" state to check at call sites.
func New(cfg *config.Config, logger *monitor.Logger) (*Client, error) {
	if cfg.Nova.APIPath == "" {
		return nil, fmt.Errorf("nova api path is required")
	}
	if cfg.Nova.APIKey == "" {
		return nil, fmt.Errorf("nova api key is required")
	}
	if cfg.Nova.APISecret == "" {
		return nil, fmt.Errorf("nova api secret is required")
	}

	return &Client{
		apiKey:    cfg.Nova.APIKey,
		apiSecret: []byte(cfg.Nova.APISecret),
		baseURL:   cfg.Nova.APIPath,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// doRequest serializes the payload, signs it and performs one blocking POST.
// Every Nova endpoint takes a signed POST with a JSON body; operations
// without parameters send "{}" so the signed message stays well defined.
func (c *Client) doRequest(path string, payload interface{}) (*response, error) {
	body := "{}"
	if payload != nil {
		bodyBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = string(bodyBytes)
	}

	nonce, signature := c.sign(path, body)

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewBufferString(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "nova-go/1.0")
	req.Header.Set("API-Key", c.apiKey)
	req.Header.Set("API-Nonce", strconv.FormatInt(nonce, 10))
	req.Header.Set("API-Sign", signature)

	if c.logger.IsLevelEnabled(logrus.DebugLevel) {
		c.logger.Debug(DebugRequest(req))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if c.logger.IsLevelEnabled(logrus.DebugLevel) {
		if dump, err := DebugResponse(resp); err == nil {
			c.logger.Debug(dump)
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		// The status line is all we have when the body cannot be read.
		return &response{StatusCode: resp.StatusCode, Message: err.Error()}, nil
	}

	return &response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// call runs the common dispatch template: sign, POST, unfold. A transport
// failure is returned directly without unfolding, since there is no response
// to unfold; a remote or decode failure comes back as *ApiError. Both are
// logged here so callers only have to handle the error value.
func call[T any](c *Client, path string, payload interface{}) (T, error) {
	var zero T

	resp, err := c.doRequest(path, payload)
	if err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"path": path,
		}).Error("nova request failed before a response was obtained")
		return zero, err
	}

	result := unfold[T](resp)
	if !result.OK() {
		c.logger.WithFields(map[string]interface{}{
			"path":    path,
			"code":    result.Err().Code,
			"message": result.Err().Message,
		}).Error("nova request rejected")
		return zero, result.Err()
	}

	return result.Value(), nil
}

// callList is the collection variant of call: the body is decoded as a raw
// list first, then each element is cast into T, skipping and logging the
// ones that do not fit.
func callList[T any](c *Client, path string, payload interface{}) ([]T, error) {
	raw, err := call[[]json.RawMessage](c, path, payload)
	if err != nil {
		return nil, err
	}
	return castEach[T](c.logger, raw), nil
}
