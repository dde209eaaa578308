package api

type pairRequest struct {
	Pair string `json:"pair"`
}

type pairLimitRequest struct {
	Pair  string `json:"pair"`
	Limit *int   `json:"limit,omitempty"`
}

type orderIDRequest struct {
	OrderID string `json:"orderId"`
}

// PlaceLimitOrder places a limit order
func (c *Client) PlaceLimitOrder(req *LimitOrderRequest) (*ExchangeOrder, error) {
	order, err := call[ExchangeOrder](c, pathExchangeLimit, req)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// PlaceMarketOrder places a market order
func (c *Client) PlaceMarketOrder(req *MarketOrderRequest) (*ExchangeOrder, error) {
	order, err := call[ExchangeOrder](c, pathExchangeMarket, req)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder retrieves an order by id
func (c *Client) GetOrder(orderID string) (*ExchangeOrder, error) {
	order, err := call[ExchangeOrder](c, pathExchangeOrder, orderIDRequest{OrderID: orderID})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOpenOrders lists the open orders for a pair
func (c *Client) GetOpenOrders(pair string) ([]ExchangeOrder, error) {
	return callList[ExchangeOrder](c, pathExchangeOrdersOpen, pairRequest{Pair: pair})
}

// GetOrderHistory lists settled orders for a pair, newest first
func (c *Client) GetOrderHistory(pair string, limit int) ([]ExchangeOrder, error) {
	req := pairLimitRequest{Pair: pair}
	if limit > 0 {
		req.Limit = &limit
	}
	return callList[ExchangeOrder](c, pathExchangeOrderHistory, req)
}

// CancelOrder cancels an order. The endpoint reports the outcome through the
// HTTP status alone, so success is read from the status code and the body is
// ignored.
func (c *Client) CancelOrder(orderID string) (bool, error) {
	resp, err := c.doRequest(pathExchangeCancel, orderIDRequest{OrderID: orderID})
	if err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"path":    pathExchangeCancel,
			"orderId": orderID,
		}).Error("nova request failed before a response was obtained")
		return false, err
	}

	if !resp.successful() {
		c.logger.WithFields(map[string]interface{}{
			"path":    pathExchangeCancel,
			"orderId": orderID,
			"code":    resp.StatusCode,
		}).Warn("cancel order rejected")
	}

	return resp.successful(), nil
}

// CancelAllOrders cancels every open order for a pair and reports how many
// were removed.
func (c *Client) CancelAllOrders(pair string) (*CancelCount, error) {
	count, err := call[CancelCount](c, pathExchangeCancelAll, pairRequest{Pair: pair})
	if err != nil {
		return nil, err
	}
	return &count, nil
}

// GetOrderBook retrieves the aggregated order book for a pair
func (c *Client) GetOrderBook(pair string) (*OrderBook, error) {
	book, err := call[OrderBook](c, pathExchangeOrderBook, pairRequest{Pair: pair})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetTicker retrieves 24h market statistics for a pair
func (c *Client) GetTicker(pair string) (*Ticker, error) {
	ticker, err := call[Ticker](c, pathExchangeTicker, pairRequest{Pair: pair})
	if err != nil {
		return nil, err
	}
	return &ticker, nil
}

// GetTickers retrieves 24h market statistics for all pairs
func (c *Client) GetTickers() ([]Ticker, error) {
	return callList[Ticker](c, pathExchangeTickers, nil)
}

// GetRecentTrades lists recent public trades for a pair
func (c *Client) GetRecentTrades(pair string, limit int) ([]Trade, error) {
	req := pairLimitRequest{Pair: pair}
	if limit > 0 {
		req.Limit = &limit
	}
	return callList[Trade](c, pathExchangeTrades, req)
}

// GetPairs lists the tradable pairs
func (c *Client) GetPairs() ([]Pair, error) {
	return callList[Pair](c, pathExchangePairs, nil)
}

// GetCurrencies lists the supported currencies
func (c *Client) GetCurrencies() ([]Currency, error) {
	return callList[Currency](c, pathCurrencies, nil)
}
