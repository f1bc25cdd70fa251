package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

const (
	EndpointOrder      = "/openApi/spot/v1/trade/order"
	EndpointSymbols    = "/openApi/spot/v1/common/symbols"
	EndpointKline      = "/openApi/spot/v2/market/kline"
	EndpointListenKey  = "/openApi/user/auth/userDataStream"

	ErrCodeInsufficientFunds = 100202
)

// envelope is the common BingX response wrapper: {code, msg, data}.
type envelope struct {
	Code int64           `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// OrderResult mirrors the fields the trading loop needs from a filled order.
type OrderResult struct {
	Price              float64 `json:"price,string"`
	ExecutedQty        float64 `json:"executedQty,string"`
	OrigQty            float64 `json:"origQty,string"`
	CummulativeQuoteQty float64 `json:"cummulativeQuoteQty,string"`
	TransactTime       int64   `json:"transactTime"`
}

// Kline is one candle close price, the only field the indicator engine
// seeds its ring buffers with.
type Kline struct {
	Close float64
}

// GetCandlestickData fetches limit closes for symbol at the given interval
// (e.g. "1m", "4h").
func (c *Client) GetCandlestickData(ctx context.Context, symbol, interval string, limit int) ([]Kline, string) {
	params := map[string]string{
		"symbol":   symbol + "-USDT",
		"interval": interval,
		"limit":    strconv.Itoa(limit),
	}
	raw, status := c.Request(ctx, "GET", EndpointKline, params)
	if status != "OK" {
		return nil, status
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Sprintf("decode error: %v", err)
	}

	var rows []struct {
		Close float64 `json:"close,string"`
	}
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, fmt.Sprintf("decode klines: %v", err)
	}

	out := make([]Kline, len(rows))
	for i, r := range rows {
		out[i] = Kline{Close: r.Close}
	}
	return out, "OK"
}

// PlaceOrder submits a MARKET order for side ("BUY"/"SELL") and quantity.
func (c *Client) PlaceOrder(ctx context.Context, symbol, side string, quantity float64) (*OrderResult, int64, string) {
	params := map[string]string{
		"symbol":           symbol + "-USDT",
		"type":             "MARKET",
		"side":             side,
		"quantity":         strconv.FormatFloat(quantity, 'f', -1, 64),
		"newClientOrderId": uuid.New().String(),
	}
	raw, status := c.Request(ctx, "POST", EndpointOrder, params)
	if status != "OK" {
		return nil, 0, status
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, 0, fmt.Sprintf("decode error: %v", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, env.Code, fmt.Sprintf("order not filled: code=%d msg=%s", env.Code, env.Msg)
	}

	var result OrderResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, env.Code, fmt.Sprintf("decode order result: %v", err)
	}
	return &result, env.Code, "OK"
}

// GetSymbolInfo fetches the step size for a trading pair.
func (c *Client) GetSymbolInfo(ctx context.Context, symbol string) (stepSize float64, status string) {
	raw, status := c.Request(ctx, "GET", EndpointSymbols, map[string]string{"symbol": symbol + "-USDT"})
	if status != "OK" {
		return 0, status
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return 0, fmt.Sprintf("decode error: %v", err)
	}

	var payload struct {
		Symbols []struct {
			StepSize float64 `json:"stepSize,string"`
		} `json:"symbols"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return 0, fmt.Sprintf("decode symbol info: %v", err)
	}
	if len(payload.Symbols) == 0 {
		return 0, "symbol not found"
	}
	return payload.Symbols[0].StepSize, "OK"
}

// GetListenKey obtains a fresh private-stream listen key.
func (c *Client) GetListenKey(ctx context.Context) (string, string) {
	raw, status := c.Request(ctx, "POST", EndpointListenKey, nil)
	if status != "OK" {
		return "", status
	}
	var payload struct {
		ListenKey string `json:"listenKey"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Sprintf("decode listen key: %v", err)
	}
	return payload.ListenKey, "OK"
}

// RefreshListenKey extends the TTL of an existing listen key via PUT.
func (c *Client) RefreshListenKey(ctx context.Context, listenKey string) string {
	_, status := c.Request(ctx, "PUT", EndpointListenKey, map[string]string{"listenKey": listenKey})
	return status
}
