// Package wsfeed holds the two exchange WebSocket subscribers (per-symbol
// last-price ticker, process-global account updates) and the listen-key
// lifecycle task that keeps the private stream authorized.
//
// Grounded on the teacher's gorilla/websocket import (present in go.mod but
// never called anywhere in Nofx's own tree) and on the reconnect-loop shape
// of grid-trading-btc-binance's internal/service/stream.go from the example
// pack: dial, read loop, log-and-return on error, an outer caller that
// reconnects after a backoff. The teacher itself never exercises this
// dependency, so the reconnect idiom is adapted from that sibling example
// rather than copied from Nofx (see DESIGN.md).
package wsfeed

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"bingxgrid/logger"
	"bingxgrid/store"
)

// reconnectDelay is a var rather than a const so tests can shrink it with
// gomonkey instead of waiting out the real 5s backoff.
var reconnectDelay = 5 * time.Second

// priceFrame is the subset of the last-price push payload the engine needs.
type priceFrame struct {
	Data struct {
		Close string `json:"c"`
	} `json:"data"`
}

// subscribeMsg is the exchange's generic topic subscription envelope.
type subscribeMsg struct {
	ID      string `json:"id"`
	ReqType string `json:"reqType"`
	DataType string `json:"dataType"`
}

// RunPriceStream subscribes to "{symbol}-USDT@lastPrice" and feeds ticks
// into prices until ctx is cancelled. stagger delays the first connection
// attempt (bootstrap rate-limit avoidance, SPEC_FULL.md §4.4).
func RunPriceStream(ctx context.Context, wsURL, symbol string, stagger time.Duration, prices *store.PriceStore) {
	log := logger.ForSymbol(symbol)

	select {
	case <-ctx.Done():
		return
	case <-time.After(stagger):
	}

	topic := symbol + "-USDT@lastPrice"
	for {
		if ctx.Err() != nil {
			return
		}
		if err := runPriceOnce(ctx, wsURL, topic, symbol, prices); err != nil {
			log.Warnf("price stream error: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func runPriceOnce(ctx context.Context, wsURL, topic, symbol string, prices *store.PriceStore) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	sub := subscribeMsg{ID: "1", ReqType: "sub", DataType: topic}
	if err := conn.WriteJSON(sub); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		payload, err := decompress(raw)
		if err != nil {
			logger.ForSymbol(symbol).Warnf("price frame decompress: %v", err)
			continue
		}
		if string(payload) == "Ping" {
			continue
		}

		var frame priceFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			logger.ForSymbol(symbol).Warnf("price frame decode: %v", err)
			continue
		}
		if frame.Data.Close == "" {
			continue
		}
		price, err := strconv.ParseFloat(frame.Data.Close, 64)
		if err != nil {
			continue
		}
		prices.Update(symbol, time.Now().UnixMilli(), price)
	}
}

// decompress handles gzip-framed payloads, passing already-plain frames
// (e.g. the keepalive "Ping" text) straight through.
func decompress(raw []byte) ([]byte, error) {
	if len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b {
		r, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	}
	return raw, nil
}

// wsURLWithListenKey appends a listenKey query parameter, used by the
// account stream.
func wsURLWithListenKey(base, listenKey string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("listenKey", listenKey)
	u.RawQuery = q.Encode()
	return u.String()
}
