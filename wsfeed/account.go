package wsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"bingxgrid/logger"
	"bingxgrid/store"
)

// accountFrame is the ACCOUNT_UPDATE push payload: event field "e" plus a
// nested balance batch under "a.B".
type accountFrame struct {
	Event string `json:"e"`
	A     struct {
		B []struct {
			Asset         string `json:"a"`
			WalletBalance string `json:"wb"`
		} `json:"B"`
	} `json:"a"`
}

// RunAccountStream waits for the listen key to be populated, subscribes to
// ACCOUNT_UPDATE, and feeds balance batches into acct until ctx is
// cancelled. Reconnects every 5s like the price stream.
func RunAccountStream(ctx context.Context, wsURL string, acct *store.AccountStore) {
	for {
		if ctx.Err() != nil {
			return
		}
		key := acct.GetListenKey()
		if key == "" {
			select {
			case <-ctx.Done():
				return
			case <-time.After(300 * time.Millisecond):
			}
			continue
		}

		if err := runAccountOnce(ctx, wsURL, key, acct); err != nil {
			logger.Warnf("account stream error: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func runAccountOnce(ctx context.Context, wsURL, listenKey string, acct *store.AccountStore) error {
	full := wsURLWithListenKey(wsURL, listenKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, full, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	sub := subscribeMsg{ID: "1", ReqType: "sub", DataType: "ACCOUNT_UPDATE"}
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
			logger.Warnf("account frame decompress: %v", err)
			continue
		}
		if string(payload) == "Ping" {
			continue
		}

		var frame accountFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			logger.Warnf("account frame decode: %v", err)
			continue
		}
		if frame.Event == "" || len(frame.A.B) == 0 {
			continue
		}

		updates := make([]store.BalanceUpdate, 0, len(frame.A.B))
		for _, b := range frame.A.B {
			wb, err := strconv.ParseFloat(b.WalletBalance, 64)
			if err != nil {
				continue
			}
			updates = append(updates, store.BalanceUpdate{Asset: b.Asset, WalletBalance: wb})
		}
		acct.UpdateBalanceBatch(updates)
	}
}
