package wsfeed

import (
	"context"
	"time"

	"bingxgrid/exchange"
	"bingxgrid/logger"
	"bingxgrid/store"
)

const listenKeyRefreshInterval = 1200 * time.Second

// RunListenKeyLifecycle fetches a listen key at start-up and refreshes it
// every 1200s via PUT until ctx is cancelled. A failed initial fetch is
// retried rather than fatal to the process (SPEC_FULL.md §4.4).
func RunListenKeyLifecycle(ctx context.Context, client *exchange.Client, acct *store.AccountStore) {
	for {
		key, status := client.GetListenKey(ctx)
		if status == "OK" {
			acct.SetListenKey(key)
			break
		}
		logger.Errorf("listen key fetch failed: %s", status)
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}

	ticker := time.NewTicker(listenKeyRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			key := acct.GetListenKey()
			if status := client.RefreshListenKey(ctx, key); status != "OK" {
				logger.Errorf("listen key refresh failed: %s", status)
			}
		}
	}
}
