package tasks

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopWaitsForGoroutineExit(t *testing.T) {
	r := New()
	var running int32

	ctx, spawn := r.Start(context.Background(), "ADA")
	spawn(func(ctx context.Context) {
		atomic.StoreInt32(&running, 1)
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		atomic.StoreInt32(&running, 0)
	})
	_ = ctx

	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt32(&running) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	r.Stop("ADA")
	assert.Equal(t, int32(0), atomic.LoadInt32(&running))
}

func TestStopIsIdempotent(t *testing.T) {
	r := New()
	_, spawn := r.Start(context.Background(), "ADA")
	spawn(func(ctx context.Context) { <-ctx.Done() })

	r.Stop("ADA")
	assert.NotPanics(t, func() { r.Stop("ADA") })
	assert.False(t, r.Running("ADA"))
}

func TestStopOnUnknownSymbolIsNoop(t *testing.T) {
	r := New()
	assert.NotPanics(t, func() { r.Stop("NONEXISTENT") })
}

func TestStopAllStopsEverySymbol(t *testing.T) {
	r := New()
	for _, sym := range []string{"ADA", "BTC", "ETH"} {
		_, spawn := r.Start(context.Background(), sym)
		spawn(func(ctx context.Context) { <-ctx.Done() })
	}

	r.StopAll()
	for _, sym := range []string{"ADA", "BTC", "ETH"} {
		assert.False(t, r.Running(sym))
	}
}
