package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bingxgrid/ledger"
	"bingxgrid/store"
)

func TestDeltaMsOffByOnePreserved(t *testing.T) {
	assert.Equal(t, int64(59_999), deltaMs(1))
	assert.Equal(t, int64(240*60_000-1), deltaMs(240))
}

// TestRSI4hRunsEveryTickNotOnlyOnRollover guards against gating rsi4h (and
// therefore the IsReady latch) behind a 4h candle rollover: a fresh bootstrap
// would then stay un-ready for up to 4h, silently blocking the trading loop.
func TestRSI4hRunsEveryTickNotOnlyOnRollover(t *testing.T) {
	led := ledger.New()
	led.AddSymbol("ADA", 0.0001)

	acct := store.NewAccountStore()
	prices := store.NewPriceStore()

	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 0.5 + float64(i)*0.001
	}

	e := &Engine{
		acct:   acct,
		prices: prices,
		ledger: led,
		states: make(map[string]*symbolState),
	}

	now := time.Now().UnixMilli()
	st := &symbolState{
		oneMin: candleState{ring: NewRing(seedLimit, closes), nextCandleTime: now + deltaMs(oneMinuteMinutes)},
		fourHr: candleState{ring: NewRing(seedLimit, closes), nextCandleTime: now + deltaMs(fourHourMinutes)},
	}
	e.states["ADA"] = st

	prices.Update("ADA", now, 0.52)
	e.tick("ADA", st)

	assert.True(t, e.IsReady("ADA"), "rsi4h must run (and set the ready latch) on a tick even when the 4h window has not rolled over yet")
}
