package indicator

import (
	"context"
	"sync"
	"time"

	"bingxgrid/exchange"
	"bingxgrid/ledger"
	"bingxgrid/logger"
	"bingxgrid/store"
)

const (
	oneMinuteInterval    = "1m"
	fourHourInterval     = "4h"
	seedLimit            = 300
	oneMinuteMinutes     = 1
	fourHourMinutes      = 240
	tickInterval         = time.Second
)

// deltaMs preserves the source system's off-by-one millisecond quirk
// (SPEC_FULL.md §4.5, Open Question 4) rather than rounding it away.
func deltaMs(minutes int) int64 {
	return int64(minutes)*60_000 - 1
}

type candleState struct {
	ring           *Ring
	nextCandleTime int64
}

// symbolState is the per-symbol indicator state guarded by Engine.mu.
type symbolState struct {
	oneMin  candleState
	fourHr  candleState
	ready   bool // init_rsi one-shot latch
	mainLot float64
}

// Engine runs the per-symbol candle/indicator state machine.
type Engine struct {
	client *exchange.Client
	prices *store.PriceStore
	acct   *store.AccountStore
	ledger *ledger.Ledger

	mu     sync.Mutex
	states map[string]*symbolState
}

func NewEngine(client *exchange.Client, prices *store.PriceStore, acct *store.AccountStore, led *ledger.Ledger) *Engine {
	return &Engine{
		client: client,
		prices: prices,
		acct:   acct,
		ledger: led,
		states: make(map[string]*symbolState),
	}
}

// IsReady reports whether the trading loop may start for symbol (init_rsi
// has fired at least once).
func (e *Engine) IsReady(symbol string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.states[symbol]
	return ok && st.ready
}

// Run seeds the candle windows and then loops at ~1Hz until ctx is
// cancelled. It waits for the first price tick before seeding, matching the
// source system's bootstrap order.
func (e *Engine) Run(ctx context.Context, symbol string) {
	log := logger.ForSymbol(symbol)

	for {
		if _, ok := e.prices.Get(symbol); ok {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(300 * time.Millisecond):
		}
	}

	var st *symbolState
	for {
		var err error
		st, err = e.seed(ctx, symbol)
		if err == nil {
			break
		}
		log.Errorf("indicator seed failed, retrying: %v", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}

	e.mu.Lock()
	e.states[symbol] = st
	e.mu.Unlock()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.tick(symbol, st)
		}
	}
}

func (e *Engine) seed(ctx context.Context, symbol string) (*symbolState, error) {
	oneMinKlines, status := e.client.GetCandlestickData(ctx, symbol, oneMinuteInterval, seedLimit)
	if status != "OK" {
		return nil, errStatus(status)
	}
	fourHrKlines, status := e.client.GetCandlestickData(ctx, symbol, fourHourInterval, seedLimit)
	if status != "OK" {
		return nil, errStatus(status)
	}

	now := time.Now().UnixMilli()
	return &symbolState{
		oneMin: candleState{
			ring:           NewRing(seedLimit, closesOf(oneMinKlines)),
			nextCandleTime: now + deltaMs(oneMinuteMinutes),
		},
		fourHr: candleState{
			ring:           NewRing(seedLimit, closesOf(fourHrKlines)),
			nextCandleTime: now + deltaMs(fourHourMinutes),
		},
	}, nil
}

func closesOf(klines []exchange.Kline) []float64 {
	out := make([]float64, len(klines))
	for i, k := range klines {
		out[i] = k.Close
	}
	return out
}

func (e *Engine) tick(symbol string, st *symbolState) {
	tickVal, ok := e.prices.Get(symbol)
	if !ok {
		return
	}
	price := tickVal.Price
	ts := tickVal.TimestampMs

	e.mu.Lock()
	defer e.mu.Unlock()

	if ts >= st.oneMin.nextCandleTime {
		st.oneMin.ring.OverwriteLast(price)
		st.oneMin.ring.Append(price)
		st.oneMin.nextCandleTime += deltaMs(oneMinuteMinutes)
		e.macd1m(symbol, st)
	}

	st.fourHr.ring.OverwriteLast(price)
	if ts >= st.fourHr.nextCandleTime {
		st.fourHr.ring.Append(price)
		st.fourHr.nextCandleTime += deltaMs(fourHourMinutes)
	}

	// rsi4h runs on every tick while the trigger is buy/new, not only on a
	// 4h rollover: the source system runs this check unconditionally too
	// (its own comment flags this as a "runs many times" quirk it never
	// fixed), and gating it on rollover leaves a fresh bootstrap unready
	// for up to 4h since init_rsi would never fire until the first roll.
	trigger := e.ledger.GetTrigger(symbol)
	if trigger == ledger.TriggerBuy || trigger == ledger.TriggerNew {
		e.rsi4h(symbol, st)
	}
}

// macd1m inspects the histogram's last two samples and flips the buy/sell
// gate, matching SPEC_FULL.md §4.5 exactly (no flip on a single sample).
func (e *Engine) macd1m(symbol string, st *symbolState) {
	hist := MACDHistogram(st.oneMin.ring.Values())
	if len(hist) < 2 {
		return
	}
	last, prev := hist[len(hist)-1], hist[len(hist)-2]
	trigger := e.ledger.GetTrigger(symbol)

	switch {
	case prev > 0 && last > 0 && (trigger == ledger.TriggerSell || trigger == ledger.TriggerNew):
		e.ledger.SetTrigger(symbol, ledger.TriggerBuy)
	case prev < 0 && last < 0 && (trigger == ledger.TriggerBuy || trigger == ledger.TriggerNew):
		e.ledger.SetTrigger(symbol, ledger.TriggerSell)
	}
}

// rsi4h recomputes RSI(14), looks up the (lot, grid) multiplier pair for the
// current balance bucket and RSI band, and updates the config store when it
// changes. It sets the init_rsi ready latch on every run, whether or not the
// pair changed.
func (e *Engine) rsi4h(symbol string, st *symbolState) {
	closes := st.fourHr.ring.Values()
	rsi := RSI(closes, 14)

	usdtBalance := e.acct.GetBalance("USDT")
	mainLot := ledger.MainLotFor(usdtBalance)
	lotMult, gridMult := ledger.LookupRSIBand(rsi)

	newLot := mainLot * lotMult
	newGrid := ledger.GridStep * gridMult

	curLot := e.ledger.GetLot(symbol)
	curGrid := e.ledger.GetGridSize(symbol)
	if newLot != curLot || newGrid != curGrid {
		e.ledger.SetLotGrid(symbol, newLot, newGrid)
	}
	st.ready = true
}

type statusError string

func (s statusError) Error() string { return string(s) }

func errStatus(s string) error { return statusError(s) }
