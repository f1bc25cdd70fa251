// Package tradingloop is the per-symbol buy/sell decision loop: it reads
// price and ledger state, places signed market orders through the exchange
// client when the indicator gate and grid conditions are met, and mirrors
// every ledger mutation to the database before updating in-memory state.
//
// Grounded on original_source/bingx_api/bingx_command.py's start_trading
// loop (full-sell-first-then-partial-sell-elif ordering, reversed-scan
// partial-sell with rollback-and-continue on rejection) and on the
// teacher's auto_trader.go 1Hz poll-loop shape, generalized from
// multi-exchange position tracking to this symbol's order ledger.
package tradingloop

import (
	"context"
	"fmt"
	"time"

	"bingxgrid/config"
	"bingxgrid/exchange"
	"bingxgrid/ledger"
	"bingxgrid/logger"
	"bingxgrid/persistence"
	"bingxgrid/store"
)

const tickInterval = time.Second
const pauseAfterSellDelay = 5 * time.Second

// Engine runs the trading decision loop for every tracked symbol.
type Engine struct {
	client *exchange.Client
	prices *store.PriceStore
	acct   *store.AccountStore
	ledger *ledger.Ledger
	mirror *persistence.Mirror
	cfg    *config.Config

	// ready reports whether the indicator engine has fired init_rsi for a
	// symbol; the loop blocks until it has.
	ready func(symbol string) bool
}

func NewEngine(client *exchange.Client, prices *store.PriceStore, acct *store.AccountStore, led *ledger.Ledger, mirror *persistence.Mirror, cfg *config.Config, ready func(string) bool) *Engine {
	return &Engine{client: client, prices: prices, acct: acct, ledger: led, mirror: mirror, cfg: cfg, ready: ready}
}

// Run waits for the indicator's init_rsi latch, then loops at ~1Hz until ctx
// is cancelled.
func (e *Engine) Run(ctx context.Context, symbol string) {
	for !e.ready(symbol) {
		select {
		case <-ctx.Done():
			return
		case <-time.After(300 * time.Millisecond):
		}
	}

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.tick(ctx, symbol)
		}
	}
}

// ManualBuy lets the operator console force an immediate buy outside the
// normal grid-size gate, using the current price and lot.
func (e *Engine) ManualBuy(ctx context.Context, symbol string) (string, error) {
	tick, ok := e.prices.Get(symbol)
	if !ok {
		return "", fmt.Errorf("no price yet for %s", symbol)
	}
	return e.buy(ctx, symbol, tick.Price)
}

// ManualFullSell lets the operator console force a full-ledger sell
// regardless of profit_to_target.
func (e *Engine) ManualFullSell(ctx context.Context, symbol string) (string, error) {
	tick, ok := e.prices.Get(symbol)
	if !ok {
		return "", fmt.Errorf("no price yet for %s", symbol)
	}
	return e.fullSell(ctx, symbol, tick.Price)
}

// ManualPartialSell lets the operator console force the partial-sell scan
// regardless of the trigger/price-vs-last gate.
func (e *Engine) ManualPartialSell(ctx context.Context, symbol string) (string, error) {
	tick, ok := e.prices.Get(symbol)
	if !ok {
		return "", fmt.Errorf("no price yet for %s", symbol)
	}
	report, sold, err := e.partialSell(ctx, symbol, tick.Price)
	if err != nil {
		return "", err
	}
	if !sold {
		return "no orders cleared the partial-sell threshold", nil
	}
	return report, nil
}

func (e *Engine) tick(ctx context.Context, symbol string) {
	log := logger.ForSymbol(symbol)

	tick, ok := e.prices.Get(symbol)
	if !ok {
		return
	}
	price := tick.Price

	if e.ledger.GetState(symbol) != ledger.StateTrack {
		return
	}

	orders := e.ledger.GetOrders(symbol)
	soldFull := false
	if len(orders) > 0 {
		profitToTarget := e.ledger.ProfitToTarget(symbol, price)
		if profitToTarget > 0 {
			if report, err := e.fullSell(ctx, symbol, price); err != nil {
				log.Warnf("full sell failed: %v", err)
			} else {
				log.Infof("full sell: %s", report)
			}
			soldFull = true
		}
	}

	if !soldFull {
		last := e.ledger.GetLastOrder(symbol)
		if last != nil && e.ledger.GetTrigger(symbol) == ledger.TriggerSell && price > last.Price {
			if report, sold, err := e.partialSell(ctx, symbol, price); err != nil {
				log.Warnf("partial sell failed: %v", err)
			} else if sold {
				log.Infof("partial sell: %s", report)
			}
		}
	}

	if e.ledger.GetTrigger(symbol) == ledger.TriggerBuy {
		if e.ledger.GetPauseAfterSell(symbol) {
			select {
			case <-ctx.Done():
				return
			case <-time.After(pauseAfterSellDelay):
			}
			e.ledger.SetPauseAfterSell(symbol, false)
			return
		}

		last := e.ledger.GetLastOrder(symbol)
		gridSize := e.ledger.GetGridSize(symbol)
		shouldBuy := last == nil || price < last.Price*(1-gridSize)
		if shouldBuy {
			if report, err := e.buy(ctx, symbol, price); err != nil {
				log.Warnf("buy failed: %v", err)
			} else if report != "" {
				log.Infof("buy: %s", report)
			}
		}
	}
}
