// Package console dispatches the operator's text commands to the core
// engine operations named in SPEC_FULL.md §6. The dispatcher is transport
// agnostic; console/telegram.go wires it to a Telegram bot, grounded on the
// teacher's go-telegram-bot-api import (present in go.mod, never called in
// Nofx's own tree — wired here for real, see DESIGN.md).
package console

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"bingxgrid/config"
	"bingxgrid/exchange"
	"bingxgrid/indicator"
	"bingxgrid/ledger"
	"bingxgrid/persistence"
	"bingxgrid/store"
	"bingxgrid/tasks"
	"bingxgrid/tradingloop"
)

// SymbolBootstrapper starts the three per-symbol tasks (price stream,
// indicator engine, trading loop) for a newly-tracked symbol. main.go
// supplies this so console doesn't need to import the process wiring.
type SymbolBootstrapper func(symbol string)

// Dispatcher routes operator commands to core operations.
type Dispatcher struct {
	ledger  *ledger.Ledger
	prices  *store.PriceStore
	acct    *store.AccountStore
	client  *exchange.Client
	mirror  *persistence.Mirror
	tasks   *tasks.Registry
	ind     *indicator.Engine
	loop    *tradingloop.Engine
	cfg     *config.Config
	bootstrap SymbolBootstrapper
}

func NewDispatcher(
	led *ledger.Ledger,
	prices *store.PriceStore,
	acct *store.AccountStore,
	client *exchange.Client,
	mirror *persistence.Mirror,
	tr *tasks.Registry,
	ind *indicator.Engine,
	loop *tradingloop.Engine,
	cfg *config.Config,
	bootstrap SymbolBootstrapper,
) *Dispatcher {
	return &Dispatcher{
		ledger: led, prices: prices, acct: acct, client: client,
		mirror: mirror, tasks: tr, ind: ind, loop: loop, cfg: cfg,
		bootstrap: bootstrap,
	}
}

var commandPattern = regexp.MustCompile(`^([a-z_]+)_([A-Za-z0-9]+)$`)

// Handle parses one command of the form "<verb>_<SYMBOL>" and returns the
// operator-visible reply text.
func (d *Dispatcher) Handle(ctx context.Context, raw string) string {
	raw = strings.TrimSpace(raw)
	m := commandPattern.FindStringSubmatch(raw)
	if m == nil {
		return fmt.Sprintf("unrecognized command: %q", raw)
	}
	verb, symbol := strings.TrimSuffix(m[1], "_"), strings.ToUpper(m[2])

	switch {
	case raw == "track_"+m[2]:
		return d.track(symbol)
	case raw == "pause_"+m[2]:
		return d.pause(symbol)
	case raw == "stop_"+m[2]:
		return d.stop(symbol)
	case raw == "add_"+m[2]:
		return d.add(ctx, symbol)
	case raw == "del_"+m[2]:
		return d.del(symbol)
	case raw == "b_"+m[2]:
		return d.manualBuy(ctx, symbol)
	case raw == "s_all_"+m[2]:
		return d.manualFullSell(ctx, symbol)
	case raw == "s_"+m[2]:
		return d.manualPartialSell(ctx, symbol)
	case raw == "profit_"+m[2]:
		return d.profit(symbol)
	case raw == "d_all_"+m[2]:
		return d.deleteAllOrders(symbol)
	default:
		return fmt.Sprintf("unknown verb %q for symbol %s", verb, symbol)
	}
}
