// Package ledger holds the per-symbol order ledger: the append-only list of
// open buy orders plus the derived aggregates, state tag, and buy/sell gate
// that the trading loop and indicator engine read and mutate.
//
// All access is serialized by one mutex over the symbol map, matching the
// source system's single coarse-grained lock per structure (see SPEC_FULL.md
// §5) — measured contention is trivial because access is per-1-second tick.
package ledger

import "sync"

// Ledger is the process-wide order ledger, one entry per tracked symbol.
type Ledger struct {
	mu   sync.Mutex
	data map[string]*symbolEntry
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{data: make(map[string]*symbolEntry)}
}

func (l *Ledger) entry(symbol string) *symbolEntry {
	e, ok := l.data[symbol]
	if !ok {
		e = &symbolEntry{state: StateStop, bsTrigger: TriggerNew}
		l.data[symbol] = e
	}
	return e
}

// AddSymbol registers a symbol with its immutable step size. Re-adding an
// existing symbol is a no-op for already-populated orders.
func (l *Ledger) AddSymbol(symbol string, stepSize float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entry(symbol)
	e.stepSize = stepSize
}

// DeleteSymbol removes a symbol entirely. Callers must ensure state=stop,
// orders is empty, and profit=0 before calling, per the lifecycle rule in
// SPEC_FULL.md §3.
func (l *Ledger) DeleteSymbol(symbol string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.data, symbol)
}

// Symbols returns a snapshot of all known symbol names.
func (l *Ledger) Symbols() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.data))
	for s := range l.data {
		out = append(out, s)
	}
	return out
}

func (l *Ledger) GetStepSize(symbol string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entry(symbol).stepSize
}

func (l *Ledger) GetState(symbol string) State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entry(symbol).state
}

func (l *Ledger) SetState(symbol string, s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entry(symbol).state = s
}

func (l *Ledger) GetPauseAfterSell(symbol string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entry(symbol).pauseAfterSell
}

func (l *Ledger) SetPauseAfterSell(symbol string, v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entry(symbol).pauseAfterSell = v
}

func (l *Ledger) GetTrigger(symbol string) Trigger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entry(symbol).bsTrigger
}

func (l *Ledger) SetTrigger(symbol string, t Trigger) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entry(symbol).bsTrigger = t
}

func (l *Ledger) GetLot(symbol string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entry(symbol).lot
}

func (l *Ledger) GetGridSize(symbol string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entry(symbol).gridSize
}

// SetLotGrid updates the dynamic lot/grid pair, as mutated by the indicator
// engine's rsi_4h step.
func (l *Ledger) SetLotGrid(symbol string, lot, grid float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entry(symbol)
	e.lot, e.gridSize = lot, grid
}

// UpdateOrder appends a new order to the symbol's ledger.
func (l *Ledger) UpdateOrder(symbol string, o Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entry(symbol)
	e.orders = append(e.orders, o)
}

// GetLastOrder returns the most recently appended order, or nil if empty.
func (l *Ledger) GetLastOrder(symbol string) *Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entry(symbol)
	if len(e.orders) == 0 {
		return nil
	}
	o := e.orders[len(e.orders)-1]
	return &o
}

// GetOrders returns a snapshot copy of the symbol's orders for iteration.
func (l *Ledger) GetOrders(symbol string) []Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entry(symbol)
	out := make([]Order, len(e.orders))
	copy(out, e.orders)
	return out
}

// GetSummaryExecutedQty returns Σ executed_qty, 0 for an empty ledger.
func (l *Ledger) GetSummaryExecutedQty(symbol string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum float64
	for _, o := range l.entry(symbol).orders {
		sum += o.ExecutedQty
	}
	return sum
}

// GetTotalCostWithFee returns Σ cost_with_fee, 0 for an empty ledger.
func (l *Ledger) GetTotalCostWithFee(symbol string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum float64
	for _, o := range l.entry(symbol).orders {
		sum += o.CostWithFee
	}
	return sum
}

// BreakEvenWithFee returns total_cost_with_fee / summary_executed_qty, or 0
// when the ledger is empty.
func (l *Ledger) BreakEvenWithFee(symbol string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entry(symbol)
	var qty, cost float64
	for _, o := range e.orders {
		qty += o.ExecutedQty
		cost += o.CostWithFee
	}
	if qty == 0 {
		return 0
	}
	return cost / qty
}

// ProfitToTarget returns price*summary_executed_qty - total_cost_with_fee*(1+TARGET_PROFIT).
func (l *Ledger) ProfitToTarget(symbol string, price float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entry(symbol)
	var qty, cost float64
	for _, o := range e.orders {
		qty += o.ExecutedQty
		cost += o.CostWithFee
	}
	return price*qty - cost*(1+TargetProfit)
}

// UpdateProfit adds delta to the symbol's running realized profit.
func (l *Ledger) UpdateProfit(symbol string, delta float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entry(symbol).profit += delta
}

func (l *Ledger) GetProfit(symbol string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entry(symbol).profit
}

// DelOrders removes orders whose ID is in ids. When ids is nil, all orders
// for the symbol are cleared (full sell). Matches the per-id-set delete
// described in SPEC_FULL.md §4.3, generalizing the source's trailing-pop
// semantics (see DESIGN.md).
func (l *Ledger) DelOrders(symbol string, ids map[int64]struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entry(symbol)
	if ids == nil {
		e.orders = nil
		return
	}
	kept := e.orders[:0:0]
	for _, o := range e.orders {
		if _, match := ids[o.ID]; !match {
			kept = append(kept, o)
		}
	}
	e.orders = kept
}

// IsEmpty reports whether the symbol currently has no open orders.
func (l *Ledger) IsEmpty(symbol string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entry(symbol).orders) == 0
}
