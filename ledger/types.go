package ledger

import "time"

// State is the lifecycle state of a tracked symbol.
type State string

const (
	StateStop  State = "stop"
	StatePause State = "pause"
	StateTrack State = "track"
)

// Trigger is the buy/sell gate set by the indicator engine.
type Trigger string

const (
	TriggerNew  Trigger = "new"
	TriggerBuy  Trigger = "buy"
	TriggerSell Trigger = "sell"
)

// Order is one open buy-fill in a symbol's ledger. Orders are append-only
// during their lifetime; removal happens only through a completed sell.
type Order struct {
	ID           int64
	Price        float64
	ExecutedQty  float64
	Cost         float64
	CostWithFee  float64
	OpenTime     time.Time
}

// symbolEntry is the mutable per-symbol state guarded by Ledger's mutex.
type symbolEntry struct {
	stepSize       float64
	state          State
	profit         float64
	orders         []Order
	pauseAfterSell bool
	bsTrigger      Trigger
	lot            float64
	gridSize       float64
}
