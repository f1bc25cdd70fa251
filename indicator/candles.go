// Package indicator seeds and maintains the 1-minute and 4-hour close-price
// ring buffers per symbol, folds live ticks into the current candle, and
// recomputes MACD/RSI at candle close to update the ledger's buy/sell gate
// and the lot/grid parameters (SPEC_FULL.md §4.5).
//
// The math is hand-rolled against stdlib math, grounded on the teacher's
// market/data.go calculateEMA/calculateMACD/calculateRSI — the teacher never
// reaches for a third-party technical-analysis library for this concern
// either, so this package doesn't (see DESIGN.md).
package indicator

// Ring is a fixed-capacity close-price buffer. Append evicts the oldest
// element once at capacity; the last element can be overwritten in place to
// fold a live tick into the still-open candle.
type Ring struct {
	data []float64
	cap  int
}

func NewRing(capacity int, seed []float64) *Ring {
	r := &Ring{cap: capacity}
	start := 0
	if len(seed) > capacity {
		start = len(seed) - capacity
	}
	r.data = append(r.data, seed[start:]...)
	return r
}

// OverwriteLast replaces the most recent element, or appends if empty.
func (r *Ring) OverwriteLast(v float64) {
	if len(r.data) == 0 {
		r.data = append(r.data, v)
		return
	}
	r.data[len(r.data)-1] = v
}

// Append adds a new slot, evicting the oldest element if at capacity.
func (r *Ring) Append(v float64) {
	r.data = append(r.data, v)
	if len(r.data) > r.cap {
		r.data = r.data[len(r.data)-r.cap:]
	}
}

// Values returns the current contiguous slice, oldest first.
func (r *Ring) Values() []float64 {
	return r.data
}

func (r *Ring) Len() int { return len(r.data) }
