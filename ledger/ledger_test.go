package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmptyLedgerAggregatesAreZero(t *testing.T) {
	l := New()
	assert.Equal(t, 0.0, l.GetSummaryExecutedQty("ADA"))
	assert.Equal(t, 0.0, l.GetTotalCostWithFee("ADA"))
	assert.Equal(t, 0.0, l.BreakEvenWithFee("ADA"))
	assert.Nil(t, l.GetLastOrder("ADA"))
	assert.True(t, l.IsEmpty("ADA"))
}

func TestAggregatesTrackAppendedOrders(t *testing.T) {
	l := New()
	l.AddSymbol("ADA", 0.1)

	l.UpdateOrder("ADA", Order{ID: 1, Price: 0.5, ExecutedQty: 10, Cost: 5, CostWithFee: 5.02, OpenTime: time.Now()})
	l.UpdateOrder("ADA", Order{ID: 2, Price: 0.4, ExecutedQty: 10, Cost: 4, CostWithFee: 4.016, OpenTime: time.Now()})

	assert.Equal(t, 20.0, l.GetSummaryExecutedQty("ADA"))
	assert.InDelta(t, 9.036, l.GetTotalCostWithFee("ADA"), 1e-9)
	assert.False(t, l.IsEmpty("ADA"))

	last := l.GetLastOrder("ADA")
	assert.NotNil(t, last)
	assert.Equal(t, int64(2), last.ID)
}

func TestDelOrdersByIDSetKeepsTheRest(t *testing.T) {
	l := New()
	l.AddSymbol("ADA", 0.1)
	l.UpdateOrder("ADA", Order{ID: 1, ExecutedQty: 1, CostWithFee: 1})
	l.UpdateOrder("ADA", Order{ID: 2, ExecutedQty: 2, CostWithFee: 2})
	l.UpdateOrder("ADA", Order{ID: 3, ExecutedQty: 3, CostWithFee: 3})

	l.DelOrders("ADA", map[int64]struct{}{2: {}})

	orders := l.GetOrders("ADA")
	assert.Len(t, orders, 2)
	assert.Equal(t, int64(1), orders[0].ID)
	assert.Equal(t, int64(3), orders[1].ID)
}

func TestDelOrdersNilClearsAll(t *testing.T) {
	l := New()
	l.AddSymbol("ADA", 0.1)
	l.UpdateOrder("ADA", Order{ID: 1, ExecutedQty: 1, CostWithFee: 1})
	l.DelOrders("ADA", nil)
	assert.True(t, l.IsEmpty("ADA"))
}

func TestProfitToTargetMatchesFormula(t *testing.T) {
	l := New()
	l.AddSymbol("ADA", 0.1)
	l.UpdateOrder("ADA", Order{ID: 1, ExecutedQty: 10, CostWithFee: 5})

	profit := l.ProfitToTarget("ADA", 1.0)
	assert.InDelta(t, 1.0*10-5*(1+TargetProfit), profit, 1e-9)
}

func TestMainLotForBuckets(t *testing.T) {
	cases := []struct {
		balance float64
		want    float64
	}{
		{0, 10}, {399, 10}, {400, 20}, {899, 20}, {900, 30},
		{5300, 90}, {100000, 90},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MainLotFor(c.balance), "balance=%v", c.balance)
	}
}

func TestLookupRSIBandMonotonic(t *testing.T) {
	lot20, grid20 := LookupRSIBand(20)
	lot50, grid50 := LookupRSIBand(50)
	lot80, grid80 := LookupRSIBand(80)

	assert.Greater(t, lot20, lot50)
	assert.Greater(t, lot50, lot80)
	assert.Greater(t, grid20, grid50)
	_ = grid80
}
