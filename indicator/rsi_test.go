package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRSIAllGainsIsHundred(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	assert.Equal(t, 100.0, RSI(closes, 14))
}

func TestRSINotEnoughDataReturnsZero(t *testing.T) {
	closes := []float64{1, 2, 3}
	assert.Equal(t, 0.0, RSI(closes, 14))
}

func TestRSIMixedSeriesIsBounded(t *testing.T) {
	closes := []float64{
		44, 44.5, 44.1, 44.8, 45.1, 45.0, 44.6, 44.9, 45.3, 45.6,
		45.1, 44.9, 44.6, 44.3, 44.1, 44.5, 44.9, 45.2, 45.0, 44.7,
	}
	rsi := RSI(closes, 14)
	assert.GreaterOrEqual(t, rsi, 0.0)
	assert.LessOrEqual(t, rsi, 100.0)
}
