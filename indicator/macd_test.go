package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMACDHistogramNilWhenTooShort(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 1
	}
	assert.Nil(t, MACDHistogram(closes))
}

func TestMACDHistogramPositiveOnSustainedUptrend(t *testing.T) {
	// An accelerating rise: on a straight-line ramp the MACD line is constant
	// and the histogram is exactly zero.
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 1 + float64(i)*float64(i)*0.01
	}
	hist := MACDHistogram(closes)
	assert.NotEmpty(t, hist)
	last := hist[len(hist)-1]
	assert.Greater(t, last, 0.0)
}

func TestMACDHistogramFlipsSignAfterTrendReversal(t *testing.T) {
	closes := make([]float64, 0, 160)
	for i := 0; i < 80; i++ {
		closes = append(closes, 1+float64(i)*0.5)
	}
	peak := closes[len(closes)-1]
	for i := 1; i <= 80; i++ {
		closes = append(closes, peak-float64(i)*0.5)
	}

	hist := MACDHistogram(closes)
	assert.NotEmpty(t, hist)

	last := hist[len(hist)-1]
	assert.Less(t, last, 0.0)
}
