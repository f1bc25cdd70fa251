package tradingloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecimalPlaces(t *testing.T) {
	assert.Equal(t, 2, decimalPlaces(0.01))
	assert.Equal(t, 0, decimalPlaces(1))
	assert.Equal(t, 4, decimalPlaces(0.0001))
}

func TestRoundDownToStepTruncatesNotRounds(t *testing.T) {
	assert.Equal(t, 1.23, roundDownToStep(1.239, 0.01))
	assert.Equal(t, 100.0, roundDownToStep(100.999, 1))
}

func TestRoundToStepRoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 1.24, roundToStep(1.239, 0.01))
	assert.Equal(t, 1.23, roundToStep(1.234, 0.01))
	assert.Equal(t, 101.0, roundToStep(100.999, 1))
}
