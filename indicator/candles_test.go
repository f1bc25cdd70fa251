package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRingTruncatesOverlongSeed(t *testing.T) {
	seed := []float64{1, 2, 3, 4, 5}
	r := NewRing(3, seed)
	assert.Equal(t, []float64{3, 4, 5}, r.Values())
}

func TestRingAppendEvictsOldest(t *testing.T) {
	r := NewRing(3, []float64{1, 2, 3})
	r.Append(4)
	assert.Equal(t, []float64{2, 3, 4}, r.Values())
	assert.Equal(t, 3, r.Len())
}

func TestRingOverwriteLastDoesNotGrow(t *testing.T) {
	r := NewRing(3, []float64{1, 2, 3})
	r.OverwriteLast(99)
	assert.Equal(t, []float64{1, 2, 99}, r.Values())
	assert.Equal(t, 3, r.Len())
}

func TestRingOverwriteLastOnEmptyAppends(t *testing.T) {
	r := NewRing(3, nil)
	r.OverwriteLast(7)
	assert.Equal(t, []float64{7}, r.Values())
}
