package exchange

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignCanonicalOrder(t *testing.T) {
	params := map[string]string{
		"symbol":    "ADA-USDT",
		"timestamp": "1700000000000",
		"type":      "MARKET",
	}

	canonical, sig := Sign("supersecret", params)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	assert.Equal(t, strings.Join(parts, "&"), canonical)
	assert.NotEmpty(t, sig)
	assert.Len(t, sig, 64) // hex-encoded SHA256
}

func TestSignIsOrderIndependentOfInsertion(t *testing.T) {
	a := map[string]string{"b": "2", "a": "1", "c": "3"}
	b := map[string]string{"c": "3", "a": "1", "b": "2"}

	_, sigA := Sign("secret", a)
	_, sigB := Sign("secret", b)
	assert.Equal(t, sigA, sigB)
}

func TestSignIsDeterministic(t *testing.T) {
	params := map[string]string{"symbol": "BTC-USDT", "timestamp": "1"}
	_, sig1 := Sign("k", params)
	_, sig2 := Sign("k", params)
	assert.Equal(t, sig1, sig2)
}
