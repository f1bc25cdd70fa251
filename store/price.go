// Package store holds the two process-global, mutex-guarded caches the
// stream subscribers feed and the trading/indicator loops read: live prices
// and account balances. Both are simple maps behind one RWMutex, mirroring
// the teacher's in-memory cache idiom (cachedBalance/balanceCacheTime in
// trader/binance_futures.go) generalized to a shared symbol/asset table.
package store

import "sync"

// Tick is a price observation: unix-ms timestamp taken when the tick was
// received, and last trade price.
type Tick struct {
	TimestampMs int64
	Price       float64
}

// PriceStore maps symbol -> latest tick.
type PriceStore struct {
	mu   sync.RWMutex
	data map[string]Tick
}

func NewPriceStore() *PriceStore {
	return &PriceStore{data: make(map[string]Tick)}
}

// Update records a new tick for symbol.
func (s *PriceStore) Update(symbol string, timestampMs int64, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[symbol] = Tick{TimestampMs: timestampMs, Price: price}
}

// Get returns the last tick for symbol and whether it has been populated yet.
func (s *PriceStore) Get(symbol string) (Tick, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.data[symbol]
	return t, ok
}
