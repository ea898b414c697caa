// Package store keeps the engine's only cross-round state: one bounded
// price window per product. The state round-trips through an opaque JSON
// blob between invocations; a corrupt or absent blob degrades to an empty
// store rather than failing the round.
package store

import (
	"encoding/json"

	"tick-engine-go/logs"
	"tick-engine-go/market"
)

// Store maps product to its rolling price window.
type Store struct {
	window  int
	windows map[string]*market.Window
}

// New creates an empty store whose windows hold up to window prices.
func New(window int) *Store {
	if window <= 0 {
		window = market.DefaultWindowSize
	}
	return &Store{window: window, windows: make(map[string]*market.Window)}
}

// Decode reconstructs a store from a serialized blob. An empty or
// undecodable blob yields an empty store; restored is false in that case so
// callers can fall back to seeded history. Oversized decoded windows are
// truncated to the configured capacity.
func Decode(blob string, window int, log logs.Logger) (s *Store, restored bool) {
	s = New(window)
	if blob == "" {
		return s, false
	}
	var raw map[string][]float64
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		logs.OrDefault(log).Warn("discarding undecodable engine state", "error", err)
		return s, false
	}
	for product, prices := range raw {
		w := market.NewWindow(s.window)
		w.Fill(prices)
		s.windows[product] = w
	}
	return s, true
}

// Encode serializes the store for the next round. Encoding a map of float
// slices cannot fail.
func (s *Store) Encode() string {
	raw := make(map[string][]float64, len(s.windows))
	for product, w := range s.windows {
		raw[product] = w.Prices()
	}
	blob, err := json.Marshal(raw)
	if err != nil {
		return "{}"
	}
	return string(blob)
}

// Push appends a trade price to a product's window, creating it on first
// use. Rounds with no trade for a product simply never call Push.
func (s *Store) Push(product string, price float64) {
	w, ok := s.windows[product]
	if !ok {
		w = market.NewWindow(s.window)
		s.windows[product] = w
	}
	w.Push(price)
}

// Seed replaces a product's window with historical prices, keeping the
// newest entries when the history exceeds the capacity.
func (s *Store) Seed(product string, prices []float64) {
	w := market.NewWindow(s.window)
	w.Fill(prices)
	s.windows[product] = w
}

// Prices returns a product's window contents, oldest first; nil when the
// product has never traded.
func (s *Store) Prices(product string) []float64 {
	w, ok := s.windows[product]
	if !ok {
		return nil
	}
	return w.Prices()
}

// All returns every product's window contents, keyed by product.
func (s *Store) All() map[string][]float64 {
	out := make(map[string][]float64, len(s.windows))
	for product, w := range s.windows {
		out[product] = w.Prices()
	}
	return out
}
