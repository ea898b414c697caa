package market

// DefaultWindowSize is the number of recent trade prices kept per product.
const DefaultWindowSize = 20

// Window is a bounded FIFO of recent trade prices for one product.
// Pushing beyond capacity evicts the oldest entry.
type Window struct {
	cap    int
	prices []float64
}

// NewWindow creates an empty window. A non-positive cap falls back to
// DefaultWindowSize.
func NewWindow(cap int) *Window {
	if cap <= 0 {
		cap = DefaultWindowSize
	}
	return &Window{cap: cap, prices: make([]float64, 0, cap)}
}

// Push appends a trade price, evicting the oldest entry when full.
func (w *Window) Push(price float64) {
	w.prices = append(w.prices, price)
	if len(w.prices) > w.cap {
		w.prices = w.prices[len(w.prices)-w.cap:]
	}
}

// Fill replaces the window contents with the last cap entries of prices.
func (w *Window) Fill(prices []float64) {
	w.prices = w.prices[:0]
	start := 0
	if len(prices) > w.cap {
		start = len(prices) - w.cap
	}
	w.prices = append(w.prices, prices[start:]...)
}

// Prices returns the window contents, oldest first. The slice is shared;
// callers must not mutate it.
func (w *Window) Prices() []float64 { return w.prices }

// Last returns the most recent price. ok is false for an empty window.
func (w *Window) Last() (float64, bool) {
	if len(w.prices) == 0 {
		return 0, false
	}
	return w.prices[len(w.prices)-1], true
}

// Len returns the number of stored prices.
func (w *Window) Len() int { return len(w.prices) }

// Cap returns the window capacity.
func (w *Window) Cap() int { return w.cap }
