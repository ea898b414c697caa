package inventory

import "sync"

// Tracker maintains signed positions and weighted average cost per product.
// The engine itself never mutates positions; the tracker belongs to the
// harness, which applies fills reported by the simulated exchange.
type Tracker struct {
	mu        sync.RWMutex
	positions map[string]int
	cost      map[string]float64
	realized  float64
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		positions: make(map[string]int),
		cost:      make(map[string]float64),
	}
}

// ApplyFill adjusts the position by a signed fill quantity at price.
// Reducing a position realizes PnL against the average cost.
func (t *Tracker) ApplyFill(product string, qty int, price float64) {
	if qty == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	pos := t.positions[product]
	avg := t.cost[product]

	switch {
	case pos == 0 || sameSign(pos, qty):
		// Adding to the position: weighted average cost.
		total := avg*float64(pos) + price*float64(qty)
		pos += qty
		avg = total / float64(pos)
	case abs(qty) <= abs(pos):
		// Reducing: realize PnL on the closed quantity.
		t.realized += float64(-qty) * (price - avg)
		pos += qty
		if pos == 0 {
			avg = 0
		}
	default:
		// Flipping: close everything, the remainder opens at this price.
		t.realized += float64(pos) * (price - avg)
		pos += qty
		avg = price
	}
	t.positions[product] = pos
	t.cost[product] = avg
}

// Position returns the signed position for product.
func (t *Tracker) Position(product string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.positions[product]
}

// Positions returns a copy of all signed positions.
func (t *Tracker) Positions() map[string]int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]int, len(t.positions))
	for p, q := range t.positions {
		out[p] = q
	}
	return out
}

// Realized returns the realized PnL accumulated by closing fills.
func (t *Tracker) Realized() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.realized
}

// Valuation marks a product's open position to mid and returns its
// unrealized PnL.
func (t *Tracker) Valuation(product string, mid float64) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	pos := t.positions[product]
	if pos == 0 {
		return 0
	}
	return float64(pos) * (mid - t.cost[product])
}

func sameSign(a, b int) bool { return (a > 0) == (b > 0) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
