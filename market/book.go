package market

// Side is one side of an order book: price -> resting quantity.
// By exchange convention bid quantities are positive and ask quantities
// negative; the magnitude is the resting size.
type Side map[int]int

// Book is the per-product order book carried in a snapshot. It is a plain
// value copied into the engine each round; the engine never mutates it.
type Book struct {
	Bids Side
	Asks Side
}

// Empty reports whether neither side has any resting orders.
func (b Book) Empty() bool { return len(b.Bids) == 0 && len(b.Asks) == 0 }

// BestBid returns the highest bid price. ok is false when there are no bids.
func (b Book) BestBid() (price int, ok bool) {
	for p := range b.Bids {
		if !ok || p > price {
			price, ok = p, true
		}
	}
	return price, ok
}

// BestAsk returns the lowest ask price. ok is false when there are no asks.
func (b Book) BestAsk() (price int, ok bool) {
	for p := range b.Asks {
		if !ok || p < price {
			price, ok = p, true
		}
	}
	return price, ok
}

// BestBidSize returns the resting size at the best bid, 0 when absent.
func (b Book) BestBidSize() int {
	p, ok := b.BestBid()
	if !ok {
		return 0
	}
	return abs(b.Bids[p])
}

// BestAskSize returns the resting size at the best ask, 0 when absent.
func (b Book) BestAskSize() int {
	p, ok := b.BestAsk()
	if !ok {
		return 0
	}
	return abs(b.Asks[p])
}

// Mid returns the midpoint of the best bid and ask. ok is false unless both
// sides are present.
func (b Book) Mid() (float64, bool) {
	bid, okB := b.BestBid()
	ask, okA := b.BestAsk()
	if !okB || !okA {
		return 0, false
	}
	return (float64(bid) + float64(ask)) / 2, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
