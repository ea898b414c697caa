package order

// Order is a single resting order decision emitted by the engine.
// The sign of Quantity encodes the side: positive buys, negative sells.
// Prices are integer ticks, matching the exchange convention.
type Order struct {
	Product  string
	Price    int
	Quantity int
}

// IsBuy reports whether the order adds to the position.
func (o Order) IsBuy() bool { return o.Quantity > 0 }

// Size returns the unsigned order size.
func (o Order) Size() int {
	if o.Quantity < 0 {
		return -o.Quantity
	}
	return o.Quantity
}

// Side returns "BUY" or "SELL" for logging and metrics labels.
func (o Order) Side() string {
	if o.IsBuy() {
		return "BUY"
	}
	return "SELL"
}

// NetQuantity sums signed quantities; if every order fills, the position
// moves by exactly this amount.
func NetQuantity(orders []Order) int {
	net := 0
	for _, o := range orders {
		net += o.Quantity
	}
	return net
}
