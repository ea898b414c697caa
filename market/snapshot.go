package market

// Snapshot is the full per-round view handed to the engine by the exchange.
// All fields are read-only from the engine's perspective.
type Snapshot struct {
	Timestamp int64

	// Books holds the current order book per product.
	Books map[string]Book

	// LastTrades maps product to the most recent trade price this round.
	// Products with no trade are simply absent.
	LastTrades map[string]float64

	// Positions holds the current signed position per product. Positions
	// change only through fills, outside the engine.
	Positions map[string]int

	// StateBlob is the opaque engine state serialized at the end of the
	// previous round; empty on the first round.
	StateBlob string
}

// Position returns the signed position for product, 0 when absent.
func (s Snapshot) Position(product string) int { return s.Positions[product] }
