package strategy

import (
	"math"

	"tick-engine-go/market"
	"tick-engine-go/order"
	"tick-engine-go/risk"
)

// Quotes produces at most one resting buy and one resting sell for a
// product, centered on the fair value and clipped to the remaining position
// room. A side with no room is suppressed entirely, so a fully filled round
// can never push the position outside [-limit, +limit].
func Quotes(product string, est Estimate, size int, position int, limits risk.Limits) []order.Order {
	if size <= 0 {
		return nil
	}
	bid := int(math.Round(est.Fair - est.Spread/2))
	ask := int(math.Round(est.Fair + est.Spread/2))

	var orders []order.Order
	if room := limits.BuyRoom(product, position); room > 0 {
		qty := size
		if qty > room {
			qty = room
		}
		orders = append(orders, order.Order{Product: product, Price: bid, Quantity: qty})
	}
	if room := limits.SellRoom(product, position); room > 0 {
		qty := size
		if qty > room {
			qty = room
		}
		orders = append(orders, order.Order{Product: product, Price: ask, Quantity: -qty})
	}
	return orders
}

// TakeLiquidity returns aggressive orders lifting a mispriced best level:
// buy the best ask when it sits below fair value, hit the best bid when it
// sits above. Sizes are bounded by the resting quantity and the room the
// caller has left after its resting quotes, so a fully filled round still
// respects the position limits. Used only in opportunistic mode.
func TakeLiquidity(product string, book market.Book, fair float64, buyRoom, sellRoom int) []order.Order {
	var orders []order.Order
	if ask, ok := book.BestAsk(); ok && float64(ask) < fair {
		qty := book.BestAskSize()
		if qty > buyRoom {
			qty = buyRoom
		}
		if qty > 0 {
			orders = append(orders, order.Order{Product: product, Price: ask, Quantity: qty})
		}
	}
	if bid, ok := book.BestBid(); ok && float64(bid) > fair {
		qty := book.BestBidSize()
		if qty > sellRoom {
			qty = sellRoom
		}
		if qty > 0 {
			orders = append(orders, order.Order{Product: product, Price: bid, Quantity: -qty})
		}
	}
	return orders
}
