package strategy

import (
	"testing"

	"tick-engine-go/market"
	"tick-engine-go/order"
	"tick-engine-go/risk"
)

func TestQuotesCenteredOnFair(t *testing.T) {
	limits := risk.Limits{"PEARLS": 50}
	est := Estimate{Fair: 100, Spread: 4}

	orders := Quotes("PEARLS", est, 5, 10, limits)
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	buy, sell := orders[0], orders[1]
	if buy.Price != 98 || buy.Quantity != 5 {
		t.Fatalf("buy: expected 98 x 5, got %d x %d", buy.Price, buy.Quantity)
	}
	if sell.Price != 102 || sell.Quantity != -5 {
		t.Fatalf("sell: expected 102 x -5, got %d x %d", sell.Price, sell.Quantity)
	}
}

func TestQuotesClippedToRoom(t *testing.T) {
	limits := risk.Limits{"PEARLS": 50}
	est := Estimate{Fair: 100, Spread: 4}

	// Position 48 leaves buy room 2; the buy is clipped, the sell is not.
	orders := Quotes("PEARLS", est, 5, 48, limits)
	if len(orders) != 2 || orders[0].Quantity != 2 || orders[1].Quantity != -5 {
		t.Fatalf("unexpected orders: %+v", orders)
	}

	// At the long limit the buy side disappears entirely.
	orders = Quotes("PEARLS", est, 5, 50, limits)
	if len(orders) != 1 || orders[0].Quantity != -5 {
		t.Fatalf("expected only a sell at +limit, got %+v", orders)
	}

	// At the short limit only the buy survives.
	orders = Quotes("PEARLS", est, 5, -50, limits)
	if len(orders) != 1 || orders[0].Quantity != 5 {
		t.Fatalf("expected only a buy at -limit, got %+v", orders)
	}
}

func TestQuotesFullFillStaysWithinLimits(t *testing.T) {
	limits := risk.Limits{"PEARLS": 50}
	est := Estimate{Fair: 100, Spread: 4}
	for pos := -50; pos <= 50; pos += 7 {
		orders := Quotes("PEARLS", est, 20, pos, limits)
		for _, o := range orders {
			after := pos + o.Quantity
			if after > 50 || after < -50 {
				t.Fatalf("pos %d + fill %d leaves position %d outside limit", pos, o.Quantity, after)
			}
		}
	}
}

func TestQuotesNoSize(t *testing.T) {
	limits := risk.Limits{"PEARLS": 50}
	if orders := Quotes("PEARLS", Estimate{Fair: 100, Spread: 4}, 0, 0, limits); orders != nil {
		t.Fatalf("expected no orders for zero size, got %+v", orders)
	}
}

func TestTakeLiquidity(t *testing.T) {
	// Best ask 95 below fair 100: lift it, bounded by resting size.
	book := market.Book{Bids: market.Side{90: 3}, Asks: market.Side{95: -4}}
	orders := TakeLiquidity("PEARLS", book, 100, 50, 50)
	if len(orders) != 1 || orders[0] != (order.Order{Product: "PEARLS", Price: 95, Quantity: 4}) {
		t.Fatalf("unexpected orders: %+v", orders)
	}

	// Best bid 105 above fair 100: hit it, clipped by the remaining room.
	book = market.Book{Bids: market.Side{105: 8}, Asks: market.Side{110: -2}}
	orders = TakeLiquidity("PEARLS", book, 100, 50, 3)
	if len(orders) != 1 || orders[0].Quantity != -3 {
		t.Fatalf("expected sell clipped to room 3, got %+v", orders)
	}

	// No room left: nothing aggressive.
	if orders := TakeLiquidity("PEARLS", book, 100, 0, 0); len(orders) != 0 {
		t.Fatalf("expected no orders without room, got %+v", orders)
	}

	// In-line book: nothing to take.
	book = market.Book{Bids: market.Side{99: 3}, Asks: market.Side{101: -3}}
	if orders := TakeLiquidity("PEARLS", book, 100, 50, 50); len(orders) != 0 {
		t.Fatalf("expected no orders, got %+v", orders)
	}
}
