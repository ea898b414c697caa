// Package sim drives the engine with synthetic market snapshots and a
// minimal crossing fill model, standing in for the exchange collaborator
// during local runs and backtests.
package sim

import (
	"math"
	"math/rand"
	"time"

	"tick-engine-go/internal/engine"
	"tick-engine-go/internal/store"
	"tick-engine-go/inventory"
	"tick-engine-go/logs"
	"tick-engine-go/market"
	"tick-engine-go/metrics"
	"tick-engine-go/posttrade"
)

// Runner owns the feedback loop around the engine: it fabricates
// snapshots, applies fills, tracks positions and collects statistics.
type Runner struct {
	Engine   *engine.Engine
	Inv      *inventory.Tracker
	Log      logs.Logger
	Analyzer *posttrade.Analyzer

	// PublishMetrics pushes per-round Prometheus metrics when set.
	PublishMetrics bool

	rng   *rand.Rand
	mids  map[string]float64
	state string
	round int
}

// NewRunner creates a runner with random-walk mids seeded per product.
func NewRunner(e *engine.Engine, seed int64, log logs.Logger) *Runner {
	r := &Runner{
		Engine:   e,
		Inv:      inventory.NewTracker(),
		Log:      logs.OrDefault(log),
		Analyzer: &posttrade.Analyzer{},
		rng:      rand.New(rand.NewSource(seed)),
		mids:     make(map[string]float64),
	}
	for _, product := range e.Products() {
		r.mids[product] = 100
	}
	return r
}

// SetMid overrides a product's starting mid price.
func (r *Runner) SetMid(product string, mid float64) { r.mids[product] = mid }

// Step runs one synthetic round: evolve prices, snapshot, decide, fill.
func (r *Runner) Step() engine.Result { return r.step(true) }

func (r *Runner) step(drift bool) engine.Result {
	snap := r.nextSnapshot(drift)

	start := time.Now()
	res := r.Engine.Run(snap)
	elapsed := time.Since(start)

	r.state = res.State
	filled := r.applyFills(res, snap)

	if r.PublishMetrics {
		metrics.ObserveRound(elapsed)
		for _, orders := range res.Orders {
			for _, o := range orders {
				metrics.RecordOrder(o.Product, o.Side())
			}
		}
		for product, magnitude := range res.Conversions {
			metrics.RecordConversion(product, magnitude)
		}
		st, _ := store.Decode(res.State, 0, r.Log)
		for product, est := range r.Engine.Estimates(st.All()) {
			metrics.UpdateEstimate(product, est.Fair, est.Spread)
		}
	}

	r.Analyzer.Add(posttrade.RoundRecord{
		Round:       r.round,
		Orders:      res.Orders,
		Conversions: res.Conversions,
		FilledQty:   filled,
		RealizedPnL: r.Inv.Realized(),
	})
	r.round++
	return res
}

// Run executes n rounds and returns the final summary.
func (r *Runner) Run(n int) posttrade.Summary {
	for i := 0; i < n; i++ {
		r.Step()
	}
	return r.Analyzer.Summary()
}

// FeedPrices replaces the random walk for one round with externally
// supplied mids (used by the CSV replay backtest) and runs that round
// without adding drift.
func (r *Runner) FeedPrices(mids map[string]float64) engine.Result {
	for product, mid := range mids {
		r.mids[product] = mid
	}
	return r.step(false)
}

func (r *Runner) nextSnapshot(drift bool) market.Snapshot {
	books := make(map[string]market.Book, len(r.mids))
	trades := make(map[string]float64, len(r.mids))
	for product := range r.mids {
		if drift {
			r.mids[product] += r.rng.NormFloat64()
		}
		mid := r.mids[product]
		px := int(math.Round(mid))
		books[product] = market.Book{
			Bids: market.Side{px - 1: 5 + r.rng.Intn(10)},
			Asks: market.Side{px + 1: -(5 + r.rng.Intn(10))},
		}
		trades[product] = float64(px)
	}
	return market.Snapshot{
		Timestamp:  int64(r.round),
		Books:      books,
		LastTrades: trades,
		Positions:  r.Inv.Positions(),
		StateBlob:  r.state,
	}
}

// applyFills fills any order marketable against the snapshot's book: buys
// at or above the best ask, sells at or below the best bid. Resting quotes
// inside the spread stay unfilled, like on a real book.
func (r *Runner) applyFills(res engine.Result, snap market.Snapshot) int {
	filled := 0
	for product, orders := range res.Orders {
		book := snap.Books[product]
		for _, o := range orders {
			if o.IsBuy() {
				if ask, ok := book.BestAsk(); ok && o.Price >= ask {
					r.Inv.ApplyFill(product, o.Quantity, float64(ask))
					filled += o.Size()
				}
			} else {
				if bid, ok := book.BestBid(); ok && o.Price <= bid {
					r.Inv.ApplyFill(product, o.Quantity, float64(bid))
					filled += o.Size()
				}
			}
		}
	}
	return filled
}
