// Package engine wires the decision pipeline together: restore state,
// update price windows, resolve fair values, size and quote every product
// in the snapshot, evaluate basket conversions, and serialize state for the
// next round. One call to Run is one complete synchronous round.
package engine

import (
	"errors"
	"fmt"

	"tick-engine-go/history"
	"tick-engine-go/internal/store"
	"tick-engine-go/logs"
	"tick-engine-go/market"
	"tick-engine-go/order"
	"tick-engine-go/risk"
	"tick-engine-go/strategy"
)

// Config is the immutable engine configuration, fixed at construction.
type Config struct {
	// WindowSize caps each product's rolling price window.
	WindowSize int

	// GapMultiplier amplifies the last-trade/fair-value gap in sizing.
	GapMultiplier float64

	// ConversionLimit bounds each basket's per-round conversion magnitude.
	ConversionLimit int

	// Limits holds the symmetric position bound per product.
	Limits risk.Limits

	// Products declares the traded products and their policies.
	Products map[string]strategy.ProductParams

	// Baskets maps each composite product to its constituent weights.
	Baskets map[string]map[string]int

	// Opportunistic enables aggressive orders against mispriced best
	// levels in addition to the resting quotes.
	Opportunistic bool

	// SeedFiles are historical price files loaded once at construction to
	// pre-fill windows until the first persisted state arrives.
	SeedFiles []string
}

// Result is the complete outcome of one round: resting orders per product,
// conversion signals per basket, and the serialized state for the next
// round.
type Result struct {
	Orders      map[string][]order.Order
	Conversions map[string]int
	State       string
}

// Engine runs the per-round decision pipeline. It holds no mutable state
// between rounds beyond the construction-time seeds; everything else rides
// in the state blob.
type Engine struct {
	cfg      Config
	resolver *strategy.Resolver
	sizer    strategy.Sizer
	log      logs.Logger
	seeds    map[string][]float64
}

// Option customizes engine construction.
type Option func(*Engine)

// WithLogger injects the logger used for recoverable degradations.
func WithLogger(l logs.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New validates the configuration and loads seed history. Configuration
// errors are fatal here and can never surface during a round.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if len(cfg.Products) == 0 {
		return nil, errors.New("no products configured")
	}
	if err := cfg.Limits.Validate(); err != nil {
		return nil, err
	}
	for product := range cfg.Products {
		if _, ok := cfg.Limits[product]; !ok {
			return nil, fmt.Errorf("product %s: no position limit configured", product)
		}
	}
	resolver, err := strategy.NewResolver(cfg.Products, cfg.Baskets)
	if err != nil {
		return nil, err
	}
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = market.DefaultWindowSize
	}
	if cfg.ConversionLimit <= 0 {
		cfg.ConversionLimit = strategy.DefaultConversionLimit
	}

	e := &Engine{
		cfg:      cfg,
		resolver: resolver,
		sizer:    strategy.Sizer{GapMultiplier: cfg.GapMultiplier},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logs.OrDefault(e.log)

	if len(cfg.SeedFiles) > 0 {
		e.seeds, _ = history.LoadSeeds(cfg.SeedFiles, resolver.Products(), e.log)
	}
	return e, nil
}

// Run executes one decision round over the snapshot. It never fails: an
// unrecoverable internal fault yields an empty order set with the previous
// state unchanged, favoring doing nothing over doing something wrong.
func (e *Engine) Run(snap market.Snapshot) (res Result) {
	prevState := snap.StateBlob
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("round aborted", "panic", r)
			res = Result{
				Orders:      make(map[string][]order.Order),
				Conversions: make(map[string]int),
				State:       prevState,
			}
		}
	}()

	st, restored := store.Decode(snap.StateBlob, e.cfg.WindowSize, e.log)
	if !restored {
		for product, prices := range e.seeds {
			st.Seed(product, prices)
		}
	}

	// Rolling price store update: append this round's trades, if any.
	for product, price := range snap.LastTrades {
		if _, ok := e.resolver.Params(product); ok {
			st.Push(product, price)
		}
	}

	estimates := e.resolver.Resolve(st.All())

	orders := make(map[string][]order.Order, len(snap.Books))
	for product, book := range snap.Books {
		orders[product] = e.quoteProduct(product, book, estimates, st, snap.Position(product))
	}

	conversions := make(map[string]int)
	for basket := range e.cfg.Baskets {
		book, ok := snap.Books[basket]
		if !ok {
			continue
		}
		if sig := strategy.Conversion(book, estimates[basket].Fair, e.cfg.ConversionLimit); sig != 0 {
			conversions[basket] = sig
		}
	}

	return Result{Orders: orders, Conversions: conversions, State: st.Encode()}
}

func (e *Engine) quoteProduct(product string, book market.Book, estimates map[string]strategy.Estimate, st *store.Store, position int) []order.Order {
	params, ok := e.resolver.Params(product)
	if !ok {
		return nil // present in the snapshot but not traded
	}
	if book.Empty() {
		return nil // nothing to price against this round
	}
	est := estimates[product]

	window := st.Prices(product)
	if len(window) == 0 {
		if params.Policy != strategy.PolicyBasket || est.Fair <= 0 {
			return nil // no price history yet, nothing to anchor a fair value
		}
		// Baskets rarely trade; size them off their derived fair value.
		window = []float64{est.Fair}
	}

	size := e.sizer.Size(params, window, book, est.Fair)
	quotes := strategy.Quotes(product, est, size, position, e.cfg.Limits)

	if e.cfg.Opportunistic {
		buyRoom := e.cfg.Limits.BuyRoom(product, position)
		sellRoom := e.cfg.Limits.SellRoom(product, position)
		for _, o := range quotes {
			if o.IsBuy() {
				buyRoom -= o.Quantity
			} else {
				sellRoom -= o.Size()
			}
		}
		quotes = append(quotes, strategy.TakeLiquidity(product, book, est.Fair, buyRoom, sellRoom)...)
	}
	return quotes
}

// Estimates exposes the resolver for diagnostics and the local harness.
func (e *Engine) Estimates(prices map[string][]float64) map[string]strategy.Estimate {
	return e.resolver.Resolve(prices)
}

// Products returns the configured product identifiers.
func (e *Engine) Products() []string { return e.resolver.Products() }

// Limits returns the configured position limits.
func (e *Engine) Limits() risk.Limits { return e.cfg.Limits }
