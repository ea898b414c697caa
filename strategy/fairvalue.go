package strategy

import (
	"fmt"

	"tick-engine-go/stats"
)

// Estimate is a resolved fair value plus the auxiliary signals the sizing
// and arbitrage stages consume. Estimates are recomputed every round from
// the current price window and never persisted.
type Estimate struct {
	Fair   float64
	Spread float64
	Slope  float64
	Vol    float64
}

// Resolver turns per-product price windows into fair value estimates under
// the configured policies. Basket fair values are fixed positive-weight
// linear combinations of their constituents' fair values.
type Resolver struct {
	params  map[string]ProductParams
	baskets map[string]map[string]int
}

// NewResolver validates the full parameter set up front. Invalid weights or
// unconfigured constituents are construction-time failures; resolution
// itself cannot fail.
func NewResolver(params map[string]ProductParams, baskets map[string]map[string]int) (*Resolver, error) {
	for product, p := range params {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("product %s: %w", product, err)
		}
	}
	for basket, weights := range baskets {
		bp, ok := params[basket]
		if !ok || bp.Policy != PolicyBasket {
			return nil, fmt.Errorf("basket %s: not configured with the basket policy", basket)
		}
		if len(weights) == 0 {
			return nil, fmt.Errorf("basket %s: empty composition", basket)
		}
		for constituent, w := range weights {
			if w <= 0 {
				return nil, fmt.Errorf("basket %s: weight for %s must be > 0", basket, constituent)
			}
			cp, ok := params[constituent]
			if !ok {
				return nil, fmt.Errorf("basket %s: constituent %s not configured", basket, constituent)
			}
			if cp.Policy == PolicyBasket {
				return nil, fmt.Errorf("basket %s: constituent %s is itself a basket", basket, constituent)
			}
		}
	}
	for product, p := range params {
		if p.Policy == PolicyBasket {
			if _, ok := baskets[product]; !ok {
				return nil, fmt.Errorf("basket %s: no composition declared", product)
			}
		}
	}
	return &Resolver{params: params, baskets: baskets}, nil
}

// Products returns every configured product identifier.
func (r *Resolver) Products() []string {
	out := make([]string, 0, len(r.params))
	for p := range r.params {
		out = append(out, p)
	}
	return out
}

// Params returns the configuration for product; ok is false when the
// product is not traded.
func (r *Resolver) Params(product string) (ProductParams, bool) {
	p, ok := r.params[product]
	return p, ok
}

// Composition returns a basket's declared weights, nil for non-baskets.
func (r *Resolver) Composition(product string) map[string]int { return r.baskets[product] }

// Resolve computes estimates for every configured product. Constituents are
// resolved from their windows first, then baskets from the constituent fair
// values. Missing windows resolve like empty ones.
func (r *Resolver) Resolve(prices map[string][]float64) map[string]Estimate {
	out := make(map[string]Estimate, len(r.params))
	for product, p := range r.params {
		if p.Policy == PolicyBasket {
			continue
		}
		out[product] = r.resolveLeaf(p, prices[product])
	}
	for basket := range r.baskets {
		out[basket] = r.resolveBasket(basket, out)
	}
	return out
}

func (r *Resolver) resolveLeaf(p ProductParams, window []float64) Estimate {
	vol := stats.StdDev(window)
	var fair, slope, spread float64
	switch p.Policy {
	case PolicyTrending:
		fair, slope = stats.Linreg(window)
		spread = p.SpreadMult*vol + p.TrendWiden*absf(slope)
	default:
		fair = stats.EWMA(window, p.Alpha)
		spread = p.SpreadMult * vol
	}
	return Estimate{Fair: fair, Spread: floorSpread(spread), Slope: slope, Vol: vol}
}

func (r *Resolver) resolveBasket(basket string, leaves map[string]Estimate) Estimate {
	p := r.params[basket]
	fair := 0.0
	for constituent, w := range r.baskets[basket] {
		fair += float64(w) * leaves[constituent].Fair
	}
	return Estimate{Fair: fair, Spread: floorSpread(p.BasketFraction * fair)}
}

// floorSpread keeps bid < ask even when dispersion collapses to zero.
func floorSpread(s float64) float64 {
	if s < 1 {
		return 1
	}
	return s
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
