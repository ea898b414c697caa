package strategy

import (
	"errors"
	"fmt"
)

// Policy selects the fair value model applied to a product.
type Policy string

const (
	// PolicyStable smooths slowly; suits products that oscillate around a
	// long-run level.
	PolicyStable Policy = "stable"
	// PolicyVolatile smooths quickly and quotes a wider spread.
	PolicyVolatile Policy = "volatile"
	// PolicyTrending projects a fitted linear trend one step ahead.
	PolicyTrending Policy = "trending"
	// PolicyBasket derives fair value from the product's constituents.
	PolicyBasket Policy = "basket"
)

// ProductParams configures estimation and sizing for one product.
type ProductParams struct {
	Policy Policy

	// Alpha is the EWMA smoothing factor in (0,1]; unused for trending
	// and basket products.
	Alpha float64

	// SpreadMult scales the dispersion into a quoted spread.
	SpreadMult float64

	// TrendWiden adds TrendWiden*|slope| to the spread of trending
	// products, compensating for projection risk on steep trends.
	TrendWiden float64

	// BasketFraction sets a basket's spread as a fraction of its fair
	// value, e.g. 0.05.
	BasketFraction float64

	// BaseScale is the sizing base for this product. Trending products
	// switch to StrongScale while |slope| exceeds SlopeThreshold.
	BaseScale      float64
	StrongScale    float64
	SlopeThreshold float64
}

var (
	ErrUnknownPolicy  = errors.New("unknown policy")
	ErrBadAlpha       = errors.New("alpha must be in (0,1]")
	ErrBadSpreadMult  = errors.New("spread multiplier must be > 0")
	ErrBadBaseScale   = errors.New("base scale must be > 0")
	ErrBadBasketParam = errors.New("basket fraction must be in (0,1)")
)

// Validate checks the parameter set for one product. Violations are
// configuration bugs and are only reported at construction.
func (p ProductParams) Validate() error {
	switch p.Policy {
	case PolicyStable, PolicyVolatile:
		if p.Alpha <= 0 || p.Alpha > 1 {
			return ErrBadAlpha
		}
		if p.SpreadMult <= 0 {
			return ErrBadSpreadMult
		}
	case PolicyTrending:
		if p.SpreadMult <= 0 {
			return ErrBadSpreadMult
		}
	case PolicyBasket:
		if p.BasketFraction <= 0 || p.BasketFraction >= 1 {
			return ErrBadBasketParam
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, p.Policy)
	}
	if p.BaseScale <= 0 {
		return ErrBadBaseScale
	}
	return nil
}

// scale returns the sizing base, honoring the trend-strength switch.
func (p ProductParams) scale(slope float64) float64 {
	if p.Policy == PolicyTrending && p.StrongScale > 0 {
		if slope < 0 {
			slope = -slope
		}
		if slope > p.SlopeThreshold {
			return p.StrongScale
		}
	}
	return p.BaseScale
}
