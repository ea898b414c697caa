package risk

import (
	"errors"
	"fmt"
)

var ErrNonPositiveLimit = errors.New("position limit must be > 0")

// Limits maps product to its symmetric position bound L.
// A position must stay inside [-L, +L] at all times.
type Limits map[string]int

// Validate rejects non-positive limits. Limit misconfiguration is a
// programmer error and is only surfaced at construction time.
func (l Limits) Validate() error {
	for product, limit := range l {
		if limit <= 0 {
			return fmt.Errorf("product %s: %w", product, ErrNonPositiveLimit)
		}
	}
	return nil
}

// Limit returns the bound for product, or 0 when the product is unknown.
func (l Limits) Limit(product string) int { return l[product] }

// BuyRoom returns how many units may still be bought before the position
// would exceed +L. Unknown products have no room.
func (l Limits) BuyRoom(product string, position int) int {
	limit, ok := l[product]
	if !ok {
		return 0
	}
	return limit - position
}

// SellRoom returns how many units may still be sold before the position
// would fall below -L.
func (l Limits) SellRoom(product string, position int) int {
	limit, ok := l[product]
	if !ok {
		return 0
	}
	return limit + position
}
