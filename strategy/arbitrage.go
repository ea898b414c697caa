package strategy

import "tick-engine-go/market"

// Conversion mispricing band: outside [0.95, 1.05] of intrinsic value the
// basket is worth converting.
const (
	UnderpricedRatio = 0.95
	OverpricedRatio  = 1.05

	// DefaultConversionLimit bounds the per-round conversion magnitude.
	DefaultConversionLimit = 5
)

// Conversion compares a basket's market mid to its intrinsic sum-of-parts
// value and returns a signed conversion magnitude:
//
//	+limit: the basket trades under intrinsic — break baskets into
//	        constituents
//	-limit: the basket trades over intrinsic — assemble baskets from
//	        constituents
//	0:      no edge, no intrinsic value, or the book is missing a side
//
// The signal fires on mispricing alone; no position is required. It is the
// exchange's job to cap conversions against what is actually held.
func Conversion(book market.Book, intrinsic float64, limit int) int {
	if limit <= 0 {
		limit = DefaultConversionLimit
	}
	if intrinsic <= 0 {
		return 0 // constituents have no history to value the basket against
	}
	mid, ok := book.Mid()
	if !ok {
		return 0
	}
	switch {
	case mid < UnderpricedRatio*intrinsic:
		return limit
	case mid > OverpricedRatio*intrinsic:
		return -limit
	default:
		return 0
	}
}
