package strategy

import (
	"math"

	"tick-engine-go/market"
	"tick-engine-go/stats"
)

// Sizing bounds. Sizes below MinSize are not worth resting; MaxSize caps
// the exposure a single fill can add.
const (
	MinSize = 3
	MaxSize = 20

	// DefaultGapMultiplier amplifies the relative gap between the last
	// trade and fair value.
	DefaultGapMultiplier = 20
)

// Sizer converts liquidity, volatility and price-gap signals into a bounded
// integer order size.
type Sizer struct {
	// GapMultiplier scales the percentage gap between the last traded
	// price and fair value; zero falls back to DefaultGapMultiplier.
	GapMultiplier float64
}

// Size computes the order size for one product this round.
//
//   - no price history: minimal probe size of 1
//   - volatility shrinks size, liquidity and fair value gaps grow it
//   - the result is clamped to [MinSize, MaxSize]
func (s Sizer) Size(p ProductParams, window []float64, book market.Book, fair float64) int {
	if len(window) == 0 {
		return 1
	}

	vol := stats.StdDev(window)
	if vol == 0 {
		vol = 1
	}

	var slope float64
	if p.Policy == PolicyTrending {
		_, slope = stats.Linreg(window)
	}
	base := p.scale(slope)

	liquidity := liquidityFactor(book, base)

	gapMult := s.GapMultiplier
	if gapMult == 0 {
		gapMult = DefaultGapMultiplier
	}
	last := window[len(window)-1]
	gapPct := 0.0
	if fair != 0 {
		gapPct = math.Abs(last-fair) / fair * 100
	}
	amplifier := 1 + gapPct*gapMult

	size := int(math.Round(base * (liquidity / vol) * amplifier))
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return size
}

// liquidityFactor estimates available liquidity from the top of book: the
// mean of the best bid and ask sizes when both sides rest, a single side's
// best size otherwise, and the neutral base scale for an empty book.
func liquidityFactor(book market.Book, base float64) float64 {
	bid := book.BestBidSize()
	ask := book.BestAskSize()
	switch {
	case bid > 0 && ask > 0:
		return (float64(bid) + float64(ask)) / 2
	case bid > 0:
		return float64(bid)
	case ask > 0:
		return float64(ask)
	default:
		return base
	}
}
