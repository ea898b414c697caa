package strategy

import (
	"math"
	"testing"

	"tick-engine-go/stats"
)

func testParams() map[string]ProductParams {
	return map[string]ProductParams{
		"PEARLS": {Policy: PolicyStable, Alpha: 0.1, SpreadMult: 2, BaseScale: 5},
		"BERRIES": {Policy: PolicyVolatile, Alpha: 0.3, SpreadMult: 3, BaseScale: 3},
		"DRIFTWOOD": {
			Policy: PolicyTrending, SpreadMult: 2, TrendWiden: 0.5,
			BaseScale: 4, StrongScale: 6, SlopeThreshold: 0.5,
		},
		"CRATE_A": {Policy: PolicyBasket, BasketFraction: 0.05, BaseScale: 3},
	}
}

func testBaskets() map[string]map[string]int {
	return map[string]map[string]int{
		"CRATE_A": {"PEARLS": 6, "BERRIES": 3, "DRIFTWOOD": 1},
	}
}

func mustResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(testParams(), testBaskets())
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	return r
}

func TestResolveStable(t *testing.T) {
	r := mustResolver(t)
	window := []float64{100, 102, 101, 103}
	est := r.Resolve(map[string][]float64{"PEARLS": window})["PEARLS"]

	wantFair := stats.EWMA(window, 0.1)
	if math.Abs(est.Fair-wantFair) > 1e-9 {
		t.Fatalf("fair: expected %f, got %f", wantFair, est.Fair)
	}
	wantSpread := 2 * stats.StdDev(window)
	if wantSpread < 1 {
		wantSpread = 1
	}
	if math.Abs(est.Spread-wantSpread) > 1e-9 {
		t.Fatalf("spread: expected %f, got %f", wantSpread, est.Spread)
	}
}

func TestResolveTrendingWidensWithSlope(t *testing.T) {
	r := mustResolver(t)
	// y = 3x + 10: slope 3 widens the spread by TrendWiden*|slope|.
	window := []float64{10, 13, 16, 19}
	est := r.Resolve(map[string][]float64{"DRIFTWOOD": window})["DRIFTWOOD"]

	next, slope := stats.Linreg(window)
	if math.Abs(est.Fair-next) > 1e-9 {
		t.Fatalf("fair: expected projection %f, got %f", next, est.Fair)
	}
	if math.Abs(est.Slope-slope) > 1e-9 {
		t.Fatalf("slope: expected %f, got %f", slope, est.Slope)
	}
	wantSpread := 2*stats.StdDev(window) + 0.5*slope
	if math.Abs(est.Spread-wantSpread) > 1e-9 {
		t.Fatalf("spread: expected %f, got %f", wantSpread, est.Spread)
	}
}

func TestResolveBasketCombinesConstituents(t *testing.T) {
	r := mustResolver(t)
	prices := map[string][]float64{
		"PEARLS":    {100, 100, 100},
		"BERRIES":   {50, 50, 50},
		"DRIFTWOOD": {20, 20, 20},
	}
	ests := r.Resolve(prices)

	// 6*100 + 3*50 + 1*20 = 770 with flat constituent windows.
	want := 6*ests["PEARLS"].Fair + 3*ests["BERRIES"].Fair + ests["DRIFTWOOD"].Fair
	got := ests["CRATE_A"]
	if math.Abs(got.Fair-want) > 1e-9 {
		t.Fatalf("basket fair: expected %f, got %f", want, got.Fair)
	}
	if math.Abs(got.Spread-0.05*want) > 1e-9 {
		t.Fatalf("basket spread: expected %f, got %f", 0.05*want, got.Spread)
	}
}

func TestSpreadFloor(t *testing.T) {
	r := mustResolver(t)
	// Constant prices give zero dispersion; spread must still be >= 1.
	ests := r.Resolve(map[string][]float64{"PEARLS": {10, 10, 10, 10}})
	if ests["PEARLS"].Spread < 1 {
		t.Fatalf("spread below floor: %f", ests["PEARLS"].Spread)
	}
	// Empty windows everywhere: every spread still floored.
	for product, est := range r.Resolve(nil) {
		if est.Spread < 1 {
			t.Fatalf("product %s: spread %f below floor", product, est.Spread)
		}
	}
}

func TestNewResolverRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name    string
		params  map[string]ProductParams
		baskets map[string]map[string]int
	}{
		{
			name:   "bad alpha",
			params: map[string]ProductParams{"X": {Policy: PolicyStable, Alpha: 1.5, SpreadMult: 2, BaseScale: 5}},
		},
		{
			name:   "unknown policy",
			params: map[string]ProductParams{"X": {Policy: "chaotic", BaseScale: 5}},
		},
		{
			name:    "zero weight",
			params:  testParams(),
			baskets: map[string]map[string]int{"CRATE_A": {"PEARLS": 0}},
		},
		{
			name:    "missing constituent",
			params:  testParams(),
			baskets: map[string]map[string]int{"CRATE_A": {"GHOST": 2}},
		},
		{
			name: "basket without composition",
			params: map[string]ProductParams{
				"CRATE_A": {Policy: PolicyBasket, BasketFraction: 0.05, BaseScale: 3},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewResolver(tc.params, tc.baskets); err == nil {
				t.Fatal("expected construction error")
			}
		})
	}
}
