// Package posttrade aggregates per-round engine output into run-level
// statistics for reporting.
package posttrade

import "tick-engine-go/order"

// RoundRecord captures what one round produced and what the harness
// observed afterwards.
type RoundRecord struct {
	Round       int
	Orders      map[string][]order.Order
	Conversions map[string]int
	FilledQty   int
	RealizedPnL float64
}

// Summary is the aggregate view over a run.
type Summary struct {
	Rounds         int
	OrdersEmitted  int
	BuyOrders      int
	SellOrders     int
	Conversions    int
	BreakSignals   int
	Assembles      int
	FilledQty      int
	RealizedPnL    float64
	OrdersPerRound float64
}

// Analyzer accumulates round records.
type Analyzer struct {
	records []RoundRecord
}

// Add appends one round's record.
func (a *Analyzer) Add(rec RoundRecord) {
	a.records = append(a.records, rec)
}

// Summary folds all records into run statistics.
func (a *Analyzer) Summary() Summary {
	var s Summary
	s.Rounds = len(a.records)
	for _, rec := range a.records {
		for _, orders := range rec.Orders {
			for _, o := range orders {
				s.OrdersEmitted++
				if o.IsBuy() {
					s.BuyOrders++
				} else {
					s.SellOrders++
				}
			}
		}
		for _, magnitude := range rec.Conversions {
			s.Conversions++
			if magnitude > 0 {
				s.BreakSignals++
			} else if magnitude < 0 {
				s.Assembles++
			}
		}
		s.FilledQty += rec.FilledQty
		s.RealizedPnL = rec.RealizedPnL // records carry the running total
	}
	if s.Rounds > 0 {
		s.OrdersPerRound = float64(s.OrdersEmitted) / float64(s.Rounds)
	}
	return s
}
