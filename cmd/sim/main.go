// Command sim runs a quick local simulation: random-walk prices drive the
// decision loop for a fixed number of rounds and a summary is printed.
// Useful for eyeballing parameter changes without a daemon or metrics.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"tick-engine-go/config"
	"tick-engine-go/sim"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "config file path")
	rounds := flag.Int("rounds", 100, "number of rounds to simulate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	verbose := flag.Bool("v", false, "print per-round order counts")
	flag.Parse()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	runner, err := sim.BuildRunner(cfg, *seed, nil)
	if err != nil {
		log.Fatalf("build runner: %v", err)
	}

	for i := 0; i < *rounds; i++ {
		res := runner.Step()
		if *verbose {
			orders := 0
			for _, os := range res.Orders {
				orders += len(os)
			}
			fmt.Printf("round %d orders=%d conversions=%d\n", i, orders, len(res.Conversions))
		}
	}

	sum := runner.Analyzer.Summary()
	fmt.Printf("rounds=%d orders=%d (buy=%d sell=%d) conversions=%d filled=%d pnl=%.2f\n",
		sum.Rounds, sum.OrdersEmitted, sum.BuyOrders, sum.SellOrders,
		sum.Conversions, sum.FilledQty, sum.RealizedPnL)
	for product, pos := range runner.Inv.Positions() {
		fmt.Printf("  %s position=%d\n", product, pos)
	}
}
