// Command backtest replays recorded prices through the decision loop.
// Each product maps to a CSV file of prices; rows are consumed in lockstep
// and the shortest file ends the run. Results print as a table and can be
// persisted to SQLite for comparing parameter sweeps.
//
// Usage:
//
//	go run ./cmd/backtest -config configs/config.yaml \
//	    -products PEARLS:data/pearls.csv,BERRIES:data/berries.csv \
//	    -db results.db -label baseline
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"tick-engine-go/config"
	"tick-engine-go/internal/results"
	"tick-engine-go/sim"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "config file path")
	productFiles := flag.String("products", "", "product:csv list, comma separated")
	dbPath := flag.String("db", "", "optional SQLite file for run persistence")
	label := flag.String("label", "backtest", "label stored with the run")
	seed := flag.Int64("seed", 1, "random seed for book size jitter")
	flag.Parse()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	series, err := loadSeries(*productFiles)
	if err != nil {
		log.Fatal(err)
	}
	if len(series) == 0 {
		log.Fatal("no product:csv pairs given")
	}

	runner, err := sim.BuildRunner(cfg, *seed, nil)
	if err != nil {
		log.Fatalf("build runner: %v", err)
	}

	rounds := minLen(series)
	start := time.Now()
	for i := 0; i < rounds; i++ {
		mids := make(map[string]float64, len(series))
		for product, prices := range series {
			mids[product] = prices[i]
		}
		runner.FeedPrices(mids)
	}
	elapsed := time.Since(start)

	sum := runner.Analyzer.Summary()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Rounds", "Orders", "Buys", "Sells", "Conversions", "Filled", "PnL", "Elapsed")
	table.Append(
		strconv.Itoa(sum.Rounds),
		strconv.Itoa(sum.OrdersEmitted),
		strconv.Itoa(sum.BuyOrders),
		strconv.Itoa(sum.SellOrders),
		strconv.Itoa(sum.Conversions),
		strconv.Itoa(sum.FilledQty),
		fmt.Sprintf("%.2f", sum.RealizedPnL),
		elapsed.Round(time.Millisecond).String(),
	)
	table.Render()

	posTable := tablewriter.NewWriter(os.Stdout)
	posTable.Header("Product", "Position", "Limit")
	for product, pos := range runner.Inv.Positions() {
		posTable.Append(product, strconv.Itoa(pos), strconv.Itoa(runner.Engine.Limits()[product]))
	}
	posTable.Render()

	if *dbPath != "" {
		store, err := results.Open(*dbPath)
		if err != nil {
			log.Fatalf("open results db: %v", err)
		}
		defer store.Close()
		if _, err := store.SaveRun(*label, sum); err != nil {
			log.Fatalf("save run: %v", err)
		}
		fmt.Printf("run %q saved to %s\n", *label, *dbPath)
	}
}

// loadSeries parses "PRODUCT:file,PRODUCT:file" and loads each file's
// price column (single-column files work too).
func loadSeries(arg string) (map[string][]float64, error) {
	out := make(map[string][]float64)
	if strings.TrimSpace(arg) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(arg, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		product, path, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("bad product:csv pair %q", pair)
		}
		prices, err := loadPrices(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		if len(prices) == 0 {
			return nil, fmt.Errorf("%s holds no prices", path)
		}
		out[strings.ToUpper(strings.TrimSpace(product))] = prices
	}
	return out, nil
}

func loadPrices(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	priceCol := 0
	var prices []float64
	for row := 0; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if row == 0 {
			if col, ok := findPriceColumn(rec); ok {
				priceCol = col
				continue // header row
			}
		}
		if priceCol >= len(rec) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[priceCol]), 64)
		if err != nil {
			continue
		}
		prices = append(prices, v)
	}
	return prices, nil
}

func findPriceColumn(header []string) (int, bool) {
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "price", "mid", "mid_price":
			return i, true
		}
	}
	return 0, false
}

func minLen(series map[string][]float64) int {
	n := -1
	for _, prices := range series {
		if n == -1 || len(prices) < n {
			n = len(prices)
		}
	}
	if n < 0 {
		return 0
	}
	return n
}
