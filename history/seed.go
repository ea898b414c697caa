// Package history seeds initial price windows from historical tabular
// files at construction time. Ingestion is best effort: a missing or
// malformed file is reported and skipped, never fatal.
package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"tick-engine-go/logs"
)

// Result reports the outcome of loading one seed file.
type Result struct {
	File string
	// Loaded maps product to the first price found in this file.
	Loaded map[string]float64
	// SkipReason is non-empty when the file contributed nothing.
	SkipReason string
}

// Skipped reports whether the file was discarded.
func (r Result) Skipped() bool { return r.SkipReason != "" }

// LoadSeeds reads files in order and builds one initial price sequence per
// requested product: the first matching price per product per file, files
// oldest to newest. Each file's outcome is returned alongside the seeds.
func LoadSeeds(files []string, products []string, log logs.Logger) (map[string][]float64, []Result) {
	log = logs.OrDefault(log)
	seeds := make(map[string][]float64, len(products))
	results := make([]Result, 0, len(files))

	for _, file := range files {
		res := loadFile(file, products)
		if res.Skipped() {
			log.Warn("skipping seed file", "file", file, "reason", res.SkipReason)
		} else {
			for product, price := range res.Loaded {
				seeds[product] = append(seeds[product], price)
			}
		}
		results = append(results, res)
	}
	return seeds, results
}

func loadFile(file string, products []string) Result {
	res := Result{File: file}

	f, err := os.Open(file)
	if err != nil {
		res.SkipReason = fmt.Sprintf("open: %v", err)
		return res
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		res.SkipReason = fmt.Sprintf("parse: %v", err)
		return res
	}
	if len(rows) < 2 {
		res.SkipReason = "no data rows"
		return res
	}

	productCol, priceCol := -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "product":
			productCol = i
		case "price":
			priceCol = i
		}
	}
	if productCol < 0 || priceCol < 0 {
		res.SkipReason = "missing product/price columns"
		return res
	}

	wanted := make(map[string]bool, len(products))
	for _, p := range products {
		wanted[p] = true
	}

	res.Loaded = make(map[string]float64)
	for _, row := range rows[1:] {
		if len(row) <= productCol || len(row) <= priceCol {
			continue
		}
		product := strings.TrimSpace(row[productCol])
		if !wanted[product] {
			continue
		}
		if _, seen := res.Loaded[product]; seen {
			continue // first price per product per file
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[priceCol]), 64)
		if err != nil {
			continue
		}
		res.Loaded[product] = price
	}
	if len(res.Loaded) == 0 {
		res.SkipReason = "no matching products"
	}
	return res
}
