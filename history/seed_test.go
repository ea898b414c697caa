package history

import (
	"os"
	"path/filepath"
	"testing"

	"tick-engine-go/logs"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadSeeds(t *testing.T) {
	dir := t.TempDir()
	day1 := writeCSV(t, dir, "day1.csv", "product,price\nPEARLS,100\nPEARLS,101\nBERRIES,50\n")
	day2 := writeCSV(t, dir, "day2.csv", "product,price\nBERRIES,52\nPEARLS,102\n")

	seeds, results := LoadSeeds([]string{day1, day2}, []string{"PEARLS", "BERRIES"}, logs.Nop{})

	// First price per product per file, files in order.
	if got := seeds["PEARLS"]; len(got) != 2 || got[0] != 100 || got[1] != 102 {
		t.Fatalf("PEARLS seeds: %v", got)
	}
	if got := seeds["BERRIES"]; len(got) != 2 || got[0] != 50 || got[1] != 52 {
		t.Fatalf("BERRIES seeds: %v", got)
	}
	for _, r := range results {
		if r.Skipped() {
			t.Fatalf("file %s unexpectedly skipped: %s", r.File, r.SkipReason)
		}
	}
}

func TestLoadSeedsSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeCSV(t, dir, "good.csv", "product,price\nPEARLS,100\n")
	noCols := writeCSV(t, dir, "nocols.csv", "symbol,px\nPEARLS,100\n")
	missing := filepath.Join(dir, "does-not-exist.csv")

	seeds, results := LoadSeeds([]string{missing, noCols, good}, []string{"PEARLS"}, logs.Nop{})

	if got := seeds["PEARLS"]; len(got) != 1 || got[0] != 100 {
		t.Fatalf("expected the good file to contribute, got %v", got)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Skipped() || !results[1].Skipped() || results[2].Skipped() {
		t.Fatalf("unexpected skip pattern: %+v", results)
	}
}

func TestLoadSeedsIgnoresUnknownProducts(t *testing.T) {
	dir := t.TempDir()
	file := writeCSV(t, dir, "mixed.csv", "product,price\nGHOST,1\nPEARLS,100\n")

	seeds, _ := LoadSeeds([]string{file}, []string{"PEARLS"}, logs.Nop{})
	if len(seeds) != 1 || seeds["PEARLS"][0] != 100 {
		t.Fatalf("unexpected seeds: %v", seeds)
	}
}
