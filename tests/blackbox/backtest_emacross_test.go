//go:build blackbox

package blackbox

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestBacktestEmaCross_ProducesTrades(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "quant.sqlite")
	barsPath := filepath.Join(dir, "bars.csv")

	// Phase 1: flat, phase 2: decline, phase 3: recovery. The recovery
	// produces one golden cross once the averages are ready.
	writeBarsCSV(t, barsPath, 200, func(i int) float64 {
		switch {
		case i < 80:
			return 100
		case i < 140:
			return 100 - float64(i-80)*0.25
		default:
			return 85 + float64(i-140)*0.30
		}
	})

	out := run(t,
		"backtest",
		"--bars", barsPath,
		"--strategy", "ema-cross",
		"--instrument", "VOO",
		"--fast", "10",
		"--slow", "30",
		"--capital", "100000",
		"--db", dbPath,
	)

	if !contains(out, "Backtest Result") {
		t.Fatalf("expected result banner in output, got:\n%s", out)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM trades`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n < 1 {
		t.Fatalf("expected >= 1 trade, got %d", n)
	}

	if err := db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 recorded run, got %d", n)
	}
}

func TestBacktestListedInRuns(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "quant.sqlite")
	barsPath := filepath.Join(dir, "bars.csv")

	writeBarsCSV(t, barsPath, 120, func(i int) float64 {
		if i < 60 {
			return 100 - float64(i)*0.2
		}
		return 88 + float64(i-60)*0.3
	})

	run(t,
		"backtest",
		"--bars", barsPath,
		"--strategy", "ema-cross",
		"--fast", "5",
		"--slow", "20",
		"--db", dbPath,
	)

	out := run(t, "runs", "--db", dbPath)
	if !contains(out, "ema-cross") {
		t.Fatalf("expected run listing to name the strategy, got:\n%s", out)
	}
}
