package report

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"llm-investment-advisor/internal/tradelog"
)

func appendTrade(t *testing.T, symbol, side string, qty int, price string) {
	t.Helper()
	err := tradelog.Append(tradelog.Event{
		Month:  "2020-01",
		Symbol: symbol,
		Side:   side,
		Qty:    qty,
		Price:  decimal.RequireFromString(price),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestWriteSummaryAggregatesBySymbol(t *testing.T) {
	t.Setenv("ADVISOR_LOG_DIR", t.TempDir())

	appendTrade(t, "Tesla", "BUY", 2, "100")
	appendTrade(t, "Tesla", "BUY", 2, "200")
	appendTrade(t, "Tesla", "SELL", 1, "300")
	appendTrade(t, "Apple", "BUY", 1, "310.50")

	path, err := WriteSummary()
	if err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 symbol rows, got %d rows", len(rows))
	}

	// Sorted by symbol: Apple before Tesla.
	apple, tesla := rows[1], rows[2]
	if apple[0] != "Apple" || apple[1] != "1" || apple[2] != "310.50" {
		t.Errorf("Unexpected Apple row %v", apple)
	}
	if tesla[0] != "Tesla" {
		t.Fatalf("Unexpected symbol order %v", tesla)
	}
	if tesla[1] != "4" || tesla[2] != "150.00" {
		t.Errorf("Unexpected Tesla buy aggregation %v", tesla)
	}
	if tesla[3] != "1" || tesla[4] != "300.00" {
		t.Errorf("Unexpected Tesla sell aggregation %v", tesla)
	}
	if tesla[7] != "-300.00" {
		t.Errorf("Unexpected Tesla net flow %v", tesla)
	}
}

func TestWriteSummaryNoTrades(t *testing.T) {
	t.Setenv("ADVISOR_LOG_DIR", t.TempDir())

	path, err := WriteSummary()
	if err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	if path != "" {
		t.Errorf("Expected no report without trades, got %q", path)
	}
}
