// Package report rolls the trade log up into a per-symbol CSV summary
// of the whole simulation run.
package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"llm-investment-advisor/internal/tradelog"
)

type aggRow struct {
	Symbol    string
	BuyQty    int
	BuyValue  decimal.Decimal
	SellQty   int
	SellValue decimal.Decimal
}

func reportDir() string {
	if v := os.Getenv("ADVISOR_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func csvPath() string {
	return filepath.Join(reportDir(), "summary.csv")
}

// WriteSummary aggregates the full trade log by symbol and writes the
// CSV report. Returns ("", nil) when no trades were ever logged.
func WriteSummary() (string, error) {
	events, err := tradelog.Events()
	if err != nil {
		return "", err
	}
	if len(events) == 0 {
		return "", nil
	}

	aggs := map[string]*aggRow{}
	for _, e := range events {
		row := aggs[e.Symbol]
		if row == nil {
			row = &aggRow{Symbol: e.Symbol}
			aggs[e.Symbol] = row
		}
		value := e.Price.Mul(decimal.NewFromInt(int64(e.Qty)))
		switch e.Side {
		case "BUY":
			row.BuyQty += e.Qty
			row.BuyValue = row.BuyValue.Add(value)
		case "SELL":
			row.SellQty += e.Qty
			row.SellValue = row.SellValue.Add(value)
		}
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := csvPath()
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()

	headers := []string{"symbol", "buy_qty", "buy_avg", "sell_qty", "sell_avg", "gross_buy_value", "gross_sell_value", "net_flow"}
	if err := w.Write(headers); err != nil {
		return "", err
	}
	for _, k := range keys {
		row := aggs[k]
		if err := w.Write([]string{
			row.Symbol,
			strconv.Itoa(row.BuyQty),
			avg(row.BuyValue, row.BuyQty),
			strconv.Itoa(row.SellQty),
			avg(row.SellValue, row.SellQty),
			row.BuyValue.StringFixed(2),
			row.SellValue.StringFixed(2),
			row.SellValue.Sub(row.BuyValue).StringFixed(2),
		}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return outPath, nil
}

func avg(value decimal.Decimal, qty int) string {
	if qty == 0 {
		return "0.00"
	}
	return value.Div(decimal.NewFromInt(int64(qty))).StringFixed(2)
}
