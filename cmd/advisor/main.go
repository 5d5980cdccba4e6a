package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"llm-investment-advisor/internal/catalog"
	"llm-investment-advisor/internal/engine"
	"llm-investment-advisor/internal/interfaces"
	"llm-investment-advisor/internal/ledger"
	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/report"
	"llm-investment-advisor/internal/store"
	"llm-investment-advisor/internal/trace"
)

func main() {
	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer trace.Shutdown(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}

	cat, err := catalog.Load(cfg.Data.CatalogFile)
	if err != nil {
		log.Fatal(err)
	}

	led, err := initializeLedger(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	decider := initializeDecider(ctx, cfg)
	eng := initializeEngine(ctx, cfg, led, cat, decider)

	runMenu(ctx, cfg, cat, led, eng)
}

func runMenu(ctx context.Context, cfg *store.Config, cat *catalog.Catalog, led *ledger.Service, eng interfaces.Engine) {
	in := bufio.NewScanner(os.Stdin)
	current := cfg.StartMonth()

	for {
		fmt.Println("\n--- Investment Advisor Menu ---")
		fmt.Printf("Current Date: %s\n", current)
		fmt.Println("\n1. Get investment advice for a month")
		fmt.Println("2. Execute trade")
		fmt.Println("3. View current holdings")
		fmt.Println("4. View monthly price data for all companies")
		fmt.Println("5. Update to next month")
		fmt.Println("6. Exit")

		choice, eof := readLine(in, "Select an option: ")
		if eof {
			writeReport()
			return
		}

		switch choice {
		case "1":
			showAdvice(ctx, eng, current)
		case "2":
			executeTrade(ctx, in, eng, current)
		case "3":
			showHoldings(ctx, led)
		case "4":
			showPrices(cat, current)
		case "5":
			current = current.Next()
			fmt.Printf("Updated date to %s\n", current)
			if !current.Before(cfg.EndMonth()) {
				fmt.Println("You have reached the end of the simulation period.")
				writeReport()
				return
			}
		case "6":
			writeReport()
			return
		default:
			fmt.Println("Invalid choice")
		}
	}
}

func showAdvice(ctx context.Context, eng interfaces.Engine, m month.Month) {
	advice, err := eng.AdviceFor(ctx, m, "")
	if err != nil {
		fmt.Printf("Error processing recommendations: %v\n", err)
		return
	}

	fmt.Println("\nInvestment Recommendations:")
	if len(advice.Recommendations) == 0 {
		fmt.Println("No recommendations this month.")
		return
	}
	for _, rec := range advice.Recommendations {
		fmt.Printf("%s: %s %d shares\n", rec.Company, rec.Action, rec.SharesToTransact)
		fmt.Printf("Reason: %s\n", rec.Reason)
		fmt.Printf("Confidence: %s\n\n", rec.Confidence)
	}
}

func executeTrade(ctx context.Context, in *bufio.Scanner, eng interfaces.Engine, m month.Month) {
	symbol, eof := readLine(in, "Enter stock symbol: ")
	if eof {
		return
	}
	side, eof := readLine(in, "Buy or Sell? ")
	if eof {
		return
	}
	qtyStr, eof := readLine(in, "Number of shares: ")
	if eof {
		return
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		fmt.Println("Invalid share count")
		return
	}

	result, err := eng.ExecuteTrade(ctx, m, symbol, side, qty)
	if err != nil {
		fmt.Printf("Error executing trade: %v\n", err)
		return
	}

	verb := "Bought"
	if result.Side == "SELL" {
		verb = "Sold"
	}
	fmt.Printf("%s %d shares of %s at $%s\n", verb, result.Qty, result.Symbol, result.Price.StringFixed(2))
}

func showHoldings(ctx context.Context, led *ledger.Service) {
	view, err := led.Snapshot(ctx)
	if err != nil {
		fmt.Printf("Error loading holdings: %v\n", err)
		return
	}
	fmt.Println("\nCurrent Portfolio:")
	fmt.Println(engine.FormatHoldings(view))
}

func showPrices(cat *catalog.Catalog, m month.Month) {
	entries, ok := cat.Month(m)
	if !ok {
		fmt.Printf("No data found for %s\n", m)
		return
	}

	fmt.Printf("\nMonthly Price Data for %s:\n", m)
	for _, company := range cat.Companies(m) {
		q := entries[company].Stock
		fmt.Printf("%s:\n  price: $%s\n  change: %v\n  volume: %d\n", company, q.Price, q.Change, q.Volume)
	}
}

func writeReport() {
	path, err := report.WriteSummary()
	if err != nil {
		fmt.Printf("Error writing trade summary: %v\n", err)
		return
	}
	if path != "" {
		fmt.Printf("Trade summary written to %s\n", path)
	}
}

func readLine(in *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !in.Scan() {
		if err := in.Err(); err != nil {
			fmt.Printf("Input error: %v\n", err)
		}
		return "", true
	}
	return strings.TrimSpace(in.Text()), false
}
