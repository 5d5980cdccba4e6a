// Package engine drives the monthly simulation: it assembles the
// advice request for the model and executes trades against the ledger
// at catalog prices.
package engine

import (
	"context"
	"fmt"
	"strings"

	"llm-investment-advisor/internal/interfaces"
	"llm-investment-advisor/internal/ledger"
	"llm-investment-advisor/internal/logger"
	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/store"
	"llm-investment-advisor/internal/tradelog"
	"llm-investment-advisor/internal/types"
)

type Engine struct {
	cfg    *store.Config
	ledger *ledger.Service
	market interfaces.MarketData
	news   interfaces.NewsProvider
	llm    interfaces.Decider
}

var _ interfaces.Engine = (*Engine)(nil)

func New(cfg *store.Config, led *ledger.Service, market interfaces.MarketData, news interfaces.NewsProvider, d interfaces.Decider) *Engine {
	return &Engine{cfg: cfg, ledger: led, market: market, news: news, llm: d}
}

// AdviceFor builds the month's digest and holdings summary and asks the
// decider for recommendations. An empty personality falls back to the
// configured one.
func (e *Engine) AdviceFor(ctx context.Context, m month.Month, personality string) (types.Advice, error) {
	digest, err := e.news.MonthDigest(ctx, m)
	if err != nil {
		return types.Advice{}, err
	}

	view, err := e.ledger.Snapshot(ctx)
	if err != nil {
		return types.Advice{}, err
	}

	if personality == "" {
		personality = e.cfg.Sim.Personality
	}

	return e.llm.Advise(ctx, types.AdviceRequest{
		Month:       m.String(),
		Digest:      digest,
		Holdings:    FormatHoldings(view),
		Personality: personality,
	})
}

// ExecuteTrade prices the symbol for the month and applies the trade to
// the ledger. Rejections come back as a REJECTED result alongside the
// error so callers can surface both.
func (e *Engine) ExecuteTrade(ctx context.Context, m month.Month, symbol, side string, qty int) (types.TradeResult, error) {
	side = strings.ToUpper(strings.TrimSpace(side))
	if side != "BUY" && side != "SELL" {
		return types.TradeResult{}, fmt.Errorf("unknown trade side %q", side)
	}

	quote, err := e.market.MonthlyQuote(ctx, symbol, m)
	if err != nil {
		return types.TradeResult{}, err
	}

	result := types.TradeResult{
		Symbol: symbol,
		Side:   side,
		Qty:    qty,
		Price:  quote.Price,
	}

	var state *ledger.State
	if side == "BUY" {
		state, err = e.ledger.Buy(ctx, symbol, qty, quote.Price, m.String())
	} else {
		state, err = e.ledger.Sell(ctx, symbol, qty, quote.Price, m.String())
	}
	if err != nil {
		result.Status = "REJECTED"
		result.Reason = err.Error()
		return result, err
	}

	result.Status = "FILLED"
	if err := tradelog.Append(tradelog.Event{
		Month:      m.String(),
		Symbol:     symbol,
		Side:       side,
		Qty:        qty,
		Price:      quote.Price,
		Cash:       state.Cash,
		TotalValue: state.TotalValue,
	}); err != nil {
		logger.Warn(ctx, "Trade log append failed", "symbol", symbol, "error", err)
	}
	return result, nil
}

// Step runs one autopilot month: get advice, then execute every BUY or
// SELL recommendation. A rejected trade is recorded and the step keeps
// going; one bad recommendation must not sink the month.
func (e *Engine) Step(ctx context.Context, m month.Month) (*types.StepResult, error) {
	advice, err := e.AdviceFor(ctx, m, "")
	if err != nil {
		return nil, err
	}

	result := &types.StepResult{Month: m.String(), Advice: advice}
	for _, rec := range advice.Recommendations {
		if rec.Action == "HOLD" || rec.SharesToTransact == 0 {
			continue
		}
		trade, err := e.ExecuteTrade(ctx, m, rec.Company, rec.Action, rec.SharesToTransact)
		if err != nil {
			logger.Warn(ctx, "Recommendation not executed",
				"symbol", rec.Company,
				"action", rec.Action,
				"qty", rec.SharesToTransact,
				"error", err,
			)
			if trade.Symbol == "" {
				trade = types.TradeResult{
					Symbol: rec.Company,
					Side:   rec.Action,
					Qty:    rec.SharesToTransact,
					Status: "REJECTED",
					Reason: err.Error(),
				}
			}
		}
		result.Trades = append(result.Trades, trade)
	}
	return result, nil
}

// FormatHoldings renders the portfolio summary shown to the model and
// the CLI user.
func FormatHoldings(view ledger.SnapshotView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current cash: $%s\n", view.Cash.StringFixed(2))
	fmt.Fprintf(&b, "Total portfolio value: $%s\n", view.TotalValue.StringFixed(2))
	b.WriteString("Current Holdings:\n")
	for _, symbol := range view.Symbols() {
		fmt.Fprintf(&b, "%s: %d shares\n", symbol, view.Holdings[symbol])
	}
	return strings.TrimSpace(b.String())
}
