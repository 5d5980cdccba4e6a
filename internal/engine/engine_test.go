package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"llm-investment-advisor/internal/ledger"
	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/store"
	"llm-investment-advisor/internal/types"
)

type memStore struct {
	data []byte
}

func (s *memStore) Exists() bool { return s.data != nil }

func (s *memStore) Load() (*ledger.State, error) {
	if s.data == nil {
		return nil, ledger.ErrStoreUnavailable
	}
	var state ledger.State
	if err := json.Unmarshal(s.data, &state); err != nil {
		return nil, ledger.ErrMalformedState
	}
	return &state, nil
}

func (s *memStore) Save(state *ledger.State) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.data = b
	return nil
}

type fakeMarket struct {
	prices map[string]string
}

func (m *fakeMarket) MonthlyQuote(ctx context.Context, symbol string, mo month.Month) (types.Quote, error) {
	p, ok := m.prices[symbol]
	if !ok {
		return types.Quote{}, fmt.Errorf("no price for %s", symbol)
	}
	return types.Quote{Price: decimal.RequireFromString(p)}, nil
}

type fakeNews struct {
	digest string
}

func (n *fakeNews) MonthDigest(ctx context.Context, m month.Month) (string, error) {
	return n.digest, nil
}

type fakeDecider struct {
	advice  types.Advice
	err     error
	lastReq types.AdviceRequest
}

func (d *fakeDecider) Advise(ctx context.Context, req types.AdviceRequest) (types.Advice, error) {
	d.lastReq = req
	return d.advice, d.err
}

func newTestEngine(t *testing.T, cash string, decider *fakeDecider) (*Engine, *ledger.Service) {
	t.Helper()
	t.Setenv("ADVISOR_LOG_DIR", t.TempDir())

	cfg := &store.Config{}
	cfg.Sim.Personality = "default value investor"

	led := ledger.NewService(&memStore{})
	if _, err := led.Initialize(context.Background(), decimal.RequireFromString(cash)); err != nil {
		t.Fatal(err)
	}

	market := &fakeMarket{prices: map[string]string{"Tesla": "100", "Apple": "300"}}
	return New(cfg, led, market, &fakeNews{digest: "digest for the month"}, decider), led
}

func TestAdviceForBuildsRequest(t *testing.T) {
	decider := &fakeDecider{}
	eng, _ := newTestEngine(t, "10000", decider)
	ctx := context.Background()
	m := month.MustParse("2020-01")

	if _, err := eng.ExecuteTrade(ctx, m, "Tesla", "BUY", 5); err != nil {
		t.Fatal(err)
	}

	if _, err := eng.AdviceFor(ctx, m, "bold speculator"); err != nil {
		t.Fatalf("AdviceFor failed: %v", err)
	}

	req := decider.lastReq
	if req.Month != "2020-01" {
		t.Errorf("Unexpected month %q", req.Month)
	}
	if req.Digest != "digest for the month" {
		t.Errorf("Unexpected digest %q", req.Digest)
	}
	if req.Personality != "bold speculator" {
		t.Errorf("Unexpected personality %q", req.Personality)
	}
	if !strings.Contains(req.Holdings, "Tesla: 5 shares") {
		t.Errorf("Holdings summary missing position:\n%s", req.Holdings)
	}
	if !strings.Contains(req.Holdings, "Current cash: $9500.00") {
		t.Errorf("Holdings summary missing cash:\n%s", req.Holdings)
	}
}

func TestAdviceForDefaultsPersonality(t *testing.T) {
	decider := &fakeDecider{}
	eng, _ := newTestEngine(t, "10000", decider)

	if _, err := eng.AdviceFor(context.Background(), month.MustParse("2020-01"), ""); err != nil {
		t.Fatal(err)
	}
	if decider.lastReq.Personality != "default value investor" {
		t.Errorf("Expected configured personality, got %q", decider.lastReq.Personality)
	}
}

func TestExecuteTradeFillsAtMonthlyPrice(t *testing.T) {
	eng, led := newTestEngine(t, "10000", &fakeDecider{})
	ctx := context.Background()

	result, err := eng.ExecuteTrade(ctx, month.MustParse("2020-01"), "Tesla", "buy", 3)
	if err != nil {
		t.Fatalf("ExecuteTrade failed: %v", err)
	}
	if result.Status != "FILLED" || result.Side != "BUY" {
		t.Errorf("Unexpected result %+v", result)
	}
	if !result.Price.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected fill at 100, got %s", result.Price)
	}

	view, err := led.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if view.Holdings["Tesla"] != 3 {
		t.Errorf("Expected 3 Tesla shares, got %d", view.Holdings["Tesla"])
	}
	if !view.Cash.Equal(decimal.NewFromInt(9700)) {
		t.Errorf("Expected cash 9700, got %s", view.Cash)
	}
}

func TestExecuteTradeRejectionKeepsLedger(t *testing.T) {
	eng, led := newTestEngine(t, "100", &fakeDecider{})
	ctx := context.Background()

	result, err := eng.ExecuteTrade(ctx, month.MustParse("2020-01"), "Apple", "BUY", 1)
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
	}
	if result.Status != "REJECTED" || result.Reason == "" {
		t.Errorf("Unexpected result %+v", result)
	}

	view, err := led.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !view.Cash.Equal(decimal.NewFromInt(100)) || len(view.Holdings) != 0 {
		t.Errorf("Ledger changed after rejection: %+v", view)
	}
}

func TestExecuteTradeUnknownSide(t *testing.T) {
	eng, _ := newTestEngine(t, "10000", &fakeDecider{})

	if _, err := eng.ExecuteTrade(context.Background(), month.MustParse("2020-01"), "Tesla", "SHORT", 1); err == nil {
		t.Error("Expected error for unknown side")
	}
}

func TestStepExecutesRecommendations(t *testing.T) {
	decider := &fakeDecider{advice: types.Advice{Recommendations: []types.Recommendation{
		{Company: "Tesla", Action: "BUY", SharesToTransact: 2, Confidence: "high"},
		{Company: "Apple", Action: "HOLD", SharesToTransact: 0},
		{Company: "Apple", Action: "SELL", SharesToTransact: 1},
	}}}
	eng, led := newTestEngine(t, "10000", decider)
	ctx := context.Background()

	result, err := eng.Step(ctx, month.MustParse("2020-01"))
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	// HOLD is skipped; the impossible Apple sell is recorded as rejected
	// without aborting the step.
	if len(result.Trades) != 2 {
		t.Fatalf("Expected 2 trades, got %+v", result.Trades)
	}
	if result.Trades[0].Status != "FILLED" {
		t.Errorf("Expected Tesla buy filled, got %+v", result.Trades[0])
	}
	if result.Trades[1].Status != "REJECTED" {
		t.Errorf("Expected Apple sell rejected, got %+v", result.Trades[1])
	}

	view, err := led.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if view.Holdings["Tesla"] != 2 {
		t.Errorf("Expected 2 Tesla shares, got %d", view.Holdings["Tesla"])
	}
}

func TestStepFailsWhenAdviceFails(t *testing.T) {
	decider := &fakeDecider{err: errors.New("model unavailable")}
	eng, _ := newTestEngine(t, "10000", decider)

	if _, err := eng.Step(context.Background(), month.MustParse("2020-01")); err == nil {
		t.Error("Expected error when advice fails")
	}
}

func TestFormatHoldingsEmptyPortfolio(t *testing.T) {
	view := ledger.SnapshotView{
		Cash:       decimal.NewFromInt(10000),
		TotalValue: decimal.NewFromInt(10000),
		Holdings:   map[string]int{},
	}
	got := FormatHoldings(view)
	want := "Current cash: $10000.00\nTotal portfolio value: $10000.00\nCurrent Holdings:"
	if got != want {
		t.Errorf("FormatHoldings = %q, want %q", got, want)
	}
}
