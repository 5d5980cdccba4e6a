package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"llm-investment-advisor/internal/api"
	"llm-investment-advisor/internal/catalog"
	"llm-investment-advisor/internal/month"
)

func TestCatalogSource(t *testing.T) {
	p := filepath.Join(t.TempDir(), "company_data.json")
	doc := `{"2020-01": {"Tesla": {"stock": {"price": 1000, "change": 5, "volume": 100}, "news": []}}}`
	if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := catalog.Load(p)
	if err != nil {
		t.Fatal(err)
	}

	src := NewCatalogSource(cat)
	q, err := src.MonthlyQuote(context.Background(), "Tesla", month.MustParse("2020-01"))
	if err != nil {
		t.Fatalf("MonthlyQuote failed: %v", err)
	}
	if q.Price.String() != "1000" {
		t.Errorf("Expected price 1000, got %s", q.Price)
	}

	_, err = src.MonthlyQuote(context.Background(), "Tesla", month.MustParse("2020-02"))
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("Expected ErrNoData, got %v", err)
	}
}

func TestYahooSourceAggregatesMonth(t *testing.T) {
	body := `{"chart": {"result": [{
        "timestamp": [1577836800, 1577923200, 1578009600],
        "indicators": {"quote": [{
            "open":   [100.0, null, 104.0],
            "close":  [102.0, 103.0, 110.0],
            "volume": [1000, null, 2000]
        }]}
    }], "error": null}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/TSLA" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("Expected daily interval, got %s", r.URL.Query().Get("interval"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	src := NewYahooSourceWithClient(api.NewClient(
		api.WithBaseURL(srv.URL),
		api.WithTimeout(5*time.Second),
	))

	q, err := src.MonthlyQuote(context.Background(), "TSLA", month.MustParse("2020-01"))
	if err != nil {
		t.Fatalf("MonthlyQuote failed: %v", err)
	}
	if q.Price.String() != "110" {
		t.Errorf("Expected last close 110, got %s", q.Price)
	}
	if q.Volume != 3000 {
		t.Errorf("Expected summed volume 3000, got %d", q.Volume)
	}
	// (110 - 100) / 100 * 100
	if q.Change < 9.99 || q.Change > 10.01 {
		t.Errorf("Expected ~10%% change, got %f", q.Change)
	}
}

func TestYahooSourceEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart": {"result": [], "error": null}}`))
	}))
	defer srv.Close()

	src := NewYahooSourceWithClient(api.NewClient(api.WithBaseURL(srv.URL)))
	_, err := src.MonthlyQuote(context.Background(), "NOPE", month.MustParse("2020-01"))
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("Expected ErrNoData, got %v", err)
	}
}
