package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"llm-investment-advisor/internal/api"
	"llm-investment-advisor/internal/interfaces"
	"llm-investment-advisor/internal/logger"
	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/types"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooSource aggregates a month of daily candles from the Yahoo Finance
// chart API into a single monthly quote: closing price, percent change
// over the month and total volume.
type YahooSource struct {
	client *api.Client
}

var _ interfaces.MarketData = (*YahooSource)(nil)

func NewYahooSource() *YahooSource {
	return &YahooSource{
		client: api.NewClient(
			api.WithBaseURL(yahooBaseURL),
			api.WithTimeout(30*time.Second),
			api.WithHeader("User-Agent", "Mozilla/5.0 (compatible; investment-advisor)"),
		),
	}
}

// NewYahooSourceWithClient is used by tests to point at a fake endpoint.
func NewYahooSourceWithClient(client *api.Client) *YahooSource {
	return &YahooSource{client: client}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

func (s *YahooSource) MonthlyQuote(ctx context.Context, symbol string, m month.Month) (types.Quote, error) {
	start := time.Date(m.Year, time.Month(m.Mon), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(m.Next().Year, time.Month(m.Next().Mon), 1, 0, 0, 0, 0, time.UTC)

	path := fmt.Sprintf("/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		url.PathEscape(symbol), start.Unix(), end.Unix())

	var resp chartResponse
	if err := s.client.GetJSON(ctx, path, &resp); err != nil {
		return types.Quote{}, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return types.Quote{}, fmt.Errorf("%s in %s: %w", symbol, m, ErrNoData)
	}

	q := resp.Chart.Result[0].Indicators.Quote[0]

	var firstOpen, lastClose float64
	var haveOpen, haveClose bool
	var volume int64
	for i := range q.Close {
		if i < len(q.Open) && q.Open[i] != nil && !haveOpen {
			firstOpen = *q.Open[i]
			haveOpen = true
		}
		if q.Close[i] != nil {
			lastClose = *q.Close[i]
			haveClose = true
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			volume += *q.Volume[i]
		}
	}
	if !haveClose {
		return types.Quote{}, fmt.Errorf("%s in %s: %w", symbol, m, ErrNoData)
	}

	var change float64
	if haveOpen && firstOpen != 0 {
		change = (lastClose - firstOpen) / firstOpen * 100
	}

	logger.Debug(ctx, "Yahoo monthly quote",
		"symbol", symbol, "month", m.String(), "close", lastClose, "change", change)

	return types.Quote{
		Price:  decimal.NewFromFloat(lastClose).Round(2),
		Change: change,
		Volume: volume,
	}, nil
}
