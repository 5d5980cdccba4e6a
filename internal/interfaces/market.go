package interfaces

import (
	"context"

	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/types"
)

// MarketData resolves a symbol and month to that month's price data.
type MarketData interface {
	MonthlyQuote(ctx context.Context, symbol string, m month.Month) (types.Quote, error)
}
