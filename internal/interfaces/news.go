package interfaces

import (
	"context"

	"llm-investment-advisor/internal/month"
)

// NewsProvider renders the month's company news and market data as the
// text digest fed to the advisor model.
type NewsProvider interface {
	MonthDigest(ctx context.Context, m month.Month) (string, error)
}
