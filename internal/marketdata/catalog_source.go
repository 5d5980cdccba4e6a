package marketdata

import (
	"context"
	"fmt"

	"llm-investment-advisor/internal/catalog"
	"llm-investment-advisor/internal/interfaces"
	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/types"
)

// CatalogSource serves quotes straight from the loaded data file.
type CatalogSource struct {
	cat *catalog.Catalog
}

var _ interfaces.MarketData = (*CatalogSource)(nil)

func NewCatalogSource(cat *catalog.Catalog) *CatalogSource {
	return &CatalogSource{cat: cat}
}

func (s *CatalogSource) MonthlyQuote(ctx context.Context, symbol string, m month.Month) (types.Quote, error) {
	q, ok := s.cat.Quote(symbol, m)
	if !ok {
		return types.Quote{}, fmt.Errorf("%s in %s: %w", symbol, m, ErrNoData)
	}
	return q, nil
}
