// Package marketdata resolves symbol+month to that month's price data,
// either from the local catalog or from Yahoo Finance.
package marketdata

import (
	"errors"

	"llm-investment-advisor/internal/catalog"
	"llm-investment-advisor/internal/interfaces"
	"llm-investment-advisor/internal/store"
)

// ErrNoData means the source has no price data for that symbol+month.
var ErrNoData = errors.New("no market data")

// New selects the market data source from config.
func New(cfg *store.Config, cat *catalog.Catalog) interfaces.MarketData {
	if cfg.Data.MarketSource == "LIVE" {
		return NewYahooSource()
	}
	return NewCatalogSource(cat)
}
