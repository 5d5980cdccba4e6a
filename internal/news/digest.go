// Package news renders the month's company news and market data as the
// text digest the advisor model reads. The primary provider formats the
// local catalog; a live provider swaps in scraped headlines.
package news

import (
	"context"
	"fmt"
	"strings"

	"llm-investment-advisor/internal/catalog"
	"llm-investment-advisor/internal/interfaces"
	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/types"
)

// CatalogDigest renders the digest straight from the data file.
type CatalogDigest struct {
	cat *catalog.Catalog
}

var _ interfaces.NewsProvider = (*CatalogDigest)(nil)

func NewCatalogDigest(cat *catalog.Catalog) *CatalogDigest {
	return &CatalogDigest{cat: cat}
}

func (d *CatalogDigest) MonthDigest(ctx context.Context, m month.Month) (string, error) {
	entries, ok := d.cat.Month(m)
	if !ok {
		return fmt.Sprintf("No data found for %s.", m), nil
	}

	companies := d.cat.Companies(m)
	sections := make([]companySection, 0, len(companies))
	for _, name := range companies {
		e := entries[name]
		sections = append(sections, companySection{
			Company: name,
			Quote:   e.Stock,
			News:    e.News,
		})
	}
	return formatDigest(m, sections), nil
}

type companySection struct {
	Company string
	Quote   types.Quote
	News    []types.NewsArticle
}

// formatDigest writes the company blocks in the exact layout the advice
// prompt documents as its input format.
func formatDigest(m month.Month, sections []companySection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company News and Stock Information for %s:\n\n", m)

	for _, sec := range sections {
		fmt.Fprintf(&b, "Company: %s\n", sec.Company)
		b.WriteString("Stock Information:\n")
		fmt.Fprintf(&b, "  Price: $%s\n", sec.Quote.Price)
		fmt.Fprintf(&b, "  Change: %.2f%%\n", sec.Quote.Change)
		fmt.Fprintf(&b, "  Volume: %d\n", sec.Quote.Volume)

		b.WriteString("News:\n")
		if len(sec.News) == 0 {
			b.WriteString("  No news available.\n")
		} else {
			for _, item := range sec.News {
				fmt.Fprintf(&b, "  - %s\n", item.Title)
				fmt.Fprintf(&b, "    Date: %s\n", item.Date)
			}
		}
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}
