package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"llm-investment-advisor/internal/logger"
	"llm-investment-advisor/internal/types"
)

// Scraper fetches current headlines for a symbol from public finance
// sites. It only supplements the catalog in LIVE mode; catalog-driven
// simulations never touch the network.
type Scraper struct {
	sources []Source
	timeout time.Duration
}

// Source defines one site to scrape.
type Source struct {
	Name       string
	BaseURL    string
	SearchPath string // "{symbol}" is replaced with the query symbol
	Selectors  ArticleSelectors
	RateLimit  time.Duration
}

// ArticleSelectors are the CSS selectors for extracting article data.
type ArticleSelectors struct {
	ArticleContainer string
	Title            string
	URL              string
	PublishedAt      string
}

// NewScraper creates a scraper with the default source list.
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: defaultSources(),
		timeout: timeout,
	}
}

func defaultSources() []Source {
	return []Source{
		{
			Name:       "YahooFinance",
			BaseURL:    "https://finance.yahoo.com",
			SearchPath: "/quote/{symbol}/news",
			Selectors: ArticleSelectors{
				ArticleContainer: "li.stream-item",
				Title:            "h3",
				URL:              "a",
				PublishedAt:      "div.publishing",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:       "MarketWatch",
			BaseURL:    "https://www.marketwatch.com",
			SearchPath: "/investing/stock/{symbol}",
			Selectors: ArticleSelectors{
				ArticleContainer: "div.article__content",
				Title:            "a.link",
				URL:              "a.link",
				PublishedAt:      "span.article__timestamp",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// Scrape fetches up to maxArticles headlines for the symbol across all
// sources. Per-source failures are logged and skipped.
func (s *Scraper) Scrape(ctx context.Context, symbol string, maxArticles int) ([]types.NewsArticle, error) {
	logger.Debug(ctx, "Scraping headlines", "symbol", symbol, "sources", len(s.sources))

	perSource := maxArticles / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	var all []types.NewsArticle
	for _, src := range s.sources {
		articles, err := s.scrapeSource(ctx, src, symbol, perSource)
		if err != nil {
			logger.Warn(ctx, "Source scrape failed", "source", src.Name, "symbol", symbol, "error", err)
			continue
		}
		all = append(all, articles...)
		if len(all) >= maxArticles {
			all = all[:maxArticles]
			break
		}
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no headlines found for %s", symbol)
	}
	return all, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, src Source, symbol string, limit int) ([]types.NewsArticle, error) {
	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (compatible; investment-advisor)"),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Delay: src.RateLimit})

	var articles []types.NewsArticle
	var scrapeErr error

	c.OnHTML(src.Selectors.ArticleContainer, func(e *colly.HTMLElement) {
		if len(articles) >= limit {
			return
		}
		title := cleanText(e.DOM.Find(src.Selectors.Title))
		if title == "" {
			return
		}
		href, _ := e.DOM.Find(src.Selectors.URL).Attr("href")
		articles = append(articles, types.NewsArticle{
			Title:  title,
			Date:   cleanText(e.DOM.Find(src.Selectors.PublishedAt)),
			Source: src.Name,
			URL:    e.Request.AbsoluteURL(href),
		})
	})
	c.OnError(func(_ *colly.Response, err error) {
		scrapeErr = err
	})

	target := src.BaseURL + strings.ReplaceAll(src.SearchPath, "{symbol}", url.PathEscape(symbol))
	if err := c.Visit(target); err != nil {
		return nil, err
	}
	c.Wait()

	if scrapeErr != nil && len(articles) == 0 {
		return nil, scrapeErr
	}
	return articles, nil
}

func cleanText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.First().Text()), " ")
}
