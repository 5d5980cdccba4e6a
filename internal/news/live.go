package news

import (
	"context"
	"sync"
	"time"

	"llm-investment-advisor/internal/catalog"
	"llm-investment-advisor/internal/interfaces"
	"llm-investment-advisor/internal/logger"
	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/store"
	"llm-investment-advisor/internal/types"
)

// LiveDigest keeps the catalog's price figures but replaces its stored
// headlines with freshly scraped ones, cached per symbol.
type LiveDigest struct {
	cat         *catalog.Catalog
	scraper     *Scraper
	cache       *headlineCache
	maxArticles int
}

var _ interfaces.NewsProvider = (*LiveDigest)(nil)

func NewLiveDigest(cfg *store.Config, cat *catalog.Catalog) *LiveDigest {
	return &LiveDigest{
		cat:         cat,
		scraper:     NewScraper(30 * time.Second),
		cache:       newHeadlineCache(time.Duration(cfg.News.CacheTTLMins) * time.Minute),
		maxArticles: cfg.News.MaxArticles,
	}
}

func (d *LiveDigest) MonthDigest(ctx context.Context, m month.Month) (string, error) {
	entries, ok := d.cat.Month(m)
	if !ok {
		return (&CatalogDigest{cat: d.cat}).MonthDigest(ctx, m)
	}

	companies := d.cat.Companies(m)
	sections := make([]companySection, 0, len(companies))
	for _, name := range companies {
		e := entries[name]
		sections = append(sections, companySection{
			Company: name,
			Quote:   e.Stock,
			News:    d.headlines(ctx, name, e.News),
		})
	}
	return formatDigest(m, sections), nil
}

// headlines returns cached or freshly scraped headlines, falling back
// to the catalog's stored ones when scraping yields nothing.
func (d *LiveDigest) headlines(ctx context.Context, symbol string, stored []types.NewsArticle) []types.NewsArticle {
	if cached, ok := d.cache.get(symbol); ok {
		return cached
	}

	scraped, err := d.scraper.Scrape(ctx, symbol, d.maxArticles)
	if err != nil {
		logger.Warn(ctx, "Falling back to catalog headlines", "symbol", symbol, "error", err)
		return stored
	}
	d.cache.set(symbol, scraped)
	return scraped
}

// headlineCache stores scraped headlines per symbol with a TTL.
type headlineCache struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	articles  []types.NewsArticle
	timestamp time.Time
}

func newHeadlineCache(ttl time.Duration) *headlineCache {
	return &headlineCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}
}

func (c *headlineCache) get(symbol string) ([]types.NewsArticle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[symbol]
	if !exists {
		return nil, false
	}
	if time.Since(entry.timestamp) > c.ttl {
		return nil, false
	}
	return entry.articles, true
}

func (c *headlineCache) set(symbol string, articles []types.NewsArticle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[symbol] = &cacheEntry{articles: articles, timestamp: time.Now()}
}

// NewProvider selects the news provider from config.
func NewProvider(cfg *store.Config, cat *catalog.Catalog) interfaces.NewsProvider {
	if cfg.Data.NewsSource == "LIVE" {
		return NewLiveDigest(cfg, cat)
	}
	return NewCatalogDigest(cat)
}
