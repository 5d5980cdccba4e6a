// Package catalog reads the month-keyed company data file: for each
// month, per-company stock figures and news headlines. The file is the
// simulation's entire market history, loaded once and read-only after.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/types"
)

// Entry is one company's data for one month.
type Entry struct {
	Stock types.Quote         `json:"stock"`
	News  []types.NewsArticle `json:"news"`
}

// Catalog is the loaded data file.
type Catalog struct {
	months map[string]map[string]Entry
}

// Load reads and decodes the catalog file.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var months map[string]map[string]Entry
	if err := json.Unmarshal(b, &months); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	for label := range months {
		if _, err := month.Parse(label); err != nil {
			return nil, fmt.Errorf("catalog %s: bad month key: %w", path, err)
		}
	}
	return &Catalog{months: months}, nil
}

// Month returns all company entries for a month, or false if the
// catalog has no data for it.
func (c *Catalog) Month(m month.Month) (map[string]Entry, bool) {
	entries, ok := c.months[m.String()]
	return entries, ok
}

// Quote returns the month's stock figures for one company.
func (c *Catalog) Quote(symbol string, m month.Month) (types.Quote, bool) {
	entries, ok := c.months[m.String()]
	if !ok {
		return types.Quote{}, false
	}
	e, ok := entries[symbol]
	if !ok {
		return types.Quote{}, false
	}
	return e.Stock, true
}

// Companies lists the month's companies in sorted order.
func (c *Catalog) Companies(m month.Month) []string {
	entries, ok := c.months[m.String()]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Months lists every month present, sorted chronologically.
func (c *Catalog) Months() []month.Month {
	out := make([]month.Month, 0, len(c.months))
	for label := range c.months {
		out = append(out, month.MustParse(label))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
