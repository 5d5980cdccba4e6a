package news

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"llm-investment-advisor/internal/catalog"
	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/types"
)

func sampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	doc := `{
        "2020-01": {
            "Tesla": {
                "stock": {"price": 1000, "change": 5.0, "volume": 5000000},
                "news": [{"title": "Tesla (TSLA) Surpasses Q4 Earnings and Revenue Estimates", "date": "2020-01-29"}]
            },
            "Apple": {
                "stock": {"price": 310.5, "change": -1.2, "volume": 9000000},
                "news": []
            }
        }
    }`
	p := filepath.Join(t.TempDir(), "company_data.json")
	if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := catalog.Load(p)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestMonthDigestFormat(t *testing.T) {
	d := NewCatalogDigest(sampleCatalog(t))

	digest, err := d.MonthDigest(context.Background(), month.MustParse("2020-01"))
	if err != nil {
		t.Fatalf("MonthDigest failed: %v", err)
	}

	if !strings.HasPrefix(digest, "Company News and Stock Information for 2020-01:") {
		t.Errorf("Unexpected digest header:\n%s", digest)
	}

	// Companies appear in sorted order with their stock blocks.
	appleIdx := strings.Index(digest, "Company: Apple")
	teslaIdx := strings.Index(digest, "Company: Tesla")
	if appleIdx == -1 || teslaIdx == -1 || appleIdx > teslaIdx {
		t.Errorf("Expected Apple before Tesla in digest:\n%s", digest)
	}

	for _, want := range []string{
		"  Price: $1000\n",
		"  Change: 5.00%\n",
		"  Volume: 5000000\n",
		"  - Tesla (TSLA) Surpasses Q4 Earnings and Revenue Estimates\n",
		"    Date: 2020-01-29",
		"  No news available.",
	} {
		if !strings.Contains(digest, want) {
			t.Errorf("Digest missing %q:\n%s", want, digest)
		}
	}

	if strings.HasSuffix(digest, "\n") {
		t.Error("Digest should be trimmed of trailing whitespace")
	}
}

func TestMonthDigestMissingMonth(t *testing.T) {
	d := NewCatalogDigest(sampleCatalog(t))

	digest, err := d.MonthDigest(context.Background(), month.MustParse("2023-07"))
	if err != nil {
		t.Fatalf("MonthDigest failed: %v", err)
	}
	if digest != "No data found for 2023-07." {
		t.Errorf("Unexpected missing-month digest: %q", digest)
	}
}

func TestHeadlineCacheExpiry(t *testing.T) {
	cache := newHeadlineCache(50 * time.Millisecond)

	articles := []types.NewsArticle{{Title: "headline", Date: "2020-01-02"}}
	cache.set("TSLA", articles)

	got, ok := cache.get("TSLA")
	if !ok || len(got) != 1 || got[0].Title != "headline" {
		t.Fatalf("Expected cached articles, got %v (ok=%v)", got, ok)
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := cache.get("TSLA"); ok {
		t.Error("Expected cache entry to be expired")
	}

	if _, ok := cache.get("AAPL"); ok {
		t.Error("Expected miss for unknown symbol")
	}
}
