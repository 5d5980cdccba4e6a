package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"llm-investment-advisor/internal/month"
)

const sampleDoc = `{
    "2020-01": {
        "Tesla": {
            "stock": {"price": 1000, "change": 5.0, "volume": 5000000},
            "news": [{"title": "Tesla Surpasses Q4 Earnings and Revenue Estimates", "date": "2020-01-29"}]
        },
        "Apple": {
            "stock": {"price": 310.5, "change": -1.2, "volume": 9000000},
            "news": []
        }
    },
    "2020-02": {
        "Tesla": {
            "stock": {"price": 900, "change": -10.0, "volume": 7000000},
            "news": []
        }
    }
}`

func loadSample(t *testing.T) *Catalog {
	t.Helper()
	p := filepath.Join(t.TempDir(), "company_data.json")
	if err := os.WriteFile(p, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c
}

func TestQuoteLookup(t *testing.T) {
	c := loadSample(t)

	q, ok := c.Quote("Tesla", month.MustParse("2020-01"))
	if !ok {
		t.Fatal("Expected Tesla quote for 2020-01")
	}
	if q.Price.String() != "1000" || q.Change != 5.0 || q.Volume != 5000000 {
		t.Errorf("Unexpected quote: %+v", q)
	}

	if _, ok := c.Quote("Tesla", month.MustParse("2021-01")); ok {
		t.Error("Expected no quote for a month outside the catalog")
	}
	if _, ok := c.Quote("Netflix", month.MustParse("2020-01")); ok {
		t.Error("Expected no quote for an unknown company")
	}
}

func TestCompaniesSorted(t *testing.T) {
	c := loadSample(t)
	names := c.Companies(month.MustParse("2020-01"))
	if len(names) != 2 || names[0] != "Apple" || names[1] != "Tesla" {
		t.Errorf("Expected [Apple Tesla], got %v", names)
	}
	if names := c.Companies(month.MustParse("2023-01")); names != nil {
		t.Errorf("Expected nil for absent month, got %v", names)
	}
}

func TestMonthsChronological(t *testing.T) {
	c := loadSample(t)
	months := c.Months()
	if len(months) != 2 || months[0].String() != "2020-01" || months[1].String() != "2020-02" {
		t.Errorf("Unexpected month order: %v", months)
	}
}

func TestLoadRejectsBadMonthKey(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(p, []byte(`{"January 2020": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); err == nil {
		t.Fatal("Expected error for malformed month key")
	}
}
