package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "sim:\n  personality: cautious value investor\n"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Sim.StartingCash != 10000 {
		t.Errorf("Expected default starting cash 10000, got %.2f", cfg.Sim.StartingCash)
	}
	if cfg.Sim.StartMonth != "2020-01" || cfg.Sim.EndMonth != "2024-12" {
		t.Errorf("Unexpected default months: %s..%s", cfg.Sim.StartMonth, cfg.Sim.EndMonth)
	}
	if cfg.Data.MarketSource != "CATALOG" || cfg.Data.NewsSource != "CATALOG" {
		t.Errorf("Expected CATALOG defaults, got %s/%s", cfg.Data.MarketSource, cfg.Data.NewsSource)
	}
	if cfg.LLM.Provider != "NOOP" {
		t.Errorf("Expected NOOP provider default, got %s", cfg.LLM.Provider)
	}
	if cfg.Server.Addr != ":5000" {
		t.Errorf("Expected default addr :5000, got %s", cfg.Server.Addr)
	}
}

func TestLoadConfigRejectsBadSource(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "data:\n  market_source: YAHOO\n"))
	if err == nil || !strings.Contains(err.Error(), "market_source") {
		t.Fatalf("Expected market_source validation error, got %v", err)
	}
}

func TestLoadConfigRejectsBadMonths(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "sim:\n  start_month: \"2021-01\"\n  end_month: \"2020-01\"\n"))
	if err == nil || !strings.Contains(err.Error(), "precedes") {
		t.Fatalf("Expected month-order validation error, got %v", err)
	}

	_, err = LoadConfig(writeConfig(t, "sim:\n  start_month: \"2020-13\"\n"))
	if err == nil {
		t.Fatal("Expected invalid month error")
	}
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "llm:\n  provider: GEMINI\n"))
	if err == nil || !strings.Contains(err.Error(), "llm.provider") {
		t.Fatalf("Expected provider validation error, got %v", err)
	}
}
