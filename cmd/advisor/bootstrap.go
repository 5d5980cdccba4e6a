package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"llm-investment-advisor/internal/catalog"
	"llm-investment-advisor/internal/engine"
	"llm-investment-advisor/internal/engine/engineobs"
	"llm-investment-advisor/internal/interfaces"
	"llm-investment-advisor/internal/ledger"
	"llm-investment-advisor/internal/llm/llmobs"
	"llm-investment-advisor/internal/llm/noop"
	"llm-investment-advisor/internal/llm/openai"
	"llm-investment-advisor/internal/logger"
	"llm-investment-advisor/internal/marketdata"
	"llm-investment-advisor/internal/news"
	"llm-investment-advisor/internal/store"
	"llm-investment-advisor/internal/trace"
)

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads the configuration, honoring CONFIG_FILE
func loadConfig(ctx context.Context) (*store.Config, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// initializeLedger opens the state file and seeds it with the starting
// cash on first run
func initializeLedger(ctx context.Context, cfg *store.Config) (*ledger.Service, error) {
	svc := ledger.NewService(store.NewFileStore(cfg.Data.StateFile))
	if !svc.Initialized() {
		cash := decimal.NewFromFloat(cfg.Sim.StartingCash)
		if _, err := svc.Initialize(ctx, cash); err != nil {
			return nil, err
		}
		logger.Info(ctx, "Fresh portfolio created", "starting_cash", cash.String())
	}
	return svc, nil
}

// initializeDecider selects the LLM provider with observability
func initializeDecider(ctx context.Context, cfg *store.Config) interfaces.Decider {
	var decider interfaces.Decider

	switch cfg.LLM.Provider {
	case "OPENAI":
		decider = openai.NewDecider(cfg)
	default:
		decider = noop.NewDecider()
		logger.Warn(ctx, "No LLM provider configured - using Noop decider (no recommendations)")
	}

	return llmobs.Wrap(decider)
}

// initializeEngine wires the simulation engine with observability
func initializeEngine(ctx context.Context, cfg *store.Config, led *ledger.Service, cat *catalog.Catalog, decider interfaces.Decider) interfaces.Engine {
	market := marketdata.New(cfg, cat)
	if cfg.Data.MarketSource == "LIVE" {
		logger.Info(ctx, "Using LIVE market data from Yahoo Finance")
	} else {
		logger.Info(ctx, "Using catalog market data", "file", cfg.Data.CatalogFile)
	}

	provider := news.NewProvider(cfg, cat)
	eng := engine.New(cfg, led, market, provider, decider)
	return engineobs.Wrap(eng)
}
