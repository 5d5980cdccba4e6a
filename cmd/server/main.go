package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

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
	"llm-investment-advisor/internal/server"
	"llm-investment-advisor/internal/store"
	"llm-investment-advisor/internal/trace"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	ctx := context.Background()
	defer trace.Shutdown(ctx)

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := store.LoadConfig(path)
	if err != nil {
		log.Fatal(err)
	}

	cat, err := catalog.Load(cfg.Data.CatalogFile)
	if err != nil {
		log.Fatal(err)
	}

	led := ledger.NewService(store.NewFileStore(cfg.Data.StateFile))

	var decider interfaces.Decider
	switch cfg.LLM.Provider {
	case "OPENAI":
		decider = openai.NewDecider(cfg)
	default:
		decider = noop.NewDecider()
		logger.Warn(ctx, "No LLM provider configured - using Noop decider (no recommendations)")
	}
	decider = llmobs.Wrap(decider)

	provider := news.NewProvider(cfg, cat)
	eng := engineobs.Wrap(engine.New(cfg, led, marketdata.New(cfg, cat), provider, decider))

	srv := server.New(cfg, led, eng, provider, cat)
	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
}
