package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"llm-investment-advisor/internal/month"
)

type Config struct {
	Sim struct {
		StartingCash float64 `yaml:"starting_cash"`
		StartMonth   string  `yaml:"start_month"`
		EndMonth     string  `yaml:"end_month"`
		Personality  string  `yaml:"personality"`
	} `yaml:"sim"`
	Data struct {
		StateFile    string `yaml:"state_file"`
		CatalogFile  string `yaml:"catalog_file"`
		MarketSource string `yaml:"market_source"` // CATALOG or LIVE
		NewsSource   string `yaml:"news_source"`   // CATALOG or LIVE
	} `yaml:"data"`
	LLM struct {
		Provider    string  `yaml:"provider"` // OPENAI or NOOP
		BaseURL     string  `yaml:"base_url"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"llm"`
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	News struct {
		MaxArticles  int `yaml:"max_articles"`
		CacheTTLMins int `yaml:"cache_ttl_minutes"`
	} `yaml:"news"`
}

func (c *Config) Validate() error {
	if c.Sim.StartingCash < 0 {
		return fmt.Errorf("sim.starting_cash must not be negative, got %.2f", c.Sim.StartingCash)
	}
	start, err := month.Parse(c.Sim.StartMonth)
	if err != nil {
		return fmt.Errorf("sim.start_month: %w", err)
	}
	end, err := month.Parse(c.Sim.EndMonth)
	if err != nil {
		return fmt.Errorf("sim.end_month: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("sim.end_month %s precedes sim.start_month %s", end, start)
	}
	if c.Data.MarketSource != "CATALOG" && c.Data.MarketSource != "LIVE" {
		return fmt.Errorf("invalid data.market_source '%s': must be 'CATALOG' or 'LIVE'", c.Data.MarketSource)
	}
	if c.Data.NewsSource != "CATALOG" && c.Data.NewsSource != "LIVE" {
		return fmt.Errorf("invalid data.news_source '%s': must be 'CATALOG' or 'LIVE'", c.Data.NewsSource)
	}
	if c.LLM.Provider != "OPENAI" && c.LLM.Provider != "NOOP" {
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI' or 'NOOP'", c.LLM.Provider)
	}
	return nil
}

// StartMonth returns the parsed simulation start; Validate must have
// passed.
func (c *Config) StartMonth() month.Month { return month.MustParse(c.Sim.StartMonth) }

// EndMonth returns the parsed simulation horizon.
func (c *Config) EndMonth() month.Month { return month.MustParse(c.Sim.EndMonth) }

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Sim.StartingCash == 0 {
		c.Sim.StartingCash = 10000
	}
	if c.Sim.StartMonth == "" {
		c.Sim.StartMonth = "2020-01"
	}
	if c.Sim.EndMonth == "" {
		c.Sim.EndMonth = "2024-12"
	}
	if c.Data.StateFile == "" {
		c.Data.StateFile = "data/holding_state.json"
	}
	if c.Data.CatalogFile == "" {
		c.Data.CatalogFile = "data/company_data.json"
	}
	if c.Data.MarketSource == "" {
		c.Data.MarketSource = "CATALOG"
	}
	if c.Data.NewsSource == "" {
		c.Data.NewsSource = "CATALOG"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NOOP"
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://openrouter.ai/api/v1"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "deepseek/deepseek-chat-v3-0324:free"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.News.MaxArticles == 0 {
		c.News.MaxArticles = 15
	}
	if c.News.CacheTTLMins == 0 {
		c.News.CacheTTLMins = 60
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
