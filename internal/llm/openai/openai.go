package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"llm-investment-advisor/internal/prompt"
	"llm-investment-advisor/internal/store"
	"llm-investment-advisor/internal/trace"
	"llm-investment-advisor/internal/types"
)

// Decider asks an OpenAI-compatible chat endpoint for monthly
// portfolio recommendations. The base URL comes from config, so it
// works against OpenRouter and similar gateways too.
type Decider struct {
	cfg *store.Config
}

func NewDecider(cfg *store.Config) *Decider {
	return &Decider{cfg: cfg}
}

func (d *Decider) Advise(ctx context.Context, req types.AdviceRequest) (types.Advice, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		return types.Advice{}, errors.New("LLM_API_KEY missing")
	}

	body := map[string]any{
		"model": d.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "system", "content": prompt.Personality(req.Personality)},
			{"role": "user", "content": prompt.Advice(req.Digest, req.Holdings)},
		},
		"temperature":     d.cfg.LLM.Temperature,
		"max_tokens":      d.cfg.LLM.MaxTokens,
		"response_format": map[string]string{"type": "json_object"},
	}
	bb, _ := json.Marshal(body)

	url := strings.TrimRight(d.cfg.LLM.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bb))
	if err != nil {
		return types.Advice{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return types.Advice{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return types.Advice{}, fmt.Errorf("llm http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.Advice{}, err
	}
	if len(r.Choices) == 0 {
		return types.Advice{}, errors.New("no choices")
	}

	out := strings.TrimSpace(r.Choices[0].Message.Content)

	var advice types.Advice
	if err := json.Unmarshal([]byte(out), &advice); err != nil {
		// Models occasionally emit prose instead of the schema; treat
		// that as "no recommendations this month" rather than failing
		// the whole step.
		return types.Advice{}, nil
	}

	for i := range advice.Recommendations {
		rec := &advice.Recommendations[i]
		rec.Action = strings.ToUpper(strings.TrimSpace(rec.Action))
		valid := map[string]bool{"BUY": true, "SELL": true, "HOLD": true}
		if !valid[rec.Action] {
			rec.Action = "HOLD"
		}
		if rec.SharesToTransact < 0 {
			rec.SharesToTransact = 0
		}
	}

	return advice, nil
}
