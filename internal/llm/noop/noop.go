package noop

import (
	"context"

	"llm-investment-advisor/internal/logger"
	"llm-investment-advisor/internal/types"
)

// Decider is a fallback used when no LLM is configured. It never
// recommends anything, so the portfolio stays as-is.
type Decider struct{}

func NewDecider() *Decider {
	return &Decider{}
}

func (d *Decider) Advise(ctx context.Context, req types.AdviceRequest) (types.Advice, error) {
	logger.Debug(ctx, "Noop decider called - no recommendations", "month", req.Month)
	return types.Advice{}, nil
}
