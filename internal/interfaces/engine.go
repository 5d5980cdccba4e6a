package interfaces

import (
	"context"

	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/types"
)

// Engine drives the monthly simulation: advice, trade execution and the
// autopilot step combining both.
type Engine interface {
	AdviceFor(ctx context.Context, m month.Month, personality string) (types.Advice, error)
	ExecuteTrade(ctx context.Context, m month.Month, symbol, side string, qty int) (types.TradeResult, error)
	Step(ctx context.Context, m month.Month) (*types.StepResult, error)
}
