package engineobs

import (
	"context"
	"time"

	"llm-investment-advisor/internal/interfaces"
	"llm-investment-advisor/internal/logger"
	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/trace"
	"llm-investment-advisor/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) AdviceFor(ctx context.Context, m month.Month, personality string) (types.Advice, error) {
	ctx, span := trace.StartSpan(ctx, "engine.AdviceFor")
	defer span.End()

	start := time.Now()
	advice, err := oe.engine.AdviceFor(ctx, m, personality)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Advice request failed", err,
			"month", m.String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return types.Advice{}, err
	}

	logger.InfoSkip(ctx, 1, "Advice ready",
		"month", m.String(),
		"recommendations", len(advice.Recommendations),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return advice, nil
}

func (oe *observableEngine) ExecuteTrade(ctx context.Context, m month.Month, symbol, side string, qty int) (types.TradeResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.ExecuteTrade")
	defer span.End()

	result, err := oe.engine.ExecuteTrade(ctx, m, symbol, side, qty)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Trade rejected", err,
			"month", m.String(),
			"symbol", symbol,
			"side", side,
			"qty", qty,
		)
		return result, err
	}

	logger.InfoSkip(ctx, 1, "Trade filled",
		"month", m.String(),
		"symbol", symbol,
		"side", side,
		"qty", qty,
		"price", result.Price.String(),
	)
	return result, nil
}

func (oe *observableEngine) Step(ctx context.Context, m month.Month) (*types.StepResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Step")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting monthly step", "month", m.String())

	result, err := oe.engine.Step(ctx, m)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Monthly step failed", err,
			"month", m.String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Monthly step completed",
		"month", m.String(),
		"recommendations", len(result.Advice.Recommendations),
		"trades", len(result.Trades),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
