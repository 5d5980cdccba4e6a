package llmobs

import (
	"context"

	"llm-investment-advisor/internal/interfaces"
	"llm-investment-advisor/internal/logger"
	"llm-investment-advisor/internal/trace"
	"llm-investment-advisor/internal/types"
)

// observableDecider wraps a Decider with observability (logging & tracing)
type observableDecider struct {
	decider interfaces.Decider
}

// Compile-time interface check
var _ interfaces.Decider = (*observableDecider)(nil)

// Wrap wraps a decider with observability middleware
func Wrap(decider interfaces.Decider) interfaces.Decider {
	return &observableDecider{
		decider: decider,
	}
}

// Advise requests monthly advice with observability
func (od *observableDecider) Advise(ctx context.Context, req types.AdviceRequest) (types.Advice, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Advise")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting portfolio advice",
		"month", req.Month,
		"digest_bytes", len(req.Digest),
	)

	advice, err := od.decider.Advise(ctx, req)
	if err != nil {
		// Use ErrorWithErrSkip(1) to report the actual caller
		logger.ErrorWithErrSkip(ctx, 1, "Failed to get portfolio advice", err,
			"month", req.Month,
		)
		return types.Advice{}, err
	}

	logger.InfoSkip(ctx, 1, "Portfolio advice received",
		"month", req.Month,
		"recommendations", len(advice.Recommendations),
	)
	for _, rec := range advice.Recommendations {
		logger.Decision(ctx, rec.Company, rec.Action, rec.SharesToTransact, rec.Confidence, rec.Reason)
	}

	return advice, nil
}
