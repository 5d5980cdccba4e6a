package interfaces

import (
	"context"

	"llm-investment-advisor/internal/types"
)

// Decider produces monthly portfolio recommendations from the prepared
// news digest and holdings summary.
type Decider interface {
	Advise(ctx context.Context, req types.AdviceRequest) (types.Advice, error)
}
