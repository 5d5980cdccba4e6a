package types

import "github.com/shopspring/decimal"

// Quote is one month of aggregated market data for a symbol.
type Quote struct {
	Price  decimal.Decimal `json:"price"`
	Change float64         `json:"change"` // percent over the month
	Volume int64           `json:"volume"`
}

// NewsArticle is a single headline attached to a company and month.
type NewsArticle struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Source string `json:"source,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Recommendation mirrors the JSON schema the advisor model must emit.
type Recommendation struct {
	Company          string `json:"company"`
	Action           string `json:"action"` // BUY, SELL or HOLD
	SharesToTransact int    `json:"shares_to_transact"`
	Reason           string `json:"reason"`
	Confidence       string `json:"confidence"`
}

// Advice is the full set of recommendations for one month.
type Advice struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// AdviceRequest carries everything a decider needs for one month.
type AdviceRequest struct {
	Month       string
	Digest      string // formatted company news and market data
	Holdings    string // formatted portfolio summary
	Personality string
}

// TradeResult is the outcome of a single buy or sell attempt.
type TradeResult struct {
	Symbol string          `json:"symbol"`
	Side   string          `json:"side"`
	Qty    int             `json:"qty"`
	Price  decimal.Decimal `json:"price"`
	Status string          `json:"status"` // FILLED or REJECTED
	Reason string          `json:"reason,omitempty"`
}

// StepResult summarizes one autopilot month: the advice received and
// what actually got executed against the ledger.
type StepResult struct {
	Month  string        `json:"month"`
	Advice Advice        `json:"advice"`
	Trades []TradeResult `json:"trades"`
}
