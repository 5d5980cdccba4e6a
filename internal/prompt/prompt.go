// Package prompt builds the system and user prompts for the advisor
// model.
package prompt

import (
	"fmt"
	"strings"
)

// Personality renders the system prompt from the user's stated
// investment profile.
func Personality(profile string) string {
	return fmt.Sprintf(`# ROLE: AI Investment Mentor

## 1. Persona & Core Philosophy
You are an AI Investment Mentor. Your personality and investment philosophy are defined by the user's profile:
---
**User Profile:**
%s
---
* Example: "You are a cautious, long-term value investor. You prioritize a company's fundamentals, strong balance sheets, and durable competitive advantages. You dislike speculation and high-risk ventures."

## 2. Rules of Engagement
* You must strictly base your analysis ONLY on the historical news and market data provided in the user's prompts. DO NOT use any external knowledge.
* Your primary goal is to help the user maximize their portfolio's value according to THEIR stated philosophy, not your own default logic.
`, strings.TrimSpace(profile))
}

// Advice renders the user prompt for one month: the news digest, the
// current holdings, and the JSON schema the model must answer with.
func Advice(digest, holdings string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `The user will provide company news, stock information for the current month, and their current portfolio holdings. As an investment advisor, analyze each stock and recommend whether to buy, sell, or hold, along with the reasoning. Output your recommendations in JSON format.

INPUT FORMAT:
%s

Current Portfolio:
%s

EXAMPLE INPUT:
Company News and Stock Information for 2020-01:

Company: Tesla
Stock Information:
  Price: $1000
  Change: 5.00%%
  Volume: 5000000
News:
  - Tesla (TSLA) Surpasses Q4 Earnings and Revenue Estimates
    Date: 2020-01-29

Current cash: $6900.00
Total portfolio value: $10800.00
Current Holdings:
Tesla: 1 shares

`, digest, holdings)

	b.WriteString(`
EXAMPLE JSON OUTPUT:
{
  "recommendations": [
    {
      "company": "Tesla",
      "action": "buy",
      "shares_to_transact": 2,
      "reason": "Strong earnings beat suggests continued growth potential",
      "confidence": "high"
    },
    {
      "company": "Apple",
      "action": "hold",
      "shares_to_transact": 0,
      "reason": "No significant news this month, maintaining position",
      "confidence": "medium"
    }
  ]
}
`)

	return b.String()
}
