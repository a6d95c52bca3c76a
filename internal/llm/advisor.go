package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/budgeapp/backend/internal/ledger"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Kind tags how an advice message was produced.
type Kind string

const (
	KindLLM      Kind = "llm"      // Generated by the external service
	KindFallback Kind = "fallback" // Composed locally from the summary
)

// Advice is the response to a chat message.
type Advice struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// Summary carries the aggregates the advisor reasons about. It is
// computed by the caller with the ledger package so that chat advice
// uses the same numbers as every other surface.
type Summary struct {
	Income            decimal.Decimal
	Expenses          decimal.Decimal
	Balance           decimal.Decimal
	SavingsRate       decimal.Decimal
	MonthlyBudget     decimal.Decimal
	BudgetUtilization ledger.Utilization
	TopCategories     []ledger.CategorySpend
}

// Advisor produces advice for chat messages.
type Advisor struct {
	client *Client
}

// NewAdvisor returns an advisor. The client may be nil, in which case
// every response is a fallback.
func NewAdvisor(client *Client) *Advisor {
	return &Advisor{client: client}
}

// Configured reports whether an external generation service is set up.
func (a *Advisor) Configured() bool {
	return a != nil && a.client != nil
}

// Advise answers the user's message.
//
// The kind of the response is selected by whether the external call
// succeeded, never by inspecting the message text.
func (a *Advisor) Advise(ctx context.Context, message string, summary Summary) Advice {
	if a.Configured() {
		response, err := a.client.Complete(ctx, systemPrompt, userPrompt(message, summary))
		if err == nil {
			return Advice{Message: response, Kind: KindLLM}
		}

		log.Warn().Err(err).Msg("advice generation failed, falling back to summary response")
	}

	return Advice{Message: fallbackMessage(summary), Kind: KindFallback}
}

// fallbackMessage composes a deterministic reply from the summary.
func fallbackMessage(s Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Here is where your budget stands: you earned %s and spent %s, leaving a balance of %s.",
		s.Income.StringFixed(2), s.Expenses.StringFixed(2), s.Balance.StringFixed(2))

	if s.Income.IsPositive() {
		fmt.Fprintf(&b, " Your savings rate is %s%%.", s.SavingsRate.StringFixed(1))
	}

	if s.MonthlyBudget.IsPositive() {
		fmt.Fprintf(&b, " You have used %s%% of your monthly budget of %s.",
			s.BudgetUtilization.Percentage.StringFixed(1), s.MonthlyBudget.StringFixed(2))

		if s.BudgetUtilization.OverBudget {
			b.WriteString(" You are over budget this period, consider cutting back on your largest categories.")
		}
	}

	if len(s.TopCategories) > 0 {
		top := s.TopCategories[0]
		fmt.Fprintf(&b, " Your biggest spending category is %s at %s (%s%% of expenses).",
			top.Category.Name, top.Spend.StringFixed(2), top.Percentage.StringFixed(1))
	}

	return b.String()
}
