package llm

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a friendly personal finance assistant inside a budgeting app.
Answer the user's question using ONLY the aggregate figures provided.
Be concise (2-4 sentences), concrete and encouraging. Never invent
transactions or numbers that are not in the figures. Do not give
investment, tax or legal advice.`

// userPrompt renders the chat message together with the aggregate
// figures the model may use.
func userPrompt(message string, s Summary) string {
	var b strings.Builder

	b.WriteString("Aggregate figures for this user:\n")
	fmt.Fprintf(&b, "- total income: %s\n", s.Income.StringFixed(2))
	fmt.Fprintf(&b, "- total expenses: %s\n", s.Expenses.StringFixed(2))
	fmt.Fprintf(&b, "- balance: %s\n", s.Balance.StringFixed(2))
	fmt.Fprintf(&b, "- savings rate: %s%%\n", s.SavingsRate.StringFixed(1))
	fmt.Fprintf(&b, "- monthly budget: %s (%s%% used, over budget: %t)\n",
		s.MonthlyBudget.StringFixed(2), s.BudgetUtilization.Percentage.StringFixed(1), s.BudgetUtilization.OverBudget)

	for _, spend := range s.TopCategories {
		fmt.Fprintf(&b, "- spent %s on %s (%s%% of expenses)\n",
			spend.Spend.StringFixed(2), spend.Category.Name, spend.Percentage.StringFixed(1))
	}

	b.WriteString("\nUser message:\n")
	b.WriteString(message)

	return b.String()
}
