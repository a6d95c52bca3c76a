// Package ledger computes derived aggregates over transaction
// snapshots.
//
// Every surface that reports numbers to the user (dashboard, export
// analytics, AI insight generation) calls into this package, so the
// formulas exist exactly once. All functions are pure: they never touch
// the database and are safe to call concurrently on independently
// fetched snapshots.
//
// None of the functions return errors. An empty transaction list yields
// zero-valued aggregates; malformed data cannot occur because the write
// path validates it before it is stored.
package ledger

import (
	"sort"
	"time"

	"github.com/budgeapp/backend/internal/models"
	"github.com/budgeapp/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Income sums the amounts of all income transactions.
func Income(transactions []models.Transaction) decimal.Decimal {
	return sumOfType(transactions, models.CategoryTypeIncome)
}

// Expenses sums the amounts of all expense transactions.
func Expenses(transactions []models.Transaction) decimal.Decimal {
	return sumOfType(transactions, models.CategoryTypeExpense)
}

// Balance is income minus expenses.
func Balance(transactions []models.Transaction) decimal.Decimal {
	return Income(transactions).Sub(Expenses(transactions))
}

// SavingsRate is the balance as a percentage of income. It is 0 when
// there is no income.
func SavingsRate(transactions []models.Transaction) decimal.Decimal {
	income := Income(transactions)
	if !income.IsPositive() {
		return decimal.Zero
	}

	return Balance(transactions).Div(income).Mul(hundred)
}

func sumOfType(transactions []models.Transaction, t models.CategoryType) decimal.Decimal {
	sum := decimal.Zero
	for _, transaction := range transactions {
		if transaction.Type == t {
			sum = sum.Add(transaction.Amount)
		}
	}

	return sum
}

// CategorySpend is one entry of the spending breakdown.
type CategorySpend struct {
	Category    models.Category `json:"category"`
	Spend       decimal.Decimal `json:"spend"`
	Percentage  decimal.Decimal `json:"percentage"`            // Share of total expenses
	Utilization *Utilization    `json:"utilization,omitempty"` // Only set for categories with a budget
}

// Breakdown sums expense transactions per expense category.
//
// Categories without any matching spend are excluded. The result is
// sorted by spend descending, with the category name as tie-break so
// that the order is deterministic. Percentages are relative to the
// total expenses of the snapshot and 0 when that total is 0. Entries
// for categories carrying a budget also report the spend against it.
func Breakdown(transactions []models.Transaction, categories []models.Category) []CategorySpend {
	total := Expenses(transactions)

	spends := make(map[uuid.UUID]decimal.Decimal)
	for _, transaction := range transactions {
		if transaction.Type != models.CategoryTypeExpense {
			continue
		}

		spends[transaction.CategoryID] = spends[transaction.CategoryID].Add(transaction.Amount)
	}

	breakdown := make([]CategorySpend, 0)
	for _, category := range categories {
		if category.Type != models.CategoryTypeExpense {
			continue
		}

		spend, ok := spends[category.ID]
		if !ok || spend.IsZero() {
			continue
		}

		percentage := decimal.Zero
		if total.IsPositive() {
			percentage = spend.Div(total).Mul(hundred)
		}

		entry := CategorySpend{
			Category:   category,
			Spend:      spend,
			Percentage: percentage,
		}

		if utilization, ok := CategoryUtilization(category, transactions); ok {
			entry.Utilization = &utilization
		}

		breakdown = append(breakdown, entry)
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Spend.Equal(breakdown[j].Spend) {
			return breakdown[i].Spend.GreaterThan(breakdown[j].Spend)
		}
		return breakdown[i].Category.Name < breakdown[j].Category.Name
	})

	return breakdown
}

// Utilization is spend as a percentage of a budget ceiling.
type Utilization struct {
	Percentage decimal.Decimal `json:"percentage"`
	OverBudget bool            `json:"overBudget"`
}

// BudgetUtilization compares total expenses against the monthly budget.
// The percentage is 0 when the budget is 0.
func BudgetUtilization(expenses, monthlyBudget decimal.Decimal) Utilization {
	u := Utilization{
		Percentage: decimal.Zero,
		OverBudget: expenses.GreaterThan(monthlyBudget),
	}

	if monthlyBudget.IsPositive() {
		u.Percentage = expenses.Div(monthlyBudget).Mul(hundred)
	}

	return u
}

// CategoryUtilization compares a category's own spend against its
// budget field. The second return value is false when the category has
// no budget set and the ratio is therefore undefined.
func CategoryUtilization(category models.Category, transactions []models.Transaction) (Utilization, bool) {
	if category.Budget == nil {
		return Utilization{}, false
	}

	spend := decimal.Zero
	for _, transaction := range transactions {
		if transaction.Type == models.CategoryTypeExpense && transaction.CategoryID == category.ID {
			spend = spend.Add(transaction.Amount)
		}
	}

	return BudgetUtilization(spend, *category.Budget), true
}

// MonthBucket reports the aggregates of one calendar month.
type MonthBucket struct {
	Month    types.Month     `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// MonthlyTrend partitions transactions into months calendar-month
// buckets ending at the month of now, oldest first.
//
// Every requested month appears exactly once. Months without
// transactions report zero values instead of being omitted.
func MonthlyTrend(transactions []models.Transaction, months int, now time.Time) []MonthBucket {
	if months <= 0 {
		return []MonthBucket{}
	}

	first := types.MonthOf(now).AddDate(0, -(months - 1))

	trend := make([]MonthBucket, months)
	for i := range trend {
		trend[i] = MonthBucket{
			Month:    first.AddDate(0, i),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
			Balance:  decimal.Zero,
		}
	}

	for _, transaction := range transactions {
		for i := range trend {
			if !trend[i].Month.Contains(transaction.Date) {
				continue
			}

			switch transaction.Type {
			case models.CategoryTypeIncome:
				trend[i].Income = trend[i].Income.Add(transaction.Amount)
			case models.CategoryTypeExpense:
				trend[i].Expenses = trend[i].Expenses.Add(transaction.Amount)
			}

			break
		}
	}

	for i := range trend {
		trend[i].Balance = trend[i].Income.Sub(trend[i].Expenses)
	}

	return trend
}
