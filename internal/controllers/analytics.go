package controllers

import (
	"time"

	"github.com/budgeapp/backend/internal/ledger"
	"github.com/budgeapp/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Analytics is the aggregate snapshot shared by the dashboard, the
// export bundle and the AI advisor. Every figure comes from the
// ledger package so that all three surfaces agree.
type Analytics struct {
	Income            decimal.Decimal        `json:"income"`
	Expenses          decimal.Decimal        `json:"expenses"`
	Balance           decimal.Decimal        `json:"balance"`
	SavingsRate       decimal.Decimal        `json:"savingsRate"`
	MonthlyBudget     decimal.Decimal        `json:"monthlyBudget"`
	BudgetUtilization ledger.Utilization     `json:"budgetUtilization"`
	Breakdown         []ledger.CategorySpend `json:"breakdown"`
}

// analyticsForUser fetches the caller's data for the date range and
// reduces it into an Analytics snapshot. An empty range means all
// transactions.
func analyticsForUser(userID uuid.UUID, from, to time.Time) (Analytics, []models.Transaction, []models.Category, error) {
	transactions, err := models.TransactionsForUser(models.DB, userID, models.TransactionFilter{From: from, To: to})
	if err != nil {
		return Analytics{}, nil, nil, err
	}

	categories, err := models.CategoriesForUser(models.DB, userID, "")
	if err != nil {
		return Analytics{}, nil, nil, err
	}

	settings, err := models.SettingsForUser(models.DB, userID)
	if err != nil {
		return Analytics{}, nil, nil, err
	}

	expenses := ledger.Expenses(transactions)

	analytics := Analytics{
		Income:            ledger.Income(transactions),
		Expenses:          expenses,
		Balance:           ledger.Balance(transactions),
		SavingsRate:       ledger.SavingsRate(transactions),
		MonthlyBudget:     settings.MonthlyBudget,
		BudgetUtilization: ledger.BudgetUtilization(expenses, settings.MonthlyBudget),
		Breakdown:         ledger.Breakdown(transactions, categories),
	}

	return analytics, transactions, categories, nil
}

// bindDateRange parses the optional startDate/endDate query parameters
// and verifies their order.
func bindDateRange(query DateRangeQuery) (time.Time, time.Time, error) {
	if !query.StartDate.IsZero() && !query.EndDate.IsZero() && query.StartDate.After(query.EndDate) {
		return time.Time{}, time.Time{}, errDateRangeInvalid
	}

	return query.StartDate, query.EndDate, nil
}
