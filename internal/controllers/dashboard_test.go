package controllers_test

import (
	"net/http"
	"time"

	"github.com/budgeapp/backend/internal/controllers"
	"github.com/budgeapp/backend/internal/models"
	"github.com/budgeapp/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// seedExampleData creates the salary/food scenario used by several
// dashboard and export tests.
func (suite *TestSuiteEnv) seedExampleData(foodAmount decimal.Decimal) (salary, food controllers.CategoryResponse) {
	foodBudget := decimal.NewFromInt(400)
	salary = suite.createTestCategory(controllers.CategoryEditable{Name: "Main salary", Type: models.CategoryTypeIncome})
	food = suite.createTestCategory(controllers.CategoryEditable{Name: "Food", Type: models.CategoryTypeExpense, Budget: &foodBudget})

	// Fixed times in the middle of the current month keep the ordering
	// and the trend bucket deterministic
	now := time.Now().UTC()
	midMonth := time.Date(now.Year(), now.Month(), 15, 12, 0, 0, 0, time.UTC)

	suite.createTestTransaction(controllers.TransactionEditable{
		CategoryID: salary.Category.ID, Type: models.CategoryTypeIncome,
		Amount: decimal.NewFromInt(1000), Description: "salary",
		Date: midMonth.Add(time.Hour),
	})
	suite.createTestTransaction(controllers.TransactionEditable{
		CategoryID: food.Category.ID, Type: models.CategoryTypeExpense,
		Amount: foodAmount, Description: "groceries",
		Date: midMonth,
	})

	return
}

func (suite *TestSuiteEnv) TestGetDashboard() {
	suite.seedExampleData(decimal.NewFromInt(120))

	recorder := suite.request(http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.DashboardResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Analytics.Income.Equal(decimal.NewFromInt(1000)))
	assert.True(suite.T(), response.Analytics.Expenses.Equal(decimal.NewFromInt(120)))
	assert.True(suite.T(), response.Analytics.Balance.Equal(decimal.NewFromInt(880)))
	assert.True(suite.T(), response.Analytics.SavingsRate.Equal(decimal.NewFromInt(88)), "savings rate is %s", response.Analytics.SavingsRate)

	// Breakdown only contains the expense category with spend
	assert.Len(suite.T(), response.Analytics.Breakdown, 1)
	assert.Equal(suite.T(), "Food", response.Analytics.Breakdown[0].Category.Name)
	assert.True(suite.T(), response.Analytics.Breakdown[0].Percentage.Equal(decimal.NewFromInt(100)))

	// Food has a budget of 400, so its entry reports the utilization
	if assert.NotNil(suite.T(), response.Analytics.Breakdown[0].Utilization) {
		assert.True(suite.T(), response.Analytics.Breakdown[0].Utilization.Percentage.Equal(decimal.NewFromInt(30)))
		assert.False(suite.T(), response.Analytics.Breakdown[0].Utilization.OverBudget)
	}

	// Six chronological trend buckets ending with the current month
	assert.Len(suite.T(), response.Trend, 6)
	for i := 1; i < len(response.Trend); i++ {
		assert.True(suite.T(), response.Trend[i-1].Month.Before(response.Trend[i].Month), "trend buckets must be oldest first")
	}
	last := response.Trend[len(response.Trend)-1]
	assert.True(suite.T(), last.Income.Equal(decimal.NewFromInt(1000)))
	assert.True(suite.T(), last.Expenses.Equal(decimal.NewFromInt(120)))
}

func (suite *TestSuiteEnv) TestGetDashboardEmpty() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.DashboardResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Analytics.Income.IsZero())
	assert.True(suite.T(), response.Analytics.Expenses.IsZero())
	assert.True(suite.T(), response.Analytics.SavingsRate.IsZero())
	assert.Empty(suite.T(), response.Analytics.Breakdown)
	assert.Len(suite.T(), response.Trend, 6, "all trend buckets must be present even without transactions")
}

func (suite *TestSuiteEnv) TestGetDashboardBudgetUtilization() {
	suite.seedExampleData(decimal.NewFromInt(450))

	recorder := suite.request(http.MethodPut, "http://example.com/v1/budget/monthly", controllers.BudgetEditable{
		MonthlyBudget: decimal.NewFromInt(400),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = suite.request(http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.DashboardResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Analytics.BudgetUtilization.Percentage.Equal(decimal.RequireFromString("112.5")), "utilization is %s", response.Analytics.BudgetUtilization.Percentage)
	assert.True(suite.T(), response.Analytics.BudgetUtilization.OverBudget)
}

func (suite *TestSuiteEnv) TestGetDashboardInvalidRange() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/dashboard?startDate=2025-02-01&endDate=2025-01-01", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
