package controllers_test

import (
	"net/http"

	"github.com/budgeapp/backend/internal/controllers"
	"github.com/budgeapp/backend/internal/models"
	"github.com/budgeapp/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteEnv) TestGetMonthlyBudgetDefault() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/budget/monthly", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.MonthlyBudget.Equal(models.DefaultMonthlyBudget), "monthly budget must default to %s, is %s", models.DefaultMonthlyBudget, response.MonthlyBudget)
}

func (suite *TestSuiteEnv) TestUpdateMonthlyBudget() {
	recorder := suite.request(http.MethodPut, "http://example.com/v1/budget/monthly", controllers.BudgetEditable{
		MonthlyBudget: decimal.NewFromInt(2500),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.MonthlyBudget.Equal(decimal.NewFromInt(2500)))

	// The new value must be returned on the next read
	recorder = suite.request(http.MethodGet, "http://example.com/v1/budget/monthly", "")
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.MonthlyBudget.Equal(decimal.NewFromInt(2500)))
}

func (suite *TestSuiteEnv) TestUpdateMonthlyBudgetNegative() {
	recorder := suite.request(http.MethodPut, "http://example.com/v1/budget/monthly", controllers.BudgetEditable{
		MonthlyBudget: decimal.NewFromInt(-1),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response map[string]string
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.ErrMonthlyBudgetNegative.Error(), response["error"])
}
