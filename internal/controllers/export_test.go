package controllers_test

import (
	"encoding/csv"
	"net/http"
	"strings"

	"github.com/budgeapp/backend/internal/controllers"
	"github.com/budgeapp/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteEnv) TestExportJSON() {
	suite.seedExampleData(decimal.NewFromInt(120))

	recorder := suite.request(http.MethodGet, "http://example.com/v1/privacy/export", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.ExportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), suite.userID, response.User.ID)
	assert.Len(suite.T(), response.Transactions, 2)
	assert.NotEmpty(suite.T(), response.Categories)
	assert.NotNil(suite.T(), response.Settings)
	assert.False(suite.T(), response.ExportedAt.IsZero())

	// The analytics in the bundle must match the dashboard figures
	assert.True(suite.T(), response.Analytics.Balance.Equal(decimal.NewFromInt(880)))
	assert.True(suite.T(), response.Analytics.SavingsRate.Equal(decimal.NewFromInt(88)))
}

func (suite *TestSuiteEnv) TestExportCSV() {
	suite.seedExampleData(decimal.NewFromInt(120))

	recorder := suite.request(http.MethodGet, "http://example.com/v1/privacy/export?format=csv", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	assert.Contains(suite.T(), recorder.Header().Get("Content-Disposition"), "attachment")

	records, err := csv.NewReader(strings.NewReader(recorder.Body.String())).ReadAll()
	assert.Nil(suite.T(), err)

	// Header plus both transactions
	assert.Len(suite.T(), records, 3)
	assert.Equal(suite.T(), []string{"id", "date", "type", "category", "description", "amount", "notes"}, records[0])

	// Newest first ordering carries over into the CSV
	assert.Equal(suite.T(), "salary", records[1][4])
	assert.Equal(suite.T(), "groceries", records[2][4])
}

func (suite *TestSuiteEnv) TestExportInvalidFormat() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/privacy/export?format=xml", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteEnv) TestExportDateRange() {
	suite.seedExampleData(decimal.NewFromInt(120))

	recorder := suite.request(http.MethodGet, "http://example.com/v1/privacy/export?startDate=2000-01-01&endDate=2000-01-31", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.ExportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Empty(suite.T(), response.Transactions)
	assert.True(suite.T(), response.Analytics.Income.IsZero())
}
