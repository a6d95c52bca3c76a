package models_test

import (
	"github.com/budgeapp/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSettingsCreatedWithDefault() {
	user := suite.createTestUser()

	settings, err := models.SettingsForUser(models.DB, user.ID)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), settings.MonthlyBudget.Equal(models.DefaultMonthlyBudget))

	// A second call returns the same row instead of creating another
	again, err := models.SettingsForUser(models.DB, user.ID)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), settings.ID, again.ID)
}

func (suite *TestSuiteStandard) TestSettingsUpdate() {
	user := suite.createTestUser()

	settings, err := models.SettingsForUser(models.DB, user.ID)
	suite.Require().Nil(err)

	err = models.DB.Model(&settings).Update("MonthlyBudget", decimal.NewFromInt(1234)).Error
	assert.Nil(suite.T(), err)

	settings, err = models.SettingsForUser(models.DB, user.ID)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), settings.MonthlyBudget.Equal(decimal.NewFromInt(1234)))
}

func (suite *TestSuiteStandard) TestSettingsNegativeBudget() {
	user := suite.createTestUser()

	settings := models.Settings{UserID: user.ID, MonthlyBudget: decimal.NewFromInt(-5)}
	err := models.DB.Create(&settings).Error
	assert.ErrorIs(suite.T(), err, models.ErrMonthlyBudgetNegative)
}

func (suite *TestSuiteStandard) TestSettingsPerUser() {
	first := suite.createTestUser()
	second := suite.createTestUser()

	firstSettings, err := models.SettingsForUser(models.DB, first.ID)
	suite.Require().Nil(err)
	secondSettings, err := models.SettingsForUser(models.DB, second.ID)
	suite.Require().Nil(err)

	assert.NotEqual(suite.T(), firstSettings.ID, secondSettings.ID)

	// Changing one user's budget must not leak to the other
	err = models.DB.Model(&firstSettings).Update("MonthlyBudget", decimal.NewFromInt(1)).Error
	suite.Require().Nil(err)

	secondSettings, err = models.SettingsForUser(models.DB, second.ID)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), secondSettings.MonthlyBudget.Equal(models.DefaultMonthlyBudget))
}
