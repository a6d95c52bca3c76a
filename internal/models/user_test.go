package models_test

import (
	"github.com/budgeapp/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestUserDefaultCategories() {
	user := suite.createTestUser()

	categories, err := models.CategoriesForUser(models.DB, user.ID, "")
	assert.Nil(suite.T(), err)
	assert.NotEmpty(suite.T(), categories)

	var income, expense int
	for _, category := range categories {
		switch category.Type {
		case models.CategoryTypeIncome:
			income++
		case models.CategoryTypeExpense:
			expense++
		}

		assert.NotEmpty(suite.T(), category.Color)
		assert.NotEmpty(suite.T(), category.Icon)
	}

	assert.Equal(suite.T(), 2, income)
	assert.Equal(suite.T(), 6, expense)
}

func (suite *TestSuiteStandard) TestUserCategoriesIsolated() {
	first := suite.createTestUser()
	second := suite.createTestUser()

	categories, err := models.CategoriesForUser(models.DB, first.ID, "")
	assert.Nil(suite.T(), err)

	for _, category := range categories {
		assert.Equal(suite.T(), first.ID, category.UserID)
		assert.NotEqual(suite.T(), second.ID, category.UserID)
	}
}
