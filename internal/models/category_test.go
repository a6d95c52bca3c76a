package models_test

import (
	"errors"
	"testing"

	"github.com/budgeapp/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoryIconDefault() {
	user := suite.createTestUser()

	category := models.Category{UserID: user.ID, Name: "  Padded  ", Color: "#FA0", Type: models.CategoryTypeExpense}
	err := models.DB.Create(&category).Error
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), "Padded", category.Name, "name must be trimmed")
	assert.Equal(suite.T(), "folder", category.Icon)
}

func (suite *TestSuiteStandard) TestCategoryValidation() {
	user := suite.createTestUser()
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name     string
		category models.Category
		err      error
	}{
		{"empty name", models.Category{UserID: user.ID, Color: "#FA0", Type: models.CategoryTypeExpense}, models.ErrCategoryNameInvalid},
		{"bad color", models.Category{UserID: user.ID, Name: "Pets", Color: "red", Type: models.CategoryTypeExpense}, models.ErrCategoryColorInvalid},
		{"bad type", models.Category{UserID: user.ID, Name: "Pets", Color: "#FA0", Type: "investment"}, models.ErrCategoryTypeInvalid},
		{"negative budget", models.Category{UserID: user.ID, Name: "Pets", Color: "#FA0", Type: models.CategoryTypeExpense, Budget: &negative}, models.ErrCategoryBudgetNegative},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.category).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryNameUniquePerType() {
	user := suite.createTestUser()

	first := models.Category{UserID: user.ID, Name: "Garden", Color: "#FA0", Type: models.CategoryTypeExpense}
	assert.Nil(suite.T(), models.DB.Create(&first).Error)

	duplicate := models.Category{UserID: user.ID, Name: "Garden", Color: "#FA0", Type: models.CategoryTypeExpense}
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)

	// Same name, other type is fine
	otherType := models.Category{UserID: user.ID, Name: "Garden", Color: "#FA0", Type: models.CategoryTypeIncome}
	assert.Nil(suite.T(), models.DB.Create(&otherType).Error)

	// Same name for another user is fine
	other := suite.createTestUser()
	otherUser := models.Category{UserID: other.ID, Name: "Garden", Color: "#FA0", Type: models.CategoryTypeExpense}
	assert.Nil(suite.T(), models.DB.Create(&otherUser).Error)
}

func (suite *TestSuiteStandard) TestCategoryTypeImmutable() {
	user := suite.createTestUser()

	category := models.Category{UserID: user.ID, Name: "Fixed", Color: "#FA0", Type: models.CategoryTypeExpense}
	assert.Nil(suite.T(), models.DB.Create(&category).Error)

	err := models.DB.Model(&category).Select("", "Type").Updates(models.Category{Type: models.CategoryTypeIncome}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryTypeImmutable)
}

func (suite *TestSuiteStandard) TestCategoryDeleteBlockedWhileInUse() {
	user := suite.createTestUser()

	category := models.Category{UserID: user.ID, Name: "Referenced", Color: "#FA0", Type: models.CategoryTypeExpense}
	assert.Nil(suite.T(), models.DB.Create(&category).Error)

	transaction := models.Transaction{
		UserID:      user.ID,
		CategoryID:  category.ID,
		Type:        models.CategoryTypeExpense,
		Amount:      decimal.NewFromInt(10),
		Description: "blocker",
	}
	assert.Nil(suite.T(), models.DB.Create(&transaction).Error)

	err := models.DB.Delete(&category).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryInUse)

	var inUse models.CategoryInUseError
	assert.True(suite.T(), errors.As(err, &inUse))
	assert.Equal(suite.T(), int64(1), inUse.TransactionCount)

	// After the transaction is gone, deletion succeeds
	assert.Nil(suite.T(), models.DB.Delete(&transaction).Error)
	assert.Nil(suite.T(), models.DB.Delete(&category).Error)
}
