package models_test

import (
	"testing"
	"time"

	"github.com/budgeapp/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestCategories returns one income and one expense category for
// the user.
func (suite *TestSuiteStandard) createTestCategories(user models.User) (income, expense models.Category) {
	income = models.Category{UserID: user.ID, Name: "Income " + uuid.NewString()[:8], Color: "#FA0", Type: models.CategoryTypeIncome}
	suite.Require().Nil(models.DB.Create(&income).Error)

	expense = models.Category{UserID: user.ID, Name: "Expense " + uuid.NewString()[:8], Color: "#FA0", Type: models.CategoryTypeExpense}
	suite.Require().Nil(models.DB.Create(&expense).Error)

	return
}

func (suite *TestSuiteStandard) TestTransactionDateDefault() {
	user := suite.createTestUser()
	_, expense := suite.createTestCategories(user)

	transaction := models.Transaction{
		UserID:      user.ID,
		CategoryID:  expense.ID,
		Type:        models.CategoryTypeExpense,
		Amount:      decimal.NewFromInt(10),
		Description: "no date given",
	}
	assert.Nil(suite.T(), models.DB.Create(&transaction).Error)
	assert.False(suite.T(), transaction.Date.IsZero(), "date must default to the creation time")
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	user := suite.createTestUser()
	_, expense := suite.createTestCategories(user)

	longNotes := make([]byte, 501)
	for i := range longNotes {
		longNotes[i] = 'a'
	}

	tests := []struct {
		name        string
		transaction models.Transaction
		err         error
	}{
		{
			"zero amount",
			models.Transaction{UserID: user.ID, CategoryID: expense.ID, Type: models.CategoryTypeExpense, Description: "x"},
			models.ErrTransactionAmountNotPositive,
		},
		{
			"negative amount",
			models.Transaction{UserID: user.ID, CategoryID: expense.ID, Type: models.CategoryTypeExpense, Amount: decimal.NewFromInt(-1), Description: "x"},
			models.ErrTransactionAmountNotPositive,
		},
		{
			"empty description",
			models.Transaction{UserID: user.ID, CategoryID: expense.ID, Type: models.CategoryTypeExpense, Amount: decimal.NewFromInt(1)},
			models.ErrTransactionDescriptionLength,
		},
		{
			"notes too long",
			models.Transaction{UserID: user.ID, CategoryID: expense.ID, Type: models.CategoryTypeExpense, Amount: decimal.NewFromInt(1), Description: "x", Notes: string(longNotes)},
			models.ErrTransactionNotesTooLong,
		},
		{
			"invalid type",
			models.Transaction{UserID: user.ID, CategoryID: expense.ID, Type: "transfer", Amount: decimal.NewFromInt(1), Description: "x"},
			models.ErrTransactionTypeInvalid,
		},
		{
			"recurring without frequency",
			models.Transaction{UserID: user.ID, CategoryID: expense.ID, Type: models.CategoryTypeExpense, Amount: decimal.NewFromInt(1), Description: "x", IsRecurring: true},
			models.ErrRecurrenceInvalid,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.transaction).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionCategoryTypeMismatch() {
	user := suite.createTestUser()
	income, expense := suite.createTestCategories(user)

	tests := []struct {
		name            string
		categoryID      uuid.UUID
		transactionType models.CategoryType
	}{
		{"expense into income category", income.ID, models.CategoryTypeExpense},
		{"income into expense category", expense.ID, models.CategoryTypeIncome},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			transaction := models.Transaction{
				UserID:      user.ID,
				CategoryID:  tt.categoryID,
				Type:        tt.transactionType,
				Amount:      decimal.NewFromInt(10),
				Description: "mismatch",
			}
			err := models.DB.Create(&transaction).Error
			assert.ErrorIs(t, err, models.ErrCategoryTypeMismatch)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionUpdateRechecksCategory() {
	user := suite.createTestUser()
	income, expense := suite.createTestCategories(user)

	transaction := models.Transaction{
		UserID:      user.ID,
		CategoryID:  expense.ID,
		Type:        models.CategoryTypeExpense,
		Amount:      decimal.NewFromInt(10),
		Description: "starts valid",
	}
	suite.Require().Nil(models.DB.Create(&transaction).Error)

	err := models.DB.Model(&transaction).Select("", "CategoryID").Updates(models.Transaction{CategoryID: income.ID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryTypeMismatch)
}

func (suite *TestSuiteStandard) TestTransactionForeignUserCategory() {
	user := suite.createTestUser()
	other := suite.createTestUser()
	_, foreignExpense := suite.createTestCategories(other)

	transaction := models.Transaction{
		UserID:      user.ID,
		CategoryID:  foreignExpense.ID,
		Type:        models.CategoryTypeExpense,
		Amount:      decimal.NewFromInt(10),
		Description: "not my category",
	}
	err := models.DB.Create(&transaction).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound, "categories of other users must not be usable")
}

func (suite *TestSuiteStandard) TestTransactionOrdering() {
	user := suite.createTestUser()
	_, expense := suite.createTestCategories(user)

	date := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	for _, description := range []string{"first", "second"} {
		transaction := models.Transaction{
			UserID:      user.ID,
			CategoryID:  expense.ID,
			Type:        models.CategoryTypeExpense,
			Amount:      decimal.NewFromInt(10),
			Description: description,
			Date:        date,
		}
		suite.Require().Nil(models.DB.Create(&transaction).Error)
	}

	older := models.Transaction{
		UserID:      user.ID,
		CategoryID:  expense.ID,
		Type:        models.CategoryTypeExpense,
		Amount:      decimal.NewFromInt(10),
		Description: "older",
		Date:        date.AddDate(0, 0, -1),
	}
	suite.Require().Nil(models.DB.Create(&older).Error)

	transactions, err := models.TransactionsForUser(models.DB, user.ID, models.TransactionFilter{})
	assert.Nil(suite.T(), err)
	suite.Require().Len(transactions, 3)

	// Newest first, identical dates ordered by ID for stability
	assert.Equal(suite.T(), "older", transactions[2].Description)
	assert.True(suite.T(), transactions[0].ID.String() < transactions[1].ID.String())
}
