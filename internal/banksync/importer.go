package banksync

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/budgeapp/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Result summarizes an import run.
type Result struct {
	Accounts int `json:"accounts"` // Linked accounts seen during the run
	Imported int `json:"imported"` // Newly created transactions
	Skipped  int `json:"skipped"`  // Duplicates and unusable records
}

// Import fetches accounts and transactions from the provider and
// stores them for the user.
//
// Transactions already imported in an earlier run are recognized by a
// hash over the provider values and skipped, so the operation is safe
// to repeat for overlapping date ranges.
func Import(ctx context.Context, db *gorm.DB, userID uuid.UUID, fetcher Fetcher, startDate, endDate time.Time) (Result, error) {
	var result Result

	accounts, err := fetcher.Accounts(ctx)
	if err != nil {
		return Result{}, err
	}

	for _, account := range accounts {
		bankAccount := models.BankAccount{
			UserID:     userID,
			ExternalID: account.ID,
			Name:       account.Name,
			Mask:       account.Mask,
		}

		err := db.Where(&models.BankAccount{UserID: userID, ExternalID: account.ID}).
			FirstOrCreate(&bankAccount).Error
		if err != nil {
			return Result{}, err
		}
	}
	result.Accounts = len(accounts)

	external, err := fetcher.Transactions(ctx, startDate, endDate)
	if err != nil {
		return Result{}, err
	}

	categories, err := models.CategoriesForUser(db, userID, "")
	if err != nil {
		return Result{}, err
	}

	for _, transaction := range external {
		if transaction.Amount.IsZero() {
			result.Skipped++
			continue
		}

		// The provider reports outflows as positive amounts
		transactionType := models.CategoryTypeExpense
		amount := transaction.Amount
		if amount.IsNegative() {
			transactionType = models.CategoryTypeIncome
			amount = amount.Neg()
		}

		hash := importHash(userID, transaction)

		var count int64
		err = db.Model(&models.Transaction{}).
			Where(&models.Transaction{UserID: userID, ImportHash: hash}).
			Count(&count).Error
		if err != nil {
			return result, err
		}

		if count > 0 {
			result.Skipped++
			continue
		}

		category, ok := matchCategory(categories, transactionType, transaction.CategoryHint)
		if !ok {
			log.Warn().Str("description", transaction.Description).Msg("no category available for imported transaction")
			result.Skipped++
			continue
		}

		err = db.Create(&models.Transaction{
			UserID:      userID,
			CategoryID:  category.ID,
			Type:        transactionType,
			Amount:      amount,
			Description: transaction.Description,
			Date:        transaction.Date,
			ImportHash:  hash,
		}).Error
		if err != nil {
			return result, err
		}

		result.Imported++
	}

	return result, nil
}

// matchCategory picks the user category for an imported transaction.
// The provider's hint wins when a category of the right type carries
// the same name, otherwise the catch-all categories are used.
func matchCategory(categories []models.Category, transactionType models.CategoryType, hint string) (models.Category, bool) {
	hint = strings.ToLower(strings.TrimSpace(hint))

	var fallback models.Category
	var found bool

	for _, category := range categories {
		if category.Type != transactionType {
			continue
		}

		if hint != "" && strings.ToLower(category.Name) == hint {
			return category, true
		}

		name := strings.ToLower(category.Name)
		if !found || name == "other" || name == "other income" {
			fallback = category
			found = true
		}
	}

	return fallback, found
}

// importHash identifies a provider transaction across runs.
func importHash(userID uuid.UUID, transaction ExternalTransaction) string {
	input := fmt.Sprintf("%s:%s:%s:%s:%s",
		userID,
		transaction.AccountID,
		transaction.Date.Format("2006-01-02"),
		transaction.Amount,
		transaction.Description,
	)

	return fmt.Sprintf("%x", sha256.Sum256([]byte(input)))
}
