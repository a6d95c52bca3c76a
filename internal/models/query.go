package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter restricts which transactions of a user are read.
// Zero values mean "no restriction".
type TransactionFilter struct {
	Type       CategoryType
	CategoryID uuid.UUID
	From       time.Time
	To         time.Time
}

// TransactionQuery builds the query for a user's transactions with the
// filter applied.
//
// queryFields names the filter fields the caller wants applied even
// when they hold zero values, in the form httputil.GetURLFields
// returns them. Without queryFields only the non-zero filter fields
// restrict the result.
//
// Ordering is date descending with the ID as tie-break so that pages
// are stable for transactions sharing a date.
func TransactionQuery(db *gorm.DB, userID uuid.UUID, filter TransactionFilter, queryFields ...any) *gorm.DB {
	q := db.Model(&Transaction{}).
		Where(&Transaction{UserID: userID}).
		Where(&Transaction{Type: filter.Type, CategoryID: filter.CategoryID}, queryFields...).
		Order("date DESC, id ASC")

	if !filter.From.IsZero() {
		q = q.Where("date >= ?", filter.From.In(time.UTC))
	}

	if !filter.To.IsZero() {
		q = q.Where("date <= ?", filter.To.In(time.UTC))
	}

	return q
}

// TransactionsForUser returns all transactions of the user matching the
// filter.
func TransactionsForUser(db *gorm.DB, userID uuid.UUID, filter TransactionFilter) ([]Transaction, error) {
	var transactions []Transaction
	err := TransactionQuery(db, userID, filter).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// CategoriesForUser returns the user's categories, optionally filtered
// by type. Ordering is (type, name) ascending for deterministic display.
func CategoriesForUser(db *gorm.DB, userID uuid.UUID, categoryType CategoryType) ([]Category, error) {
	q := db.
		Where(&Category{UserID: userID}).
		Order("type ASC, name ASC")

	if categoryType != "" {
		q = q.Where("type = ?", categoryType)
	}

	var categories []Category
	err := q.Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}
