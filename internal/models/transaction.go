package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurrenceFrequency is the display-only recurrence unit for a
// transaction. Recurring transactions are never generated automatically.
type RecurrenceFrequency string

const (
	RecurrenceDaily   RecurrenceFrequency = "daily"
	RecurrenceWeekly  RecurrenceFrequency = "weekly"
	RecurrenceMonthly RecurrenceFrequency = "monthly"
	RecurrenceYearly  RecurrenceFrequency = "yearly"
)

// Valid reports whether the frequency is one of the supported values.
func (f RecurrenceFrequency) Valid() bool {
	switch f {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// Transaction represents a single dated monetary event of type income
// or expense.
type Transaction struct {
	DefaultModel
	User                User                `json:"-"`
	UserID              uuid.UUID           `json:"-"`
	Category            Category            `json:"-"`
	CategoryID          uuid.UUID           `json:"category" example:"d4b2a1ee-27c4-4b17-737f-ac3e8e7c2a1a"`
	Type                CategoryType        `json:"type" example:"expense"`
	Amount              decimal.Decimal     `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.50"`
	Description         string              `json:"description" example:"Lunch at the corner place"`
	Date                time.Time           `json:"date" example:"2025-01-05T00:00:00Z"`
	Notes               string              `json:"notes,omitempty"`
	IsRecurring         bool                `json:"isRecurring" default:"false"`
	RecurrenceFrequency RecurrenceFrequency `json:"recurrenceFrequency,omitempty" example:"monthly"`
	RecurrenceInterval  uint                `json:"recurrenceInterval,omitempty" example:"1"`
	RecurrenceEndDate   *time.Time          `json:"recurrenceEndDate,omitempty"`
	ImportHash          string              `json:"-"` // SHA256 over the import source values, used for duplicate detection during bank sync
}

var (
	ErrTransactionAmountNotPositive = errors.New("the transaction amount must be larger than zero")
	ErrTransactionDescriptionLength = errors.New("the transaction description must be between 1 and 200 characters")
	ErrTransactionNotesTooLong      = errors.New("the transaction notes must not be longer than 500 characters")
	ErrTransactionTypeInvalid       = errors.New("the transaction type must be income or expense")
	ErrCategoryTypeMismatch         = errors.New("the transaction type must match the type of its category")
	ErrRecurrenceInvalid            = errors.New("the recurrence frequency must be daily, weekly, monthly or yearly")
)

// validate checks all user configurable fields.
func (t Transaction) validate() error {
	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	if len(t.Description) < 1 || len(t.Description) > 200 {
		return ErrTransactionDescriptionLength
	}

	if len(t.Notes) > 500 {
		return ErrTransactionNotesTooLong
	}

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if t.IsRecurring && !t.RecurrenceFrequency.Valid() {
		return ErrRecurrenceInvalid
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the date if it is not set and normalizes it to UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Description = strings.TrimSpace(t.Description)
	t.Notes = strings.TrimSpace(t.Notes)

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	if err := toSave.validate(); err != nil {
		return err
	}

	return t.checkCategory(tx, toSave.UserID, toSave.CategoryID, toSave.Type)
}

// BeforeUpdate verifies the transaction as it will be after the update.
// The category/type consistency check applies whenever either side of
// the pair changes.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Transaction)

	effective := *t
	if tx.Statement.Changed("Amount") {
		effective.Amount = toSave.Amount
	}
	if tx.Statement.Changed("Description") {
		effective.Description = strings.TrimSpace(toSave.Description)
	}
	if tx.Statement.Changed("Notes") {
		effective.Notes = strings.TrimSpace(toSave.Notes)
	}
	if tx.Statement.Changed("Type") {
		effective.Type = toSave.Type
	}
	if tx.Statement.Changed("CategoryID") {
		effective.CategoryID = toSave.CategoryID
	}
	if tx.Statement.Changed("IsRecurring") {
		effective.IsRecurring = toSave.IsRecurring
	}
	if tx.Statement.Changed("RecurrenceFrequency") {
		effective.RecurrenceFrequency = toSave.RecurrenceFrequency
	}

	if err := effective.validate(); err != nil {
		return err
	}

	if tx.Statement.Changed("Type") || tx.Statement.Changed("CategoryID") {
		return t.checkCategory(tx, effective.UserID, effective.CategoryID, effective.Type)
	}

	return nil
}

// checkCategory verifies that the referenced category exists, belongs
// to the same user and carries the same type.
func (t *Transaction) checkCategory(tx *gorm.DB, userID, categoryID uuid.UUID, transactionType CategoryType) error {
	var category Category
	err := tx.Where(&Category{UserID: userID}).First(&category, categoryID).Error
	if err != nil {
		return err
	}

	if category.Type != transactionType {
		return ErrCategoryTypeMismatch
	}

	return nil
}

// Returns all transactions of the user for export
func (Transaction) Export(db *gorm.DB, userID uuid.UUID) (json.RawMessage, error) {
	var transactions []Transaction
	err := db.Where(&Transaction{UserID: userID}).Order("date DESC, id ASC").Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&transactions)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
