package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryType is the type of a category. Transactions referencing a
// category must carry the same type.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether the type is one of the supported values.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category represents a named, colored bucket that transactions are
// classified into.
type Category struct {
	DefaultModel
	User   User             `json:"-"`
	UserID uuid.UUID        `json:"-" gorm:"uniqueIndex:category_user_name_type"`
	Name   string           `json:"name" gorm:"uniqueIndex:category_user_name_type" example:"Groceries"`
	Type   CategoryType     `json:"type" gorm:"uniqueIndex:category_user_name_type" example:"expense"`
	Color  string           `json:"color" example:"#FF9800"`                      // Hex color for the client, # plus 3 or 6 hex digits
	Icon   string           `json:"icon" example:"folder" default:"folder"`       // Icon name for the client
	Budget *decimal.Decimal `json:"budget,omitempty" gorm:"type:DECIMAL(20,8)"`   // Optional monthly ceiling, used for expense categories
}

var (
	ErrCategoryNameNotUnique  = errors.New("the category name must be unique per user and type")
	ErrCategoryNameInvalid    = errors.New("the category name must be between 1 and 50 characters")
	ErrCategoryColorInvalid   = errors.New("the category color must be a hex value with 3 or 6 digits, e.g. #FA0 or #FFAA00")
	ErrCategoryTypeInvalid    = errors.New("the category type must be income or expense")
	ErrCategoryTypeImmutable  = errors.New("the category type cannot be changed after creation")
	ErrCategoryBudgetNegative = errors.New("the category budget must not be negative")
	ErrCategoryInUse          = errors.New("the category cannot be deleted while transactions reference it")
)

// CategoryInUseError carries the number of referencing transactions so
// that the API can report it alongside the error.
type CategoryInUseError struct {
	TransactionCount int64
}

func (e CategoryInUseError) Error() string {
	return fmt.Sprintf("%v: %d transactions", ErrCategoryInUse, e.TransactionCount)
}

func (e CategoryInUseError) Unwrap() error {
	return ErrCategoryInUse
}

var colorPattern = regexp.MustCompile("^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$")

// validate checks all user configurable fields.
func (c Category) validate() error {
	if len(c.Name) < 1 || len(c.Name) > 50 {
		return ErrCategoryNameInvalid
	}

	if !colorPattern.MatchString(c.Color) {
		return ErrCategoryColorInvalid
	}

	if !c.Type.Valid() {
		return ErrCategoryTypeInvalid
	}

	if c.Budget != nil && c.Budget.IsNegative() {
		return ErrCategoryBudgetNegative
	}

	return nil
}

// BeforeSave trims whitespace and sets the icon default.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Icon == "" {
		c.Icon = "folder"
	}

	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Category)
	if err := toSave.validate(); err != nil {
		return err
	}

	return c.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the category before committing an
// update to the database. The type is immutable after creation.
func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Category)

	if tx.Statement.Changed("Type") {
		return ErrCategoryTypeImmutable
	}

	if tx.Statement.Changed("UserID") {
		if err := c.checkIntegrity(tx, toSave); err != nil {
			return err
		}
	}

	// Validate the category as it will be after the update
	effective := *c
	if tx.Statement.Changed("Name") {
		effective.Name = strings.TrimSpace(toSave.Name)
	}
	if tx.Statement.Changed("Color") {
		effective.Color = toSave.Color
	}
	if tx.Statement.Changed("Budget") {
		effective.Budget = toSave.Budget
	}

	return effective.validate()
}

// BeforeDelete blocks the deletion while transactions reference the
// category. This is a referential integrity guard, not a cascade.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Transaction{}).
		Where("category_id = ?", c.ID).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return CategoryInUseError{TransactionCount: count}
	}

	return nil
}

// checkIntegrity verifies that the owning user exists.
func (c *Category) checkIntegrity(tx *gorm.DB, toSave Category) error {
	return tx.First(&User{}, toSave.UserID).Error
}

// Returns all categories of the user for export
func (Category) Export(db *gorm.DB, userID uuid.UUID) (json.RawMessage, error) {
	var categories []Category
	err := db.Where(&Category{UserID: userID}).Order("type ASC, name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&categories)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
