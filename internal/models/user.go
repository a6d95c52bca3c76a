package models

import (
	"strings"

	"gorm.io/gorm"
)

// User anchors ownership for every other resource. Budge runs a full
// account system upstream; the backend only needs the subject of the
// bearer token, so nothing credential-related is stored here.
type User struct {
	DefaultModel
	Email string `json:"email,omitempty" example:"jane@example.com"`
}

// defaultCategories are created for every new user so that the mobile
// client has sensible buckets to classify into from the first session.
var defaultCategories = []Category{
	{Name: "Salary", Type: CategoryTypeIncome, Color: "#4CAF50", Icon: "briefcase"},
	{Name: "Other Income", Type: CategoryTypeIncome, Color: "#8BC34A", Icon: "trending-up"},
	{Name: "Food & Dining", Type: CategoryTypeExpense, Color: "#FF9800", Icon: "utensils"},
	{Name: "Transport", Type: CategoryTypeExpense, Color: "#2196F3", Icon: "car"},
	{Name: "Shopping", Type: CategoryTypeExpense, Color: "#E91E63", Icon: "shopping-bag"},
	{Name: "Bills & Utilities", Type: CategoryTypeExpense, Color: "#F44336", Icon: "file-text"},
	{Name: "Entertainment", Type: CategoryTypeExpense, Color: "#9C27B0", Icon: "film"},
	{Name: "Other", Type: CategoryTypeExpense, Color: "#607D8B", Icon: "folder"},
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.TrimSpace(u.Email)
	return nil
}

// AfterCreate seeds the default categories for the new user.
func (u *User) AfterCreate(tx *gorm.DB) error {
	for _, category := range defaultCategories {
		category.UserID = u.ID
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
	}

	return nil
}
