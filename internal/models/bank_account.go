package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BankAccount is a linked external account discovered during bank sync.
// It exists for display and export, balances are never tracked here.
type BankAccount struct {
	DefaultModel
	User       User      `json:"-"`
	UserID     uuid.UUID `json:"-" gorm:"uniqueIndex:bank_account_user_external"`
	ExternalID string    `json:"externalId" gorm:"uniqueIndex:bank_account_user_external"` // ID of the account at the provider
	Name       string    `json:"name" example:"Checking"`
	Mask       string    `json:"mask,omitempty" example:"4321"` // Last digits of the account number, as reported by the provider
}

func (a *BankAccount) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	return nil
}

func (a *BankAccount) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*BankAccount)
	return tx.First(&User{}, toSave.UserID).Error
}

// Returns all bank accounts of the user for export
func (BankAccount) Export(db *gorm.DB, userID uuid.UUID) (json.RawMessage, error) {
	var accounts []BankAccount
	err := db.Where(&BankAccount{UserID: userID}).Order("name ASC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&accounts)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
