package models

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultMonthlyBudget is used until a user sets their own monthly
// budget. The unit is whatever currency the client displays.
var DefaultMonthlyBudget = decimal.NewFromInt(3000)

// Settings holds the per-user scalar settings. Currently that is only
// the monthly budget the aggregate calculator compares expenses against.
type Settings struct {
	DefaultModel
	User          User            `json:"-"`
	UserID        uuid.UUID       `json:"-" gorm:"uniqueIndex"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget" gorm:"type:DECIMAL(20,8)" example:"3000"`
}

var (
	ErrSettingsNotUnique     = errors.New("there already are settings for this user")
	ErrMonthlyBudgetNegative = errors.New("the monthly budget must not be negative")
)

func (s *Settings) AfterSave(_ *gorm.DB) error {
	if s.MonthlyBudget.IsNegative() {
		return ErrMonthlyBudgetNegative
	}

	return nil
}

// SettingsForUser returns the settings row for the user, creating it
// with defaults on first use.
func SettingsForUser(db *gorm.DB, userID uuid.UUID) (Settings, error) {
	settings := Settings{
		UserID:        userID,
		MonthlyBudget: DefaultMonthlyBudget,
	}

	err := db.Where(&Settings{UserID: userID}).FirstOrCreate(&settings).Error
	if err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// Returns the settings of the user for export
func (Settings) Export(db *gorm.DB, userID uuid.UUID) (json.RawMessage, error) {
	settings, err := SettingsForUser(db, userID)
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&settings)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
