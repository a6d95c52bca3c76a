// Package banksync imports transactions from a linked bank into a
// user's ledger.
package banksync

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExternalAccount is a bank account as reported by the provider.
type ExternalAccount struct {
	ID   string // ID of the account at the provider
	Name string
	Mask string
}

// ExternalTransaction is a bank transaction as reported by the
// provider. The amount keeps the provider's sign convention: positive
// amounts are outflows, negative amounts are inflows.
type ExternalTransaction struct {
	AccountID    string
	Date         time.Time
	Amount       decimal.Decimal
	Description  string
	CategoryHint string // Provider's category label, matched best-effort against the user's categories
}

// Fetcher fetches account and transaction data from a bank provider.
// The interface allows mocking in tests and swapping providers.
type Fetcher interface {
	Accounts(ctx context.Context) ([]ExternalAccount, error)
	Transactions(ctx context.Context, startDate, endDate time.Time) ([]ExternalTransaction, error)
}
