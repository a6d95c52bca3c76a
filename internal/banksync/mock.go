package banksync

import (
	"context"
	"time"
)

// MockFetcher is a Fetcher serving canned data for tests.
type MockFetcher struct {
	MockAccounts     []ExternalAccount
	MockTransactions []ExternalTransaction
	Err              error
}

func (m *MockFetcher) Accounts(_ context.Context) ([]ExternalAccount, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.MockAccounts, nil
}

func (m *MockFetcher) Transactions(_ context.Context, startDate, endDate time.Time) ([]ExternalTransaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	transactions := make([]ExternalTransaction, 0, len(m.MockTransactions))
	for _, transaction := range m.MockTransactions {
		if transaction.Date.Before(startDate) || transaction.Date.After(endDate) {
			continue
		}
		transactions = append(transactions, transaction)
	}

	return transactions, nil
}
