package banksync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PlaidConfig holds the Plaid API configuration.
type PlaidConfig struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	AccessToken string
}

// Validate ensures all required fields are present.
func (c PlaidConfig) Validate() error {
	if c.ClientID == "" {
		return errors.New("plaid client ID is required")
	}
	if c.Secret == "" {
		return errors.New("plaid secret is required")
	}
	if c.AccessToken == "" {
		return errors.New("plaid access token is required")
	}

	if c.Environment != "sandbox" && c.Environment != "production" {
		return errors.New("invalid plaid environment: must be sandbox or production")
	}

	return nil
}

// PlaidFetcher implements Fetcher against the Plaid API.
type PlaidFetcher struct {
	client      *plaid.APIClient
	accessToken string
}

// NewPlaidFetcher creates a Fetcher for the given configuration.
func NewPlaidFetcher(cfg PlaidConfig) (*PlaidFetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &PlaidFetcher{
		client:      plaid.NewAPIClient(configuration),
		accessToken: cfg.AccessToken,
	}, nil
}

// Accounts fetches the linked accounts.
func (f *PlaidFetcher) Accounts(ctx context.Context) ([]ExternalAccount, error) {
	request := plaid.NewAccountsGetRequest(f.accessToken)
	resp, _, err := f.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accounts := make([]ExternalAccount, 0, len(resp.GetAccounts()))
	for _, account := range resp.GetAccounts() {
		accounts = append(accounts, ExternalAccount{
			ID:   account.GetAccountId(),
			Name: account.GetName(),
			Mask: account.GetMask(),
		})
	}

	return accounts, nil
}

// Transactions fetches all transactions in the date range, following
// Plaid's pagination.
func (f *PlaidFetcher) Transactions(ctx context.Context, startDate, endDate time.Time) ([]ExternalTransaction, error) {
	if startDate.After(endDate) {
		return nil, errors.New("start date must be before end date")
	}

	var all []plaid.Transaction
	offset := int32(0)
	const pageSize = int32(500) // Plaid's max page size

	for {
		request := plaid.NewTransactionsGetRequest(
			f.accessToken,
			startDate.Format("2006-01-02"),
			endDate.Format("2006-01-02"),
		)
		options := plaid.TransactionsGetRequestOptions{
			Count:  plaid.PtrInt32(pageSize),
			Offset: plaid.PtrInt32(offset),
		}
		request.SetOptions(options)

		resp, _, err := f.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch transactions: %w", err)
		}

		batch := resp.GetTransactions()
		all = append(all, batch...)

		if len(batch) < int(pageSize) {
			break
		}

		offset += pageSize
	}

	transactions := make([]ExternalTransaction, 0, len(all))
	for _, pt := range all {
		transactions = append(transactions, mapPlaidTransaction(pt))
	}

	return transactions, nil
}

func mapPlaidTransaction(pt plaid.Transaction) ExternalTransaction {
	date, err := time.Parse("2006-01-02", pt.GetDate())
	if err != nil {
		log.Error().Str("date", pt.GetDate()).Err(err).Msg("failed to parse transaction date")
		date = time.Now().In(time.UTC)
	}

	// Prefer the merchant name, fall back to the raw description
	description := pt.GetMerchantName()
	if description == "" {
		description = pt.GetName()
	}

	var hint string
	if categories := pt.GetCategory(); len(categories) > 0 {
		hint = categories[0]
	}

	return ExternalTransaction{
		AccountID:    pt.GetAccountId(),
		Date:         date,
		Amount:       decimal.NewFromFloat(pt.GetAmount()),
		Description:  description,
		CategoryHint: hint,
	}
}
