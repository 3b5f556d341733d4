package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/domain/entity"
	"github.com/jumapesa/billing-api/internal/domain/repository"
	"github.com/jumapesa/billing-api/pkg/apperror"
)

// CurrencyService handles currency and bank account reference data
type CurrencyService struct {
	currencyRepo repository.CurrencyRepository
	accountRepo  repository.AccountRepository
}

// NewCurrencyService creates a new currency service
func NewCurrencyService(currencyRepo repository.CurrencyRepository, accountRepo repository.AccountRepository) *CurrencyService {
	return &CurrencyService{
		currencyRepo: currencyRepo,
		accountRepo:  accountRepo,
	}
}

// ListCurrencies returns all supported currencies
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]entity.Currency, error) {
	return s.currencyRepo.List(ctx)
}

// GetCurrency retrieves a currency by ID
func (s *CurrencyService) GetCurrency(ctx context.Context, id uuid.UUID) (*entity.Currency, error) {
	currency, err := s.currencyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, apperror.NewNotFoundError("Currency")
	}
	return currency, nil
}

// ListAccounts returns all bank accounts
func (s *CurrencyService) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	return s.accountRepo.List(ctx)
}

// CreateAccountInput represents the input for creating a bank account
type CreateAccountInput struct {
	BankName     string
	BicSwiftCode string
	Number       string
	Enabled      bool
}

// CreateAccount creates a new bank account
func (s *CurrencyService) CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.Account, error) {
	account := &entity.Account{
		BankName:     input.BankName,
		BicSwiftCode: input.BicSwiftCode,
		Number:       input.Number,
		Enabled:      input.Enabled,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
