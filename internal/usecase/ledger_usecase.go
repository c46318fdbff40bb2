package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tinyledger/internal/domain"
)

// LedgerUseCase handles ledger business logic: account lifecycle, money
// movement validation and history queries. Precision limits are resolved here
// from configuration so the store stays free of it.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
	idGen      IDGenerator
	precision  map[string]int
}

// NewLedgerUseCase creates a new LedgerUseCase. precision maps currency codes
// to the maximum number of decimal places; currencies missing from the map
// fall back to domain defaults.
func NewLedgerUseCase(ledgerRepo LedgerRepository, idGen IDGenerator, precision map[string]int) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
		idGen:      idGen,
		precision:  precision,
	}
}

// OpenAccount creates a new zero-balance account in the given currency.
func (uc *LedgerUseCase) OpenAccount(ctx context.Context, currency domain.Currency) (*domain.Account, error) {
	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Currency:  currency,
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.ledgerRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *LedgerUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.ledgerRepo.GetByID(ctx, id)
}

// GetBalance returns the current committed balance.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	account, err := uc.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return account.Balance, nil
}

// GetCurrency returns the currency fixed at account creation.
func (uc *LedgerUseCase) GetCurrency(ctx context.Context, id string) (domain.Currency, error) {
	account, err := uc.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return account.Currency, nil
}

// MoneyMovementInput represents one signed money movement.
type MoneyMovementInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Description *string
}

// MoneyMovement validates and applies a signed amount against an account.
// Validation rejects before any mutation; the apply itself is atomic in the
// repository.
func (uc *LedgerUseCase) MoneyMovement(ctx context.Context, input MoneyMovementInput) (*domain.Transaction, error) {
	if input.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount cannot be zero", domain.ErrInvalidAmount)
	}

	currency, err := uc.GetCurrency(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount, uc.maxPrecision(currency)); err != nil {
		return nil, err
	}

	return uc.ledgerRepo.Apply(ctx, input.AccountID, input.Amount, input.Description)
}

// GetTransactionsInput represents a history query.
type GetTransactionsInput struct {
	AccountID string
	Page      int
	Size      int
	Sort      domain.Sort
}

// GetTransactions returns one page of account history. Missing values take
// the API defaults; the size ceiling is enforced at the HTTP boundary and
// clamped here as a backstop.
func (uc *LedgerUseCase) GetTransactions(ctx context.Context, input GetTransactionsInput) (*domain.TransactionPage, error) {
	if input.Page < 1 {
		input.Page = domain.DefaultPage
	}
	if input.Size <= 0 {
		input.Size = domain.DefaultPageSize
	}
	if input.Size > domain.MaxPageSize {
		input.Size = domain.MaxPageSize
	}
	if input.Sort == "" {
		input.Sort = domain.SortDesc
	}

	return uc.ledgerRepo.ListTransactions(ctx, input.AccountID, domain.Pageable{
		Page: input.Page,
		Size: input.Size,
		Sort: input.Sort,
	})
}

func (uc *LedgerUseCase) maxPrecision(currency domain.Currency) int {
	if p, ok := uc.precision[currency.String()]; ok {
		return p
	}
	return domain.DefaultPrecision[currency]
}
