package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/tinyledger/internal/domain"
)

// LedgerRepository defines atomic access to per-account ledger state.
type LedgerRepository interface {
	// Create inserts a fresh ledger; it is an idempotent no-op when the ID
	// already exists.
	Create(ctx context.Context, account *domain.Account) error
	// GetByID returns the account at its current committed state.
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// Apply performs the atomic check-and-commit of one money movement.
	Apply(ctx context.Context, id string, amount decimal.Decimal, description *string) (*domain.Transaction, error)
	// ListTransactions answers a history query from a single snapshot.
	ListTransactions(ctx context.Context, id string, p domain.Pageable) (*domain.TransactionPage, error)
}

// IDGenerator generates unique account IDs.
type IDGenerator interface {
	Generate() string
}
