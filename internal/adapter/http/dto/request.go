package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/tinyledger/internal/domain"
	"github.com/iho/tinyledger/internal/usecase"
)

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	Currency string `json:"currency"`
}

// MoneyMovementRequest represents a signed money movement. A positive amount
// deposits, a negative amount withdraws.
type MoneyMovementRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
}

// Validate enforces the request-boundary rules that do not need ledger state.
func (r *MoneyMovementRequest) Validate() error {
	return domain.ValidateDescription(r.Description)
}

// ToUseCaseInput converts to use case input.
func (r *MoneyMovementRequest) ToUseCaseInput(accountID string) usecase.MoneyMovementInput {
	return usecase.MoneyMovementInput{
		AccountID:   accountID,
		Amount:      r.Amount,
		Description: r.Description,
	}
}
