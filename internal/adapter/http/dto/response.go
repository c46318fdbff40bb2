package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tinyledger/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	AccountID string          `json:"account_id"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		AccountID: a.ID,
		Currency:  a.Currency.String(),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

// BalanceResponse represents an account balance in API responses.
type BalanceResponse struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// TransactionResponse represents one recorded transaction.
type TransactionResponse struct {
	Timestamp   time.Time       `json:"timestamp"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
	Description *string         `json:"description,omitempty"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		Timestamp:   t.Timestamp,
		Amount:      t.Amount,
		Balance:     t.Balance,
		Description: t.Description,
	}
}

// TransactionsPageResponse represents one page of account history.
type TransactionsPageResponse struct {
	Page         int                   `json:"page"`
	NextPage     *int                  `json:"next_page"`
	TotalPages   int                   `json:"total_pages"`
	Transactions []TransactionResponse `json:"transactions"`
}

// TransactionsPageFromDomain converts a domain page to a response.
func TransactionsPageFromDomain(p *domain.TransactionPage) *TransactionsPageResponse {
	transactions := make([]TransactionResponse, len(p.Transactions))
	for i, t := range p.Transactions {
		transactions[i] = TransactionFromDomain(t)
	}

	return &TransactionsPageResponse{
		Page:         p.Page,
		NextPage:     p.NextPage,
		TotalPages:   p.TotalPages,
		Transactions: transactions,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
