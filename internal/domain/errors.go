package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrUnsupportedCurrency = errors.New("unsupported currency code")

	// Transaction errors
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Request errors
	ErrInvalidDescription = errors.New("invalid description")
	ErrInvalidPagination  = errors.New("invalid pagination parameters")
)
