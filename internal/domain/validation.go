package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MinPageSize          = 1
	MaxPageSize          = 100
	DefaultPageSize      = 10
	DefaultPage          = 1
)

// ValidateAmount rejects zero amounts and amounts carrying more decimal
// places than the account currency allows. It never mutates anything.
func ValidateAmount(amount decimal.Decimal, maxPrecision int) error {
	if amount.IsZero() {
		return fmt.Errorf("%w: amount cannot be zero", ErrInvalidAmount)
	}

	if scale := int(-amount.Exponent()); scale > maxPrecision {
		return fmt.Errorf("%w: at most %d decimal places allowed", ErrInvalidAmount, maxPrecision)
	}

	return nil
}

// ValidateDescription bounds the optional free-text description.
func ValidateDescription(description *string) error {
	if description == nil {
		return nil
	}

	if len(*description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	return nil
}

// ValidatePageable enforces the request-boundary ranges for history queries.
func ValidatePageable(p Pageable) error {
	if p.Page < 1 {
		return fmt.Errorf("%w: page must be at least 1", ErrInvalidPagination)
	}

	if p.Size < MinPageSize {
		return fmt.Errorf("%w: size must be at least %d", ErrInvalidPagination, MinPageSize)
	}

	if p.Size > MaxPageSize {
		return fmt.Errorf("%w: size cannot exceed %d", ErrInvalidPagination, MaxPageSize)
	}

	return nil
}
