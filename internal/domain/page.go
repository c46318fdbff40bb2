package domain

import (
	"fmt"
	"strings"
)

// Sort is the requested ordering of a transaction history page.
type Sort string

const (
	// SortDesc returns transactions newest first, the log's natural order.
	SortDesc Sort = "DESC"
	// SortAsc returns transactions oldest first.
	SortAsc Sort = "ASC"
)

// ParseSort normalizes and validates a sort direction.
func ParseSort(s string) (Sort, error) {
	switch Sort(strings.ToUpper(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	default:
		return "", fmt.Errorf("%w: sort must be ASC or DESC", ErrInvalidPagination)
	}
}

// Pageable describes one transaction history request.
type Pageable struct {
	Page int
	Size int
	Sort Sort
}

// TransactionPage is one slice of an account's history plus the pagination
// metadata computed from the same snapshot as the slice.
type TransactionPage struct {
	Page         int
	NextPage     *int
	TotalPages   int
	Transactions []Transaction
}
