package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one committed money movement. It is immutable once recorded:
// the log keeps it forever and never rewrites it.
type Transaction struct {
	Timestamp   time.Time
	Description *string
	Amount      decimal.Decimal
	// Balance is the account balance after this transaction was applied.
	Balance decimal.Decimal
}
