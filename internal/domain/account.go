package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a read-only view of a ledger account as observed at one
// committed state. Balance mutation happens only inside the store.
type Account struct {
	ID        string
	Currency  Currency
	Balance   decimal.Decimal
	CreatedAt time.Time
}
