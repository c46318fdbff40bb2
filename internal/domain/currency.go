package domain

import (
	"fmt"
	"strings"
)

// Currency is a supported ISO 4217 currency code. The set is closed: an
// account is opened with one of these and keeps it for life.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCHF Currency = "CHF"
)

// DefaultPrecision holds the number of decimal places allowed per currency
// when configuration does not override it.
var DefaultPrecision = map[Currency]int{
	CurrencyUSD: 2,
	CurrencyEUR: 2,
	CurrencyGBP: 2,
	CurrencyJPY: 0,
	CurrencyCHF: 2,
}

// ParseCurrency normalizes and validates a currency code.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := DefaultPrecision[c]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCurrency, code)
	}
	return c, nil
}

// String returns the currency code.
func (c Currency) String() string {
	return string(c)
}
