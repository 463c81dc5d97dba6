package services

import (
	"math"
)

// AccountingCurrency is the currency every payment is normalized into.
const AccountingCurrency = "XOF"

// RateProvider converts a currency code to its rate against the
// accounting currency. Implementations must return ok=false for any
// currency they do not know; a silent default rate is a bug.
type RateProvider interface {
	Rate(currency string) (float64, bool)
}

// StaticRates is a fixed rate table. Today's production rates are
// approximations maintained by hand; the interface lets us swap a live
// provider in later without touching the reconciliation logic.
type StaticRates map[string]float64

func (r StaticRates) Rate(currency string) (float64, bool) {
	rate, ok := r[currency]
	return rate, ok
}

// DefaultRates returns the agency's accounting rates to XOF.
func DefaultRates() StaticRates {
	return StaticRates{
		"XOF": 1,
		"EUR": 655.957,
		"USD": 600,
	}
}

// ConvertToXOF converts amount in the given currency to rounded XOF.
// Unknown currencies are rejected, never treated as rate 1.
func ConvertToXOF(rates RateProvider, amount float64, currency string) (int64, error) {
	rate, ok := rates.Rate(currency)
	if !ok {
		return 0, NewValidationError("currency", "unsupported currency "+currency)
	}
	return int64(math.Round(amount * rate)), nil
}
