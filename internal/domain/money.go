package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is used when the backend sends bare amounts without a
// currency code, which is what the storefront API does today.
var DefaultCurrency = currency.INR

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// NewMoney wraps an amount in the storefront default currency.
func NewMoney(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Times returns the amount multiplied by a quantity, keeping the currency.
func (m Money) Times(qty int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(qty))),
		Currency: m.Currency,
	}
}
