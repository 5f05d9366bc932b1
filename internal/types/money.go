// README: Common money value object used across modules.
package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// DefaultCurrency is used when a price arrives without a currency code.
const DefaultCurrency = "USD"

// Money is an amount in minor units (cents) so that sums stay exact.
type Money struct {
	Amount   int64
	Currency string
}

// FromMajor converts a decimal amount such as 123.45 into Money, rounding to the nearest cent.
func FromMajor(v float64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: int64(math.Round(v * 100)), Currency: currency}
}

// Major returns the amount as a decimal value.
func (m Money) Major() float64 {
	return float64(m.Amount) / 100
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount + o.Amount, Currency: m.currencyOr(o)}
}

func (m Money) Sub(o Money) Money {
	return Money{Amount: m.Amount - o.Amount, Currency: m.currencyOr(o)}
}

// Mul multiplies the amount by a whole quantity (e.g. number of nights).
func (m Money) Mul(n int) Money {
	return Money{Amount: m.Amount * int64(n), Currency: m.Currency}
}

func (m Money) IsPositive() bool {
	return m.Amount > 0
}

func (m Money) String() string {
	sign := ""
	amount := m.Amount
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, m.currencyOr(Money{}))
}

func (m Money) currencyOr(o Money) string {
	switch {
	case m.Currency != "":
		return m.Currency
	case o.Currency != "":
		return o.Currency
	default:
		return DefaultCurrency
	}
}

type moneyJSON struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.Major(), Currency: m.currencyOr(Money{})})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = FromMajor(v.Amount, v.Currency)
	return nil
}
