package sales

import "github.com/shopspring/decimal"

const CurrencySymbol = "$"

// Amount is a predicted sales value. It is never negative.
type Amount struct {
	value decimal.Decimal
}

// NewAmount clamps a raw model output to zero.
func NewAmount(raw float64) Amount {
	v := decimal.NewFromFloat(raw)
	if v.IsNegative() {
		v = decimal.Zero
	}
	return Amount{value: v}
}

func (a Amount) Float64() float64 {
	f, _ := a.value.Float64()
	return f
}

// String renders the amount with two fraction digits, e.g. "$1234.50".
func (a Amount) String() string {
	return CurrencySymbol + a.value.StringFixed(2)
}
