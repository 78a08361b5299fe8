package valueobjects

import "fmt"

// Money holds an amount in minor currency units (paise for INR). Arithmetic
// never leaves integer space; display formatting is an interface concern.
type Money struct {
	amountMinor int64
	currency    string
}

func NewMoney(amountMinor int64, currency string) Money {
	if currency == "" {
		currency = "INR"
	}
	return Money{
		amountMinor: amountMinor,
		currency:    currency,
	}
}

func (m Money) AmountMinor() int64 {
	return m.amountMinor
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) AmountMajor() float64 {
	return float64(m.amountMinor) / 100.0
}

func (m Money) Equals(other Money) bool {
	return m.amountMinor == other.amountMinor && m.currency == other.currency
}

func (m Money) IsPositive() bool {
	return m.amountMinor > 0
}

func (m Money) IsNegative() bool {
	return m.amountMinor < 0
}

// Add returns the sum. Mixing currencies is a programming error.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{amountMinor: m.amountMinor + other.amountMinor, currency: m.currency}, nil
}

// TaxAt computes a percentage of the amount, rounded half up, as a new Money.
func (m Money) TaxAt(ratePercent float64) Money {
	if ratePercent <= 0 {
		return Money{amountMinor: 0, currency: m.currency}
	}
	tax := int64(float64(m.amountMinor)*ratePercent/100.0 + 0.5)
	return Money{amountMinor: tax, currency: m.currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.AmountMajor(), m.currency)
}
