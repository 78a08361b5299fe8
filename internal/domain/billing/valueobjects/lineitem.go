package valueobjects

import "fmt"

// LineItem is one ordered entry on an invoice. Amount is the unit price in
// minor currency units and may be negative for proration credits.
type LineItem struct {
	description string
	amount      int64
	quantity    int
}

func NewLineItem(description string, amount int64, quantity int) (LineItem, error) {
	if description == "" {
		return LineItem{}, fmt.Errorf("line item description is required")
	}
	if quantity <= 0 {
		return LineItem{}, fmt.Errorf("line item quantity must be positive")
	}
	return LineItem{
		description: description,
		amount:      amount,
		quantity:    quantity,
	}, nil
}

func (l LineItem) Description() string {
	return l.description
}

func (l LineItem) Amount() int64 {
	return l.amount
}

func (l LineItem) Quantity() int {
	return l.quantity
}

// Total is the line subtotal in minor units.
func (l LineItem) Total() int64 {
	return l.amount * int64(l.quantity)
}
