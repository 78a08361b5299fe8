package billing

import (
	"fmt"
	"time"
)

// InvoiceSequence is the per-calendar-month counter backing invoice number
// assignment. Concurrent generators serialize on this row (selected FOR
// UPDATE inside the invoice-creation transaction), so two invoices in the
// same month can never share a suffix.
type InvoiceSequence struct {
	id        uint
	year      int
	month     time.Month
	lastValue int64
	updatedAt time.Time
}

// NewInvoiceSequence opens a sequence for a month at zero.
func NewInvoiceSequence(year int, month time.Month) (*InvoiceSequence, error) {
	if year < 2000 || year > 9999 {
		return nil, fmt.Errorf("invalid sequence year: %d", year)
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid sequence month: %d", month)
	}
	return &InvoiceSequence{
		year:  year,
		month: month,
	}, nil
}

// ReconstructInvoiceSequence reconstructs a sequence row from persistence.
func ReconstructInvoiceSequence(id uint, year int, month time.Month, lastValue int64, updatedAt time.Time) *InvoiceSequence {
	return &InvoiceSequence{
		id:        id,
		year:      year,
		month:     month,
		lastValue: lastValue,
		updatedAt: updatedAt,
	}
}

func (s *InvoiceSequence) ID() uint             { return s.id }
func (s *InvoiceSequence) Year() int            { return s.year }
func (s *InvoiceSequence) Month() time.Month    { return s.month }
func (s *InvoiceSequence) LastValue() int64     { return s.lastValue }
func (s *InvoiceSequence) UpdatedAt() time.Time { return s.updatedAt }

// Next advances the counter and returns the new value.
func (s *InvoiceSequence) Next() int64 {
	s.lastValue++
	return s.lastValue
}

// NumberFor renders the invoice number for a sequence value in this month.
func (s *InvoiceSequence) NumberFor(seq int64) string {
	return FormatInvoiceNumber(s.year, s.month, seq)
}
