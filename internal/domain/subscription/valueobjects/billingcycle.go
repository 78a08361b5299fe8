package valueobjects

import (
	"fmt"
	"strings"
	"time"
)

type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// NewBillingCycle validates a billing cycle value.
func NewBillingCycle(value string) (*BillingCycle, error) {
	bc := BillingCycle(value)
	switch bc {
	case BillingCycleMonthly, BillingCycleYearly:
		return &bc, nil
	default:
		return nil, fmt.Errorf("invalid billing cycle: %s", value)
	}
}

// ParseBillingCycle normalizes and validates user input.
func ParseBillingCycle(value string) (BillingCycle, error) {
	bc, err := NewBillingCycle(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		return "", err
	}
	return *bc, nil
}

func (c BillingCycle) String() string {
	return string(c)
}

// NextPeriodEnd advances a period start by one billing cycle using calendar
// arithmetic, so monthly periods land on the same day of the next month.
func (c BillingCycle) NextPeriodEnd(start time.Time) time.Time {
	switch c {
	case BillingCycleYearly:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}
