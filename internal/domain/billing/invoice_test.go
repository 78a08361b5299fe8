package billing

import (
	"testing"
	"time"

	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing/valueobjects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineItem(t *testing.T, desc string, amount int64, qty int) vo.LineItem {
	t.Helper()
	item, err := vo.NewLineItem(desc, amount, qty)
	require.NoError(t, err)
	return item
}

func newPendingInvoice(t *testing.T) *Invoice {
	t.Helper()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	inv, err := NewInvoice(1, nil, "INV-202603-00001",
		[]vo.LineItem{lineItem(t, "Growth plan (monthly)", 199900, 1)},
		18, "INR", start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	return inv
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-202603-00001", FormatInvoiceNumber(2026, time.March, 1))
	assert.Equal(t, "INV-202611-00042", FormatInvoiceNumber(2026, time.November, 42))
	assert.Equal(t, "INV-202601-12345", FormatInvoiceNumber(2026, time.January, 12345))
}

func TestNewInvoice_AmountTaxTotalInvariant(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	items := []vo.LineItem{
		lineItem(t, "Growth plan (monthly)", 199900, 1),
		lineItem(t, "Extra seats", 9900, 3),
	}

	inv, err := NewInvoice(7, nil, "INV-202603-00009", items, 18, "INR", start, start.AddDate(0, 1, 0))

	require.NoError(t, err)
	assert.Equal(t, int64(229600), inv.Amount())
	assert.Equal(t, int64(41328), inv.TaxAmount())
	assert.Equal(t, inv.Amount()+inv.TaxAmount(), inv.TotalAmount())
	assert.Equal(t, vo.InvoiceStatusPending, inv.Status())
	assert.Len(t, inv.LineItems(), 2)
	assert.Equal(t, "Growth plan (monthly)", inv.LineItems()[0].Description(), "line item order is preserved")
}

func TestNewInvoice_ProrationCreditLineItem(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	items := []vo.LineItem{
		lineItem(t, "Enterprise plan (monthly)", 499900, 1),
		lineItem(t, "Credit: unused Growth period", -100000, 1),
	}

	inv, err := NewInvoice(7, nil, "INV-202603-00010", items, 0, "INR", start, start.AddDate(0, 1, 0))

	require.NoError(t, err)
	assert.Equal(t, int64(399900), inv.Amount())
	assert.Equal(t, int64(399900), inv.TotalAmount())
}

func TestNewInvoice_InvalidInput(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	items := []vo.LineItem{lineItem(t, "Plan", 100, 1)}

	_, err := NewInvoice(0, nil, "INV-202603-00001", items, 18, "INR", start, end)
	assert.Error(t, err, "zero tenant")

	_, err = NewInvoice(1, nil, "", items, 18, "INR", start, end)
	assert.Error(t, err, "missing number")

	_, err = NewInvoice(1, nil, "INV-202603-00001", nil, 18, "INR", start, end)
	assert.Error(t, err, "no line items")

	_, err = NewInvoice(1, nil, "INV-202603-00001", items, 18, "INR", end, start)
	assert.Error(t, err, "inverted period")

	credit := []vo.LineItem{lineItem(t, "Credit", -200, 1)}
	_, err = NewInvoice(1, nil, "INV-202603-00001", credit, 18, "INR", start, end)
	assert.Error(t, err, "negative subtotal")
}

func TestInvoice_PaidLifecycle(t *testing.T) {
	inv := newPendingInvoice(t)
	paidAt := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	require.NoError(t, inv.MarkPaid(paidAt))
	assert.Equal(t, vo.InvoiceStatusPaid, inv.Status())
	require.NotNil(t, inv.PaidAt())
	assert.Equal(t, paidAt, *inv.PaidAt())

	require.NoError(t, inv.MarkPaid(paidAt.Add(time.Hour)), "idempotent")
	assert.Equal(t, paidAt, *inv.PaidAt())

	assert.Error(t, inv.MarkFailed("late decline"), "paid invoice cannot fail")
	assert.Error(t, inv.Cancel(), "paid invoice cannot be cancelled")

	require.NoError(t, inv.MarkRefunded())
	assert.Equal(t, vo.InvoiceStatusRefunded, inv.Status())
}

func TestInvoice_FailedThenRecovered(t *testing.T) {
	inv := newPendingInvoice(t)

	require.NoError(t, inv.MarkFailed("card declined"))
	assert.Equal(t, vo.InvoiceStatusFailed, inv.Status())
	require.NotNil(t, inv.FailureReason())

	require.NoError(t, inv.MarkPaid(time.Now().UTC()))
	assert.Equal(t, vo.InvoiceStatusPaid, inv.Status())
	assert.Nil(t, inv.FailureReason(), "failure reason cleared on settlement")
}

func TestInvoice_Cancel(t *testing.T) {
	inv := newPendingInvoice(t)

	require.NoError(t, inv.Cancel())
	assert.Equal(t, vo.InvoiceStatusCancelled, inv.Status())

	assert.Error(t, inv.MarkPaid(time.Now().UTC()))
	assert.Error(t, inv.MarkRefunded())
}

func TestReconstructInvoice_RejectsBrokenTotal(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := ReconstructInvoice(InvoiceReconstructParams{
		ID:            1,
		TenantID:      1,
		InvoiceNumber: "INV-202603-00001",
		Amount:        100,
		TaxAmount:     18,
		TotalAmount:   999,
		Currency:      "INR",
		Status:        vo.InvoiceStatusPending,
		PeriodStart:   start,
		PeriodEnd:     start.AddDate(0, 1, 0),
	})
	assert.Error(t, err)
}

func TestInvoiceSequence_Next(t *testing.T) {
	seq, err := NewInvoiceSequence(2026, time.March)
	require.NoError(t, err)

	assert.Equal(t, int64(1), seq.Next())
	assert.Equal(t, int64(2), seq.Next())
	assert.Equal(t, "INV-202603-00002", seq.NumberFor(seq.LastValue()))

	_, err = NewInvoiceSequence(99, time.March)
	assert.Error(t, err)
	_, err = NewInvoiceSequence(2026, time.Month(13))
	assert.Error(t, err)
}
