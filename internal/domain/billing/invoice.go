package billing

import (
	"fmt"
	"time"

	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/id"
)

// FormatInvoiceNumber renders the human-readable invoice number for a
// month-scoped sequence value, e.g. INV-202603-00042.
func FormatInvoiceNumber(year int, month time.Month, seq int64) string {
	return fmt.Sprintf("INV-%04d%02d-%05d", year, int(month), seq)
}

// Invoice is a tenant-billed document. The amount/tax/total triple is
// derived once at construction and is immutable afterwards; status moves
// forward only through the Mark* methods.
type Invoice struct {
	id             uint
	sid            string
	invoiceNumber  string
	tenantID       uint
	subscriptionID *uint
	lineItems      []vo.LineItem
	amount         int64
	taxAmount      int64
	totalAmount    int64
	currency       string
	status         vo.InvoiceStatus
	periodStart    time.Time
	periodEnd      time.Time
	paidAt         *time.Time
	failureReason  *string
	notes          *string
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

// NewInvoice builds a pending invoice from ordered line items. The subtotal
// is the sum of line totals, tax is applied at taxRatePercent, and
// totalAmount always equals amount plus taxAmount.
func NewInvoice(
	tenantID uint,
	subscriptionID *uint,
	invoiceNumber string,
	lineItems []vo.LineItem,
	taxRatePercent float64,
	currency string,
	periodStart, periodEnd time.Time,
) (*Invoice, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if invoiceNumber == "" {
		return nil, fmt.Errorf("invoice number is required")
	}
	if len(lineItems) == 0 {
		return nil, fmt.Errorf("invoice requires at least one line item")
	}
	if !periodEnd.After(periodStart) {
		return nil, fmt.Errorf("period end must be after period start")
	}
	if currency == "" {
		currency = "INR"
	}

	var subtotal int64
	for _, item := range lineItems {
		subtotal += item.Total()
	}
	if subtotal < 0 {
		return nil, fmt.Errorf("invoice subtotal cannot be negative")
	}

	tax := vo.NewMoney(subtotal, currency).TaxAt(taxRatePercent).AmountMinor()

	now := biztime.NowUTC()
	items := make([]vo.LineItem, len(lineItems))
	copy(items, lineItems)

	return &Invoice{
		sid:            id.MustGenerateWithPrefix(id.PrefixInvoice),
		invoiceNumber:  invoiceNumber,
		tenantID:       tenantID,
		subscriptionID: subscriptionID,
		lineItems:      items,
		amount:         subtotal,
		taxAmount:      tax,
		totalAmount:    subtotal + tax,
		currency:       currency,
		status:         vo.InvoiceStatusPending,
		periodStart:    periodStart,
		periodEnd:      periodEnd,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// InvoiceReconstructParams carries persistence fields for reconstruction.
type InvoiceReconstructParams struct {
	ID             uint
	SID            string
	InvoiceNumber  string
	TenantID       uint
	SubscriptionID *uint
	LineItems      []vo.LineItem
	Amount         int64
	TaxAmount      int64
	TotalAmount    int64
	Currency       string
	Status         vo.InvoiceStatus
	PeriodStart    time.Time
	PeriodEnd      time.Time
	PaidAt         *time.Time
	FailureReason  *string
	Notes          *string
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReconstructInvoice reconstructs an invoice from persistence.
func ReconstructInvoice(p InvoiceReconstructParams) (*Invoice, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("invoice ID cannot be zero")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid invoice status: %s", p.Status)
	}
	if p.Amount+p.TaxAmount != p.TotalAmount {
		return nil, fmt.Errorf("invoice total %d does not equal amount %d plus tax %d", p.TotalAmount, p.Amount, p.TaxAmount)
	}

	return &Invoice{
		id:             p.ID,
		sid:            p.SID,
		invoiceNumber:  p.InvoiceNumber,
		tenantID:       p.TenantID,
		subscriptionID: p.SubscriptionID,
		lineItems:      p.LineItems,
		amount:         p.Amount,
		taxAmount:      p.TaxAmount,
		totalAmount:    p.TotalAmount,
		currency:       p.Currency,
		status:         p.Status,
		periodStart:    p.PeriodStart,
		periodEnd:      p.PeriodEnd,
		paidAt:         p.PaidAt,
		failureReason:  p.FailureReason,
		notes:          p.Notes,
		version:        p.Version,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}, nil
}

func (i *Invoice) ID() uint                  { return i.id }
func (i *Invoice) SID() string               { return i.sid }
func (i *Invoice) InvoiceNumber() string     { return i.invoiceNumber }
func (i *Invoice) TenantID() uint            { return i.tenantID }
func (i *Invoice) SubscriptionID() *uint     { return i.subscriptionID }
func (i *Invoice) Amount() int64             { return i.amount }
func (i *Invoice) TaxAmount() int64          { return i.taxAmount }
func (i *Invoice) TotalAmount() int64        { return i.totalAmount }
func (i *Invoice) Currency() string          { return i.currency }
func (i *Invoice) Status() vo.InvoiceStatus  { return i.status }
func (i *Invoice) PeriodStart() time.Time    { return i.periodStart }
func (i *Invoice) PeriodEnd() time.Time      { return i.periodEnd }
func (i *Invoice) PaidAt() *time.Time        { return i.paidAt }
func (i *Invoice) FailureReason() *string    { return i.failureReason }
func (i *Invoice) Notes() *string            { return i.notes }
func (i *Invoice) Version() int              { return i.version }
func (i *Invoice) CreatedAt() time.Time      { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time      { return i.updatedAt }

// LineItems returns a copy preserving order.
func (i *Invoice) LineItems() []vo.LineItem {
	items := make([]vo.LineItem, len(i.lineItems))
	copy(items, i.lineItems)
	return items
}

// SetID sets the invoice ID (only for persistence layer use).
func (i *Invoice) SetID(invoiceID uint) error {
	if i.id != 0 {
		return fmt.Errorf("invoice ID is already set")
	}
	if invoiceID == 0 {
		return fmt.Errorf("invoice ID cannot be zero")
	}
	i.id = invoiceID
	return nil
}

// MarkPaid settles the invoice after a completed payment.
func (i *Invoice) MarkPaid(paidAt time.Time) error {
	if i.status == vo.InvoiceStatusPaid {
		return nil
	}
	if i.status != vo.InvoiceStatusPending && i.status != vo.InvoiceStatusFailed {
		return fmt.Errorf("cannot mark invoice %s as paid from status %s", i.invoiceNumber, i.status)
	}
	i.status = vo.InvoiceStatusPaid
	i.paidAt = &paidAt
	i.failureReason = nil
	i.touch()
	return nil
}

// MarkFailed records a failed settlement attempt. The invoice stays
// collectible; a later successful payment moves it to paid.
func (i *Invoice) MarkFailed(reason string) error {
	if i.status != vo.InvoiceStatusPending && i.status != vo.InvoiceStatusFailed {
		return fmt.Errorf("cannot mark invoice %s as failed from status %s", i.invoiceNumber, i.status)
	}
	if reason == "" {
		return fmt.Errorf("failure reason is required")
	}
	i.status = vo.InvoiceStatusFailed
	i.failureReason = &reason
	i.touch()
	return nil
}

// MarkRefunded flags a paid invoice whose payment has been refunded.
func (i *Invoice) MarkRefunded() error {
	if i.status == vo.InvoiceStatusRefunded {
		return nil
	}
	if i.status != vo.InvoiceStatusPaid {
		return fmt.Errorf("cannot refund invoice %s with status %s", i.invoiceNumber, i.status)
	}
	i.status = vo.InvoiceStatusRefunded
	i.touch()
	return nil
}

// Cancel voids an uncollected invoice.
func (i *Invoice) Cancel() error {
	if i.status == vo.InvoiceStatusCancelled {
		return nil
	}
	if i.status != vo.InvoiceStatusPending && i.status != vo.InvoiceStatusFailed {
		return fmt.Errorf("cannot cancel invoice %s with status %s", i.invoiceNumber, i.status)
	}
	i.status = vo.InvoiceStatusCancelled
	i.touch()
	return nil
}

// AttachNotes replaces the free-form notes.
func (i *Invoice) AttachNotes(notes string) {
	i.notes = &notes
	i.touch()
}

func (i *Invoice) touch() {
	i.updatedAt = biztime.NowUTC()
	i.version++
}
