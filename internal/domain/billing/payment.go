package billing

import (
	"fmt"
	"time"

	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/id"
)

// Payment is one settlement attempt against an invoice. Gateway identifiers
// and signatures are stored as opaque strings; the captured amount is never
// mutated and refunds accumulate in a parallel trail.
type Payment struct {
	id             uint
	sid            string
	invoiceID      uint
	tenantID       uint
	amount         vo.Money
	status         vo.PaymentStatus
	method         *string
	gatewayOrderID *string
	gatewayPayID   *string
	gatewaySig     *string
	failureReason  *string
	refundAmount   int64
	refundedAt     *time.Time
	paidAt         *time.Time
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

// NewPayment opens a pending settlement attempt for an invoice.
func NewPayment(invoiceID, tenantID uint, amount vo.Money) (*Payment, error) {
	if invoiceID == 0 {
		return nil, fmt.Errorf("invoice ID is required")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	now := biztime.NowUTC()
	return &Payment{
		sid:       id.MustGenerateWithPrefix(id.PrefixPayment),
		invoiceID: invoiceID,
		tenantID:  tenantID,
		amount:    amount,
		status:    vo.PaymentStatusPending,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// PaymentReconstructParams carries persistence fields for reconstruction.
type PaymentReconstructParams struct {
	ID               uint
	SID              string
	InvoiceID        uint
	TenantID         uint
	AmountMinor      int64
	Currency         string
	Status           vo.PaymentStatus
	Method           *string
	GatewayOrderID   *string
	GatewayPaymentID *string
	GatewaySignature *string
	FailureReason    *string
	RefundAmount     int64
	RefundedAt       *time.Time
	PaidAt           *time.Time
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReconstructPayment reconstructs a payment from persistence.
func ReconstructPayment(p PaymentReconstructParams) (*Payment, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid payment status: %s", p.Status)
	}

	return &Payment{
		id:             p.ID,
		sid:            p.SID,
		invoiceID:      p.InvoiceID,
		tenantID:       p.TenantID,
		amount:         vo.NewMoney(p.AmountMinor, p.Currency),
		status:         p.Status,
		method:         p.Method,
		gatewayOrderID: p.GatewayOrderID,
		gatewayPayID:   p.GatewayPaymentID,
		gatewaySig:     p.GatewaySignature,
		failureReason:  p.FailureReason,
		refundAmount:   p.RefundAmount,
		refundedAt:     p.RefundedAt,
		paidAt:         p.PaidAt,
		version:        p.Version,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}, nil
}

func (p *Payment) ID() uint                  { return p.id }
func (p *Payment) SID() string               { return p.sid }
func (p *Payment) InvoiceID() uint           { return p.invoiceID }
func (p *Payment) TenantID() uint            { return p.tenantID }
func (p *Payment) Amount() vo.Money          { return p.amount }
func (p *Payment) Status() vo.PaymentStatus  { return p.status }
func (p *Payment) Method() *string           { return p.method }
func (p *Payment) GatewayOrderID() *string   { return p.gatewayOrderID }
func (p *Payment) GatewayPaymentID() *string { return p.gatewayPayID }
func (p *Payment) GatewaySignature() *string { return p.gatewaySig }
func (p *Payment) FailureReason() *string    { return p.failureReason }
func (p *Payment) RefundAmount() int64       { return p.refundAmount }
func (p *Payment) RefundedAt() *time.Time    { return p.refundedAt }
func (p *Payment) PaidAt() *time.Time        { return p.paidAt }
func (p *Payment) Version() int              { return p.version }
func (p *Payment) CreatedAt() time.Time      { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time      { return p.updatedAt }

// SetID sets the payment ID (only for persistence layer use).
func (p *Payment) SetID(paymentID uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID is already set")
	}
	if paymentID == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.id = paymentID
	return nil
}

// AttachGatewayOrder stores the gateway order reference created before
// collection.
func (p *Payment) AttachGatewayOrder(orderID, method string) error {
	if p.status != vo.PaymentStatusPending {
		return fmt.Errorf("cannot attach gateway order to payment with status %s", p.status)
	}
	if orderID == "" {
		return fmt.Errorf("gateway order ID is required")
	}
	p.gatewayOrderID = &orderID
	if method != "" {
		p.method = &method
	}
	p.touch()
	return nil
}

// MarkCompleted records a successful capture with the gateway identifiers.
func (p *Payment) MarkCompleted(gatewayPaymentID, gatewaySignature string) error {
	if p.status == vo.PaymentStatusCompleted {
		return nil
	}
	if p.status != vo.PaymentStatusPending && p.status != vo.PaymentStatusFailed {
		return fmt.Errorf("cannot complete payment with status %s", p.status)
	}
	if gatewayPaymentID == "" {
		return fmt.Errorf("gateway payment ID is required")
	}
	now := biztime.NowUTC()
	p.status = vo.PaymentStatusCompleted
	p.gatewayPayID = &gatewayPaymentID
	if gatewaySignature != "" {
		p.gatewaySig = &gatewaySignature
	}
	p.paidAt = &now
	p.failureReason = nil
	p.touch()
	return nil
}

// MarkFailed records a failed capture attempt.
func (p *Payment) MarkFailed(reason string) error {
	if p.status == vo.PaymentStatusFailed {
		return nil
	}
	if p.status != vo.PaymentStatusPending {
		return fmt.Errorf("cannot fail payment with status %s", p.status)
	}
	if reason == "" {
		return fmt.Errorf("failure reason is required")
	}
	p.status = vo.PaymentStatusFailed
	p.failureReason = &reason
	p.touch()
	return nil
}

// Refund records a refund against a completed payment. Partial refunds
// accumulate; the total can never exceed the captured amount.
func (p *Payment) Refund(amountMinor int64) error {
	if p.status != vo.PaymentStatusCompleted && p.status != vo.PaymentStatusRefunded {
		return fmt.Errorf("cannot refund payment with status %s", p.status)
	}
	if amountMinor <= 0 {
		return fmt.Errorf("refund amount must be positive")
	}
	if p.refundAmount+amountMinor > p.amount.AmountMinor() {
		return fmt.Errorf("refund total %d would exceed captured amount %d", p.refundAmount+amountMinor, p.amount.AmountMinor())
	}
	now := biztime.NowUTC()
	p.refundAmount += amountMinor
	p.refundedAt = &now
	if p.refundAmount == p.amount.AmountMinor() {
		p.status = vo.PaymentStatusRefunded
	}
	p.touch()
	return nil
}

// IsFullyRefunded reports whether the whole captured amount is refunded.
func (p *Payment) IsFullyRefunded() bool {
	return p.refundAmount == p.amount.AmountMinor() && p.refundAmount > 0
}

func (p *Payment) touch() {
	p.updatedAt = biztime.NowUTC()
	p.version++
}
