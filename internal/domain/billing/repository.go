package billing

import (
	"context"
	"time"
)

// InvoiceRepository defines the interface for invoice persistence.
type InvoiceRepository interface {
	// Create persists a new invoice and returns ErrInvoiceNumberConflict
	// when the unique invoice_number index rejects the row.
	Create(ctx context.Context, invoice *Invoice) error
	GetByID(ctx context.Context, id uint) (*Invoice, error)
	GetBySID(ctx context.Context, sid string) (*Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	Update(ctx context.Context, invoice *Invoice) error
	ListByTenantID(ctx context.Context, tenantID uint, limit, offset int) ([]*Invoice, int64, error)
}

// InvoiceSequenceRepository serializes invoice-number assignment per
// calendar month.
type InvoiceSequenceRepository interface {
	// NextValue locks the month's sequence row, increments it, and returns
	// the new value. It must run inside the same transaction that inserts
	// the invoice so the number and the row commit or roll back together.
	// The row is created on first use of a month.
	NextValue(ctx context.Context, year int, month time.Month) (int64, error)
}

// PaymentRepository defines the interface for payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByID(ctx context.Context, id uint) (*Payment, error)
	GetBySID(ctx context.Context, sid string) (*Payment, error)
	// GetByGatewayPaymentID is the idempotency probe for gateway callback
	// reconciliation; returns ErrPaymentNotFound when unseen.
	GetByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*Payment, error)
	// GetByGatewayOrderID matches a callback to the pending payment that
	// opened the order.
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Payment, error)
	Update(ctx context.Context, payment *Payment) error
	ListByInvoiceID(ctx context.Context, invoiceID uint) ([]*Payment, error)
}
