package usecases

import (
	"context"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
)

// Transactor runs a function inside a database transaction. Satisfied by
// *db.TransactionManager.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// GatewayOrder is the gateway-side order created before collection.
type GatewayOrder struct {
	OrderID string
	Method  string
}

// GatewayCallback carries the fields of a payment-gateway webhook after
// transport decoding. Identifiers and the signature are opaque strings.
type GatewayCallback struct {
	OrderID   string
	PaymentID string
	Signature string
	Success   bool
	// FailureReason is set when Success is false.
	FailureReason string
}

// InvoiceNotifier sends billing emails. Delivery is best effort; use cases
// log failures and never roll back on them.
type InvoiceNotifier interface {
	SendInvoiceIssued(ctx context.Context, invoice *billing.Invoice) error
	SendPaymentReceipt(ctx context.Context, invoice *billing.Invoice, payment *billing.Payment) error
}

// PaymentGateway abstracts the payment provider. The core stores whatever
// identifiers it returns and trusts only the boolean outcome of
// VerifySignature.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
	Refund(ctx context.Context, gatewayPaymentID string, amountMinor int64) (string, error)
}
