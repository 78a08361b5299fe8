package billing

import "errors"

var (
	// ErrInvoiceNotFound indicates the invoice does not exist.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrPaymentNotFound indicates the payment does not exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvoiceNumberConflict indicates a uniqueness collision on the
	// invoice number. The generator retries inside a fresh transaction;
	// callers should never see this error.
	ErrInvoiceNumberConflict = errors.New("invoice number already exists")

	// ErrDuplicateGatewayPayment indicates a gateway callback replay for a
	// payment identifier that was already reconciled.
	ErrDuplicateGatewayPayment = errors.New("gateway payment already recorded")

	// ErrSignatureVerificationFailed indicates the gateway callback
	// signature did not verify.
	ErrSignatureVerificationFailed = errors.New("gateway signature verification failed")
)
