package usecases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/billing/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/testutil"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	billingvo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	subvo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
)

type reconcileFixture struct {
	invoiceRepo *testutil.MockInvoiceRepository
	paymentRepo *testutil.MockPaymentRepository
	subRepo     *testutil.MockSubscriptionRepository
	gateway     *testutil.MockPaymentGateway
	tx          *testutil.MockTransactor
	initiate    *usecases.InitiatePaymentUseCase
	reconcile   *usecases.ReconcileGatewayCallbackUseCase
	refund      *usecases.RefundPaymentUseCase
}

func newReconcileFixture(t *testing.T) *reconcileFixture {
	t.Helper()
	f := &reconcileFixture{
		invoiceRepo: testutil.NewMockInvoiceRepository(),
		paymentRepo: testutil.NewMockPaymentRepository(),
		subRepo:     testutil.NewMockSubscriptionRepository(),
		gateway:     testutil.NewMockPaymentGateway(),
		tx:          testutil.NewMockTransactor(),
	}
	log := testutil.NewMockLogger()
	f.initiate = usecases.NewInitiatePaymentUseCase(f.invoiceRepo, f.paymentRepo, f.gateway, log)
	f.reconcile = usecases.NewReconcileGatewayCallbackUseCase(
		f.paymentRepo, f.invoiceRepo, f.subRepo, f.gateway, f.tx, log)
	f.refund = usecases.NewRefundPaymentUseCase(f.paymentRepo, f.invoiceRepo, f.gateway, f.tx, log)
	return f
}

// seedInvoice creates a subscription in the given state and a pending
// invoice linked to it, then opens a payment through the gateway.
func (f *reconcileFixture) seedInvoice(t *testing.T, trial bool) (*billing.Invoice, *billing.Payment) {
	t.Helper()
	trialDays := 0
	if trial {
		trialDays = 14
	}
	sub, err := subscription.NewSubscription(1, 1, nil, subvo.BillingCycleMonthly, trialDays)
	require.NoError(t, err)
	require.NoError(t, f.subRepo.Create(context.Background(), sub))

	subID := sub.ID()
	now := biztime.NowUTC()
	item, err := billingvo.NewLineItem("Growth plan (monthly)", 99900, 1)
	require.NoError(t, err)
	year, month := biztime.YearMonth(now)
	inv, err := billing.NewInvoice(1, &subID, billing.FormatInvoiceNumber(year, month, 1),
		[]billingvo.LineItem{item}, 18.0, "INR", now, now.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.NoError(t, f.invoiceRepo.Create(context.Background(), inv))

	res, err := f.initiate.Execute(context.Background(), usecases.InitiatePaymentCommand{InvoiceID: inv.ID()})
	require.NoError(t, err)
	return inv, res.Payment
}

func captureCallback(payment *billing.Payment, gatewayPaymentID string) usecases.GatewayCallback {
	orderID := *payment.GatewayOrderID()
	return usecases.GatewayCallback{
		OrderID:   orderID,
		PaymentID: gatewayPaymentID,
		Signature: testutil.MockSignature(orderID, gatewayPaymentID),
		Success:   true,
	}
}

func TestReconcile_CaptureSettlesPaymentInvoiceAndTrial(t *testing.T) {
	f := newReconcileFixture(t)
	inv, payment := f.seedInvoice(t, true)

	settled, err := f.reconcile.Execute(context.Background(), captureCallback(payment, "pay_001"))
	require.NoError(t, err)

	assert.Equal(t, billingvo.PaymentStatusCompleted, settled.Status())
	require.NotNil(t, settled.PaidAt())
	assert.Equal(t, billingvo.InvoiceStatusPaid, inv.Status())

	sub, err := f.subRepo.GetByID(context.Background(), *inv.SubscriptionID())
	require.NoError(t, err)
	assert.Equal(t, subvo.StatusActive, sub.Status())
	assert.Nil(t, sub.TrialEndsAt())
}

func TestReconcile_ReplayReturnsOriginalPayment(t *testing.T) {
	f := newReconcileFixture(t)
	_, payment := f.seedInvoice(t, false)
	cb := captureCallback(payment, "pay_001")

	first, err := f.reconcile.Execute(context.Background(), cb)
	require.NoError(t, err)
	second, err := f.reconcile.Execute(context.Background(), cb)
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, 1, f.tx.Calls)
}

func TestReconcile_RejectsBadSignature(t *testing.T) {
	f := newReconcileFixture(t)
	_, payment := f.seedInvoice(t, false)
	cb := captureCallback(payment, "pay_001")
	cb.Signature = "forged"

	_, err := f.reconcile.Execute(context.Background(), cb)
	assert.ErrorIs(t, err, billing.ErrSignatureVerificationFailed)
	assert.Equal(t, billingvo.PaymentStatusPending, payment.Status())
}

func TestReconcile_FailureMovesActiveSubscriptionPastDue(t *testing.T) {
	f := newReconcileFixture(t)
	inv, payment := f.seedInvoice(t, false)

	failed, err := f.reconcile.Execute(context.Background(), usecases.GatewayCallback{
		OrderID:       *payment.GatewayOrderID(),
		Success:       false,
		FailureReason: "card declined",
	})
	require.NoError(t, err)

	assert.Equal(t, billingvo.PaymentStatusFailed, failed.Status())
	require.NotNil(t, failed.FailureReason())
	assert.Equal(t, "card declined", *failed.FailureReason())
	assert.Equal(t, billingvo.InvoiceStatusFailed, inv.Status())

	sub, err := f.subRepo.GetByID(context.Background(), *inv.SubscriptionID())
	require.NoError(t, err)
	assert.Equal(t, subvo.StatusPastDue, sub.Status())
}

func TestReconcile_RecoveryAfterFailureRenewsPastDue(t *testing.T) {
	f := newReconcileFixture(t)
	inv, payment := f.seedInvoice(t, false)

	_, err := f.reconcile.Execute(context.Background(), usecases.GatewayCallback{
		OrderID:       *payment.GatewayOrderID(),
		Success:       false,
		FailureReason: "card declined",
	})
	require.NoError(t, err)

	recovered, err := f.reconcile.Execute(context.Background(), captureCallback(payment, "pay_002"))
	require.NoError(t, err)
	assert.Equal(t, billingvo.PaymentStatusCompleted, recovered.Status())
	assert.Equal(t, billingvo.InvoiceStatusPaid, inv.Status())

	sub, err := f.subRepo.GetByID(context.Background(), *inv.SubscriptionID())
	require.NoError(t, err)
	assert.Equal(t, subvo.StatusActive, sub.Status())
}

func TestInitiatePayment_RejectsPaidInvoice(t *testing.T) {
	f := newReconcileFixture(t)
	inv, payment := f.seedInvoice(t, false)

	_, err := f.reconcile.Execute(context.Background(), captureCallback(payment, "pay_001"))
	require.NoError(t, err)

	_, err = f.initiate.Execute(context.Background(), usecases.InitiatePaymentCommand{InvoiceID: inv.ID()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be collected")
}

func TestRefund_PartialThenFull(t *testing.T) {
	f := newReconcileFixture(t)
	inv, payment := f.seedInvoice(t, false)
	_, err := f.reconcile.Execute(context.Background(), captureCallback(payment, "pay_001"))
	require.NoError(t, err)

	partial, err := f.refund.Execute(context.Background(), usecases.RefundPaymentCommand{
		PaymentID:   payment.ID(),
		AmountMinor: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), partial.RefundAmount())
	assert.Equal(t, billingvo.PaymentStatusCompleted, partial.Status())
	assert.Equal(t, billingvo.InvoiceStatusPaid, inv.Status())

	full, err := f.refund.Execute(context.Background(), usecases.RefundPaymentCommand{
		PaymentID: payment.ID(),
		Reason:    "customer churn",
	})
	require.NoError(t, err)
	assert.True(t, full.IsFullyRefunded())
	assert.Equal(t, billingvo.PaymentStatusRefunded, full.Status())
	assert.Equal(t, billingvo.InvoiceStatusRefunded, inv.Status())
	require.NotNil(t, inv.Notes())
	assert.Contains(t, *inv.Notes(), "customer churn")
	assert.Equal(t, full.Amount().AmountMinor(), f.gateway.Refunds["pay_001"])
}

func TestRefund_RequiresCapture(t *testing.T) {
	f := newReconcileFixture(t)
	_, payment := f.seedInvoice(t, false)

	_, err := f.refund.Execute(context.Background(), usecases.RefundPaymentCommand{PaymentID: payment.ID()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no gateway capture")
}
