package billing

import (
	"testing"

	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing/valueobjects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment(1, 1, vo.NewMoney(235882, "INR"))
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	p := newPendingPayment(t)

	assert.NotEmpty(t, p.SID())
	assert.Equal(t, vo.PaymentStatusPending, p.Status())
	assert.Zero(t, p.RefundAmount())

	_, err := NewPayment(0, 1, vo.NewMoney(100, "INR"))
	assert.Error(t, err)
	_, err = NewPayment(1, 0, vo.NewMoney(100, "INR"))
	assert.Error(t, err)
	_, err = NewPayment(1, 1, vo.NewMoney(0, "INR"))
	assert.Error(t, err)
}

func TestPayment_CompleteLifecycle(t *testing.T) {
	p := newPendingPayment(t)

	require.NoError(t, p.AttachGatewayOrder("order_Nxy123", "upi"))
	require.NotNil(t, p.GatewayOrderID())

	require.NoError(t, p.MarkCompleted("pay_Nxy456", "sig_abc"))
	assert.Equal(t, vo.PaymentStatusCompleted, p.Status())
	require.NotNil(t, p.PaidAt())
	require.NotNil(t, p.GatewayPaymentID())
	assert.Equal(t, "pay_Nxy456", *p.GatewayPaymentID())

	require.NoError(t, p.MarkCompleted("pay_other", "sig"), "idempotent")
	assert.Equal(t, "pay_Nxy456", *p.GatewayPaymentID(), "first capture wins")

	assert.Error(t, p.AttachGatewayOrder("order_late", "upi"))
	assert.Error(t, p.MarkFailed("too late"))
}

func TestPayment_FailedThenRetried(t *testing.T) {
	p := newPendingPayment(t)

	require.NoError(t, p.MarkFailed("insufficient funds"))
	assert.Equal(t, vo.PaymentStatusFailed, p.Status())
	require.NotNil(t, p.FailureReason())

	require.NoError(t, p.MarkCompleted("pay_retry", ""))
	assert.Equal(t, vo.PaymentStatusCompleted, p.Status())
	assert.Nil(t, p.FailureReason())
}

func TestPayment_RefundTrail(t *testing.T) {
	p := newPendingPayment(t)
	require.NoError(t, p.MarkCompleted("pay_abc", ""))
	captured := p.Amount().AmountMinor()

	require.NoError(t, p.Refund(100000))
	assert.Equal(t, int64(100000), p.RefundAmount())
	assert.Equal(t, vo.PaymentStatusCompleted, p.Status(), "partial refund keeps completed status")
	assert.Equal(t, captured, p.Amount().AmountMinor(), "captured amount is never mutated")
	require.NotNil(t, p.RefundedAt())

	require.NoError(t, p.Refund(captured-100000))
	assert.Equal(t, vo.PaymentStatusRefunded, p.Status())
	assert.True(t, p.IsFullyRefunded())

	assert.Error(t, p.Refund(1), "over-refund rejected")
}

func TestPayment_RefundRejectedBeforeCapture(t *testing.T) {
	p := newPendingPayment(t)

	assert.Error(t, p.Refund(100))

	require.NoError(t, p.MarkFailed("declined"))
	assert.Error(t, p.Refund(100))
}

func TestMoney_TaxAt(t *testing.T) {
	m := vo.NewMoney(229600, "INR")

	assert.Equal(t, int64(41328), m.TaxAt(18).AmountMinor())
	assert.Equal(t, int64(0), m.TaxAt(0).AmountMinor())
	assert.Equal(t, "INR", m.TaxAt(18).Currency())

	sum, err := m.Add(vo.NewMoney(400, "INR"))
	assert.NoError(t, err)
	assert.Equal(t, int64(230000), sum.AmountMinor())

	_, err = m.Add(vo.NewMoney(400, "USD"))
	assert.Error(t, err)
}
