package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/billing/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/testutil"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	billingvo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	subvo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/interfaces/http/handlers"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
)

type webhookFixture struct {
	invoiceRepo *testutil.MockInvoiceRepository
	paymentRepo *testutil.MockPaymentRepository
	subRepo     *testutil.MockSubscriptionRepository
	gateway     *testutil.MockPaymentGateway
	initiate    *usecases.InitiatePaymentUseCase
	router      *gin.Engine
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := testutil.NewMockLogger()
	f := &webhookFixture{
		invoiceRepo: testutil.NewMockInvoiceRepository(),
		paymentRepo: testutil.NewMockPaymentRepository(),
		subRepo:     testutil.NewMockSubscriptionRepository(),
		gateway:     testutil.NewMockPaymentGateway(),
	}
	f.initiate = usecases.NewInitiatePaymentUseCase(f.invoiceRepo, f.paymentRepo, f.gateway, log)
	reconcile := usecases.NewReconcileGatewayCallbackUseCase(
		f.paymentRepo, f.invoiceRepo, f.subRepo, f.gateway, testutil.NewMockTransactor(), log)

	handler := handlers.NewWebhookHandler(reconcile, log)
	f.router = gin.New()
	f.router.POST("/webhooks/payment", handler.PaymentCallback)
	return f
}

func (f *webhookFixture) seedPendingPayment(t *testing.T) (*billing.Invoice, *billing.Payment) {
	t.Helper()
	sub, err := subscription.NewSubscription(1, 1, nil, subvo.BillingCycleMonthly, 0)
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

func (f *webhookFixture) post(t *testing.T, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	return w
}

func TestPaymentCallback_CaptureSettlesInvoice(t *testing.T) {
	f := newWebhookFixture(t)
	inv, payment := f.seedPendingPayment(t)
	orderID := *payment.GatewayOrderID()

	w := f.post(t, map[string]any{
		"order_id":   orderID,
		"payment_id": "pay_001",
		"signature":  testutil.MockSignature(orderID, "pay_001"),
		"status":     "captured",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, billingvo.InvoiceStatusPaid, inv.Status())
}

func TestPaymentCallback_BadSignatureRejected(t *testing.T) {
	f := newWebhookFixture(t)
	inv, payment := f.seedPendingPayment(t)
	orderID := *payment.GatewayOrderID()

	w := f.post(t, map[string]any{
		"order_id":   orderID,
		"payment_id": "pay_001",
		"signature":  "forged",
		"status":     "captured",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, billingvo.InvoiceStatusPending, inv.Status())
}

func TestPaymentCallback_ReplayReturnsOK(t *testing.T) {
	f := newWebhookFixture(t)
	_, payment := f.seedPendingPayment(t)
	orderID := *payment.GatewayOrderID()
	body := map[string]any{
		"order_id":   orderID,
		"payment_id": "pay_001",
		"signature":  testutil.MockSignature(orderID, "pay_001"),
		"status":     "captured",
	}

	first := f.post(t, body)
	require.Equal(t, http.StatusOK, first.Code)

	second := f.post(t, body)
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestPaymentCallback_UnknownStatusRejected(t *testing.T) {
	f := newWebhookFixture(t)

	w := f.post(t, map[string]any{
		"order_id":   "order_1",
		"payment_id": "pay_001",
		"status":     "authorized",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
