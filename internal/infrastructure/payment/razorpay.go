package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	usecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/billing/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

const (
	defaultBaseURL = "https://api.razorpay.com/v1"
	requestTimeout = 15 * time.Second
)

// RazorpayGateway is the collection adapter. Order, payment and refund ids
// are opaque strings minted by the gateway; nothing here parses them.
type RazorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

func NewRazorpayGateway(keyID, keySecret string, logger logger.Interface) *RazorpayGateway {
	return &RazorpayGateway{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// SetBaseURL points the adapter at a different endpoint. Used by tests.
func (g *RazorpayGateway) SetBaseURL(url string) {
	g.baseURL = url
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type refundResponse struct {
	ID string `json:"id"`
}

// CreateOrder opens a gateway order for the invoice total.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*usecases.GatewayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}

	var resp orderResponse
	if err := g.post(ctx, "/orders", payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	g.logger.Infow("gateway order created",
		"gateway_order_id", resp.ID,
		"amount_minor", amountMinor,
		"currency", currency)

	return &usecases.GatewayOrder{OrderID: resp.ID, Method: "razorpay"}, nil
}

// VerifySignature checks the HMAC-SHA256 the gateway computes over
// "<orderID>|<paymentID>" with the key secret. Constant-time compare.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// Refund issues a refund against a captured payment and returns the opaque
// refund id. amountMinor of zero refunds the full remaining amount.
func (g *RazorpayGateway) Refund(ctx context.Context, gatewayPaymentID string, amountMinor int64) (string, error) {
	payload := map[string]interface{}{}
	if amountMinor > 0 {
		payload["amount"] = amountMinor
	}

	var resp refundResponse
	path := fmt.Sprintf("/payments/%s/refund", gatewayPaymentID)
	if err := g.post(ctx, path, payload, &resp); err != nil {
		return "", fmt.Errorf("failed to refund payment: %w", err)
	}

	g.logger.Infow("gateway refund issued",
		"gateway_payment_id", gatewayPaymentID,
		"gateway_refund_id", resp.ID,
		"amount_minor", amountMinor)

	return resp.ID, nil
}

func (g *RazorpayGateway) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}
