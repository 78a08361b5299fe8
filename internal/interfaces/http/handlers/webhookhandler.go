package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/billing/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

// WebhookHandler receives payment-gateway callbacks. It is unauthenticated;
// trust comes from the gateway signature verified inside the use case.
type WebhookHandler struct {
	reconcileUC *usecases.ReconcileGatewayCallbackUseCase
	logger      logger.Interface
}

func NewWebhookHandler(reconcileUC *usecases.ReconcileGatewayCallbackUseCase, logger logger.Interface) *WebhookHandler {
	return &WebhookHandler{reconcileUC: reconcileUC, logger: logger}
}

type GatewayCallbackRequest struct {
	OrderID       string `json:"order_id" binding:"required"`
	PaymentID     string `json:"payment_id" binding:"required"`
	Signature     string `json:"signature"`
	Status        string `json:"status" binding:"required,oneof=captured failed"`
	FailureReason string `json:"failure_reason"`
}

// PaymentCallback settles one payment from a gateway callback. Replays
// return 200 so the gateway stops retrying.
func (h *WebhookHandler) PaymentCallback(c *gin.Context) {
	var req GatewayCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("malformed gateway callback", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := h.reconcileUC.Execute(c.Request.Context(), usecases.GatewayCallback{
		OrderID:       req.OrderID,
		PaymentID:     req.PaymentID,
		Signature:     req.Signature,
		Success:       req.Status == "captured",
		FailureReason: req.FailureReason,
	})
	if err != nil {
		h.logger.Warnw("gateway callback rejected",
			"error", err,
			"order_id", req.OrderID,
			"payment_id", req.PaymentID)
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "callback processed", toPaymentResponse(payment))
}
