package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/billing/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/interfaces/http/middleware"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

type InvoiceHandler struct {
	generateUC    *usecases.GenerateInvoiceUseCase
	initiatePayUC *usecases.InitiatePaymentUseCase
	refundPayUC   *usecases.RefundPaymentUseCase
	invoiceRepo   billing.InvoiceRepository
	logger        logger.Interface
}

func NewInvoiceHandler(
	generateUC *usecases.GenerateInvoiceUseCase,
	initiatePayUC *usecases.InitiatePaymentUseCase,
	refundPayUC *usecases.RefundPaymentUseCase,
	invoiceRepo billing.InvoiceRepository,
	logger logger.Interface,
) *InvoiceHandler {
	return &InvoiceHandler{
		generateUC:    generateUC,
		initiatePayUC: initiatePayUC,
		refundPayUC:   refundPayUC,
		invoiceRepo:   invoiceRepo,
		logger:        logger,
	}
}

// List returns the tenant's invoices, newest first.
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	p := utils.ParsePagination(c)

	invoices, total, err := h.invoiceRepo.ListByTenantID(c.Request.Context(), tenantID, p.PageSize, (p.Page-1)*p.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, toInvoiceResponse(inv))
	}
	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

// Get returns one invoice. Invoices from other tenants read as not found.
func (h *InvoiceHandler) Get(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	invoiceID, ok := parseUintParam(c, "invoice_id")
	if !ok {
		return
	}

	inv, err := h.invoiceRepo.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	if inv.TenantID() != tenantID {
		utils.ErrorResponse(c, http.StatusNotFound, billing.ErrInvoiceNotFound.Error())
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", toInvoiceResponse(inv))
}

type GenerateInvoiceRequest struct {
	TenantID       uint                    `json:"tenant_id" binding:"required"`
	SubscriptionID *uint                   `json:"subscription_id"`
	LineItems      []GenerateLineItemInput `json:"line_items" binding:"required,min=1,dive"`
	PeriodStart    time.Time               `json:"period_start" binding:"required"`
	PeriodEnd      time.Time               `json:"period_end" binding:"required"`
}

type GenerateLineItemInput struct {
	Description string `json:"description" binding:"required"`
	Amount      int64  `json:"amount"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

// Generate creates an invoice out of band. Operator surface; the renewal
// flow generates its invoices itself.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid generate invoice request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]usecases.LineItemInput, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		items = append(items, usecases.LineItemInput{
			Description: li.Description,
			Amount:      li.Amount,
			Quantity:    li.Quantity,
		})
	}

	inv, err := h.generateUC.Execute(c.Request.Context(), usecases.GenerateInvoiceCommand{
		TenantID:       req.TenantID,
		SubscriptionID: req.SubscriptionID,
		LineItems:      items,
		PeriodStart:    req.PeriodStart,
		PeriodEnd:      req.PeriodEnd,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, toInvoiceResponse(inv), "invoice generated")
}

type InitiatePaymentResponse struct {
	Payment        PaymentResponse `json:"payment"`
	GatewayOrderID string          `json:"gateway_order_id"`
}

// InitiatePayment opens a gateway order to collect an invoice.
func (h *InvoiceHandler) InitiatePayment(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	invoiceID, ok := parseUintParam(c, "invoice_id")
	if !ok {
		return
	}

	inv, err := h.invoiceRepo.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	if inv.TenantID() != tenantID {
		utils.ErrorResponse(c, http.StatusNotFound, billing.ErrInvoiceNotFound.Error())
		return
	}

	result, err := h.initiatePayUC.Execute(c.Request.Context(), usecases.InitiatePaymentCommand{
		InvoiceID: invoiceID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, InitiatePaymentResponse{
		Payment:        toPaymentResponse(result.Payment),
		GatewayOrderID: result.GatewayOrderID,
	}, "payment initiated")
}

type RefundPaymentRequest struct {
	PaymentID   uint   `json:"payment_id" binding:"required"`
	AmountMinor int64  `json:"amount_minor" binding:"min=0"`
	Reason      string `json:"reason" binding:"max=255"`
}

// Refund reverses a captured payment, fully or partially. Operator
// surface.
func (h *InvoiceHandler) Refund(c *gin.Context) {
	var req RefundPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := h.refundPayUC.Execute(c.Request.Context(), usecases.RefundPaymentCommand{
		PaymentID:   req.PaymentID,
		AmountMinor: req.AmountMinor,
		Reason:      req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment refunded", toPaymentResponse(payment))
}
