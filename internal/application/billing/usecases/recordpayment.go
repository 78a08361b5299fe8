package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type InitiatePaymentCommand struct {
	InvoiceID uint
}

// InitiatePaymentResult carries what the client needs to open the gateway
// checkout.
type InitiatePaymentResult struct {
	Payment        *billing.Payment
	GatewayOrderID string
}

// InitiatePaymentUseCase opens a collection attempt against an invoice:
// it records a pending payment for the invoice total and registers a
// matching order with the gateway.
type InitiatePaymentUseCase struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
	gateway     PaymentGateway
	logger      logger.Interface
}

func NewInitiatePaymentUseCase(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	gateway PaymentGateway,
	logger logger.Interface,
) *InitiatePaymentUseCase {
	return &InitiatePaymentUseCase{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

func (uc *InitiatePaymentUseCase) Execute(ctx context.Context, cmd InitiatePaymentCommand) (*InitiatePaymentResult, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, cmd.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status().IsPaid() || invoice.Status().IsFinal() {
		return nil, fmt.Errorf("invoice %s is %s and cannot be collected", invoice.InvoiceNumber(), invoice.Status())
	}

	payment, err := billing.NewPayment(invoice.ID(), invoice.TenantID(), vo.NewMoney(invoice.TotalAmount(), invoice.Currency()))
	if err != nil {
		return nil, err
	}

	order, err := uc.gateway.CreateOrder(ctx, invoice.TotalAmount(), invoice.Currency(), invoice.InvoiceNumber())
	if err != nil {
		uc.logger.Errorw("failed to create gateway order",
			"error", err,
			"invoice_number", invoice.InvoiceNumber())
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}
	if err := payment.AttachGatewayOrder(order.OrderID, order.Method); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	uc.logger.Infow("payment initiated",
		"invoice_number", invoice.InvoiceNumber(),
		"amount", invoice.TotalAmount(),
		"gateway_order_id", order.OrderID)

	return &InitiatePaymentResult{Payment: payment, GatewayOrderID: order.OrderID}, nil
}
