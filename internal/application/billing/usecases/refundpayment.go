package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type RefundPaymentCommand struct {
	PaymentID uint
	// AmountMinor is the refund amount in minor units. Zero refunds the
	// full remaining captured amount.
	AmountMinor int64
	Reason      string
}

// RefundPaymentUseCase issues a gateway refund and records it against the
// payment. Full refunds also flag the invoice as refunded.
type RefundPaymentUseCase struct {
	paymentRepo billing.PaymentRepository
	invoiceRepo billing.InvoiceRepository
	gateway     PaymentGateway
	txManager   Transactor
	logger      logger.Interface
}

func NewRefundPaymentUseCase(
	paymentRepo billing.PaymentRepository,
	invoiceRepo billing.InvoiceRepository,
	gateway PaymentGateway,
	txManager Transactor,
	logger logger.Interface,
) *RefundPaymentUseCase {
	return &RefundPaymentUseCase{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		gateway:     gateway,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *RefundPaymentUseCase) Execute(ctx context.Context, cmd RefundPaymentCommand) (*billing.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, cmd.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment.GatewayPaymentID() == nil {
		return nil, fmt.Errorf("payment %d has no gateway capture to refund", payment.ID())
	}

	amount := cmd.AmountMinor
	if amount <= 0 {
		amount = payment.Amount().AmountMinor() - payment.RefundAmount()
	}
	if amount <= 0 {
		return nil, fmt.Errorf("payment %d is already fully refunded", payment.ID())
	}

	refundID, err := uc.gateway.Refund(ctx, *payment.GatewayPaymentID(), amount)
	if err != nil {
		uc.logger.Errorw("gateway refund failed",
			"error", err,
			"payment_id", payment.ID(),
			"amount", amount)
		return nil, fmt.Errorf("gateway refund failed: %w", err)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := payment.Refund(amount); err != nil {
			return err
		}
		if err := uc.paymentRepo.Update(txCtx, payment); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}

		if !payment.IsFullyRefunded() {
			return nil
		}
		invoice, err := uc.invoiceRepo.GetByID(txCtx, payment.InvoiceID())
		if err != nil {
			return err
		}
		if err := invoice.MarkRefunded(); err != nil {
			return err
		}
		if cmd.Reason != "" {
			invoice.AttachNotes("refunded: " + cmd.Reason)
		}
		return uc.invoiceRepo.Update(txCtx, invoice)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("payment refunded",
		"payment_id", payment.ID(),
		"amount", amount,
		"gateway_refund_id", refundID,
		"fully_refunded", payment.IsFullyRefunded())
	return payment, nil
}
