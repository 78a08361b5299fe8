package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	subvo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

// ReconcileGatewayCallbackUseCase settles payments from gateway callbacks.
// Callbacks are verified, idempotent on the gateway payment ID, and applied
// atomically across the payment, its invoice, and the invoice's
// subscription.
type ReconcileGatewayCallbackUseCase struct {
	paymentRepo      billing.PaymentRepository
	invoiceRepo      billing.InvoiceRepository
	subscriptionRepo subscription.Repository
	gateway          PaymentGateway
	txManager        Transactor
	notifier         InvoiceNotifier
	logger           logger.Interface
}

func NewReconcileGatewayCallbackUseCase(
	paymentRepo billing.PaymentRepository,
	invoiceRepo billing.InvoiceRepository,
	subscriptionRepo subscription.Repository,
	gateway PaymentGateway,
	txManager Transactor,
	logger logger.Interface,
) *ReconcileGatewayCallbackUseCase {
	return &ReconcileGatewayCallbackUseCase{
		paymentRepo:      paymentRepo,
		invoiceRepo:      invoiceRepo,
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		txManager:        txManager,
		logger:           logger,
	}
}

// SetNotifier enables payment-receipt emails.
func (uc *ReconcileGatewayCallbackUseCase) SetNotifier(n InvoiceNotifier) {
	uc.notifier = n
}

// Execute processes one gateway callback. Replays of an already-captured
// payment ID return the recorded payment without re-applying side effects.
func (uc *ReconcileGatewayCallbackUseCase) Execute(ctx context.Context, cb GatewayCallback) (*billing.Payment, error) {
	if cb.Success {
		return uc.applyCapture(ctx, cb)
	}
	return uc.applyFailure(ctx, cb)
}

func (uc *ReconcileGatewayCallbackUseCase) applyCapture(ctx context.Context, cb GatewayCallback) (*billing.Payment, error) {
	if !uc.gateway.VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature) {
		uc.logger.Warnw("gateway callback signature rejected",
			"gateway_order_id", cb.OrderID,
			"gateway_payment_id", cb.PaymentID)
		return nil, billing.ErrSignatureVerificationFailed
	}

	existing, err := uc.paymentRepo.GetByGatewayPaymentID(ctx, cb.PaymentID)
	if err == nil {
		uc.logger.Infow("gateway callback replayed, already captured",
			"gateway_payment_id", cb.PaymentID,
			"payment_id", existing.ID())
		return existing, nil
	}
	if !errors.Is(err, billing.ErrPaymentNotFound) {
		return nil, err
	}

	payment, err := uc.paymentRepo.GetByGatewayOrderID(ctx, cb.OrderID)
	if err != nil {
		return nil, fmt.Errorf("no payment recorded for gateway order %s: %w", cb.OrderID, err)
	}

	var invoice *billing.Invoice
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := payment.MarkCompleted(cb.PaymentID, cb.Signature); err != nil {
			return err
		}
		if err := uc.paymentRepo.Update(txCtx, payment); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}

		invoice, err = uc.invoiceRepo.GetByID(txCtx, payment.InvoiceID())
		if err != nil {
			return err
		}
		if err := invoice.MarkPaid(biztime.NowUTC()); err != nil {
			return err
		}
		if err := uc.invoiceRepo.Update(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		return uc.settleSubscription(txCtx, invoice.SubscriptionID())
	})
	if err != nil {
		uc.logger.Errorw("failed to reconcile gateway capture",
			"error", err,
			"gateway_payment_id", cb.PaymentID)
		return nil, err
	}

	uc.logger.Infow("payment captured",
		"payment_id", payment.ID(),
		"gateway_payment_id", cb.PaymentID,
		"amount", payment.Amount().AmountMinor())
	if uc.notifier != nil {
		if nErr := uc.notifier.SendPaymentReceipt(ctx, invoice, payment); nErr != nil {
			uc.logger.Warnw("failed to send payment receipt",
				"error", nErr,
				"payment_id", payment.ID())
		}
	}
	return payment, nil
}

// settleSubscription moves the invoice's subscription forward after
// settlement: trials convert, past-due subscriptions renew into a fresh
// period, active ones are left to their normal renewal schedule.
func (uc *ReconcileGatewayCallbackUseCase) settleSubscription(ctx context.Context, subscriptionID *uint) error {
	if subscriptionID == nil {
		return nil
	}
	sub, err := uc.subscriptionRepo.GetByID(ctx, *subscriptionID)
	if err != nil {
		return err
	}

	switch sub.Status() {
	case subvo.StatusTrial:
		if err := sub.Activate(); err != nil {
			return err
		}
	case subvo.StatusPastDue:
		if err := sub.Renew(); err != nil {
			return err
		}
	default:
		return nil
	}
	return uc.subscriptionRepo.Update(ctx, sub)
}

func (uc *ReconcileGatewayCallbackUseCase) applyFailure(ctx context.Context, cb GatewayCallback) (*billing.Payment, error) {
	payment, err := uc.paymentRepo.GetByGatewayOrderID(ctx, cb.OrderID)
	if err != nil {
		return nil, fmt.Errorf("no payment recorded for gateway order %s: %w", cb.OrderID, err)
	}
	if payment.Status().IsFinal() {
		uc.logger.Infow("failure callback ignored, payment already settled",
			"payment_id", payment.ID(),
			"status", payment.Status())
		return payment, nil
	}

	reason := cb.FailureReason
	if reason == "" {
		reason = "payment declined by gateway"
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := payment.MarkFailed(reason); err != nil {
			return err
		}
		if err := uc.paymentRepo.Update(txCtx, payment); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}

		invoice, err := uc.invoiceRepo.GetByID(txCtx, payment.InvoiceID())
		if err != nil {
			return err
		}
		if err := invoice.MarkFailed(reason); err != nil {
			return err
		}
		if err := uc.invoiceRepo.Update(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		if invoice.SubscriptionID() == nil {
			return nil
		}
		sub, err := uc.subscriptionRepo.GetByID(txCtx, *invoice.SubscriptionID())
		if err != nil {
			return err
		}
		if sub.Status() != subvo.StatusActive {
			return nil
		}
		if err := sub.MarkPastDue(); err != nil {
			return err
		}
		return uc.subscriptionRepo.Update(txCtx, sub)
	})
	if err != nil {
		uc.logger.Errorw("failed to reconcile gateway failure",
			"error", err,
			"gateway_order_id", cb.OrderID)
		return nil, err
	}

	uc.logger.Warnw("payment failed",
		"payment_id", payment.ID(),
		"gateway_order_id", cb.OrderID,
		"reason", reason)
	return payment, nil
}
