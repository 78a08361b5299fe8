package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/persistence/models"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/db"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPaymentRepository(database *gorm.DB, logger logger.Interface) billing.PaymentRepository {
	return &PaymentRepositoryImpl{db: database, logger: logger}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *billing.Payment) error {
	model := r.toModel(payment)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment", "error", err, "invoice_id", payment.InvoiceID())
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return payment.SetID(model.ID)
}

func (r *PaymentRepositoryImpl) GetByID(ctx context.Context, id uint) (*billing.Payment, error) {
	var model models.PaymentModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return r.toEntity(&model)
}

func (r *PaymentRepositoryImpl) GetBySID(ctx context.Context, sid string) (*billing.Payment, error) {
	return r.getByColumn(ctx, "sid", sid)
}

func (r *PaymentRepositoryImpl) GetByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*billing.Payment, error) {
	return r.getByColumn(ctx, "gateway_payment_id", gatewayPaymentID)
}

func (r *PaymentRepositoryImpl) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*billing.Payment, error) {
	return r.getByColumn(ctx, "gateway_order_id", gatewayOrderID)
}

func (r *PaymentRepositoryImpl) getByColumn(ctx context.Context, column, value string) (*billing.Payment, error) {
	var model models.PaymentModel
	err := db.GetTxFromContext(ctx, r.db).Where(column+" = ?", value).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by %s: %w", column, err)
	}
	return r.toEntity(&model)
}

func (r *PaymentRepositoryImpl) Update(ctx context.Context, payment *billing.Payment) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentModel{}).
		Where("id = ? AND version < ?", payment.ID(), payment.Version()).
		Updates(map[string]interface{}{
			"status":             payment.Status().String(),
			"method":             payment.Method(),
			"gateway_order_id":   payment.GatewayOrderID(),
			"gateway_payment_id": payment.GatewayPaymentID(),
			"gateway_signature":  payment.GatewaySignature(),
			"failure_reason":     payment.FailureReason(),
			"refund_amount":      payment.RefundAmount(),
			"refunded_at":        payment.RefundedAt(),
			"paid_at":            payment.PaidAt(),
			"version":            payment.Version(),
			"updated_at":         payment.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update payment", "error", result.Error, "payment_id", payment.ID())
		return fmt.Errorf("failed to update payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return billing.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) ListByInvoiceID(ctx context.Context, invoiceID uint) ([]*billing.Payment, error) {
	var rows []*models.PaymentModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	payments := make([]*billing.Payment, 0, len(rows))
	for _, row := range rows {
		payment, err := r.toEntity(row)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

func (r *PaymentRepositoryImpl) toModel(payment *billing.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		SID:              payment.SID(),
		InvoiceID:        payment.InvoiceID(),
		TenantID:         payment.TenantID(),
		AmountMinor:      payment.Amount().AmountMinor(),
		Currency:         payment.Amount().Currency(),
		Status:           payment.Status().String(),
		Method:           payment.Method(),
		GatewayOrderID:   payment.GatewayOrderID(),
		GatewayPaymentID: payment.GatewayPaymentID(),
		GatewaySignature: payment.GatewaySignature(),
		FailureReason:    payment.FailureReason(),
		RefundAmount:     payment.RefundAmount(),
		RefundedAt:       payment.RefundedAt(),
		PaidAt:           payment.PaidAt(),
		Version:          payment.Version(),
		CreatedAt:        payment.CreatedAt(),
		UpdatedAt:        payment.UpdatedAt(),
	}
}

func (r *PaymentRepositoryImpl) toEntity(model *models.PaymentModel) (*billing.Payment, error) {
	return billing.ReconstructPayment(billing.PaymentReconstructParams{
		ID:               model.ID,
		SID:              model.SID,
		InvoiceID:        model.InvoiceID,
		TenantID:         model.TenantID,
		AmountMinor:      model.AmountMinor,
		Currency:         model.Currency,
		Status:           vo.PaymentStatus(model.Status),
		Method:           model.Method,
		GatewayOrderID:   model.GatewayOrderID,
		GatewayPaymentID: model.GatewayPaymentID,
		GatewaySignature: model.GatewaySignature,
		FailureReason:    model.FailureReason,
		RefundAmount:     model.RefundAmount,
		RefundedAt:       model.RefundedAt,
		PaidAt:           model.PaidAt,
		Version:          model.Version,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	})
}
