package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/persistence/models"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/db"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

// lineItemRecord is the JSON shape of one invoice line in storage.
type lineItemRecord struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Quantity    int    `json:"quantity"`
}

type InvoiceRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewInvoiceRepository(database *gorm.DB, logger logger.Interface) billing.InvoiceRepository {
	return &InvoiceRepositoryImpl{db: database, logger: logger}
}

func (r *InvoiceRepositoryImpl) Create(ctx context.Context, invoice *billing.Invoice) error {
	model, err := r.toModel(invoice)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return billing.ErrInvoiceNumberConflict
		}
		r.logger.Errorw("failed to create invoice", "error", err, "tenant_id", invoice.TenantID())
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return invoice.SetID(model.ID)
}

func (r *InvoiceRepositoryImpl) GetByID(ctx context.Context, id uint) (*billing.Invoice, error) {
	var model models.InvoiceModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return r.toEntity(&model)
}

func (r *InvoiceRepositoryImpl) GetBySID(ctx context.Context, sid string) (*billing.Invoice, error) {
	return r.getByColumn(ctx, "sid", sid)
}

func (r *InvoiceRepositoryImpl) GetByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	return r.getByColumn(ctx, "invoice_number", invoiceNumber)
}

func (r *InvoiceRepositoryImpl) getByColumn(ctx context.Context, column, value string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	err := db.GetTxFromContext(ctx, r.db).Where(column+" = ?", value).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice by %s: %w", column, err)
	}
	return r.toEntity(&model)
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, invoice *billing.Invoice) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.InvoiceModel{}).
		Where("id = ? AND version < ?", invoice.ID(), invoice.Version()).
		Updates(map[string]interface{}{
			"status":         invoice.Status().String(),
			"paid_at":        invoice.PaidAt(),
			"failure_reason": invoice.FailureReason(),
			"notes":          invoice.Notes(),
			"version":        invoice.Version(),
			"updated_at":     invoice.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update invoice", "error", result.Error, "invoice_id", invoice.ID())
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return billing.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepositoryImpl) ListByTenantID(ctx context.Context, tenantID uint, limit, offset int) ([]*billing.Invoice, int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var total int64
	err := conn.Model(&models.InvoiceModel{}).Where("tenant_id = ?", tenantID).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	var rows []*models.InvoiceModel
	err = conn.Where("tenant_id = ?", tenantID).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*billing.Invoice, 0, len(rows))
	for _, row := range rows {
		invoice, err := r.toEntity(row)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, total, nil
}

func (r *InvoiceRepositoryImpl) toModel(invoice *billing.Invoice) (*models.InvoiceModel, error) {
	items := invoice.LineItems()
	records := make([]lineItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, lineItemRecord{
			Description: item.Description(),
			Amount:      item.Amount(),
			Quantity:    item.Quantity(),
		})
	}
	encoded, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode line items: %w", err)
	}

	return &models.InvoiceModel{
		SID:            invoice.SID(),
		InvoiceNumber:  invoice.InvoiceNumber(),
		TenantID:       invoice.TenantID(),
		SubscriptionID: invoice.SubscriptionID(),
		LineItems:      datatypes.JSON(encoded),
		Amount:         invoice.Amount(),
		TaxAmount:      invoice.TaxAmount(),
		TotalAmount:    invoice.TotalAmount(),
		Currency:       invoice.Currency(),
		Status:         invoice.Status().String(),
		PeriodStart:    invoice.PeriodStart(),
		PeriodEnd:      invoice.PeriodEnd(),
		PaidAt:         invoice.PaidAt(),
		FailureReason:  invoice.FailureReason(),
		Notes:          invoice.Notes(),
		Version:        invoice.Version(),
		CreatedAt:      invoice.CreatedAt(),
		UpdatedAt:      invoice.UpdatedAt(),
	}, nil
}

func (r *InvoiceRepositoryImpl) toEntity(model *models.InvoiceModel) (*billing.Invoice, error) {
	var records []lineItemRecord
	if len(model.LineItems) > 0 {
		if err := json.Unmarshal(model.LineItems, &records); err != nil {
			return nil, fmt.Errorf("failed to decode line items: %w", err)
		}
	}
	items := make([]vo.LineItem, 0, len(records))
	for _, rec := range records {
		item, err := vo.NewLineItem(rec.Description, rec.Amount, rec.Quantity)
		if err != nil {
			return nil, fmt.Errorf("corrupt line item on invoice %d: %w", model.ID, err)
		}
		items = append(items, item)
	}

	return billing.ReconstructInvoice(billing.InvoiceReconstructParams{
		ID:             model.ID,
		SID:            model.SID,
		InvoiceNumber:  model.InvoiceNumber,
		TenantID:       model.TenantID,
		SubscriptionID: model.SubscriptionID,
		LineItems:      items,
		Amount:         model.Amount,
		TaxAmount:      model.TaxAmount,
		TotalAmount:    model.TotalAmount,
		Currency:       model.Currency,
		Status:         vo.InvoiceStatus(model.Status),
		PeriodStart:    model.PeriodStart,
		PeriodEnd:      model.PeriodEnd,
		PaidAt:         model.PaidAt,
		FailureReason:  model.FailureReason,
		Notes:          model.Notes,
		Version:        model.Version,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	})
}

// InvoiceSequenceRepositoryImpl assigns invoice numbers from a per-month
// counter row.
type InvoiceSequenceRepositoryImpl struct {
	db *gorm.DB
}

func NewInvoiceSequenceRepository(database *gorm.DB) billing.InvoiceSequenceRepository {
	return &InvoiceSequenceRepositoryImpl{db: database}
}

// NextValue locks the month's row FOR UPDATE, increments it, and returns the
// new value. Callers run it inside the transaction that inserts the invoice
// so the counter advance commits or rolls back with the row.
func (r *InvoiceSequenceRepositoryImpl) NextValue(ctx context.Context, year int, month time.Month) (int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	seed := &models.InvoiceSequenceModel{Year: year, Month: int(month)}
	err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return 0, fmt.Errorf("failed to seed invoice sequence: %w", err)
	}

	var row models.InvoiceSequenceModel
	err = conn.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("year = ? AND month = ?", year, int(month)).
		First(&row).Error
	if err != nil {
		return 0, fmt.Errorf("failed to lock invoice sequence: %w", err)
	}

	row.LastValue++
	err = conn.Model(&models.InvoiceSequenceModel{}).
		Where("id = ?", row.ID).
		Update("last_value", row.LastValue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to advance invoice sequence: %w", err)
	}
	return row.LastValue, nil
}
