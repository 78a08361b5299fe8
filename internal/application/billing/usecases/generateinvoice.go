package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type GenerateInvoiceCommand struct {
	TenantID       uint
	SubscriptionID *uint
	LineItems      []LineItemInput
	PeriodStart    time.Time
	PeriodEnd      time.Time
}

type LineItemInput struct {
	Description string
	Amount      int64
	Quantity    int
}

type GenerateInvoiceUseCase struct {
	invoiceRepo  billing.InvoiceRepository
	sequenceRepo billing.InvoiceSequenceRepository
	txManager    Transactor
	taxRate      float64
	currency     string
	maxRetries   int
	notifier     InvoiceNotifier
	logger       logger.Interface
}

func NewGenerateInvoiceUseCase(
	invoiceRepo billing.InvoiceRepository,
	sequenceRepo billing.InvoiceSequenceRepository,
	txManager Transactor,
	taxRatePercent float64,
	currency string,
	maxRetries int,
	logger logger.Interface,
) *GenerateInvoiceUseCase {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &GenerateInvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		sequenceRepo: sequenceRepo,
		txManager:    txManager,
		taxRate:      taxRatePercent,
		currency:     currency,
		maxRetries:   maxRetries,
		logger:       logger,
	}
}

// SetNotifier enables invoice-issued emails.
func (uc *GenerateInvoiceUseCase) SetNotifier(n InvoiceNotifier) {
	uc.notifier = n
}

// Execute creates an invoice with a month-scoped sequential number. The
// sequence increment and the invoice insert run in one transaction; the
// locked counter row serializes concurrent generators, so duplicates can
// only arise from historic rows, which surface as a number conflict and are
// retried with a fresh number. The retry is bounded and internal; callers
// never see ErrInvoiceNumberConflict.
func (uc *GenerateInvoiceUseCase) Execute(ctx context.Context, cmd GenerateInvoiceCommand) (*billing.Invoice, error) {
	items := make([]vo.LineItem, 0, len(cmd.LineItems))
	for _, in := range cmd.LineItems {
		item, err := vo.NewLineItem(in.Description, in.Amount, in.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	now := biztime.NowUTC()
	year, month := biztime.YearMonth(now)

	var invoice *billing.Invoice
	var lastErr error
	for attempt := 1; attempt <= uc.maxRetries; attempt++ {
		err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			seq, err := uc.sequenceRepo.NextValue(txCtx, year, month)
			if err != nil {
				return fmt.Errorf("failed to advance invoice sequence: %w", err)
			}

			inv, err := billing.NewInvoice(
				cmd.TenantID,
				cmd.SubscriptionID,
				billing.FormatInvoiceNumber(year, month, seq),
				items,
				uc.taxRate,
				uc.currency,
				cmd.PeriodStart,
				cmd.PeriodEnd,
			)
			if err != nil {
				return err
			}

			if err := uc.invoiceRepo.Create(txCtx, inv); err != nil {
				return err
			}
			invoice = inv
			return nil
		})
		if err == nil {
			uc.logger.Infow("invoice generated",
				"tenant_id", cmd.TenantID,
				"invoice_number", invoice.InvoiceNumber(),
				"total", invoice.TotalAmount(),
				"attempt", attempt)
			if uc.notifier != nil {
				if nErr := uc.notifier.SendInvoiceIssued(ctx, invoice); nErr != nil {
					uc.logger.Warnw("failed to send invoice email",
						"error", nErr,
						"invoice_number", invoice.InvoiceNumber())
				}
			}
			return invoice, nil
		}

		lastErr = err
		if !errors.Is(err, billing.ErrInvoiceNumberConflict) {
			uc.logger.Errorw("failed to generate invoice", "error", err, "tenant_id", cmd.TenantID)
			return nil, err
		}
		uc.logger.Warnw("invoice number conflict, retrying",
			"tenant_id", cmd.TenantID,
			"attempt", attempt)
	}

	uc.logger.Errorw("invoice generation exhausted retries", "error", lastErr, "tenant_id", cmd.TenantID)
	return nil, fmt.Errorf("invoice generation failed after %d attempts: %w", uc.maxRetries, lastErr)
}
