package usecases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/billing/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/testutil"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
)

type generateFixture struct {
	invoiceRepo  *testutil.MockInvoiceRepository
	sequenceRepo *testutil.MockInvoiceSequenceRepository
	tx           *testutil.MockTransactor
	uc           *usecases.GenerateInvoiceUseCase
}

func newGenerateFixture(t *testing.T, maxRetries int) *generateFixture {
	t.Helper()
	f := &generateFixture{
		invoiceRepo:  testutil.NewMockInvoiceRepository(),
		sequenceRepo: testutil.NewMockInvoiceSequenceRepository(),
		tx:           testutil.NewMockTransactor(),
	}
	f.uc = usecases.NewGenerateInvoiceUseCase(
		f.invoiceRepo, f.sequenceRepo, f.tx, 18.0, "INR", maxRetries, testutil.NewMockLogger())
	return f
}

func monthlyCommand(tenantID uint) usecases.GenerateInvoiceCommand {
	now := biztime.NowUTC()
	return usecases.GenerateInvoiceCommand{
		TenantID: tenantID,
		LineItems: []usecases.LineItemInput{
			{Description: "Growth plan (monthly)", Amount: 99900, Quantity: 1},
		},
		PeriodStart: now,
		PeriodEnd:   now.AddDate(0, 1, 0),
	}
}

func currentMonthNumber(seq int64) string {
	year, month := biztime.YearMonth(biztime.NowUTC())
	return billing.FormatInvoiceNumber(year, month, seq)
}

func TestGenerateInvoice_SequentialNumbersWithinMonth(t *testing.T) {
	f := newGenerateFixture(t, 3)

	first, err := f.uc.Execute(context.Background(), monthlyCommand(1))
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), monthlyCommand(2))
	require.NoError(t, err)

	assert.Equal(t, currentMonthNumber(1), first.InvoiceNumber())
	assert.Equal(t, currentMonthNumber(2), second.InvoiceNumber())
	assert.Equal(t, first.Amount()+first.TaxAmount(), first.TotalAmount())
	assert.Equal(t, int64(99900), first.Amount())
	assert.Equal(t, int64(17982), first.TaxAmount())
}

func TestGenerateInvoice_RetriesOnNumberConflict(t *testing.T) {
	f := newGenerateFixture(t, 3)
	f.invoiceRepo.ConflictNumbers = map[string]bool{currentMonthNumber(1): true}

	inv, err := f.uc.Execute(context.Background(), monthlyCommand(1))
	require.NoError(t, err)
	assert.Equal(t, currentMonthNumber(2), inv.InvoiceNumber())
	assert.Equal(t, 2, f.tx.Calls)
}

func TestGenerateInvoice_SurfacesErrorAfterExhaustedRetries(t *testing.T) {
	f := newGenerateFixture(t, 2)
	f.invoiceRepo.ConflictNumbers = map[string]bool{
		currentMonthNumber(1): true,
		currentMonthNumber(2): true,
	}

	_, err := f.uc.Execute(context.Background(), monthlyCommand(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, billing.ErrInvoiceNumberConflict)
	assert.Equal(t, 2, f.tx.Calls)
}

func TestGenerateInvoice_CreditLineReducesSubtotal(t *testing.T) {
	f := newGenerateFixture(t, 3)
	cmd := monthlyCommand(1)
	cmd.LineItems = append(cmd.LineItems, usecases.LineItemInput{
		Description: "Credit for unused period",
		Amount:      -20000,
		Quantity:    1,
	})

	inv, err := f.uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(79900), inv.Amount())
	assert.Equal(t, inv.Amount()+inv.TaxAmount(), inv.TotalAmount())
}

func TestGenerateInvoice_RejectsNegativeTotal(t *testing.T) {
	f := newGenerateFixture(t, 3)
	cmd := monthlyCommand(1)
	cmd.LineItems = []usecases.LineItemInput{
		{Description: "Credit for unused period", Amount: -5000, Quantity: 1},
	}

	_, err := f.uc.Execute(context.Background(), cmd)
	require.Error(t, err)
}
