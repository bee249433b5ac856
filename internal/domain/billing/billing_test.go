package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoice_Lifecycle(t *testing.T) {
	issue := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	inv, err := NewInvoice(uuid.New(), "Asha Verma", uuid.New(), OriginRent, uuid.New(), issue)
	require.NoError(t, err)

	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.Contains(t, inv.Number, "INV-202504-")

	// Cannot post without lines
	require.Error(t, inv.Post())

	require.NoError(t, inv.AddLine("Monthly rent April 2025", decimal.NewFromInt(1), decimal.NewFromInt(18000)))
	assert.True(t, inv.TotalAmount.Amount().Equal(decimal.NewFromInt(18000)))

	require.NoError(t, inv.Post())
	assert.Equal(t, InvoiceStatusPosted, inv.Status)

	// No edits after posting
	require.Error(t, inv.AddLine("Late fee", decimal.NewFromInt(1), decimal.NewFromInt(500)))

	require.NoError(t, inv.MarkPaid())
	require.Error(t, inv.Cancel())
}

func TestNewInvoice_Validation(t *testing.T) {
	issue := time.Now()

	_, err := NewInvoice(uuid.Nil, "", uuid.New(), OriginRent, uuid.New(), issue)
	assert.Error(t, err)

	_, err = NewInvoice(uuid.New(), "", uuid.New(), InvoiceOrigin("FINE"), uuid.New(), issue)
	assert.Error(t, err)
}

func TestMaintenanceRecord_StandardTotal(t *testing.T) {
	rec, err := NewMaintenanceRecord(uuid.New(), uuid.New(), "Asha Verma", BillingStandard)
	require.NoError(t, err)
	rec.StandardAmount = decimal.NewFromInt(2500)

	require.NoError(t, rec.AddLine(LineElectricity, "Common meter", decimal.NewFromInt(300)))
	require.NoError(t, rec.AddLine(LineLift, "", decimal.NewFromInt(150)))

	assert.True(t, rec.TotalAmount.Equal(decimal.NewFromInt(2950)))
}

func TestMaintenanceRecord_AreaBasedTotal(t *testing.T) {
	rec, err := NewMaintenanceRecord(uuid.New(), uuid.New(), "Asha Verma", BillingAreaBased)
	require.NoError(t, err)
	rec.FlatArea = decimal.NewFromInt(1050)
	rec.RatePerArea = decimal.NewFromFloat(2.5)

	rec.RecomputeTotal()

	assert.True(t, rec.TotalAmount.Equal(decimal.NewFromFloat(2625)))
}

func TestMaintenanceRecord_RepeatInvoicingAllowed(t *testing.T) {
	rec, err := NewMaintenanceRecord(uuid.New(), uuid.New(), "Asha Verma", BillingStandard)
	require.NoError(t, err)
	rec.StandardAmount = decimal.NewFromInt(2500)

	// Must confirm before invoicing
	require.Error(t, rec.LinkInvoice(uuid.New()))

	require.NoError(t, rec.Confirm())
	require.NoError(t, rec.LinkInvoice(uuid.New()))
	require.NoError(t, rec.LinkInvoice(uuid.New()))
	assert.Len(t, rec.InvoiceIDs, 2)
}

func TestMaintenanceRecord_ConfirmRequiresTotal(t *testing.T) {
	rec, err := NewMaintenanceRecord(uuid.New(), uuid.New(), "Asha Verma", BillingStandard)
	require.NoError(t, err)

	require.Error(t, rec.Confirm())

	rec.StandardAmount = decimal.NewFromInt(2500)
	require.NoError(t, rec.Confirm())
	require.Error(t, rec.Confirm())
}

func TestCorpusFund_OneShotInvoicing(t *testing.T) {
	cf, err := NewCorpusFund(uuid.New(), uuid.New(), "Suresh Rao", decimal.NewFromInt(100000))
	require.NoError(t, err)
	assert.Equal(t, CorpusFundStatusDraft, cf.Status)

	invoiceID := uuid.New()
	require.NoError(t, cf.MarkInvoiced(invoiceID))
	assert.Equal(t, CorpusFundStatusInvoiced, cf.Status)
	assert.Equal(t, invoiceID, *cf.InvoiceID)

	// Strictly one invoice per contribution
	err = cf.MarkInvoiced(uuid.New())
	require.Error(t, err)
	assert.Equal(t, invoiceID, *cf.InvoiceID)
}

func TestNewCorpusFund_Validation(t *testing.T) {
	_, err := NewCorpusFund(uuid.New(), uuid.New(), "", decimal.Zero)
	assert.Error(t, err)

	_, err = NewCorpusFund(uuid.Nil, uuid.New(), "", decimal.NewFromInt(1))
	assert.Error(t, err)
}
