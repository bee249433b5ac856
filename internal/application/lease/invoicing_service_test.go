package lease

import (
	"context"
	"testing"
	"time"

	"github.com/community/backend/internal/domain/billing"
	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByOrigin(ctx context.Context, origin billing.InvoiceOrigin, originID uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, origin, originID)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, inv *billing.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestInvoicingService_CreateRentInvoice(t *testing.T) {
	txRepo := new(MockTransactionRepository)
	invoiceRepo := new(MockInvoiceRepository)
	svc := NewInvoicingService(txRepo, invoiceRepo, zap.NewNop())

	tx := newDraftTransaction(t, uuid.New())
	require.NoError(t, tx.Confirm())

	now := time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC)
	txRepo.On("FindByID", mock.Anything, tx.ID).Return(tx, nil)
	invoiceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	txRepo.On("SaveWithLock", mock.Anything, tx).Return(nil)

	resp, err := svc.CreateRentInvoice(context.Background(), tx.ID, now)

	require.NoError(t, err)
	assert.Equal(t, "2025-04", resp.PeriodKey)
	assert.True(t, resp.TotalAmount.Equal(tx.RentPrice))
	assert.True(t, tx.IsMonthInvoiced("2025-04"))

	// Same month again is a conflict, no new invoice saved
	_, err = svc.CreateRentInvoice(context.Background(), tx.ID, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been created")
	invoiceRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestInvoicingService_CreateRentInvoice_RequiresConfirmed(t *testing.T) {
	txRepo := new(MockTransactionRepository)
	invoiceRepo := new(MockInvoiceRepository)
	svc := NewInvoicingService(txRepo, invoiceRepo, zap.NewNop())

	tx := newDraftTransaction(t, uuid.New())
	txRepo.On("FindByID", mock.Anything, tx.ID).Return(tx, nil)

	_, err := svc.CreateRentInvoice(context.Background(), tx.ID, time.Now())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be confirmed")
}

func TestInvoicingService_CreateSecurityDepositInvoice_OneShot(t *testing.T) {
	txRepo := new(MockTransactionRepository)
	invoiceRepo := new(MockInvoiceRepository)
	svc := NewInvoicingService(txRepo, invoiceRepo, zap.NewNop())

	tx := newDraftTransaction(t, uuid.New())
	require.NoError(t, tx.Confirm())

	now := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	txRepo.On("FindByID", mock.Anything, tx.ID).Return(tx, nil)
	invoiceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	txRepo.On("SaveWithLock", mock.Anything, tx).Return(nil)

	resp, err := svc.CreateSecurityDepositInvoice(context.Background(), tx.ID, now)

	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(tx.SecurityDeposit))
	assert.True(t, tx.SecurityDepositInvoiced)

	_, err = svc.CreateSecurityDepositInvoice(context.Background(), tx.ID, now)
	require.Error(t, err)
	invoiceRepo.AssertNumberOfCalls(t, "Save", 1)
}
