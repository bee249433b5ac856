package billing

import (
	"context"

	"github.com/community/backend/internal/domain/billing"
	"github.com/community/backend/internal/domain/community"
	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMaintenanceRepository is a mock implementation of MaintenanceRepository
type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MaintenanceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MaintenanceRecord), args.Error(1)
}

func (m *MockMaintenanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.MaintenanceRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.MaintenanceRecord), args.Error(1)
}

func (m *MockMaintenanceRepository) FindByFlat(ctx context.Context, flatID uuid.UUID, filter shared.Filter) ([]billing.MaintenanceRecord, error) {
	args := m.Called(ctx, flatID, filter)
	return args.Get(0).([]billing.MaintenanceRecord), args.Error(1)
}

func (m *MockMaintenanceRepository) Save(ctx context.Context, rec *billing.MaintenanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) SaveWithLock(ctx context.Context, rec *billing.MaintenanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) LinkInvoice(ctx context.Context, recordID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, recordID, invoiceID)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) FindInvoiceIDs(ctx context.Context, recordID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, recordID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockMaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCorpusFundRepository is a mock implementation of CorpusFundRepository
type MockCorpusFundRepository struct {
	mock.Mock
}

func (m *MockCorpusFundRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.CorpusFund, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CorpusFund), args.Error(1)
}

func (m *MockCorpusFundRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.CorpusFund, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.CorpusFund), args.Error(1)
}

func (m *MockCorpusFundRepository) FindByFlat(ctx context.Context, flatID uuid.UUID) ([]billing.CorpusFund, error) {
	args := m.Called(ctx, flatID)
	return args.Get(0).([]billing.CorpusFund), args.Error(1)
}

func (m *MockCorpusFundRepository) Save(ctx context.Context, cf *billing.CorpusFund) error {
	args := m.Called(ctx, cf)
	return args.Error(0)
}

func (m *MockCorpusFundRepository) SaveWithLock(ctx context.Context, cf *billing.CorpusFund) error {
	args := m.Called(ctx, cf)
	return args.Error(0)
}

func (m *MockCorpusFundRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

// MockFlatRepository is a mock implementation of community.FlatRepository
type MockFlatRepository struct {
	mock.Mock
}

func (m *MockFlatRepository) FindByID(ctx context.Context, id uuid.UUID) (*community.Flat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*community.Flat), args.Error(1)
}

func (m *MockFlatRepository) FindAll(ctx context.Context, filter shared.Filter) ([]community.Flat, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]community.Flat), args.Error(1)
}

func (m *MockFlatRepository) FindByBuilding(ctx context.Context, buildingID uuid.UUID, filter shared.Filter) ([]community.Flat, error) {
	args := m.Called(ctx, buildingID, filter)
	return args.Get(0).([]community.Flat), args.Error(1)
}

func (m *MockFlatRepository) FindByStatus(ctx context.Context, status community.FlatStatus, filter shared.Filter) ([]community.Flat, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]community.Flat), args.Error(1)
}

func (m *MockFlatRepository) FindOccupiedByTenant(ctx context.Context, tenantID uuid.UUID) (*community.Flat, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*community.Flat), args.Error(1)
}

func (m *MockFlatRepository) Save(ctx context.Context, flat *community.Flat) error {
	args := m.Called(ctx, flat)
	return args.Error(0)
}

func (m *MockFlatRepository) SaveWithLock(ctx context.Context, flat *community.Flat) error {
	args := m.Called(ctx, flat)
	return args.Error(0)
}

func (m *MockFlatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlatRepository) CountByStatus(ctx context.Context, status community.FlatStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
