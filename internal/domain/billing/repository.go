package billing

import (
	"context"

	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository provides access to invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	FindByOrigin(ctx context.Context, origin InvoiceOrigin, originID uuid.UUID) ([]Invoice, error)
	Save(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MaintenanceRepository provides access to maintenance records and their
// invoice links
type MaintenanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MaintenanceRecord, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]MaintenanceRecord, error)
	FindByFlat(ctx context.Context, flatID uuid.UUID, filter shared.Filter) ([]MaintenanceRecord, error)
	Save(ctx context.Context, rec *MaintenanceRecord) error
	SaveWithLock(ctx context.Context, rec *MaintenanceRecord) error
	// LinkInvoice persists one row in the record-invoice join table
	LinkInvoice(ctx context.Context, recordID, invoiceID uuid.UUID) error
	FindInvoiceIDs(ctx context.Context, recordID uuid.UUID) ([]uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CorpusFundRepository provides access to corpus fund contributions
type CorpusFundRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CorpusFund, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]CorpusFund, error)
	FindByFlat(ctx context.Context, flatID uuid.UUID) ([]CorpusFund, error)
	Save(ctx context.Context, cf *CorpusFund) error
	SaveWithLock(ctx context.Context, cf *CorpusFund) error
	Delete(ctx context.Context, id uuid.UUID) error
}
