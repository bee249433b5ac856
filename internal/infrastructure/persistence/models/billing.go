package models

import (
	"time"

	"github.com/community/backend/internal/domain/billing"
	"github.com/community/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for invoices
type InvoiceModel struct {
	AggregateModel
	Number       string    `gorm:"not null;uniqueIndex"`
	CustomerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName string
	FlatID       uuid.UUID `gorm:"type:uuid;index"`
	OriginType   string    `gorm:"not null;index:idx_invoices_origin"`
	OriginID     uuid.UUID `gorm:"type:uuid;index:idx_invoices_origin"`
	PeriodKey    string
	Lines        []InvoiceLineModel `gorm:"foreignKey:InvoiceID"`
	TotalAmount  decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	IssueDate    time.Time          `gorm:"not null"`
	DueDate      time.Time
	Status       string `gorm:"not null;index"`
}

// TableName specifies the table name
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceLineModel is the persistence model for invoice lines
type InvoiceLineModel struct {
	BaseModel
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName specifies the table name
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// InvoiceModelFromDomain converts a domain Invoice to its persistence model
func InvoiceModelFromDomain(i *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		Number:       i.Number,
		CustomerID:   i.CustomerID,
		CustomerName: i.CustomerName,
		FlatID:       i.FlatID,
		OriginType:   string(i.OriginType),
		OriginID:     i.OriginID,
		PeriodKey:    i.PeriodKey,
		TotalAmount:  i.TotalAmount.Amount(),
		IssueDate:    i.IssueDate,
		DueDate:      i.DueDate,
		Status:       string(i.Status),
	}
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	for _, line := range i.Lines {
		lm := InvoiceLineModel{
			InvoiceID:   line.InvoiceID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Amount:      line.Amount,
		}
		lm.FromDomainBaseEntity(line.BaseEntity)
		m.Lines = append(m.Lines, lm)
	}
	return m
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	i := &billing.Invoice{
		Number:       m.Number,
		CustomerID:   m.CustomerID,
		CustomerName: m.CustomerName,
		FlatID:       m.FlatID,
		OriginType:   billing.InvoiceOrigin(m.OriginType),
		OriginID:     m.OriginID,
		PeriodKey:    m.PeriodKey,
		TotalAmount:  valueobject.NewMoneyINR(m.TotalAmount),
		IssueDate:    m.IssueDate,
		DueDate:      m.DueDate,
		Status:       billing.InvoiceStatus(m.Status),
	}
	m.PopulateAggregateRoot(&i.BaseAggregateRoot)
	for _, lm := range m.Lines {
		i.Lines = append(i.Lines, billing.InvoiceLine{
			BaseEntity:  lm.BaseModel.ToDomain(),
			InvoiceID:   lm.InvoiceID,
			Description: lm.Description,
			Quantity:    lm.Quantity,
			UnitPrice:   lm.UnitPrice,
			Amount:      lm.Amount,
		})
	}
	return i
}

// MaintenanceRecordModel is the persistence model for maintenance records
type MaintenanceRecordModel struct {
	AggregateModel
	FlatID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	TenantName string

	Model          string          `gorm:"not null"`
	StandardAmount decimal.Decimal `gorm:"type:decimal(12,2)"`
	RatePerArea    decimal.Decimal `gorm:"type:decimal(12,2)"`
	FlatArea       decimal.Decimal `gorm:"type:decimal(12,2)"`

	Lines       []MaintenanceLineModel `gorm:"foreignKey:RecordID"`
	TotalAmount decimal.Decimal        `gorm:"type:decimal(12,2);not null"`
	Status      string                 `gorm:"not null;index"`
}

// TableName specifies the table name
func (MaintenanceRecordModel) TableName() string {
	return "maintenance_records"
}

// MaintenanceLineModel is the persistence model for maintenance charge lines
type MaintenanceLineModel struct {
	BaseModel
	RecordID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type     string    `gorm:"not null"`
	Label    string
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName specifies the table name
func (MaintenanceLineModel) TableName() string {
	return "maintenance_lines"
}

// MaintenanceInvoiceLinkModel joins a maintenance record to every invoice
// raised for it. Maintenance re-bills each period, so the link is one to many.
type MaintenanceInvoiceLinkModel struct {
	BaseModel
	RecordID  uuid.UUID `gorm:"type:uuid;not null;index"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName specifies the table name
func (MaintenanceInvoiceLinkModel) TableName() string {
	return "maintenance_invoice_links"
}

// MaintenanceRecordModelFromDomain converts a domain MaintenanceRecord to its
// persistence model. Invoice links are persisted separately.
func MaintenanceRecordModelFromDomain(r *billing.MaintenanceRecord) *MaintenanceRecordModel {
	m := &MaintenanceRecordModel{
		FlatID:         r.FlatID,
		TenantID:       r.TenantID,
		TenantName:     r.TenantName,
		Model:          string(r.Model),
		StandardAmount: r.StandardAmount,
		RatePerArea:    r.RatePerArea,
		FlatArea:       r.FlatArea,
		TotalAmount:    r.TotalAmount,
		Status:         string(r.Status),
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	for _, line := range r.Lines {
		lm := MaintenanceLineModel{
			RecordID: line.RecordID,
			Type:     string(line.Type),
			Label:    line.Label,
			Amount:   line.Amount,
		}
		lm.FromDomainBaseEntity(line.BaseEntity)
		m.Lines = append(m.Lines, lm)
	}
	return m
}

// ToDomain converts the persistence model to a domain MaintenanceRecord.
// InvoiceIDs must be loaded from the link table by the repository.
func (m *MaintenanceRecordModel) ToDomain() *billing.MaintenanceRecord {
	r := &billing.MaintenanceRecord{
		FlatID:         m.FlatID,
		TenantID:       m.TenantID,
		TenantName:     m.TenantName,
		Model:          billing.BillingModel(m.Model),
		StandardAmount: m.StandardAmount,
		RatePerArea:    m.RatePerArea,
		FlatArea:       m.FlatArea,
		TotalAmount:    m.TotalAmount,
		Status:         billing.MaintenanceStatus(m.Status),
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	for _, lm := range m.Lines {
		r.Lines = append(r.Lines, billing.MaintenanceLine{
			BaseEntity: lm.BaseModel.ToDomain(),
			RecordID:   lm.RecordID,
			Type:       billing.LineItemType(lm.Type),
			Label:      lm.Label,
			Amount:     lm.Amount,
		})
	}
	return r
}

// CorpusFundModel is the persistence model for corpus fund contributions
type CorpusFundModel struct {
	AggregateModel
	FlatID    uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerName string
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	InvoiceID *uuid.UUID      `gorm:"type:uuid"`
	Status    string          `gorm:"not null;index"`
}

// TableName specifies the table name
func (CorpusFundModel) TableName() string {
	return "corpus_funds"
}

// CorpusFundModelFromDomain converts a domain CorpusFund to its persistence
// model
func CorpusFundModelFromDomain(c *billing.CorpusFund) *CorpusFundModel {
	m := &CorpusFundModel{
		FlatID:    c.FlatID,
		OwnerID:   c.OwnerID,
		OwnerName: c.OwnerName,
		Amount:    c.Amount,
		InvoiceID: c.InvoiceID,
		Status:    string(c.Status),
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain CorpusFund
func (m *CorpusFundModel) ToDomain() *billing.CorpusFund {
	c := &billing.CorpusFund{
		FlatID:    m.FlatID,
		OwnerID:   m.OwnerID,
		OwnerName: m.OwnerName,
		Amount:    m.Amount,
		InvoiceID: m.InvoiceID,
		Status:    billing.CorpusFundStatus(m.Status),
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}
