package billing

import (
	"fmt"

	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingModel determines how a maintenance total is computed
type BillingModel string

const (
	BillingStandard  BillingModel = "STANDARD"
	BillingAreaBased BillingModel = "AREA_BASED"
)

// IsValid checks if the model is a valid BillingModel
func (m BillingModel) IsValid() bool {
	return m == BillingStandard || m == BillingAreaBased
}

// LineItemType categorizes a maintenance charge
type LineItemType string

const (
	LineElectricity LineItemType = "ELECTRICITY"
	LineWater       LineItemType = "WATER"
	LineGas         LineItemType = "GAS"
	LineCleaning    LineItemType = "CLEANING"
	LineSecurity    LineItemType = "SECURITY"
	LineParking     LineItemType = "PARKING"
	LineCommonArea  LineItemType = "COMMON_AREA"
	LineLift        LineItemType = "LIFT"
	LineGenerator   LineItemType = "GENERATOR"
	LineWaste       LineItemType = "WASTE"
	LineRepair      LineItemType = "REPAIR"
	LineOther       LineItemType = "OTHER"
)

// IsValid checks if the type is a valid LineItemType
func (t LineItemType) IsValid() bool {
	switch t {
	case LineElectricity, LineWater, LineGas, LineCleaning, LineSecurity, LineParking,
		LineCommonArea, LineLift, LineGenerator, LineWaste, LineRepair, LineOther:
		return true
	}
	return false
}

// MaintenanceStatus represents the status of a maintenance record
type MaintenanceStatus string

const (
	MaintenanceStatusDraft     MaintenanceStatus = "DRAFT"
	MaintenanceStatusConfirmed MaintenanceStatus = "CONFIRMED"
)

// MaintenanceLine is one typed charge on a maintenance record
type MaintenanceLine struct {
	shared.BaseEntity
	RecordID uuid.UUID
	Type     LineItemType
	Label    string
	Amount   decimal.Decimal
}

// MaintenanceRecord is a recurring maintenance charge against a flat. Unlike
// rent it may be invoiced repeatedly; every period's invoice links back here.
type MaintenanceRecord struct {
	shared.BaseAggregateRoot
	FlatID     uuid.UUID
	TenantID   uuid.UUID
	TenantName string

	Model          BillingModel
	StandardAmount decimal.Decimal
	RatePerArea    decimal.Decimal
	FlatArea       decimal.Decimal

	Lines       []MaintenanceLine `gorm:"foreignKey:RecordID"`
	TotalAmount decimal.Decimal

	// InvoiceIDs links every invoice ever raised for this record
	InvoiceIDs []uuid.UUID `gorm:"-"`
	Status     MaintenanceStatus
}

// NewMaintenanceRecord creates a draft maintenance record
func NewMaintenanceRecord(flatID, tenantID uuid.UUID, tenantName string, model BillingModel) (*MaintenanceRecord, error) {
	if flatID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FLAT", "Flat is required for a maintenance record")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant is required for a maintenance record")
	}
	if !model.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Billing model must be standard or area based")
	}

	return &MaintenanceRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FlatID:            flatID,
		TenantID:          tenantID,
		TenantName:        tenantName,
		Model:             model,
		TotalAmount:       decimal.Zero,
		Status:            MaintenanceStatusDraft,
	}, nil
}

// AddLine appends a typed charge and recomputes the total
func (m *MaintenanceRecord) AddLine(itemType LineItemType, label string, amount decimal.Decimal) error {
	if !itemType.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown maintenance line type")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Maintenance line amount cannot be negative")
	}

	m.Lines = append(m.Lines, MaintenanceLine{
		BaseEntity: shared.NewBaseEntity(),
		RecordID:   m.ID,
		Type:       itemType,
		Label:      label,
		Amount:     amount,
	})
	m.RecomputeTotal()
	m.Touch()
	m.IncrementVersion()

	return nil
}

// RecomputeTotal derives the total from the billing model and line items.
// Standard: fixed amount plus lines. Area based: area times rate plus lines.
func (m *MaintenanceRecord) RecomputeTotal() {
	base := decimal.Zero
	switch m.Model {
	case BillingStandard:
		base = m.StandardAmount
	case BillingAreaBased:
		base = m.FlatArea.Mul(m.RatePerArea)
	}
	for _, l := range m.Lines {
		base = base.Add(l.Amount)
	}
	m.TotalAmount = base
}

// Confirm locks the record for invoicing
func (m *MaintenanceRecord) Confirm() error {
	if m.Status != MaintenanceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm maintenance record in %s status", m.Status))
	}
	m.RecomputeTotal()
	if !m.TotalAmount.IsPositive() {
		return shared.NewDomainError("INVALID_STATE", "Maintenance total must be greater than zero to confirm")
	}
	m.Status = MaintenanceStatusConfirmed
	m.Touch()
	m.IncrementVersion()
	return nil
}

// LinkInvoice records one more invoice raised for this record.
// Repeat invoicing is allowed, so this never rejects duplicates by period.
func (m *MaintenanceRecord) LinkInvoice(invoiceID uuid.UUID) error {
	if m.Status != MaintenanceStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Maintenance record must be confirmed before invoicing")
	}
	m.InvoiceIDs = append(m.InvoiceIDs, invoiceID)
	m.Touch()
	m.IncrementVersion()
	return nil
}
