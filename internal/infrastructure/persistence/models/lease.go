package models

import (
	"time"

	"github.com/community/backend/internal/domain/lease"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaseTransactionModel is the persistence model for lease transactions
type LeaseTransactionModel struct {
	AggregateModel
	BuildingID   uuid.UUID `gorm:"type:uuid;index"`
	FloorID      uuid.UUID `gorm:"type:uuid"`
	FlatID       uuid.UUID `gorm:"type:uuid;not null;index"`
	FlatName     string
	TenantID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TenantName   string
	LeaseOwnerID *uuid.UUID `gorm:"type:uuid"`

	RentPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SecurityDeposit decimal.Decimal `gorm:"type:decimal(12,2)"`
	LeaseStartDate  time.Time       `gorm:"not null"`
	LeaseEndDate    time.Time       `gorm:"not null;index"`
	AgreementDate   time.Time
	Notes           string

	Status string `gorm:"not null;index"`

	InvoicedMonths          string
	SecurityDepositInvoiced bool `gorm:"not null;default:false"`

	ConfirmedAt  *time.Time
	TerminatedAt *time.Time
	CancelledAt  *time.Time
	ExpiredAt    *time.Time
}

// TableName specifies the table name
func (LeaseTransactionModel) TableName() string {
	return "lease_transactions"
}

// LeaseTransactionModelFromDomain converts a domain Transaction to its
// persistence model
func LeaseTransactionModelFromDomain(t *lease.Transaction) *LeaseTransactionModel {
	m := &LeaseTransactionModel{
		BuildingID:              t.BuildingID,
		FloorID:                 t.FloorID,
		FlatID:                  t.FlatID,
		FlatName:                t.FlatName,
		TenantID:                t.TenantID,
		TenantName:              t.TenantName,
		LeaseOwnerID:            t.LeaseOwnerID,
		RentPrice:               t.RentPrice,
		SecurityDeposit:         t.SecurityDeposit,
		LeaseStartDate:          t.LeaseStartDate,
		LeaseEndDate:            t.LeaseEndDate,
		AgreementDate:           t.AgreementDate,
		Notes:                   t.Notes,
		Status:                  string(t.Status),
		InvoicedMonths:          t.InvoicedMonths,
		SecurityDepositInvoiced: t.SecurityDepositInvoiced,
		ConfirmedAt:             t.ConfirmedAt,
		TerminatedAt:            t.TerminatedAt,
		CancelledAt:             t.CancelledAt,
		ExpiredAt:               t.ExpiredAt,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain Transaction
func (m *LeaseTransactionModel) ToDomain() *lease.Transaction {
	t := &lease.Transaction{
		BuildingID:              m.BuildingID,
		FloorID:                 m.FloorID,
		FlatID:                  m.FlatID,
		FlatName:                m.FlatName,
		TenantID:                m.TenantID,
		TenantName:              m.TenantName,
		LeaseOwnerID:            m.LeaseOwnerID,
		RentPrice:               m.RentPrice,
		SecurityDeposit:         m.SecurityDeposit,
		LeaseStartDate:          m.LeaseStartDate,
		LeaseEndDate:            m.LeaseEndDate,
		AgreementDate:           m.AgreementDate,
		Notes:                   m.Notes,
		Status:                  lease.Status(m.Status),
		InvoicedMonths:          m.InvoicedMonths,
		SecurityDepositInvoiced: m.SecurityDepositInvoiced,
		ConfirmedAt:             m.ConfirmedAt,
		TerminatedAt:            m.TerminatedAt,
		CancelledAt:             m.CancelledAt,
		ExpiredAt:               m.ExpiredAt,
	}
	m.PopulateAggregateRoot(&t.BaseAggregateRoot)
	return t
}
