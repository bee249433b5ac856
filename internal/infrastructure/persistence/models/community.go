package models

import (
	"time"

	"github.com/community/backend/internal/domain/community"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuildingModel is the persistence model for buildings
type BuildingModel struct {
	AggregateModel
	Name    string `gorm:"not null"`
	Code    string `gorm:"index"`
	Address string
}

// TableName specifies the table name
func (BuildingModel) TableName() string {
	return "buildings"
}

// BuildingModelFromDomain converts a domain Building to its persistence model
func BuildingModelFromDomain(b *community.Building) *BuildingModel {
	m := &BuildingModel{
		Name:    b.Name,
		Code:    b.Code,
		Address: b.Address,
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain Building
func (m *BuildingModel) ToDomain() *community.Building {
	b := &community.Building{
		Name:    m.Name,
		Code:    m.Code,
		Address: m.Address,
	}
	m.PopulateAggregateRoot(&b.BaseAggregateRoot)
	return b
}

// FloorModel is the persistence model for floors
type FloorModel struct {
	BaseModel
	BuildingID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"not null"`
	Level      int
}

// TableName specifies the table name
func (FloorModel) TableName() string {
	return "floors"
}

// FloorModelFromDomain converts a domain Floor to its persistence model
func FloorModelFromDomain(f *community.Floor) *FloorModel {
	m := &FloorModel{
		BuildingID: f.BuildingID,
		Name:       f.Name,
		Level:      f.Level,
	}
	m.FromDomainBaseEntity(f.BaseEntity)
	return m
}

// ToDomain converts the persistence model to a domain Floor
func (m *FloorModel) ToDomain() *community.Floor {
	return &community.Floor{
		BaseEntity: m.BaseModel.ToDomain(),
		BuildingID: m.BuildingID,
		Name:       m.Name,
		Level:      m.Level,
	}
}

// FlatModel is the persistence model for flats, including the occupancy cache
type FlatModel struct {
	AggregateModel
	Name       string    `gorm:"not null"`
	BuildingID uuid.UUID `gorm:"type:uuid;not null;index"`
	FloorID    uuid.UUID `gorm:"type:uuid;index"`
	FlatType   string
	Area       decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status     string          `gorm:"not null;index"`

	CurrentTransactionID *uuid.UUID      `gorm:"type:uuid;index"`
	TenantID             *uuid.UUID      `gorm:"type:uuid;index"`
	LeaseOwnerID         *uuid.UUID      `gorm:"type:uuid"`
	RentPrice            decimal.Decimal `gorm:"type:decimal(12,2)"`
	LeaseStartDate       *time.Time
	LeaseEndDate         *time.Time
}

// TableName specifies the table name
func (FlatModel) TableName() string {
	return "flats"
}

// FlatModelFromDomain converts a domain Flat to its persistence model
func FlatModelFromDomain(f *community.Flat) *FlatModel {
	m := &FlatModel{
		Name:                 f.Name,
		BuildingID:           f.BuildingID,
		FloorID:              f.FloorID,
		FlatType:             f.FlatType,
		Area:                 f.Area,
		Status:               string(f.Status),
		CurrentTransactionID: f.CurrentTransactionID,
		TenantID:             f.TenantID,
		LeaseOwnerID:         f.LeaseOwnerID,
		RentPrice:            f.RentPrice,
		LeaseStartDate:       f.LeaseStartDate,
		LeaseEndDate:         f.LeaseEndDate,
	}
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain Flat
func (m *FlatModel) ToDomain() *community.Flat {
	f := &community.Flat{
		Name:                 m.Name,
		BuildingID:           m.BuildingID,
		FloorID:              m.FloorID,
		FlatType:             m.FlatType,
		Area:                 m.Area,
		Status:               community.FlatStatus(m.Status),
		CurrentTransactionID: m.CurrentTransactionID,
		TenantID:             m.TenantID,
		LeaseOwnerID:         m.LeaseOwnerID,
		RentPrice:            m.RentPrice,
		LeaseStartDate:       m.LeaseStartDate,
		LeaseEndDate:         m.LeaseEndDate,
	}
	m.PopulateAggregateRoot(&f.BaseAggregateRoot)
	return f
}
