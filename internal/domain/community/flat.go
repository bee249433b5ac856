package community

import (
	"fmt"
	"time"

	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FlatStatus represents the occupancy status of a flat
type FlatStatus string

const (
	FlatStatusAvailable FlatStatus = "AVAILABLE"
	FlatStatusOccupied  FlatStatus = "OCCUPIED"
)

// IsValid checks if the status is a valid FlatStatus
func (s FlatStatus) IsValid() bool {
	switch s {
	case FlatStatusAvailable, FlatStatusOccupied:
		return true
	}
	return false
}

// String returns the string representation of FlatStatus
func (s FlatStatus) String() string {
	return string(s)
}

// Flat represents one flat in the community.
//
// The tenant, lease owner, rent and lease date fields are an occupancy cache
// mirroring the currently confirmed lease transaction. They are not
// independently authoritative: only the lease lifecycle mutates them, via
// Occupy and Vacate, and Vacate refuses to act for a transaction that is not
// the cached current occupant.
type Flat struct {
	shared.BaseAggregateRoot
	Name       string
	BuildingID uuid.UUID
	FloorID    uuid.UUID
	FlatType   string
	Area       decimal.Decimal // square feet
	Status     FlatStatus

	// Occupancy cache, mirrors the confirmed lease transaction
	CurrentTransactionID *uuid.UUID
	TenantID             *uuid.UUID
	LeaseOwnerID         *uuid.UUID
	RentPrice            decimal.Decimal
	LeaseStartDate       *time.Time
	LeaseEndDate         *time.Time
}

// NewFlat creates a new flat in available status
func NewFlat(name string, buildingID, floorID uuid.UUID, flatType string, area decimal.Decimal) (*Flat, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Flat name cannot be empty")
	}
	if buildingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUILDING", "Building ID cannot be empty")
	}
	if area.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AREA", "Flat area cannot be negative")
	}
	return &Flat{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		BuildingID:        buildingID,
		FloorID:           floorID,
		FlatType:          flatType,
		Area:              area,
		Status:            FlatStatusAvailable,
		RentPrice:         decimal.Zero,
	}, nil
}

// IsOccupied returns true if the flat is currently occupied
func (f *Flat) IsOccupied() bool {
	return f.Status == FlatStatusOccupied
}

// Occupy fills the occupancy cache from a confirmed lease transaction.
// Fails with FLAT_OCCUPIED when another lease already holds the flat.
func (f *Flat) Occupy(transactionID, tenantID uuid.UUID, leaseOwnerID *uuid.UUID, rent decimal.Decimal, leaseStart, leaseEnd time.Time) error {
	if f.IsOccupied() {
		return shared.NewDomainError("FLAT_OCCUPIED",
			fmt.Sprintf("Flat %s is already occupied by another lease", f.Name))
	}
	if transactionID == uuid.Nil || tenantID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Transaction and tenant are required to occupy a flat")
	}

	f.Status = FlatStatusOccupied
	f.CurrentTransactionID = &transactionID
	f.TenantID = &tenantID
	f.LeaseOwnerID = leaseOwnerID
	f.RentPrice = rent
	f.LeaseStartDate = &leaseStart
	f.LeaseEndDate = &leaseEnd
	f.Touch()
	f.IncrementVersion()

	return nil
}

// Vacate clears the occupancy cache. Only the transaction currently cached as
// occupant may vacate the flat; a stale or superseded transaction gets an
// INVALID_STATE error instead of silently freeing someone else's flat.
func (f *Flat) Vacate(transactionID uuid.UUID) error {
	if f.Status != FlatStatusOccupied {
		return shared.NewDomainError("INVALID_STATE", "Flat is not occupied")
	}
	if f.CurrentTransactionID == nil || *f.CurrentTransactionID != transactionID {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Flat %s is occupied by a different lease transaction", f.Name))
	}

	f.Status = FlatStatusAvailable
	f.CurrentTransactionID = nil
	f.TenantID = nil
	f.LeaseOwnerID = nil
	f.RentPrice = decimal.Zero
	f.LeaseStartDate = nil
	f.LeaseEndDate = nil
	f.Touch()
	f.IncrementVersion()

	return nil
}
