package community

import (
	"time"

	"github.com/community/backend/internal/domain/community"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBuildingRequest carries the inputs for a new building
type CreateBuildingRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code"`
	Address string `json:"address"`
}

// CreateFlatRequest carries the inputs for a new flat
type CreateFlatRequest struct {
	Name       string          `json:"name" binding:"required"`
	BuildingID uuid.UUID       `json:"building_id" binding:"required"`
	FloorID    uuid.UUID       `json:"floor_id"`
	FlatType   string          `json:"flat_type"`
	Area       decimal.Decimal `json:"area"`
}

// FlatListFilter carries list query parameters
type FlatListFilter struct {
	BuildingID string `form:"building_id"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// BuildingResponse is the API shape of a building
type BuildingResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// ToBuildingResponse maps a building to its API shape
func ToBuildingResponse(b *community.Building) *BuildingResponse {
	return &BuildingResponse{
		ID:        b.ID,
		Name:      b.Name,
		Code:      b.Code,
		Address:   b.Address,
		CreatedAt: b.CreatedAt,
	}
}

// FlatResponse is the API shape of a flat with its occupancy cache
type FlatResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Name                 string          `json:"name"`
	BuildingID           uuid.UUID       `json:"building_id"`
	FlatType             string          `json:"flat_type"`
	Area                 decimal.Decimal `json:"area"`
	Status               string          `json:"status"`
	CurrentTransactionID *uuid.UUID      `json:"current_transaction_id,omitempty"`
	TenantID             *uuid.UUID      `json:"tenant_id,omitempty"`
	RentPrice            decimal.Decimal `json:"rent_price"`
	LeaseStartDate       *time.Time      `json:"lease_start_date,omitempty"`
	LeaseEndDate         *time.Time      `json:"lease_end_date,omitempty"`
}

// ToFlatResponse maps a flat to its API shape
func ToFlatResponse(f *community.Flat) *FlatResponse {
	return &FlatResponse{
		ID:                   f.ID,
		Name:                 f.Name,
		BuildingID:           f.BuildingID,
		FlatType:             f.FlatType,
		Area:                 f.Area,
		Status:               f.Status.String(),
		CurrentTransactionID: f.CurrentTransactionID,
		TenantID:             f.TenantID,
		RentPrice:            f.RentPrice,
		LeaseStartDate:       f.LeaseStartDate,
		LeaseEndDate:         f.LeaseEndDate,
	}
}

// OccupancySummary is the dashboard count of flats by status
type OccupancySummary struct {
	Total     int64 `json:"total"`
	Occupied  int64 `json:"occupied"`
	Available int64 `json:"available"`
}
