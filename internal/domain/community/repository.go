package community

import (
	"context"

	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BuildingRepository provides access to buildings
type BuildingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Building, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Building, error)
	Save(ctx context.Context, building *Building) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FlatRepository provides access to flats and their occupancy cache
type FlatRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Flat, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Flat, error)
	FindByBuilding(ctx context.Context, buildingID uuid.UUID, filter shared.Filter) ([]Flat, error)
	FindByStatus(ctx context.Context, status FlatStatus, filter shared.Filter) ([]Flat, error)
	// FindOccupiedByTenant returns the flat currently occupied by the tenant, if any
	FindOccupiedByTenant(ctx context.Context, tenantID uuid.UUID) (*Flat, error)
	Save(ctx context.Context, flat *Flat) error
	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, flat *Flat) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status FlatStatus) (int64, error)
}
