package community

import (
	"context"

	"github.com/community/backend/internal/domain/community"
	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles building and flat operations. The occupancy cache on a
// flat is read-only from here; only the lease lifecycle mutates it.
type Service struct {
	buildingRepo community.BuildingRepository
	flatRepo     community.FlatRepository
	logger       *zap.Logger
}

// NewService creates a new community Service
func NewService(buildingRepo community.BuildingRepository, flatRepo community.FlatRepository, logger *zap.Logger) *Service {
	return &Service{
		buildingRepo: buildingRepo,
		flatRepo:     flatRepo,
		logger:       logger,
	}
}

// CreateBuilding creates a new building
func (s *Service) CreateBuilding(ctx context.Context, req CreateBuildingRequest) (*BuildingResponse, error) {
	b, err := community.NewBuilding(req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	b.Address = req.Address

	if err := s.buildingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	return ToBuildingResponse(b), nil
}

// ListBuildings retrieves all buildings
func (s *Service) ListBuildings(ctx context.Context) ([]BuildingResponse, error) {
	buildings, err := s.buildingRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	out := make([]BuildingResponse, 0, len(buildings))
	for i := range buildings {
		out = append(out, *ToBuildingResponse(&buildings[i]))
	}
	return out, nil
}

// CreateFlat creates a new available flat
func (s *Service) CreateFlat(ctx context.Context, req CreateFlatRequest) (*FlatResponse, error) {
	if _, err := s.buildingRepo.FindByID(ctx, req.BuildingID); err != nil {
		return nil, err
	}

	f, err := community.NewFlat(req.Name, req.BuildingID, req.FloorID, req.FlatType, req.Area)
	if err != nil {
		return nil, err
	}

	if err := s.flatRepo.Save(ctx, f); err != nil {
		return nil, err
	}
	return ToFlatResponse(f), nil
}

// GetFlat retrieves a flat with its occupancy cache
func (s *Service) GetFlat(ctx context.Context, id uuid.UUID) (*FlatResponse, error) {
	f, err := s.flatRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToFlatResponse(f), nil
}

// ListFlats retrieves flats matching the filter
func (s *Service) ListFlats(ctx context.Context, filter FlatListFilter) ([]FlatResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	var (
		flats []community.Flat
		err   error
	)
	switch {
	case filter.BuildingID != "":
		buildingID, perr := uuid.Parse(filter.BuildingID)
		if perr != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid building id")
		}
		flats, err = s.flatRepo.FindByBuilding(ctx, buildingID, domainFilter)
	case filter.Status != "":
		status := community.FlatStatus(filter.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown flat status")
		}
		flats, err = s.flatRepo.FindByStatus(ctx, status, domainFilter)
	default:
		flats, err = s.flatRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	out := make([]FlatResponse, 0, len(flats))
	for i := range flats {
		out = append(out, *ToFlatResponse(&flats[i]))
	}
	return out, nil
}

// FindFlatByTenant returns the flat a tenant currently occupies
func (s *Service) FindFlatByTenant(ctx context.Context, tenantID uuid.UUID) (*FlatResponse, error) {
	f, err := s.flatRepo.FindOccupiedByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToFlatResponse(f), nil
}

// OccupancySummary returns dashboard counts of flats by status
func (s *Service) OccupancySummary(ctx context.Context) (*OccupancySummary, error) {
	occupied, err := s.flatRepo.CountByStatus(ctx, community.FlatStatusOccupied)
	if err != nil {
		return nil, err
	}
	available, err := s.flatRepo.CountByStatus(ctx, community.FlatStatusAvailable)
	if err != nil {
		return nil, err
	}
	return &OccupancySummary{
		Total:     occupied + available,
		Occupied:  occupied,
		Available: available,
	}, nil
}
