package community

import (
	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Building represents one building in the residential community
type Building struct {
	shared.BaseAggregateRoot
	Name    string
	Code    string
	Address string
}

// NewBuilding creates a new building
func NewBuilding(name, code string) (*Building, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Building name cannot be empty")
	}
	return &Building{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
	}, nil
}

// Rename changes the building name
func (b *Building) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Building name cannot be empty")
	}
	b.Name = name
	b.Touch()
	b.IncrementVersion()
	return nil
}

// Floor represents one floor inside a building
type Floor struct {
	shared.BaseEntity
	BuildingID uuid.UUID
	Name       string
	Level      int
}

// NewFloor creates a new floor for a building
func NewFloor(buildingID uuid.UUID, name string, level int) (*Floor, error) {
	if buildingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUILDING", "Building ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Floor name cannot be empty")
	}
	return &Floor{
		BaseEntity: shared.NewBaseEntity(),
		BuildingID: buildingID,
		Name:       name,
		Level:      level,
	}, nil
}
