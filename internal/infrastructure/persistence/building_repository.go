package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/community/backend/internal/domain/community"
	"github.com/community/backend/internal/domain/shared"
	"github.com/community/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBuildingRepository implements BuildingRepository using GORM
type GormBuildingRepository struct {
	db *gorm.DB
}

// NewGormBuildingRepository creates a new GormBuildingRepository
func NewGormBuildingRepository(db *gorm.DB) *GormBuildingRepository {
	return &GormBuildingRepository{db: db}
}

// FindByID finds a building by its ID
func (r *GormBuildingRepository) FindByID(ctx context.Context, id uuid.UUID) (*community.Building, error) {
	var model models.BuildingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all buildings matching the filter
func (r *GormBuildingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]community.Building, error) {
	var buildingModels []models.BuildingModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BuildingModel{}), filter)

	if err := query.Find(&buildingModels).Error; err != nil {
		return nil, err
	}

	buildings := make([]community.Building, len(buildingModels))
	for i, model := range buildingModels {
		buildings[i] = *model.ToDomain()
	}
	return buildings, nil
}

// Save creates or updates a building
func (r *GormBuildingRepository) Save(ctx context.Context, building *community.Building) error {
	model := models.BuildingModelFromDomain(building)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a building
func (r *GormBuildingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BuildingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormBuildingRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("name ASC")
	}

	return query
}

// Ensure GormBuildingRepository implements BuildingRepository
var _ community.BuildingRepository = (*GormBuildingRepository)(nil)
