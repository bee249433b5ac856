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

// GormFlatRepository implements FlatRepository using GORM
type GormFlatRepository struct {
	db *gorm.DB
}

// NewGormFlatRepository creates a new GormFlatRepository
func NewGormFlatRepository(db *gorm.DB) *GormFlatRepository {
	return &GormFlatRepository{db: db}
}

// FindByID finds a flat by its ID
func (r *GormFlatRepository) FindByID(ctx context.Context, id uuid.UUID) (*community.Flat, error) {
	var model models.FlatModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all flats matching the filter
func (r *GormFlatRepository) FindAll(ctx context.Context, filter shared.Filter) ([]community.Flat, error) {
	var flatModels []models.FlatModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FlatModel{}), filter)

	if err := query.Find(&flatModels).Error; err != nil {
		return nil, err
	}

	flats := make([]community.Flat, len(flatModels))
	for i, model := range flatModels {
		flats[i] = *model.ToDomain()
	}
	return flats, nil
}

// FindByBuilding finds flats in a building
func (r *GormFlatRepository) FindByBuilding(ctx context.Context, buildingID uuid.UUID, filter shared.Filter) ([]community.Flat, error) {
	var flatModels []models.FlatModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.FlatModel{}).
			Where("building_id = ?", buildingID),
		filter,
	)

	if err := query.Find(&flatModels).Error; err != nil {
		return nil, err
	}

	flats := make([]community.Flat, len(flatModels))
	for i, model := range flatModels {
		flats[i] = *model.ToDomain()
	}
	return flats, nil
}

// FindByStatus finds flats by occupancy status
func (r *GormFlatRepository) FindByStatus(ctx context.Context, status community.FlatStatus, filter shared.Filter) ([]community.Flat, error) {
	var flatModels []models.FlatModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.FlatModel{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&flatModels).Error; err != nil {
		return nil, err
	}

	flats := make([]community.Flat, len(flatModels))
	for i, model := range flatModels {
		flats[i] = *model.ToDomain()
	}
	return flats, nil
}

// FindOccupiedByTenant returns the flat currently occupied by the tenant
func (r *GormFlatRepository) FindOccupiedByTenant(ctx context.Context, tenantID uuid.UUID) (*community.Flat, error) {
	var model models.FlatModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, community.FlatStatusOccupied).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a flat
func (r *GormFlatRepository) Save(ctx context.Context, flat *community.Flat) error {
	model := models.FlatModelFromDomain(flat)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a flat with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormFlatRepository) SaveWithLock(ctx context.Context, flat *community.Flat) error {
	model := models.FlatModelFromDomain(flat)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", flat.ID, flat.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The flat record has been modified by another transaction")
	}
	return nil
}

// Delete deletes a flat
func (r *GormFlatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FlatModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByStatus counts flats by occupancy status
func (r *GormFlatRepository) CountByStatus(ctx context.Context, status community.FlatStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FlatModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormFlatRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "building_id":
			query = query.Where("building_id = ?", value)
		case "flat_type":
			query = query.Where("flat_type = ?", value)
		}
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

// Ensure GormFlatRepository implements FlatRepository
var _ community.FlatRepository = (*GormFlatRepository)(nil)
