package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/community/backend/internal/domain/billing"
	"github.com/community/backend/internal/domain/shared"
	"github.com/community/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCorpusFundRepository implements CorpusFundRepository using GORM
type GormCorpusFundRepository struct {
	db *gorm.DB
}

// NewGormCorpusFundRepository creates a new GormCorpusFundRepository
func NewGormCorpusFundRepository(db *gorm.DB) *GormCorpusFundRepository {
	return &GormCorpusFundRepository{db: db}
}

// FindByID finds a corpus fund contribution by its ID
func (r *GormCorpusFundRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.CorpusFund, error) {
	var model models.CorpusFundModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all corpus fund contributions matching the filter
func (r *GormCorpusFundRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.CorpusFund, error) {
	var fundModels []models.CorpusFundModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CorpusFundModel{}), filter)

	if err := query.Find(&fundModels).Error; err != nil {
		return nil, err
	}

	funds := make([]billing.CorpusFund, len(fundModels))
	for i, model := range fundModels {
		funds[i] = *model.ToDomain()
	}
	return funds, nil
}

// FindByFlat finds corpus fund contributions for a flat
func (r *GormCorpusFundRepository) FindByFlat(ctx context.Context, flatID uuid.UUID) ([]billing.CorpusFund, error) {
	var fundModels []models.CorpusFundModel
	if err := r.db.WithContext(ctx).
		Where("flat_id = ?", flatID).
		Order("created_at ASC").
		Find(&fundModels).Error; err != nil {
		return nil, err
	}

	funds := make([]billing.CorpusFund, len(fundModels))
	for i, model := range fundModels {
		funds[i] = *model.ToDomain()
	}
	return funds, nil
}

// Save creates or updates a corpus fund contribution
func (r *GormCorpusFundRepository) Save(ctx context.Context, cf *billing.CorpusFund) error {
	model := models.CorpusFundModelFromDomain(cf)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a corpus fund contribution with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormCorpusFundRepository) SaveWithLock(ctx context.Context, cf *billing.CorpusFund) error {
	model := models.CorpusFundModelFromDomain(cf)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", cf.ID, cf.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The corpus fund contribution has been modified by another transaction")
	}
	return nil
}

// Delete deletes a corpus fund contribution
func (r *GormCorpusFundRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CorpusFundModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormCorpusFundRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("owner_name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "flat_id":
			query = query.Where("flat_id = ?", value)
		case "owner_id":
			query = query.Where("owner_id = ?", value)
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
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormCorpusFundRepository implements CorpusFundRepository
var _ billing.CorpusFundRepository = (*GormCorpusFundRepository)(nil)
