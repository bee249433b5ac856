package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/community/backend/internal/domain/accessgrant"
	"github.com/community/backend/internal/domain/shared"
	"github.com/community/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryPassRepository implements DeliveryPassRepository using GORM
type GormDeliveryPassRepository struct {
	db *gorm.DB
}

// NewGormDeliveryPassRepository creates a new GormDeliveryPassRepository
func NewGormDeliveryPassRepository(db *gorm.DB) *GormDeliveryPassRepository {
	return &GormDeliveryPassRepository{db: db}
}

// CodeInUse reports whether the code is held by a live (non-cancelled) record
func (r *GormDeliveryPassRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DeliveryPassModel{}).
		Where("access_code = ? AND state <> ?", code, accessgrant.StateCancelled).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByID finds a delivery pass by its ID
func (r *GormDeliveryPassRepository) FindByID(ctx context.Context, id uuid.UUID) (*accessgrant.DeliveryPass, error) {
	var model models.DeliveryPassModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all delivery passes matching the filter
func (r *GormDeliveryPassRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accessgrant.DeliveryPass, error) {
	var passModels []models.DeliveryPassModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DeliveryPassModel{}), filter)

	if err := query.Find(&passModels).Error; err != nil {
		return nil, err
	}

	passes := make([]accessgrant.DeliveryPass, len(passModels))
	for i, model := range passModels {
		passes[i] = *model.ToDomain()
	}
	return passes, nil
}

// FindByResident finds delivery passes created by a resident
func (r *GormDeliveryPassRepository) FindByResident(ctx context.Context, residentID uuid.UUID, filter shared.Filter) ([]accessgrant.DeliveryPass, error) {
	var passModels []models.DeliveryPassModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DeliveryPassModel{}).
			Where("resident_id = ?", residentID),
		filter,
	)

	if err := query.Find(&passModels).Error; err != nil {
		return nil, err
	}

	passes := make([]accessgrant.DeliveryPass, len(passModels))
	for i, model := range passModels {
		passes[i] = *model.ToDomain()
	}
	return passes, nil
}

// FindActiveByCode finds the active pass holding the code. Expired and
// cancelled passes never match, so a stale code reads as not found.
func (r *GormDeliveryPassRepository) FindActiveByCode(ctx context.Context, code string) (*accessgrant.DeliveryPass, error) {
	var model models.DeliveryPassModel
	if err := r.db.WithContext(ctx).
		Where("access_code = ? AND state = ?", code, accessgrant.StateActive).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDueForExpiry returns active passes whose window ended before now.
// Zero windows are skipped; they were never usable and cannot lapse.
func (r *GormDeliveryPassRepository) FindDueForExpiry(ctx context.Context, now time.Time, limit int) ([]accessgrant.DeliveryPass, error) {
	var passModels []models.DeliveryPassModel
	query := r.db.WithContext(ctx).
		Where("state = ? AND window_end > ? AND window_end < ?", accessgrant.StateActive, time.Time{}, now).
		Order("window_end ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&passModels).Error; err != nil {
		return nil, err
	}

	passes := make([]accessgrant.DeliveryPass, len(passModels))
	for i, model := range passModels {
		passes[i] = *model.ToDomain()
	}
	return passes, nil
}

// Save creates or updates a delivery pass
func (r *GormDeliveryPassRepository) Save(ctx context.Context, p *accessgrant.DeliveryPass) error {
	model := models.DeliveryPassModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a delivery pass with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormDeliveryPassRepository) SaveWithLock(ctx context.Context, p *accessgrant.DeliveryPass) error {
	model := models.DeliveryPassModelFromDomain(p)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", p.ID, p.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The delivery pass has been modified by another transaction")
	}
	return nil
}

// Delete deletes a delivery pass
func (r *GormDeliveryPassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DeliveryPassModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByState counts delivery passes by state
func (r *GormDeliveryPassRepository) CountByState(ctx context.Context, state accessgrant.State) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DeliveryPassModel{}).
		Where("state = ?", state).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormDeliveryPassRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("courier ILIKE ? OR resident_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "state":
			query = query.Where("state = ?", value)
		case "mode":
			query = query.Where("mode = ?", value)
		case "resident_id":
			query = query.Where("resident_id = ?", value)
		case "flat_id":
			query = query.Where("flat_id = ?", value)
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

// Ensure GormDeliveryPassRepository implements DeliveryPassRepository
var _ accessgrant.DeliveryPassRepository = (*GormDeliveryPassRepository)(nil)
