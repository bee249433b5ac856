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

// GormCabPreapprovalRepository implements CabPreapprovalRepository using GORM
type GormCabPreapprovalRepository struct {
	db *gorm.DB
}

// NewGormCabPreapprovalRepository creates a new GormCabPreapprovalRepository
func NewGormCabPreapprovalRepository(db *gorm.DB) *GormCabPreapprovalRepository {
	return &GormCabPreapprovalRepository{db: db}
}

// CodeInUse reports whether the code is held by a live (non-cancelled) record
func (r *GormCabPreapprovalRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CabPreapprovalModel{}).
		Where("access_code = ? AND state <> ?", code, accessgrant.StateCancelled).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByID finds a cab pre-approval by its ID
func (r *GormCabPreapprovalRepository) FindByID(ctx context.Context, id uuid.UUID) (*accessgrant.CabPreapproval, error) {
	var model models.CabPreapprovalModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all cab pre-approvals matching the filter
func (r *GormCabPreapprovalRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accessgrant.CabPreapproval, error) {
	var cabModels []models.CabPreapprovalModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CabPreapprovalModel{}), filter)

	if err := query.Find(&cabModels).Error; err != nil {
		return nil, err
	}

	cabs := make([]accessgrant.CabPreapproval, len(cabModels))
	for i, model := range cabModels {
		cabs[i] = *model.ToDomain()
	}
	return cabs, nil
}

// FindByResident finds cab pre-approvals created by a resident
func (r *GormCabPreapprovalRepository) FindByResident(ctx context.Context, residentID uuid.UUID, filter shared.Filter) ([]accessgrant.CabPreapproval, error) {
	var cabModels []models.CabPreapprovalModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CabPreapprovalModel{}).
			Where("resident_id = ?", residentID),
		filter,
	)

	if err := query.Find(&cabModels).Error; err != nil {
		return nil, err
	}

	cabs := make([]accessgrant.CabPreapproval, len(cabModels))
	for i, model := range cabModels {
		cabs[i] = *model.ToDomain()
	}
	return cabs, nil
}

// FindActiveByCode finds the active record holding the code. Expired and
// cancelled records never match, so a stale code reads as not found.
func (r *GormCabPreapprovalRepository) FindActiveByCode(ctx context.Context, code string) (*accessgrant.CabPreapproval, error) {
	var model models.CabPreapprovalModel
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

// FindDueForExpiry returns active records whose window ended before now.
// Zero windows are skipped; they were never usable and cannot lapse.
func (r *GormCabPreapprovalRepository) FindDueForExpiry(ctx context.Context, now time.Time, limit int) ([]accessgrant.CabPreapproval, error) {
	var cabModels []models.CabPreapprovalModel
	query := r.db.WithContext(ctx).
		Where("state = ? AND window_end > ? AND window_end < ?", accessgrant.StateActive, time.Time{}, now).
		Order("window_end ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&cabModels).Error; err != nil {
		return nil, err
	}

	cabs := make([]accessgrant.CabPreapproval, len(cabModels))
	for i, model := range cabModels {
		cabs[i] = *model.ToDomain()
	}
	return cabs, nil
}

// Save creates or updates a cab pre-approval
func (r *GormCabPreapprovalRepository) Save(ctx context.Context, c *accessgrant.CabPreapproval) error {
	model := models.CabPreapprovalModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a cab pre-approval with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormCabPreapprovalRepository) SaveWithLock(ctx context.Context, c *accessgrant.CabPreapproval) error {
	model := models.CabPreapprovalModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The cab pre-approval has been modified by another transaction")
	}
	return nil
}

// Delete deletes a cab pre-approval
func (r *GormCabPreapprovalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CabPreapprovalModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByState counts cab pre-approvals by state
func (r *GormCabPreapprovalRepository) CountByState(ctx context.Context, state accessgrant.State) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CabPreapprovalModel{}).
		Where("state = ?", state).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCabPreapprovalRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("cab_company ILIKE ? OR vehicle_number ILIKE ? OR driver_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
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

// Ensure GormCabPreapprovalRepository implements CabPreapprovalRepository
var _ accessgrant.CabPreapprovalRepository = (*GormCabPreapprovalRepository)(nil)
