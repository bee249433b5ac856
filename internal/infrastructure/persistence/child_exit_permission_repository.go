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

// GormChildExitPermissionRepository implements ChildExitPermissionRepository using GORM
type GormChildExitPermissionRepository struct {
	db *gorm.DB
}

// NewGormChildExitPermissionRepository creates a new GormChildExitPermissionRepository
func NewGormChildExitPermissionRepository(db *gorm.DB) *GormChildExitPermissionRepository {
	return &GormChildExitPermissionRepository{db: db}
}

// CodeInUse reports whether the code is held by a live (non-cancelled) record
func (r *GormChildExitPermissionRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ChildExitPermissionModel{}).
		Where("access_code = ? AND state <> ?", code, accessgrant.StateCancelled).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByID finds a child exit permission by its ID
func (r *GormChildExitPermissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*accessgrant.ChildExitPermission, error) {
	var model models.ChildExitPermissionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all child exit permissions matching the filter
func (r *GormChildExitPermissionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accessgrant.ChildExitPermission, error) {
	var permModels []models.ChildExitPermissionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ChildExitPermissionModel{}), filter)

	if err := query.Find(&permModels).Error; err != nil {
		return nil, err
	}

	perms := make([]accessgrant.ChildExitPermission, len(permModels))
	for i, model := range permModels {
		perms[i] = *model.ToDomain()
	}
	return perms, nil
}

// FindByParent finds child exit permissions created by a parent
func (r *GormChildExitPermissionRepository) FindByParent(ctx context.Context, parentID uuid.UUID, filter shared.Filter) ([]accessgrant.ChildExitPermission, error) {
	var permModels []models.ChildExitPermissionModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ChildExitPermissionModel{}).
			Where("parent_id = ?", parentID),
		filter,
	)

	if err := query.Find(&permModels).Error; err != nil {
		return nil, err
	}

	perms := make([]accessgrant.ChildExitPermission, len(permModels))
	for i, model := range permModels {
		perms[i] = *model.ToDomain()
	}
	return perms, nil
}

// FindActiveByCode finds the active permission holding the code. Used,
// expired and cancelled permissions never match, so a stale code reads as
// not found.
func (r *GormChildExitPermissionRepository) FindActiveByCode(ctx context.Context, code string) (*accessgrant.ChildExitPermission, error) {
	var model models.ChildExitPermissionModel
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

// FindDueForExpiry returns active permissions whose window lapsed before now
func (r *GormChildExitPermissionRepository) FindDueForExpiry(ctx context.Context, now time.Time, limit int) ([]accessgrant.ChildExitPermission, error) {
	var permModels []models.ChildExitPermissionModel
	query := r.db.WithContext(ctx).
		Where("state = ? AND valid_until < ?", accessgrant.StateActive, now).
		Order("valid_until ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&permModels).Error; err != nil {
		return nil, err
	}

	perms := make([]accessgrant.ChildExitPermission, len(permModels))
	for i, model := range permModels {
		perms[i] = *model.ToDomain()
	}
	return perms, nil
}

// Save creates or updates a child exit permission
func (r *GormChildExitPermissionRepository) Save(ctx context.Context, p *accessgrant.ChildExitPermission) error {
	model := models.ChildExitPermissionModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a child exit permission with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormChildExitPermissionRepository) SaveWithLock(ctx context.Context, p *accessgrant.ChildExitPermission) error {
	model := models.ChildExitPermissionModelFromDomain(p)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", p.ID, p.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The child exit permission has been modified by another transaction")
	}
	return nil
}

// Delete deletes a child exit permission
func (r *GormChildExitPermissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ChildExitPermissionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByState counts child exit permissions by state
func (r *GormChildExitPermissionRepository) CountByState(ctx context.Context, state accessgrant.State) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ChildExitPermissionModel{}).
		Where("state = ?", state).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormChildExitPermissionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("child_name ILIKE ? OR parent_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "state":
			query = query.Where("state = ?", value)
		case "parent_id":
			query = query.Where("parent_id = ?", value)
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

// Ensure GormChildExitPermissionRepository implements ChildExitPermissionRepository
var _ accessgrant.ChildExitPermissionRepository = (*GormChildExitPermissionRepository)(nil)
