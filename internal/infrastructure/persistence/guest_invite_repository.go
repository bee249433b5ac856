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

// GormGuestInviteRepository implements GuestInviteRepository using GORM
type GormGuestInviteRepository struct {
	db *gorm.DB
}

// NewGormGuestInviteRepository creates a new GormGuestInviteRepository
func NewGormGuestInviteRepository(db *gorm.DB) *GormGuestInviteRepository {
	return &GormGuestInviteRepository{db: db}
}

// CodeInUse reports whether the OTP is held by a live (non-cancelled) invite
func (r *GormGuestInviteRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GuestInviteModel{}).
		Where("otp = ? AND state <> ?", code, accessgrant.StateCancelled).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByID finds a guest invite by its ID, with its named guests
func (r *GormGuestInviteRepository) FindByID(ctx context.Context, id uuid.UUID) (*accessgrant.GuestInvite, error) {
	var model models.GuestInviteModel
	if err := r.db.WithContext(ctx).
		Preload("Guests").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all guest invites matching the filter
func (r *GormGuestInviteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accessgrant.GuestInvite, error) {
	var inviteModels []models.GuestInviteModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.GuestInviteModel{}).Preload("Guests"), filter)

	if err := query.Find(&inviteModels).Error; err != nil {
		return nil, err
	}

	invites := make([]accessgrant.GuestInvite, len(inviteModels))
	for i, model := range inviteModels {
		invites[i] = *model.ToDomain()
	}
	return invites, nil
}

// FindByHost finds guest invites created by a host resident
func (r *GormGuestInviteRepository) FindByHost(ctx context.Context, hostID uuid.UUID, filter shared.Filter) ([]accessgrant.GuestInvite, error) {
	var inviteModels []models.GuestInviteModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.GuestInviteModel{}).
			Preload("Guests").
			Where("host_id = ?", hostID),
		filter,
	)

	if err := query.Find(&inviteModels).Error; err != nil {
		return nil, err
	}

	invites := make([]accessgrant.GuestInvite, len(inviteModels))
	for i, model := range inviteModels {
		invites[i] = *model.ToDomain()
	}
	return invites, nil
}

// FindActiveByCode finds the active invite holding the OTP. Expired and
// cancelled invites never match, so a stale code reads as not found.
func (r *GormGuestInviteRepository) FindActiveByCode(ctx context.Context, otp string) (*accessgrant.GuestInvite, error) {
	var model models.GuestInviteModel
	if err := r.db.WithContext(ctx).
		Preload("Guests").
		Where("otp = ? AND state = ?", otp, accessgrant.StateActive).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDueForExpiry returns active invites whose window ended before now.
// Zero windows are skipped; they were never usable and cannot lapse.
func (r *GormGuestInviteRepository) FindDueForExpiry(ctx context.Context, now time.Time, limit int) ([]accessgrant.GuestInvite, error) {
	var inviteModels []models.GuestInviteModel
	query := r.db.WithContext(ctx).
		Where("state = ? AND window_end > ? AND window_end < ?", accessgrant.StateActive, time.Time{}, now).
		Order("window_end ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&inviteModels).Error; err != nil {
		return nil, err
	}

	invites := make([]accessgrant.GuestInvite, len(inviteModels))
	for i, model := range inviteModels {
		invites[i] = *model.ToDomain()
	}
	return invites, nil
}

// Save creates or updates a guest invite and its named guests
func (r *GormGuestInviteRepository) Save(ctx context.Context, g *accessgrant.GuestInvite) error {
	model := models.GuestInviteModelFromDomain(g)
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error
}

// SaveWithLock saves a guest invite with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormGuestInviteRepository) SaveWithLock(ctx context.Context, g *accessgrant.GuestInvite) error {
	model := models.GuestInviteModelFromDomain(g)
	result := r.db.WithContext(ctx).
		Model(model).
		Omit("Guests").
		Where("id = ? AND version = ?", g.ID, g.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The guest invite has been modified by another transaction")
	}
	return nil
}

// Delete deletes a guest invite and its named guests
func (r *GormGuestInviteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.GuestLineModel{}, "invite_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.GuestInviteModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByState counts guest invites by state
func (r *GormGuestInviteRepository) CountByState(ctx context.Context, state accessgrant.State) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GuestInviteModel{}).
		Where("state = ?", state).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormGuestInviteRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("guest_name ILIKE ? OR host_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "state":
			query = query.Where("state = ?", value)
		case "mode":
			query = query.Where("mode = ?", value)
		case "host_id":
			query = query.Where("host_id = ?", value)
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

// Ensure GormGuestInviteRepository implements GuestInviteRepository
var _ accessgrant.GuestInviteRepository = (*GormGuestInviteRepository)(nil)
