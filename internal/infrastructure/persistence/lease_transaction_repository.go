package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/community/backend/internal/domain/lease"
	"github.com/community/backend/internal/domain/shared"
	"github.com/community/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLeaseTransactionRepository implements lease.TransactionRepository using GORM
type GormLeaseTransactionRepository struct {
	db *gorm.DB
}

// NewGormLeaseTransactionRepository creates a new GormLeaseTransactionRepository
func NewGormLeaseTransactionRepository(db *gorm.DB) *GormLeaseTransactionRepository {
	return &GormLeaseTransactionRepository{db: db}
}

// FindByID finds a lease transaction by its ID
func (r *GormLeaseTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*lease.Transaction, error) {
	var model models.LeaseTransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all lease transactions matching the filter
func (r *GormLeaseTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]lease.Transaction, error) {
	var txModels []models.LeaseTransactionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LeaseTransactionModel{}), filter)

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}

	txs := make([]lease.Transaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// FindByFlat finds lease transactions for a flat
func (r *GormLeaseTransactionRepository) FindByFlat(ctx context.Context, flatID uuid.UUID, filter shared.Filter) ([]lease.Transaction, error) {
	var txModels []models.LeaseTransactionModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LeaseTransactionModel{}).
			Where("flat_id = ?", flatID),
		filter,
	)

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}

	txs := make([]lease.Transaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// FindByTenant finds lease transactions for a tenant
func (r *GormLeaseTransactionRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]lease.Transaction, error) {
	var txModels []models.LeaseTransactionModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LeaseTransactionModel{}).
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}

	txs := make([]lease.Transaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// FindConfirmedByFlat returns the single confirmed lease for the flat.
// The partial unique index on confirmed transactions guarantees at most one.
func (r *GormLeaseTransactionRepository) FindConfirmedByFlat(ctx context.Context, flatID uuid.UUID) (*lease.Transaction, error) {
	var model models.LeaseTransactionModel
	if err := r.db.WithContext(ctx).
		Where("flat_id = ? AND status = ?", flatID, lease.StatusConfirmed).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDueForExpiry returns confirmed leases whose end date is before today.
// Only CONFIRMED rows are selected, which keeps the expiry sweep idempotent.
func (r *GormLeaseTransactionRepository) FindDueForExpiry(ctx context.Context, today time.Time, limit int) ([]lease.Transaction, error) {
	var txModels []models.LeaseTransactionModel
	query := r.db.WithContext(ctx).
		Where("status = ? AND lease_end_date < ?", lease.StatusConfirmed, today).
		Order("lease_end_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}

	txs := make([]lease.Transaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// Save creates or updates a lease transaction
func (r *GormLeaseTransactionRepository) Save(ctx context.Context, tx *lease.Transaction) error {
	model := models.LeaseTransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a lease transaction with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormLeaseTransactionRepository) SaveWithLock(ctx context.Context, tx *lease.Transaction) error {
	model := models.LeaseTransactionModelFromDomain(tx)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", tx.ID, tx.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The lease transaction has been modified by another transaction")
	}
	return nil
}

// Delete deletes a lease transaction
func (r *GormLeaseTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LeaseTransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByStatus counts lease transactions by status
func (r *GormLeaseTransactionRepository) CountByStatus(ctx context.Context, status lease.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LeaseTransactionModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormLeaseTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("tenant_name ILIKE ? OR flat_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "flat_id":
			query = query.Where("flat_id = ?", value)
		case "tenant_id":
			query = query.Where("tenant_id = ?", value)
		case "building_id":
			query = query.Where("building_id = ?", value)
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

// Ensure GormLeaseTransactionRepository implements TransactionRepository
var _ lease.TransactionRepository = (*GormLeaseTransactionRepository)(nil)
