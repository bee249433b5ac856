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

// GormMaintenanceRepository implements MaintenanceRepository using GORM
type GormMaintenanceRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRepository creates a new GormMaintenanceRepository
func NewGormMaintenanceRepository(db *gorm.DB) *GormMaintenanceRepository {
	return &GormMaintenanceRepository{db: db}
}

// FindByID finds a maintenance record by its ID, with lines and invoice links
func (r *GormMaintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MaintenanceRecord, error) {
	var model models.MaintenanceRecordModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	rec := model.ToDomain()
	invoiceIDs, err := r.FindInvoiceIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.InvoiceIDs = invoiceIDs
	return rec, nil
}

// FindAll finds all maintenance records matching the filter
func (r *GormMaintenanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.MaintenanceRecord, error) {
	var recordModels []models.MaintenanceRecordModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.MaintenanceRecordModel{}).Preload("Lines"), filter)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]billing.MaintenanceRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// FindByFlat finds maintenance records for a flat
func (r *GormMaintenanceRepository) FindByFlat(ctx context.Context, flatID uuid.UUID, filter shared.Filter) ([]billing.MaintenanceRecord, error) {
	var recordModels []models.MaintenanceRecordModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.MaintenanceRecordModel{}).
			Preload("Lines").
			Where("flat_id = ?", flatID),
		filter,
	)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]billing.MaintenanceRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Save creates or updates a maintenance record and its lines
func (r *GormMaintenanceRepository) Save(ctx context.Context, rec *billing.MaintenanceRecord) error {
	model := models.MaintenanceRecordModelFromDomain(rec)
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error
}

// SaveWithLock saves a maintenance record with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormMaintenanceRepository) SaveWithLock(ctx context.Context, rec *billing.MaintenanceRecord) error {
	model := models.MaintenanceRecordModelFromDomain(rec)
	result := r.db.WithContext(ctx).
		Model(model).
		Omit("Lines").
		Where("id = ? AND version = ?", rec.ID, rec.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The maintenance record has been modified by another transaction")
	}
	return nil
}

// LinkInvoice persists one row in the record-invoice join table
func (r *GormMaintenanceRepository) LinkInvoice(ctx context.Context, recordID, invoiceID uuid.UUID) error {
	link := &models.MaintenanceInvoiceLinkModel{
		RecordID:  recordID,
		InvoiceID: invoiceID,
	}
	link.FromDomainBaseEntity(shared.NewBaseEntity())
	return r.db.WithContext(ctx).Create(link).Error
}

// FindInvoiceIDs returns the IDs of every invoice raised for the record
func (r *GormMaintenanceRepository) FindInvoiceIDs(ctx context.Context, recordID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.MaintenanceInvoiceLinkModel{}).
		Where("record_id = ?", recordID).
		Order("created_at ASC").
		Pluck("invoice_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Delete deletes a maintenance record with its lines and invoice links
func (r *GormMaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.MaintenanceLineModel{}, "record_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.MaintenanceInvoiceLinkModel{}, "record_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.MaintenanceRecordModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies filter options to the query
func (r *GormMaintenanceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("tenant_name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "model":
			query = query.Where("model = ?", value)
		case "flat_id":
			query = query.Where("flat_id = ?", value)
		case "tenant_id":
			query = query.Where("tenant_id = ?", value)
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

// Ensure GormMaintenanceRepository implements MaintenanceRepository
var _ billing.MaintenanceRepository = (*GormMaintenanceRepository)(nil)
