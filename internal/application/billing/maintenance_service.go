package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/community/backend/internal/domain/billing"
	"github.com/community/backend/internal/domain/community"
	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaintenanceService handles maintenance records and their repeat invoicing
type MaintenanceService struct {
	repo        billing.MaintenanceRepository
	invoiceRepo billing.InvoiceRepository
	flatRepo    community.FlatRepository
	logger      *zap.Logger
}

// NewMaintenanceService creates a new MaintenanceService
func NewMaintenanceService(
	repo billing.MaintenanceRepository,
	invoiceRepo billing.InvoiceRepository,
	flatRepo community.FlatRepository,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		repo:        repo,
		invoiceRepo: invoiceRepo,
		flatRepo:    flatRepo,
		logger:      logger,
	}
}

// Create creates a draft maintenance record. Area-based records pull the
// flat's area at creation time.
func (s *MaintenanceService) Create(ctx context.Context, req CreateMaintenanceRequest) (*MaintenanceResponse, error) {
	rec, err := billing.NewMaintenanceRecord(req.FlatID, req.TenantID, req.TenantName, billing.BillingModel(req.Model))
	if err != nil {
		return nil, err
	}
	rec.StandardAmount = req.StandardAmount
	rec.RatePerArea = req.RatePerArea

	if rec.Model == billing.BillingAreaBased {
		flat, err := s.flatRepo.FindByID(ctx, req.FlatID)
		if err != nil {
			return nil, err
		}
		rec.FlatArea = flat.Area
	}

	for _, line := range req.Lines {
		if err := rec.AddLine(billing.LineItemType(line.Type), line.Label, line.Amount); err != nil {
			return nil, err
		}
	}
	rec.RecomputeTotal()

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}

	return ToMaintenanceResponse(rec), nil
}

// GetByID retrieves a maintenance record with its invoice links
func (s *MaintenanceService) GetByID(ctx context.Context, id uuid.UUID) (*MaintenanceResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.InvoiceIDs, err = s.repo.FindInvoiceIDs(ctx, rec.ID); err != nil {
		return nil, err
	}
	return ToMaintenanceResponse(rec), nil
}

// Confirm locks the record for invoicing
func (s *MaintenanceService) Confirm(ctx context.Context, id uuid.UUID) (*MaintenanceResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rec.Confirm(); err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLock(ctx, rec); err != nil {
		return nil, err
	}
	return ToMaintenanceResponse(rec), nil
}

// CreateInvoice raises one more invoice for a confirmed record. Maintenance
// re-bills each period, so there is no per-period guard here.
func (s *MaintenanceService) CreateInvoice(ctx context.Context, id uuid.UUID, now time.Time) (*InvoiceResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != billing.MaintenanceStatusConfirmed {
		return nil, shared.NewDomainError("INVALID_STATE", "Maintenance record must be confirmed before invoicing")
	}
	rec.RecomputeTotal()

	inv, err := billing.NewInvoice(rec.TenantID, rec.TenantName, rec.FlatID, billing.OriginMaintenance, rec.ID, now)
	if err != nil {
		return nil, err
	}
	if err := inv.AddLine(fmt.Sprintf("Maintenance charges %s", now.Format("2006-01")), decimal.NewFromInt(1), rec.TotalAmount); err != nil {
		return nil, err
	}
	if err := inv.Post(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.repo.LinkInvoice(ctx, rec.ID, inv.ID); err != nil {
		return nil, err
	}

	s.logger.Info("Maintenance invoice created",
		zap.String("record_id", rec.ID.String()),
		zap.String("invoice", inv.Number),
	)

	return ToInvoiceResponse(inv), nil
}
