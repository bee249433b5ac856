package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/community/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CorpusFundService handles corpus fund contributions and their strictly
// one-shot invoicing
type CorpusFundService struct {
	repo        billing.CorpusFundRepository
	invoiceRepo billing.InvoiceRepository
	logger      *zap.Logger
}

// NewCorpusFundService creates a new CorpusFundService
func NewCorpusFundService(
	repo billing.CorpusFundRepository,
	invoiceRepo billing.InvoiceRepository,
	logger *zap.Logger,
) *CorpusFundService {
	return &CorpusFundService{
		repo:        repo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// Create creates a draft corpus fund contribution
func (s *CorpusFundService) Create(ctx context.Context, req CreateCorpusFundRequest) (*CorpusFundResponse, error) {
	cf, err := billing.NewCorpusFund(req.FlatID, req.OwnerID, req.OwnerName, req.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, cf); err != nil {
		return nil, err
	}
	return ToCorpusFundResponse(cf), nil
}

// GetByID retrieves a corpus fund contribution
func (s *CorpusFundService) GetByID(ctx context.Context, id uuid.UUID) (*CorpusFundResponse, error) {
	cf, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCorpusFundResponse(cf), nil
}

// CreateInvoice raises the single invoice for the contribution. The domain
// guard plus the optimistic save make a second call fail instead of
// double-billing.
func (s *CorpusFundService) CreateInvoice(ctx context.Context, id uuid.UUID, now time.Time) (*InvoiceResponse, error) {
	cf, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inv, err := billing.NewInvoice(cf.OwnerID, cf.OwnerName, cf.FlatID, billing.OriginCorpusFund, cf.ID, now)
	if err != nil {
		return nil, err
	}
	if err := inv.AddLine(fmt.Sprintf("Corpus fund contribution for flat %s", cf.FlatID), decimal.NewFromInt(1), cf.Amount); err != nil {
		return nil, err
	}
	if err := inv.Post(); err != nil {
		return nil, err
	}

	if err := cf.MarkInvoiced(inv.ID); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLock(ctx, cf); err != nil {
		return nil, err
	}

	s.logger.Info("Corpus fund invoice created",
		zap.String("contribution_id", cf.ID.String()),
		zap.String("invoice", inv.Number),
	)

	return ToInvoiceResponse(inv), nil
}
