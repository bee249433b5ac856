package lease

import (
	"context"
	"errors"

	"github.com/community/backend/internal/domain/community"
	"github.com/community/backend/internal/domain/lease"
	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles lease transaction operations. Confirm, terminate, cancel
// and expire keep the flat occupancy cache in step with the transaction set;
// the paired writes go through the transaction scope so a failure between
// them cannot leave an occupied flat pointing at a draft lease.
type Service struct {
	txRepo   lease.TransactionRepository
	flatRepo community.FlatRepository
	txScope  TransactionScope
	eventBus shared.EventBus
	logger   *zap.Logger
}

// NewService creates a new lease Service
func NewService(
	txRepo lease.TransactionRepository,
	flatRepo community.FlatRepository,
	txScope TransactionScope,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *Service {
	return &Service{
		txRepo:   txRepo,
		flatRepo: flatRepo,
		txScope:  txScope,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create creates a new lease transaction in draft status
func (s *Service) Create(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	flat, err := s.flatRepo.FindByID(ctx, req.FlatID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_FLAT", "Flat not found")
		}
		return nil, err
	}

	tx, err := lease.NewTransaction(req.BuildingID, req.FloorID, flat.ID, flat.Name,
		req.TenantID, req.TenantName, req.LeaseOwnerID,
		req.RentPrice, req.SecurityDeposit, req.LeaseStartDate, req.LeaseEndDate)
	if err != nil {
		return nil, err
	}
	tx.Notes = req.Notes

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, tx)

	return ToTransactionResponse(tx), nil
}

// GetByID retrieves a lease transaction
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponse(tx), nil
}

// List retrieves lease transactions matching the filter
func (s *Service) List(ctx context.Context, filter TransactionListFilter) ([]TransactionResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	if filter.FlatID != "" {
		flatID, err := uuid.Parse(filter.FlatID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid flat id")
		}
		txs, err := s.txRepo.FindByFlat(ctx, flatID, domainFilter)
		if err != nil {
			return nil, err
		}
		return ToTransactionListResponse(txs), nil
	}
	if filter.TenantID != "" {
		tenantID, err := uuid.Parse(filter.TenantID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid tenant id")
		}
		txs, err := s.txRepo.FindByTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return nil, err
		}
		return ToTransactionListResponse(txs), nil
	}

	txs, err := s.txRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToTransactionListResponse(txs), nil
}

// Confirm activates a draft lease and occupies the flat. The flat occupancy
// check plus the partial unique index on confirmed transactions guarantee at
// most one confirmed lease per flat even under concurrent confirms.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flat, err := s.flatRepo.FindByID(ctx, tx.FlatID)
	if err != nil {
		return nil, err
	}

	if err := flat.Occupy(tx.ID, tx.TenantID, tx.LeaseOwnerID, tx.RentPrice, tx.LeaseStartDate, tx.LeaseEndDate); err != nil {
		return nil, err
	}
	if err := tx.Confirm(); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.FlatRepo().SaveWithLock(ctx, flat); err != nil {
			return err
		}
		return repos.TransactionRepo().SaveWithLock(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lease confirmed",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("flat", tx.FlatName),
		zap.String("tenant", tx.TenantName),
	)
	s.publishEvents(ctx, tx)

	return ToTransactionResponse(tx), nil
}

// Terminate ends a confirmed lease early and vacates the flat
func (s *Service) Terminate(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	return s.endLease(ctx, id, func(tx *lease.Transaction) error { return tx.Terminate() })
}

// Cancel cancels a lease; a confirmed lease also vacates its flat
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	return s.endLease(ctx, id, func(tx *lease.Transaction) error { return tx.Cancel() })
}

// endLease applies a terminal transition and releases the flat if this
// transaction is its current occupant. A stale transaction never vacates a
// flat held by a different lease.
func (s *Service) endLease(ctx context.Context, id uuid.UUID, transition func(*lease.Transaction) error) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasConfirmed := tx.IsConfirmed()
	if err := transition(tx); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if wasConfirmed {
			if err := s.vacateFlat(ctx, repos, tx); err != nil {
				return err
			}
		}
		return repos.TransactionRepo().SaveWithLock(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, tx)

	return ToTransactionResponse(tx), nil
}

// vacateFlat releases the flat when this transaction holds its occupancy
// cache. A mismatch is logged and skipped so a superseded transaction cannot
// free someone else's flat.
func (s *Service) vacateFlat(ctx context.Context, repos TransactionalRepositories, tx *lease.Transaction) error {
	flat, err := repos.FlatRepo().FindByID(ctx, tx.FlatID)
	if err != nil {
		return err
	}

	if flat.CurrentTransactionID == nil || *flat.CurrentTransactionID != tx.ID {
		s.logger.Warn("Flat occupancy cache held by a different transaction, skipping vacate",
			zap.String("flat_id", flat.ID.String()),
			zap.String("transaction_id", tx.ID.String()),
		)
		return nil
	}

	if err := flat.Vacate(tx.ID); err != nil {
		return err
	}
	return repos.FlatRepo().SaveWithLock(ctx, flat)
}

// ResetToDraft is an administrative override back to draft. A confirmed
// lease releases its flat first.
func (s *Service) ResetToDraft(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasConfirmed := tx.IsConfirmed()
	tx.ResetToDraft()

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if wasConfirmed {
			if err := s.vacateFlat(ctx, repos, tx); err != nil {
				return err
			}
		}
		return repos.TransactionRepo().SaveWithLock(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lease reset to draft", zap.String("transaction_id", tx.ID.String()))

	return ToTransactionResponse(tx), nil
}

func (s *Service) publishEvents(ctx context.Context, tx *lease.Transaction) {
	if s.eventBus == nil {
		return
	}
	for _, event := range tx.GetDomainEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish lease event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	tx.ClearDomainEvents()
}
