package lease

import (
	"context"
	"time"

	"github.com/community/backend/internal/domain/lease"
	"github.com/community/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// expireBatchSize bounds one sweep pass
const expireBatchSize = 200

// ExpirationService expires confirmed leases whose end date has passed and
// vacates their flats. The sweep only selects confirmed records, so running
// it twice in a row is a no-op the second time.
type ExpirationService struct {
	txRepo   lease.TransactionRepository
	txScope  TransactionScope
	eventBus shared.EventBus
	logger   *zap.Logger
}

// NewExpirationService creates a new ExpirationService
func NewExpirationService(
	txRepo lease.TransactionRepository,
	txScope TransactionScope,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *ExpirationService {
	return &ExpirationService{
		txRepo:   txRepo,
		txScope:  txScope,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Name identifies this sweep in scheduler logs
func (s *ExpirationService) Name() string {
	return "lease-expiry"
}

// Sweep expires all due leases. A failure on one record is logged and
// skipped; the other records still transition.
func (s *ExpirationService) Sweep(ctx context.Context, now time.Time) (int, error) {
	due, err := s.txRepo.FindDueForExpiry(ctx, now, expireBatchSize)
	if err != nil {
		s.logger.Error("Failed to find leases due for expiry", zap.Error(err))
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	expired := 0
	for i := range due {
		tx := &due[i]
		if err := s.expireOne(ctx, tx, now); err != nil {
			s.logger.Error("Failed to expire lease",
				zap.String("transaction_id", tx.ID.String()),
				zap.Error(err),
			)
			continue
		}
		expired++
	}

	s.logger.Info("Lease expiry sweep completed",
		zap.Int("due", len(due)),
		zap.Int("expired", expired),
	)

	return expired, nil
}

func (s *ExpirationService) expireOne(ctx context.Context, tx *lease.Transaction, now time.Time) error {
	if err := tx.Expire(now); err != nil {
		return err
	}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		flat, err := repos.FlatRepo().FindByID(ctx, tx.FlatID)
		if err != nil {
			return err
		}
		if flat.CurrentTransactionID != nil && *flat.CurrentTransactionID == tx.ID {
			if err := flat.Vacate(tx.ID); err != nil {
				return err
			}
			if err := repos.FlatRepo().SaveWithLock(ctx, flat); err != nil {
				return err
			}
		}
		return repos.TransactionRepo().SaveWithLock(ctx, tx)
	})
	if err != nil {
		return err
	}

	if s.eventBus != nil {
		for _, event := range tx.GetDomainEvents() {
			if err := s.eventBus.Publish(ctx, event); err != nil {
				s.logger.Error("Failed to publish lease expiry event", zap.Error(err))
			}
		}
		tx.ClearDomainEvents()
	}

	return nil
}
