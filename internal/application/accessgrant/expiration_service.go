package accessgrant

import (
	"context"
	"time"

	"github.com/community/backend/internal/domain/accessgrant"
	"github.com/community/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// expireBatchSize bounds one sweep pass per entity
const expireBatchSize = 200

// ExpirationService expires active grants whose window has closed, one
// entity family at a time. Each sweep only selects active records, so a
// repeated run finds nothing left to transition.
type ExpirationService struct {
	cabRepo      accessgrant.CabPreapprovalRepository
	deliveryRepo accessgrant.DeliveryPassRepository
	guestRepo    accessgrant.GuestInviteRepository
	childRepo    accessgrant.ChildExitPermissionRepository
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewExpirationService creates a new ExpirationService
func NewExpirationService(
	cabRepo accessgrant.CabPreapprovalRepository,
	deliveryRepo accessgrant.DeliveryPassRepository,
	guestRepo accessgrant.GuestInviteRepository,
	childRepo accessgrant.ChildExitPermissionRepository,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *ExpirationService {
	return &ExpirationService{
		cabRepo:      cabRepo,
		deliveryRepo: deliveryRepo,
		guestRepo:    guestRepo,
		childRepo:    childRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// SweepCabs expires due cab pre-approvals
func (s *ExpirationService) SweepCabs(ctx context.Context, now time.Time) (int, error) {
	due, err := s.cabRepo.FindDueForExpiry(ctx, now, expireBatchSize)
	if err != nil {
		return 0, err
	}
	expired := 0
	for i := range due {
		c := &due[i]
		if err := c.Expire(now); err != nil {
			s.logSkip("cab pre-approval", c.ID.String(), err)
			continue
		}
		if err := s.cabRepo.SaveWithLock(ctx, c); err != nil {
			s.logSkip("cab pre-approval", c.ID.String(), err)
			continue
		}
		s.publish(ctx, c.GetDomainEvents())
		c.ClearDomainEvents()
		expired++
	}
	s.logSweep("cab pre-approvals", len(due), expired)
	return expired, nil
}

// SweepDeliveries expires due delivery passes
func (s *ExpirationService) SweepDeliveries(ctx context.Context, now time.Time) (int, error) {
	due, err := s.deliveryRepo.FindDueForExpiry(ctx, now, expireBatchSize)
	if err != nil {
		return 0, err
	}
	expired := 0
	for i := range due {
		p := &due[i]
		if err := p.Expire(now); err != nil {
			s.logSkip("delivery pass", p.ID.String(), err)
			continue
		}
		if err := s.deliveryRepo.SaveWithLock(ctx, p); err != nil {
			s.logSkip("delivery pass", p.ID.String(), err)
			continue
		}
		s.publish(ctx, p.GetDomainEvents())
		p.ClearDomainEvents()
		expired++
	}
	s.logSweep("delivery passes", len(due), expired)
	return expired, nil
}

// SweepInvites expires due guest invites
func (s *ExpirationService) SweepInvites(ctx context.Context, now time.Time) (int, error) {
	due, err := s.guestRepo.FindDueForExpiry(ctx, now, expireBatchSize)
	if err != nil {
		return 0, err
	}
	expired := 0
	for i := range due {
		g := &due[i]
		if err := g.Expire(now); err != nil {
			s.logSkip("guest invite", g.ID.String(), err)
			continue
		}
		if err := s.guestRepo.SaveWithLock(ctx, g); err != nil {
			s.logSkip("guest invite", g.ID.String(), err)
			continue
		}
		s.publish(ctx, g.GetDomainEvents())
		g.ClearDomainEvents()
		expired++
	}
	s.logSweep("guest invites", len(due), expired)
	return expired, nil
}

// SweepChildExits expires due child exit permissions
func (s *ExpirationService) SweepChildExits(ctx context.Context, now time.Time) (int, error) {
	due, err := s.childRepo.FindDueForExpiry(ctx, now, expireBatchSize)
	if err != nil {
		return 0, err
	}
	expired := 0
	for i := range due {
		p := &due[i]
		if err := p.Expire(now); err != nil {
			s.logSkip("child exit permission", p.ID.String(), err)
			continue
		}
		if err := s.childRepo.SaveWithLock(ctx, p); err != nil {
			s.logSkip("child exit permission", p.ID.String(), err)
			continue
		}
		s.publish(ctx, p.GetDomainEvents())
		p.ClearDomainEvents()
		expired++
	}
	s.logSweep("child exit permissions", len(due), expired)
	return expired, nil
}

func (s *ExpirationService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil {
		return
	}
	for _, event := range events {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish grant expiry event", zap.Error(err))
		}
	}
}

func (s *ExpirationService) logSkip(entity, id string, err error) {
	s.logger.Error("Failed to expire grant, skipping record",
		zap.String("entity", entity),
		zap.String("id", id),
		zap.Error(err),
	)
}

func (s *ExpirationService) logSweep(entity string, due, expired int) {
	if due == 0 {
		return
	}
	s.logger.Info("Grant expiry sweep completed",
		zap.String("entity", entity),
		zap.Int("due", due),
		zap.Int("expired", expired),
	)
}
