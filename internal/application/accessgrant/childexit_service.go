package accessgrant

import (
	"context"
	"time"

	"github.com/community/backend/internal/domain/accessgrant"
	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChildExitService handles child exit permission operations, including the
// gate-side exit and return recordings.
type ChildExitService struct {
	repo     accessgrant.ChildExitPermissionRepository
	eventBus shared.EventBus
	logger   *zap.Logger
}

// NewChildExitService creates a new ChildExitService
func NewChildExitService(repo accessgrant.ChildExitPermissionRepository, eventBus shared.EventBus, logger *zap.Logger) *ChildExitService {
	return &ChildExitService{repo: repo, eventBus: eventBus, logger: logger}
}

// Create creates a child exit permission in draft state with its code
func (s *ChildExitService) Create(ctx context.Context, req CreateChildExitRequest) (*GrantResponse, error) {
	duration := accessgrant.ExitDuration(req.Duration)
	if !duration.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown exit duration")
	}

	code, err := accessgrant.GenerateUniqueCode(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p, err := accessgrant.NewChildExitPermission(req.ParentID, req.ParentName, req.FlatID,
		req.ChildName, req.ChildAge, req.Purpose, req.AllowedExitTime, duration, req.CustomHours, code, now)
	if err != nil {
		return nil, err
	}
	p.EscortName = req.EscortName

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)

	return ToChildExitResponse(p, now), nil
}

// GetByID retrieves a child exit permission
func (s *ChildExitService) GetByID(ctx context.Context, id uuid.UUID) (*GrantResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToChildExitResponse(p, time.Now()), nil
}

// List retrieves child exit permissions matching the filter
func (s *ChildExitService) List(ctx context.Context, filter GrantListFilter) ([]GrantResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.State != "" {
		domainFilter.Filters["state"] = filter.State
	}

	var (
		items []accessgrant.ChildExitPermission
		err   error
	)
	if filter.ResidentID != "" {
		parentID, perr := uuid.Parse(filter.ResidentID)
		if perr != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid resident id")
		}
		items, err = s.repo.FindByParent(ctx, parentID, domainFilter)
	} else {
		items, err = s.repo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]GrantResponse, 0, len(items))
	for i := range items {
		out = append(out, *ToChildExitResponse(&items[i], now))
	}
	return out, nil
}

// Activate notifies the gate that the permission is live
func (s *ChildExitService) Activate(ctx context.Context, id uuid.UUID) (*GrantResponse, error) {
	return s.transition(ctx, id, func(p *accessgrant.ChildExitPermission, now time.Time) error {
		return p.Activate(now)
	})
}

// MarkExited records the child leaving through the gate
func (s *ChildExitService) MarkExited(ctx context.Context, id uuid.UUID) (*GrantResponse, error) {
	return s.transition(ctx, id, func(p *accessgrant.ChildExitPermission, now time.Time) error {
		return p.MarkExited(now)
	})
}

// MarkReturned records the child returning
func (s *ChildExitService) MarkReturned(ctx context.Context, id uuid.UUID) (*GrantResponse, error) {
	return s.transition(ctx, id, func(p *accessgrant.ChildExitPermission, now time.Time) error {
		return p.MarkReturned(now)
	})
}

// Cancel cancels a draft or active permission
func (s *ChildExitService) Cancel(ctx context.Context, id uuid.UUID) (*GrantResponse, error) {
	return s.transition(ctx, id, func(p *accessgrant.ChildExitPermission, now time.Time) error {
		return p.Cancel(now)
	})
}

func (s *ChildExitService) transition(ctx context.Context, id uuid.UUID, fn func(*accessgrant.ChildExitPermission, time.Time) error) (*GrantResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := fn(p, now); err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)

	return ToChildExitResponse(p, now), nil
}

func (s *ChildExitService) publishEvents(ctx context.Context, p *accessgrant.ChildExitPermission) {
	if s.eventBus == nil {
		return
	}
	for _, event := range p.GetDomainEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish grant event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	p.ClearDomainEvents()
}

// StateSummary returns dashboard counts of child exit permissions by state
func (s *ChildExitService) StateSummary(ctx context.Context) (*GrantSummaryResponse, error) {
	return summarizeStates(ctx, s.repo.CountByState)
}
