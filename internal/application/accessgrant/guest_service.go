package accessgrant

import (
	"context"
	"time"

	"github.com/community/backend/internal/domain/accessgrant"
	"github.com/community/backend/internal/domain/shared"
	"github.com/community/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GuestService handles guest invite operations. The OTP is generated at
// creation and the invite is active immediately so the host can forward the
// code to the guest.
type GuestService struct {
	repo     accessgrant.GuestInviteRepository
	eventBus shared.EventBus
	logger   *zap.Logger
}

// NewGuestService creates a new GuestService
func NewGuestService(repo accessgrant.GuestInviteRepository, eventBus shared.EventBus, logger *zap.Logger) *GuestService {
	return &GuestService{repo: repo, eventBus: eventBus, logger: logger}
}

// Create creates an active guest invite with its OTP attached
func (s *GuestService) Create(ctx context.Context, req CreateGuestInviteRequest) (*GrantResponse, error) {
	otp, err := accessgrant.GenerateUniqueCode(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	g, err := accessgrant.NewGuestInvite(req.HostID, req.HostName, req.FlatID,
		req.GuestName, req.GuestCount, accessgrant.Mode(req.Mode), otp)
	if err != nil {
		return nil, err
	}
	g.Private = req.Private
	g.Note = req.Note

	if req.OnceDate != nil {
		g.OnceDate = *req.OnceDate
	}
	if req.OnceStartTime != "" {
		tod, err := valueobject.ParseTimeOfDay(req.OnceStartTime)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Start time must be in HH:MM form")
		}
		g.OnceStartTime = tod
	}
	if req.OnceValidHours > 0 {
		g.OnceValidHours = req.OnceValidHours
	}
	if req.StayStartDate != nil {
		g.StayStartDate = *req.StayStartDate
	}
	if req.StayEndDate != nil {
		g.StayEndDate = *req.StayEndDate
	}
	if req.StayDuration != "" {
		d := accessgrant.StayDuration(req.StayDuration)
		if !d.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown stay duration")
		}
		g.StayDuration = d
	}
	for _, line := range req.Guests {
		if err := g.AddGuest(line.Name, line.Phone); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	g.ComputeWindow(now)

	if err := s.repo.Save(ctx, g); err != nil {
		return nil, err
	}

	s.logger.Info("Guest invite created",
		zap.String("id", g.ID.String()),
		zap.String("mode", g.Mode.String()),
		zap.Int("guest_count", g.GuestCount),
	)
	s.publishEvents(ctx, g)

	return ToGuestResponse(g, now), nil
}

// GetByID retrieves a guest invite
func (s *GuestService) GetByID(ctx context.Context, id uuid.UUID) (*GrantResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToGuestResponse(g, time.Now()), nil
}

// List retrieves guest invites matching the filter
func (s *GuestService) List(ctx context.Context, filter GrantListFilter) ([]GrantResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.State != "" {
		domainFilter.Filters["state"] = filter.State
	}

	var (
		items []accessgrant.GuestInvite
		err   error
	)
	if filter.ResidentID != "" {
		hostID, perr := uuid.Parse(filter.ResidentID)
		if perr != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid resident id")
		}
		items, err = s.repo.FindByHost(ctx, hostID, domainFilter)
	} else {
		items, err = s.repo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]GrantResponse, 0, len(items))
	for i := range items {
		out = append(out, *ToGuestResponse(&items[i], now))
	}
	return out, nil
}

// Cancel cancels a guest invite
func (s *GuestService) Cancel(ctx context.Context, id uuid.UUID) (*GrantResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := g.Cancel(now); err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLock(ctx, g); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, g)

	return ToGuestResponse(g, now), nil
}

func (s *GuestService) publishEvents(ctx context.Context, g *accessgrant.GuestInvite) {
	if s.eventBus == nil {
		return
	}
	for _, event := range g.GetDomainEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish grant event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	g.ClearDomainEvents()
}

// StateSummary returns dashboard counts of guest invites by state
func (s *GuestService) StateSummary(ctx context.Context) (*GrantSummaryResponse, error) {
	return summarizeStates(ctx, s.repo.CountByState)
}
