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

// CabService handles cab pre-approval operations
type CabService struct {
	repo     accessgrant.CabPreapprovalRepository
	eventBus shared.EventBus
	logger   *zap.Logger
}

// NewCabService creates a new CabService
func NewCabService(repo accessgrant.CabPreapprovalRepository, eventBus shared.EventBus, logger *zap.Logger) *CabService {
	return &CabService{repo: repo, eventBus: eventBus, logger: logger}
}

// Create creates a cab pre-approval in draft state
func (s *CabService) Create(ctx context.Context, req CreateCabPreapprovalRequest) (*GrantResponse, error) {
	c, err := accessgrant.NewCabPreapproval(req.ResidentID, req.ResidentName, req.FlatID,
		req.CabCompany, req.VehicleNumber, accessgrant.Mode(req.Mode))
	if err != nil {
		return nil, err
	}
	c.DriverName = req.DriverName
	c.DriverPhone = req.DriverPhone

	if req.OnceDate != nil {
		c.OnceDate = *req.OnceDate
	}
	if req.OnceStartTime != "" {
		tod, err := valueobject.ParseTimeOfDay(req.OnceStartTime)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Start time must be in HH:MM form")
		}
		c.OnceStartTime = tod
	}
	if req.OnceValidHours > 0 {
		c.OnceValidHours = req.OnceValidHours
	}
	if req.Validity != "" {
		v := accessgrant.Validity(req.Validity)
		if !v.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown validity duration")
		}
		c.Validity = v
	}
	if req.FreqTimeFrom != "" {
		tod, err := valueobject.ParseTimeOfDay(req.FreqTimeFrom)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "From time must be in HH:MM form")
		}
		c.FreqTimeFrom = tod
	}
	if req.FreqTimeTo != "" {
		tod, err := valueobject.ParseTimeOfDay(req.FreqTimeTo)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "To time must be in HH:MM form")
		}
		c.FreqTimeTo = tod
	}
	c.DaysOfWeek = req.DaysOfWeek
	c.EntriesPerDay = req.EntriesPerDay

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	return ToCabResponse(c, time.Now()), nil
}

// GetByID retrieves a cab pre-approval
func (s *CabService) GetByID(ctx context.Context, id uuid.UUID) (*GrantResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCabResponse(c, time.Now()), nil
}

// List retrieves cab pre-approvals matching the filter
func (s *CabService) List(ctx context.Context, filter GrantListFilter) ([]GrantResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.State != "" {
		domainFilter.Filters["state"] = filter.State
	}

	var (
		items []accessgrant.CabPreapproval
		err   error
	)
	if filter.ResidentID != "" {
		residentID, perr := uuid.Parse(filter.ResidentID)
		if perr != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid resident id")
		}
		items, err = s.repo.FindByResident(ctx, residentID, domainFilter)
	} else {
		items, err = s.repo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]GrantResponse, 0, len(items))
	for i := range items {
		out = append(out, *ToCabResponse(&items[i], now))
	}
	return out, nil
}

// Activate computes the window, attaches a fresh unique code and activates
// the pre-approval
func (s *CabService) Activate(ctx context.Context, id uuid.UUID) (*GrantResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	code := c.AccessCode
	if code == "" {
		code, err = accessgrant.GenerateUniqueCode(ctx, s.repo)
		if err != nil {
			return nil, err
		}
	}

	if err := c.Activate(now, code); err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Cab pre-approval activated",
		zap.String("id", c.ID.String()),
		zap.String("mode", c.Mode.String()),
	)
	s.publishEvents(ctx, c)

	return ToCabResponse(c, now), nil
}

// Cancel cancels a cab pre-approval
func (s *CabService) Cancel(ctx context.Context, id uuid.UUID) (*GrantResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := c.Cancel(now); err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	return ToCabResponse(c, now), nil
}

func (s *CabService) publishEvents(ctx context.Context, c *accessgrant.CabPreapproval) {
	if s.eventBus == nil {
		return
	}
	for _, event := range c.GetDomainEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish grant event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	c.ClearDomainEvents()
}

// StateSummary returns dashboard counts of cab pre-approvals by state
func (s *CabService) StateSummary(ctx context.Context) (*GrantSummaryResponse, error) {
	return summarizeStates(ctx, s.repo.CountByState)
}
