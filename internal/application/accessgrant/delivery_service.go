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

// DeliveryService handles delivery pass operations. Passes are active from
// creation, so Create already generates the code and computes the window.
type DeliveryService struct {
	repo     accessgrant.DeliveryPassRepository
	eventBus shared.EventBus
	logger   *zap.Logger
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(repo accessgrant.DeliveryPassRepository, eventBus shared.EventBus, logger *zap.Logger) *DeliveryService {
	return &DeliveryService{repo: repo, eventBus: eventBus, logger: logger}
}

// Create creates an active delivery pass with its code attached
func (s *DeliveryService) Create(ctx context.Context, req CreateDeliveryPassRequest) (*GrantResponse, error) {
	code, err := accessgrant.GenerateUniqueCode(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p, err := accessgrant.NewDeliveryPass(req.ResidentID, req.ResidentName, req.FlatID,
		req.Courier, accessgrant.Mode(req.Mode), code, now)
	if err != nil {
		return nil, err
	}
	p.ParcelCount = req.ParcelCount
	p.IsSurprise = req.IsSurprise
	if req.AllowLeaveAtGate != nil {
		p.AllowLeaveAtGate = *req.AllowLeaveAtGate
	}

	if req.OnceDate != nil {
		p.OnceDate = *req.OnceDate
	}
	if req.OnceStartTime != "" {
		tod, err := valueobject.ParseTimeOfDay(req.OnceStartTime)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Start time must be in HH:MM form")
		}
		p.OnceStartTime = tod
	}
	if req.ValidFor != "" {
		bucket := accessgrant.HourBucket(req.ValidFor)
		if !bucket.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown valid-for hour bucket")
		}
		p.ValidFor = bucket
	}
	if req.Validity != "" {
		v := accessgrant.Validity(req.Validity)
		if !v.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown validity duration")
		}
		p.Validity = v
	}
	if req.FreqTimeFrom != "" {
		tod, err := valueobject.ParseTimeOfDay(req.FreqTimeFrom)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "From time must be in HH:MM form")
		}
		p.FreqTimeFrom = tod
	}
	if req.FreqTimeTo != "" {
		tod, err := valueobject.ParseTimeOfDay(req.FreqTimeTo)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "To time must be in HH:MM form")
		}
		p.FreqTimeTo = tod
	}
	p.DaysOfWeek = req.DaysOfWeek
	p.EntriesPerDay = req.EntriesPerDay

	p.ComputeWindow(now)

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Delivery pass created",
		zap.String("id", p.ID.String()),
		zap.String("mode", p.Mode.String()),
	)
	s.publishEvents(ctx, p)

	return ToDeliveryResponse(p, now), nil
}

// GetByID retrieves a delivery pass
func (s *DeliveryService) GetByID(ctx context.Context, id uuid.UUID) (*GrantResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDeliveryResponse(p, time.Now()), nil
}

// List retrieves delivery passes matching the filter
func (s *DeliveryService) List(ctx context.Context, filter GrantListFilter) ([]GrantResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.State != "" {
		domainFilter.Filters["state"] = filter.State
	}

	var (
		items []accessgrant.DeliveryPass
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
		out = append(out, *ToDeliveryResponse(&items[i], now))
	}
	return out, nil
}

// Cancel cancels a delivery pass
func (s *DeliveryService) Cancel(ctx context.Context, id uuid.UUID) (*GrantResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := p.Cancel(now); err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)

	return ToDeliveryResponse(p, now), nil
}

func (s *DeliveryService) publishEvents(ctx context.Context, p *accessgrant.DeliveryPass) {
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

// StateSummary returns dashboard counts of delivery passes by state
func (s *DeliveryService) StateSummary(ctx context.Context) (*GrantSummaryResponse, error) {
	return summarizeStates(ctx, s.repo.CountByState)
}
